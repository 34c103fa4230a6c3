package level

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doomgo/doomgo/internal/debug"
	"github.com/doomgo/doomgo/internal/player"
	"github.com/doomgo/doomgo/internal/wad"
)

// buildTestWAD assembles a minimal in-memory IWAD byte-for-byte, the
// same square-room geometry mapdata/mobj/player fixtures build through
// the decoded wad.MapLumps struct directly, but encoded at the raw lump
// level so level.New's full f.LoadMap/pics.Load/mapdata.Load chain gets
// exercised end to end instead of bypassed.
func buildTestWAD(t *testing.T) *wad.File {
	t.Helper()

	type lump struct {
		name string
		data []byte
	}
	var lumps []lump

	add := func(name string, data []byte) { lumps = append(lumps, lump{name, data}) }

	// PLAYPAL: 14 palettes of 256 RGB triples, all zeroed is fine.
	add("PLAYPAL", make([]byte, 14*768))
	// COLORMAP: 34 pages of 256 bytes, identity-ish (zeroed is fine too).
	add("COLORMAP", make([]byte, 34*256))
	// PNAMES: zero entries.
	pnames := make([]byte, 4)
	binary.LittleEndian.PutUint32(pnames, 0)
	add("PNAMES", pnames)

	name8 := func(s string) [8]byte {
		var b [8]byte
		copy(b[:], s)
		return b
	}
	putName := func(buf []byte, off int, s string) {
		n := name8(s)
		copy(buf[off:off+8], n[:])
	}

	// THINGS: one player 1 start at the origin facing east.
	things := make([]byte, 10)
	binary.LittleEndian.PutUint16(things[0:2], uint16(int16(0)))
	binary.LittleEndian.PutUint16(things[2:4], uint16(int16(0)))
	binary.LittleEndian.PutUint16(things[4:6], 0) // angle degrees
	binary.LittleEndian.PutUint16(things[6:8], 1) // doomednum 1: player start
	binary.LittleEndian.PutUint16(things[8:10], 7)
	add("THINGS", things)

	// VERTEXES: a 2000x2000 square room.
	vtx := func(x, y int16) [4]byte {
		var b [4]byte
		binary.LittleEndian.PutUint16(b[0:2], uint16(x))
		binary.LittleEndian.PutUint16(b[2:4], uint16(y))
		return b
	}
	verts := [][4]byte{vtx(-1000, -1000), vtx(1000, -1000), vtx(1000, 1000), vtx(-1000, 1000)}
	var vbuf bytes.Buffer
	for _, v := range verts {
		vbuf.Write(v[:])
	}
	add("VERTEXES", vbuf.Bytes())

	// LINEDEFS: four one-sided walls closing the square.
	ld := func(v1, v2 uint16, front uint16) [14]byte {
		var b [14]byte
		binary.LittleEndian.PutUint16(b[0:2], v1)
		binary.LittleEndian.PutUint16(b[2:4], v2)
		binary.LittleEndian.PutUint16(b[4:6], 0)                 // flags
		binary.LittleEndian.PutUint16(b[6:8], 0)                 // special
		binary.LittleEndian.PutUint16(b[8:10], 0)                // tag
		binary.LittleEndian.PutUint16(b[10:12], front)           // front side
		binary.LittleEndian.PutUint16(b[12:14], wad.NoSidedef)   // back side
		return b
	}
	var lbuf bytes.Buffer
	lines := [][14]byte{ld(0, 1, 0), ld(1, 2, 1), ld(2, 3, 2), ld(3, 0, 3)}
	for _, l := range lines {
		lbuf.Write(l[:])
	}
	add("LINEDEFS", lbuf.Bytes())

	// SIDEDEFS: four walls, all sector 0.
	sd := func() [30]byte {
		var b [30]byte
		putName(b[:], 4, "-")
		putName(b[:], 12, "-")
		putName(b[:], 20, "-")
		binary.LittleEndian.PutUint16(b[28:30], 0)
		return b
	}
	var sbuf bytes.Buffer
	for i := 0; i < 4; i++ {
		s := sd()
		sbuf.Write(s[:])
	}
	add("SIDEDEFS", sbuf.Bytes())

	// SEGS: one seg per linedef, matching direction, no partners.
	seg := func(v1, v2, lineDef uint16) [12]byte {
		var b [12]byte
		binary.LittleEndian.PutUint16(b[0:2], v1)
		binary.LittleEndian.PutUint16(b[2:4], v2)
		binary.LittleEndian.PutUint16(b[4:6], 0) // angle
		binary.LittleEndian.PutUint16(b[6:8], lineDef)
		binary.LittleEndian.PutUint16(b[8:10], 0)  // direction
		binary.LittleEndian.PutUint16(b[10:12], 0) // offset
		return b
	}
	var segbuf bytes.Buffer
	segs := [][12]byte{seg(0, 1, 0), seg(1, 2, 1), seg(2, 3, 2), seg(3, 0, 3)}
	for _, s := range segs {
		segbuf.Write(s[:])
	}
	add("SEGS", segbuf.Bytes())

	// SSECTORS: one subsector owning all four segs.
	ssector := make([]byte, 4)
	binary.LittleEndian.PutUint16(ssector[0:2], 4)
	binary.LittleEndian.PutUint16(ssector[2:4], 0)
	add("SSECTORS", ssector)

	// NODES: none; single-subsector maps need no BSP split.
	add("NODES", nil)

	// SECTORS: one room, floor 0 ceiling 128.
	sector := make([]byte, 26)
	binary.LittleEndian.PutUint16(sector[0:2], 0)
	binary.LittleEndian.PutUint16(sector[2:4], 128)
	putName(sector, 4, "FLOOR")
	putName(sector, 12, "CEIL")
	binary.LittleEndian.PutUint16(sector[20:22], 200)
	binary.LittleEndian.PutUint16(sector[22:24], 0)
	binary.LittleEndian.PutUint16(sector[24:26], 0)
	add("SECTORS", sector)

	add("REJECT", nil)
	add("BLOCKMAP", nil)

	// Assemble the WAD: header, lump data back to back, then directory.
	const entrySize = 16
	var body bytes.Buffer
	headerSize := uint32(12)

	// Map marker lump "E1M1" is zero-length and comes right before the
	// ten fixed map lumps; LoadMap finds them at marker+1..marker+10.
	type dirEntry struct {
		name string
		pos  uint32
		size uint32
	}
	var dir []dirEntry

	dir = append(dir, dirEntry{name: "PLAYPAL", pos: 0, size: 0})
	dir = append(dir, dirEntry{name: "COLORMAP", pos: 0, size: 0})
	dir = append(dir, dirEntry{name: "PNAMES", pos: 0, size: 0})
	dir = append(dir, dirEntry{name: "E1M1", pos: 0, size: 0})

	mapLumpOrder := []string{"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS", "SSECTORS", "NODES", "SECTORS", "REJECT", "BLOCKMAP"}
	for _, n := range mapLumpOrder {
		dir = append(dir, dirEntry{name: n})
	}

	byName := make(map[string][]byte, len(lumps))
	for _, l := range lumps {
		byName[l.name] = l.data
	}

	writeLump := func(name string) (pos, size uint32) {
		data := byName[name]
		pos = headerSize + uint32(body.Len())
		body.Write(data)
		return pos, uint32(len(data))
	}

	for i := range dir {
		if dir[i].name == "E1M1" {
			dir[i].pos = headerSize + uint32(body.Len())
			dir[i].size = 0
			continue
		}
		dir[i].pos, dir[i].size = writeLump(dir[i].name)
	}

	dirOffset := headerSize + uint32(body.Len())

	var out bytes.Buffer
	out.WriteString("IWAD")
	var numLumps [4]byte
	binary.LittleEndian.PutUint32(numLumps[:], uint32(len(dir)))
	out.Write(numLumps[:])
	var dirOff [4]byte
	binary.LittleEndian.PutUint32(dirOff[:], dirOffset)
	out.Write(dirOff[:])
	out.Write(body.Bytes())

	for _, e := range dir {
		var entry [entrySize]byte
		binary.LittleEndian.PutUint32(entry[0:4], e.pos)
		binary.LittleEndian.PutUint32(entry[4:8], e.size)
		var n [8]byte
		copy(n[:], e.name)
		copy(entry[8:16], n[:])
		out.Write(entry[:])
	}

	f, err := wad.Load(out.Bytes())
	require.NoError(t, err)
	return f
}

func newTestLevel(t *testing.T) *Level {
	t.Helper()
	f := buildTestWAD(t)
	lv, err := New(f, "E1M1", debug.NewLogger(64))
	require.NoError(t, err)
	return lv
}

func TestNewLoadsMapAndSpawnsPlayer(t *testing.T) {
	lv := newTestLevel(t)
	require.Len(t, lv.Players, 1)
	assert.NotEmpty(t, lv.SessionID)
}

func TestTickAdvancesTicsAtFixedRate(t *testing.T) {
	lv := newTestLevel(t)
	cmds := make([]player.TicCmd, len(lv.Players))
	lv.Tick(1.0, cmds) // one full second of accumulated time
	assert.Equal(t, int32(TicsPerSecond), lv.tics)
}

func TestTickCarriesFractionalRemainderAcrossCalls(t *testing.T) {
	lv := newTestLevel(t)
	cmds := make([]player.TicCmd, len(lv.Players))
	half := 1.0 / (2 * float64(TicsPerSecond))
	for i := 0; i < 2*TicsPerSecond; i++ {
		lv.Tick(half, cmds)
	}
	assert.Equal(t, int32(TicsPerSecond), lv.tics)
}

func TestExitLevelMarksLevelExited(t *testing.T) {
	lv := newTestLevel(t)
	exited, secret := lv.Exited()
	assert.False(t, exited)
	assert.False(t, secret)

	lv.ExitLevel(true)
	exited, secret = lv.Exited()
	assert.True(t, exited)
	assert.True(t, secret)
}

func TestWorldAdapterSatisfiesPlayerMovement(t *testing.T) {
	lv := newTestLevel(t)
	p := lv.Players[0]
	before := p.Mobj.Angle
	cmds := []player.TicCmd{{AngleTurn: 100}}
	lv.Tick(1.0/float64(TicsPerSecond), cmds)
	assert.NotEqual(t, before, p.Mobj.Angle)
}
