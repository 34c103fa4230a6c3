package wad

import (
	"encoding/binary"
	"fmt"

	"github.com/doomgo/doomgo/internal/fixedmath"
)

// NoSidedef is the raw LINEDEFS back_side sentinel.
const NoSidedef uint16 = 0xFFFF

// The standard map lumps, always contiguous after a map marker.
var mapLumpNames = [...]string{
	"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES",
	"SEGS", "SSECTORS", "NODES", "SECTORS", "REJECT", "BLOCKMAP",
}

// Thing is a THINGS record: a placed actor or decoration.
type Thing struct {
	X, Y fixedmath.Fixed
	Angle fixedmath.Angle
	Type uint16
	Flags uint16
}

// Vertex is a raw VERTEXES record.
type Vertex struct {
	X, Y fixedmath.Fixed
}

// LineDef is a raw LINEDEFS record.
type LineDef struct {
	V1, V2 uint16
	Flags uint16
	Special int16
	Tag int16
	FrontSide, BackSide uint16
}

// SideDef is a raw SIDEDEFS record. Texture *names* are carried as
// strings (a "-" name means "no texture", classic DOOM's convention);
// MapData.Load resolves them against PicData's texture table because
// wad must not depend on pic (pic depends on wad for patch/flat bytes).
type SideDef struct {
	XOffset, YOffset fixedmath.Fixed
	TopName, BottomName, MidName string
	Sector uint16
}

// Sector is a raw SECTORS record; flat names are resolved the same way
// sidedef texture names are (see SideDef).
type Sector struct {
	FloorHeight, CeilingHeight fixedmath.Fixed
	FloorFlatName, CeilFlatName string
	LightLevel int16
	Special, Tag int16
}

// Seg is a raw SEGS record, already widened to 32-bit BAM.
type Seg struct {
	V1, V2 uint16
	Angle fixedmath.Angle
	LineDef uint16
	Direction uint16
	Offset fixedmath.Fixed
}

// SSector is a raw SSECTORS record.
type SSector struct {
	NumSegs uint16
	FirstSeg uint16
}

// Node is a raw NODES record; BBox/Children are pre-converted to the
// mapdata package's own BBox/uint32-child-index shape so mapdata never
// has to see wire-format bytes.
type Node struct {
	X, Y, DX, DY fixedmath.Fixed
	BBox [2]nodeBBox
	Children [2]uint32
}

// nodeBBox avoids an import of mapdata here (wad must not depend on
// mapdata — mapdata depends on wad); mapdata.Load converts this 1:1
// into its own BBox type.
type nodeBBox struct {
	Top, Bottom, Left, Right fixedmath.Fixed
}

// MapLumps bundles every parsed map lump MapData.Load needs, plus the
// raw REJECT/BLOCKMAP bytes those two lumps aren't restructured from
// (REJECT is a flat visibility bitmask, BLOCKMAP is linked lists of
// line indices keyed by grid cell — both kept as parsed-but-flat
// structures, see blockmap.go in mapdata for the consumer).
type MapLumps struct {
	Things []Thing
	Vertexes []Vertex
	Linedefs []LineDef
	Sidedefs []SideDef
	Segs []Seg
	Ssectors []SSector
	Nodes []Node
	Sectors []Sector
	Reject []byte
	Blockmap []byte
}

// LoadMap locates a map marker lump and decodes the ten lumps that
// follow it in the fixed order this specifies.
func (f *File) LoadMap(mapName string) (*MapLumps, error) {
	marker, err := f.MapMarkerIndex(mapName)
	if err != nil {
		return nil, err
	}

	offsets := make(map[string]int, len(mapLumpNames))
	for i, name := range mapLumpNames {
		idx := marker + 1 + i
		if idx >= f.LumpCount() || f.LumpName(idx) != name {
			return nil, fmt.Errorf("wad: map %q missing lump %q at expected position", mapName, name)
		}
		offsets[name] = idx
	}

	out := &MapLumps{}
	var err2 error
	out.Things, err2 = decodeThings(f.LumpAt(offsets["THINGS"]))
	if err2 != nil {
		return nil, fmt.Errorf("wad: THINGS: %w", err2)
	}
	out.Vertexes, err2 = decodeVertexes(f.LumpAt(offsets["VERTEXES"]))
	if err2 != nil {
		return nil, fmt.Errorf("wad: VERTEXES: %w", err2)
	}
	out.Linedefs, err2 = decodeLinedefs(f.LumpAt(offsets["LINEDEFS"]))
	if err2 != nil {
		return nil, fmt.Errorf("wad: LINEDEFS: %w", err2)
	}
	out.Sidedefs, err2 = decodeSidedefs(f.LumpAt(offsets["SIDEDEFS"]))
	if err2 != nil {
		return nil, fmt.Errorf("wad: SIDEDEFS: %w", err2)
	}
	out.Segs, err2 = decodeSegs(f.LumpAt(offsets["SEGS"]))
	if err2 != nil {
		return nil, fmt.Errorf("wad: SEGS: %w", err2)
	}
	out.Ssectors, err2 = decodeSSectors(f.LumpAt(offsets["SSECTORS"]))
	if err2 != nil {
		return nil, fmt.Errorf("wad: SSECTORS: %w", err2)
	}
	out.Nodes, err2 = decodeNodes(f.LumpAt(offsets["NODES"]))
	if err2 != nil {
		return nil, fmt.Errorf("wad: NODES: %w", err2)
	}
	out.Sectors, err2 = decodeSectors(f.LumpAt(offsets["SECTORS"]))
	if err2 != nil {
		return nil, fmt.Errorf("wad: SECTORS: %w", err2)
	}
	out.Reject = f.LumpAt(offsets["REJECT"])
	out.Blockmap = f.LumpAt(offsets["BLOCKMAP"])
	return out, nil
}

func i16(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) }
func u16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }

func fixedFromMapUnits(v int16) fixedmath.Fixed {
	return fixedmath.NewFixed(int32(v))
}

func bamFrom16(v uint16) fixedmath.Angle {
	return fixedmath.Angle(uint32(v) << 16)
}

func decodeThings(b []byte) ([]Thing, error) {
	const sz = 10
	if len(b)%sz != 0 {
		return nil, fmt.Errorf("truncated THINGS lump (%d bytes)", len(b))
	}
	out := make([]Thing, len(b)/sz)
	for i := range out {
		r := b[i*sz : i*sz+sz]
		out[i] = Thing{
			X: fixedFromMapUnits(i16(r[0:2])),
			Y: fixedFromMapUnits(i16(r[2:4])),
			Angle: bamFromDegrees16(u16(r[4:6])),
			Type: u16(r[6:8]),
			Flags: u16(r[8:10]),
		}
	}
	return out, nil
}

// bamFromDegrees16 converts a THING's 0-360 degree heading to BAM;
// THINGS store angle in degrees, unlike SEGS which stores a 16-bit BAM
// fraction directly.
func bamFromDegrees16(deg uint16) fixedmath.Angle {
	return fixedmath.RadianToBam(float64(deg) * (3.14159265358979323846 / 180.0))
}

func decodeVertexes(b []byte) ([]Vertex, error) {
	const sz = 4
	if len(b)%sz != 0 {
		return nil, fmt.Errorf("truncated VERTEXES lump (%d bytes)", len(b))
	}
	out := make([]Vertex, len(b)/sz)
	for i := range out {
		r := b[i*sz : i*sz+sz]
		out[i] = Vertex{X: fixedFromMapUnits(i16(r[0:2])), Y: fixedFromMapUnits(i16(r[2:4]))}
	}
	return out, nil
}

func decodeLinedefs(b []byte) ([]LineDef, error) {
	const sz = 14
	if len(b)%sz != 0 {
		return nil, fmt.Errorf("truncated LINEDEFS lump (%d bytes)", len(b))
	}
	out := make([]LineDef, len(b)/sz)
	for i := range out {
		r := b[i*sz : i*sz+sz]
		out[i] = LineDef{
			V1: u16(r[0:2]), V2: u16(r[2:4]),
			Flags: u16(r[4:6]), Special: i16(r[6:8]), Tag: i16(r[8:10]),
			FrontSide: u16(r[10:12]), BackSide: u16(r[12:14]),
		}
	}
	return out, nil
}

func decodeSidedefs(b []byte) ([]SideDef, error) {
	const sz = 30
	if len(b)%sz != 0 {
		return nil, fmt.Errorf("truncated SIDEDEFS lump (%d bytes)", len(b))
	}
	out := make([]SideDef, len(b)/sz)
	for i := range out {
		r := b[i*sz : i*sz+sz]
		out[i] = SideDef{
			XOffset: fixedFromMapUnits(i16(r[0:2])),
			YOffset: fixedFromMapUnits(i16(r[2:4])),
			TopName: cleanLumpName(r[4:12]),
			BottomName: cleanLumpName(r[12:20]),
			MidName: cleanLumpName(r[20:28]),
			Sector: u16(r[28:30]),
		}
	}
	return out, nil
}

func decodeSegs(b []byte) ([]Seg, error) {
	const sz = 12
	if len(b)%sz != 0 {
		return nil, fmt.Errorf("truncated SEGS lump (%d bytes)", len(b))
	}
	out := make([]Seg, len(b)/sz)
	for i := range out {
		r := b[i*sz : i*sz+sz]
		out[i] = Seg{
			V1: u16(r[0:2]), V2: u16(r[2:4]),
			Angle: bamFrom16(u16(r[4:6])),
			LineDef: u16(r[6:8]),
			Direction: u16(r[8:10]),
			Offset: fixedFromMapUnits(i16(r[10:12])),
		}
	}
	return out, nil
}

func decodeSSectors(b []byte) ([]SSector, error) {
	const sz = 4
	if len(b)%sz != 0 {
		return nil, fmt.Errorf("truncated SSECTORS lump (%d bytes)", len(b))
	}
	out := make([]SSector, len(b)/sz)
	for i := range out {
		r := b[i*sz : i*sz+sz]
		out[i] = SSector{NumSegs: u16(r[0:2]), FirstSeg: u16(r[2:4])}
	}
	return out, nil
}

func decodeNodes(b []byte) ([]Node, error) {
	const sz = 28
	if len(b)%sz != 0 {
		return nil, fmt.Errorf("truncated NODES lump (%d bytes)", len(b))
	}
	out := make([]Node, len(b)/sz)
	for i := range out {
		r := b[i*sz : i*sz+sz]
		n := Node{
			X: fixedFromMapUnits(i16(r[0:2])), Y: fixedFromMapUnits(i16(r[2:4])),
			DX: fixedFromMapUnits(i16(r[4:6])), DY: fixedFromMapUnits(i16(r[6:8])),
		}
		for side := 0; side < 2; side++ {
			base := 8 + side*8
			n.BBox[side] = nodeBBox{
				Top: fixedFromMapUnits(i16(r[base : base+2])),
				Bottom: fixedFromMapUnits(i16(r[base+2 : base+4])),
				Left: fixedFromMapUnits(i16(r[base+4 : base+6])),
				Right: fixedFromMapUnits(i16(r[base+6 : base+8])),
			}
		}
		c0 := u16(r[24:26])
		c1 := u16(r[26:28])
		n.Children[0] = widenChildIndex(c0)
		n.Children[1] = widenChildIndex(c1)
		out[i] = n
	}
	return out, nil
}

// widenChildIndex promotes a NODE lump's 16-bit child index (MSB =
// 0x8000 tags a subsector leaf) to mapdata's 32-bit convention (MSB =
// 0x8000_0000), so a map with more than 32767 subsectors is only
// limited by the wire format, not by this engine's internal index type.
func widenChildIndex(c uint16) uint32 {
	if c&0x8000 != 0 {
		return 0x8000_0000 | uint32(c&0x7FFF)
	}
	return uint32(c)
}

func decodeSectors(b []byte) ([]Sector, error) {
	const sz = 26
	if len(b)%sz != 0 {
		return nil, fmt.Errorf("truncated SECTORS lump (%d bytes)", len(b))
	}
	out := make([]Sector, len(b)/sz)
	for i := range out {
		r := b[i*sz : i*sz+sz]
		out[i] = Sector{
			FloorHeight: fixedFromMapUnits(i16(r[0:2])),
			CeilingHeight: fixedFromMapUnits(i16(r[2:4])),
			FloorFlatName: cleanLumpName(r[4:12]),
			CeilFlatName: cleanLumpName(r[12:20]),
			LightLevel: i16(r[20:22]),
			Special: i16(r[22:24]),
			Tag: i16(r[24:26]),
		}
	}
	return out, nil
}
