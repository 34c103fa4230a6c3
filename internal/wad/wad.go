// Package wad is the lump-level WAD reader, kept outside the engine's
// core. MapData and PicData are its only two callers, so the
// byte-level parsing lives here as a thin, dependency-free layer they
// both build on — the same role a cartridge/ROM loader plays for a
// CPU/PPU/APU pipeline: validate a header, expose named regions of an
// opaque byte blob, let the real owners (MapData, PicData) interpret
// the bytes.
package wad

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// File is a parsed WAD directory over an in-memory byte slice. Loading
// an IWAD/PWAD never copies lump bytes until a caller asks for one by
// name, the same lazy-slice-into-the-raw-blob pattern a ROM loader
// uses instead of copying everything up front.
type File struct {
	kind      string // "IWAD" or "PWAD"
	data      []byte
	lumps     []lumpInfo
	nameIndex map[string][]int // duplicate names keep all indices, last wins on lookup
}

type lumpInfo struct {
	name     string
	filePos  uint32
	size     uint32
}

// Load parses a WAD's header and directory. It does not validate lump
// contents — only Open/Load callers (MapData, PicData) know the shape
// each lump should have.
func Load(data []byte) (*File, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("wad: file too small to contain a header (%d bytes)", len(data))
	}
	kind := string(data[0:4])
	if kind != "IWAD" && kind != "PWAD" {
		return nil, fmt.Errorf("wad: bad magic %q, want IWAD or PWAD", kind)
	}
	numLumps := binary.LittleEndian.Uint32(data[4:8])
	dirOffset := binary.LittleEndian.Uint32(data[8:12])

	f := &File{kind: kind, data: data, nameIndex: make(map[string][]int)}

	const entrySize = 16
	need := uint64(dirOffset) + uint64(numLumps)*entrySize
	if need > uint64(len(data)) {
		return nil, fmt.Errorf("wad: directory (%d entries at offset %d) runs past end of file", numLumps, dirOffset)
	}

	f.lumps = make([]lumpInfo, numLumps)
	for i := uint32(0); i < numLumps; i++ {
		off := dirOffset + i*entrySize
		entry := data[off : off+entrySize]
		pos := binary.LittleEndian.Uint32(entry[0:4])
		size := binary.LittleEndian.Uint32(entry[4:8])
		name := cleanLumpName(entry[8:16])
		f.lumps[i] = lumpInfo{name: name, filePos: pos, size: size}
		f.nameIndex[name] = append(f.nameIndex[name], int(i))
	}
	return f, nil
}

func cleanLumpName(raw []byte) string {
	n := 0
	for n < len(raw) && raw[n] != 0 {
		n++
	}
	return strings.ToUpper(string(raw[:n]))
}

// Kind returns "IWAD" or "PWAD".
func (f *File) Kind() string { return f.kind }

// LumpIndex returns the last (highest-priority, PWADs override IWAD
// lumps by appearing later in the directory) index of a named lump,
// or -1 if it's absent.
func (f *File) LumpIndex(name string) int {
	idxs := f.nameIndex[strings.ToUpper(name)]
	if len(idxs) == 0 {
		return -1
	}
	return idxs[len(idxs)-1]
}

// Lump returns the raw bytes of a named lump.
func (f *File) Lump(name string) ([]byte, error) {
	idx := f.LumpIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("wad: lump %q not found", name)
	}
	return f.LumpAt(idx), nil
}

// LumpAt returns the raw bytes of the lump at a directory index.
func (f *File) LumpAt(idx int) []byte {
	l := f.lumps[idx]
	return f.data[l.filePos : l.filePos+l.size]
}

// LumpName returns the directory name at an index.
func (f *File) LumpName(idx int) string { return f.lumps[idx].name }

// LumpCount returns the number of directory entries.
func (f *File) LumpCount() int { return len(f.lumps) }

// MapMarkerIndex finds a map marker lump ("E1M1", "MAP01", ...).
func (f *File) MapMarkerIndex(mapName string) (int, error) {
	idx := f.LumpIndex(mapName)
	if idx < 0 {
		return -1, fmt.Errorf("wad: map marker %q not found", mapName)
	}
	return idx, nil
}
