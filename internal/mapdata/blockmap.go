package mapdata

import (
	"encoding/binary"

	"github.com/doomgo/doomgo/internal/fixedmath"
)

// blockSize is the side length of a blockmap cell in map units: 128 units, the classic engine's fixed grid granularity.
const blockSize = 128

// Blockmap is the uniform grid spatial index over linedefs,
// used by movement/collision and line-of-sight tracing to avoid testing
// every linedef in the map against every probe. Each cell holds the
// indices of the linedefs that cross it; cell (0,0) sits at (originX,
// originY) and cells grow along +X, +Y.
type Blockmap struct {
	OriginX, OriginY fixedmath.Fixed
	Columns, Rows int32
	cellLines [][]LineID
}

// BlockX/BlockY convert a map-space point into blockmap cell coordinates.
// Callers must range-check against Columns/Rows before indexing.
func (bm *Blockmap) BlockX(p Vec2) int32 {
	return (p.X.Sub(bm.OriginX)).Int() / blockSize
}

func (bm *Blockmap) BlockY(p Vec2) int32 {
	return (p.Y.Sub(bm.OriginY)).Int() / blockSize
}

// LinesInBlock returns the linedef indices crossing cell (bx, by), or
// nil if the cell is out of range or empty.
func (bm *Blockmap) LinesInBlock(bx, by int32) []LineID {
	if bx < 0 || by < 0 || bx >= bm.Columns || by >= bm.Rows {
		return nil
	}
	return bm.cellLines[by*bm.Columns+bx]
}

// buildBlockmap decodes the BLOCKMAP lump's header and per-cell linked
// lists of 16-bit linedef indices: a header of origin X/Y,
// column/row counts, then one int16 offset per cell into the same lump,
// each offset pointing at a 0xFFFF-terminated run of linedef indices
// (preceded by a leading 0x0000 the original engine never used for
// anything but padding, which is skipped here same as there).
//
// A malformed or absent BLOCKMAP (some third-party PWADs ship without
// one, relying on a node-builder to regenerate it) degrades to an empty
// grid rather than failing the whole map load — callers fall back to
// brute-force linedef iteration when Blockmap.Columns is zero.
func buildBlockmap(raw []byte) *Blockmap {
	if len(raw) < 8 {
		return &Blockmap{}
	}
	originX := fixedmath.NewFixed(int32(int16(binary.LittleEndian.Uint16(raw[0:2]))))
	originY := fixedmath.NewFixed(int32(int16(binary.LittleEndian.Uint16(raw[2:4]))))
	cols := int32(binary.LittleEndian.Uint16(raw[4:6]))
	rows := int32(binary.LittleEndian.Uint16(raw[6:8]))

	bm := &Blockmap{
		OriginX: originX,
		OriginY: originY,
		Columns: cols,
		Rows: rows,
	}
	numCells := int(cols) * int(rows)
	if numCells <= 0 {
		return bm
	}
	offsetTable := raw[8:]
	if len(offsetTable) < numCells*2 {
		return &Blockmap{OriginX: originX, OriginY: originY}
	}

	bm.cellLines = make([][]LineID, numCells)
	for i := 0; i < numCells; i++ {
		off := int(binary.LittleEndian.Uint16(offsetTable[i*2 : i*2+2]))
		byteOff := off * 2
		if byteOff+2 > len(raw) {
			continue
		}
		pos := byteOff + 2 // skip the leading 0x0000 padding entry
		var lines []LineID
		for pos+2 <= len(raw) {
			v := binary.LittleEndian.Uint16(raw[pos : pos+2])
			if v == 0xFFFF {
				break
			}
			lines = append(lines, LineID(v))
			pos += 2
		}
		bm.cellLines[i] = lines
	}
	return bm
}
