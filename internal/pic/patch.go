// Package pic is the texture/flat/sprite/palette store: wall
// textures composed once at load from WAD patches, 64x64 flat pages,
// sprite frame tables with 8-rotation lookups, the 14 palette variants,
// the 34 colormap remaps, and the light-scale index tables the renderer
// samples every column.
//
// The load-then-freeze shape mirrors a cartridge/ROM loader: parse a
// directory of named lumps once, expose read-only slices afterward.
package pic

import "fmt"

// TransparentPixel marks a masked column post's unwritten pixel; classic
// DOOM uses the palette's last entry (index 255, "MAX") for this.
const TransparentPixel = 255

// Patch is a decoded column-major WAD patch: a wall texture piece or a
// full sprite frame, posts-encoded.
type Patch struct {
	Width, Height int
	LeftOffset, TopOffset int
	// Columns[x] is Height pixels, TransparentPixel where no post wrote.
	Columns [][]byte
}

// DecodePatch parses a WadPatch: a header (width, height, left/top
// offset, per-column offsets) followed by posts terminated by
// y_offset==0xFF.
func DecodePatch(b []byte) (*Patch, error) {
	if len(b) < 8 {
		return nil, fmt.Errorf("pic: patch too small (%d bytes)", len(b))
	}
	width := int(u16(b[0:2]))
	height := int(u16(b[2:4]))
	left := int(i16(b[4:6]))
	top := int(i16(b[6:8]))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pic: patch has non-positive dimensions %dx%d", width, height)
	}

	colOffsetBase := 8
	if colOffsetBase+width*4 > len(b) {
		return nil, fmt.Errorf("pic: patch column directory runs past end of lump")
	}

	p := &Patch{Width: width, Height: height, LeftOffset: left, TopOffset: top}
	p.Columns = make([][]byte, width)

	for x := 0; x < width; x++ {
		col := make([]byte, height)
		for i := range col {
			col[i] = TransparentPixel
		}
		off := u32(b[colOffsetBase+x*4 : colOffsetBase+x*4+4])
		pos := int(off)
		for {
			if pos >= len(b) {
				break
			}
			yOff := b[pos]
			if yOff == 0xFF {
				break
			}
			if pos+1 >= len(b) {
				break
			}
			length := int(b[pos+1])
			pos += 3 // skip yOff, length, and the leading padding byte
			if pos+length > len(b) {
				break
			}
			for i := 0; i < length; i++ {
				y := int(yOff) + i
				if y < height {
					col[y] = b[pos+i]
				}
			}
			pos += length + 1 // skip pixels and trailing padding byte
		}
		p.Columns[x] = col
	}
	return p, nil
}

func u16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func i16(b []byte) int16 { return int16(u16(b)) }
func u32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
