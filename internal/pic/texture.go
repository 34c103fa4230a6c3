package pic

import (
	"encoding/binary"
	"fmt"
)

// WallTexture is a composed wall texture: patches rasterised column-major
// into one Width x Height page, TransparentPixel marking unwritten
// pixels in masked mid-textures.
type WallTexture struct {
	Name string
	Width, Height int
	Columns [][]byte
}

// Column returns the composed column, wrapping modulo width so a
// column index computed from an unbounded world offset never panics
//.
func (t *WallTexture) Column(col int) []byte {
	col %= t.Width
	if col < 0 {
		col += t.Width
	}
	return t.Columns[col]
}

type patchPlacement struct {
	patchIndex int
	originX int
	originY int
}

// textureDef is an undecoded entry from TEXTURE1/TEXTURE2, referencing
// patches by PNAMES index; each is composed when the textures are
// loaded, and a missing patch is skipped with a warning so it degrades
// one texture instead of failing the whole lump.
type textureDef struct {
	name string
	width, height int
	patches []patchPlacement
}

// decodePNames parses the PNAMES lump: a count followed by that many
// 8-byte patch names, indexing into the patch lumps by name.
func decodePNames(b []byte) ([]string, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("pic: PNAMES truncated")
	}
	count := int(binary.LittleEndian.Uint32(b[0:4]))
	need := 4 + count*8
	if need > len(b) {
		return nil, fmt.Errorf("pic: PNAMES declares %d names but lump is too short", count)
	}
	names := make([]string, count)
	for i := 0; i < count; i++ {
		names[i] = cleanName(b[4+i*8 : 4+i*8+8])
	}
	return names, nil
}

// decodeTextureLump parses TEXTURE1 or TEXTURE2: a count, that many
// int32 offsets, then at each offset a maptexture_t record (name,
// masked flag, width, height, columndirectory, patchcount, then
// patchcount mappatch_t entries: originx, originy, patch index into
// PNAMES, stepdir, colormap — the last two are unused by this renderer
// and ignored).
func decodeTextureLump(b []byte) ([]textureDef, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("pic: texture lump truncated")
	}
	count := int(binary.LittleEndian.Uint32(b[0:4]))
	if 4+count*4 > len(b) {
		return nil, fmt.Errorf("pic: texture lump declares %d textures but offset table is too short", count)
	}
	defs := make([]textureDef, count)
	for i := 0; i < count; i++ {
		off := int(binary.LittleEndian.Uint32(b[4+i*4 : 4+i*4+4]))
		if off < 0 || off+22 > len(b) {
			return nil, fmt.Errorf("pic: texture %d offset %d out of range", i, off)
		}
		r := b[off:]
		name := cleanName(r[0:8])
		width := int(binary.LittleEndian.Uint16(r[12:14]))
		height := int(binary.LittleEndian.Uint16(r[14:16]))
		patchCount := int(binary.LittleEndian.Uint16(r[20:22]))

		patches := make([]patchPlacement, patchCount)
		base := off + 22
		for p := 0; p < patchCount; p++ {
			pOff := base + p*10
			if pOff+10 > len(b) {
				return nil, fmt.Errorf("pic: texture %q patch %d runs past end of lump", name, p)
			}
			pr := b[pOff : pOff+10]
			patches[p] = patchPlacement{
				originX: int(int16(binary.LittleEndian.Uint16(pr[0:2]))),
				originY: int(int16(binary.LittleEndian.Uint16(pr[2:4]))),
				patchIndex: int(binary.LittleEndian.Uint16(pr[4:6])),
			}
		}
		defs[i] = textureDef{name: name, width: width, height: height, patches: patches}
	}
	return defs, nil
}

func cleanName(raw []byte) string {
	n := 0
	for n < len(raw) && raw[n] != 0 {
		n++
	}
	s := string(raw[:n])
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// composeTexture rasterises a textureDef's patches into one page,
// pre-filled transparent; a patch name missing from the loaded patch
// set is skipped (warned by the caller) rather than aborting the whole
// texture.
func composeTexture(def textureDef, patchLumps []*Patch, warn func(msg string)) *WallTexture {
	t := &WallTexture{Name: def.name, Width: def.width, Height: def.height}
	t.Columns = make([][]byte, def.width)
	for x := range t.Columns {
		col := make([]byte, def.height)
		for i := range col {
			col[i] = TransparentPixel
		}
		t.Columns[x] = col
	}

	for _, pp := range def.patches {
		if pp.patchIndex < 0 || pp.patchIndex >= len(patchLumps) || patchLumps[pp.patchIndex] == nil {
			if warn != nil {
				warn(fmt.Sprintf("texture %q references missing patch index %d", def.name, pp.patchIndex))
			}
			continue
		}
		src := patchLumps[pp.patchIndex]
		for sx := 0; sx < src.Width; sx++ {
			dx := pp.originX + sx
			if dx < 0 || dx >= t.Width {
				continue
			}
			srcCol := src.Columns[sx]
			dstCol := t.Columns[dx]
			for sy := 0; sy < src.Height; sy++ {
				dy := pp.originY + sy
				if dy < 0 || dy >= t.Height {
					continue
				}
				px := srcCol[sy]
				if px != TransparentPixel {
					dstCol[dy] = px
				}
			}
		}
	}
	return t
}
