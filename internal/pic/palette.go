package pic

import "fmt"

// PaletteCount and ColormapCount are PLAYPAL/COLORMAP's fixed variant
// counts: 14 palettes (normal, 8 damage-red tints, 4
// bonus-yellow tints, 1 radiation-green), 34 colormaps (32 progressive
// dimming levels, 1 invulnerability inverse, 1 unused).
const (
	PaletteCount = 14
	ColormapCount = 34
	ColormapSize = 256
	PaletteEntrySize = 768 // 256 RGB triples
)

// RGB is one palette entry.
type RGB struct{ R, G, B byte }

// Palette is one of the 14 768-byte PLAYPAL variants, expanded to RGB
// triples for host presentation.
type Palette [256]RGB

// Colormap is one of the 34 256-byte COLORMAP remap tables: index by
// source palette index, get the dimmed/tinted replacement index.
type Colormap [ColormapSize]byte

// decodePlaypal splits PLAYPAL into its 14 palettes.
func decodePlaypal(b []byte) ([PaletteCount]Palette, error) {
	var out [PaletteCount]Palette
	need := PaletteCount * PaletteEntrySize
	if len(b) < need {
		return out, fmt.Errorf("pic: PLAYPAL too short (%d bytes, want %d)", len(b), need)
	}
	for p := 0; p < PaletteCount; p++ {
		base := p * PaletteEntrySize
		for i := 0; i < 256; i++ {
			o := base + i*3
			out[p][i] = RGB{R: b[o], G: b[o+1], B: b[o+2]}
		}
	}
	return out, nil
}

// decodeColormap splits COLORMAP into its 34 remap tables.
func decodeColormap(b []byte) ([ColormapCount]Colormap, error) {
	var out [ColormapCount]Colormap
	need := ColormapCount * ColormapSize
	if len(b) < need {
		return out, fmt.Errorf("pic: COLORMAP too short (%d bytes, want %d)", len(b), need)
	}
	for c := 0; c < ColormapCount; c++ {
		copy(out[c][:], b[c*ColormapSize:(c+1)*ColormapSize])
	}
	return out, nil
}

// PalettePrecedence picks one of the 14 palette indices from a player's
// damage/bonus/radiation/berserk counters, the same
// precedence order classic DOOM's ST_doPaletteStuff applies: berserk
// folds into the damage count if it's the larger of the two, then
// damage, then bonus, then the radiation-suit flicker, else normal.
func PalettePrecedence(damageCount, bonusCount, berserkDamage int, radiationActive bool, radiationFlicker bool) int {
	if berserkDamage > damageCount {
		damageCount = berserkDamage
	}
	switch {
	case damageCount > 0:
		idx := (damageCount + 7) / 8
		if idx > 7 {
			idx = 7
		}
		return idx + 1
	case bonusCount > 0:
		idx := (bonusCount + 7) / 8
		if idx > 3 {
			idx = 3
		}
		return idx + 9
	case radiationActive && radiationFlicker:
		return 13
	default:
		return 0
	}
}
