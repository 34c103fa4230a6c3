package pic

import (
	"fmt"
	"strings"

	"github.com/doomgo/doomgo/internal/debug"
	"github.com/doomgo/doomgo/internal/wad"
)

// PicData is the read-after-load texture/flat/sprite/palette store
//. Everything here is built once in Load and never
// reallocated afterward; the only mutation after init is the active
// palette index and sky picture, both single-writer from the sim
// thread between ticks.
type PicData struct {
	walls []*WallTexture
	wallIndex map[string]int32

	flats []*FlatPic
	flatIndex map[string]int32

	sprites []*SpriteDef
	spriteIndex map[string]int32

	palettes [PaletteCount]Palette
	colormaps [ColormapCount]Colormap

	lightScale lightScale
	zLightScale zLightScale

	activePalette int
	skyTexture int32

	logger *debug.Logger
}

// New returns an empty PicData; Load populates it from a WAD.
func New(logger *debug.Logger) *PicData {
	return &PicData{
		wallIndex: make(map[string]int32),
		flatIndex: make(map[string]int32),
		spriteIndex: make(map[string]int32),
		logger: logger,
	}
}

// Load builds every table from the named lumps in f: PLAYPAL, COLORMAP,
// PNAMES + TEXTURE1 (+ optional TEXTURE2), the F_START/F_END flat block,
// and the S_START/S_END sprite block.
func (p *PicData) Load(f *wad.File) error {
	playpalBytes, err := f.Lump("PLAYPAL")
	if err != nil {
		return fmt.Errorf("pic: %w", err)
	}
	p.palettes, err = decodePlaypal(playpalBytes)
	if err != nil {
		return fmt.Errorf("pic: %w", err)
	}

	colormapBytes, err := f.Lump("COLORMAP")
	if err != nil {
		return fmt.Errorf("pic: %w", err)
	}
	p.colormaps, err = decodeColormap(colormapBytes)
	if err != nil {
		return fmt.Errorf("pic: %w", err)
	}

	p.lightScale = buildLightScale()
	p.zLightScale = buildZLightScale()

	if err := p.loadTextures(f); err != nil {
		return fmt.Errorf("pic: %w", err)
	}
	if err := p.loadFlats(f); err != nil {
		return fmt.Errorf("pic: %w", err)
	}
	if err := p.loadSprites(f); err != nil {
		return fmt.Errorf("pic: %w", err)
	}
	return nil
}

func (p *PicData) warn(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Logf(debug.ComponentPic, debug.LogLevelWarning, format, args...)
	}
}

func (p *PicData) loadTextures(f *wad.File) error {
	pnamesBytes, err := f.Lump("PNAMES")
	if err != nil {
		return err
	}
	pnames, err := decodePNames(pnamesBytes)
	if err != nil {
		return err
	}

	patchLumps := make([]*Patch, len(pnames))
	for i, name := range pnames {
		idx := f.LumpIndex(name)
		if idx < 0 {
			p.warn("PNAMES entry %q not found in WAD, textures using it get a blank column", name)
			continue
		}
		patch, err := DecodePatch(f.LumpAt(idx))
		if err != nil {
			p.warn("patch %q failed to decode: %v", name, err)
			continue
		}
		patchLumps[i] = patch
	}

	var defs []textureDef
	for _, lumpName := range [...]string{"TEXTURE1", "TEXTURE2"} {
		idx := f.LumpIndex(lumpName)
		if idx < 0 {
			continue
		}
		d, err := decodeTextureLump(f.LumpAt(idx))
		if err != nil {
			return fmt.Errorf("%s: %w", lumpName, err)
		}
		defs = append(defs, d...)
	}

	p.walls = make([]*WallTexture, 0, len(defs))
	for _, def := range defs {
		tex := composeTexture(def, patchLumps, func(msg string) { p.warn("%s", msg) })
		p.wallIndex[tex.Name] = int32(len(p.walls))
		p.walls = append(p.walls, tex)
	}
	return nil
}

func (p *PicData) loadFlats(f *wad.File) error {
	start := f.LumpIndex("F_START")
	end := f.LumpIndex("F_END")
	if start < 0 || end < 0 || end <= start {
		return nil // some PWADs add no new flats
	}
	for idx := start + 1; idx < end; idx++ {
		name := f.LumpName(idx)
		if strings.HasSuffix(name, "_START") || strings.HasSuffix(name, "_END") {
			continue // marker lumps subdividing the flat block
		}
		raw := f.LumpAt(idx)
		flat, clamped := decodeFlat(name, raw)
		if clamped {
			p.warn("flat %q is %d bytes, expected %d; clamped", name, len(raw), FlatSize*FlatSize)
		}
		p.flatIndex[name] = int32(len(p.flats))
		p.flats = append(p.flats, flat)
	}
	return nil
}

func (p *PicData) loadSprites(f *wad.File) error {
	start := f.LumpIndex("S_START")
	end := f.LumpIndex("S_END")
	if start < 0 || end < 0 || end <= start {
		return nil
	}

	bySprite := make(map[string][]spriteLumpEntry)
	var order []string
	patchByLump := make(map[int]*Patch)

	for idx := start + 1; idx < end; idx++ {
		name := f.LumpName(idx)
		if strings.HasSuffix(name, "_START") || strings.HasSuffix(name, "_END") {
			continue
		}
		if len(name) < 6 {
			p.warn("sprite lump %q too short to name a frame/rotation, skipped", name)
			continue
		}
		spriteName := name[0:4]
		patch, err := DecodePatch(f.LumpAt(idx))
		if err != nil {
			p.warn("sprite patch %q failed to decode: %v", name, err)
			continue
		}
		patchByLump[idx] = patch
		if _, seen := bySprite[spriteName]; !seen {
			order = append(order, spriteName)
		}
		bySprite[spriteName] = append(bySprite[spriteName], spriteLumpEntry{lumpIndex: idx, name: name})
	}

	for _, name := range order {
		entries := bySprite[name]
		patches := make([]*Patch, end)
		for _, e := range entries {
			patches[e.lumpIndex] = patchByLump[e.lumpIndex]
		}
		def := buildSpriteDef(name, entries, patches, func(msg string) { p.warn("%s", msg) })
		p.spriteIndex[name] = int32(len(p.sprites))
		p.sprites = append(p.sprites, def)
	}
	return nil
}

// --- this contract ---

// WallTextureID resolves a texture name to its numeric id, or -1 for
// "-" / an unknown name.
func (p *PicData) WallTextureID(name string) int32 {
	if name == "" || name == "-" {
		return -1
	}
	if id, ok := p.wallIndex[name]; ok {
		return id
	}
	p.warn("unknown wall texture %q", name)
	return -1
}

// FlatID resolves a flat name to its numeric id.
func (p *PicData) FlatID(name string) int32 {
	if id, ok := p.flatIndex[name]; ok {
		return id
	}
	p.warn("unknown flat %q", name)
	return -1
}

// WallPicColumn returns the composed column, wrapping if column >= width.
func (p *PicData) WallPicColumn(textureID int32, column int) []byte {
	return p.walls[textureID].Column(column)
}

// WallTexture returns a composed wall texture by id.
func (p *PicData) WallTexture(textureID int32) *WallTexture { return p.walls[textureID] }

// GetFlat returns the 64x64 page for a flat id.
func (p *PicData) GetFlat(flatID int32) *FlatPic { return p.flats[flatID] }

// SpriteNum resolves a sprite name to its numeric id.
func (p *PicData) SpriteNum(name string) int32 {
	if id, ok := p.spriteIndex[name]; ok {
		return id
	}
	return -1
}

// SpriteDef returns the frame/rotation table for a sprite id.
func (p *PicData) SpriteDef(spriteNum int32) *SpriteDef { return p.sprites[spriteNum] }

// VertLightColourmap picks a wall column's colormap from the sector's
// light level and the column's projected scale.
func (p *PicData) VertLightColourmap(lightLevel int32, wallScale int) *Colormap {
	bucket := int(lightLevel) >> 4
	if bucket >= LightLevels {
		bucket = LightLevels - 1
	}
	if bucket < 0 {
		bucket = 0
	}
	col := wallScale >> 6
	if col >= wallScaleBuckets {
		col = wallScaleBuckets - 1
	}
	if col < 0 {
		col = 0
	}
	return &p.colormaps[p.lightScale[bucket][col]]
}

// FlatLightColourmap picks a floor/ceiling span's colormap from light
// level and projected distance.
func (p *PicData) FlatLightColourmap(lightLevel int32, distance int) *Colormap {
	bucket := int(lightLevel) >> 4
	if bucket >= LightLevels {
		bucket = LightLevels - 1
	}
	if bucket < 0 {
		bucket = 0
	}
	zb := distance >> 8
	if zb >= zBuckets {
		zb = zBuckets - 1
	}
	if zb < 0 {
		zb = 0
	}
	return &p.colormaps[p.zLightScale[bucket][zb]]
}

// SpriteLightColourmap is the same lookup vert_light uses, provided
// separately per the contract shape even though sprites key off
// the same wall-scale table as columns do.
func (p *PicData) SpriteLightColourmap(lightLevel int32, scale int) *Colormap {
	return p.VertLightColourmap(lightLevel, scale)
}

// SetPlayerPalette applies the precedence in this and remembers
// the chosen palette index for the next host-side present.
func (p *PicData) SetPlayerPalette(damageCount, bonusCount, berserkDamage int, radiationActive, radiationFlicker bool) {
	p.activePalette = PalettePrecedence(damageCount, bonusCount, berserkDamage, radiationActive, radiationFlicker)
}

// ActivePalette returns the RGB triples for the currently selected
// palette, for the host to expand the indexed framebuffer with.
func (p *PicData) ActivePalette() *Palette {
	return &p.palettes[p.activePalette]
}

// SkyName resolves which sky texture name a given episode/map should
// use: commercial (map-number-only, no episode) uses three
// thresholds; registered/shareware select by episode number.
func SkyName(commercial bool, episode, mapNum int) string {
	if commercial {
		switch {
		case mapNum < 12:
			return "SKY1"
		case mapNum < 21:
			return "SKY2"
		default:
			return "SKY3"
		}
	}
	switch episode {
	case 1:
		return "SKY1"
	case 2:
		return "SKY2"
	case 3:
		return "SKY3"
	default:
		return "SKY4"
	}
}

// SetSkyTexture records the resolved sky texture id for the renderer's
// special-cased sky column draw.
func (p *PicData) SetSkyTexture(id int32) { p.skyTexture = id }

// SkyTexture returns the current sky texture id.
func (p *PicData) SkyTexture() int32 { return p.skyTexture }
