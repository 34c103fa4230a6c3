package pic

import "fmt"

// SpriteFrame is one animation frame of a sprite: up to 8 rotation
// patches (or a single patch shared by all angles when the sprite
// isn't rotation-sensitive), each optionally horizontally flipped.
type SpriteFrame struct {
	Rotate bool
	// Patch[r] is the patch for viewing angle bucket r (0-7); all 8
	// entries alias the same *Patch when Rotate is false.
	Patch [8]*Patch
	// Flip[r] reports whether Patch[r] must be drawn mirrored — sprite
	// sets often reuse one patch for both left- and right-facing
	// rotations rather than storing two copies.
	Flip [8]bool
}

// SpriteDef is one sprite name's full set of frames (A, B, C, ...),
// each possibly split across up to 8 rotations.
type SpriteDef struct {
	Name string
	Frames []SpriteFrame
}

// spriteLumpEntry describes one lump contributing to a sprite set, e.g.
// "TROOA1" (frame A, rotation 0, used for every angle) or "TROOA2A8"
// (frame A rotation 2, reused mirrored for rotation 8's position).
// Classic DOOM's sprite naming convention: 4-char sprite name, then
// pairs of (frame-letter, rotation-digit), rotation 0 meaning
// "all angles, no mirroring", 1-8 meaning a specific rotation.
type spriteLumpEntry struct {
	lumpIndex int
	name string
}

// buildSpriteDef decodes the naming convention for one sprite's lumps
// into a SpriteDef, matching classic DOOM's R_InitSpriteDefs. Frames
// are indexed by letter ('A' = 0, 'B' = 1, ...); a name with two
// (letter, rotation) pairs contributes to both the named rotation and
// its mirrored counterpart using the same patch.
func buildSpriteDef(name string, entries []spriteLumpEntry, patches []*Patch, warn func(string)) *SpriteDef {
	maxFrame := 0
	for _, e := range entries {
		if len(e.name) < 6 {
			continue
		}
		frameLetter := e.name[4]
		frame := int(frameLetter - 'A')
		if frame < 0 || frame > 28 {
			continue
		}
		if frame+1 > maxFrame {
			maxFrame = frame + 1
		}
	}

	def := &SpriteDef{Name: name, Frames: make([]SpriteFrame, maxFrame)}

	for _, e := range entries {
		if len(e.name) < 6 {
			continue
		}
		frameLetter := e.name[4]
		rot1 := e.name[5]
		frame := int(frameLetter - 'A')
		if frame < 0 || frame >= maxFrame {
			continue
		}
		p := patches[e.lumpIndex]
		if p == nil {
			if warn != nil {
				warn(fmt.Sprintf("sprite %s frame %c: missing patch lump", name, frameLetter))
			}
			continue
		}

		fr := &def.Frames[frame]
		if rot1 == '0' {
			fr.Rotate = false
			for r := 0; r < 8; r++ {
				fr.Patch[r] = p
				fr.Flip[r] = false
			}
			continue
		}
		fr.Rotate = true
		r0 := int(rot1-'1') % 8
		fr.Patch[r0] = p
		fr.Flip[r0] = false

		if len(e.name) >= 8 {
			rot2 := e.name[7]
			if rot2 != '0' {
				r1 := int(rot2-'1') % 8
				fr.Patch[r1] = p
				fr.Flip[r1] = true
			}
		}
	}
	return def
}
