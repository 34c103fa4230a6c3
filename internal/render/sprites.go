package render

import (
	"math"
	"sort"

	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/mobj"
	"github.com/doomgo/doomgo/internal/pic"
)

// visSprite is one mobj projected to screen space, the doomgo analogue
// of vanilla's vissprite_t: column range,
// distance for sorting/depth-test and the patch to sample.
type visSprite struct {
	x1, x2 int
	dist float64
	scale float64
	topRow int // screen row the sprite's top edge projects to
	patch *pic.Patch
	flip bool
}

// drawSprites collects every mobj touching the map into
// view-projected vissprites, then paints them back-to-front so a nearer
// monster's columns correctly overdraw a farther one. This replaces
// vanilla's R_DrawMasked drawseg-silhouette clipping with the simpler
// per-column depth test wallPainter.columnDepth already maintains, at
// the cost of sprites not clipping each other by silhouette.
func (r *Renderer) drawSprites(v *view, wp *wallPainter, viewer *mobj.MapObject) {
	var sprites []visSprite
	for i := range r.md.Sectors {
		r.mobjs.RunFuncOnThinglist(mapdata.SectorID(i), func(m *mobj.MapObject) bool {
			if m == viewer {
				return true
			}
			if vs, ok := r.projectSprite(v, m); ok {
				sprites = append(sprites, vs)
			}
			return true
		})
	}

	sort.Slice(sprites, func(i, j int) bool { return sprites[i].dist > sprites[j].dist })

	for _, vs := range sprites {
		r.paintSprite(wp, vs)
	}
}

// projectSprite turns one mobj into a vissprite, or reports ok=false
// for one behind the viewer or with no renderable frame.
func (r *Renderer) projectSprite(v *view, m *mobj.MapObject) (visSprite, bool) {
	if m.Sprite < 0 || m.State == 0 {
		return visSprite{}, false
	}
	def := r.pics.SpriteDef(m.Sprite)
	if def == nil {
		return visSprite{}, false
	}
	frameNum := m.Frame &^ mobj.FullBright
	if int(frameNum) >= len(def.Frames) {
		return visSprite{}, false
	}
	frame := def.Frames[int(frameNum)]

	toMobj := mapdata.Vec2{X: m.X.Sub(v.x), Y: m.Y.Sub(v.y)}
	angleToView := fixedmath.PointToAngle(toMobj.X, toMobj.Y)
	rel := v.relativeAngle(angleToView)
	if off := signedOffset(rel); off > int32(halfFOV)+int32(halfFOV)/2 || off < -int32(halfFOV)-int32(halfFOV)/2 {
		return visSprite{}, false
	}

	dx := fixedmath.FixedToFloat(toMobj.X)
	dy := fixedmath.FixedToFloat(toMobj.Y)
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return visSprite{}, false
	}

	relRad := fixedmath.BamToRadian(rel)
	perp := dist * math.Cos(relRad)
	if perp < 1 {
		return visSprite{}, false
	}

	rot := 0
	var patch *pic.Patch
	flip := false
	if frame.Rotate {
		viewAngle := fixedmath.PointToAngle(v.x.Sub(m.X), v.y.Sub(m.Y)) - m.Angle
		rot = int((uint32(viewAngle) + uint32(fixedmath.Angle45)/2) >> 29)
	}
	patch = frame.Patch[rot]
	flip = frame.Flip[rot]
	if patch == nil {
		return visSprite{}, false
	}

	scale := float64(v.centerX) / perp
	if scale > 64 {
		scale = 64
	}
	xCenter := v.angleToX(clipToFOV(rel))

	widthScreen := float64(patch.Width) * scale
	halfW := int(widthScreen / 2)

	// worldTop is the sprite's top edge in world Z, the same convention
	// wallPainter.paintSpan projects from: screen row = centerY -
	// (worldHeight - viewZ) * scale.
	worldTop := fixedmath.FixedToFloat(m.Z) + float64(patch.TopOffset) - fixedmath.FixedToFloat(v.z)
	topRow := v.centerY - int(worldTop*scale)

	return visSprite{
		x1: xCenter - halfW,
		x2: xCenter + halfW,
		dist: perp,
		scale: scale,
		topRow: topRow,
		patch: patch,
		flip: flip,
	}, true
}

// paintSprite draws a masked sprite column range, skipping any column
// occluded by a nearer wall (wallPainter.columnDepth) or off-screen.
func (r *Renderer) paintSprite(wp *wallPainter, vs visSprite) {
	width := vs.x2 - vs.x1
	if width <= 0 {
		return
	}
	colormap := r.pics.SpriteLightColourmap(128, int(vs.scale*64))
	heightScreen := float64(vs.patch.Height) * vs.scale

	top := vs.topRow
	bot := vs.topRow + int(heightScreen)
	if top < 0 {
		top = 0
	}
	if bot > wp.frame.height {
		bot = wp.frame.height
	}
	if top >= bot || vs.patch.Height == 0 {
		return
	}

	for x := vs.x1; x <= vs.x2; x++ {
		if x < 0 || x >= wp.frame.width {
			continue
		}
		if vs.dist >= wp.columnDepth[x] {
			continue
		}
		frac := float64(x-vs.x1) / float64(width)
		col := int(frac * float64(vs.patch.Width))
		if vs.flip {
			col = vs.patch.Width - 1 - col
		}
		if col < 0 || col >= vs.patch.Width {
			continue
		}
		pixels := vs.patch.Columns[col]

		for y := top; y < bot; y++ {
			row := (y - vs.topRow) * vs.patch.Height / int(heightScreen)
			if row < 0 || row >= vs.patch.Height {
				continue
			}
			px := pixels[row]
			if px == pic.TransparentPixel {
				continue
			}
			wp.frame.set(x, y, colormap[px])
		}
	}
}
