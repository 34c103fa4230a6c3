package render

import (
	"math"

	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/pic"
)

// rayLength is how far the per-column ray cast extends in map units
// before giving up on finding an intersection; generous enough to
// reach across any vanilla-sized map from any point inside it.
const rayLength = 1 << 20

// wallPainter holds everything one call to Render needs threaded
// through the BSP walk: the shared destination frame, the current
// view, the map/texture stores, the column occlusion list and the
// per-column nearest-wall depth the sprite pass tests against.
type wallPainter struct {
	frame *Frame
	view *view
	md *mapdata.MapData
	pics *pic.PicData
	segs *solidSegs

	// columnDepth[x] is the map-unit distance to the nearest wall
	// painted into column x so far, or +Inf if nothing has. Sprites
	// reuse it the way a standalone depth buffer would: a per-pixel
	// (here per-column, since doomgo draws sprites one column at a time
	// same as walls) nearer-wins test instead of vanilla's drawseg
	// silhouette clipping.
	columnDepth []float64
}

func newWallPainter(frame *Frame, v *view, md *mapdata.MapData, pics *pic.PicData) *wallPainter {
	wp := &wallPainter{
		frame: frame,
		view: v,
		md: md,
		pics: pics,
		segs: newSolidSegs(v.width),
		columnDepth: make([]float64, v.width),
	}
	for i := range wp.columnDepth {
		wp.columnDepth[i] = math.Inf(1)
	}
	return wp
}

// addLine is the per-seg entry point, grounded on R_AddLine: reject the
// seg if it faces away from the viewer or falls entirely outside the
// view cone, project its two endpoints to screen columns, then hand the
// column span to the solid/open wall painter.
func (wp *wallPainter) addLine(seg *mapdata.Segment) {
	v1, v2 := wp.md.SegVertices(seg)
	angle1 := wp.view.pointToAngle(v1)
	angle2 := wp.view.pointToAngle(v2)

	rel1 := wp.view.relativeAngle(angle1)
	rel2 := wp.view.relativeAngle(angle2)

	// Backface cull: angle1-angle2, both left unsubtracted from the
	// view, spans >= 180 degrees for a seg facing away from the
	// viewpoint. angle1-angle2 == rel2-rel1 since
	// both were offset by the same view angle.
	span := rel2 - rel1
	if signedOffset(span) < 0 {
		return
	}

	// Entirely off one edge of the FOV: both endpoints clipped to the
	// same side leaves nothing to draw.
	off1, off2 := signedOffset(rel1), signedOffset(rel2)
	if off1 > int32(halfFOV) && off2 > int32(halfFOV) {
		return
	}
	if off1 < -int32(halfFOV) && off2 < -int32(halfFOV) {
		return
	}

	x1 := wp.view.angleToX(clipToFOV(rel1))
	x2 := wp.view.angleToX(clipToFOV(rel2))
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	x1 = clampInt(x1, 0, wp.view.width-1)
	x2 = clampInt(x2, 0, wp.view.width-1)
	if x1 > x2 {
		return
	}

	line := wp.md.Line(seg.Line)
	side := wp.md.Side(seg.Side)
	frontSec := wp.md.Sector(seg.FrontSector)

	var backSec *mapdata.Sector
	if seg.BackSector != mapdata.NoSector {
		backSec = wp.md.Sector(seg.BackSector)
	}

	// A two-sided line whose back sector's opening is fully closed
	// (a closed door, or a sector entirely below/above the other) draws
	// and occludes exactly like a one-sided wall.
	closed := backSec == nil || backSec.CeilingHeight <= frontSec.FloorHeight || backSec.FloorHeight >= frontSec.CeilingHeight

	if wp.segs.fullyOccluded(x1, x2) {
		return
	}

	if closed {
		wp.segs.clipSolidSeg(x1, x2, func(a, b int) {
			wp.paintColumns(seg, line, side, frontSec, backSec, a, b)
		})
		return
	}

	wp.paintColumns(seg, line, side, frontSec, backSec, x1, x2)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// paintColumns draws screen columns [x1,x2] of one seg: for a one-sided
// or closed two-sided line this is the whole floor-to-ceiling span; for
// an open portal it is the upper step, lower step and (if present) the
// masked middle texture, with the gap between front and back plane
// filled as floor/ceiling.
func (wp *wallPainter) paintColumns(seg *mapdata.Segment, line *mapdata.LineDef, side *mapdata.SideDef, frontSec, backSec *mapdata.Sector, x1, x2 int) {
	v1, v2 := wp.md.SegVertices(seg)
	v1f, v2f := toPoint2f(v1), toPoint2f(v2)
	segDX, segDY := v2f.x-v1f.x, v2f.y-v1f.y
	segLen := math.Hypot(segDX, segDY)
	if segLen < 1e-6 {
		return
	}

	origin := point2f{x: fixedmath.FixedToFloat(wp.view.x), y: fixedmath.FixedToFloat(wp.view.y)}
	viewZ := fixedmath.FixedToFloat(wp.view.z)

	var tex, topTex, botTex *pic.WallTexture
	if side.MidTexture >= 0 {
		tex = wp.pics.WallTexture(side.MidTexture)
	}
	if side.TopTexture >= 0 {
		topTex = wp.pics.WallTexture(side.TopTexture)
	}
	if side.BottomTexture >= 0 {
		botTex = wp.pics.WallTexture(side.BottomTexture)
	}
	xOffset := fixedmath.FixedToFloat(side.XOffset)
	yOffset := fixedmath.FixedToFloat(side.YOffset)

	for x := x1; x <= x2; x++ {
		rel := xToRelAngle(wp.view, x)
		worldAngle := wp.view.angle - rel
		rad := fixedmath.BamToRadian(worldAngle)
		dirX, dirY := math.Cos(rad), math.Sin(rad)

		p, ok := raySegmentIntersect(origin, dirX, dirY, v1f, segDX, segDY)
		if !ok {
			continue
		}
		dist := math.Hypot(p.x-origin.x, p.y-origin.y)

		relRad := fixedmath.BamToRadian(rel)
		perp := dist * math.Cos(relRad)
		if perp < 1 {
			perp = 1
		}
		scale := float64(wp.view.centerX) / perp
		if scale > 64 {
			scale = 64
		}

		if perp >= wp.columnDepth[x] {
			// A nearer wall already owns this column; closed walls never
			// hit this (clipSolidSeg already excludes occluded columns),
			// it only matters for two open portals stacked in depth.
			continue
		}
		wp.columnDepth[x] = perp

		along := math.Hypot(p.x-v1f.x, p.y-v1f.y) + fixedmath.FixedToFloat(seg.Offset) + xOffset

		lightLevel := frontSec.LightLevel
		colormap := wp.pics.VertLightColourmap(lightLevel, int(scale*64))

		ceil := fixedmath.FixedToFloat(frontSec.CeilingHeight)
		floor := fixedmath.FixedToFloat(frontSec.FloorHeight)

		if backSec == nil {
			wp.paintSpan(x, ceil, floor, viewZ, scale, tex, along, yOffset, colormap, false)
			wp.paintFlat(x, frontSec.CeilingFlat, ceil, viewZ, scale, lightLevel, true)
			wp.paintFlat(x, frontSec.FloorFlat, floor, viewZ, scale, lightLevel, false)
			continue
		}

		backCeil := fixedmath.FixedToFloat(backSec.CeilingHeight)
		backFloor := fixedmath.FixedToFloat(backSec.FloorHeight)

		if backCeil < ceil {
			wp.paintSpan(x, backCeil, ceil, viewZ, scale, topTex, along, yOffset, colormap, line.Flags&mapdata.LineUpperUnpegged == 0)
		}
		if backFloor > floor {
			pegged := line.Flags&mapdata.LineLowerUnpegged != 0
			wp.paintSpan(x, floor, backFloor, viewZ, scale, botTex, along, yOffset, colormap, pegged)
		}
		if tex != nil {
			lo := math.Max(floor, backFloor)
			hi := math.Min(ceil, backCeil)
			wp.paintSpan(x, lo, hi, viewZ, scale, tex, along, yOffset, colormap, line.Flags&mapdata.LineLowerUnpegged != 0)
		}

		wp.paintFlat(x, frontSec.CeilingFlat, ceil, viewZ, scale, lightLevel, true)
		wp.paintFlat(x, frontSec.FloorFlat, floor, viewZ, scale, lightLevel, false)
	}
}

// paintSpan draws one vertical strip of a column between world heights
// [lo,hi] (already clipped to the texture's own span by the caller),
// sampling tex at the along-the-wall offset already accumulated and a
// vertical offset derived from peg.
func (wp *wallPainter) paintSpan(x int, lo, hi, viewZ, scale float64, tex *pic.WallTexture, along, yOffset float64, colormap *pic.Colormap, peg bool) {
	if tex == nil || hi <= lo {
		return
	}
	centerY := float64(wp.view.centerY)
	yTop := centerY - (hi-viewZ)*scale
	yBot := centerY - (lo-viewZ)*scale

	top := int(math.Floor(yTop))
	bot := int(math.Ceil(yBot))
	if top < 0 {
		top = 0
	}
	if bot > wp.frame.height {
		bot = wp.frame.height
	}
	if top >= bot {
		return
	}

	col := tex.Column(int(math.Floor(along)))
	anchor := hi
	if peg {
		anchor = lo
	}

	for y := top; y < bot; y++ {
		worldY := (centerY - float64(y)) / scale
		var texY float64
		if peg {
			texY = (worldY + viewZ) - anchor + yOffset
		} else {
			texY = anchor - (worldY + viewZ) + yOffset
		}
		row := int(texY) % tex.Height
		if row < 0 {
			row += tex.Height
		}
		px := col[row]
		if px == pic.TransparentPixel {
			continue
		}
		wp.frame.set(x, y, colormap[px])
	}
}

// paintFlat fills the portion of a column above/below a wall's painted
// span with a sector's floor or ceiling flat, sampled at the ray's
// ground-plane intersection.
func (wp *wallPainter) paintFlat(x int, flatID int32, planeZ, viewZ, scale float64, lightLevel int32, ceiling bool) {
	if flatID < 0 {
		return
	}
	flat := wp.pics.GetFlat(flatID)
	if flat == nil {
		return
	}
	centerY := float64(wp.view.centerY)
	edgeY := centerY - (planeZ-viewZ)*scale

	var top, bot int
	if ceiling {
		top, bot = 0, int(math.Round(edgeY))
	} else {
		top, bot = int(math.Round(edgeY)), wp.frame.height
	}
	top = clampInt(top, 0, wp.frame.height)
	bot = clampInt(bot, 0, wp.frame.height)

	origin := point2f{x: fixedmath.FixedToFloat(wp.view.x), y: fixedmath.FixedToFloat(wp.view.y)}
	rel := xToRelAngle(wp.view, x)
	worldAngle := wp.view.angle - rel
	rad := fixedmath.BamToRadian(worldAngle)
	dirX, dirY := math.Cos(rad), math.Sin(rad)
	relRad := fixedmath.BamToRadian(rel)
	cosRel := math.Cos(relRad)
	if math.Abs(cosRel) < 1e-4 {
		return
	}

	for y := top; y < bot; y++ {
		screenDY := centerY - float64(y)
		if screenDY == 0 {
			continue
		}
		planeDist := (planeZ - viewZ) * float64(wp.view.centerX) / screenDY
		if planeDist < 0 {
			planeDist = -planeDist
		}
		trueDist := planeDist / cosRel
		if trueDist <= 0 || trueDist > rayLength {
			continue
		}
		wx := origin.x + dirX*trueDist
		wy := origin.y + dirY*trueDist
		px := flat.At(int(math.Floor(wx)), int(math.Floor(wy)))
		colormap := wp.pics.FlatLightColourmap(lightLevel, int(trueDist))
		wp.frame.set(x, y, colormap[px])
	}
}
