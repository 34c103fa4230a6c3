package render

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
)

// halfFOV is doomgo's horizontal field of view divided by two: classic
// DOOM's screen cone is 90 degrees total.
const halfFOV fixedmath.Angle = fixedmath.Angle45

// view holds one frame's camera state and the projection constants
// derived from it, rebuilt at the top of every Render call.
type view struct {
	x, y, z fixedmath.Fixed
	angle fixedmath.Angle

	width, height int
	centerX, centerY int
	focal fixedmath.Fixed // projection scale; focal == centerX at a 90 degree FOV
}

func newView(x, y, z fixedmath.Fixed, angle fixedmath.Angle, width, height int) *view {
	return &view{
		x: x, y: y, z: z, angle: angle,
		width: width, height: height,
		centerX: width / 2,
		centerY: height / 2,
		focal: fixedmath.NewFixed(int32(width / 2)),
	}
}

// pointToAngle returns the BAM angle from the viewpoint to p, the
// fixed-point atan2 the seg projection step needs.
func (v *view) pointToAngle(p mapdata.Vec2) fixedmath.Angle {
	return fixedmath.PointToAngle(p.X.Sub(v.x), p.Y.Sub(v.y))
}

// relativeAngle returns a's offset from the view's forward direction,
// as a signed BAM delta: positive means a is to the view's left,
// negative to the right. Because Angle is a uint32 that wraps exactly
// like two's-complement arithmetic, this subtraction already carries
// the correct sign when reinterpreted as int32 (signedOffset below).
func (v *view) relativeAngle(a fixedmath.Angle) fixedmath.Angle {
	return v.angle - a
}

// signedOffset reinterprets a BAM delta as a signed quantity centered
// on zero, the representation angleToX and the FOV bounds test both
// need.
func signedOffset(rel fixedmath.Angle) int32 { return int32(rel) }

// angleToX projects a relative (signed) view angle to a screen column
// using tan of the offset scaled by the focal length (this:
// "using tan of the angle offset from view forward, scaled by
// 160/tan(pi/4)"); at a 90 degree FOV tan(pi/4) == 1 so the scale
// collapses to centerX, which is what focal already holds.
func (v *view) angleToX(rel fixedmath.Angle) int {
	t := fixedmath.Tan(rel)
	offset := t.Mul(v.focal)
	return v.centerX - int(offset.Int())
}

// inFOV reports whether a relative angle falls inside the view cone.
func (v *view) inFOV(rel fixedmath.Angle) bool {
	off := signedOffset(rel)
	return off >= -int32(halfFOV) && off <= int32(halfFOV)
}

// clipToFOV clamps a relative angle into [-halfFOV, halfFOV].
func clipToFOV(rel fixedmath.Angle) fixedmath.Angle {
	off := signedOffset(rel)
	switch {
	case off > int32(halfFOV):
		return halfFOV
	case off < -int32(halfFOV):
		return fixedmath.AngleMax - halfFOV + 1
	default:
		return rel
	}
}

// boxVisible approximates vanilla's check_bbox octant test: the viewpoint being inside the
// box is trivially visible; otherwise the box is visible when the
// angular span of its four corners, as seen from the viewpoint,
// overlaps the view cone. This is a reasonable approximation rather
// than vanilla's precise per-octant corner selection: for a box that
// spans more than 180 degrees around the viewpoint (only possible for
// a box much larger than the viewer's distance to it) the min/max
// sweep below can under-cull, which costs extra overdraw, never a
// missing wall.
func (v *view) boxVisible(b mapdata.BBox) bool {
	if v.x >= b.Left && v.x <= b.Right && v.y >= b.Bottom && v.y <= b.Top {
		return true
	}
	corners := [4]mapdata.Vec2{
		{X: b.Left, Y: b.Top}, {X: b.Right, Y: b.Top},
		{X: b.Left, Y: b.Bottom}, {X: b.Right, Y: b.Bottom},
	}
	var lo, hi int32
	for i, c := range corners {
		off := signedOffset(v.relativeAngle(v.pointToAngle(c)))
		if i == 0 {
			lo, hi = off, off
			continue
		}
		if off < lo {
			lo = off
		}
		if off > hi {
			hi = off
		}
	}
	return lo <= int32(halfFOV) && hi >= -int32(halfFOV)
}
