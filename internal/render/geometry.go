package render

import (
	"math"

	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
)

// point2f is a floating-point 2D point, used only inside this package
// for the per-column wall projection. Camera and game state stay in
// Fixed/Angle everywhere else; this is the one place doomgo drops to
// float64 for distance, scale and offset math rather than the
// playsim's fixed-point discipline, since a presentation-only column
// projection has no determinism requirement to uphold.
type point2f struct{ x, y float64 }

func toPoint2f(v mapdata.Vec2) point2f {
	return point2f{x: fixedmath.FixedToFloat(v.X), y: fixedmath.FixedToFloat(v.Y)}
}

// xToRelAngle is the inverse of (*view).angleToX: given a screen column,
// recover the view-relative angle of the ray through its center. Solving
// x = centerX - tan(rel)*focal for rel gives tan(rel) = (centerX-x)/focal,
// i.e. rel = atan2(centerX-x, focal).
func xToRelAngle(v *view, x int) fixedmath.Angle {
	opposite := fixedmath.NewFixed(int32(v.centerX - x))
	return fixedmath.PointToAngle(v.focal, opposite)
}

// raySegmentIntersect solves for the point where the ray from origin in
// direction (dirX, dirY) crosses the segment (a, a+segDX/segDY),
// returning ok=false for a parallel ray or a crossing outside the
// segment's own span. Grounded the same way angleToX/boxVisible are: a
// direct translation of the 2D line-intersection algebra classic DOOM's
// divline_t intercepts use, done here in float64 rather than Fixed
// because both operands already came from trig functions.
func raySegmentIntersect(origin point2f, dirX, dirY float64, a point2f, segDX, segDY float64) (point2f, bool) {
	denom := dirX*segDY - dirY*segDX
	if math.Abs(denom) < 1e-9 {
		return point2f{}, false
	}
	diffX, diffY := a.x-origin.x, a.y-origin.y
	// t is the ray parameter, s is the segment parameter in [0,1].
	t := (diffX*segDY - diffY*segDX) / denom
	if t < 0 {
		return point2f{}, false
	}
	s := (diffX*dirY - diffY*dirX) / denom
	if s < 0 || s > 1 {
		return point2f{}, false
	}
	return point2f{x: origin.x + dirX*t, y: origin.y + dirY*t}, true
}
