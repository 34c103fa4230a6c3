package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
)

func TestFrameSetClampsOutOfBounds(t *testing.T) {
	f := NewFrame(4, 3)
	f.set(-1, 0, 7)
	f.set(4, 0, 7)
	f.set(0, -1, 7)
	f.set(0, 3, 7)
	for _, px := range f.pixels {
		assert.Equal(t, byte(0), px)
	}

	f.set(2, 1, 9)
	assert.Equal(t, byte(9), f.pixels[1*4+2])
}

func TestFrameClearResetsEveryPixel(t *testing.T) {
	f := NewFrame(2, 2)
	for i := range f.pixels {
		f.pixels[i] = 42
	}
	f.clear()
	for _, px := range f.pixels {
		assert.Equal(t, byte(0), px)
	}
}

func TestAngleToXCentersForwardAngle(t *testing.T) {
	v := newView(0, 0, 0, 0, 320, 200)
	assert.Equal(t, v.centerX, v.angleToX(0))
}

func TestAngleToXIsMonotonicAcrossTheFOV(t *testing.T) {
	v := newView(0, 0, 0, 0, 320, 200)
	// A positive relative angle (rotated toward the view's left per BAM's
	// counter-clockwise convention) projects toward screen column 0; a
	// negative one projects past center toward the right edge.
	positive := v.angleToX(halfFOV)
	negative := v.angleToX(-halfFOV)
	assert.Less(t, positive, v.centerX)
	assert.Greater(t, negative, v.centerX)
}

func TestClipToFOVClampsOutOfRangeAngles(t *testing.T) {
	assert.Equal(t, halfFOV, clipToFOV(halfFOV*2))
	assert.Equal(t, fixedmath.Angle(-int32(halfFOV)), clipToFOV(fixedmath.Angle(-int32(halfFOV)*2)))
	assert.Equal(t, fixedmath.Angle45/2, clipToFOV(fixedmath.Angle45/2))
}

func TestBoxVisibleTrueWhenViewpointInsideBox(t *testing.T) {
	v := newView(0, 0, 0, 0, 320, 200)
	box := mapdata.BBox{
		Left: fixedmath.NewFixed(-10), Right: fixedmath.NewFixed(10),
		Bottom: fixedmath.NewFixed(-10), Top: fixedmath.NewFixed(10),
	}
	assert.True(t, v.boxVisible(box))
}

func TestBoxVisibleFalseWhenBoxIsBehindAndOffToOneSide(t *testing.T) {
	// Offset in y so the box doesn't straddle atan2's +-180 degree seam
	// directly behind the viewer, where boxVisible's min/max sweep is
	// documented to under-cull.
	v := newView(0, 0, 0, 0, 320, 200)
	box := mapdata.BBox{
		Left: fixedmath.NewFixed(-1010), Right: fixedmath.NewFixed(-990),
		Bottom: fixedmath.NewFixed(100), Top: fixedmath.NewFixed(120),
	}
	assert.False(t, v.boxVisible(box))
}

func TestBoxVisibleTrueWhenBoxIsStraightAhead(t *testing.T) {
	v := newView(0, 0, 0, 0, 320, 200)
	box := mapdata.BBox{
		Left: fixedmath.NewFixed(990), Right: fixedmath.NewFixed(1010),
		Bottom: fixedmath.NewFixed(-10), Top: fixedmath.NewFixed(10),
	}
	assert.True(t, v.boxVisible(box))
}

func TestClipSolidSegInsertsFreshRangeWhenUnoccluded(t *testing.T) {
	segs := newSolidSegs(320)
	var drawn [][2]int
	segs.clipSolidSeg(10, 20, func(a, b int) { drawn = append(drawn, [2]int{a, b}) })
	assert.Equal(t, [][2]int{{10, 20}}, drawn)
	assert.True(t, segs.fullyOccluded(10, 20))
}

func TestClipSolidSegSkipsFullyOccludedRange(t *testing.T) {
	segs := newSolidSegs(320)
	segs.clipSolidSeg(10, 20, func(a, b int) {})
	var drawn [][2]int
	segs.clipSolidSeg(12, 18, func(a, b int) { drawn = append(drawn, [2]int{a, b}) })
	assert.Nil(t, drawn)
}

func TestClipSolidSegTrimsLeadingEdge(t *testing.T) {
	segs := newSolidSegs(320)
	segs.clipSolidSeg(10, 20, func(a, b int) {})
	var drawn [][2]int
	segs.clipSolidSeg(5, 15, func(a, b int) { drawn = append(drawn, [2]int{a, b}) })
	assert.Equal(t, [][2]int{{5, 9}}, drawn)
	assert.True(t, segs.fullyOccluded(5, 20))
}

func TestClipSolidSegCrunchesThroughMultipleRuns(t *testing.T) {
	segs := newSolidSegs(320)
	segs.clipSolidSeg(10, 15, func(a, b int) {})
	segs.clipSolidSeg(25, 30, func(a, b int) {})
	var drawn [][2]int
	segs.clipSolidSeg(5, 35, func(a, b int) { drawn = append(drawn, [2]int{a, b}) })
	assert.Equal(t, [][2]int{{5, 9}, {16, 24}, {31, 35}}, drawn)
	assert.True(t, segs.fullyOccluded(5, 35))
}

func TestClipSolidSegFullyOccludedReportsFalseOutsideAnyRun(t *testing.T) {
	segs := newSolidSegs(320)
	segs.clipSolidSeg(10, 20, func(a, b int) {})
	assert.False(t, segs.fullyOccluded(21, 25))
}

func TestRaySegmentIntersectHitsAPerpendicularSegment(t *testing.T) {
	p, ok := raySegmentIntersect(point2f{0, 0}, 1, 0, point2f{5, -5}, 0, 10)
	require.True(t, ok)
	assert.InDelta(t, 5, p.x, 1e-9)
	assert.InDelta(t, 0, p.y, 1e-9)
}

func TestRaySegmentIntersectReportsFalseForAParallelRay(t *testing.T) {
	_, ok := raySegmentIntersect(point2f{0, 0}, 1, 0, point2f{0, 5}, 10, 0)
	assert.False(t, ok)
}

func TestRaySegmentIntersectRejectsACrossingBehindTheOrigin(t *testing.T) {
	_, ok := raySegmentIntersect(point2f{0, 0}, 1, 0, point2f{-5, -5}, 0, 10)
	assert.False(t, ok)
}

func TestRaySegmentIntersectRejectsACrossingOutsideTheSegmentSpan(t *testing.T) {
	// Segment from (5,-5) to (5,5) only spans y in [-5,5]; a ray along y=10
	// would cross the infinite line at (5,10), outside that span.
	_, ok := raySegmentIntersect(point2f{0, 10}, 1, 0, point2f{5, -5}, 0, 10)
	assert.False(t, ok)
}

func TestXToRelAngleIsZeroAtScreenCenter(t *testing.T) {
	v := newView(0, 0, 0, 0, 320, 200)
	assert.Equal(t, fixedmath.Angle(0), xToRelAngle(v, v.centerX))
}
