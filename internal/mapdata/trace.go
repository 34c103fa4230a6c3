package mapdata

import (
	"sort"

	"github.com/doomgo/doomgo/internal/fixedmath"
)

// Intercept is one linedef crossing found by TraceLine, ordered by Frac
// (0 at the trace's start, 1 at its end). Both mobj movement's
// line-touch checks and hitscan attacks walk the same sorted list;
// things on the path are gathered separately by the mobj package.
type Intercept struct {
	Frac fixedmath.Fixed
	Line LineID
}

// NoLine is the LineID sentinel for "no linedef".
const NoLine LineID = -1

// LineProbe is called for every linedef listed in a blockmap cell the
// trace's grid walk passes through; it reports whether the trace
// crosses that line and at which fraction (a line can be missed
// entirely, or straddled without being blocking) through its
// (frac, hit) results. Returning early is not supported here;
// TraceLine always gathers every blockmap-adjacent candidate and sorts
// once, matching the original "collect then sort then walk in order"
// shape.
type LineProbe func(id LineID, origin, delta Vec2) (frac fixedmath.Fixed, hit bool)

// TraceLine walks the blockmap cells a straight trace from origin to
// origin+delta passes through, collecting every linedef a probe
// accepts, sorting the results by Frac, and calling visit on each in
// order until visit returns false. This is the intercept
// traversal: movement, sight checks, and hitscan attacks all want
// "nearest blocking thing first", not "every candidate in blockmap
// insertion order".
func (m *MapData) TraceLine(origin, delta Vec2, probe LineProbe, visit func(Intercept) bool) {
	intercepts := m.collectLineIntercepts(origin, delta, probe)
	sort.Slice(intercepts, func(i, j int) bool { return intercepts[i].Frac < intercepts[j].Frac })
	for _, ic := range intercepts {
		if !visit(ic) {
			return
		}
	}
}

func (m *MapData) collectLineIntercepts(origin, delta Vec2, probe LineProbe) []Intercept {
	bm := m.Blockmap
	if bm == nil || bm.Columns == 0 {
		return m.bruteForceLineIntercepts(origin, delta, probe)
	}

	x0, y0 := bm.BlockX(origin), bm.BlockY(origin)
	dest := origin.Add(delta)
	x1, y1 := bm.BlockX(dest), bm.BlockY(dest)

	seenLine := make(map[LineID]bool)
	var out []Intercept

	visitCell := func(bx, by int32) {
		for _, lineID := range bm.LinesInBlock(bx, by) {
			if seenLine[lineID] {
				continue
			}
			seenLine[lineID] = true
			if frac, hit := probe(lineID, origin, delta); hit {
				out = append(out, Intercept{Frac: frac, Line: lineID})
			}
		}
	}

	walkGridLine(x0, y0, x1, y1, visitCell)
	return out
}

// bruteForceLineIntercepts is the fallback for maps whose BLOCKMAP
// failed to parse (see buildBlockmap): every linedef is a candidate.
func (m *MapData) bruteForceLineIntercepts(origin, delta Vec2, probe LineProbe) []Intercept {
	var out []Intercept
	for i := range m.Lines {
		if frac, hit := probe(LineID(i), origin, delta); hit {
			out = append(out, Intercept{Frac: frac, Line: LineID(i)})
		}
	}
	return out
}

// walkGridLine visits every integer grid cell a line from (x0,y0) to
// (x1,y1) passes through using a Bresenham-style DDA walk, the same
// cell-stepping approach classic DOOM's P_PathTraverse uses to avoid
// testing the whole blockmap against every trace.
func walkGridLine(x0, y0, x1, y1 int32, visit func(x, y int32)) {
	dx := abs32(x1 - x0)
	dy := -abs32(y1 - y0)
	sx := int32(1)
	if x0 > x1 {
		sx = -1
	}
	sy := int32(1)
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		visit(x, y)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// LineIntersectFrac returns the fraction along (origin, delta) at which
// it crosses linedef l's full segment (not just its infinite carrier
// line): ok is false if the lines are parallel or the crossing falls
// outside l's own [0,1] span.
func (m *MapData) LineIntersectFrac(l *LineDef, origin, delta Vec2) (frac fixedmath.Fixed, ok bool) {
	v1 := m.Vertex(l.V1)
	t, ok := divlineIntersect(origin, delta, v1, l.Delta)
	if !ok {
		return 0, false
	}
	if t < 0 || t > fixedmath.FracUnit {
		return 0, false
	}
	// s is where along l.Delta the trace crosses; reject crossings
	// outside the linedef's own segment.
	s, ok := divlineIntersect(v1, l.Delta, origin, delta)
	if !ok || s < 0 || s > fixedmath.FracUnit {
		return 0, false
	}
	return t, true
}
