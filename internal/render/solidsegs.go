package render

// segRange is one covered run in the solidsegs list: every screen
// column in [first, last] has already been fully drawn by a nearer
// wall.
type segRange struct {
	first, last int
}

// solidSegs is the per-frame ordered run-list of covered columns,
// seeded with two sentinels covering the screen's outer edges so every real range always has a neighbor to
// merge against without special-casing the list ends.
type solidSegs struct {
	runs []segRange
}

func newSolidSegs(width int) *solidSegs {
	return &solidSegs{
		runs: []segRange{
			{first: -0x7fffffff, last: -1},
			{first: width, last: 0x7fffffff},
		},
	}
}

func (s *solidSegs) reset(width int) {
	s.runs = s.runs[:0]
	s.runs = append(s.runs,
		segRange{first: -0x7fffffff, last: -1},
		segRange{first: width, last: 0x7fffffff},
	)
}

// clipSolidSeg marks [x1,x2] as drawn by a solid (occluding) wall,
// calling draw once per newly-visible fragment and merging the new
// range into the run-list, following the four cases this lists
// for clip_solid_seg.
func (s *solidSegs) clipSolidSeg(x1, x2 int, draw func(a, b int)) {
	start := 0
	for start < len(s.runs) && s.runs[start].last < x1-1 {
		start++
	}

	if x2 < s.runs[start].first-1 {
		// Entirely above (in front of, unoccluded by) the run at start:
		// the whole fragment is visible, insert a fresh run.
		draw(x1, x2)
		s.insert(start, segRange{first: x1, last: x2})
		return
	}

	if x1 >= s.runs[start].first && x2 <= s.runs[start].last {
		// Fully inside an existing run: nothing new to draw.
		return
	}

	if x1 < s.runs[start].first {
		draw(x1, s.runs[start].first-1)
		s.runs[start].first = x1
	}

	if x2 <= s.runs[start].last {
		return
	}

	// The fragment extends past this run into (possibly) subsequent
	// ones; walk forward drawing each visible gap and coalescing runs
	// it spans, vanilla's "crunch" step.
	next := start + 1
	for next < len(s.runs) && x2 >= s.runs[next].first-1 {
		draw(s.runs[start].last+1, s.runs[next].first-1)
		s.runs[start].last = s.runs[next].last
		if x2 <= s.runs[next].last {
			s.runs[start].last = s.runs[next].last
			s.removeRange(start+1, next+1)
			return
		}
		next++
	}

	draw(s.runs[start].last+1, x2)
	s.runs[start].last = x2
	s.removeRange(start+1, next)
}

func (s *solidSegs) insert(at int, r segRange) {
	s.runs = append(s.runs, segRange{})
	copy(s.runs[at+1:], s.runs[at:])
	s.runs[at] = r
}

func (s *solidSegs) removeRange(from, to int) {
	if to <= from {
		return
	}
	s.runs = append(s.runs[:from], s.runs[to:]...)
}

// fullyOccluded reports whether [x1,x2] is already entirely covered,
// letting callers skip projecting a seg's columns at all.
func (s *solidSegs) fullyOccluded(x1, x2 int) bool {
	for _, r := range s.runs {
		if x1 >= r.first && x2 <= r.last {
			return true
		}
	}
	return false
}
