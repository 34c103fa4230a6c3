package mapdata

import "github.com/doomgo/doomgo/internal/fixedmath"

// PointInSubsector walks the BSP tree from the root, following
// Node.PointOnSide at every inner node, until it lands on a leaf. Every map has at least one node unless it is a single
// convex sector with no BSP compiled at all, in which case callers
// should treat SubsectorID(0) as the whole map.
func (m *MapData) PointInSubsector(p Vec2) SubsectorID {
	if len(m.Nodes) == 0 {
		return 0
	}
	nodeID := m.RootNode()
	for {
		node := &m.Nodes[nodeID]
		side := node.PointOnSide(p)
		if node.ChildIsSubsector(side) {
			return node.ChildSubsector(side)
		}
		nodeID = node.ChildNode(side)
	}
}

// SubsectorVisitor is called once per subsector during a BSP traversal,
// in front-to-back order relative to the traversal's viewpoint. It
// returns false to stop the walk early (e.g. once screen coverage is
// exhausted during rendering).
type SubsectorVisitor func(id SubsectorID) bool

// TraverseBSP walks the BSP tree front-to-back from viewpoint, calling
// visit on every subsector it descends into, until visit returns false
// or the walk completes. Passing a nil bbox test (boundsVisible == nil) visits every
// subsector; the renderer supplies one that culls nodes whose bounding
// box falls entirely outside the current horizontal clip window.
func (m *MapData) TraverseBSP(viewpoint Vec2, boundsVisible func(b [2]BBox) bool, visit SubsectorVisitor) {
	if len(m.Nodes) == 0 {
		visit(0)
		return
	}
	m.traverseNode(m.RootNode(), viewpoint, boundsVisible, visit)
}

// traverseNode returns false once visit has asked the walk to stop, so
// the caller can unwind without visiting the remaining siblings.
func (m *MapData) traverseNode(nodeID NodeID, viewpoint Vec2, boundsVisible func(b [2]BBox) bool, visit SubsectorVisitor) bool {
	node := &m.Nodes[nodeID]
	near := node.PointOnSide(viewpoint)
	far := near ^ 1

	for _, side := range [2]int{near, far} {
		if node.ChildIsSubsector(side) {
			if !visit(node.ChildSubsector(side)) {
				return false
			}
			continue
		}
		childID := node.ChildNode(side)
		if boundsVisible != nil {
			child := &m.Nodes[childID]
			if !boundsVisible(child.BBox) {
				continue
			}
		}
		if !m.traverseNode(childID, viewpoint, boundsVisible, visit) {
			return false
		}
	}
	return true
}

// SegVertices returns a seg's endpoints in map space, resolved through
// the owning linedef's vertexes.
func (m *MapData) SegVertices(seg *Segment) (v1, v2 Vec2) {
	return m.Vertex(seg.V1), m.Vertex(seg.V2)
}

// PointOnLineSide is a convenience wrapper combining a linedef's first
// vertex with LineOnSide, used by trace and collision code that already
// holds a *LineDef rather than a raw front vertex.
func (m *MapData) PointOnLineSide(l *LineDef, p Vec2) int {
	return LineOnSide(l, m.Vertex(l.V1), p)
}

// OppositeSector returns the sector on the other side of a linedef from
// the one given, or NoSector if the line is one-sided or from is
// neither of its two sides' sectors.
func (m *MapData) OppositeSector(l *LineDef, from SectorID) SectorID {
	if !l.TwoSided() {
		return NoSector
	}
	frontSec := m.Side(l.FrontSide).Sector
	backSec := m.Side(l.BackSide).Sector
	switch from {
	case frontSec:
		return backSec
	case backSec:
		return frontSec
	default:
		return NoSector
	}
}

// divlineIntersect solves for the fractional distance along divline d
// (parameterized as d.origin + t*d.delta, t in [0,1] on the probe
// segment) at which it crosses another divline, matching the
// line-intercept formula. Returns ok=false for parallel lines.
func divlineIntersect(dOrigin, dDelta, pOrigin, pDelta Vec2) (t fixedmath.Fixed, ok bool) {
	ddx, ddy := dDelta.X.Int64()>>8, dDelta.Y.Int64()>>8
	pdx, pdy := pDelta.X.Int64()>>8, pDelta.Y.Int64()>>8
	denom := ddx*pdy - ddy*pdx
	if denom == 0 {
		return 0, false
	}
	ox, oy := (pOrigin.X.Int64()-dOrigin.X.Int64())>>8, (pOrigin.Y.Int64()-dOrigin.Y.Int64())>>8
	frac := ((ox*pdy - oy*pdx) << fixedmath.FracBits) / denom
	if frac > int64(fixedmath.FixedMax) {
		frac = int64(fixedmath.FixedMax)
	} else if frac < int64(fixedmath.FixedMin) {
		frac = int64(fixedmath.FixedMin)
	}
	return fixedmath.Fixed(frac), true
}
