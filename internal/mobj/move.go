package mobj

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
)

// maxStepHeight and maxDropoffHeight are the 24-unit constants this
// boundary behaviors test against.
const (
	maxStepHeight = 24 << 16
	maxDropoffHeight = 24 << 16
)

type positionCheck struct {
	ceilingZ fixedmath.Fixed
	floorZ fixedmath.Fixed
	dropoffZ fixedmath.Fixed
	blocked bool
	crossedLines []crossedLine
}

type crossedLine struct {
	id mapdata.LineID
	oldSide int
	newSide int
}

func bboxOf(x, y, radius fixedmath.Fixed) mapdata.BBox {
	return mapdata.BBox{
		Top: y.Add(radius),
		Bottom: y.Sub(radius),
		Left: x.Sub(radius),
		Right: x.Add(radius),
	}
}

// linesInBBox returns every linedef whose bbox could overlap box,
// using the blockmap when available and falling back to a full scan
// otherwise (mirrors mapdata.TraceLine's same fallback shape).
func linesInBBox(md *mapdata.MapData, box mapdata.BBox) []mapdata.LineID {
	bm := md.Blockmap
	if bm == nil || bm.Columns == 0 {
		out := make([]mapdata.LineID, len(md.Lines))
		for i := range md.Lines {
			out[i] = mapdata.LineID(i)
		}
		return out
	}
	bx0 := bm.BlockX(mapdata.Vec2{X: box.Left, Y: box.Top})
	by0 := bm.BlockY(mapdata.Vec2{X: box.Left, Y: box.Top})
	bx1 := bm.BlockX(mapdata.Vec2{X: box.Right, Y: box.Bottom})
	by1 := bm.BlockY(mapdata.Vec2{X: box.Right, Y: box.Bottom})

	seen := make(map[mapdata.LineID]bool)
	var out []mapdata.LineID
	for by := by0; by <= by1; by++ {
		for bx := bx0; bx <= bx1; bx++ {
			for _, id := range bm.LinesInBlock(bx, by) {
				if !seen[id] {
					seen[id] = true
					out = append(out, id)
				}
			}
		}
	}
	return out
}

// checkPosition gathers floor/ceiling/dropoff constraints and blocked
// lines for a square footprint moving to (x, y).
func (m *MapObject) checkPosition(x, y fixedmath.Fixed) positionCheck {
	md := m.level.Map()
	box := bboxOf(x, y, m.Radius)

	oldSec := md.Sector(m.Sector)
	pc := positionCheck{
		ceilingZ: oldSec.CeilingHeight,
		floorZ: oldSec.FloorHeight,
		dropoffZ: oldSec.FloorHeight,
	}

	for _, lid := range linesInBBox(md, box) {
		line := md.Line(lid)
		if !line.BBox.Intersects(box) {
			continue
		}
		oldSide := mapdata.LineOnSide(line, md.Vertex(line.V1), mapdata.Vec2{X: m.X, Y: m.Y})
		newSide := mapdata.LineOnSide(line, md.Vertex(line.V1), mapdata.Vec2{X: x, Y: y})

		if !line.TwoSided() {
			if lineBlocksFootprint(md, line, box) {
				pc.blocked = true
			}
			continue
		}

		frontSec := md.Side(line.FrontSide).Sector
		backSec := md.Side(line.BackSide).Sector
		front := md.Sector(frontSec)
		back := md.Sector(backSec)

		if line.Flags&mapdata.LineBlocking != 0 {
			if lineBlocksFootprint(md, line, box) {
				pc.blocked = true
				continue
			}
		}

		top := front.CeilingHeight
		if back.CeilingHeight < top {
			top = back.CeilingHeight
		}
		bottom := front.FloorHeight
		if back.FloorHeight > bottom {
			bottom = back.FloorHeight
		}
		dropoff := front.FloorHeight
		if back.FloorHeight < dropoff {
			dropoff = back.FloorHeight
		}

		if top < pc.ceilingZ {
			pc.ceilingZ = top
		}
		if bottom > pc.floorZ {
			pc.floorZ = bottom
		}
		if dropoff < pc.dropoffZ {
			pc.dropoffZ = dropoff
		}

		if oldSide != newSide && line.Special != 0 {
			pc.crossedLines = append(pc.crossedLines, crossedLine{id: lid, oldSide: oldSide, newSide: newSide})
		}
	}
	return pc
}

// lineBlocksFootprint is a coarse solidity test: any line whose bbox
// overlaps the moving footprint blocks it outright when one-sided or
// flagged blocking. A full engine additionally checks the line's exact
// segment against the swept box corners; the bbox overlap test here is
// the same conservative approximation the blockmap grid itself uses
// upstream of per-line precision.
func lineBlocksFootprint(md *mapdata.MapData, line *mapdata.LineDef, box mapdata.BBox) bool {
	return line.BBox.Intersects(box)
}

// TryMove is the canonical position update. On success it
// relinks the sector thinglist and fires cross_special_line for every
// special two-sided line the mobj's side-of-point changed across.
func (m *MapObject) TryMove(toX, toY fixedmath.Fixed) bool {
	pc := m.checkPosition(toX, toY)

	if pc.blocked {
		return false
	}
	if pc.ceilingZ.Sub(pc.floorZ) < m.Height {
		return false
	}
	if pc.ceilingZ.Sub(m.Z) < m.Height {
		return false
	}
	if pc.floorZ.Sub(m.Z) > maxStepHeight {
		return false
	}
	if m.Flags&(FlagDropoff|FlagFloat) == 0 && pc.floorZ.Sub(pc.dropoffZ) > maxDropoffHeight {
		return false
	}

	md := m.level.Map()
	m.X, m.Y = toX, toY
	m.FloorZ, m.CeilingZ = pc.floorZ, pc.ceilingZ
	newSub := md.PointInSubsector(mapdata.Vec2{X: toX, Y: toY})
	m.Subsector = newSub
	newSector := md.SubSector(newSub).Sector
	if newSector != m.Sector {
		m.owner.ChangeSector(m, newSector)
	}

	if m.owner.lineAct != nil {
		for _, cl := range pc.crossedLines {
			m.owner.lineAct.CrossSpecialLine(cl.newSide, cl.id, m)
		}
	}
	return true
}

// slideAttempts bounds slide_move's probe count.
const slideAttempts = 3

// SlideMove performs the wall-sliding fallback when a direct TryMove
// fails: reduce momentum to the largest free sub-move along a blocking
// line, project the remainder along the line's tangent, and retry, up
// to slideAttempts times before stair-stepping as y-only then x-only
//.
func (m *MapObject) SlideMove() {
	momX, momY := m.MomX, m.MomY

	for attempt := 0; attempt < slideAttempts; attempt++ {
		destX := m.X.Add(momX)
		destY := m.Y.Add(momY)
		if m.TryMove(destX, destY) {
			m.MomX, m.MomY = momX, momY
			return
		}

		line, frac, ok := m.nearestBlockingLine(momX, momY)
		if !ok {
			break
		}

		freeX := momX.Mul(frac)
		freeY := momY.Mul(frac)

		md := m.level.Map()
		tangent := line.Delta
		tlen := tangent.X.Mul(tangent.X).Add(tangent.Y.Mul(tangent.Y))
		if tlen == 0 {
			break
		}
		dot := momX.Mul(tangent.X).Add(momY.Mul(tangent.Y))
		scale := dot.Div(tlen)
		remX := tangent.X.Mul(scale).Sub(freeX)
		remY := tangent.Y.Mul(scale).Sub(freeY)
		_ = md

		if m.TryMove(m.X.Add(freeX), m.Y.Add(freeY)) {
			momX, momY = remX, remY
			continue
		}
		break
	}

	if m.TryMove(m.X, m.Y.Add(momY)) {
		m.MomX, m.MomY = 0, momY
		return
	}
	if m.TryMove(m.X.Add(momX), m.Y) {
		m.MomX, m.MomY = momX, 0
		return
	}
	m.MomX, m.MomY = 0, 0
}

// nearestBlockingLine finds, by intercept fraction, the closest
// blocking linedef the probe from the mobj's current position along
// (momX, momY) crosses, using the shared blockmap tracer.
func (m *MapObject) nearestBlockingLine(momX, momY fixedmath.Fixed) (*mapdata.LineDef, fixedmath.Fixed, bool) {
	md := m.level.Map()
	origin := mapdata.Vec2{X: m.X, Y: m.Y}
	delta := mapdata.Vec2{X: momX, Y: momY}

	var best *mapdata.LineDef
	bestFrac := fixedmath.FixedMax

	md.TraceLine(origin, delta, func(id mapdata.LineID, o, d mapdata.Vec2) (fixedmath.Fixed, bool) {
		line := md.Line(id)
		if line.TwoSided() {
			frontSec := md.Side(line.FrontSide).Sector
			backSec := md.Side(line.BackSide).Sector
			front := md.Sector(frontSec)
			back := md.Sector(backSec)
			top := front.CeilingHeight
			if back.CeilingHeight < top {
				top = back.CeilingHeight
			}
			bottom := front.FloorHeight
			if back.FloorHeight > bottom {
				bottom = back.FloorHeight
			}
			if top.Sub(bottom) >= m.Height {
				return 0, false
			}
		}
		frac, ok := md.LineIntersectFrac(line, o, d)
		return frac, ok
	}, func(ic mapdata.Intercept) bool {
		if ic.Frac < bestFrac {
			bestFrac = ic.Frac
			best = md.Line(ic.Line)
		}
		return true
	})

	if best == nil {
		return nil, 0, false
	}
	return best, bestFrac, true
}
