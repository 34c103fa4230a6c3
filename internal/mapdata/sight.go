package mapdata

import "github.com/doomgo/doomgo/internal/fixedmath"

// CheckSight reports whether an unobstructed line of sight exists
// between two points, the way classic DOOM's P_CheckSight gates
// monster wake-up and attack decisions: a REJECT lookup rules out
// sector pairs the level design already knows can never see each
// other, then a geometric walk rejects any intervening line whose
// opening the sight ray doesn't pass through. fromZ/toZ are the
// absolute world heights the ray is drawn between (callers pass each
// mobj's eye height, not its feet).
func (m *MapData) CheckSight(from, to Vec2, fromSector, toSector SectorID, fromZ, toZ fixedmath.Fixed) bool {
	if m.rejectBlocks(fromSector, toSector) {
		return false
	}
	return m.sightTrace(from, to, fromZ, toZ)
}

// rejectBlocks reports whether the REJECT lump marks this sector pair
// as never mutually visible. A missing or undersized lump (some PWADs
// ship without one) never blocks sight — it only ever rules sight
// out, never in.
func (m *MapData) rejectBlocks(s1, s2 SectorID) bool {
	if len(m.Reject) == 0 || len(m.Sectors) == 0 {
		return false
	}
	n := int32(len(m.Sectors))
	pnum := int32(s1)*n + int32(s2)
	idx := pnum >> 3
	if idx < 0 || int(idx) >= len(m.Reject) {
		return false
	}
	return m.Reject[idx]&(1<<uint(pnum&7)) != 0
}

// sightTrace walks every line the straight path from->to crosses,
// failing sight the moment one blocks outright (one-sided) or its
// two-sided opening doesn't contain the sight ray's height,
// interpolated linearly between fromZ and toZ, at that crossing.
func (m *MapData) sightTrace(from, to Vec2, fromZ, toZ fixedmath.Fixed) bool {
	delta := Vec2{X: to.X.Sub(from.X), Y: to.Y.Sub(from.Y)}
	if delta.X == 0 && delta.Y == 0 {
		return true
	}

	blocked := false
	probe := func(id LineID, origin, d Vec2) (fixedmath.Fixed, bool) {
		return m.LineIntersectFrac(m.Line(id), origin, d)
	}
	m.TraceLine(from, delta, probe, func(ic Intercept) bool {
		line := m.Line(ic.Line)
		if line.BackSide == NoSide {
			blocked = true
			return false
		}
		frontSec := m.Side(line.FrontSide).Sector
		backSec := m.Side(line.BackSide).Sector
		front := m.Sector(frontSec)
		back := m.Sector(backSec)

		openTop := front.CeilingHeight
		if back.CeilingHeight < openTop {
			openTop = back.CeilingHeight
		}
		openBottom := front.FloorHeight
		if back.FloorHeight > openBottom {
			openBottom = back.FloorHeight
		}
		if openBottom >= openTop {
			blocked = true
			return false
		}

		sightZ := fromZ.Add(toZ.Sub(fromZ).Mul(ic.Frac))
		if sightZ < openBottom || sightZ > openTop {
			blocked = true
			return false
		}
		return true
	})
	return !blocked
}
