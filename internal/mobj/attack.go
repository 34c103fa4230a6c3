package mobj

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/think"
)

// MissileRange is the default hitscan/missile trace distance.
const MissileRange = 2048 << 16

// AttackResult reports what a line attack's nearest intercept hit.
type AttackResult struct {
	HitLine bool
	Line mapdata.LineID
	HitMobj bool
	Mobj *MapObject
	Frac fixedmath.Fixed
}

// LineAttack traces from shooter along angle for up to distance,
// accumulating line and mobj intercepts sorted by fraction; the first
// shootable thing or solid surface wins. slope is the
// aiming pitch used only to compute the eventual hit z for damage
// callers; this port keeps autoaim slope selection in the caller
// (player/weapon code) since it requires scanning candidate targets
// across an angle sweep that is policy, not physics.
func (m *MapObject) LineAttack(angle fixedmath.Angle, distance fixedmath.Fixed, slope fixedmath.Fixed) AttackResult {
	md := m.level.Map()
	origin := mapdata.Vec2{X: m.X, Y: m.Y}
	delta := mapdata.Vec2{X: distance.Mul(fixedmath.Cos(angle)), Y: distance.Mul(fixedmath.Sin(angle))}

	var result AttackResult
	bestFrac := fixedmath.FixedMax

	md.TraceLine(origin, delta, func(id mapdata.LineID, o, d mapdata.Vec2) (fixedmath.Fixed, bool) {
		line := md.Line(id)
		frac, ok := md.LineIntersectFrac(line, o, d)
		if !ok {
			return 0, false
		}
		if line.TwoSided() {
			frontSec := md.Side(line.FrontSide).Sector
			backSec := md.Side(line.BackSide).Sector
			front := md.Sector(frontSec)
			back := md.Sector(backSec)
			openTop := front.CeilingHeight
			if back.CeilingHeight < openTop {
				openTop = back.CeilingHeight
			}
			openBottom := front.FloorHeight
			if back.FloorHeight > openBottom {
				openBottom = back.FloorHeight
			}
			hitZ := m.Z.Add(m.Height / 2).Add(fixedmath.Fixed((frac.Int64() * distance.Mul(slope).Int64()) >> 16))
			if hitZ >= openBottom && hitZ <= openTop {
				return 0, false
			}
		}
		return frac, true
	}, func(ic mapdata.Intercept) bool {
		if ic.Frac < bestFrac {
			bestFrac = ic.Frac
			result = AttackResult{HitLine: true, Line: ic.Line, Frac: ic.Frac}
		}
		return true
	})

	m.owner.ForEachMobjOnTrace(origin, delta, func(target *MapObject, frac fixedmath.Fixed) bool {
		if target == m || target.Flags&FlagShootable == 0 {
			return true
		}
		if frac < bestFrac {
			bestFrac = frac
			result = AttackResult{HitMobj: true, Mobj: target, Frac: frac}
		}
		return true
	})

	return result
}

// RadiusAttack damages every shootable mobj within radius of origin
// whose line of sight to origin isn't blocked by a solid line, scaling
// damage down linearly with distance; a target exactly at radius is
// included, radius+epsilon excludes it.
func (m *Mobjs) RadiusAttack(origin *MapObject, radius fixedmath.Fixed, damage int32) {
	md := m.world.Map()
	box := bboxOf(origin.X, origin.Y, radius)
	sectorsSeen := make(map[mapdata.SectorID]bool)

	var visit func(id mapdata.SubsectorID) bool
	visit = func(id mapdata.SubsectorID) bool {
		sec := md.SubSector(id).Sector
		if sectorsSeen[sec] {
			return true
		}
		sectorsSeen[sec] = true
		m.ForEachInSector(sec, func(h mapdata.MobjHandle) bool {
			target := m.Get(think.Handle(h))
			if target == nil || target == origin || target.Flags&FlagShootable == 0 {
				return true
			}
			dx := target.X.Sub(origin.X).Abs()
			dy := target.Y.Sub(origin.Y).Abs()
			dist := dx
			if dy > dist {
				dist = dy
			}
			if dist > radius {
				return true
			}
			if !md.CheckSight(mapdata.Vec2{X: origin.X, Y: origin.Y}, mapdata.Vec2{X: target.X, Y: target.Y}, origin.Sector, target.Sector, origin.Z.Add(origin.Height), target.Z.Add(target.Height)) {
				return true
			}
			dmg := damage - dist.Int()
			if dmg <= 0 {
				return true
			}
			m.DamageThing(h, dmg)
			return true
		})
		return true
	}
	md.TraverseBSP(mapdata.Vec2{X: origin.X, Y: origin.Y}, func(b [2]mapdata.BBox) bool {
		return b[0].Intersects(box) || b[1].Intersects(box)
	}, visit)
}
