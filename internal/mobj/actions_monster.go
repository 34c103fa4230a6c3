package mobj

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/think"
)

// dirType is one of the 8 compass headings A_Chase's wander/pursuit
// logic moves along, plus dirNone for "hasn't picked one yet" —
// classic DOOM's dirtype_t.
const (
	dirEast int32 = iota
	dirNorthEast
	dirNorth
	dirNorthWest
	dirWest
	dirSouthWest
	dirSouth
	dirSouthEast
	dirNone
)

func oppositeDir(d int32) int32 {
	if d == dirNone {
		return dirNone
	}
	return (d + 4) % 8
}

func dirAngle(d int32) fixedmath.Angle {
	return fixedmath.Angle(uint32(d)) * fixedmath.Angle45
}

// aproxDistance approximates straight-line distance without a square
// root, matching classic DOOM's P_AproxDistance.
func aproxDistance(dx, dy fixedmath.Fixed) fixedmath.Fixed {
	dx, dy = dx.Abs(), dy.Abs()
	if dx < dy {
		return dy.Add(dx / 2)
	}
	return dx.Add(dy / 2)
}

func distanceTo(a, b *MapObject) fixedmath.Fixed {
	return aproxDistance(b.X.Sub(a.X), b.Y.Sub(a.Y))
}

// meleeRange is the distance A_Chase considers close enough to prefer
// a melee attack over a missile one.
const meleeRange fixedmath.Fixed = 64 << 16

// targetMobj resolves m.Target back to a live *MapObject, or nil if
// it was never set or has since been reaped.
func (m *MapObject) targetMobj() *MapObject {
	if m.Target == noMobjRef || m.owner == nil {
		return nil
	}
	return m.owner.Get(think.Handle(m.Target))
}

// findTarget scans live mobjs in walk order and returns the first
// player-backed one this mobj has line of sight to (not necessarily the
// nearest), the way A_Look's target acquisition
// does in vanilla (sans the sound-wakeup path this port has no audio
// to drive).
func (m *MapObject) findTarget() *MapObject {
	if m.owner == nil {
		return nil
	}
	md := m.level.Map()
	var found *MapObject
	m.owner.Walk(func(o *MapObject) bool {
		if o == m || o.Player == nil || o.Dead() {
			return true
		}
		fromEye := m.Z.Add(m.Height)
		toEye := o.Z.Add(o.Height)
		if !md.CheckSight(mapdata.Vec2{X: m.X, Y: m.Y}, mapdata.Vec2{X: o.X, Y: o.Y}, m.Sector, o.Sector, fromEye, toEye) {
			return true
		}
		found = o
		return false
	})
	return found
}

// moveInDir attempts to step one tic's worth of Info.Speed along dir,
// recording dir as the new MoveDir on success.
func (m *MapObject) moveInDir(dir int32) bool {
	if dir == dirNone {
		return false
	}
	speed := fixedmath.Fixed(m.Info.Speed)
	angle := dirAngle(dir)
	newX := m.X.Add(speed.Mul(fixedmath.Cos(angle)))
	newY := m.Y.Add(speed.Mul(fixedmath.Sin(angle)))
	if !m.TryMove(newX, newY) {
		return false
	}
	m.MoveDir = dir
	return true
}

// diagonalOf returns the single direction combining d1 (east/west) and
// d2 (north/south), or dirNone if either is dirNone.
func diagonalOf(d1, d2 int32) int32 {
	switch {
	case d1 == dirEast && d2 == dirNorth:
		return dirNorthEast
	case d1 == dirEast && d2 == dirSouth:
		return dirSouthEast
	case d1 == dirWest && d2 == dirNorth:
		return dirNorthWest
	case d1 == dirWest && d2 == dirSouth:
		return dirSouthWest
	}
	return dirNone
}

// candidateDirs orders the directions newChaseDir should try first:
// the diagonal combining the target's relative x/y sign, then each
// axis alone.
func candidateDirs(d1, d2 int32) []int32 {
	switch {
	case d1 != dirNone && d2 != dirNone:
		return []int32{diagonalOf(d1, d2), d1, d2}
	case d1 != dirNone:
		return []int32{d1}
	case d2 != dirNone:
		return []int32{d2}
	default:
		return nil
	}
}

// newChaseDir picks a fresh MoveDir biased toward target, falling back
// to a uniformly random heading if every preferred direction is
// blocked — classic DOOM's P_NewChaseDir, trimmed to the subset this
// port's movement primitives need.
func (m *MapObject) newChaseDir(target *MapObject) {
	dx := target.X.Sub(m.X)
	dy := target.Y.Sub(m.Y)

	d1, d2 := dirNone, dirNone
	switch {
	case dx > 10<<16:
		d1 = dirEast
	case dx < -(10 << 16):
		d1 = dirWest
	}
	switch {
	case dy > 10<<16:
		d2 = dirNorth
	case dy < -(10 << 16):
		d2 = dirSouth
	}

	rng := m.level.RNG()
	old := m.MoveDir
	for _, d := range candidateDirs(d1, d2) {
		if d == dirNone || d == oppositeDir(old) {
			continue
		}
		if m.moveInDir(d) {
			m.MoveCount = rng.PRandom()&15 + 1
			return
		}
	}

	for tries := 0; tries < 8; tries++ {
		d := rng.PRandom() % 8
		if d == oppositeDir(old) {
			continue
		}
		if m.moveInDir(d) {
			m.MoveCount = rng.PRandom()&15 + 1
			return
		}
	}
	m.MoveDir = dirNone
}

// tryAttack fires a melee or missile attack at target if in range,
// gated by Info having a matching non-null attack state and (for
// missile attacks) a PRandom roll, mirroring vanilla's A_Chase attack
// gate.
func (m *MapObject) tryAttack(target *MapObject) bool {
	if m.ReactionTime > 0 {
		return false
	}
	dist := distanceTo(m, target)
	if dist < meleeRange && m.Info.MeleeState != StateNull {
		m.SetState(m.Info.MeleeState)
		return true
	}
	if m.Info.MissileState != StateNull && m.level.RNG().PRandom() < 160 {
		m.SetState(m.Info.MissileState)
		return true
	}
	return false
}

// ALook is the spawn/idle state's action: look for a player in sight
// and, on finding one, latch it as Target and advance to SeeState.
func ALook(m *MapObject) {
	target := m.findTarget()
	if target == nil {
		return
	}
	m.Target = mobjRef(target.handle)
	m.Threshold = 0
	if m.Info.SeeState != StateNull {
		m.SetState(m.Info.SeeState)
	}
}

// AChase is the see-state loop's per-tic action: reacquire or drop a
// dead/vanished target, face it, attack if in range, otherwise keep
// wandering toward it.
func AChase(m *MapObject) {
	if m.ReactionTime > 0 {
		m.ReactionTime--
	}
	if m.Threshold > 0 {
		m.Threshold--
	}

	target := m.targetMobj()
	if target == nil || target.Dead() {
		m.Target = noMobjRef
		target = m.findTarget()
		if target == nil {
			return
		}
		m.Target = mobjRef(target.handle)
	}

	AFaceTarget(m)

	if m.tryAttack(target) {
		return
	}

	if m.MoveCount > 0 && m.moveInDir(m.MoveDir) {
		m.MoveCount--
		return
	}
	m.newChaseDir(target)
}

// AFaceTarget turns m to face its current target.
func AFaceTarget(m *MapObject) {
	target := m.targetMobj()
	if target == nil {
		return
	}
	m.Angle = fixedmath.PointToAngle(target.X.Sub(m.X), target.Y.Sub(m.Y))
}

// fireLineAttack resolves a hitscan along m's facing angle and applies
// damage directly to whatever mobj it hits, the same pattern
// player/psprite.go's applyHitscanDamage uses for player weapon fire.
func (m *MapObject) fireLineAttack(distance fixedmath.Fixed, damage int32) {
	result := m.LineAttack(m.Angle, distance, 0)
	if !result.HitMobj || result.Mobj == nil {
		return
	}
	result.Mobj.Health -= damage
	if result.Mobj.Health <= 0 {
		result.Mobj.Health = 0
		result.Mobj.SetState(result.Mobj.Info.DeathState)
	}
}

// APosAttack is the zombieman's pistol shot: a hitscan at
// MissileRange for 3-15 damage.
func APosAttack(m *MapObject) {
	if m.targetMobj() == nil {
		return
	}
	AFaceTarget(m)
	damage := (m.level.RNG().PRandom()%5 + 1) * 3
	m.fireLineAttack(MissileRange, damage)
}

// ASargAttack is the demon's bite: melee-range only, 4-40 damage.
func ASargAttack(m *MapObject) {
	target := m.targetMobj()
	if target == nil {
		return
	}
	AFaceTarget(m)
	if distanceTo(m, target) >= meleeRange {
		return
	}
	damage := (m.level.RNG().PRandom()%10 + 1) * 4
	m.fireLineAttack(meleeRange, damage)
}

// ATroopAttack is the imp's claw: melee-range only in this port (its
// ranged fireball needs a spawned missile-thing type this table
// doesn't model), 3-24 damage.
func ATroopAttack(m *MapObject) {
	target := m.targetMobj()
	if target == nil {
		return
	}
	AFaceTarget(m)
	if distanceTo(m, target) >= meleeRange {
		return
	}
	damage := (m.level.RNG().PRandom()%8 + 1) * 3
	m.fireLineAttack(meleeRange, damage)
}

// APain resets Threshold so a freshly flinching monster doesn't
// immediately drop its target on the same tic.
func APain(m *MapObject) {
	m.Threshold = 0
}

// AScream marks a monster's death-cry frame; vanilla's sound playback
// has no equivalent here since this port has no audio subsystem.
func AScream(m *MapObject) {}

// AFall clears FlagSolid so a corpse stops blocking TryMove's
// footprint checks.
func AFall(m *MapObject) {
	m.Flags &^= FlagSolid
}
