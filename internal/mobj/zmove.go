package mobj

import "github.com/doomgo/doomgo/internal/fixedmath"

// gravity is vanilla DOOM's per-tic Z acceleration. Z-axis friction
// during falling is under-specified by the source this port is built
// from; this port chooses vanilla semantics (no extra Z friction term,
// momentum simply accumulates gravity and clamps to the floor) rather
// than Boom's or MBF's variants, documented as an explicit choice
// rather than left ambiguous.
const gravity fixedmath.Fixed = 1 << 16 // 1.0 fixed-point unit/tic^2

// ZMove applies one tic of vertical physics: integrate MomZ, clamp at
// floor/ceiling, and accumulate gravity unless the mobj floats or
// flies.
func (m *MapObject) ZMove() {
	if m.Z != m.FloorZ || m.MomZ != 0 {
		m.Z = m.Z.Add(m.MomZ)
	}

	if m.Flags&FlagFloat == 0 {
		if m.Z.Sub(m.FloorZ) != 0 || m.MomZ != 0 {
			if m.Flags&FlagNoGravity == 0 {
				m.MomZ = m.MomZ.Sub(gravity)
			}
		}
	}

	if m.Z < m.FloorZ {
		m.Z = m.FloorZ
		if m.MomZ < 0 {
			m.MomZ = 0
		}
	}
	if m.Z.Add(m.Height) > m.CeilingZ {
		m.Z = m.CeilingZ.Sub(m.Height)
		if m.MomZ > 0 {
			m.MomZ = 0
		}
	}
}

// Thrust applies forward/side movement thrust along angle, the shared
// primitive player movement and monster AI both use.
func (m *MapObject) Thrust(angle fixedmath.Angle, amount fixedmath.Fixed) {
	m.MomX = m.MomX.Add(amount.Mul(fixedmath.Cos(angle)))
	m.MomY = m.MomY.Add(amount.Mul(fixedmath.Sin(angle)))
}

// OnGround reports whether the mobj currently rests on its floor z,
// the precondition player movement thrust requires.
func (m *MapObject) OnGround() bool { return m.Z <= m.FloorZ }
