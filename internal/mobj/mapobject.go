package mobj

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/rng"
	"github.com/doomgo/doomgo/internal/think"
)

// World is everything a MapObject needs from its owning Level without
// importing the level package directly (mobj sits below level in the
// dependency graph; level owns both mobj.Mobjs and the specials
// dispatcher and wires them together). Keeping this as a narrow
// interface rather than a concrete *level.Level is the same
// structural-typing trick used to let specials' crush checks reach
// into mobj without mobj depending on specials.
type World interface {
	Map() *mapdata.MapData
	RNG() *rng.RNG
	Time() int32
	Warnf(format string, args ...interface{})
}

// LineActivator is how a successful move's line crossings reach the
// specials dispatcher, and how Player.UseLines reaches line activation
//. Level assigns the concrete
// specials.Dispatcher to this after both are constructed.
type LineActivator interface {
	CrossSpecialLine(side int, line mapdata.LineID, actor *MapObject)
	UseSpecialLine(side int, line mapdata.LineID, actor *MapObject) bool
}

// PlayerBackref is the player-specific state layered onto a MapObject
// when its Player field is non-nil. The player package owns the full
// definition; mobj reaches it only through these methods.
type PlayerBackref interface {
	NotifyDeath()
	// HasCard reports whether this player holds the named key card (or
	// its matching-color skull key); locked doors check this before
	// opening for a player-backed actor.
	HasCard(card KeyCard) bool
}

// MapObject is any in-world entity: position, orientation,
// momentum, current state, type info, flags, floor/ceiling portal
// constraints, and the sector thinglist links.
type MapObject struct {
	handle think.Handle

	X, Y, Z fixedmath.Fixed
	Angle fixedmath.Angle
	MomX, MomY, MomZ fixedmath.Fixed

	Radius, Height fixedmath.Fixed

	Kind Type
	Info *Info

	State StateNum
	Sprite int32
	Frame int32
	Tics int32

	Flags Flag

	FloorZ, CeilingZ fixedmath.Fixed

	Health int32
	ReactionTime int32
	Threshold int32
	// MoveDir is the current 8-way wander/chase heading (a dirType
	// value, or dirNone while the mobj hasn't picked one yet); MoveCount
	// is how many more tics A_Chase will keep walking that heading
	// before re-rolling it. Both are driven entirely by A_Chase.
	MoveDir int32
	MoveCount int32

	Target mobjRef
	Tracer mobjRef

	Player PlayerBackref

	Subsector mapdata.SubsectorID
	Sector mapdata.SectorID

	// thinglist intrusive links, scoped per-sector; the sector only
	// stores the head handle (mapdata.Sector.ThingListHead), these are
	// the rest of the doubly linked list.
	sNext, sPrev think.Handle

	pendingPSprite int

	removed bool

	owner *Mobjs
	level World
}

// mobjRef is a handle into the owning Mobjs manager rather than a raw
// pointer, so a dangling Target/Tracer after the referenced mobj is
// reaped reads back as "no target" instead of a stale pointer.
type mobjRef think.Handle

const noMobjRef mobjRef = mobjRef(think.None)

// MarkRemove is called by SetState(StateNull) or explicit kills; the
// actual unlink/free happens in the owning Arena's next RunPass.
func (m *MapObject) MarkRemove() {
	m.removed = true
	if m.owner != nil {
		m.owner.arena.MarkRemove(m.handle)
	}
}

// Handle returns this mobj's stable arena handle.
func (m *MapObject) Handle() think.Handle { return m.handle }

// Dead reports whether Health has reached zero; death-state transition
// is driven separately by the damage-resolution code in attack.go.
func (m *MapObject) Dead() bool { return m.Health <= 0 }
