package specials

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/mobj"
	"github.com/doomgo/doomgo/internal/think"
)

// DoorKind distinguishes the handful of door behaviors vanilla's
// linedef types select between.
type DoorKind int

const (
	DoorNormal DoorKind = iota
	DoorClose30ThenOpen
	DoorClose
	DoorOpen
	DoorRaiseIn5Mins
)

const (
	doorSpeed fixedmath.Fixed = 2 << 16
	doorWaitTics int32 = 35 * 4 // 4 seconds at 35Hz
)

type doorState int

const (
	doorUp doorState = iota
	doorDown
	doorWaiting
	doorInStasis
)

// VerticalDoor is the thinker payload for one moving door sector
//.
type VerticalDoor struct {
	sector mapdata.SectorID
	kind DoorKind
	topHeight fixedmath.Fixed
	state doorState
	waitLeft int32
	handle think.Handle
}

// SpawnDoor starts a door thinker on sector, raising or lowering it per
// kind, and records the handle in the sector's SpecialData slot. The
// "one active plane mover per sector" invariant is enforced by callers
// checking SpecialData before calling this.
func (d *Dispatcher) SpawnDoor(sector mapdata.SectorID, kind DoorKind) *VerticalDoor {
	sec := d.md.Sector(sector)
	top := d.lowestAdjacentCeiling(sector) - 4*fixedmath.FracUnit

	door := &VerticalDoor{sector: sector, kind: kind, topHeight: top}
	switch kind {
	case DoorClose:
		door.state = doorDown
	case DoorClose30ThenOpen:
		door.state = doorDown
	default:
		door.state = doorUp
	}

	h := d.arena.Push(think.KindVerticalDoor, func(h think.Handle) bool {
		return d.tickDoor(h)
	})
	door.handle = h
	d.doors.Set(h, door)
	sec.SpecialData = mapdata.ThinkerHandle(h)
	return door
}

func (d *Dispatcher) lowestAdjacentCeiling(sector mapdata.SectorID) fixedmath.Fixed {
	sec := d.md.Sector(sector)
	lowest := sec.CeilingHeight
	first := true
	for _, lid := range sec.Lines {
		line := d.md.Line(lid)
		if !line.TwoSided() {
			continue
		}
		other := d.md.OppositeSector(line, sector)
		if other == mapdata.NoSector {
			continue
		}
		oc := d.md.Sector(other).CeilingHeight
		if first || oc < lowest {
			lowest = oc
			first = false
		}
	}
	return lowest
}

func (d *Dispatcher) tickDoor(h think.Handle) bool {
	door := d.doors.Get(h)
	if door == nil {
		return false
	}
	sec := d.md.Sector(door.sector)

	switch door.state {
	case doorUp:
		res := d.movePlane(door.sector, doorSpeed, door.topHeight, false, true, 1)
		if res == MovePastDest {
			switch door.kind {
			case DoorOpen:
				return d.finishDoor(h, sec)
			default:
				door.state = doorWaiting
				door.waitLeft = doorWaitTics
			}
		}
		return true

	case doorWaiting:
		door.waitLeft--
		if door.waitLeft <= 0 {
			door.state = doorDown
		}
		return true

	case doorDown:
		res := d.movePlane(door.sector, doorSpeed, sec.FloorHeight, false, true, -1)
		switch res {
		case MoveCrushed:
			door.state = doorUp
		case MovePastDest:
			return d.finishDoor(h, sec)
		}
		return true
	}
	return true
}

func (d *Dispatcher) finishDoor(h think.Handle, sec *mapdata.Sector) bool {
	sec.SpecialData = mapdata.ThinkerNone
	d.doors.Delete(h)
	return false
}

// UseDoor implements the use-triggered door activation vanilla calls
// ev_vertical_door. requiredKey is mobj.KeyNone for an unlocked door;
// a locked door only opens for an actor that passes hasKey. A door
// already moving in the sector is reversed. Returns false (no
// activation) if the lock check fails or the sector's active special is
// not a door.
func (d *Dispatcher) UseDoor(sector mapdata.SectorID, kind DoorKind, requiredKey mobj.KeyCard, actor *mobj.MapObject) bool {
	if requiredKey != mobj.KeyNone && !d.hasKey(actor, requiredKey) {
		d.warn("door needs a key the activator doesn't have")
		return false
	}
	sec := d.md.Sector(sector)
	if sec.SpecialData != mapdata.ThinkerNone {
		if existing := d.doors.Get(think.Handle(sec.SpecialData)); existing != nil {
			switch existing.state {
			case doorDown:
				existing.state = doorUp
			case doorUp:
				existing.state = doorDown
			}
			return true
		}
		return false
	}
	d.SpawnDoor(sector, kind)
	return true
}

// hasKey reports whether actor carries requiredKey. Monsters are
// always blocked from opening locked doors: only a player-backed mobj
// can ever satisfy the check.
func (d *Dispatcher) hasKey(actor *mobj.MapObject, requiredKey mobj.KeyCard) bool {
	if actor == nil || actor.Player == nil {
		return false
	}
	return actor.Player.HasCard(requiredKey)
}
