package specials

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
)

// MoveResult is move_plane's outcome, driving every door/platform/floor
// thinker's state transitions.
type MoveResult int

const (
	MoveOK MoveResult = iota
	MoveCrushed
	MovePastDest
)

// movePlane raises or lowers a sector's floor or ceiling by speed
// toward dest, the shared primitive every plane-mover thinker calls
// once per tic (this: "move_plane(sector, speed, dest, crush,
// is_ceiling, direction)"). direction is +1 (up) or -1 (down).
func (d *Dispatcher) movePlane(sector mapdata.SectorID, speed, dest fixedmath.Fixed, crush bool, isCeiling bool, direction int) MoveResult {
	sec := d.md.Sector(sector)

	if !isCeiling {
		return d.moveFloor(sec, speed, dest, crush, direction)
	}
	return d.moveCeiling(sec, speed, dest, crush, direction)
}

func (d *Dispatcher) moveFloor(sec *mapdata.Sector, speed, dest fixedmath.Fixed, crush bool, direction int) MoveResult {
	switch {
	case direction < 0: // down
		if sec.FloorHeight-speed < dest {
			sec.FloorHeight = dest
			if d.crushThingsInSector(sec, sec.FloorHeight, true) {
				sec.FloorHeight = dest
			}
			return MovePastDest
		}
		sec.FloorHeight -= speed
		d.crushThingsInSector(sec, sec.FloorHeight, true)
		return MoveOK
	default: // up
		if sec.FloorHeight+speed > dest {
			lastPos := sec.FloorHeight
			sec.FloorHeight = dest
			if d.crushThingsInSector(sec, sec.FloorHeight, true) {
				if !crush {
					sec.FloorHeight = lastPos
					return MoveCrushed
				}
			}
			return MovePastDest
		}
		lastPos := sec.FloorHeight
		sec.FloorHeight += speed
		if d.crushThingsInSector(sec, sec.FloorHeight, true) {
			if !crush {
				sec.FloorHeight = lastPos
				return MoveCrushed
			}
		}
		return MoveOK
	}
}

func (d *Dispatcher) moveCeiling(sec *mapdata.Sector, speed, dest fixedmath.Fixed, crush bool, direction int) MoveResult {
	switch {
	case direction < 0: // down, the crushing direction
		if sec.CeilingHeight-speed < dest {
			lastPos := sec.CeilingHeight
			sec.CeilingHeight = dest
			if d.crushThingsInSector(sec, sec.CeilingHeight, false) {
				if !crush {
					sec.CeilingHeight = lastPos
					return MoveCrushed
				}
			}
			return MovePastDest
		}
		lastPos := sec.CeilingHeight
		sec.CeilingHeight -= speed
		if d.crushThingsInSector(sec, sec.CeilingHeight, false) {
			if !crush {
				sec.CeilingHeight = lastPos
				return MoveCrushed
			}
		}
		return MoveOK
	default: // up
		if sec.CeilingHeight+speed > dest {
			sec.CeilingHeight = dest
			return MovePastDest
		}
		sec.CeilingHeight += speed
		return MoveOK
	}
}

// crushThingsInSector reports whether any shootable thing in the
// sector no longer fits between floor and ceiling at the plane's new
// position, damaging each such thing by 10 (vanilla's crusher damage)
// along the way. movingFloor selects whether newHeight moved the
// floor (true) or the ceiling (false), so the fit test always uses the
// other, stationary plane as the opposite bound.
func (d *Dispatcher) crushThingsInSector(sec *mapdata.Sector, newHeight fixedmath.Fixed, movingFloor bool) bool {
	if d.things == nil {
		return false
	}
	crushed := false
	floor, ceiling := sec.FloorHeight, sec.CeilingHeight
	if movingFloor {
		floor = newHeight
	} else {
		ceiling = newHeight
	}
	d.things.ForEachInSector(sectorIDOf(d.md, sec), func(h mapdata.MobjHandle) bool {
		z, height, shootable := d.things.ThingHeight(h)
		if !shootable {
			return true
		}
		if z >= floor && z+height <= ceiling {
			return true
		}
		crushed = true
		d.things.DamageThing(h, 10)
		return true
	})
	return crushed
}

// sectorIDOf recovers a Sector's own index from its Num field, which
// mapdata's Load sets to the sector's position in the Sectors array;
// the crush helper above uses it because it receives a bare *Sector
// from move_plane's callers.
func sectorIDOf(md *mapdata.MapData, sec *mapdata.Sector) mapdata.SectorID {
	return mapdata.SectorID(sec.Num)
}
