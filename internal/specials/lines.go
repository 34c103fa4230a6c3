package specials

import (
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/mobj"
)

// lineSpecial tags the handful of classic linedef special numbers this
// port implements.
const (
	specDoorManualOnce int16 = 1
	specDoorManualRepeat int16 = 31
	specDoorWalkOnce int16 = 4
	specDoorBlueManual int16 = 26
	specDoorYellowManual int16 = 27
	specDoorRedManual int16 = 28
	specPlatDownWaitUpOnce int16 = 62
	specPlatDownWaitUpWalk int16 = 88
	specFloorRaiseWalk int16 = 18
	specStairsBuildWalk int16 = 8
	specDonutWalk int16 = 9
	specLightsStrobeWalk int16 = 17
	specExitLevelWalk int16 = 11
)

// LevelExiter is notified when a walkover/use special triggers a level
// exit, letting the
// owning Level decide how to transition without specials importing it.
type LevelExiter interface {
	ExitLevel(secret bool)
}

// SetLevelExiter wires the exit-level callback once the Level exists.
func (d *Dispatcher) SetLevelExiter(e LevelExiter) { d.exiter = e }

// CrossSpecialLine implements mobj.LineActivator: called once per
// crossing of a special-tagged two-sided line by a TryMove that
// changed sides. Only monsters-and-players-allowed
// walkover types fire; the remainder of vanilla's per-type player-only
// gate is collapsed into the switch below.
func (d *Dispatcher) CrossSpecialLine(side int, lineID mapdata.LineID, actor *mobj.MapObject) {
	line := d.md.Line(lineID)
	if line.Special == 0 || side != 0 {
		return
	}
	switch line.Special {
	case specDoorWalkOnce:
		d.forEachTaggedSector(line.Tag, func(s mapdata.SectorID) { d.UseDoor(s, DoorNormal, mobj.KeyNone, actor) })
		d.trySwitchTexture(line, side, false)
	case specPlatDownWaitUpWalk:
		d.forEachTaggedSector(line.Tag, func(s mapdata.SectorID) { d.UsePlatform(s, PlatDownWaitUpStay) })
	case specFloorRaiseWalk:
		d.forEachTaggedSector(line.Tag, func(s mapdata.SectorID) {
			sec := d.md.Sector(s)
			if sec.SpecialData == mapdata.ThinkerNone {
				d.spawnFloorMove(s, sec.CeilingHeight, stairSpeed, false)
			}
		})
	case specStairsBuildWalk:
		d.forEachTaggedSector(line.Tag, func(s mapdata.SectorID) { d.BuildStairs(s, true) })
	case specDonutWalk:
		d.forEachTaggedSector(line.Tag, func(s mapdata.SectorID) { d.BuildDonut(s) })
	case specLightsStrobeWalk:
		d.forEachTaggedSector(line.Tag, func(s mapdata.SectorID) { d.SpawnStrobeFlash(s, 35, 5, false) })
	case specExitLevelWalk:
		if d.exiter != nil {
			d.exiter.ExitLevel(false)
		}
	}
}

// UseSpecialLine implements mobj.LineActivator: called from a use
// trigger. Returns whether the use should stop tracing past this line
// (vanilla: any successfully activated special line blocks the ray).
func (d *Dispatcher) UseSpecialLine(side int, lineID mapdata.LineID, actor *mobj.MapObject) bool {
	line := d.md.Line(lineID)
	if line.Special == 0 {
		return false
	}
	switch line.Special {
	case specDoorManualOnce, specDoorManualRepeat:
		return d.useManualDoor(line, side, actor, mobj.KeyNone, line.Special == specDoorManualRepeat)
	case specDoorBlueManual:
		return d.useManualDoor(line, side, actor, mobj.KeyBlue, false)
	case specDoorYellowManual:
		return d.useManualDoor(line, side, actor, mobj.KeyYellow, false)
	case specDoorRedManual:
		return d.useManualDoor(line, side, actor, mobj.KeyRed, false)
	case specPlatDownWaitUpOnce:
		sector := d.backSectorOf(line, side)
		if sector == mapdata.NoSector {
			return false
		}
		if !d.UsePlatform(sector, PlatDownWaitUpStay) {
			return false
		}
		d.trySwitchTexture(line, side, false)
		return true
	}
	return false
}

// useManualDoor resolves the use-triggered sector behind line/side,
// opens it (subject to requiredKey's lock check), and swaps the
// switch texture on success.
func (d *Dispatcher) useManualDoor(line *mapdata.LineDef, side int, actor *mobj.MapObject, requiredKey mobj.KeyCard, repeatable bool) bool {
	sector := d.backSectorOf(line, side)
	if sector == mapdata.NoSector {
		return false
	}
	if !d.UseDoor(sector, DoorNormal, requiredKey, actor) {
		return false
	}
	d.trySwitchTexture(line, side, repeatable)
	return true
}

func (d *Dispatcher) backSectorOf(line *mapdata.LineDef, side int) mapdata.SectorID {
	if !line.TwoSided() {
		return mapdata.NoSector
	}
	if side == 0 {
		return d.md.Side(line.BackSide).Sector
	}
	return d.md.Side(line.FrontSide).Sector
}

// forEachTaggedSector runs fn for every sector whose Tag matches,
// vanilla's universal "find sectors by tag" iteration every walkover
// and use special built on top of.
func (d *Dispatcher) forEachTaggedSector(tag int16, fn func(mapdata.SectorID)) {
	if tag == 0 {
		return
	}
	for i := range d.md.Sectors {
		if d.md.Sectors[i].Tag == tag {
			fn(mapdata.SectorID(i))
		}
	}
}
