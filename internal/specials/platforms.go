package specials

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/think"
)

// PlatKind selects which of vanilla's handful of platform behaviors a
// linedef activates.
type PlatKind int

const (
	PlatDownWaitUpStay PlatKind = iota
	PlatRaiseAndChange
	PlatPerpetualRaise
)

const (
	platSpeed fixedmath.Fixed = 1 << 16
	platWaitTics int32 = 35 * 3
)

type platState int

const (
	platUp platState = iota
	platDown
	platWait
)

// Platform is the thinker payload for a moving floor that waits at
// each end.
type Platform struct {
	sector mapdata.SectorID
	kind PlatKind
	low, high fixedmath.Fixed
	state platState
	waitLeft int32
	speed fixedmath.Fixed
	handle think.Handle
}

// SpawnPlatform starts a platform thinker oscillating between the
// sector's current floor height and the lowest adjacent floor.
func (d *Dispatcher) SpawnPlatform(sector mapdata.SectorID, kind PlatKind) *Platform {
	sec := d.md.Sector(sector)
	low := d.lowestAdjacentFloor(sector)
	if low > sec.FloorHeight {
		low = sec.FloorHeight
	}

	plat := &Platform{
		sector: sector, kind: kind,
		low: low, high: sec.FloorHeight,
		state: platDown, speed: platSpeed,
	}
	h := d.arena.Push(think.KindPlatform, func(h think.Handle) bool {
		return d.tickPlatform(h)
	})
	plat.handle = h
	d.plats.Set(h, plat)
	sec.SpecialData = mapdata.ThinkerHandle(h)
	d.activePlats = append(d.activePlats, h)
	return plat
}

func (d *Dispatcher) lowestAdjacentFloor(sector mapdata.SectorID) fixedmath.Fixed {
	sec := d.md.Sector(sector)
	lowest := sec.FloorHeight
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
		of := d.md.Sector(other).FloorHeight
		if first || of < lowest {
			lowest = of
			first = false
		}
	}
	return lowest
}

func (d *Dispatcher) tickPlatform(h think.Handle) bool {
	plat := d.plats.Get(h)
	if plat == nil {
		return false
	}
	sec := d.md.Sector(plat.sector)

	switch plat.state {
	case platUp:
		res := d.movePlane(plat.sector, plat.speed, plat.high, false, false, 1)
		if res == MovePastDest {
			if plat.kind == PlatRaiseAndChange {
				return d.finishPlatform(h, sec)
			}
			plat.state = platWait
			plat.waitLeft = platWaitTics
		}
		return true

	case platDown:
		res := d.movePlane(plat.sector, plat.speed, plat.low, false, false, -1)
		if res == MovePastDest {
			plat.state = platWait
			plat.waitLeft = platWaitTics
		}
		return true

	case platWait:
		plat.waitLeft--
		if plat.waitLeft <= 0 {
			if sec.FloorHeight <= plat.low {
				plat.state = platUp
			} else {
				plat.state = platDown
			}
		}
		return true
	}
	return true
}

func (d *Dispatcher) finishPlatform(h think.Handle, sec *mapdata.Sector) bool {
	sec.SpecialData = mapdata.ThinkerNone
	d.plats.Delete(h)
	for i, ph := range d.activePlats {
		if ph == h {
			d.activePlats = append(d.activePlats[:i], d.activePlats[i+1:]...)
			break
		}
	}
	return false
}

// UsePlatform activates a DownWaitUpStay-style platform from a use or
// walkover line trigger, refusing if the sector already has an active
// special.
func (d *Dispatcher) UsePlatform(sector mapdata.SectorID, kind PlatKind) bool {
	sec := d.md.Sector(sector)
	if sec.SpecialData != mapdata.ThinkerNone {
		return false
	}
	d.SpawnPlatform(sector, kind)
	return true
}
