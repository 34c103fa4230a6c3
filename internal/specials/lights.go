package specials

import (
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/think"
)

// LightEffect is the shared payload for every light thinker kind; which fields matter is determined by the Kind the thinker was
// pushed with.
type LightEffect struct {
	sector mapdata.SectorID
	maxLight, minLight int32
	darkTics, brightTics int32
	count int32
	direction int32 // Glow only: +1 brightening, -1 dimming
	handle think.Handle
}

// SpawnFireFlicker starts a torch-style random flicker between
// maxLight and maxLight-16, rolling on the first tic and then every 4
// tics.
func (d *Dispatcher) SpawnFireFlicker(sector mapdata.SectorID) {
	sec := d.md.Sector(sector)
	eff := &LightEffect{sector: sector, maxLight: sec.LightLevel, minLight: sec.LightLevel - 16}
	if eff.minLight < 0 {
		eff.minLight = 0
	}
	h := d.arena.Push(think.KindFireFlicker, func(h think.Handle) bool {
		e := d.lights.Get(h)
		if e == nil {
			return false
		}
		e.count--
		if e.count > 0 {
			return true
		}
		s := d.md.Sector(e.sector)
		if d.rng.MRandom()&1 == 0 {
			s.LightLevel = e.minLight
		} else {
			s.LightLevel = e.maxLight
		}
		e.count = 4
		return true
	})
	eff.handle = h
	eff.count = 1
	d.lights.Set(h, eff)
}

// SpawnLightFlash starts the irregular "broken fluorescent" flicker
// between the sector's current light and its lowest adjacent light.
func (d *Dispatcher) SpawnLightFlash(sector mapdata.SectorID) {
	sec := d.md.Sector(sector)
	eff := &LightEffect{sector: sector, maxLight: sec.LightLevel, minLight: d.lowestAdjacentLight(sector)}
	h := d.arena.Push(think.KindLightFlash, func(h think.Handle) bool {
		e := d.lights.Get(h)
		if e == nil {
			return false
		}
		e.count--
		if e.count > 0 {
			return true
		}
		s := d.md.Sector(e.sector)
		if s.LightLevel == e.maxLight {
			s.LightLevel = e.minLight
			e.count = (d.rng.MRandom() & 7) + 1
		} else {
			s.LightLevel = e.maxLight
			e.count = (d.rng.MRandom() & 63) + 1
		}
		return true
	})
	eff.handle = h
	eff.count = (d.rng.MRandom() & 63) + 1
	d.lights.Set(h, eff)
}

// SpawnStrobeFlash starts a regular on/off strobe at brightTics/darkTics
// periods between the sector's light and its lowest adjacent light.
func (d *Dispatcher) SpawnStrobeFlash(sector mapdata.SectorID, darkTics, brightTics int32, inSync bool) {
	sec := d.md.Sector(sector)
	min := d.lowestAdjacentLight(sector)
	if min == sec.LightLevel {
		min = 0
	}
	eff := &LightEffect{sector: sector, maxLight: sec.LightLevel, minLight: min, darkTics: darkTics, brightTics: brightTics}
	h := d.arena.Push(think.KindStrobeFlash, func(h think.Handle) bool {
		e := d.lights.Get(h)
		if e == nil {
			return false
		}
		e.count--
		if e.count > 0 {
			return true
		}
		s := d.md.Sector(e.sector)
		if s.LightLevel == e.minLight {
			s.LightLevel = e.maxLight
			e.count = e.brightTics
		} else {
			s.LightLevel = e.minLight
			e.count = e.darkTics
		}
		return true
	})
	eff.handle = h
	if inSync {
		eff.count = 1
	} else {
		eff.count = (d.rng.MRandom() & 7) + 1
	}
	d.lights.Set(h, eff)
}

// SpawnGlow starts a slow continuous brighten/dim cycle between the
// sector's light and its lowest adjacent light.
func (d *Dispatcher) SpawnGlow(sector mapdata.SectorID) {
	sec := d.md.Sector(sector)
	eff := &LightEffect{sector: sector, maxLight: sec.LightLevel, minLight: d.lowestAdjacentLight(sector), direction: -1}
	h := d.arena.Push(think.KindGlow, func(h think.Handle) bool {
		e := d.lights.Get(h)
		if e == nil {
			return false
		}
		s := d.md.Sector(e.sector)
		const glowSpeed = 8
		switch e.direction {
		case -1:
			s.LightLevel -= glowSpeed
			if s.LightLevel <= e.minLight {
				s.LightLevel = e.minLight
				e.direction = 1
			}
		case 1:
			s.LightLevel += glowSpeed
			if s.LightLevel >= e.maxLight {
				s.LightLevel = e.maxLight
				e.direction = -1
			}
		}
		return true
	})
	eff.handle = h
	d.lights.Set(h, eff)
}

func (d *Dispatcher) lowestAdjacentLight(sector mapdata.SectorID) int32 {
	sec := d.md.Sector(sector)
	lowest := sec.LightLevel
	for _, lid := range sec.Lines {
		line := d.md.Line(lid)
		if !line.TwoSided() {
			continue
		}
		other := d.md.OppositeSector(line, sector)
		if other == mapdata.NoSector {
			continue
		}
		if ol := d.md.Sector(other).LightLevel; ol < lowest {
			lowest = ol
		}
	}
	return lowest
}
