package specials

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/think"
)

const stairStepHeight fixedmath.Fixed = 8 << 16
const stairSpeed fixedmath.Fixed = fixedmath.FracUnit / 4

// FloorMove is the thinker payload shared by stair-builder steps and
// plain floor movers.
type FloorMove struct {
	sector mapdata.SectorID
	dest fixedmath.Fixed
	speed fixedmath.Fixed
	crush bool
	handle think.Handle
}

func (d *Dispatcher) spawnFloorMove(sector mapdata.SectorID, dest, speed fixedmath.Fixed, crush bool) {
	sec := d.md.Sector(sector)
	fm := &FloorMove{sector: sector, dest: dest, speed: speed, crush: crush}
	h := d.arena.Push(think.KindFloorMove, func(h think.Handle) bool {
		m := d.floors.Get(h)
		if m == nil {
			return false
		}
		dir := 1
		if m.dest < d.md.Sector(m.sector).FloorHeight {
			dir = -1
		}
		res := d.movePlane(m.sector, m.speed, m.dest, m.crush, false, dir)
		if res == MovePastDest {
			d.md.Sector(m.sector).SpecialData = mapdata.ThinkerNone
			d.floors.Delete(h)
			return false
		}
		return true
	})
	fm.handle = h
	d.floors.Set(h, fm)
	sec.SpecialData = mapdata.ThinkerHandle(h)
}

// BuildStairs implements ev_build_stairs: starting from trigger
// sector, it walks a chain of adjacent sectors sharing the trigger's
// floor flat and starts a floor mover on each in the same call. Each
// step's destination is stairStepHeight past the previous step's, so the
// chain ends as a staircase, matching vanilla's BuildStairs behavior.
func (d *Dispatcher) BuildStairs(trigger mapdata.SectorID, stepUp bool) {
	d.md.ValidCount++
	valid := d.md.ValidCount
	height := stairStepHeight
	if !stepUp {
		height = -stairStepHeight
	}

	current := trigger
	d.md.Sector(current).ValidCount = valid
	floorFlat := d.md.Sector(current).FloorFlat
	dest := d.md.Sector(current).FloorHeight

	for {
		sec := d.md.Sector(current)
		if sec.SpecialData != mapdata.ThinkerNone {
			return
		}
		dest += height
		d.spawnFloorMove(current, dest, stairSpeed, false)

		next := mapdata.NoSector
		for _, lid := range sec.Lines {
			line := d.md.Line(lid)
			if !line.TwoSided() {
				continue
			}
			other := d.md.OppositeSector(line, current)
			if other == mapdata.NoSector || d.md.Sector(other).ValidCount == valid {
				continue
			}
			os := d.md.Sector(other)
			if os.FloorFlat != floorFlat {
				continue
			}
			next = other
			break
		}
		if next == mapdata.NoSector {
			return
		}
		d.md.Sector(next).ValidCount = valid
		current = next
	}
}

const donutSpeed fixedmath.Fixed = fixedmath.FracUnit / 2

// BuildDonut implements ev_do_donut: the ring sector
// surrounding trigger lowers to the model sector's floor height (the
// sector beyond the ring, found via the ring's opposite two-sided
// line), carrying that model's floor flat texture along.
func (d *Dispatcher) BuildDonut(trigger mapdata.SectorID) {
	sec := d.md.Sector(trigger)
	var ring mapdata.SectorID = mapdata.NoSector
	for _, lid := range sec.Lines {
		line := d.md.Line(lid)
		if line.TwoSided() {
			ring = d.md.OppositeSector(line, trigger)
			break
		}
	}
	if ring == mapdata.NoSector {
		return
	}
	ringSec := d.md.Sector(ring)
	if ringSec.SpecialData != mapdata.ThinkerNone {
		return
	}

	var model mapdata.SectorID = mapdata.NoSector
	for _, lid := range ringSec.Lines {
		line := d.md.Line(lid)
		if !line.TwoSided() {
			continue
		}
		other := d.md.OppositeSector(line, ring)
		if other == mapdata.NoSector || other == trigger {
			continue
		}
		model = other
		break
	}
	if model == mapdata.NoSector {
		return
	}
	modelSec := d.md.Sector(model)
	ringSec.FloorFlat = modelSec.FloorFlat
	d.spawnFloorMove(ring, modelSec.FloorHeight, donutSpeed, false)
}
