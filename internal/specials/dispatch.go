// Package specials is sector/line specials: the shared
// move_plane primitive, doors, platforms, lights, stairs, donuts, and
// the p_use_special_line / cross_special_line dispatch tables.
package specials

import (
	"github.com/doomgo/doomgo/internal/debug"
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/rng"
	"github.com/doomgo/doomgo/internal/think"
)

// ThingQuerier is how move_plane's crush check reaches into the mobj
// package's sector thinglist without specials importing mobj for
// anything but this structural interface — mobj.Mobjs implements every
// method here without importing specials (see mobj/manager.go's
// comment on the structural-typing split).
type ThingQuerier interface {
	ForEachInSector(sector mapdata.SectorID, fn func(h mapdata.MobjHandle) bool)
	ThingHeight(h mapdata.MobjHandle) (z, height fixedmath.Fixed, shootable bool)
	DamageThing(h mapdata.MobjHandle, amount int32)
}

// Dispatcher owns every sector-special thinker (doors, platforms,
// floor movers, light effects; there is no ceiling mover) plus the
// line-activation tables,
// and is wired as mobj.LineActivator by the owning Level.
type Dispatcher struct {
	md *mapdata.MapData
	rng *rng.RNG
	things ThingQuerier
	logger *debug.Logger

	arena *think.Arena
	doors *think.Store[VerticalDoor]
	plats *think.Store[Platform]
	floors *think.Store[FloorMove]
	lights *think.Store[LightEffect]
	switches *think.Store[switchRevert]

	activePlats []think.Handle
	levelTime *int32
	exiter LevelExiter
	textures SwitchTexturer
}

// New returns a Dispatcher bound to a map and its thing-query facade.
// levelTime is a pointer into the owning Level's tick counter so
// lights/doors can read "now" without their own back-reference type.
func New(md *mapdata.MapData, rngState *rng.RNG, things ThingQuerier, logger *debug.Logger, levelTime *int32) *Dispatcher {
	return &Dispatcher{
		md: md, rng: rngState, things: things, logger: logger,
		arena: think.New(),
		doors: think.NewStore[VerticalDoor](),
		plats: think.NewStore[Platform](),
		floors: think.NewStore[FloorMove](),
		lights: think.NewStore[LightEffect](),
		switches: think.NewStore[switchRevert](),
		levelTime: levelTime,
	}
}

// RunPass ticks every active special thinker once per level tick.
func (d *Dispatcher) RunPass() { d.arena.RunPass() }

func (d *Dispatcher) warn(format string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Logf(debug.ComponentSpecial, debug.LogLevelWarning, format, args...)
	}
}

func (d *Dispatcher) now() int32 {
	if d.levelTime == nil {
		return 0
	}
	return *d.levelTime
}
