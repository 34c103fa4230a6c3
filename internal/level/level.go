// Package level is the playsim owner: it holds the map,
// thinker arenas, RNG, and players, drives the fixed-35Hz tick, and
// wires mobj.Mobjs together with specials.Dispatcher through the
// structural interfaces each package exports (mobj.LineActivator,
// specials.ThingQuerier), the same pattern an emulator's top-level
// driver uses to wire ROM+bus+CPU+PPU+APU together after constructing
// each independently.
package level

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/doomgo/doomgo/internal/debug"
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/mobj"
	"github.com/doomgo/doomgo/internal/pic"
	"github.com/doomgo/doomgo/internal/player"
	"github.com/doomgo/doomgo/internal/rng"
	"github.com/doomgo/doomgo/internal/specials"
	"github.com/doomgo/doomgo/internal/wad"
)

// TicsPerSecond is vanilla DOOM's fixed simulation rate.
const TicsPerSecond = 35

// Level owns one map's worth of playsim state: geometry, pictures,
// thinkers, and the players standing in it.
type Level struct {
	SessionID string

	Map *mapdata.MapData
	Pics *pic.PicData

	mobjs *mobj.Mobjs
	dispatcher *specials.Dispatcher
	rng *rng.RNG

	Players []*player.Player

	tics int32
	clock *TickClock
	logger *debug.Logger

	exited bool
	secretExit bool

	world *worldAdapter
}

// New loads mapName out of f, wires mobj/specials/player together, and
// returns a ready-to-Tick Level.
func New(f *wad.File, mapName string, logger *debug.Logger) (*Level, error) {
	lumps, err := f.LoadMap(mapName)
	if err != nil {
		return nil, fmt.Errorf("level: load map %s: %w", mapName, err)
	}

	pics := pic.New(logger)
	if err := pics.Load(f); err != nil {
		return nil, fmt.Errorf("level: load pictures: %w", err)
	}

	md := mapdata.New(logger)
	if err := md.Load(lumps, pics.WallTextureID, pics.FlatID); err != nil {
		return nil, fmt.Errorf("level: load map data: %w", err)
	}

	lv := &Level{
		SessionID: uuid.NewString(),
		Map: md,
		Pics: pics,
		rng: rng.New(),
		logger: logger,
		clock: NewTickClock(TicsPerSecond),
	}

	lv.world = &worldAdapter{lv: lv}
	lv.mobjs = mobj.NewMobjs(lv.world)
	lv.dispatcher = specials.New(md, lv.rng, lv.mobjs, logger, &lv.tics)
	lv.mobjs.SetLineActivator(lv.dispatcher)
	lv.dispatcher.SetLevelExiter(lv)
	lv.dispatcher.SetSwitchTexturer(pics)

	lv.spawnMapThings(lumps.Things)

	return lv, nil
}

// Warnf routes sim-time problems through the logger rather than
// propagating an error.
func (lv *Level) Warnf(format string, args ...interface{}) {
	if lv.logger != nil {
		lv.logger.Logf(debug.ComponentLevel, debug.LogLevelWarning, format, args...)
	}
}

// --- specials.LevelExiter ---

// ExitLevel implements specials.LevelExiter: a walkover/switch exit
// special marks the level finished, readable through Exited after each
// Tick. Ticking continues regardless; cmd/dump_logs stops its run on it,
// and neither host nor cmd/doomgo loads another map.
func (lv *Level) ExitLevel(secret bool) {
	lv.exited = true
	lv.secretExit = secret
}

// Exited reports whether an exit special has fired this level.
func (lv *Level) Exited() (exited, secret bool) { return lv.exited, lv.secretExit }

// Mobjs exposes the mobj manager to the renderer and host (read-mostly
// access: spawning/removal still goes through this Level's own API).
func (lv *Level) Mobjs() *mobj.Mobjs { return lv.mobjs }

// Dispatcher exposes the specials dispatcher to the renderer (e.g. for
// HUD-less debug overlays of active doors/platforms).
func (lv *Level) Dispatcher() *specials.Dispatcher { return lv.dispatcher }

func (lv *Level) spawnMapThings(things []wad.Thing) {
	for _, th := range things {
		kind, ok := mobjTypeForDoomedNum(int32(th.Type))
		if !ok {
			continue
		}
		m := lv.mobjs.Spawn(th.X, th.Y, 0, kind)
		m.Angle = th.Angle
		if th.Type == 1 { // player 1 start
			p := player.New(m, lv.world)
			lv.Players = append(lv.Players, p)
		}
	}
}

func mobjTypeForDoomedNum(num int32) (mobj.Type, bool) {
	for t := mobj.Type(0); t < mobj.TypeCount; t++ {
		if mobj.Infos[t].DoomedNum == num {
			return t, true
		}
	}
	return 0, false
}

// Tick advances the level by accumulated real time; it may run zero,
// one, or several 35Hz sim tics depending on how much time elapsed
// since the last call, the fixed-step/variable-framerate split the
// host's render loop depends on.
func (lv *Level) Tick(elapsedSeconds float64, cmds []player.TicCmd) {
	n := lv.clock.Accumulate(elapsedSeconds)
	for i := 0; i < n; i++ {
		lv.runOneTic(cmds)
	}
}

func (lv *Level) runOneTic(cmds []player.TicCmd) {
	for i, p := range lv.Players {
		if i < len(cmds) {
			p.Think(cmds[i])
		}
	}
	lv.mobjs.RunPass()
	lv.dispatcher.RunPass()
	lv.tics++
}

var (
	_ mobj.World = (*worldAdapter)(nil)
	_ player.World = (*worldAdapter)(nil)
)

// worldAdapter exists because Go forbids a type from exporting both a
// field and a method named Map; Level's Map field is the natural public
// name for the geometry (renderer/host code reads lv.Map directly), so
// the mobj.World/player.World method is routed through this tiny
// adapter instead of renaming the field.
type worldAdapter struct{ lv *Level }

func (w *worldAdapter) Map() *mapdata.MapData { return w.lv.Map }
func (w *worldAdapter) RNG() *rng.RNG { return w.lv.rng }
func (w *worldAdapter) Time() int32 { return w.lv.tics }
func (w *worldAdapter) Warnf(format string, args ...interface{}) {
	w.lv.Warnf(format, args...)
}
func (w *worldAdapter) Activator() mobj.LineActivator { return w.lv.dispatcher }
