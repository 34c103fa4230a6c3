package mobj

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/think"
)

// Mobjs owns every live MapObject: the thinker arena providing stable
// handles and deferred removal, and the per-sector intrusive thinglist
// discipline.
type Mobjs struct {
	arena *think.Arena
	store *think.Store[MapObject]
	world World
	lineAct LineActivator
}

// NewMobjs returns an empty manager bound to a World (Level) facade.
func NewMobjs(world World) *Mobjs {
	return &Mobjs{
		arena: think.New(),
		store: think.NewStore[MapObject](),
		world: world,
	}
}

// SetLineActivator wires the specials dispatcher in once both halves
// of the playsim exist; Level does this right after constructing both.
func (ms *Mobjs) SetLineActivator(la LineActivator) { ms.lineAct = la }

// Get resolves a stable handle back to its MapObject, or nil if it has
// been reaped or was never valid.
func (ms *Mobjs) Get(h think.Handle) *MapObject {
	if ms.arena.IsRemoved(h) {
		return nil
	}
	return ms.store.Get(h)
}

// Spawn places a new mobj at (x,y,z), inserts it into the thinker
// arena and its sector's thinglist, and runs its spawn state.
func (ms *Mobjs) Spawn(x, y, z fixedmath.Fixed, kind Type) *MapObject {
	info := &Infos[kind]
	m := &MapObject{
		X: x, Y: y, Z: z,
		Kind: kind,
		Info: info,
		Radius: fixedmath.Fixed(info.Radius),
		Height: fixedmath.Fixed(info.Height),
		Flags: info.Flags,
		Health: info.Health,
		ReactionTime: info.ReactionTime,
		MoveDir: dirNone,
		owner: ms,
		level: ms.world,
	}

	h := ms.arena.Push(think.KindMobj, func(h think.Handle) bool {
		obj := ms.store.Get(h)
		if obj == nil || obj.removed {
			return false
		}
		obj.TickState()
		return !obj.removed
	})
	m.handle = h
	ms.store.Set(h, m)

	md := ms.world.Map()
	m.Subsector = md.PointInSubsector(mapdata.Vec2{X: x, Y: y})
	sec := md.SubSector(m.Subsector).Sector
	m.Sector = sec
	ms.setThingPosition(m, sec)

	secp := md.Sector(sec)
	m.FloorZ = secp.FloorHeight
	m.CeilingZ = secp.CeilingHeight

	m.SetState(info.SpawnState)
	return m
}

// Walk visits every live mobj in the arena in unspecified order; used
// by monster AI to scan for a sight target.
func (ms *Mobjs) Walk(fn func(m *MapObject) bool) {
	ms.arena.Walk(func(h think.Handle, k think.Kind) bool {
		m := ms.store.Get(h)
		if m == nil {
			return true
		}
		return fn(m)
	})
}

// RunPass ticks every mobj's state machine once (called from
// Level.Tick's thinker walk) and reaps anything marked removed,
// unlinking it from its sector's thinglist first.
func (ms *Mobjs) RunPass() {
	var toReap []think.Handle
	ms.arena.Walk(func(h think.Handle, k think.Kind) bool {
		if m := ms.store.Get(h); m != nil && m.removed {
			toReap = append(toReap, h)
		}
		return true
	})
	ms.arena.RunPass()
	for _, h := range toReap {
		if m := ms.store.Get(h); m != nil {
			ms.unsetThingPosition(m)
			ms.store.Delete(h)
		}
	}
}

// --- thinglist discipline ---

// setThingPosition inserts m at the head of sector's thinglist.
func (ms *Mobjs) setThingPosition(m *MapObject, sector mapdata.SectorID) {
	md := ms.world.Map()
	sec := md.Sector(sector)
	oldHead := sec.ThingListHead
	m.sPrev = think.None
	m.sNext = think.Handle(oldHead)
	if oldHead != mapdata.MobjNone {
		if next := ms.store.Get(think.Handle(oldHead)); next != nil {
			next.sPrev = m.handle
		}
	}
	sec.ThingListHead = mapdata.MobjHandle(m.handle)
}

// unsetThingPosition removes m from whichever sector's thinglist
// currently holds it.
func (ms *Mobjs) unsetThingPosition(m *MapObject) {
	md := ms.world.Map()
	sec := md.Sector(m.Sector)
	if mapdata.MobjHandle(m.handle) == sec.ThingListHead {
		sec.ThingListHead = mapdata.MobjHandle(m.sNext)
	}
	if m.sPrev != think.None {
		if prev := ms.store.Get(m.sPrev); prev != nil {
			prev.sNext = m.sNext
		}
	}
	if m.sNext != think.None {
		if next := ms.store.Get(m.sNext); next != nil {
			next.sPrev = m.sPrev
		}
	}
	m.sNext, m.sPrev = think.None, think.None
}

// ChangeSector moves m from its current sector's thinglist to a new
// one's, as required after a successful TryMove.
func (ms *Mobjs) ChangeSector(m *MapObject, newSector mapdata.SectorID) {
	ms.unsetThingPosition(m)
	m.Sector = newSector
	ms.setThingPosition(m, newSector)
}

// RunFuncOnThinglist walks a sector's thinglist, snapshotting each
// mobj's sNext before invoking fn so fn may safely remove the current
// mobj from the list.
func (ms *Mobjs) RunFuncOnThinglist(sector mapdata.SectorID, fn func(m *MapObject) bool) {
	md := ms.world.Map()
	h := think.Handle(md.Sector(sector).ThingListHead)
	for h != think.None {
		m := ms.store.Get(h)
		if m == nil {
			return
		}
		next := m.sNext
		if !fn(m) {
			return
		}
		h = next
	}
}

// --- specials.ThingQuerier structural implementation ---
// These methods satisfy specials.ThingQuerier without mobj importing
// specials: Go matches the interface structurally at the call site in
// the level package, which holds the concrete *specials.Dispatcher and
// assigns this *Mobjs to its ThingQuerier field.

// ForEachInSector matches specials.ThingQuerier.
func (ms *Mobjs) ForEachInSector(sector mapdata.SectorID, fn func(h mapdata.MobjHandle) bool) {
	ms.RunFuncOnThinglist(sector, func(m *MapObject) bool {
		return fn(mapdata.MobjHandle(m.handle))
	})
}

// ThingHeight matches specials.ThingQuerier.
func (ms *Mobjs) ThingHeight(h mapdata.MobjHandle) (z, height fixedmath.Fixed, shootable bool) {
	m := ms.store.Get(think.Handle(h))
	if m == nil {
		return 0, 0, false
	}
	return m.Z, m.Height, m.Flags&FlagShootable != 0
}

// ForEachMobjOnTrace visits every live, shootable-candidate mobj whose
// radius-expanded footprint the segment (origin, origin+delta) passes
// within, reporting the fraction along the segment of closest approach.
// Used by LineAttack to merge mobj intercepts with linedef intercepts
// into one nearest-wins comparison.
func (ms *Mobjs) ForEachMobjOnTrace(origin, delta mapdata.Vec2, fn func(target *MapObject, frac fixedmath.Fixed) bool) {
	segLenSq := delta.X.Mul(delta.X).Add(delta.Y.Mul(delta.Y))
	if segLenSq == 0 {
		return
	}
	ms.arena.Walk(func(h think.Handle, k think.Kind) bool {
		m := ms.store.Get(h)
		if m == nil {
			return true
		}
		toX := m.X.Sub(origin.X)
		toY := m.Y.Sub(origin.Y)
		t := toX.Mul(delta.X).Add(toY.Mul(delta.Y)).Div(segLenSq)
		if t < 0 {
			t = 0
		}
		if t > fixedmath.FracUnit {
			t = fixedmath.FracUnit
		}
		closestX := origin.X.Add(delta.X.Mul(t))
		closestY := origin.Y.Add(delta.Y.Mul(t))
		dx := m.X.Sub(closestX)
		dy := m.Y.Sub(closestY)
		distSq := dx.Mul(dx).Add(dy.Mul(dy))
		if distSq > m.Radius.Mul(m.Radius) {
			return true
		}
		return fn(m, t)
	})
}

// DamageThing matches specials.ThingQuerier: applies crusher damage to
// a live thing and moves it to its DeathState once its health reaches
// zero; dead or missing things are left alone.
func (ms *Mobjs) DamageThing(h mapdata.MobjHandle, amount int32) {
	m := ms.store.Get(think.Handle(h))
	if m == nil || m.Dead() {
		return
	}
	m.Health -= amount
	if m.Health <= 0 {
		m.Health = 0
		m.SetState(m.Info.DeathState)
	}
}
