// Package think is the thinker arena: stable-address
// storage for the polymorphic per-tick animation/AI records every
// mobj, door, platform, and light effect is built from, plus the
// intrusive doubly linked active list with deferred removal.
//
// The stable-handle-over-growing-slice discipline mirrors a chunked
// WRAM pool: once a record is pushed, its handle never moves even as
// the arena grows, so other thinkers and the sector specialdata
// back-reference can hold onto it across ticks.
package think

// Handle is a stable reference to a thinker record. The zero Handle
// never denotes a live thinker (slot 0 is reserved), matching
// mapdata.ThinkerNone.
type Handle uint64

const None Handle = 0

// ThinkFunc runs one tick of a thinker's behavior. It returns true to
// keep the thinker alive, false to mark it for removal at the end of
// the current pass.
type ThinkFunc func(h Handle) bool

type slot struct {
	think ThinkFunc
	// kind lets callers recover what concrete behavior a handle backs
	// (door/platform/light/mobj/...) without a type switch on an
	// interface{}; each subsystem registers its own Kind constant.
	kind Kind
	removed bool
	inUse bool
	next, prev Handle
}

// Kind tags which subsystem owns a thinker record's data, so the
// arena's generic Walk can skip straight past kinds a caller doesn't
// care about without reflection.
type Kind int

const (
	KindMobj Kind = iota
	KindVerticalDoor
	KindPlatform
	KindFloorMove
	KindCeilingMove
	KindFireFlicker
	KindLightFlash
	KindStrobeFlash
	KindGlow
	KindSwitchRevert
)

// Arena owns every thinker record. Addresses (handles) are stable for
// the Arena's lifetime; removal is deferred to RunPass's end so a
// thinker can safely mark itself or another thinker dead mid-walk.
type Arena struct {
	slots []slot
	free []Handle
	head Handle // sentinel: slots[0] is never a real thinker, its next/prev form the active ring
}

// New returns an empty Arena with the sentinel slot allocated.
func New() *Arena {
	a := &Arena{slots: make([]slot, 1)}
	a.slots[0] = slot{next: 0, prev: 0}
	return a
}

// Push allocates a new thinker and appends it to the tail of the
// active list, returning its stable handle.
func (a *Arena) Push(kind Kind, fn ThinkFunc) Handle {
	var h Handle
	if n := len(a.free); n > 0 {
		h = a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[h] = slot{think: fn, kind: kind, inUse: true}
	} else {
		h = Handle(len(a.slots))
		a.slots = append(a.slots, slot{think: fn, kind: kind, inUse: true})
	}
	a.linkTail(h)
	return h
}

func (a *Arena) linkTail(h Handle) {
	tail := a.slots[0].prev
	a.slots[h].prev = tail
	a.slots[h].next = 0
	a.slots[tail].next = h
	a.slots[0].prev = h
}

func (a *Arena) unlink(h Handle) {
	s := &a.slots[h]
	a.slots[s.prev].next = s.next
	a.slots[s.next].prev = s.prev
}

// MarkRemove flips the removed flag without unlinking; RunPass reaps
// it once the current walk over the list completes.
func (a *Arena) MarkRemove(h Handle) {
	if h == None || !a.slots[h].inUse {
		return
	}
	a.slots[h].removed = true
}

// IsRemoved reports whether a handle has been marked for removal
// (still valid to read until the next RunPass reaps it).
func (a *Arena) IsRemoved(h Handle) bool {
	return h == None || !a.slots[h].inUse || a.slots[h].removed
}

// Kind returns the thinker kind a handle was pushed with.
func (a *Arena) Kind(h Handle) Kind { return a.slots[h].kind }

// RunPass walks the active list once, invoking each non-removed
// thinker's think function, then unlinks and frees every thinker
// (including ones marked during this same pass) tagged Remove. The walk snapshots `next` before each call so a thinker that
// removes itself or a sibling doesn't corrupt the traversal.
func (a *Arena) RunPass() {
	h := a.slots[0].next
	for h != 0 {
		next := a.slots[h].next
		s := &a.slots[h]
		if !s.removed && s.think != nil {
			if !s.think(h) {
				s.removed = true
			}
		}
		h = next
	}

	h = a.slots[0].next
	for h != 0 {
		next := a.slots[h].next
		if a.slots[h].removed {
			a.unlink(h)
			a.slots[h] = slot{}
			a.free = append(a.free, h)
		}
		h = next
	}
}

// Walk calls visit for every live, non-removed thinker in list order,
// without running their think functions or reaping anything. Useful
// for read-only passes (e.g. the renderer locating door thinkers for a
// HUD, or tests asserting the active set).
func (a *Arena) Walk(visit func(h Handle, kind Kind) bool) {
	h := a.slots[0].next
	for h != 0 {
		s := &a.slots[h]
		if !s.removed {
			if !visit(h, s.kind) {
				return
			}
		}
		h = s.next
	}
}

// Count returns the number of live (including removed-but-not-yet-
// reaped) thinkers.
func (a *Arena) Count() int {
	n := 0
	h := a.slots[0].next
	for h != 0 {
		n++
		h = a.slots[h].next
	}
	return n
}
