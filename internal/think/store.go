package think

// Store holds the per-kind payload data for thinkers of one Go type,
// indexed by Handle. Each subsystem (mobj, specials' door/platform/
// light variants) owns one Store[T] alongside the shared Arena; the
// Arena tracks liveness and scheduling, the Store holds the actual
// fields, the same split as a scheduler owning timing versus a device
// owning its own register state.
type Store[T any] struct {
	data map[Handle]*T
}

// NewStore returns an empty Store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{data: make(map[Handle]*T)}
}

// Set attaches a payload to a handle, overwriting any previous value.
func (s *Store[T]) Set(h Handle, v *T) { s.data[h] = v }

// Get returns the payload for a handle, or nil if none is attached.
func (s *Store[T]) Get(h Handle) *T { return s.data[h] }

// Delete removes a handle's payload; called once a thinker is reaped.
func (s *Store[T]) Delete(h Handle) { delete(s.data, h) }
