package think

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushAndRunPassInvokesEachThinker(t *testing.T) {
	a := New()
	calls := 0
	a.Push(KindMobj, func(h Handle) bool { calls++; return true })
	a.Push(KindMobj, func(h Handle) bool { calls++; return true })
	a.RunPass()
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, a.Count())
}

func TestMarkRemoveDuringPassSkipsNextPass(t *testing.T) {
	a := New()
	var victim Handle
	victim = a.Push(KindMobj, func(h Handle) bool { return true })
	survivorCalls := 0
	a.Push(KindMobj, func(h Handle) bool {
		a.MarkRemove(victim)
		survivorCalls++
		return true
	})

	a.RunPass()
	assert.Equal(t, 1, survivorCalls)
	assert.Equal(t, 1, a.Count())

	calls := 0
	a.Walk(func(h Handle, k Kind) bool { calls++; return true })
	assert.Equal(t, 1, calls)
}

func TestThinkerReturningFalseIsReapedNextPass(t *testing.T) {
	a := New()
	tick := 0
	a.Push(KindMobj, func(h Handle) bool {
		tick++
		return tick < 2
	})
	a.RunPass()
	assert.Equal(t, 1, a.Count())
	a.RunPass()
	assert.Equal(t, 0, a.Count())
}

func TestHandlesStaySableAcrossPushAndReap(t *testing.T) {
	a := New()
	h1 := a.Push(KindMobj, func(h Handle) bool { return false })
	a.RunPass() // reaps h1, frees its slot
	h2 := a.Push(KindMobj, func(h Handle) bool { return true })
	assert.Equal(t, h1, h2) // slot reuse is fine, handle identity only matters while live
}

func TestStoreSetGetDelete(t *testing.T) {
	s := NewStore[int]()
	v := 42
	s.Set(Handle(1), &v)
	assert.Equal(t, &v, s.Get(Handle(1)))
	s.Delete(Handle(1))
	assert.Nil(t, s.Get(Handle(1)))
}
