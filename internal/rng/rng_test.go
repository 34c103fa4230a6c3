package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPRandomClassicSequence(t *testing.T) {
	want := []int32{0, 8, 109, 220, 222, 241, 149, 107, 75, 248, 254, 140, 16, 66, 74, 21}
	r := New()
	got := make([]int32, 16)
	for i := range got {
		got[i] = r.PRandom()
	}
	assert.Equal(t, want, got)
}

func TestStreamsAreIndependent(t *testing.T) {
	r := New()
	p := r.PRandom()
	m := r.MRandom()
	assert.Equal(t, int32(0), p)
	assert.Equal(t, int32(0), m)
	// Advancing one stream must not perturb the other's index.
	r.PRandom()
	assert.Equal(t, int32(109), r.PRandom())
	assert.Equal(t, int32(8), r.MRandom())
}

func TestPSubRandomRange(t *testing.T) {
	r := New()
	for i := 0; i < 1000; i++ {
		v := r.PSubRandom()
		assert.GreaterOrEqual(t, v, int32(-255))
		assert.LessOrEqual(t, v, int32(255))
	}
}

func TestResetRestartsSequence(t *testing.T) {
	r := New()
	for i := 0; i < 50; i++ {
		r.PRandom()
		r.MRandom()
	}
	r.Reset()
	assert.Equal(t, int32(0), r.PRandom())
	assert.Equal(t, int32(0), r.MRandom())
}

func TestTableWrapsAt256(t *testing.T) {
	r := New()
	var last int32
	for i := 0; i < 256; i++ {
		last = r.PRandom()
	}
	assert.Equal(t, int32(table[255]), last)
	// 257th call wraps the index back to 0.
	assert.Equal(t, int32(0), r.PRandom())
}
