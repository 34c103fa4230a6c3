package mobj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doomgo/doomgo/internal/fixedmath"
)

type fakePlayerBackref struct{ dead bool }

func (f *fakePlayerBackref) NotifyDeath()              { f.dead = true }
func (f *fakePlayerBackref) HasCard(card KeyCard) bool { return card == KeyNone }

func TestALookAcquiresVisiblePlayerTarget(t *testing.T) {
	ms, _ := newTestMobjs(t)
	monster := ms.Spawn(0, 0, 0, TypePossessed)
	player := ms.Spawn(64<<16, 0, 0, TypePlayer)
	player.Player = &fakePlayerBackref{}

	ALook(monster)

	require.NotEqual(t, noMobjRef, monster.Target)
	assert.Equal(t, monster.Info.SeeState, monster.State)
}

func TestALookIgnoresNonPlayerMobjs(t *testing.T) {
	// No player-backed mobj anywhere in the room, so findTarget must
	// never latch onto the other monster.
	ms, _ := newTestMobjs(t)
	monster := ms.Spawn(0, 0, 0, TypePossessed)
	other := ms.Spawn(64<<16, 0, 0, TypeImp)
	_ = other

	ALook(monster)

	assert.Equal(t, noMobjRef, monster.Target)
}

func TestAChaseFacesAndAttacksInMeleeRange(t *testing.T) {
	ms, _ := newTestMobjs(t)
	monster := ms.Spawn(0, 0, 0, TypeDemon)
	player := ms.Spawn(32<<16, 0, 0, TypePlayer)
	player.Player = &fakePlayerBackref{}
	monster.Target = mobjRef(player.handle)
	monster.ReactionTime = 0 // past the initial wake-up delay

	AChase(monster)

	assert.Equal(t, monster.Info.MeleeState, monster.State)
}

func TestAFaceTargetTurnsTowardTarget(t *testing.T) {
	ms, _ := newTestMobjs(t)
	monster := ms.Spawn(0, 0, 0, TypeImp)
	player := ms.Spawn(100<<16, 0, 0, TypePlayer)
	player.Player = &fakePlayerBackref{}
	monster.Target = mobjRef(player.handle)

	AFaceTarget(monster)

	assert.Equal(t, fixedmath.Angle0, monster.Angle)
}

func TestAFallClearsSolidFlag(t *testing.T) {
	ms, _ := newTestMobjs(t)
	m := ms.Spawn(0, 0, 0, TypeImp)
	require.NotEqual(t, Flag(0), m.Flags&FlagSolid)
	AFall(m)
	assert.Equal(t, Flag(0), m.Flags&FlagSolid)
}

func TestAproxDistanceMatchesMaxPlusHalfMin(t *testing.T) {
	dx := fixedmath.Fixed(30 << 16)
	dy := fixedmath.Fixed(40 << 16)
	assert.Equal(t, dy.Add(dx/2), aproxDistance(dx, dy))
}
