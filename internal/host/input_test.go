package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/doomgo/doomgo/internal/fixedmath"
)

func keyState(pressed ...sdl.Scancode) []uint8 {
	keys := make([]uint8, 512)
	for _, k := range pressed {
		keys[k] = 1
	}
	return keys
}

func TestBuildTicCmdNoKeysIsZeroCmd(t *testing.T) {
	cmd := BuildTicCmd(keyState())
	assert.Equal(t, int8(0), cmd.ForwardMove)
	assert.Equal(t, int8(0), cmd.SideMove)
	assert.Equal(t, fixedmath.Angle(0), cmd.AngleTurn)
	assert.False(t, cmd.Fire)
	assert.False(t, cmd.Use)
}

func TestBuildTicCmdUpArrowMovesForward(t *testing.T) {
	cmd := BuildTicCmd(keyState(sdl.SCANCODE_UP))
	assert.Equal(t, moveSpeed, cmd.ForwardMove)
}

func TestBuildTicCmdDownArrowMovesBackward(t *testing.T) {
	cmd := BuildTicCmd(keyState(sdl.SCANCODE_DOWN))
	assert.Equal(t, -moveSpeed, cmd.ForwardMove)
}

func TestBuildTicCmdUpAndDownTogetherPrefersForward(t *testing.T) {
	cmd := BuildTicCmd(keyState(sdl.SCANCODE_UP, sdl.SCANCODE_DOWN))
	assert.Equal(t, moveSpeed, cmd.ForwardMove)
}

func TestBuildTicCmdLeftRightTurnInOppositeDirections(t *testing.T) {
	left := BuildTicCmd(keyState(sdl.SCANCODE_LEFT))
	right := BuildTicCmd(keyState(sdl.SCANCODE_RIGHT))
	assert.Equal(t, turnSpeed, left.AngleTurn)
	assert.Equal(t, fixedmath.AngleMax-turnSpeed+1, right.AngleTurn) // -turnSpeed, wrapped
}

func TestBuildTicCmdStrafeKeysSetSideMove(t *testing.T) {
	assert.Equal(t, -moveSpeed, BuildTicCmd(keyState(sdl.SCANCODE_A)).SideMove)
	assert.Equal(t, moveSpeed, BuildTicCmd(keyState(sdl.SCANCODE_D)).SideMove)
}

func TestBuildTicCmdCtrlFiresAndSpaceUses(t *testing.T) {
	cmd := BuildTicCmd(keyState(sdl.SCANCODE_LCTRL, sdl.SCANCODE_SPACE))
	assert.True(t, cmd.Fire)
	assert.True(t, cmd.Use)
}

func TestBuildTicCmdNumberKeysSelectWeaponSlot(t *testing.T) {
	assert.Equal(t, int8(1), BuildTicCmd(keyState(sdl.SCANCODE_1)).WeaponSlot)
	assert.Equal(t, int8(2), BuildTicCmd(keyState(sdl.SCANCODE_2)).WeaponSlot)
	assert.Equal(t, int8(0), BuildTicCmd(keyState()).WeaponSlot)
}
