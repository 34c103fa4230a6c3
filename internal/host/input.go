package host

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/player"
)

// moveSpeed/turnSpeed are vanilla's walk-forward and keyboard-turn
// rates expressed in TicCmd units.
const (
	moveSpeed int8 = 50
	turnSpeed fixedmath.Angle = fixedmath.Angle45 / 8
)

// BuildTicCmd turns one frame's scancode array into a TicCmd, the same
// held-key-state polling style a controller-bitmask reader uses,
// remapped to DOOM's move/turn/use/fire axes
// (arrows to walk/turn, Ctrl to fire, Space to use, matching the
// original engine's default keyboard bindings).
func BuildTicCmd(keys []uint8) player.TicCmd {
	var cmd player.TicCmd

	if keys[sdl.SCANCODE_UP] != 0 {
		cmd.ForwardMove = moveSpeed
	} else if keys[sdl.SCANCODE_DOWN] != 0 {
		cmd.ForwardMove = -moveSpeed
	}

	if keys[sdl.SCANCODE_LEFT] != 0 {
		cmd.AngleTurn += turnSpeed
	}
	if keys[sdl.SCANCODE_RIGHT] != 0 {
		cmd.AngleTurn -= turnSpeed
	}

	if keys[sdl.SCANCODE_A] != 0 {
		cmd.SideMove = -moveSpeed
	} else if keys[sdl.SCANCODE_D] != 0 {
		cmd.SideMove = moveSpeed
	}

	if keys[sdl.SCANCODE_LCTRL] != 0 || keys[sdl.SCANCODE_RCTRL] != 0 {
		cmd.Fire = true
	}
	if keys[sdl.SCANCODE_SPACE] != 0 {
		cmd.Use = true
	}

	switch {
	case keys[sdl.SCANCODE_1] != 0:
		cmd.WeaponSlot = 1
	case keys[sdl.SCANCODE_2] != 0:
		cmd.WeaponSlot = 2
	}

	return cmd
}
