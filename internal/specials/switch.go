package specials

import (
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/think"
)

// switchPressedTics is vanilla's BUTTONTIME: how long a repeatable
// switch's "pressed" texture stays up before reverting, grounded on
// room4doom's gameplay/src/env/switch.rs.
const switchPressedTics int32 = 35

// SwitchTexturer resolves a wall texture id's paired switch-state id,
// satisfied by pic.PicData without specials importing pic directly.
type SwitchTexturer interface {
	SwitchPair(textureID int32) (pressedID int32, ok bool)
}

// SetSwitchTexturer wires the texture lookup once PicData exists.
func (d *Dispatcher) SetSwitchTexturer(t SwitchTexturer) { d.textures = t }

type switchRevert struct {
	side     mapdata.SideID
	original int32
	ticsLeft int32
	handle   think.Handle
}

// trySwitchTexture swaps the activated sidedef's mid texture to its
// paired graphic if the texture facing the activator is a known switch.
// Switching is a cosmetic side effect of successfully activating a
// use/cross special, independent of what the special itself does.
// Repeatable lines schedule an automatic revert after switchPressedTics;
// once-only lines stay swapped for the rest of the level, matching
// vanilla's P_ChangeSwitchTexture(useAgain) split.
func (d *Dispatcher) trySwitchTexture(line *mapdata.LineDef, side int, useAgain bool) {
	if d.textures == nil {
		return
	}
	sideID := d.facingSideID(line, side)
	if sideID == mapdata.NoSide {
		return
	}
	sd := d.md.Side(sideID)
	pressed, ok := d.textures.SwitchPair(sd.MidTexture)
	if !ok {
		return
	}
	original := sd.MidTexture
	sd.MidTexture = pressed

	if !useAgain {
		return
	}

	rv := &switchRevert{side: sideID, original: original, ticsLeft: switchPressedTics}
	h := d.arena.Push(think.KindSwitchRevert, func(h think.Handle) bool {
		return d.tickSwitchRevert(h)
	})
	rv.handle = h
	d.switches.Set(h, rv)
}

func (d *Dispatcher) tickSwitchRevert(h think.Handle) bool {
	rv := d.switches.Get(h)
	if rv == nil {
		return false
	}
	rv.ticsLeft--
	if rv.ticsLeft > 0 {
		return true
	}
	d.md.Side(rv.side).MidTexture = rv.original
	d.switches.Delete(h)
	return false
}

func (d *Dispatcher) facingSideID(line *mapdata.LineDef, side int) mapdata.SideID {
	if side == 0 {
		return line.FrontSide
	}
	if !line.TwoSided() {
		return mapdata.NoSide
	}
	return line.BackSide
}
