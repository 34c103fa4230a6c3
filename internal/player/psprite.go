package player

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mobj"
)

// PSpriteLayer distinguishes the weapon sprite from its muzzle flash,
// the two independently-animated overlay layers room4doom's
// player_sprite.rs models.
type PSpriteLayer int

const (
	PSpriteWeapon PSpriteLayer = iota
	PSpriteFlash
)

// PSprite is one overlay sprite's animation state: which state it is
// currently in and the screen-space bob offset applied when drawing.
type PSprite struct {
	State mobj.StateNum
	Tics int32
	SX, SY int32 // weapon-bob offset in renderer screen units
}

// tickPSprites counts down both the weapon and flash psprites' tics,
// applies a weapon-slot change request, and fires the ready weapon on a
// fire request while the weapon psprite is in StateNull. No weapon or
// flash state is entered here or in fireWeapon, so the weapon psprite
// stays in StateNull.
func (p *Player) tickPSprites(cmd TicCmd) {
	tickOnePSprite(&p.Weapon)
	tickOnePSprite(&p.Flash)

	if cmd.WeaponSlot != 0 {
		p.trySwitchWeapon(Weapon(cmd.WeaponSlot - 1))
	}

	if cmd.Fire && p.Weapon.State == mobj.StateNull {
		p.fireWeapon()
	}
}

func tickOnePSprite(ps *PSprite) {
	if ps.Tics == -1 {
		return
	}
	if ps.Tics > 0 {
		ps.Tics--
	}
}

func (p *Player) trySwitchWeapon(w Weapon) {
	if w < 0 || w >= NumWeapons || !p.WeaponOwned[w] {
		return
	}
	p.ReadyWeapon = w
}

const (
	pistolRange fixedmath.Fixed = 2048 << 16
	meleeRange fixedmath.Fixed = 64 << 16
	meleeDamage int32 = 10
	pistolDamage int32 = 10
)

// fireWeapon spends ammo and resolves the ready weapon's hitscan
// immediately (vanilla defers this to the fire state's
// A_FirePistol/A_Punch action tic). It sets no weapon or flash psprite
// state, so no fire animation or muzzle flash plays.
func (p *Player) fireWeapon() {
	switch p.ReadyWeapon {
	case WeaponPistol:
		if p.Ammo[AmmoClip] <= 0 {
			return
		}
		p.Ammo[AmmoClip]--
		result := p.Mobj.LineAttack(p.Mobj.Angle, pistolRange, 0)
		applyHitscanDamage(result, pistolDamage)
	case WeaponFist:
		result := p.Mobj.LineAttack(p.Mobj.Angle, meleeRange, 0)
		applyHitscanDamage(result, meleeDamage)
	}
}

func applyHitscanDamage(result mobj.AttackResult, damage int32) {
	if !result.HitMobj || result.Mobj == nil {
		return
	}
	result.Mobj.Health -= damage
	if result.Mobj.Health <= 0 {
		result.Mobj.Health = 0
		result.Mobj.SetState(result.Mobj.Info.DeathState)
	}
}
