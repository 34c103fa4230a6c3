package player

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mobj"
)

// Spawner is the narrow facade Reborn needs to place a fresh player
// mobj at a spawn point, satisfied by mobj.Mobjs without player
// importing the level package that owns it.
type Spawner interface {
	Spawn(x, y, z fixedmath.Fixed, kind mobj.Type) *mobj.MapObject
}

// Reborn implements player_reborn: resets every stat to a
// fresh game's defaults and spawns a brand new mobj at spawnX/spawnY,
// discarding the dead one entirely rather than resurrecting it in
// place (matching vanilla's G_DoReborn, which always respawns a new
// thing rather than resetting fields on the corpse).
func (p *Player) Reborn(spawner Spawner, spawnX, spawnY, spawnZ fixedmath.Fixed) {
	newMobj := spawner.Spawn(spawnX, spawnY, spawnZ, mobj.TypePlayer)

	p.Mobj = newMobj
	p.Health = 100
	p.ArmorPoints = 0
	for i := range p.Ammo {
		p.Ammo[i] = 0
	}
	p.Ammo[AmmoClip] = 50
	for i := range p.WeaponOwned {
		p.WeaponOwned[i] = false
	}
	p.WeaponOwned[WeaponFist] = true
	p.ReadyWeapon = WeaponFist
	p.ViewHeight = ViewHeightNormal
	p.DeltaViewHeight = 0
	p.Dead = false
	p.reborn = true
	p.Weapon = PSprite{}
	p.Flash = PSprite{}

	newMobj.Player = p
}
