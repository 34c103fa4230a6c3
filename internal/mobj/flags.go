// Package mobj is the state machine and physics of every in-world
// entity: players, monsters, projectiles,
// pickups, decorations. It owns XY/Z movement with sliding collision,
// the sector thinglist discipline, and line/melee/radius attack
// resolution, all driven by the think package's arena.
package mobj

// Flag is the mobj flags bitset.
type Flag uint32

const (
	FlagSpecial Flag = 1 << iota
	FlagSolid
	FlagShootable
	FlagNoSector
	FlagNoBlockmap
	FlagAmbush
	FlagJustHit
	FlagJustAttacked
	FlagSpawnCeiling
	FlagNoGravity
	FlagDropoff
	FlagPickup
	FlagNoClip
	FlagFloat
	FlagTeleport
	FlagMissile
	FlagDropped
	FlagShadow
	FlagNoBlood
	FlagCorpse
	FlagInFloat
	FlagCountKill
	FlagCountItem
	FlagSkullFly
	FlagNotDMatch
	FlagTranslation
	FlagTranslation2
)
