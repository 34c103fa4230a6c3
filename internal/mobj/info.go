package mobj

// Type identifies a mobj's kind, indexing the Infos table (this:
// "kind (an enum drawn from the full DOOM thing catalog)"). The full
// catalog has well over a hundred entries; this table carries the
// subset needed to exercise every mechanism the playsim specifies
// (a walking monster, a missile, a hitscan attacker, a pickup, and a
// decoration; no flying/floating monster) — widening it to the complete
// roster is mechanical once a component needs a specific monster's
// numbers and doesn't change how TryMove/SlideMove/state ticking work.
type Type int32

const (
	TypePlayer Type = iota
	TypePossessed
	TypeImp
	TypeDemon
	TypeRocket
	TypeClip
	TypeMedikit
	TypeBarrel
	TypeCount
)

// Info is the static per-type data table entry:
// speed, radius, health, pain chance, flags, and the state numbers for
// each lifecycle transition.
type Info struct {
	DoomedNum int32
	SpawnState, SeeState, PainState StateNum
	MeleeState, MissileState StateNum
	DeathState, XDeathState, RaiseState StateNum
	Speed int32 // fixed-point units/tic, or degrees/tic for some flying types
	Radius, Height int32 // fixed-point
	Mass int32
	Health int32
	Damage int32
	ActiveSound, SeeSound, AttackSound int32
	PainSound, DeathSound int32
	ReactionTime int32
	PainChance int32
	Flags Flag
}

// Infos is the process-wide static info table, populated by this
// file's init with the TypeCount-entry subset listed above.
var Infos = make([]Info, TypeCount)

func init() {
	for i := range Infos {
		Infos[i] = Info{
			SpawnState: StateNull,
			Radius: 1 << 16 * 20,
			Height: 1 << 16 * 56,
			Mass: 100,
			Flags: FlagSolid | FlagShootable,
		}
	}

	Infos[TypePlayer] = playerInfo()
	Infos[TypePossessed] = possessedInfo()
	Infos[TypeImp] = impInfo()
	Infos[TypeDemon] = demonInfo()

	Infos[TypeRocket].DoomedNum = -1
	Infos[TypeRocket].Flags = FlagMissile | FlagNoGravity | FlagDropoff
	Infos[TypeRocket].Speed = 20 << 16
	Infos[TypeRocket].Radius = 1 << 16 * 11
	Infos[TypeRocket].Height = 1 << 16 * 8
	Infos[TypeRocket].Damage = 20

	Infos[TypeClip].DoomedNum = 2007
	Infos[TypeClip].Flags = FlagSpecial
	Infos[TypeMedikit].DoomedNum = 2012
	Infos[TypeMedikit].Flags = FlagSpecial
	Infos[TypeBarrel].DoomedNum = 2035
	Infos[TypeBarrel].Flags = FlagSolid | FlagNoBlood
}

// playerInfo wires the one state every player mobj needs: an idle
// spawn frame that never advances (Tics: -1, matching vanilla's
// S_PLAY) and a death chain that calls back into the player layer via
// PlayerBackref.NotifyDeath on its last frame.
func playerInfo() Info {
	spawn := RegisterState(State{Sprite: SprPlay, Frame: 0, Tics: -1, NextState: StateNull})
	pain := registerChain([]stateSpec{{SprPlay, 6, 4, nil}}, spawn)
	death := registerChain([]stateSpec{
		{SprPlay, 7, 10, nil},
		{SprPlay, 8, 10, nil},
		{SprPlay, 9, 10, nil},
		{SprPlay, 10, -1, APlayerDie},
	}, StateNull)

	return Info{
		DoomedNum: 1,
		SpawnState: spawn,
		PainState: pain,
		DeathState: death,
		Flags: FlagSolid | FlagShootable | FlagDropoff | FlagPickup | FlagNotDMatch,
		Radius: 1 << 16 * 16,
		Height: 1 << 16 * 56,
		Mass: 100,
		Health: 100,
		ReactionTime: 0,
		PainChance: 255,
	}
}

// possessedInfo is the zombieman: the slowest, weakest hitscanner,
// wired with a chase loop and a ranged-only attack (no melee state).
func possessedInfo() Info {
	spawn := registerLoop([]stateSpec{{SprPoss, 0, 10, nil}, {SprPoss, 1, 10, nil}})
	see := registerLoop([]stateSpec{
		{SprPoss, 2, 4, AChase}, {SprPoss, 3, 4, AChase},
		{SprPoss, 4, 4, AChase}, {SprPoss, 5, 4, AChase},
	})
	pain := registerChain([]stateSpec{{SprPoss, 9, 3, APain}, {SprPoss, 9, 3, nil}}, see)
	missile := registerChain([]stateSpec{
		{SprPoss, 10, 10, AFaceTarget},
		{SprPoss, 11, 8, APosAttack},
		{SprPoss, 10, 8, nil},
	}, see)
	death := registerChain([]stateSpec{
		{SprPoss, 12, 5, nil}, {SprPoss, 13, 5, AScream},
		{SprPoss, 14, 5, AFall}, {SprPoss, 15, -1, nil},
	}, StateNull)
	xdeath := registerChain([]stateSpec{
		{SprPoss, 16, 5, nil}, {SprPoss, 17, 5, AScream},
		{SprPoss, 18, 5, AFall}, {SprPoss, 19, -1, nil},
	}, StateNull)

	return Info{
		DoomedNum: 3004,
		SpawnState: spawn, SeeState: see, PainState: pain,
		MissileState: missile, DeathState: death, XDeathState: xdeath,
		Speed: 8 << 16,
		Radius: 1 << 16 * 20,
		Height: 1 << 16 * 56,
		Mass: 100,
		Health: 20,
		ReactionTime: 8,
		PainChance: 200,
		Flags: FlagSolid | FlagShootable | FlagCountKill,
	}
}

// impInfo is the imp: faster than a zombieman, melee-only in this
// port since spawning its ranged fireball projectile is a separate
// missile-thing feature this table doesn't model yet.
func impInfo() Info {
	spawn := registerLoop([]stateSpec{{SprTroo, 0, 10, nil}, {SprTroo, 1, 10, nil}})
	see := registerLoop([]stateSpec{
		{SprTroo, 2, 3, AChase}, {SprTroo, 3, 3, AChase},
		{SprTroo, 4, 3, AChase}, {SprTroo, 5, 3, AChase},
	})
	pain := registerChain([]stateSpec{{SprTroo, 9, 2, APain}}, see)
	melee := registerChain([]stateSpec{
		{SprTroo, 10, 8, AFaceTarget},
		{SprTroo, 11, 8, ATroopAttack},
		{SprTroo, 10, 6, nil},
	}, see)
	death := registerChain([]stateSpec{
		{SprTroo, 12, 8, nil}, {SprTroo, 13, 8, AScream},
		{SprTroo, 14, 6, nil}, {SprTroo, 15, 6, AFall}, {SprTroo, 16, -1, nil},
	}, StateNull)
	xdeath := registerChain([]stateSpec{
		{SprTroo, 17, 5, nil}, {SprTroo, 18, 5, AScream},
		{SprTroo, 19, 5, nil}, {SprTroo, 20, 5, AFall}, {SprTroo, 21, -1, nil},
	}, StateNull)

	return Info{
		DoomedNum: 3001,
		SpawnState: spawn, SeeState: see, PainState: pain,
		MeleeState: melee, DeathState: death, XDeathState: xdeath,
		Speed: 13 << 16,
		Radius: 1 << 16 * 20,
		Height: 1 << 16 * 56,
		Mass: 100,
		Health: 60,
		Damage: 3,
		ReactionTime: 8,
		PainChance: 200,
		Flags: FlagSolid | FlagShootable | FlagCountKill,
	}
}

// demonInfo is the pinky/demon: melee-only, fast, high health.
func demonInfo() Info {
	spawn := registerLoop([]stateSpec{{SprSarg, 0, 10, nil}, {SprSarg, 1, 10, nil}})
	see := registerLoop([]stateSpec{
		{SprSarg, 2, 2, AChase}, {SprSarg, 3, 2, AChase},
		{SprSarg, 4, 2, AChase}, {SprSarg, 5, 2, AChase},
	})
	pain := registerChain([]stateSpec{{SprSarg, 8, 2, APain}}, see)
	melee := registerChain([]stateSpec{
		{SprSarg, 9, 8, AFaceTarget},
		{SprSarg, 10, 8, ASargAttack},
		{SprSarg, 9, 8, nil},
	}, see)
	death := registerChain([]stateSpec{
		{SprSarg, 11, 8, nil}, {SprSarg, 12, 8, AScream},
		{SprSarg, 13, 4, nil}, {SprSarg, 14, 4, nil},
		{SprSarg, 15, 4, AFall}, {SprSarg, 16, -1, nil},
	}, StateNull)

	return Info{
		DoomedNum: 3002,
		SpawnState: spawn, SeeState: see, PainState: pain,
		MeleeState: melee, DeathState: death,
		Speed: 10 << 16,
		Radius: 1 << 16 * 30,
		Height: 1 << 16 * 56,
		Mass: 400,
		Health: 150,
		Damage: 4,
		ReactionTime: 8,
		PainChance: 180,
		Flags: FlagSolid | FlagShootable | FlagCountKill,
	}
}
