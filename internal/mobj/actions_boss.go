package mobj

// Boss and end-of-episode actions this port does not implement (see
// DESIGN.md): vanilla's cube-spawning Romero head, Arch-Vile
// resurrection chase, and Icon of Sin brain actions each depend on
// precise frame-by-frame timing and level-wide side effects (spawn-spot
// iteration order, finale triggers) left unspecified rather than
// guessed at. These are kept as named, registered action
// functions so a state table entry naming them still resolves and
// ticks cleanly; each logs once and no-ops instead of acting.
//
// Widening any one of these from a stub to a real implementation is a
// self-contained follow-up: the state table already carries the right
// arity (ActionMobj) and call site (SetState/TickState), only the
// function body needs vanilla's exact behavior filled in.

func warnUnimplementedBossAction(m *MapObject, name string) {
	if m.level != nil {
		m.level.Warnf("unimplemented boss action: %s", name)
	}
}

// ASpawnFly is vanilla's A_SpawnFly: ticks the Romero head's cube
// spawn-shooter timer and, on expiry, launches a spawn cube at the next
// BossSpot in sequence.
func ASpawnFly(m *MapObject) { warnUnimplementedBossAction(m, "A_SpawnFly") }

// AVileChase is vanilla's A_VileChase: the Arch-Vile's resurrect-or-chase
// decision, scanning nearby corpses for one it can raise before falling
// back to normal chase behavior.
func AVileChase(m *MapObject) { warnUnimplementedBossAction(m, "A_VileChase") }

// AVileTarget/AVileAttack are vanilla's Arch-Vile fire-trail attack pair.
func AVileTarget(m *MapObject) { warnUnimplementedBossAction(m, "A_VileTarget") }
func AVileAttack(m *MapObject) { warnUnimplementedBossAction(m, "A_VileAttack") }

// ABrainAwake/ABrainSpit/ABrainDie are the Icon of Sin's finale-trigger
// actions: waking the level's boss brain, spitting a cube at the next
// spawn shooter in rotation, and the scripted level-exit death sequence.
func ABrainAwake(m *MapObject) { warnUnimplementedBossAction(m, "A_BrainAwake") }
func ABrainSpit(m *MapObject)  { warnUnimplementedBossAction(m, "A_BrainSpit") }
func ABrainDie(m *MapObject)   { warnUnimplementedBossAction(m, "A_BrainDie") }

// ABossDeath is vanilla's A_BossDeath: checks whether every monster of
// the triggering boss type on the level is dead and, if so, fires the
// level's tagged door/floor finale special.
func ABossDeath(m *MapObject) { warnUnimplementedBossAction(m, "A_BossDeath") }

// AKeenDie is Keen's death hook in the Doom II commercial IWAD: opens a
// tagged door once every Keen on the level is dead.
func AKeenDie(m *MapObject) { warnUnimplementedBossAction(m, "A_KeenDie") }
