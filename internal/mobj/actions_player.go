package mobj

// APlayerDie is the player death state's action, called once on the
// last (Tics: -1) frame of the death chain: it hands off to the player
// layer via PlayerBackref so player.Player can react (stop accepting
// movement, freeze the weapon) without mobj importing player.
func APlayerDie(m *MapObject) {
	if m.Player != nil {
		m.Player.NotifyDeath()
	}
}
