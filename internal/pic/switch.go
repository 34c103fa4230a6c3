package pic

// switchPairs is the subset of vanilla's SWITCHES lump this port
// carries: each entry names a texture's unpressed/pressed pair,
// grounded on room4doom's gameplay/src/env/switch.rs. The real
// SWITCHES lump lists around
// forty pairs across three episodes' texture sets; this table carries
// the handful needed to exercise the swap-and-revert mechanism.
var switchPairs = buildSwitchPairs()

func buildSwitchPairs() map[string]string {
	base := map[string]string{
		"SW1BRCOM": "SW2BRCOM",
		"SW1BRN1":  "SW2BRN1",
		"SW1BRN2":  "SW2BRN2",
		"SW1STARG": "SW2STARG",
		"SW1COMM":  "SW2COMM",
		"SW1STON1": "SW2STON1",
		"SW1STON2": "SW2STON2",
		"SW1METAL": "SW2METAL",
	}
	m := make(map[string]string, len(base)*2)
	for on, off := range base {
		m[on] = off
		m[off] = on
	}
	return m
}

// SwitchPair implements specials.SwitchTexturer: resolves a wall
// texture id's paired switch-state id, if it names a known switch
// texture.
func (p *PicData) SwitchPair(id int32) (int32, bool) {
	if id < 0 || int(id) >= len(p.walls) {
		return -1, false
	}
	pairName, ok := switchPairs[p.walls[id].Name]
	if !ok {
		return -1, false
	}
	pairID, ok := p.wallIndex[pairName]
	if !ok {
		return -1, false
	}
	return pairID, true
}
