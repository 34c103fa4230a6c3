package mobj

// Sprite identifiers for the thing types the Infos table covers,
// numbered in classic DOOM's spritenum_t order for this subset
// (PLAY, POSS, TROO, SARG). These are placeholders for the state
// table only: mobj doesn't import pic, and nothing in this module
// resolves a name ("PLAY", "POSS", ...) against PicData's sprite-lump
// order or overwrites the matching States[...].Sprite entries.
const (
	SprPlay int32 = iota
	SprPoss
	SprTroo
	SprSarg
)
