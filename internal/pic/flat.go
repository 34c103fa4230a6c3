package pic

// FlatSize is the side length of a flat page in pixels.
const FlatSize = 64

// FlatPic is a 64x64 palette-indexed floor/ceiling texture.
type FlatPic struct {
	Name string
	Pixels [FlatSize * FlatSize]byte
}

// At returns the pixel at (x, y), wrapping both axes like WallTexture's
// column wrap, since flats tile seamlessly across a sector's plane.
func (f *FlatPic) At(x, y int) byte {
	x &= FlatSize - 1
	y &= FlatSize - 1
	return f.Pixels[y*FlatSize+x]
}

// decodeFlat accepts a raw FLATS lump. Classic DOOM flats are always
// exactly 4096 bytes; a PWAD that ships an odd-sized page is clamped to
// 64x64 and the caller is expected to warn.
func decodeFlat(name string, b []byte) (*FlatPic, bool) {
	clamped := len(b) != FlatSize*FlatSize
	f := &FlatPic{Name: name}
	copy(f.Pixels[:], b)
	return f, clamped
}
