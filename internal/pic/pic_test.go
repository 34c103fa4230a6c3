package pic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSimplePatch hand-encodes a 2x3 patch with a single post per
// column so DecodePatch can be exercised without a real WAD on disk.
func buildSimplePatch(t *testing.T) []byte {
	t.Helper()
	// header: width=2, height=3, left=0, top=0
	b := []byte{2, 0, 3, 0, 0, 0, 0, 0}
	// column offset table: 2 uint32 offsets, filled in below
	b = append(b, 0, 0, 0, 0, 0, 0, 0, 0)
	col0Off := len(b)
	b = append(b, 0 /*yoff*/, 3 /*len*/, 0 /*pad*/, 10, 11, 12, 0 /*pad*/, 0xFF)
	col1Off := len(b)
	b = append(b, 0, 3, 0, 20, 21, 22, 0, 0xFF)

	putU32(b, 8, uint32(col0Off))
	putU32(b, 12, uint32(col1Off))
	return b
}

func putU32(b []byte, off int, v uint32) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v >> 16)
	b[off+3] = byte(v >> 24)
}

func TestDecodePatchSimplePosts(t *testing.T) {
	raw := buildSimplePatch(t)
	p, err := DecodePatch(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Width)
	assert.Equal(t, 3, p.Height)
	assert.Equal(t, []byte{10, 11, 12}, p.Columns[0])
	assert.Equal(t, []byte{20, 21, 22}, p.Columns[1])
}

func TestDecodePatchRejectsTruncated(t *testing.T) {
	_, err := DecodePatch([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestWallTextureColumnWraps(t *testing.T) {
	tex := &WallTexture{Name: "TEST", Width: 2, Height: 1, Columns: [][]byte{{1}, {2}}}
	assert.Equal(t, []byte{1}, tex.Column(0))
	assert.Equal(t, []byte{2}, tex.Column(1))
	assert.Equal(t, []byte{1}, tex.Column(2))
	assert.Equal(t, []byte{2}, tex.Column(-1))
}

func TestDecodePlaypalSplitsFourteenPalettes(t *testing.T) {
	buf := make([]byte, PaletteCount*PaletteEntrySize)
	buf[0] = 1
	buf[1] = 2
	buf[2] = 3
	buf[PaletteEntrySize] = 9 // start of palette 1
	pals, err := decodePlaypal(buf)
	require.NoError(t, err)
	assert.Equal(t, RGB{1, 2, 3}, pals[0][0])
	assert.Equal(t, RGB{9, 0, 0}, pals[1][0])
}

func TestPalettePrecedenceDamageBeatsBonus(t *testing.T) {
	assert.Equal(t, 0, PalettePrecedence(0, 0, 0, false, false))
	assert.Equal(t, 10, PalettePrecedence(0, 1, 0, false, false))
	assert.Equal(t, 3, PalettePrecedence(9, 1, 0, false, false))
	assert.Equal(t, 13, PalettePrecedence(0, 0, 0, true, true))
}

func TestDecodeFlatClampsOversized(t *testing.T) {
	f, clamped := decodeFlat("FLOOR0_1", make([]byte, 8000))
	assert.True(t, clamped)
	assert.Len(t, f.Pixels, FlatSize*FlatSize)
}

func TestComposeTextureMissingPatchLeavesTransparent(t *testing.T) {
	def := textureDef{name: "WALL1", width: 4, height: 4, patches: []patchPlacement{{patchIndex: 0}}}
	var warned string
	tex := composeTexture(def, []*Patch{nil}, func(msg string) { warned = msg })
	assert.NotEmpty(t, warned)
	assert.Equal(t, byte(TransparentPixel), tex.Columns[0][0])
}
