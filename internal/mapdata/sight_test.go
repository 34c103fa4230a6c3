package mapdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/wad"
)

// buildTwoRoomMap returns two 256x256 square sectors sharing one
// two-sided wall at x=256, enough to exercise CheckSight's geometric
// walk without a real IWAD or a BSP split (tests pass sector IDs
// directly rather than going through PointInSubsector).
func buildTwoRoomMap(t *testing.T, room1Ceiling int32) *MapData {
	t.Helper()
	fx := func(v int32) fixedmath.Fixed { return fixedmath.NewFixed(v) }
	v := func(x, y int32) wad.Vertex { return wad.Vertex{X: fx(x), Y: fx(y)} }

	lumps := &wad.MapLumps{
		Vertexes: []wad.Vertex{
			v(0, 0), v(256, 0), v(256, 256), v(0, 256), v(512, 0), v(512, 256),
		},
		Sidedefs: []wad.SideDef{
			{MidName: "WALL", Sector: 0}, // 0: room0 bottom
			{MidName: "-", Sector: 0},    // 1: shared, room0 side
			{MidName: "WALL", Sector: 0}, // 2: room0 top
			{MidName: "WALL", Sector: 0}, // 3: room0 left
			{MidName: "-", Sector: 1},    // 4: shared, room1 side
			{MidName: "WALL", Sector: 1}, // 5: room1 bottom
			{MidName: "WALL", Sector: 1}, // 6: room1 right
			{MidName: "WALL", Sector: 1}, // 7: room1 top
		},
		Linedefs: []wad.LineDef{
			{V1: 0, V2: 1, FrontSide: 0, BackSide: wad.NoSidedef},
			{V1: 1, V2: 2, FrontSide: 1, BackSide: 4, Flags: uint16(LineTwoSided)},
			{V1: 2, V2: 3, FrontSide: 2, BackSide: wad.NoSidedef},
			{V1: 3, V2: 0, FrontSide: 3, BackSide: wad.NoSidedef},
			{V1: 1, V2: 4, FrontSide: 5, BackSide: wad.NoSidedef},
			{V1: 4, V2: 5, FrontSide: 6, BackSide: wad.NoSidedef},
			{V1: 5, V2: 2, FrontSide: 7, BackSide: wad.NoSidedef},
		},
		Segs: []wad.Seg{
			{V1: 0, V2: 1, LineDef: 0}, {V1: 1, V2: 2, LineDef: 1},
			{V1: 2, V2: 3, LineDef: 2}, {V1: 3, V2: 0, LineDef: 3},
			{V1: 1, V2: 4, LineDef: 4}, {V1: 4, V2: 5, LineDef: 5},
			{V1: 5, V2: 2, LineDef: 6},
		},
		Ssectors: []wad.SSector{{NumSegs: 7, FirstSeg: 0}},
		Sectors: []wad.Sector{
			{FloorHeight: fixedmath.NewFixed(0), CeilingHeight: fixedmath.NewFixed(128), FloorFlatName: "F", CeilFlatName: "C", LightLevel: 200},
			{FloorHeight: fixedmath.NewFixed(0), CeilingHeight: fixedmath.NewFixed(room1Ceiling), FloorFlatName: "F", CeilFlatName: "C", LightLevel: 200},
		},
	}

	md := New(nil)
	require.NoError(t, md.Load(lumps, identityResolver, identityResolver))
	return md
}

func TestCheckSightThroughOpenDoorwaySucceeds(t *testing.T) {
	md := buildTwoRoomMap(t, 128)
	from := Vec2{X: fixedmath.NewFixed(100), Y: fixedmath.NewFixed(128)}
	to := Vec2{X: fixedmath.NewFixed(400), Y: fixedmath.NewFixed(128)}
	eye := fixedmath.NewFixed(48)
	assert.True(t, md.CheckSight(from, to, 0, 1, eye, eye))
}

func TestCheckSightBlockedByLowCeilingOpening(t *testing.T) {
	// room1's ceiling sits below room0's eye height, so the shared
	// wall's open gap (floor..min(ceilings)) no longer contains the
	// sight ray's interpolated height.
	md := buildTwoRoomMap(t, 32)
	from := Vec2{X: fixedmath.NewFixed(100), Y: fixedmath.NewFixed(128)}
	to := Vec2{X: fixedmath.NewFixed(400), Y: fixedmath.NewFixed(128)}
	eye := fixedmath.NewFixed(48)
	assert.False(t, md.CheckSight(from, to, 0, 1, eye, eye))
}

func TestCheckSightWithinSameSectorIsTrivial(t *testing.T) {
	md := buildTwoRoomMap(t, 128)
	from := Vec2{X: fixedmath.NewFixed(32), Y: fixedmath.NewFixed(32)}
	to := Vec2{X: fixedmath.NewFixed(200), Y: fixedmath.NewFixed(200)}
	eye := fixedmath.NewFixed(48)
	assert.True(t, md.CheckSight(from, to, 0, 0, eye, eye))
}

func TestRejectBlocksSectorPairMarkedInvisible(t *testing.T) {
	md := buildTwoRoomMap(t, 128)
	// REJECT is a numsectors x numsectors bit matrix; mark (0,1) opaque.
	md.Reject = make([]byte, 1)
	pnum := int32(0)*2 + 1
	md.Reject[pnum>>3] |= 1 << uint(pnum&7)

	from := Vec2{X: fixedmath.NewFixed(100), Y: fixedmath.NewFixed(128)}
	to := Vec2{X: fixedmath.NewFixed(400), Y: fixedmath.NewFixed(128)}
	eye := fixedmath.NewFixed(48)
	assert.False(t, md.CheckSight(from, to, 0, 1, eye, eye))
}
