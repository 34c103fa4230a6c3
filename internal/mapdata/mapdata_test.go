package mapdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/wad"
)

// buildSquareRoom returns the raw wad lumps for a single 256x256 square
// sector (four linedefs, one-sided, one subsector covering the whole
// thing, no BSP split needed) — enough to exercise Load, PointOnSide,
// and PointInSubsector without a real IWAD on disk.
func buildSquareRoom() *wad.MapLumps {
	v := func(x, y int32) wad.Vertex {
		return wad.Vertex{X: fixedmath.NewFixed(x), Y: fixedmath.NewFixed(y)}
	}
	vertexes := []wad.Vertex{
		v(0, 0), v(256, 0), v(256, 256), v(0, 256),
	}
	sides := []wad.SideDef{
		{MidName: "WALL1", Sector: 0},
		{MidName: "WALL1", Sector: 0},
		{MidName: "WALL1", Sector: 0},
		{MidName: "WALL1", Sector: 0},
	}
	lines := []wad.LineDef{
		{V1: 0, V2: 1, FrontSide: 0, BackSide: wad.NoSidedef},
		{V1: 1, V2: 2, FrontSide: 1, BackSide: wad.NoSidedef},
		{V1: 2, V2: 3, FrontSide: 2, BackSide: wad.NoSidedef},
		{V1: 3, V2: 0, FrontSide: 3, BackSide: wad.NoSidedef},
	}
	segs := []wad.Seg{
		{V1: 0, V2: 1, LineDef: 0, Direction: 0},
		{V1: 1, V2: 2, LineDef: 1, Direction: 0},
		{V1: 2, V2: 3, LineDef: 2, Direction: 0},
		{V1: 3, V2: 0, LineDef: 3, Direction: 0},
	}
	return &wad.MapLumps{
		Vertexes: vertexes,
		Sidedefs: sides,
		Linedefs: lines,
		Segs: segs,
		Ssectors: []wad.SSector{{NumSegs: 4, FirstSeg: 0}},
		Nodes: nil, // single subsector, no BSP split
		Sectors: []wad.Sector{
			{FloorHeight: fixedmath.NewFixed(0), CeilingHeight: fixedmath.NewFixed(128),
				FloorFlatName: "FLOOR1", CeilFlatName: "CEIL1", LightLevel: 192},
		},
		Things: nil,
		Reject: nil,
		Blockmap: nil,
	}
}

func identityResolver(name string) int32 {
	if name == "" || name == "-" {
		return -1
	}
	return int32(len(name))
}

func loadSquareRoom(t *testing.T) *MapData {
	t.Helper()
	md := New(nil)
	err := md.Load(buildSquareRoom(), identityResolver, identityResolver)
	require.NoError(t, err)
	return md
}

func TestLoadPopulatesAllArrays(t *testing.T) {
	md := loadSquareRoom(t)
	assert.Len(t, md.Vertexes, 4)
	assert.Len(t, md.Sectors, 1)
	assert.Len(t, md.Sides, 4)
	assert.Len(t, md.Lines, 4)
	assert.Len(t, md.Segs, 4)
	assert.Len(t, md.SubSectors, 1)
}

func TestSectorLinesIsDuplicateFree(t *testing.T) {
	md := loadSquareRoom(t)
	sec := md.Sector(0)
	assert.Len(t, sec.Lines, 4)
	seen := map[LineID]bool{}
	for _, l := range sec.Lines {
		assert.False(t, seen[l], "duplicate line %d in sector.Lines", l)
		seen[l] = true
	}
}

func TestTwoSidedRequiresBackSidedef(t *testing.T) {
	lumps := buildSquareRoom()
	lumps.Linedefs[0].Flags |= uint16(LineTwoSided)
	// BackSide stays NoSidedef: must fail.
	md := New(nil)
	err := md.Load(lumps, identityResolver, identityResolver)
	assert.Error(t, err)
}

func TestBackSidedefWithoutTwoSidedFlagLoadsWithWarning(t *testing.T) {
	lumps := buildSquareRoom()
	lumps.Linedefs[0].BackSide = 1
	md := New(nil)
	err := md.Load(lumps, identityResolver, identityResolver)
	require.NoError(t, err)
	assert.Equal(t, SideID(1), md.Line(0).BackSide)
}

// TestPointOnSideInvolution checks side classification against a
// horizontal partition: points 10 units above and below it land on
// opposite sides, and classifying the same point again gives the same
// side.
func TestPointOnSideInvolution(t *testing.T) {
	n := Node{
		X: fixedmath.NewFixed(0), Y: fixedmath.NewFixed(0),
		DX: fixedmath.NewFixed(256), DY: fixedmath.NewFixed(0),
	}
	above := Vec2{X: fixedmath.NewFixed(10), Y: fixedmath.NewFixed(10)}
	below := Vec2{X: fixedmath.NewFixed(10), Y: fixedmath.NewFixed(-10)}
	s1 := n.PointOnSide(above)
	s2 := n.PointOnSide(below)
	assert.NotEqual(t, s1, s2)

	again := n.PointOnSide(above)
	assert.Equal(t, s1, again)
}

func TestPointInSubsectorNoSplit(t *testing.T) {
	md := loadSquareRoom(t)
	id := md.PointInSubsector(Vec2{X: fixedmath.NewFixed(128), Y: fixedmath.NewFixed(128)})
	assert.Equal(t, SubsectorID(0), id)
}

func TestTraverseBSPVisitsEverySubsector(t *testing.T) {
	md := loadSquareRoom(t)
	var visited []SubsectorID
	md.TraverseBSP(Vec2{X: fixedmath.NewFixed(128), Y: fixedmath.NewFixed(128)}, nil, func(id SubsectorID) bool {
		visited = append(visited, id)
		return true
	})
	assert.Equal(t, []SubsectorID{0}, visited)
}

func TestSegReferencesMatchLinedefSides(t *testing.T) {
	md := loadSquareRoom(t)
	for i := range md.Segs {
		seg := md.Seg(SegID(i))
		line := md.Line(seg.Line)
		assert.True(t, seg.Side == line.FrontSide || seg.Side == line.BackSide)
	}
}

func TestOutOfRangeVertexRejected(t *testing.T) {
	lumps := buildSquareRoom()
	lumps.Linedefs[0].V2 = 99
	md := New(nil)
	err := md.Load(lumps, identityResolver, identityResolver)
	assert.Error(t, err)
}

func TestOutOfRangeSectorRejected(t *testing.T) {
	lumps := buildSquareRoom()
	lumps.Sidedefs[0].Sector = 99
	md := New(nil)
	err := md.Load(lumps, identityResolver, identityResolver)
	assert.Error(t, err)
}
