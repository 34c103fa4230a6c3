package specials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/mobj"
	"github.com/doomgo/doomgo/internal/rng"
	"github.com/doomgo/doomgo/internal/wad"
)

type cardHolder struct{ cards map[mobj.KeyCard]bool }

func (cardHolder) NotifyDeath() {}
func (c cardHolder) HasCard(card mobj.KeyCard) bool { return c.cards[card] }

type stubThings struct{}

func (stubThings) ForEachInSector(mapdata.SectorID, func(mapdata.MobjHandle) bool) {}
func (stubThings) ThingHeight(mapdata.MobjHandle) (fixedmath.Fixed, fixedmath.Fixed, bool) {
	return 0, 0, false
}
func (stubThings) DamageThing(mapdata.MobjHandle, int32) {}

type stubSwitchTexturer struct{ pairs map[int32]int32 }

func (s stubSwitchTexturer) SwitchPair(id int32) (int32, bool) {
	p, ok := s.pairs[id]
	return p, ok
}

// buildTwoSectorMap returns two square sectors sharing one two-sided
// wall: sector 0 (the trigger room, floor 0/ceiling 128) to the west,
// sector 1 (floor 0/ceiling 192, used as the "adjacent" sector for
// lowest-ceiling/door-opening math) to the east.
func buildTwoSectorMap(t *testing.T) *mapdata.MapData {
	t.Helper()
	fx := func(v int32) fixedmath.Fixed { return fixedmath.NewFixed(v) }
	lumps := &wad.MapLumps{
		Vertexes: []wad.Vertex{
			{X: fx(0), Y: fx(0)}, {X: fx(100), Y: fx(0)},
			{X: fx(100), Y: fx(100)}, {X: fx(0), Y: fx(100)},
			{X: fx(200), Y: fx(0)}, {X: fx(200), Y: fx(100)},
		},
		Sidedefs: []wad.SideDef{
			{MidName: "W", Sector: 0}, // line0: 0->1 outer
			{MidName: "W", Sector: 0}, // line2: 2->3 outer
			{MidName: "W", Sector: 0}, // line3: 3->0 outer
			{MidName: "-", Sector: 0}, // line1 front: 1->2 shared
			{MidName: "-", Sector: 1}, // line1 back
			{MidName: "W", Sector: 1}, // line4: 1->4 outer
			{MidName: "W", Sector: 1}, // line5: 4->5 outer
			{MidName: "W", Sector: 1}, // line6: 5->2 outer
		},
		Linedefs: []wad.LineDef{
			{V1: 0, V2: 1, FrontSide: 0, BackSide: wad.NoSidedef},
			{V1: 1, V2: 2, FrontSide: 3, BackSide: 4},
			{V1: 2, V2: 3, FrontSide: 1, BackSide: wad.NoSidedef},
			{V1: 3, V2: 0, FrontSide: 2, BackSide: wad.NoSidedef},
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
		Ssectors: []wad.SSector{{NumSegs: 4, FirstSeg: 0}, {NumSegs: 3, FirstSeg: 4}},
		Sectors: []wad.Sector{
			{FloorHeight: fx(0), CeilingHeight: fx(128), FloorFlatName: "FLOOR0", CeilFlatName: "C", LightLevel: 100, Tag: 1},
			{FloorHeight: fx(0), CeilingHeight: fx(192), FloorFlatName: "FLOOR1", CeilFlatName: "C", LightLevel: 150},
		},
	}
	md := mapdata.New(nil)
	require.NoError(t, md.Load(lumps, func(string) int32 { return 1 }, func(s string) int32 {
		switch s {
		case "FLOOR0":
			return 10
		case "FLOOR1":
			return 20
		}
		return 1
	}))
	return md
}

func newTestDispatcher(t *testing.T) *Dispatcher {
	md := buildTwoSectorMap(t)
	var tick int32
	return New(md, rng.New(), stubThings{}, nil, &tick)
}

func TestMovePlaneRaisesFloorTowardDest(t *testing.T) {
	d := newTestDispatcher(t)
	dest := fixedmath.NewFixed(50)
	res := d.movePlane(0, fixedmath.NewFixed(4), dest, false, false, 1)
	assert.Equal(t, MoveOK, res)
	assert.Equal(t, fixedmath.NewFixed(4), d.md.Sector(0).FloorHeight)
}

func TestMovePlaneStopsAtDest(t *testing.T) {
	d := newTestDispatcher(t)
	dest := fixedmath.NewFixed(2)
	res := d.movePlane(0, fixedmath.NewFixed(4), dest, false, false, 1)
	assert.Equal(t, MovePastDest, res)
	assert.Equal(t, dest, d.md.Sector(0).FloorHeight)
}

func TestSpawnDoorOpensTowardLowestAdjacentCeiling(t *testing.T) {
	d := newTestDispatcher(t)
	door := d.SpawnDoor(0, DoorNormal)
	assert.Equal(t, fixedmath.NewFixed(192-4), door.topHeight)
	assert.Equal(t, mapdata.ThinkerHandle(door.handle), d.md.Sector(0).SpecialData)
}

func TestDoorReachesTopThenWaitsThenCloses(t *testing.T) {
	d := newTestDispatcher(t)
	door := d.SpawnDoor(0, DoorNormal)
	for i := 0; i < 100 && door.state == doorUp; i++ {
		d.tickDoor(door.handle)
	}
	assert.Equal(t, doorWaiting, door.state)

	door.waitLeft = 1
	d.tickDoor(door.handle)
	assert.Equal(t, doorDown, door.state)

	for i := 0; i < 100; i++ {
		if d.doors.Get(door.handle) == nil {
			break
		}
		d.tickDoor(door.handle)
	}
	assert.Nil(t, d.doors.Get(door.handle))
	assert.Equal(t, mapdata.ThinkerNone, d.md.Sector(0).SpecialData)
}

func TestUsePlatformRefusesWhenSectorBusy(t *testing.T) {
	d := newTestDispatcher(t)
	ok1 := d.UsePlatform(0, PlatDownWaitUpStay)
	require.True(t, ok1)
	ok2 := d.UsePlatform(0, PlatDownWaitUpStay)
	assert.False(t, ok2)
}

func TestBuildStairsSkipsSectorsWithDifferentFloorFlat(t *testing.T) {
	d := newTestDispatcher(t)
	d.BuildStairs(0, true)
	assert.NotEqual(t, mapdata.ThinkerNone, d.md.Sector(0).SpecialData)
	assert.Equal(t, mapdata.ThinkerNone, d.md.Sector(1).SpecialData)
}

func TestBuildDonutNoOpWithoutModelSector(t *testing.T) {
	d := newTestDispatcher(t)
	// This fixture has only two sectors, so BuildDonut can never find a
	// model sector beyond the ring; it must return cleanly rather than
	// panic or spawn a mover with no destination.
	d.BuildDonut(1)
	assert.Equal(t, mapdata.ThinkerNone, d.md.Sector(0).SpecialData)
	assert.Equal(t, mapdata.ThinkerNone, d.md.Sector(1).SpecialData)
}

func TestCrossSpecialLineOpensTaggedDoor(t *testing.T) {
	d := newTestDispatcher(t)
	line := d.md.Line(1)
	line.Special = specDoorWalkOnce
	line.Tag = 1
	d.CrossSpecialLine(0, 1, nil)
	assert.NotEqual(t, mapdata.ThinkerNone, d.md.Sector(0).SpecialData)
}

func TestCrossSpecialLineIgnoresBackSide(t *testing.T) {
	d := newTestDispatcher(t)
	line := d.md.Line(1)
	line.Special = specDoorWalkOnce
	line.Tag = 1
	d.CrossSpecialLine(1, 1, nil)
	assert.Equal(t, mapdata.ThinkerNone, d.md.Sector(0).SpecialData)
}

func TestUseSpecialLineOpensManualDoor(t *testing.T) {
	d := newTestDispatcher(t)
	line := d.md.Line(1)
	line.Special = specDoorManualOnce
	activated := d.UseSpecialLine(0, 1, nil)
	assert.True(t, activated)
	assert.NotEqual(t, mapdata.ThinkerNone, d.md.Sector(1).SpecialData)
}

func TestUseSpecialLineSwapsSwitchTextureOnManualDoor(t *testing.T) {
	d := newTestDispatcher(t)
	d.SetSwitchTexturer(stubSwitchTexturer{pairs: map[int32]int32{1: 2}})
	line := d.md.Line(1)
	line.Special = specDoorManualRepeat
	activated := d.UseSpecialLine(0, 1, nil)
	require.True(t, activated)
	assert.Equal(t, int32(2), d.md.Side(line.FrontSide).MidTexture)
}

func TestSwitchRevertRestoresOriginalTextureAfterDelay(t *testing.T) {
	d := newTestDispatcher(t)
	d.SetSwitchTexturer(stubSwitchTexturer{pairs: map[int32]int32{1: 2}})
	line := d.md.Line(1)
	line.Special = specDoorManualRepeat
	d.UseSpecialLine(0, 1, nil)
	for i := int32(0); i < switchPressedTics+1; i++ {
		d.RunPass()
	}
	assert.Equal(t, int32(1), d.md.Side(line.FrontSide).MidTexture)
}

func TestUseSpecialLineOnceSwitchNeverReverts(t *testing.T) {
	d := newTestDispatcher(t)
	d.SetSwitchTexturer(stubSwitchTexturer{pairs: map[int32]int32{1: 2}})
	line := d.md.Line(1)
	line.Special = specDoorManualOnce
	d.UseSpecialLine(0, 1, nil)
	for i := 0; i < 200; i++ {
		d.RunPass()
	}
	assert.Equal(t, int32(2), d.md.Side(line.FrontSide).MidTexture)
}

func TestUseSpecialLineRefusesLockedDoorWithoutKey(t *testing.T) {
	d := newTestDispatcher(t)
	line := d.md.Line(1)
	line.Special = specDoorBlueManual
	activated := d.UseSpecialLine(0, 1, nil)
	assert.False(t, activated)
	assert.Equal(t, mapdata.ThinkerNone, d.md.Sector(1).SpecialData)
}

func TestUseSpecialLineOpensLockedDoorWithMatchingKey(t *testing.T) {
	d := newTestDispatcher(t)
	line := d.md.Line(1)
	line.Special = specDoorBlueManual
	actor := &mobj.MapObject{Player: cardHolder{cards: map[mobj.KeyCard]bool{mobj.KeyBlue: true}}}
	activated := d.UseSpecialLine(0, 1, actor)
	assert.True(t, activated)
	assert.NotEqual(t, mapdata.ThinkerNone, d.md.Sector(1).SpecialData)
}

func TestUseSpecialLineRefusesLockedDoorWithWrongKey(t *testing.T) {
	d := newTestDispatcher(t)
	line := d.md.Line(1)
	line.Special = specDoorYellowManual
	actor := &mobj.MapObject{Player: cardHolder{cards: map[mobj.KeyCard]bool{mobj.KeyBlue: true}}}
	activated := d.UseSpecialLine(0, 1, actor)
	assert.False(t, activated)
	assert.Equal(t, mapdata.ThinkerNone, d.md.Sector(1).SpecialData)
}

func TestUseDoorBlocksMonsterActorFromLockedDoor(t *testing.T) {
	d := newTestDispatcher(t)
	actor := &mobj.MapObject{} // no Player backref: a monster
	activated := d.UseDoor(1, DoorNormal, mobj.KeyRed, actor)
	assert.False(t, activated)
}

func TestSpawnFireFlickerStaysWithinBounds(t *testing.T) {
	d := newTestDispatcher(t)
	d.SpawnFireFlicker(0)
	for i := 0; i < 50; i++ {
		d.RunPass()
		lvl := d.md.Sector(0).LightLevel
		assert.True(t, lvl == 100 || lvl == 84)
	}
}
