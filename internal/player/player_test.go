package player

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

type fakeWorld struct {
	md  *mapdata.MapData
	rng *rng.RNG
}

func (w *fakeWorld) Map() *mapdata.MapData               { return w.md }
func (w *fakeWorld) RNG() *rng.RNG                       { return w.rng }
func (w *fakeWorld) Time() int32                         { return 0 }
func (w *fakeWorld) Warnf(format string, args ...interface{}) {}
func (w *fakeWorld) Activator() mobj.LineActivator       { return nil }

func buildOpenRoom(t *testing.T) *mapdata.MapData {
	t.Helper()
	fx := func(v int32) fixedmath.Fixed { return fixedmath.NewFixed(v) }
	lumps := &wad.MapLumps{
		Vertexes: []wad.Vertex{
			{X: fx(-1000), Y: fx(-1000)}, {X: fx(1000), Y: fx(-1000)},
			{X: fx(1000), Y: fx(1000)}, {X: fx(-1000), Y: fx(1000)},
		},
		Sidedefs: []wad.SideDef{
			{MidName: "W", Sector: 0}, {MidName: "W", Sector: 0},
			{MidName: "W", Sector: 0}, {MidName: "W", Sector: 0},
		},
		Linedefs: []wad.LineDef{
			{V1: 0, V2: 1, FrontSide: 0, BackSide: wad.NoSidedef},
			{V1: 1, V2: 2, FrontSide: 1, BackSide: wad.NoSidedef},
			{V1: 2, V2: 3, FrontSide: 2, BackSide: wad.NoSidedef},
			{V1: 3, V2: 0, FrontSide: 3, BackSide: wad.NoSidedef},
		},
		Segs: []wad.Seg{
			{V1: 0, V2: 1, LineDef: 0}, {V1: 1, V2: 2, LineDef: 1},
			{V1: 2, V2: 3, LineDef: 2}, {V1: 3, V2: 0, LineDef: 3},
		},
		Ssectors: []wad.SSector{{NumSegs: 4, FirstSeg: 0}},
		Sectors: []wad.Sector{
			{FloorHeight: fx(0), CeilingHeight: fx(128), FloorFlatName: "F", CeilFlatName: "C", LightLevel: 200},
		},
	}
	md := mapdata.New(nil)
	require.NoError(t, md.Load(lumps, func(string) int32 { return 1 }, func(string) int32 { return 1 }))
	return md
}

func newTestPlayer(t *testing.T) (*Player, *mobj.Mobjs, *fakeWorld) {
	md := buildOpenRoom(t)
	w := &fakeWorld{md: md, rng: rng.New()}
	ms := mobj.NewMobjs(w)
	m := ms.Spawn(0, 0, 0, mobj.TypePlayer)
	p := New(m, w)
	return p, ms, w
}

func TestThinkAppliesForwardThrust(t *testing.T) {
	p, _, _ := newTestPlayer(t)
	p.Think(TicCmd{ForwardMove: 50})
	assert.NotEqual(t, fixedmath.Fixed(0), p.Mobj.MomX)
}

func TestThinkTurnsAngle(t *testing.T) {
	p, _, _ := newTestPlayer(t)
	before := p.Mobj.Angle
	p.Think(TicCmd{AngleTurn: fixedmath.Angle90})
	assert.Equal(t, before+fixedmath.Angle90, p.Mobj.Angle)
}

func TestCalculateHeightClampsToNormal(t *testing.T) {
	p, _, _ := newTestPlayer(t)
	p.ViewHeight = ViewHeightNormal + (10 << 16)
	p.calculateHeight()
	assert.Equal(t, ViewHeightNormal, p.ViewHeight)
}

func TestNotifyDeathMarksDead(t *testing.T) {
	p, _, _ := newTestPlayer(t)
	p.NotifyDeath()
	assert.True(t, p.Dead)
}

func TestFireWeaponConsumesAmmo(t *testing.T) {
	p, _, _ := newTestPlayer(t)
	p.ReadyWeapon = WeaponPistol
	p.Ammo[AmmoClip] = 1
	p.fireWeapon()
	assert.Equal(t, int32(0), p.Ammo[AmmoClip])
}

func TestFireWeaponRefusesWithoutAmmo(t *testing.T) {
	p, _, _ := newTestPlayer(t)
	p.ReadyWeapon = WeaponPistol
	p.Ammo[AmmoClip] = 0
	p.fireWeapon()
	assert.Equal(t, int32(0), p.Ammo[AmmoClip])
}

func TestHasCardWithNoneIsAlwaysSatisfied(t *testing.T) {
	p, _, _ := newTestPlayer(t)
	assert.True(t, p.HasCard(mobj.KeyNone))
}

func TestHasCardReflectsCardsPickedUp(t *testing.T) {
	p, _, _ := newTestPlayer(t)
	assert.False(t, p.HasCard(mobj.KeyRed))
	p.Cards[mobj.KeyRed] = true
	assert.True(t, p.HasCard(mobj.KeyRed))
	assert.False(t, p.HasCard(mobj.KeyBlue))
}

func TestRebornSpawnsFreshMobjAndResetsStats(t *testing.T) {
	p, ms, _ := newTestPlayer(t)
	p.Health = 1
	p.Ammo[AmmoClip] = 3
	oldMobj := p.Mobj
	p.Reborn(ms, fixedmath.NewFixed(10), fixedmath.NewFixed(10), 0)
	assert.NotEqual(t, oldMobj, p.Mobj)
	assert.Equal(t, int32(100), p.Health)
	assert.Equal(t, int32(50), p.Ammo[AmmoClip])
}
