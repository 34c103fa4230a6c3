// Package player is the per-client playsim layer: the
// TicCmd input record, player think (turning, movement thrust, bob
// height), the 64-unit use-line trace, weapon/flash psprites, and
// player respawn.
package player

import (
	"github.com/doomgo/doomgo/internal/fixedmath"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/mobj"
	"github.com/doomgo/doomgo/internal/rng"
)

// TicCmd is one tic's worth of client input, the unit every playsim
// update consumes.
type TicCmd struct {
	ForwardMove int8 // -100..100, scaled by moveUnitScale before thrust
	SideMove int8
	AngleTurn fixedmath.Angle
	Fire bool
	Use bool
	WeaponSlot int8 // 0 = no change requested
}

// World is the facade Player needs from its owning Level: the map for
// use-line tracing, the deterministic RNG, and the line activator a
// successful use triggers.
type World interface {
	Map() *mapdata.MapData
	RNG() *rng.RNG
	Time() int32
	Warnf(format string, args ...interface{})
	Activator() mobj.LineActivator
}

const useRange fixedmath.Fixed = 64 << 16

// moveUnitScale converts a TicCmd's -100..100 move axis into the
// fixed-point thrust amount mobj.Thrust expects, matching vanilla's
// forwardmove/sidemove scale of roughly 1 map unit per axis count.
const moveUnitScale fixedmath.Fixed = 1 << 16

// Player layers client-facing state onto a MapObject: health/armor/
// ammo, the viewheight bob, and the weapon/flash psprite pair.
type Player struct {
	Mobj *mobj.MapObject

	Health, ArmorPoints int32
	Ammo [NumAmmoTypes]int32
	WeaponOwned [NumWeapons]bool
	ReadyWeapon Weapon

	ViewHeight fixedmath.Fixed
	ViewBob fixedmath.Fixed
	DeltaViewHeight fixedmath.Fixed

	Dead bool
	reborn bool

	Weapon PSprite
	Flash PSprite

	// Cards is indexed by mobj.KeyCard (Blue/Yellow/Red); true once the
	// matching card or skull key has been picked up.
	Cards [numCards]bool

	world World
}

// numCards bounds Cards by the three key colors vanilla models.
const numCards = 3

// NumAmmoTypes/NumWeapons bound the subset of the weapon table this
// port models.
const (
	AmmoClip = iota
	NumAmmoTypes
)

type Weapon int

const (
	WeaponFist Weapon = iota
	WeaponPistol
	NumWeapons
)

const ViewHeightNormal fixedmath.Fixed = 41 << 16

// New returns a Player wrapping an already-spawned player mobj.
func New(m *mobj.MapObject, world World) *Player {
	p := &Player{
		Mobj: m,
		Health: 100,
		ViewHeight: ViewHeightNormal,
		world: world,
	}
	p.WeaponOwned[WeaponFist] = true
	p.ReadyWeapon = WeaponFist
	p.Ammo[AmmoClip] = 50
	m.Player = p
	return p
}

// NotifyDeath implements mobj.PlayerBackref: the mobj's death-state
// transition calls back here so the player layer can react (lower
// weapon, stop accepting movement) without mobj importing player.
func (p *Player) NotifyDeath() {
	p.Dead = true
	p.DeltaViewHeight = 0
}

// HasCard implements mobj.PlayerBackref: reports whether p holds card,
// treating mobj.KeyNone (an unlocked door's requirement) as always
// satisfied.
func (p *Player) HasCard(card mobj.KeyCard) bool {
	if card == mobj.KeyNone {
		return true
	}
	if card < 0 || int(card) >= len(p.Cards) {
		return false
	}
	return p.Cards[card]
}

// Think runs one tic of player logic: turning, movement thrust, bob
// height, use-line tracing, and weapon ticking.
func (p *Player) Think(cmd TicCmd) {
	if p.Dead {
		p.thinkDeath()
		return
	}

	p.Mobj.Angle += cmd.AngleTurn

	if cmd.ForwardMove != 0 {
		amount := fixedmath.NewFixed(int32(cmd.ForwardMove)).Mul(moveUnitScale)
		p.Mobj.Thrust(p.Mobj.Angle, amount)
	}
	if cmd.SideMove != 0 {
		amount := fixedmath.NewFixed(int32(cmd.SideMove)).Mul(moveUnitScale)
		p.Mobj.Thrust(p.Mobj.Angle-fixedmath.Angle90, amount)
	}

	p.calculateHeight()

	if cmd.Use {
		p.UseLines()
	}

	p.tickPSprites(cmd)
}

func (p *Player) thinkDeath() {
	if p.DeltaViewHeight != 0 {
		p.ViewHeight += p.DeltaViewHeight
	}
	if p.ViewHeight < 6<<16 {
		p.ViewHeight = 6 << 16
		p.DeltaViewHeight = 0
	}
}

// calculateHeight applies DeltaViewHeight to the view height, held
// between ViewHeightNormal/2 and ViewHeightNormal, and records ViewBob
// as the mobj's squared horizontal momentum clamped to [0, FracUnit/4].
// ViewBob is not added to the view height or to any view position.
func (p *Player) calculateHeight() {
	momX, momY := p.Mobj.MomX, p.Mobj.MomY
	speedSq := momX.Mul(momX).Add(momY.Mul(momY))
	bobMax := fixedmath.FracUnit / 4
	p.ViewBob = speedSq.Clamp(0, bobMax)

	p.ViewHeight += p.DeltaViewHeight
	if p.ViewHeight > ViewHeightNormal {
		p.ViewHeight = ViewHeightNormal
		p.DeltaViewHeight = 0
	}
	if p.ViewHeight < ViewHeightNormal/2 {
		p.ViewHeight = ViewHeightNormal / 2
		if p.DeltaViewHeight <= 0 {
			p.DeltaViewHeight = 1
		}
	}
}

// UseLines traces a 64-unit ray along the player's facing angle and
// dispatches the first special line it crosses to the line activator,
// stopping at the first successfully activated or solid line.
func (p *Player) UseLines() {
	md := p.world.Map()
	origin := mapdata.Vec2{X: p.Mobj.X, Y: p.Mobj.Y}
	delta := mapdata.Vec2{
		X: useRange.Mul(fixedmath.Cos(p.Mobj.Angle)),
		Y: useRange.Mul(fixedmath.Sin(p.Mobj.Angle)),
	}
	activator := p.world.Activator()

	md.TraceLine(origin, delta, func(id mapdata.LineID, o, d mapdata.Vec2) (fixedmath.Fixed, bool) {
		line := md.Line(id)
		return md.LineIntersectFrac(line, o, d)
	}, func(ic mapdata.Intercept) bool {
		line := md.Line(ic.Line)
		side := md.PointOnLineSide(line, origin)
		if activator != nil && activator.UseSpecialLine(side, ic.Line, p.Mobj) {
			return false
		}
		if !line.TwoSided() {
			return false
		}
		return true
	})
}
