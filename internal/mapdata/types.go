// Package mapdata is the in-memory map graph and the
// BSP queries every other subsystem depends on: point-in-subsector,
// front-to-back traversal, and line-of-sight tracing.
//
// Every array is append-only after Load returns and every cross-reference is a typed index rather than a
// pointer, the same discipline a memory bus uses for bank + offset
// addressing instead of raw pointers into WRAM/ROM.
package mapdata

import "github.com/doomgo/doomgo/internal/fixedmath"

// VertexID, SectorID, ... are typed indices into MapData's arrays.
// -1 is the "no reference" sentinel (Go zero value for an int would
// alias vertex/sector/... 0, a valid index, so these are never zero
// valued by accident — callers must use the exported None constants).
type (
	VertexID int32
	SectorID int32
	SideID int32
	LineID int32
	SegID int32
	SubsectorID int32
	NodeID int32
)

const (
	NoSector SectorID = -1
	NoSide SideID = -1
)

// Vec2 is a 2D fixed-point point, used for vertexes and anything
// derived from them (linedef deltas, sector sound origins).
type Vec2 struct {
	X, Y fixedmath.Fixed
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X.Add(o.X), v.Y.Add(o.Y)} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X.Sub(o.X), v.Y.Sub(o.Y)} }

// SlopeType classifies a linedef's direction for the fast paths in
// BSP traversal and collision.
type SlopeType int

const (
	SlopeHorizontal SlopeType = iota
	SlopeVertical
	SlopePositive
	SlopeNegative
)

// LineFlag is the LINEDEFS flags bitset.
type LineFlag uint16

const (
	LineBlocking LineFlag = 1 << 0
	LineBlockMonsters LineFlag = 1 << 1
	LineTwoSided LineFlag = 1 << 2
	LineUpperUnpegged LineFlag = 1 << 3
	LineLowerUnpegged LineFlag = 1 << 4
	LineSecret LineFlag = 1 << 5
	LineBlockSound LineFlag = 1 << 6
	LineDontDraw LineFlag = 1 << 7
	LineMapped LineFlag = 1 << 8
)

// Vertex is a 2D point shared by one or more linedefs/segs.
type Vertex struct {
	Pos Vec2
}

// Sector is a floor/ceiling pair plus the bookkeeping specials need:
// at most one plane-moving thinker at a time (SpecialData), and the
// intrusive doubly linked thinglist of mobjs currently standing in it.
type Sector struct {
	Num uint32

	FloorHeight, CeilingHeight fixedmath.Fixed
	FloorFlat, CeilingFlat int32
	LightLevel int32
	Special int16
	Tag int16

	SoundOrigin Vec2

	// ValidCount is bumped to MapData.ValidCount before a BSP search that
	// must not revisit a sector twice (e.g. ev_build_stairs's adjacency
	// walk); a sector is "already seen" when ValidCount equals it.
	ValidCount int

	Lines []LineID

	// SpecialData is the thinker handle currently animating this
	// sector's plane, or ThinkerNone. At most one may be set.
	SpecialData ThinkerHandle

	// ThingListHead is the head of the intrusive doubly linked list of
	// mobjs touching this sector. Consumers must use the mobj
	// interface's own Sector-thinglist links, never walk this field
	// directly from inside mapdata (mapdata knows nothing about mobjs).
	ThingListHead MobjHandle

	SoundTraversed int32
	SoundTarget MobjHandle
}

// ThinkerHandle and MobjHandle are opaque stable references owned by
// the think and mobj packages respectively; mapdata only stores and
// compares them, never dereferences them, to avoid an import cycle
// between the map graph and the playsim that walks it.
type ThinkerHandle uint64
type MobjHandle uint64

const (
	ThinkerNone ThinkerHandle = 0
	MobjNone MobjHandle = 0
)

// SideDef is one side's texturing for a linedef.
type SideDef struct {
	XOffset, YOffset fixedmath.Fixed
	TopTexture int32 // -1 = none
	BottomTexture int32
	MidTexture int32
	Sector SectorID
}

// LineDef is a wall or portal between two vertexes.
type LineDef struct {
	V1, V2 VertexID
	Delta Vec2
	BBox BBox
	Slope SlopeType
	Flags LineFlag
	Special int16
	Tag int16
	FrontSide SideID
	BackSide SideID // NoSide if one-sided
	ValidCount int
}

// TwoSided reports whether the linedef has a back sidedef.
func (l *LineDef) TwoSided() bool { return l.BackSide != NoSide }

// BBox is an axis-aligned bounding box in map coordinates.
type BBox struct {
	Top, Bottom, Left, Right fixedmath.Fixed
}

// Intersects reports whether two boxes overlap (used by the BSP
// back-side visibility test and by mobj collision probing).
func (b BBox) Intersects(o BBox) bool {
	return !(b.Left > o.Right || b.Right < o.Left || b.Top < o.Bottom || b.Bottom > o.Top)
}

// Segment is a linedef fragment produced by the BSP compiler.
type Segment struct {
	V1, V2 VertexID
	Offset fixedmath.Fixed
	Angle fixedmath.Angle
	FrontSector SectorID
	BackSector SectorID // NoSector if this seg faces a one-sided line
	Line LineID
	Side SideID
}

// SubSector is a convex BSP leaf: a contiguous run into the Segs array.
type SubSector struct {
	SegCount int32
	FirstSeg SegID
	Sector SectorID
}

// nodeSubsectorBit marks a Node child index as a subsector leaf rather
// than another inner node, matching the NODE lump's 0x8000 MSB tag.
const nodeSubsectorBit = 0x8000_0000

// Node is one BSP split.
type Node struct {
	X, Y fixedmath.Fixed
	DX, DY fixedmath.Fixed
	BBox [2]BBox
	// Children holds raw child indices: nodeSubsectorBit set means the
	// low bits are a SubsectorID, otherwise they're a NodeID.
	Children [2]uint32
}

// ChildIsSubsector reports whether side (0 or 1) of the node leads to
// a subsector leaf rather than another inner node.
func (n *Node) ChildIsSubsector(side int) bool {
	return n.Children[side]&nodeSubsectorBit != 0
}

// ChildSubsector returns the subsector index for a leaf child.
func (n *Node) ChildSubsector(side int) SubsectorID {
	return SubsectorID(n.Children[side] &^ nodeSubsectorBit)
}

// ChildNode returns the node index for an inner child.
func (n *Node) ChildNode(side int) NodeID {
	return NodeID(n.Children[side])
}

// PointOnSide returns 0 if p is on the node partition's front side, 1
// if on the back side, matching the sign-of-cross-product rule.
// It is an involution on the line: nudging p by ε along the normal of
// side s returns the same s.
func (n *Node) PointOnSide(p Vec2) int {
	if n.DX == 0 {
		if p.X <= n.X {
			if n.DY > 0 {
				return 1
			}
			return 0
		}
		if n.DY < 0 {
			return 1
		}
		return 0
	}
	if n.DY == 0 {
		if p.Y <= n.Y {
			if n.DX < 0 {
				return 1
			}
			return 0
		}
		if n.DX > 0 {
			return 1
		}
		return 0
	}

	dx := p.X.Sub(n.X)
	dy := p.Y.Sub(n.Y)

	left := n.DY.Int64() * dx.Int64()
	right := dy.Int64() * n.DX.Int64()
	if right < left {
		return 0
	}
	return 1
}

// LineOnSide is the same test against a LineDef instead of a Node
// partition, used by movement/attack code classifying which side of a
// wall a point falls on.
func LineOnSide(l *LineDef, vfront Vec2, p Vec2) int {
	dx := p.X.Sub(vfront.X)
	dy := p.Y.Sub(vfront.Y)
	left := l.Delta.Y.Int64() * dx.Int64()
	right := dy.Int64() * l.Delta.X.Int64()
	if right < left {
		return 0
	}
	return 1
}
