package mapdata

import (
	"fmt"

	"github.com/doomgo/doomgo/internal/debug"
	"github.com/doomgo/doomgo/internal/wad"
)

// MapData owns every array in the map graph. Once Load returns, the
// arrays are never reallocated — all
// cross-references into them (SectorID, LineID, ...) stay valid for the
// MapData's lifetime.
type MapData struct {
	Vertexes []Vertex
	Sectors []Sector
	Sides []SideDef
	Lines []LineDef
	Segs []Segment
	SubSectors []SubSector
	Nodes []Node

	Things []wad.Thing

	Reject []byte
	Blockmap *Blockmap

	// ValidCount is bumped once per search that must not revisit the
	// same sector/line twice; see Sector.ValidCount and LineDef.ValidCount.
	ValidCount int

	logger *debug.Logger
}

// New returns an empty MapData; Load populates it.
func New(logger *debug.Logger) *MapData {
	return &MapData{logger: logger}
}

// TextureResolver maps a wire-format texture or flat name (an 8-byte
// ASCII field, "-" meaning "none") to PicData's numeric id for it.
// MapData.Load takes one so sidedef/sector loading can turn names into
// the ids the renderer indexes by, without mapdata importing pic.
type TextureResolver func(name string) int32

// Load parses a named map ("E1M1", "MAP01", ...) out of the lumps
// returned by the WAD reader, populating the arrays in dependency
// order: vertexes and sectors first (nothing refers to anything else),
// then sidedefs (refer to sectors), linedefs (refer to vertexes and
// sidedefs), segs (refer to vertexes, linedefs, and their sectors),
// subsectors (refer to segs), nodes last (refer to subsectors and
// other nodes).
func (m *MapData) Load(lumps *wad.MapLumps, resolveTexture, resolveFlat TextureResolver) error {
	m.loadVertexes(lumps.Vertexes)
	m.loadSectors(lumps.Sectors, resolveFlat)
	if err := m.loadSides(lumps.Sidedefs, resolveTexture); err != nil {
		return fmt.Errorf("mapdata: sidedefs: %w", err)
	}
	if err := m.loadLines(lumps.Linedefs); err != nil {
		return fmt.Errorf("mapdata: linedefs: %w", err)
	}
	if err := m.loadSegs(lumps.Segs); err != nil {
		return fmt.Errorf("mapdata: segs: %w", err)
	}
	if err := m.loadSubsectors(lumps.Ssectors); err != nil {
		return fmt.Errorf("mapdata: subsectors: %w", err)
	}
	if err := m.loadNodes(lumps.Nodes); err != nil {
		return fmt.Errorf("mapdata: nodes: %w", err)
	}
	m.Things = lumps.Things
	m.Reject = lumps.Reject
	m.Blockmap = buildBlockmap(lumps.Blockmap)
	m.buildSectorLines()
	return nil
}

func (m *MapData) loadVertexes(raw []wad.Vertex) {
	m.Vertexes = make([]Vertex, len(raw))
	for i, v := range raw {
		m.Vertexes[i] = Vertex{Pos: Vec2{X: v.X, Y: v.Y}}
	}
}

func (m *MapData) loadSectors(raw []wad.Sector, resolveFlat TextureResolver) {
	m.Sectors = make([]Sector, len(raw))
	for i, s := range raw {
		m.Sectors[i] = Sector{
			Num: uint32(i),
			FloorHeight: s.FloorHeight,
			CeilingHeight: s.CeilingHeight,
			FloorFlat: resolveFlat(s.FloorFlatName),
			CeilingFlat: resolveFlat(s.CeilFlatName),
			LightLevel: int32(s.LightLevel),
			Special: s.Special,
			Tag: s.Tag,
		}
	}
}

func (m *MapData) loadSides(raw []wad.SideDef, resolveTexture TextureResolver) error {
	m.Sides = make([]SideDef, len(raw))
	for i, s := range raw {
		if int(s.Sector) >= len(m.Sectors) {
			return fmt.Errorf("sidedef %d references out-of-range sector %d", i, s.Sector)
		}
		m.Sides[i] = SideDef{
			XOffset: s.XOffset,
			YOffset: s.YOffset,
			TopTexture: resolveTexture(s.TopName),
			BottomTexture: resolveTexture(s.BottomName),
			MidTexture: resolveTexture(s.MidName),
			Sector: SectorID(s.Sector),
		}
	}
	return nil
}

func (m *MapData) loadLines(raw []wad.LineDef) error {
	m.Lines = make([]LineDef, len(raw))
	for i, l := range raw {
		if int(l.V1) >= len(m.Vertexes) || int(l.V2) >= len(m.Vertexes) {
			return fmt.Errorf("linedef %d references out-of-range vertex", i)
		}
		v1 := m.Vertexes[l.V1].Pos
		v2 := m.Vertexes[l.V2].Pos
		delta := v2.Sub(v1)

		ld := LineDef{
			V1: VertexID(l.V1),
			V2: VertexID(l.V2),
			Delta: delta,
			Flags: LineFlag(l.Flags),
			Special: l.Special,
			Tag: l.Tag,
			FrontSide: SideID(l.FrontSide),
			BackSide: NoSide,
		}
		if l.BackSide != wad.NoSidedef {
			ld.BackSide = SideID(l.BackSide)
		}
		if ld.BackSide != NoSide && ld.Flags&LineTwoSided == 0 {
			// A back sidedef with the flag unset still behaves as
			// two-sided for traversal purposes; warn, don't reject.
			if m.logger != nil {
				m.logger.LogWAD(debug.LogLevelWarning,
					fmt.Sprintf("linedef %d has a back sidedef but the two-sided flag is unset", i), nil)
			}
		}
		if ld.Flags&LineTwoSided != 0 && ld.BackSide == NoSide {
			return fmt.Errorf("linedef %d: twosided flag set but back sidedef is missing", i)
		}

		ld.BBox = boundingBox(v1, v2)

		switch {
		case delta.X == 0:
			ld.Slope = SlopeVertical
		case delta.Y == 0:
			ld.Slope = SlopeHorizontal
		case (delta.Y > 0) == (delta.X > 0):
			ld.Slope = SlopePositive
		default:
			ld.Slope = SlopeNegative
		}

		if int(ld.FrontSide) >= len(m.Sides) || (ld.BackSide != NoSide && int(ld.BackSide) >= len(m.Sides)) {
			return fmt.Errorf("linedef %d references out-of-range sidedef", i)
		}

		m.Lines[i] = ld
	}
	return nil
}

func boundingBox(a, b Vec2) BBox {
	box := BBox{Top: a.Y, Bottom: a.Y, Left: a.X, Right: a.X}
	if b.Y > box.Top {
		box.Top = b.Y
	}
	if b.Y < box.Bottom {
		box.Bottom = b.Y
	}
	if b.X < box.Left {
		box.Left = b.X
	}
	if b.X > box.Right {
		box.Right = b.X
	}
	return box
}

func (m *MapData) loadSegs(raw []wad.Seg) error {
	m.Segs = make([]Segment, len(raw))
	for i, s := range raw {
		if int(s.LineDef) >= len(m.Lines) {
			return fmt.Errorf("seg %d references out-of-range linedef %d", i, s.LineDef)
		}
		line := &m.Lines[s.LineDef]

		var sideID SideID
		var frontSector, backSector SectorID
		if s.Direction == 0 {
			sideID = line.FrontSide
			if line.BackSide != NoSide {
				backSector = m.Sides[line.BackSide].Sector
			} else {
				backSector = NoSector
			}
		} else {
			sideID = line.BackSide
			if line.FrontSide != NoSide {
				backSector = m.Sides[line.FrontSide].Sector
			} else {
				backSector = NoSector
			}
		}
		if sideID == NoSide {
			return fmt.Errorf("seg %d direction %d has no sidedef on linedef %d", i, s.Direction, s.LineDef)
		}
		frontSector = m.Sides[sideID].Sector

		m.Segs[i] = Segment{
			V1: VertexID(s.V1),
			V2: VertexID(s.V2),
			Offset: s.Offset,
			Angle: s.Angle,
			FrontSector: frontSector,
			BackSector: backSector,
			Line: LineID(s.LineDef),
			Side: sideID,
		}
	}
	return nil
}

func (m *MapData) loadSubsectors(raw []wad.SSector) error {
	m.SubSectors = make([]SubSector, len(raw))
	for i, s := range raw {
		if int(s.FirstSeg)+int(s.NumSegs) > len(m.Segs) {
			return fmt.Errorf("subsector %d seg range out of bounds", i)
		}
		sector := NoSector
		if s.NumSegs > 0 {
			sector = m.Segs[s.FirstSeg].FrontSector
		}
		m.SubSectors[i] = SubSector{
			SegCount: int32(s.NumSegs),
			FirstSeg: SegID(s.FirstSeg),
			Sector: sector,
		}
	}
	return nil
}

func (m *MapData) loadNodes(raw []wad.Node) error {
	m.Nodes = make([]Node, len(raw))
	for i, n := range raw {
		node := Node{
			X: n.X, Y: n.Y, DX: n.DX, DY: n.DY,
		}
		for side := 0; side < 2; side++ {
			node.BBox[side] = BBox(n.BBox[side])
			node.Children[side] = n.Children[side]
		}
		m.Nodes[i] = node
	}
	return nil
}

// buildSectorLines populates Sector.Lines with every linedef touching
// it (front or back), duplicate-free.
func (m *MapData) buildSectorLines() {
	seen := make(map[SectorID]map[LineID]bool, len(m.Sectors))
	for i := range m.Lines {
		l := &m.Lines[i]
		front := m.Sides[l.FrontSide].Sector
		addSectorLine(seen, &m.Sectors[front], front, LineID(i))
		if l.BackSide != NoSide {
			back := m.Sides[l.BackSide].Sector
			addSectorLine(seen, &m.Sectors[back], back, LineID(i))
		}
	}
}

func addSectorLine(seen map[SectorID]map[LineID]bool, sec *Sector, id SectorID, line LineID) {
	if seen[id] == nil {
		seen[id] = make(map[LineID]bool)
	}
	if seen[id][line] {
		return
	}
	seen[id][line] = true
	sec.Lines = append(sec.Lines, line)
}

// RootNode returns the index of the BSP root, always the last node in
// the array.
func (m *MapData) RootNode() NodeID {
	return NodeID(len(m.Nodes) - 1)
}

func (m *MapData) Vertex(id VertexID) Vec2 { return m.Vertexes[id].Pos }
func (m *MapData) Sector(id SectorID) *Sector { return &m.Sectors[id] }
func (m *MapData) Side(id SideID) *SideDef { return &m.Sides[id] }
func (m *MapData) Line(id LineID) *LineDef { return &m.Lines[id] }
func (m *MapData) Seg(id SegID) *Segment { return &m.Segs[id] }
func (m *MapData) SubSector(id SubsectorID) *SubSector { return &m.SubSectors[id] }
func (m *MapData) Node(id NodeID) *Node { return &m.Nodes[id] }
