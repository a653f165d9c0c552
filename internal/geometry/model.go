package geometry

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrUnknownNode is returned for node ids missing from the model
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownElement is returned for element ids missing from the model
	ErrUnknownElement = errors.New("unknown element")
)

// Vec3 is a point in model space (m)
type Vec3 = r3.Vec

// Member connects two nodes
type Member struct {
	Start int
	End   int
}

// Girder is one longitudinal chain of elements. Nodes lists the node at each
// diagram position, so len(Nodes) == len(Elements)+1.
type Girder struct {
	Name     string
	Elements []int
	Nodes    []int
	Color    string
}

// Segment is one member placed in space
type Segment struct {
	Element int
	Start   Vec3
	End     Vec3
}

// Model is the static bridge geometry: node coordinates, element connectivity
// and girder definitions.
type Model struct {
	nodes   map[int]Vec3
	members map[int]Member
	girders []Girder
}

// NewModel creates a geometry model. The maps are copied.
func NewModel(nodes map[int]Vec3, members map[int]Member, girders []Girder) *Model {
	m := &Model{
		nodes:   make(map[int]Vec3, len(nodes)),
		members: make(map[int]Member, len(members)),
		girders: append([]Girder(nil), girders...),
	}
	for id, p := range nodes {
		m.nodes[id] = p
	}
	for id, mb := range members {
		m.members[id] = mb
	}
	return m
}

// NodeCoordinates returns the position of a node
func (m *Model) NodeCoordinates(id int) (Vec3, error) {
	p, ok := m.nodes[id]
	if !ok {
		return Vec3{}, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return p, nil
}

// ElementEndpoints returns the start and end node of an element
func (m *Model) ElementEndpoints(id int) (start, end int, err error) {
	mb, ok := m.members[id]
	if !ok {
		return 0, 0, fmt.Errorf("element %d: %w", id, ErrUnknownElement)
	}
	return mb.Start, mb.End, nil
}

// Girders returns the girder definitions in configuration order
func (m *Model) Girders() []Girder {
	return m.girders
}

// Girder looks a girder up by name
func (m *Model) Girder(name string) (Girder, bool) {
	for _, g := range m.girders {
		if g.Name == name {
			return g, true
		}
	}
	return Girder{}, false
}

// GirderCoordinates returns the position of every node along a girder
func (m *Model) GirderCoordinates(g Girder) ([]Vec3, error) {
	pts := make([]Vec3, len(g.Nodes))
	for k, id := range g.Nodes {
		p, err := m.NodeCoordinates(id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", g.Name, err)
		}
		pts[k] = p
	}
	return pts, nil
}

// Frame returns every member as a segment, ordered by element id
func (m *Model) Frame() []Segment {
	ids := make([]int, 0, len(m.members))
	for id := range m.members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	segs := make([]Segment, 0, len(ids))
	for _, id := range ids {
		mb := m.members[id]
		a, okA := m.nodes[mb.Start]
		b, okB := m.nodes[mb.End]
		if !okA || !okB {
			continue
		}
		segs = append(segs, Segment{Element: id, Start: a, End: b})
	}
	return segs
}

// Bounds returns the box spanned by all nodes
func (m *Model) Bounds() r3.Box {
	if len(m.nodes) == 0 {
		return r3.Box{}
	}
	lo := Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range m.nodes {
		lo.X, hi.X = math.Min(lo.X, p.X), math.Max(hi.X, p.X)
		lo.Y, hi.Y = math.Min(lo.Y, p.Y), math.Max(hi.Y, p.Y)
		lo.Z, hi.Z = math.Min(lo.Z, p.Z), math.Max(hi.Z, p.Z)
	}
	return r3.Box{Min: lo, Max: hi}
}

// Validate checks that members reference known nodes and that every girder has
// one more node than elements, all of them known.
func (m *Model) Validate() error {
	for id, mb := range m.members {
		if _, ok := m.nodes[mb.Start]; !ok {
			return fmt.Errorf("element %d start node %d: %w", id, mb.Start, ErrUnknownNode)
		}
		if _, ok := m.nodes[mb.End]; !ok {
			return fmt.Errorf("element %d end node %d: %w", id, mb.End, ErrUnknownNode)
		}
	}
	for _, g := range m.girders {
		if len(g.Elements) == 0 {
			return fmt.Errorf("%s: girder has no elements", g.Name)
		}
		if len(g.Nodes) != len(g.Elements)+1 {
			return fmt.Errorf("%s: %d elements need %d nodes, got %d",
				g.Name, len(g.Elements), len(g.Elements)+1, len(g.Nodes))
		}
		for _, id := range g.Nodes {
			if _, ok := m.nodes[id]; !ok {
				return fmt.Errorf("%s: node %d: %w", g.Name, id, ErrUnknownNode)
			}
		}
	}
	return nil
}

// Mismatch is a girder element whose member does not join the girder nodes on
// either side of it.
type Mismatch struct {
	Girder   string
	Element  int
	Expected Member
	Actual   Member
}

// CheckConnectivity compares every girder element with its member definition.
// Elements without a member are skipped; orientation is ignored.
func (m *Model) CheckConnectivity() []Mismatch {
	var out []Mismatch
	for _, g := range m.girders {
		for k, id := range g.Elements {
			if k+1 >= len(g.Nodes) {
				break
			}
			mb, ok := m.members[id]
			if !ok {
				continue
			}
			want := Member{Start: g.Nodes[k], End: g.Nodes[k+1]}
			if (mb.Start == want.Start && mb.End == want.End) || (mb.Start == want.End && mb.End == want.Start) {
				continue
			}
			out = append(out, Mismatch{Girder: g.Name, Element: id, Expected: want, Actual: mb})
		}
	}
	return out
}
