package config

import (
	"fmt"
	"strconv"

	"github.com/alexiusacademia/gobfd/internal/geometry"
)

// GirderConfig is one longitudinal girder in the geometry block
type GirderConfig struct {
	Name     string `mapstructure:"name"`
	Elements []int  `mapstructure:"elements"`
	Nodes    []int  `mapstructure:"nodes"`
	Color    string `mapstructure:"color"`
}

// Geometry is the bridge grid: node coordinates keyed by node id, member
// end nodes keyed by element id, and the girders drawn in 3D.
type Geometry struct {
	Nodes   map[string][]float64 `mapstructure:"nodes"`
	Members map[string][]int     `mapstructure:"members"`
	Girders []GirderConfig       `mapstructure:"girders"`
}

// Model converts the geometry block into a model
func (g Geometry) Model() (*geometry.Model, error) {
	nodes := make(map[int]geometry.Vec3, len(g.Nodes))
	for key, xyz := range g.Nodes {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: node id %q", ErrInvalid, key)
		}
		if len(xyz) != 3 {
			return nil, fmt.Errorf("%w: node %d has %d coordinates, want 3", ErrInvalid, id, len(xyz))
		}
		nodes[id] = geometry.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}

	members := make(map[int]geometry.Member, len(g.Members))
	for key, ends := range g.Members {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: element id %q", ErrInvalid, key)
		}
		if len(ends) != 2 {
			return nil, fmt.Errorf("%w: element %d has %d end nodes, want 2", ErrInvalid, id, len(ends))
		}
		members[id] = geometry.Member{Start: ends[0], End: ends[1]}
	}

	girders := make([]geometry.Girder, len(g.Girders))
	for k, gc := range g.Girders {
		girders[k] = geometry.Girder{
			Name:     gc.Name,
			Elements: gc.Elements,
			Nodes:    gc.Nodes,
			Color:    gc.Color,
		}
	}

	m := geometry.NewModel(nodes, members, girders)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Sample bridge grid
const (
	girderCount  = 5
	stationCount = 10
	spanLength   = 5.0 // m between stations
	girderSpace  = 2.5 // m between girders
)

var girderColors = []string{"red", "orange", "green", "blue", "purple"}

// stationNode numbers the sample grid: the abutment nodes are 1-5 and 6-10,
// the interior stations follow from 11 in steps of five.
func stationNode(station, girder int) int {
	switch station {
	case 0:
		return girder + 1
	case stationCount - 1:
		return girderCount + girder + 1
	}
	return 2*girderCount + (station-1)*girderCount + girder + 1
}

// DefaultGeometry returns the sample five-girder bridge: ten stations, 45
// longitudinal elements and 40 cross beams.
func DefaultGeometry() Geometry {
	g := Geometry{
		Nodes:   map[string][]float64{},
		Members: map[string][]int{},
	}
	for s := 0; s < stationCount; s++ {
		for j := 0; j < girderCount; j++ {
			id := stationNode(s, j)
			g.Nodes[strconv.Itoa(id)] = []float64{float64(s) * spanLength, 0, float64(j) * girderSpace}
		}
	}

	// longitudinal element of girder j between stations s and s+1
	for j := 0; j < girderCount; j++ {
		gc := GirderConfig{
			Name:  fmt.Sprintf("Girder %d", j+1),
			Color: girderColors[j],
		}
		for s := 0; s < stationCount; s++ {
			gc.Nodes = append(gc.Nodes, stationNode(s, j))
		}
		for s := 0; s < stationCount-1; s++ {
			id := 13 + 9*s + j
			if s == stationCount-2 {
				id = 81 + j
			}
			gc.Elements = append(gc.Elements, id)
			g.Members[strconv.Itoa(id)] = []int{stationNode(s, j), stationNode(s+1, j)}
		}
		g.Girders = append(g.Girders, gc)
	}

	// cross beams, numbered station by station in node order
	var cross []int
	for id := 1; id <= 12; id++ {
		cross = append(cross, id)
	}
	for base := 18; base <= 72; base += 9 {
		for k := 0; k < 4; k++ {
			cross = append(cross, base+k)
		}
	}
	stations := []int{0, stationCount - 1}
	for s := 1; s < stationCount-1; s++ {
		stations = append(stations, s)
	}
	n := 0
	for _, s := range stations {
		for j := 0; j < girderCount-1; j++ {
			g.Members[strconv.Itoa(cross[n])] = []int{stationNode(s, j), stationNode(s, j+1)}
			n++
		}
	}
	return g
}
