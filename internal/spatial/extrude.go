package spatial

import (
	"fmt"

	"github.com/alexiusacademia/gobfd/internal/diagram"
	"github.com/alexiusacademia/gobfd/internal/geometry"
)

// Stroke is one hatch line from the baseline up to the extruded diagram
type Stroke struct {
	Base geometry.Vec3
	Tip  geometry.Vec3
}

// Extrusion is a girder diagram placed in space: the value at every node is
// scaled and laid along Y, keeping the node's X and Z.
type Extrusion struct {
	Girder  geometry.Girder
	Diagram *diagram.Diagram
	Scale   float64
	Points  []geometry.Vec3
	Strokes []Stroke
}

// Extrude assembles the diagram of one girder and places it in space.
// density is the hatching density between consecutive nodes.
func Extrude(model *geometry.Model, src diagram.SampleSource, g geometry.Girder, force string, scale float64, density int) (*Extrusion, error) {
	d, err := diagram.Assemble(src, g.Elements, force)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", g.Name, err)
	}
	coords, err := model.GirderCoordinates(g)
	if err != nil {
		return nil, err
	}
	if len(coords) != d.Len() {
		return nil, fmt.Errorf("%s: %d nodes for %d diagram points", g.Name, len(coords), d.Len())
	}

	ys := d.Scaled(scale)
	xs := make([]float64, len(coords))
	zs := make([]float64, len(coords))
	pts := make([]geometry.Vec3, len(coords))
	for k, c := range coords {
		xs[k], zs[k] = c.X, c.Z
		pts[k] = geometry.Vec3{X: c.X, Y: ys[k], Z: c.Z}
	}

	axes, err := diagram.InterpolatePath(density, xs, ys, zs)
	if err != nil {
		return nil, fmt.Errorf("%s hatching: %w", g.Name, err)
	}
	strokes := make([]Stroke, len(axes[0]))
	for k := range strokes {
		x, y, z := axes[0][k], axes[1][k], axes[2][k]
		strokes[k] = Stroke{
			Base: geometry.Vec3{X: x, Y: 0, Z: z},
			Tip:  geometry.Vec3{X: x, Y: y, Z: z},
		}
	}

	return &Extrusion{
		Girder:  g,
		Diagram: d,
		Scale:   scale,
		Points:  pts,
		Strokes: strokes,
	}, nil
}

// ExtrudeAll extrudes every girder of the model. It stops at the first girder
// that fails.
func ExtrudeAll(model *geometry.Model, src diagram.SampleSource, force string, scale float64, density int) ([]*Extrusion, error) {
	girders := model.Girders()
	out := make([]*Extrusion, 0, len(girders))
	for _, g := range girders {
		e, err := Extrude(model, src, g, force, scale, density)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
