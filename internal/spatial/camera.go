package spatial

import (
	"math"

	"github.com/alexiusacademia/gobfd/internal/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Camera is an orthographic view looking from Eye towards the scene centre
type Camera struct {
	Eye geometry.Vec3
	Up  geometry.Vec3
}

// DefaultCamera looks at the bridge from the longitudinal/force/transverse
// octant with the force axis pointing up.
var DefaultCamera = Camera{
	Eye: geometry.Vec3{X: 1.5, Y: 1.5, Z: 1.2},
	Up:  geometry.Vec3{Y: 1},
}

// DefaultAspect is the relative size of the X, Y and Z extents of the scene box
var DefaultAspect = geometry.Vec3{X: 2, Y: 1, Z: 0.5}

// Projector maps model points to the 2D view plane. Each axis is first
// normalised to its aspect extent, centred on the scene box.
type Projector struct {
	box           r3.Box
	aspect        r3.Vec
	right, upward r3.Vec
}

// NewProjector builds a projector for the scene box
func NewProjector(cam Camera, aspect geometry.Vec3, box r3.Box) *Projector {
	forward := r3.Scale(-1, cam.Eye)
	if r3.Norm(forward) != 0 {
		forward = r3.Unit(forward)
	}
	right := r3.Cross(forward, cam.Up)
	if r3.Norm(right) == 0 {
		// eye parallel to up
		right = r3.Vec{X: 1}
	} else {
		right = r3.Unit(right)
	}
	return &Projector{
		box:    box,
		aspect: aspect,
		right:  right,
		upward: r3.Cross(right, forward),
	}
}

// Project returns view-plane coordinates of a model point
func (p *Projector) Project(v geometry.Vec3) (x, y float64) {
	n := r3.Vec{
		X: fit(v.X, p.box.Min.X, p.box.Max.X, p.aspect.X),
		Y: fit(v.Y, p.box.Min.Y, p.box.Max.Y, p.aspect.Y),
		Z: fit(v.Z, p.box.Min.Z, p.box.Max.Z, p.aspect.Z),
	}
	return r3.Dot(n, p.right), r3.Dot(n, p.upward)
}

// fit maps v from [lo, hi] to [-extent/2, extent/2]; flat ranges map to 0
func fit(v, lo, hi, extent float64) float64 {
	if hi-lo == 0 {
		return 0
	}
	return ((v-lo)/(hi-lo) - 0.5) * extent
}

// Bounds returns the box around a set of points. A single point gives a
// degenerate box, so r3.Box.Union cannot be used to grow it.
func Bounds(pts []geometry.Vec3) r3.Box {
	if len(pts) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min = r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
		b.Max = r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	}
	return b
}
