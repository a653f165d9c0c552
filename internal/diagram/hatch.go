package diagram

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDensity is returned for a negative hatching density
	ErrInvalidDensity = errors.New("invalid density")

	// ErrShortSeries is returned when there are fewer than two points or the axes differ in length
	ErrShortSeries = errors.New("series too short")
)

// Hatch is the set of points at which a stroke is drawn from the baseline to
// the diagram curve.
type Hatch struct {
	Positions []float64
	Values    []float64
}

// Len returns the number of strokes
func (h *Hatch) Len() int {
	return len(h.Positions)
}

// GenerateHatch interpolates density+2 evenly spaced points, both ends
// included, on every segment of a piecewise-linear diagram. Points on shared
// nodes appear once for each segment.
func GenerateHatch(positions, values []float64, density int) (*Hatch, error) {
	axes, err := InterpolatePath(density, positions, values)
	if err != nil {
		return nil, err
	}
	return &Hatch{Positions: axes[0], Values: axes[1]}, nil
}

// InterpolatePath applies the hatch interpolation to any number of parallel
// axes, e.g. x, y and z of a girder placed in space. The result has one slice
// per axis, each of length (M-1)*(density+2).
func InterpolatePath(density int, axes ...[]float64) ([][]float64, error) {
	if density < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDensity, density)
	}
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrShortSeries)
	}
	m := len(axes[0])
	for _, a := range axes[1:] {
		if len(a) != m {
			return nil, fmt.Errorf("%w: axes have %d and %d points", ErrShortSeries, m, len(a))
		}
	}
	if m < 2 {
		return nil, fmt.Errorf("%w: %d points", ErrShortSeries, m)
	}

	per := density + 2
	out := make([][]float64, len(axes))
	for a, src := range axes {
		dst := make([]float64, 0, (m-1)*per)
		for k := 0; k+1 < m; k++ {
			dst = appendLinspace(dst, src[k], src[k+1], per)
		}
		out[a] = dst
	}
	return out, nil
}

// appendLinspace appends n evenly spaced values from start to stop inclusive.
// The last value is stop exactly.
func appendLinspace(dst []float64, start, stop float64, n int) []float64 {
	step := (stop - start) / float64(n-1)
	for k := 0; k < n-1; k++ {
		dst = append(dst, start+float64(k)*step)
	}
	return append(dst, stop)
}
