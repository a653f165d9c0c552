package diagram

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gobfd/internal/results"
)

var (
	// ErrInvalidChain is returned when a chain has no elements
	ErrInvalidChain = errors.New("invalid chain")

	// ErrMissingComponent is returned when a force component is missing for an element of the chain
	ErrMissingComponent = errors.New("missing component")
)

// Force types drawn by the tool
const (
	Moment = "Mz" // bending moment about the out-of-plane axis
	Shear  = "Vy" // transverse shear force
)

// Units returns the display unit of a force type
func Units(force string) string {
	if len(force) > 0 && force[0] == 'M' {
		return "kN·m"
	}
	return "kN"
}

// SampleSource supplies the i-end and j-end values of a force type for a list of elements
type SampleSource interface {
	Samples(elements []int, force string) (map[int]results.EndPair, error)
}

// Diagram is a force diagram along a chain of elements.
// Values and Positions have len(Chain)+1 entries, one per node.
type Diagram struct {
	Chain     []int
	Force     string
	Values    []float64
	Positions []int
}

// Assemble builds the diagram of one force type along a chain of elements.
//
// The value at node k is the i-end value of element k; the last node takes the
// j-end value of the last element. Interior j-end values are not used: the
// i-end of element k is taken to equal the j-end of element k-1.
func Assemble(src SampleSource, chain []int, force string) (*Diagram, error) {
	if len(chain) == 0 {
		return nil, fmt.Errorf("%s diagram: %w: chain is empty", force, ErrInvalidChain)
	}

	samples, err := src.Samples(chain, force)
	if err != nil {
		return nil, sourceError("diagram", force, chain, err)
	}

	n := len(chain)
	d := &Diagram{
		Chain:     append([]int(nil), chain...),
		Force:     force,
		Values:    make([]float64, n+1),
		Positions: make([]int, n+1),
	}
	for k, id := range chain {
		s, ok := samples[id]
		if !ok {
			return nil, fmt.Errorf("%s diagram of chain %v: %w: element %d", force, chain, ErrMissingComponent, id)
		}
		d.Values[k] = s.I
		d.Positions[k] = k
	}
	d.Values[n] = samples[chain[n-1]].J
	d.Positions[n] = n

	return d, nil
}

// Len returns the number of nodes
func (d *Diagram) Len() int {
	return len(d.Values)
}

// X returns the positions as floats for plotting and hatching
func (d *Diagram) X() []float64 {
	xs := make([]float64, len(d.Positions))
	for k, p := range d.Positions {
		xs[k] = float64(p)
	}
	return xs
}

// Max returns the index and value of the largest absolute value.
// The first occurrence wins on ties.
func (d *Diagram) Max() (int, float64) {
	idx := 0
	for k, v := range d.Values {
		if math.Abs(v) > math.Abs(d.Values[idx]) {
			idx = k
		}
	}
	return idx, d.Values[idx]
}

// Range returns the smallest and largest value
func (d *Diagram) Range() (lo, hi float64) {
	lo, hi = d.Values[0], d.Values[0]
	for _, v := range d.Values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Scaled returns the values multiplied by f
func (d *Diagram) Scaled(f float64) []float64 {
	out := make([]float64, len(d.Values))
	for k, v := range d.Values {
		out[k] = v * f
	}
	return out
}

// LabelHeight is the height at which element labels are placed: below the
// curve when it goes negative, otherwise just above the baseline.
func (d *Diagram) LabelHeight() float64 {
	lo, hi := d.Range()
	if lo < 0 {
		return lo * 1.15
	}
	return hi * 0.1
}

// Jump is the difference between the j-end of one element and the i-end of the next
type Jump struct {
	Node  int // diagram position of the shared node
	Left  int // element ending at the node
	Right int // element starting at the node
	Delta float64
}

// Discontinuity returns the largest interior jump along a chain.
// Assemble drops these values; the jump tells how much was dropped.
// Chains with a single element have no interior node and return a zero Jump.
func Discontinuity(src SampleSource, chain []int, force string) (Jump, error) {
	if len(chain) == 0 {
		return Jump{}, fmt.Errorf("%s jump: %w: chain is empty", force, ErrInvalidChain)
	}
	samples, err := src.Samples(chain, force)
	if err != nil {
		return Jump{}, sourceError("jump", force, chain, err)
	}

	var worst Jump
	for k := 0; k+1 < len(chain); k++ {
		left, right := samples[chain[k]], samples[chain[k+1]]
		delta := left.J - right.I
		if math.Abs(delta) > math.Abs(worst.Delta) {
			worst = Jump{Node: k + 1, Left: chain[k], Right: chain[k+1], Delta: delta}
		}
	}
	return worst, nil
}

// sourceError marks missing force components with ErrMissingComponent and
// passes other lookup failures through.
func sourceError(what, force string, chain []int, err error) error {
	if errors.Is(err, results.ErrUnknownComponent) {
		return fmt.Errorf("%s %s of chain %v: %w: %w", force, what, chain, ErrMissingComponent, err)
	}
	return fmt.Errorf("%s %s of chain %v: %w", force, what, chain, err)
}
