// Package plotly builds interactive plotly.js figures of the force diagrams
// and writes them as standalone HTML pages.
package plotly

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/offline"
	"github.com/MetalBlueberry/go-plotly/pkg/types"
)

// Gap breaks a line trace between two points
var Gap = math.NaN()

// Layout is the generated plotly layout plus the second cartesian axes and
// second scene of the two-row and side-by-side figures.
type Layout struct {
	*grob.Layout
	Xaxis2 *grob.LayoutXaxis `json:"xaxis2,omitempty"`
	Yaxis2 *grob.LayoutYaxis `json:"yaxis2,omitempty"`
	Scene2 *grob.LayoutScene `json:"scene2,omitempty"`
}

// Figure is the data and layout handed to Plotly.newPlot
type Figure struct {
	Data   []types.Trace `json:"data"`
	Layout *Layout       `json:"layout"`
}

func newFigure(title string) *Figure {
	return &Figure{Layout: &Layout{Layout: &grob.Layout{
		Title:      &grob.LayoutTitle{Text: types.S(title)},
		Showlegend: types.True,
	}}}
}

// Info implements types.Fig with the plotly.js release of the graph objects
func (f *Figure) Info() types.Version {
	return (&grob.Fig{}).Info()
}

// Add appends traces
func (f *Figure) Add(traces ...types.Trace) {
	f.Data = append(f.Data, traces...)
}

// Save writes the figure page to a file, creating its directory
func (f *Figure) Save(filename string) error {
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	offline.ToHtml(f, filename)
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

// values converts a coordinate array; NaN and Inf become null so plotly
// leaves a gap there.
func values(vs []float64) *types.DataArrayType {
	out := make([]types.NumberType, len(vs))
	for k, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[k] = types.N(v)
	}
	return types.DataArray(out)
}
