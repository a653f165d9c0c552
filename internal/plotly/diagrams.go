package plotly

import (
	"fmt"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/types"

	"github.com/alexiusacademia/gobfd/internal/diagram"
)

var htmlColors = map[string][2]types.Color{
	diagram.Moment: {"rgba(255,0,0,0.6)", "darkred"},
	diagram.Shear:  {"rgba(0,0,255,0.6)", "darkblue"},
}

func colorsFor(force string) (hatch, curve types.Color) {
	if c, ok := htmlColors[force]; ok {
		return c[0], c[1]
	}
	return "rgba(128,128,128,0.6)", "black"
}

// Row domains of the moment (top) and shear (bottom) diagrams
var (
	topDomain    = []float64{0.575, 1}
	bottomDomain = []float64{0, 0.425}
)

// hatchTrace draws all hatch strokes of a diagram as one trace, separated by gaps
func hatchTrace(h *diagram.Hatch, color types.Color, xaxis, yaxis string) *grob.Scatter {
	xs := make([]float64, 0, 3*h.Len())
	ys := make([]float64, 0, 3*h.Len())
	for k := range h.Positions {
		xs = append(xs, h.Positions[k], h.Positions[k], Gap)
		ys = append(ys, 0, h.Values[k], Gap)
	}
	return &grob.Scatter{
		Mode:       grob.ScatterModeLines,
		X:          values(xs),
		Y:          values(ys),
		Xaxis:      types.S(xaxis),
		Yaxis:      types.S(yaxis),
		Line:       &grob.ScatterLine{Color: color, Width: types.N(1)},
		Showlegend: types.False,
		Hoverinfo:  types.ArrayOKValue(grob.ScatterHoverinfoSkip),
	}
}

// subplotTitle is a paper-referenced title centred above a row
func subplotTitle(text string, top float64) grob.LayoutAnnotation {
	return grob.LayoutAnnotation{
		Text:      types.S(text),
		X:         0.5,
		Y:         top,
		Xref:      grob.LayoutAnnotationXrefPaper,
		Yref:      grob.LayoutAnnotationYrefPaper,
		Xanchor:   grob.LayoutAnnotationXanchorCenter,
		Yanchor:   grob.LayoutAnnotationYanchorBottom,
		Showarrow: types.False,
		Font:      &grob.LayoutAnnotationFont{Size: types.N(16)},
	}
}

// ForceDiagrams builds the moment diagram above the shear diagram with shared
// hatching, node markers, element labels and a max annotation on each.
func ForceDiagrams(moment, shear *diagram.Diagram, density int, title string) (*Figure, error) {
	fig := newFigure(title)
	layout := fig.Layout

	rows := []struct {
		d      *diagram.Diagram
		xaxis  string
		yaxis  string
		domain []float64
	}{
		{moment, "x", "y", topDomain},
		{shear, "x2", "y2", bottomDomain},
	}
	for _, r := range rows {
		d := r.d
		hatch, err := diagram.GenerateHatch(d.X(), d.Values, density)
		if err != nil {
			return nil, fmt.Errorf("%s hatching: %w", d.Force, err)
		}
		hc, cc := colorsFor(d.Force)
		units := diagram.Units(d.Force)
		style := diagram.StyleFor(d.Force)

		fig.Add(hatchTrace(hatch, hc, r.xaxis, r.yaxis))
		fig.Add(&grob.Scatter{
			Mode:          grob.ScatterModeLines + "+" + grob.ScatterModeMarkers,
			Name:          types.S(style.Title),
			X:             values(d.X()),
			Y:             values(d.Values),
			Xaxis:         types.S(r.xaxis),
			Yaxis:         types.S(r.yaxis),
			Line:          &grob.ScatterLine{Color: cc, Width: types.N(3)},
			Marker:        &grob.ScatterMarker{Color: types.ArrayOKValue(types.UseColor(cc)), Size: types.ArrayOKValue(types.N(8))},
			Hovertemplate: types.ArrayOKValue(types.S("Node %{x}<br>%{y:.2f} " + units + "<extra></extra>")),
		})

		layout.Shapes = append(layout.Shapes, grob.LayoutShape{
			Type: grob.LayoutShapeTypeLine,
			Xref: grob.LayoutShapeXref(r.xaxis),
			Yref: grob.LayoutShapeYref(r.yaxis),
			X0:   0,
			X1:   d.Len() - 1,
			Y0:   0,
			Y1:   0,
			Line: &grob.LayoutShapeLine{Color: "black", Width: types.N(2.5)},
		})

		layout.Annotations = append(layout.Annotations, subplotTitle(style.Title, r.domain[1]))

		idx, maxVal := d.Max()
		layout.Annotations = append(layout.Annotations, grob.LayoutAnnotation{
			Xref:      grob.LayoutAnnotationXref(r.xaxis),
			Yref:      grob.LayoutAnnotationYref(r.yaxis),
			X:         d.Positions[idx],
			Y:         maxVal,
			Text:      types.S(fmt.Sprintf("Max: %.2f %s", maxVal, units)),
			Showarrow: types.True,
			Arrowhead: types.I(2),
			Font:      &grob.LayoutAnnotationFont{Color: cc},
		})
		labelY := d.LabelHeight()
		for k, id := range d.Chain {
			layout.Annotations = append(layout.Annotations, grob.LayoutAnnotation{
				Xref:      grob.LayoutAnnotationXref(r.xaxis),
				Yref:      grob.LayoutAnnotationYref(r.yaxis),
				X:         float64(k) + 0.5,
				Y:         labelY,
				Text:      types.S(fmt.Sprintf("E%d", id)),
				Showarrow: types.False,
				Font:      &grob.LayoutAnnotationFont{Color: "green", Size: types.N(10)},
			})
		}
	}

	xTitle := types.S("Position along Girder (Node Index)")
	layout.Xaxis = &grob.LayoutXaxis{Anchor: "y", Title: &grob.LayoutXaxisTitle{Text: xTitle}}
	layout.Yaxis = &grob.LayoutYaxis{Domain: topDomain, Title: &grob.LayoutYaxisTitle{Text: types.S(diagram.StyleFor(moment.Force).YLabel)}}
	layout.Xaxis2 = &grob.LayoutXaxis{Anchor: "y2", Title: &grob.LayoutXaxisTitle{Text: xTitle}}
	layout.Yaxis2 = &grob.LayoutYaxis{Domain: bottomDomain, Title: &grob.LayoutYaxisTitle{Text: types.S(diagram.StyleFor(shear.Force).YLabel)}}
	return fig, nil
}
