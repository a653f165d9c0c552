package plotly

import (
	"fmt"
	"image/color"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/types"

	"github.com/alexiusacademia/gobfd/internal/diagram"
	"github.com/alexiusacademia/gobfd/internal/geometry"
	"github.com/alexiusacademia/gobfd/internal/spatial"
)

// MaxScenes is the number of scenes one figure can hold
const MaxScenes = 2

func cssColor(c color.Color) types.Color {
	r, g, b, _ := c.RGBA()
	return types.Color(fmt.Sprintf("rgb(%d,%d,%d)", r>>8, g>>8, b>>8))
}

func lineColor(c types.Color) *types.ArrayOK[*types.ColorWithColorScale] {
	return types.ArrayOKValue(types.UseColor(c))
}

// segments flattens line segments into one gapped trace
func segments(sceneID, name string, c types.Color, width float64, pairs [][2]geometry.Vec3) *grob.Scatter3d {
	xs := make([]float64, 0, 3*len(pairs))
	ys := make([]float64, 0, 3*len(pairs))
	zs := make([]float64, 0, 3*len(pairs))
	for _, p := range pairs {
		xs = append(xs, p[0].X, p[1].X, Gap)
		ys = append(ys, p[0].Y, p[1].Y, Gap)
		zs = append(zs, p[0].Z, p[1].Z, Gap)
	}
	return &grob.Scatter3d{
		Mode:      grob.Scatter3dModeLines,
		Name:      types.S(name),
		X:         values(xs),
		Y:         values(ys),
		Z:         values(zs),
		Scene:     types.S(sceneID),
		Line:      &grob.Scatter3dLine{Color: lineColor(c), Width: types.N(width)},
		Hoverinfo: types.ArrayOKValue(grob.Scatter3dHoverinfoSkip),
	}
}

// hoverTemplate shows the unscaled force of a girder node
func hoverTemplate(e *spatial.Extrusion) string {
	return fmt.Sprintf("%s<br>X: %%{x:.2f}<br>%s: %%{customdata:.2f} %s<br>Z: %%{z:.2f}<extra></extra>",
		e.Girder.Name, e.Diagram.Force, diagram.Units(e.Diagram.Force))
}

// sceneTraces returns the frame, hatching and girder traces of one 3D scene
func sceneTraces(s *spatial.Scene, sceneID string, showLegend bool) []types.Trace {
	var traces []types.Trace

	if len(s.Frame) > 0 {
		pairs := make([][2]geometry.Vec3, len(s.Frame))
		for k, seg := range s.Frame {
			pairs[k] = [2]geometry.Vec3{seg.Start, seg.End}
		}
		frame := segments(sceneID, "Bridge Frame", "lightgray", 3, pairs)
		frame.Showlegend = types.B(showLegend)
		traces = append(traces, frame)
	}

	for _, g := range s.Girders {
		c := cssColor(spatial.ParseColor(g.Girder.Color))
		if s.Hatch && len(g.Strokes) > 0 {
			pairs := make([][2]geometry.Vec3, len(g.Strokes))
			for k, st := range g.Strokes {
				pairs[k] = [2]geometry.Vec3{st.Base, st.Tip}
			}
			hatch := segments(sceneID, "", c, 1, pairs)
			hatch.Showlegend = types.False
			traces = append(traces, hatch)
		}

		xs := make([]float64, len(g.Points))
		ys := make([]float64, len(g.Points))
		zs := make([]float64, len(g.Points))
		for k, p := range g.Points {
			xs[k], ys[k], zs[k] = p.X, p.Y, p.Z
		}
		traces = append(traces, &grob.Scatter3d{
			Mode:          grob.Scatter3dModeLines + "+" + grob.Scatter3dModeMarkers,
			Name:          types.S(g.Girder.Name),
			X:             values(xs),
			Y:             values(ys),
			Z:             values(zs),
			Customdata:    values(g.Diagram.Values),
			Scene:         types.S(sceneID),
			Line:          &grob.Scatter3dLine{Color: lineColor(c), Width: types.N(6)},
			Marker:        &grob.Scatter3dMarker{Color: lineColor(c), Size: types.ArrayOKValue(types.N(4))},
			Showlegend:    types.B(showLegend),
			Hovertemplate: types.ArrayOKValue(types.S(hoverTemplate(g))),
		})
	}
	return traces
}

func sceneLayout(s *spatial.Scene, domain []float64) *grob.LayoutScene {
	return &grob.LayoutScene{
		Domain: &grob.LayoutSceneDomain{X: domain, Y: []float64{0, 1}},
		Xaxis:  &grob.LayoutSceneXaxis{Title: &grob.LayoutSceneXaxisTitle{Text: types.S(s.XLabel)}},
		Yaxis:  &grob.LayoutSceneYaxis{Title: &grob.LayoutSceneYaxisTitle{Text: types.S(s.YLabel)}},
		Zaxis:  &grob.LayoutSceneZaxis{Title: &grob.LayoutSceneZaxisTitle{Text: types.S(s.ZLabel)}},
		Camera: &grob.LayoutSceneCamera{
			Eye: &grob.LayoutSceneCameraEye{X: types.N(s.Camera.Eye.X), Y: types.N(s.Camera.Eye.Y), Z: types.N(s.Camera.Eye.Z)},
			Up:  &grob.LayoutSceneCameraUp{X: types.N(s.Camera.Up.X), Y: types.N(s.Camera.Up.Y), Z: types.N(s.Camera.Up.Z)},
		},
		Aspectmode:  grob.LayoutSceneAspectmodeManual,
		Aspectratio: &grob.LayoutSceneAspectratio{X: types.N(s.Aspect.X), Y: types.N(s.Aspect.Y), Z: types.N(s.Aspect.Z)},
	}
}

// Scenes places up to MaxScenes scenes side by side in one interactive 3D
// figure. Only the first scene contributes legend entries.
func Scenes(title string, scenes ...*spatial.Scene) (*Figure, error) {
	if len(scenes) == 0 || len(scenes) > MaxScenes {
		return nil, fmt.Errorf("cannot draw %d scenes in one figure, want 1 to %d", len(scenes), MaxScenes)
	}
	fig := newFigure(title)
	width := 1 / float64(len(scenes))
	for k, s := range scenes {
		id := "scene"
		if k > 0 {
			id = fmt.Sprintf("scene%d", k+1)
		}
		fig.Add(sceneTraces(s, id, k == 0)...)

		l := sceneLayout(s, []float64{float64(k) * width, float64(k+1) * width})
		if k == 0 {
			fig.Layout.Scene = l
		} else {
			fig.Layout.Scene2 = l
		}
		if len(scenes) > 1 {
			fig.Layout.Annotations = append(fig.Layout.Annotations, grob.LayoutAnnotation{
				Xref:      grob.LayoutAnnotationXrefPaper,
				Yref:      grob.LayoutAnnotationYrefPaper,
				X:         (float64(k) + 0.5) * width,
				Y:         1,
				Text:      types.S(s.Title),
				Showarrow: types.False,
				Font:      &grob.LayoutAnnotationFont{Size: types.N(14)},
			})
		}
	}
	return fig, nil
}
