package spatial

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gobfd/internal/diagram"
	"github.com/alexiusacademia/gobfd/internal/geometry"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// Scene is one 3D view: the bridge frame and the extruded diagrams of every girder
type Scene struct {
	Title   string
	XLabel  string
	YLabel  string
	ZLabel  string
	Frame   []geometry.Segment
	Girders []*Extrusion
	Camera  Camera
	Aspect  geometry.Vec3
	Hatch   bool
}

// NewScene creates a scene for one force type with the default camera
func NewScene(title, force string, frame []geometry.Segment, girders []*Extrusion) *Scene {
	return &Scene{
		Title:   title,
		XLabel:  "X (m) - Longitudinal",
		YLabel:  fmt.Sprintf("%s (%s)", forceName(force), diagram.Units(force)),
		ZLabel:  "Z (m) - Transverse",
		Frame:   frame,
		Girders: girders,
		Camera:  DefaultCamera,
		Aspect:  DefaultAspect,
		Hatch:   true,
	}
}

func forceName(force string) string {
	switch force {
	case diagram.Moment:
		return "Bending Moment"
	case diagram.Shear:
		return "Shear Force"
	}
	return force
}

var frameColor = color.RGBA{R: 211, G: 211, B: 211, A: 255}

// points collects every point drawn in the scene
func (s *Scene) points() []geometry.Vec3 {
	var pts []geometry.Vec3
	for _, seg := range s.Frame {
		pts = append(pts, seg.Start, seg.End)
	}
	for _, g := range s.Girders {
		pts = append(pts, g.Points...)
		for _, st := range g.Strokes {
			pts = append(pts, st.Base)
		}
	}
	return pts
}

// Plot projects the scene onto a 2D plot
func (s *Scene) Plot() (*plot.Plot, error) {
	box := Bounds(s.points())
	proj := NewProjector(s.Camera, s.Aspect, box)

	p := plot.New()
	p.Title.Text = s.Title
	p.HideAxes()
	p.Legend.Top = true

	line := func(a, b geometry.Vec3) plotter.XYs {
		ax, ay := proj.Project(a)
		bx, by := proj.Project(b)
		return plotter.XYs{{X: ax, Y: ay}, {X: bx, Y: by}}
	}

	if err := s.addAxes(p, proj, box); err != nil {
		return nil, err
	}

	var frameLine *plotter.Line
	for _, seg := range s.Frame {
		l, err := plotter.NewLine(line(seg.Start, seg.End))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = frameColor
		p.Add(l)
		frameLine = l
	}
	if frameLine != nil {
		p.Legend.Add("Bridge Frame", frameLine)
	}

	for _, g := range s.Girders {
		c := ParseColor(g.Girder.Color)

		if s.Hatch {
			for _, st := range g.Strokes {
				l, err := plotter.NewLine(line(st.Base, st.Tip))
				if err != nil {
					return nil, err
				}
				l.LineStyle.Width = vg.Points(0.5)
				l.LineStyle.Color = c
				p.Add(l)
			}
		}

		xys := make(plotter.XYs, len(g.Points))
		for k, pt := range g.Points {
			xys[k].X, xys[k].Y = proj.Project(pt)
		}
		curve, marks, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		curve.LineStyle.Width = vg.Points(2.5)
		curve.LineStyle.Color = c
		marks.GlyphStyle.Color = c
		marks.GlyphStyle.Radius = vg.Points(2.5)
		marks.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(curve, marks)
		p.Legend.Add(g.Girder.Name, curve, marks)
	}

	return p, nil
}

// addAxes draws the three axis directions from the lower corner of the scene box
func (s *Scene) addAxes(p *plot.Plot, proj *Projector, box r3.Box) error {
	lo, size := box.Min, box.Size()
	axes := []struct {
		to    r3.Vec
		label string
	}{
		{r3.Add(lo, r3.Vec{X: size.X}), s.XLabel},
		{r3.Add(lo, r3.Vec{Y: size.Y}), s.YLabel},
		{r3.Add(lo, r3.Vec{Z: size.Z}), s.ZLabel},
	}
	ox, oy := proj.Project(lo)
	var xys []plotter.XY
	var texts []string
	for _, a := range axes {
		tx, ty := proj.Project(a.to)
		l, err := plotter.NewLine(plotter.XYs{{X: ox, Y: oy}, {X: tx, Y: ty}})
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(0.75)
		l.LineStyle.Color = color.Gray{Y: 96}
		l.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(l)
		xys = append(xys, plotter.XY{X: tx, Y: ty})
		texts = append(texts, a.label)
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return err
	}
	p.Add(labels)
	return nil
}

// ExportScenes draws the scenes side by side in one image. The format follows
// the extension (.png, .svg, .pdf); other extensions get .png appended.
func ExportScenes(scenes []*Scene, width, height vg.Length, filename string) error {
	if len(scenes) == 0 {
		return fmt.Errorf("no scenes to export")
	}
	row := make([]*plot.Plot, len(scenes))
	for k, s := range scenes {
		p, err := s.Plot()
		if err != nil {
			return fmt.Errorf("%s: %w", s.Title, err)
		}
		row[k] = p
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch format {
	case "png", "svg", "pdf":
	default:
		format = "png"
		filename += ".png"
	}
	canvas, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return err
	}
	dc := draw.New(canvas)

	plots := [][]*plot.Plot{row}
	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(row),
		PadX: vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range row {
		row[j].Draw(canvases[0][j])
	}

	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err := canvas.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", filename, err)
	}
	return f.Close()
}

var namedColors = map[string]color.RGBA{
	"red":       {R: 255, A: 255},
	"orange":    {R: 255, G: 165, A: 255},
	"green":     {G: 128, A: 255},
	"blue":      {B: 255, A: 255},
	"purple":    {R: 128, B: 128, A: 255},
	"black":     {A: 255},
	"gray":      {R: 128, G: 128, B: 128, A: 255},
	"lightgray": {R: 211, G: 211, B: 211, A: 255},
	"darkred":   {R: 139, A: 255},
	"darkblue":  {B: 139, A: 255},
}

// ParseColor accepts a CSS colour name from the table above or #rrggbb.
// Anything else is drawn black.
func ParseColor(s string) color.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if len(s) == 7 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
		}
	}
	return color.Black
}
