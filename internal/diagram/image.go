package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// Style holds the colours of one diagram. Translucent colours are
// non-premultiplied.
type Style struct {
	Title  string
	YLabel string
	Hatch  color.Color
	Curve  color.Color
}

// Diagram styles
var (
	MomentStyle = Style{
		Title:  "Bending Moment Diagram (BMD)",
		YLabel: "Bending Moment (kN·m)",
		Hatch:  color.NRGBA{R: 255, A: 153},
		Curve:  color.RGBA{R: 139, A: 255},
	}
	ShearStyle = Style{
		Title:  "Shear Force Diagram (SFD)",
		YLabel: "Shear Force (kN)",
		Hatch:  color.NRGBA{B: 255, A: 153},
		Curve:  color.RGBA{B: 139, A: 255},
	}
	labelColor = color.RGBA{G: 128, A: 255}
)

// StyleFor returns the style of a force type
func StyleFor(force string) Style {
	if force == Shear {
		return ShearStyle
	}
	if force == Moment {
		return MomentStyle
	}
	return Style{
		Title:  force + " Diagram",
		YLabel: fmt.Sprintf("%s (%s)", force, Units(force)),
		Hatch:  color.NRGBA{R: 128, G: 128, B: 128, A: 153},
		Curve:  color.Black,
	}
}

// Plot2D draws one diagram: hatching strokes from the baseline to the curve,
// the curve with node markers, the baseline, the max annotation and, when
// withLabels is set, an E<id> label at the middle of every element.
func Plot2D(d *Diagram, density int, style Style, withLabels bool) (*plot.Plot, error) {
	hatch, err := GenerateHatch(d.X(), d.Values, density)
	if err != nil {
		return nil, fmt.Errorf("%s hatching: %w", d.Force, err)
	}

	p := plot.New()
	p.Title.Text = style.Title
	p.X.Label.Text = "Position along Girder (Node Index)"
	p.Y.Label.Text = style.YLabel
	p.Add(plotter.NewGrid())

	// hatching
	for k := range hatch.Positions {
		x, y := hatch.Positions[k], hatch.Values[k]
		stroke, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: y}})
		if err != nil {
			return nil, err
		}
		stroke.LineStyle.Width = vg.Points(1)
		stroke.LineStyle.Color = style.Hatch
		p.Add(stroke)
	}

	// baseline
	n := d.Len() - 1
	base, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: float64(n), Y: 0}})
	if err != nil {
		return nil, err
	}
	base.LineStyle.Width = vg.Points(2.5)
	base.LineStyle.Color = color.Black
	p.Add(base)

	// curve
	pts := make(plotter.XYs, d.Len())
	for k := range d.Values {
		pts[k] = plotter.XY{X: float64(d.Positions[k]), Y: d.Values[k]}
	}
	curve, marks, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	curve.LineStyle.Width = vg.Points(3)
	curve.LineStyle.Color = style.Curve
	marks.GlyphStyle.Color = style.Curve
	marks.GlyphStyle.Radius = vg.Points(4)
	marks.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(curve, marks)

	// max annotation
	idx, maxVal := d.Max()
	maxLabel, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: float64(d.Positions[idx]), Y: maxVal}},
		Labels: []string{fmt.Sprintf("Max: %.2f %s", maxVal, Units(d.Force))},
	})
	if err != nil {
		return nil, err
	}
	maxLabel.TextStyle[0].Color = style.Curve
	maxLabel.Offset = vg.Point{X: vg.Points(6), Y: vg.Points(6)}
	p.Add(maxLabel)

	if withLabels {
		y := d.LabelHeight()
		xys := make([]plotter.XY, len(d.Chain))
		texts := make([]string, len(d.Chain))
		for k, id := range d.Chain {
			xys[k] = plotter.XY{X: float64(k) + 0.5, Y: y}
			texts[k] = fmt.Sprintf("E%d", id)
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, err
		}
		for k := range labels.TextStyle {
			labels.TextStyle[k].Color = labelColor
			labels.TextStyle[k].XAlign = draw.XCenter
		}
		p.Add(labels)
	}

	return p, nil
}

// ExportForceDiagrams draws the moment diagram above the shear diagram and saves
// both in one image. The format follows the extension (.png, .svg, .pdf); other
// extensions get .png appended.
func ExportForceDiagrams(moment, shear *Diagram, density int, title, filename string) error {
	top, err := Plot2D(moment, density, StyleFor(moment.Force), true)
	if err != nil {
		return err
	}
	bottom, err := Plot2D(shear, density, StyleFor(shear.Force), false)
	if err != nil {
		return err
	}
	top.X.Label.Text = ""

	width := 12 * vg.Inch
	height := 9 * vg.Inch

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
	head := dc.Max.Y - vg.Points(30)
	titleCanvas := dc
	dc.Max.Y = head

	titleCanvas.FillText(draw.TextStyle{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, vg.Points(16)),
		Handler: plot.DefaultTextHandler,
		XAlign:  draw.XCenter,
	}, vg.Point{X: (titleCanvas.Min.X + titleCanvas.Max.X) / 2, Y: head + vg.Points(8)}, title)

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter * 8,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	plots := [][]*plot.Plot{{top}, {bottom}}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	if err := ensureDir(filename); err != nil {
		return err
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

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
