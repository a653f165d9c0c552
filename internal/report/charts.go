// Package report renders the critical-element charts and the PDF summary.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gobfd/internal/results"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Output file names
const (
	MomentChart = "critical_moments.png"
	ShearChart  = "critical_shears.png"
	PDF         = "report.pdf"
)

var (
	momentFill = drawing.ColorFromHex("d62728")
	shearFill  = drawing.ColorFromHex("1f77b4")
)

// WriteBarChart draws one bar per ranked element, its height the row maximum
func WriteBarChart(w io.Writer, title, units string, r results.Ranking, fill drawing.Color) error {
	if len(r.Rows) == 0 {
		return fmt.Errorf("%s: no ranked elements", title)
	}

	top := 0.0
	bars := make([]chart.Value, len(r.Rows))
	for k, row := range r.Rows {
		bars[k] = chart.Value{
			Label: fmt.Sprintf("E%d", row.Element),
			Value: row.Max,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
		if row.Max > top {
			top = row.Max
		}
	}
	if top == 0 {
		top = 1
	}

	bc := chart.BarChart{
		Title:    title,
		Width:    800,
		Height:   480,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Name:  units,
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.1f")
			},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

// SaveBarChart writes a bar chart PNG to path
func SaveBarChart(path, title, units string, r results.Ranking, fill drawing.Color) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteBarChart(f, title, units, r, fill); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Charts lists the files written by SaveCharts; empty when a ranking had no rows
type Charts struct {
	Moments string
	Shears  string
}

// SaveCharts writes the critical moment and shear bar charts into dir. A
// ranking with no rows is skipped.
func SaveCharts(dir string, moments, shears results.Ranking) (Charts, error) {
	var out Charts
	if len(moments.Rows) > 0 {
		path := filepath.Join(dir, MomentChart)
		if err := SaveBarChart(path, "Critical Elements - Max |Moment|", "kN·m", moments, momentFill); err != nil {
			return out, fmt.Errorf("%s: %w", path, err)
		}
		out.Moments = path
	}
	if len(shears.Rows) > 0 {
		path := filepath.Join(dir, ShearChart)
		if err := SaveBarChart(path, "Critical Elements - Max |Shear|", "kN", shears, shearFill); err != nil {
			return out, fmt.Errorf("%s: %w", path, err)
		}
		out.Shears = path
	}
	return out, nil
}
