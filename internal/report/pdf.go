package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/alexiusacademia/gobfd/internal/results"
	"github.com/phpdave11/gofpdf"
)

// Figure is an image embedded in the report
type Figure struct {
	Caption string
	Path    string
}

// Input is the content of the PDF report
type Input struct {
	Title      string
	Source     string // results dataset
	Elements   int
	Components int
	Critical   []results.Critical
	Moments    results.Ranking
	Shears     results.Ranking
	Figures    []Figure
	Date       time.Time
}

const (
	pageWidth = 190.0 // A4 less 10mm margins
	rowHeight = 6.0
)

// Write renders the report as PDF. Figures whose files are missing are
// listed by caption only.
func Write(w io.Writer, in Input) error {
	if in.Title == "" {
		in.Title = "Bridge Force Diagram Report"
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetTitle(in.Title, true)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(in.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Results: %s", in.Source)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Elements: %d, components: %d", in.Elements, in.Components))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", in.Date.Format("2006-01-02")))
	pdf.Ln(10)

	heading(pdf, "Critical Elements")
	rows := make([][]string, len(in.Critical))
	for k, c := range in.Critical {
		rows[k] = []string{c.Component, fmt.Sprintf("E%d", c.Element), fmt.Sprintf("%.3f", c.Value)}
	}
	table(pdf, tr, []string{"Component", "Element", "Value"}, rows)

	ranking(pdf, tr, "Top Elements by Moment", in.Moments)
	ranking(pdf, tr, "Top Elements by Shear", in.Shears)

	for _, fig := range in.Figures {
		pdf.AddPage()
		heading(pdf, tr(fig.Caption))
		if _, err := os.Stat(fig.Path); err != nil {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.Cell(0, rowHeight, tr(fmt.Sprintf("(%s not available)", fig.Path)))
			pdf.Ln(rowHeight)
			continue
		}
		pdf.ImageOptions(fig.Path, 10, pdf.GetY(), pageWidth, 0, false,
			gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// Save writes the report to path
func Save(path string, in Input) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, in); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
}

func table(pdf *gofpdf.Fpdf, tr func(string) string, header []string, rows [][]string) {
	if len(header) == 0 {
		return
	}
	w := pageWidth / float64(len(header))
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	for _, h := range header {
		pdf.CellFormat(w, rowHeight, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for _, cell := range row {
			pdf.CellFormat(w, rowHeight, tr(cell), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func ranking(pdf *gofpdf.Fpdf, tr func(string) string, title string, r results.Ranking) {
	heading(pdf, title)
	if len(r.Rows) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, rowHeight, "No matching components.")
		pdf.Ln(rowHeight + 4)
		return
	}
	header := append([]string{"Element"}, r.Columns...)
	header = append(header, r.MaxColumn)
	rows := make([][]string, len(r.Rows))
	for k, row := range r.Rows {
		cells := []string{fmt.Sprintf("E%d", row.Element)}
		for _, v := range row.Values {
			cells = append(cells, formatCell(v))
		}
		rows[k] = append(cells, fmt.Sprintf("%.3f", row.Max))
	}
	table(pdf, tr, header, rows)
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}
