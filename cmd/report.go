package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gobfd/internal/config"
	"github.com/alexiusacademia/gobfd/internal/report"
	"github.com/alexiusacademia/gobfd/internal/results"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write critical element charts and the PDF report",
	Long: `Draw bar charts of the critical moment and shear elements and write
report.pdf with the critical element tables. Diagram images already in
the output directory (from plot2d and plot3d) are embedded as well.

Examples:
  gobfd report -r forces.csv
  gobfd run -r forces.csv    # diagrams first, then the report`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, tbl, err := setup()
	if err != nil {
		return err
	}
	_, err = writeReport(os.Stdout, cfg, tbl)
	return err
}

// writeReport writes the charts and the PDF and returns the files written
func writeReport(w io.Writer, cfg *config.Config, tbl *results.Table) ([]string, error) {
	moments := tbl.TopMoments(cfg.Top)
	shears := tbl.TopShears(cfg.Top)

	charts, err := report.SaveCharts(cfg.Output, moments, shears)
	if err != nil {
		return nil, err
	}

	candidates := []report.Figure{
		{Caption: "Critical Elements by Moment", Path: charts.Moments},
		{Caption: "Critical Elements by Shear", Path: charts.Shears},
		{Caption: "Girder Force Diagrams", Path: filepath.Join(cfg.Output, task1Base+".png")},
		{Caption: "3D Bending Moment Diagram", Path: filepath.Join(cfg.Output, task2BMD+".png")},
		{Caption: "3D Shear Force Diagram", Path: filepath.Join(cfg.Output, task2SFD+".png")},
		{Caption: "Combined 3D Force Diagrams", Path: filepath.Join(cfg.Output, task2Combined+".png")},
	}
	var figures []report.Figure
	var files []string
	for _, f := range candidates {
		if f.Path == "" {
			continue
		}
		if _, err := os.Stat(f.Path); err != nil {
			slog.Debug("figure not found, skipped", "file", f.Path)
			continue
		}
		figures = append(figures, f)
	}
	for _, p := range []string{charts.Moments, charts.Shears} {
		if p != "" {
			files = append(files, p)
		}
	}

	path := filepath.Join(cfg.Output, report.PDF)
	err = report.Save(path, report.Input{
		Source:     cfg.Results,
		Elements:   tbl.Len(),
		Components: len(tbl.Components()),
		Critical:   tbl.CriticalElements(),
		Moments:    moments,
		Shears:     shears,
		Figures:    figures,
	})
	if err != nil {
		return files, err
	}
	files = append(files, path)

	printBanner(w, "REPORT")
	printHeading(w, "OUTPUT FILES:")
	for _, f := range files {
		fmt.Fprintf(w, "  %s\n", f)
		slog.Info("wrote", "file", f)
	}
	fmt.Fprintf(w, "  (%d figures embedded)\n\n", len(figures))
	return files, nil
}
