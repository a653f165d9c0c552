package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gobfd/internal/config"
	"github.com/alexiusacademia/gobfd/internal/diagram"
	"github.com/alexiusacademia/gobfd/internal/results"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Find critical elements and export the force tables",
	Long: `Read the element force results and report, for every force component,
the element with the largest absolute value, followed by the top elements
ranked by moment and by shear.

The complete force table and the two rankings are written to CSV and to
an Excel workbook in the output directory.

Examples:
  # Analyze a CSV export
  gobfd analyze --results forces.csv

  # Keep the top 10 elements and write into ./reports
  GOBFD_TOP=10 gobfd analyze -r forces.xlsx -o reports`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, tbl, err := setup()
	if err != nil {
		return err
	}
	_, err = analyze(os.Stdout, cfg, tbl)
	return err
}

// analyze prints the analysis report and writes the force tables
func analyze(w io.Writer, cfg *config.Config, tbl *results.Table) (results.Exports, error) {
	printBanner(w, "ELEMENT FORCE ANALYSIS")

	printHeading(w, "DATASET:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Results:\t%s\n", cfg.Results)
	fmt.Fprintf(tw, "  Elements:\t%d\n", tbl.Len())
	fmt.Fprintf(tw, "  Components:\t%s\n", strings.Join(tbl.Components(), ", "))
	tw.Flush()
	fmt.Fprintln(w)

	printHeading(w, "CRITICAL ELEMENTS:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Component\tElement\tValue\t")
	for _, c := range tbl.CriticalElements() {
		fmt.Fprintf(tw, "  %s\tE%d\t%.3f\t%s\n", c.Component, c.Element, c.Value, componentUnits(c.Component))
	}
	tw.Flush()
	fmt.Fprintln(w)

	moments := tbl.TopMoments(cfg.Top)
	shears := tbl.TopShears(cfg.Top)
	printRanking(w, fmt.Sprintf("TOP %d ELEMENTS BY MOMENT:", cfg.Top), moments)
	printRanking(w, fmt.Sprintf("TOP %d ELEMENTS BY SHEAR:", cfg.Top), shears)

	printHeading(w, "CHAIN CONTINUITY:")
	fmt.Fprintf(w, "  Chain: %v\n", cfg.Chain)
	for _, force := range []string{diagram.Moment, diagram.Shear} {
		jump, err := diagram.Discontinuity(tbl, cfg.Chain, force)
		switch {
		case err != nil:
			slog.Warn("continuity check skipped", "force", force, "error", err)
			fmt.Fprintf(w, "  %s: not available\n", force)
		case jump.Delta == 0:
			fmt.Fprintf(w, "  %s: continuous\n", force)
		default:
			fmt.Fprintf(w, "  %s: largest jump %.3f %s at node %d (E%d → E%d)\n",
				force, jump.Delta, diagram.Units(force), jump.Node, jump.Left, jump.Right)
		}
	}
	fmt.Fprintln(w)

	files, err := results.Export(cfg.Output, tbl, cfg.Top)
	if err != nil {
		return files, err
	}
	printHeading(w, "OUTPUT FILES:")
	for _, f := range []string{files.Forces, files.Moments, files.Shears, files.Workbook} {
		fmt.Fprintf(w, "  %s\n", f)
		slog.Info("wrote", "file", f)
	}
	fmt.Fprintln(w)
	return files, nil
}

func printRanking(w io.Writer, title string, r results.Ranking) {
	printHeading(w, title)
	if len(r.Rows) == 0 {
		fmt.Fprintln(w, "  No matching components.")
		fmt.Fprintln(w)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "  Element\t%s\t%s\t\n", strings.Join(r.Columns, "\t"), r.MaxColumn)
	for _, row := range r.Rows {
		cells := make([]string, len(row.Values))
		for k, v := range row.Values {
			if math.IsNaN(v) {
				cells[k] = "-"
				continue
			}
			cells[k] = fmt.Sprintf("%.3f", v)
		}
		fmt.Fprintf(tw, "  E%d\t%s\t%.3f\t\n", row.Element, strings.Join(cells, "\t"), row.Max)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func componentUnits(component string) string {
	c, ok := results.ParseComponent(component)
	if !ok {
		return ""
	}
	return diagram.Units(c.Force)
}
