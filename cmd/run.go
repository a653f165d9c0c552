package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gobfd/internal/config"
	"github.com/alexiusacademia/gobfd/internal/results"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run analyze, plot2d, plot3d and report in order",
	Long: `Run the complete pipeline on one results dataset: the critical element
analysis and exports, the 2D diagrams of the configured chain, the 3D
diagrams of every girder and finally the PDF report.

The first failing step stops the run.

Examples:
  gobfd run -r forces.csv -o output
  gobfd run --config bridge.yaml`,
	RunE: runAll,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runAll(cmd *cobra.Command, args []string) error {
	cfg, tbl, err := setup()
	if err != nil {
		return err
	}
	return pipeline(os.Stdout, cfg, tbl)
}

func pipeline(w io.Writer, cfg *config.Config, tbl *results.Table) error {
	if _, err := analyze(w, cfg, tbl); err != nil {
		return err
	}
	if _, err := plot2d(w, cfg, tbl, false); err != nil {
		return err
	}
	if _, err := plot3d(w, cfg, tbl); err != nil {
		return err
	}
	if _, err := writeReport(w, cfg, tbl); err != nil {
		return err
	}
	slog.Info("run complete", "output", cfg.Output)
	return nil
}
