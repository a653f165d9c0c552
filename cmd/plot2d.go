package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gobfd/internal/config"
	"github.com/alexiusacademia/gobfd/internal/diagram"
	"github.com/alexiusacademia/gobfd/internal/plotly"
	"github.com/alexiusacademia/gobfd/internal/results"
	"github.com/spf13/cobra"
)

// Base name of the 2D diagram files
const task1Base = "task1_2d_diagrams"

var (
	plot2dElements []int
	plot2dGirder   string
	plot2dDensity  int
	plot2dASCII    bool
)

var plot2dCmd = &cobra.Command{
	Use:   "plot2d",
	Short: "Draw the BMD and SFD of a chain of elements",
	Long: `Draw the bending moment diagram above the shear force diagram for a
chain of consecutive elements, by default the central girder.

The diagram value at each node is the i-end force of the element starting
there; the last node takes the j-end force of the last element. Hatching
strokes are drawn between the baseline and the curve.

Writes task1_2d_diagrams.png, .svg and an interactive .html.

Examples:
  # Central girder
  gobfd plot2d -r forces.csv

  # An edge girder of the configured geometry
  gobfd plot2d -r forces.csv --girder "Girder 1"

  # Another chain with denser hatching and a terminal preview
  gobfd plot2d -r forces.csv --elements 13,22,31,40,49,58,67,76,81 --density 10 --ascii`,
	RunE: runPlot2D,
}

func init() {
	rootCmd.AddCommand(plot2dCmd)

	plot2dCmd.Flags().IntSliceVarP(&plot2dElements, "elements", "e", nil, "Element chain, e.g. 15,24,33 (default from config)")
	plot2dCmd.Flags().StringVarP(&plot2dGirder, "girder", "g", "", "Use the element chain of a named girder")
	plot2dCmd.MarkFlagsMutuallyExclusive("elements", "girder")
	plot2dCmd.Flags().IntVarP(&plot2dDensity, "density", "d", 5, "Hatching strokes between nodes")
	plot2dCmd.Flags().BoolVar(&plot2dASCII, "ascii", false, "Also draw the diagrams in the terminal")
}

func runPlot2D(cmd *cobra.Command, args []string) error {
	cfg, tbl, err := setup()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("elements") {
		cfg.Chain = plot2dElements
	}
	if cmd.Flags().Changed("girder") {
		if cfg.Chain, err = girderChain(cfg, plot2dGirder); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("density") {
		cfg.Hatching.Density2D = plot2dDensity
	}
	_, err = plot2d(os.Stdout, cfg, tbl, plot2dASCII)
	return err
}

// girderChain returns the elements of a named girder of the configured geometry
func girderChain(cfg *config.Config, name string) ([]int, error) {
	model, err := cfg.Geometry.Model()
	if err != nil {
		return nil, err
	}
	g, ok := model.Girder(name)
	if !ok {
		var names []string
		for _, g := range model.Girders() {
			names = append(names, fmt.Sprintf("%q", g.Name))
		}
		return nil, fmt.Errorf("unknown girder %q, expected one of %s", name, strings.Join(names, ", "))
	}
	return g.Elements, nil
}

// plot2d draws the chain diagrams and returns the files written
func plot2d(w io.Writer, cfg *config.Config, tbl *results.Table, ascii bool) ([]string, error) {
	bmd, err := diagram.Assemble(tbl, cfg.Chain, diagram.Moment)
	if err != nil {
		return nil, err
	}
	sfd, err := diagram.Assemble(tbl, cfg.Chain, diagram.Shear)
	if err != nil {
		return nil, err
	}

	printBanner(w, "2D FORCE DIAGRAMS")
	lines := []string{fmt.Sprintf("Elements: %v", cfg.Chain)}
	for _, d := range []*diagram.Diagram{bmd, sfd} {
		lo, hi := d.Range()
		idx, maxVal := d.Max()
		units := diagram.Units(d.Force)
		lines = append(lines,
			fmt.Sprintf("%s range: %.2f to %.2f %s", d.Force, lo, hi, units),
			fmt.Sprintf("%s max:   %.2f %s at node %d", d.Force, maxVal, units, d.Positions[idx]),
		)
	}
	fmt.Fprint(w, diagram.DrawSummaryBox("CHAIN SUMMARY", lines))
	fmt.Fprintln(w)

	if ascii {
		for _, d := range []*diagram.Diagram{bmd, sfd} {
			graph, err := diagram.DrawASCIIDiagram(d, 6, 12)
			if err != nil {
				return nil, err
			}
			fmt.Fprintln(w, graph)
		}
	}

	title := fmt.Sprintf("Girder Force Diagrams - Elements %v", cfg.Chain)
	density := cfg.Hatching.Density2D
	base := filepath.Join(cfg.Output, task1Base)

	var files []string
	for _, ext := range []string{".png", ".svg"} {
		path := base + ext
		if err := diagram.ExportForceDiagrams(bmd, sfd, density, title, path); err != nil {
			return files, err
		}
		files = append(files, path)
	}

	fig, err := plotly.ForceDiagrams(bmd, sfd, density, title)
	if err != nil {
		return files, err
	}
	if err := fig.Save(base + ".html"); err != nil {
		return files, err
	}
	files = append(files, base+".html")

	printHeading(w, "OUTPUT FILES:")
	for _, f := range files {
		fmt.Fprintf(w, "  %s\n", f)
		slog.Info("wrote", "file", f)
	}
	fmt.Fprintln(w)
	return files, nil
}
