package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alexiusacademia/gobfd/internal/config"
	"github.com/alexiusacademia/gobfd/internal/diagram"
	"github.com/alexiusacademia/gobfd/internal/plotly"
	"github.com/alexiusacademia/gobfd/internal/results"
	"github.com/alexiusacademia/gobfd/internal/spatial"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

// Base names of the 3D diagram files
const (
	task2BMD      = "task2_3d_bmd"
	task2SFD      = "task2_3d_sfd"
	task2Combined = "task2_3d_combined"
)

var (
	plot3dDensity     int
	plot3dMomentScale float64
	plot3dShearScale  float64
)

var plot3dCmd = &cobra.Command{
	Use:   "plot3d",
	Short: "Draw the BMD and SFD of every girder over the bridge frame",
	Long: `Extrude the diagram of every girder in the geometry over the 3D bridge
frame. Values are scaled and laid vertically above each node; hatching
strokes drop from the curve to the deck.

Writes task2_3d_bmd, task2_3d_sfd and task2_3d_combined as .png and
interactive .html.

Examples:
  gobfd plot3d -r forces.csv --config bridge.yaml

  # Exaggerate the shear diagrams
  gobfd plot3d -r forces.csv --shear-scale 4`,
	RunE: runPlot3D,
}

func init() {
	rootCmd.AddCommand(plot3dCmd)

	plot3dCmd.Flags().IntVarP(&plot3dDensity, "density", "d", 8, "Hatching strokes between nodes")
	plot3dCmd.Flags().Float64Var(&plot3dMomentScale, "moment-scale", 0.5, "Vertical scale of moments")
	plot3dCmd.Flags().Float64Var(&plot3dShearScale, "shear-scale", 2.0, "Vertical scale of shear forces")
}

func runPlot3D(cmd *cobra.Command, args []string) error {
	cfg, tbl, err := setup()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("density") {
		cfg.Hatching.Density3D = plot3dDensity
	}
	if cmd.Flags().Changed("moment-scale") {
		cfg.Scale.Moment = plot3dMomentScale
	}
	if cmd.Flags().Changed("shear-scale") {
		cfg.Scale.Shear = plot3dShearScale
	}
	_, err = plot3d(os.Stdout, cfg, tbl)
	return err
}

// plot3d draws the girder diagrams in 3D and returns the files written.
// Any failing girder aborts the whole figure.
func plot3d(w io.Writer, cfg *config.Config, tbl *results.Table) ([]string, error) {
	model, err := cfg.Geometry.Model()
	if err != nil {
		return nil, err
	}
	for _, m := range model.CheckConnectivity() {
		slog.Warn("girder element does not join its nodes",
			"girder", m.Girder, "element", m.Element,
			"expected", fmt.Sprintf("%d-%d", m.Expected.Start, m.Expected.End),
			"member", fmt.Sprintf("%d-%d", m.Actual.Start, m.Actual.End))
	}

	density := cfg.Hatching.Density3D
	bmd, err := spatial.ExtrudeAll(model, tbl, diagram.Moment, cfg.Scale.Moment, density)
	if err != nil {
		return nil, err
	}
	sfd, err := spatial.ExtrudeAll(model, tbl, diagram.Shear, cfg.Scale.Shear, density)
	if err != nil {
		return nil, err
	}
	for k := range bmd {
		slog.Debug("extruded girder", "girder", bmd[k].Girder.Name, "strokes", len(bmd[k].Strokes))
	}

	printBanner(w, "3D FORCE DIAGRAMS")
	printHeading(w, "GIRDERS:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Girder\tElements\tMax Mz (kN·m)\tMax Vy (kN)\t")
	for k := range bmd {
		_, mz := bmd[k].Diagram.Max()
		_, vy := sfd[k].Diagram.Max()
		fmt.Fprintf(tw, "  %s\t%d\t%.2f\t%.2f\t\n", bmd[k].Girder.Name, len(bmd[k].Girder.Elements), mz, vy)
	}
	tw.Flush()
	deck := model.Bounds().Size()
	fmt.Fprintf(w, "  Deck: %.2f m x %.2f m\n", deck.X, deck.Z)
	fmt.Fprintf(w, "  Scale: moment ×%g, shear ×%g\n\n", cfg.Scale.Moment, cfg.Scale.Shear)

	frame := model.Frame()
	bmdScene := spatial.NewScene("3D Bending Moment Diagram (BMD) - All Girders", diagram.Moment, frame, bmd)
	sfdScene := spatial.NewScene("3D Shear Force Diagram (SFD) - All Girders", diagram.Shear, frame, sfd)

	// the combined view drops hatching to stay readable
	bmdPlain, sfdPlain := *bmdScene, *sfdScene
	bmdPlain.Title, bmdPlain.Hatch = "3D Bending Moment Diagram", false
	sfdPlain.Title, sfdPlain.Hatch = "3D Shear Force Diagram", false

	views := []struct {
		base   string
		title  string
		width  vg.Length
		scenes []*spatial.Scene
	}{
		{task2BMD, bmdScene.Title, 12 * vg.Inch, []*spatial.Scene{bmdScene}},
		{task2SFD, sfdScene.Title, 12 * vg.Inch, []*spatial.Scene{sfdScene}},
		{task2Combined, "Combined 3D Force Diagrams - All Girders", 20 * vg.Inch, []*spatial.Scene{&bmdPlain, &sfdPlain}},
	}

	var files []string
	for _, v := range views {
		base := filepath.Join(cfg.Output, v.base)
		if err := spatial.ExportScenes(v.scenes, v.width, 8*vg.Inch, base+".png"); err != nil {
			return files, err
		}
		files = append(files, base+".png")

		fig, err := plotly.Scenes(v.title, v.scenes...)
		if err != nil {
			return files, err
		}
		if err := fig.Save(base + ".html"); err != nil {
			return files, err
		}
		files = append(files, base+".html")
	}

	printHeading(w, "OUTPUT FILES:")
	for _, f := range files {
		fmt.Fprintf(w, "  %s\n", f)
		slog.Info("wrote", "file", f)
	}
	fmt.Fprintln(w)
	return files, nil
}
