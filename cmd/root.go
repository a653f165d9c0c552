package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gobfd/internal/config"
	"github.com/alexiusacademia/gobfd/internal/results"
	"github.com/alexiusacademia/gobfd/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile     string
	resultsPath string
	outputDir   string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "gobfd",
	Short: "Bridge Force Diagram Tool",
	Long: `gobfd - Go Bridge Force Diagrams

A CLI tool that turns the element end forces of a grillage bridge
analysis into bending moment and shear force diagrams.

This tool helps structural engineers:
  - Find the critical elements for every force component
  - Draw the BMD and SFD of a girder (PNG, SVG and interactive HTML)
  - Draw the diagrams of all girders over the 3D bridge frame
  - Export the forces to CSV and Excel and summarise them in a PDF report

Settings are read from gobfd.yaml (or --config), a .env file and
GOBFD_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gobfd v%-49s║\n", version.Version)
		fmt.Println("  ║   Go Bridge Force Diagrams                                ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Bending moment and shear force diagrams for grillage bridges.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Critical element search and top-N force tables")
		fmt.Println("    • 2D BMD/SFD of any element chain with hatching")
		fmt.Println("    • 3D diagrams of all girders over the bridge frame")
		fmt.Println("    • CSV, Excel, interactive HTML and PDF outputs")
		fmt.Println()
		fmt.Println("  Use 'gobfd --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./gobfd.yaml)")
	rootCmd.PersistentFlags().StringVarP(&resultsPath, "results", "r", "", "Element force results (.csv or .xlsx)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

// loadConfig reads the settings and applies the global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if resultsPath != "" {
		cfg.Results = resultsPath
	}
	if outputDir != "" {
		cfg.Output = outputDir
	}
	slog.Debug("configuration", "file", cfgFile, "results", cfg.Results, "output", cfg.Output, "chain", cfg.Chain)
	return cfg, nil
}

// loadResults reads the force dataset named in the settings
func loadResults(cfg *config.Config) (*results.Table, error) {
	if cfg.Results == "" {
		return nil, fmt.Errorf("no results dataset: use --results or set results in the config file")
	}
	tbl, err := results.Load(cfg.Results)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded results", "path", cfg.Results, "elements", tbl.Len(), "components", len(tbl.Components()))
	return tbl, nil
}

// setup loads the settings and the dataset and creates the output directory
func setup() (*config.Config, *results.Table, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	tbl, err := loadResults(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return nil, nil, err
	}
	return cfg, tbl, nil
}

var heading = color.New(color.FgCyan, color.Bold)

// printHeading prints a section title with the rule used throughout the reports
func printHeading(w io.Writer, title string) {
	heading.Fprintln(w, title)
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────────")
}

// printBanner prints the double-ruled title of a command report
func printBanner(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	heading.Fprintf(w, "     %s\n", title)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w)
}
