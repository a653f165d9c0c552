package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gobfd/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gobfd",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gobfd v%s\n", version.Version)
		fmt.Println("Bridge Force Diagram Tool")
		fmt.Printf("Build: %s (commit %s)\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
