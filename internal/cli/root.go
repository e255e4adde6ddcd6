// Package cli implements the lka command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "lka",
	Short: "Lookahead - construction schedule risk analysis",
	Long: `Lookahead (lka) analyzes a construction project schedule over a rolling
look-ahead window and reports resource conflicts, predecessor delays,
weather exposure, submittal/RFI deadlines, and inspection risk.

It reads a project snapshot file, runs one stateless analysis pass, and
renders a prioritized, explainable risk report.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lka %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
