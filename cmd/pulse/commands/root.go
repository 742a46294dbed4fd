package commands

import (
	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "StockPulse - financial and sentiment dashboard backend",
	Long: `StockPulse backend CLI.

Collects fundamentals from market data sources, stores analyst
sentiment documents, and serves the enriched dashboard API.

Usage:
  go run ./cmd/pulse [command]

Examples:
  go run ./cmd/pulse api
  go run ./cmd/pulse fetch
  go run ./cmd/pulse scheduler`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
