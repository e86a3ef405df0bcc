package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tearsheet",
	Short: "Trading performance analytics over daily strategy PnL",
	Long: `Tearsheet CLI

Loads daily PnL tables per strategy and serves equity curves, drawdowns,
risk metrics and rolling/seasonal diagnostics.

Usage:
  go run ./cmd/tearsheet [command]

Examples:
  go run ./cmd/tearsheet api
  go run ./cmd/tearsheet report Trend --range YTD
  go run ./cmd/tearsheet strategies`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
