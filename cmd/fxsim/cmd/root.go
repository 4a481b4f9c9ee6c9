package cmd

import (
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "fxsim",
	Short: "Prediction-driven FX backtesting engine",
	Long: `Fxsim replays historical price bars through a cost-aware order ledger
driven by multi-horizon price predictions.

It provides tools for:
  - Simulating market execution with spread, slippage, commission and swap
  - Converting price predictions into entry signals with RR-based sizing
  - Early-close policies evaluated against predicted extremes
  - Journaling trades, equity curves and run summaries to SQLite or CSV`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
