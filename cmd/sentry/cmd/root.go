package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sentry",
	Short: "Scheduled portfolio risk and performance monitoring",
	Long: `Sentry watches a trading portfolio on a fixed schedule.

It provides tools for:
  - Syncing live account state and classifying drawdown/daily-loss risk
  - Halting trading when loss limits are breached (manual resume only)
  - Pre-trade validation against position, cash, and PDT limits
  - Daily, weekly, and monthly performance metrics with Sharpe and alpha
  - Price-bar ingestion with RSI, SMA/EMA, and MACD indicators

Complete documentation is available at https://github.com/rustyeddy/sentry`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
