package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/sentry/indicators"
	"github.com/rustyeddy/sentry/journal"
)

var indicatorsCmd = &cobra.Command{
	Use:   "indicators <symbol>",
	Short: "Compute indicators over a symbol's stored bars",
	Long: `Compute RSI, moving averages, and MACD over the stored price
history of a symbol and print the values as of the latest bar.

Example:
  sentry indicators AAPL -d ./sentry.db`,
	Args: cobra.ExactArgs(1),
	RunE: runIndicators,
}

var indicatorsDBPath string

func init() {
	rootCmd.AddCommand(indicatorsCmd)

	indicatorsCmd.Flags().StringVarP(&indicatorsDBPath, "db", "d", "./sentry.db", "path to SQLite journal DB")
}

func runIndicators(cmd *cobra.Command, args []string) error {
	store, err := journal.NewSQLite(indicatorsDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	symbol := args[0]
	history, err := store.PriceHistory(symbol, 0)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	last, ok := history.Last()
	if !ok {
		return fmt.Errorf("no bars stored for %s", symbol)
	}

	set, err := indicators.Compute(history)
	if err != nil {
		return fmt.Errorf("compute indicators: %w", err)
	}

	fmt.Printf("%s as of %s (close %.2f, %d bars)\n",
		symbol, last.Time.Format("2006-01-02"), last.Close, len(history.Points))
	fmt.Printf("  RSI(14):   %s\n", fmtOpt(set.RSI14))
	fmt.Printf("  SMA 20/50/200: %s / %s / %s\n",
		fmtOpt(set.SMA20), fmtOpt(set.SMA50), fmtOpt(set.SMA200))
	fmt.Printf("  EMA 12/26: %s / %s\n", fmtOpt(set.EMA12), fmtOpt(set.EMA26))
	fmt.Printf("  MACD:      %s  signal %s  hist %s\n",
		fmtOpt(set.MACD), fmtOpt(set.MACDSignal), fmtOpt(set.MACDHistogram))
	return nil
}
