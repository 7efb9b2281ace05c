package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/sentry/config"
	"github.com/rustyeddy/sentry/journal"
	"github.com/rustyeddy/sentry/monitor"
)

var checkCmd = &cobra.Command{
	Use:   "check <symbol>",
	Short: "Validate a proposed trade against all risk rules",
	Long: `Run a proposed order through every risk rule and report each
violation, not just the first.

The portfolio side of the evaluation (equity, cash, drawdown, day-trade
count) comes from the stored snapshot; the order side from flags.

Example:
  sentry check AAPL -f sentry.yaml --value 5000 --price 150`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var (
	checkConfigPath  string
	checkValue       float64
	checkPrice       float64
	checkPositions   int
	checkTradesToday int
	checkPending     []string
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkConfigPath, "config", "f", "", "path to config file (required)")
	checkCmd.Flags().Float64Var(&checkValue, "value", 0, "order value in dollars (required)")
	checkCmd.Flags().Float64Var(&checkPrice, "price", 0, "order price per share")
	checkCmd.Flags().IntVar(&checkPositions, "positions", 0, "currently open position count")
	checkCmd.Flags().IntVar(&checkTradesToday, "trades-today", 0, "trades already executed today")
	checkCmd.Flags().StringSliceVar(&checkPending, "pending", nil, "symbols with pending orders")
	checkCmd.MarkFlagRequired("config")
	checkCmd.MarkFlagRequired("value")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(checkConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	engine := monitor.NewEngine(store, monitor.Options{
		Thresholds:     cfg.Risk.Thresholds(),
		Limits:         cfg.Risk.Limits(),
		InitialCapital: cfg.Portfolio.InitialCapital,
	})

	res, err := engine.ValidateTrade(context.Background(), cfg.Portfolio.ID, monitor.OrderIntent{
		Symbol:         args[0],
		Value:          checkValue,
		Price:          checkPrice,
		PositionCount:  checkPositions,
		TradesToday:    checkTradesToday,
		PendingSymbols: checkPending,
	})
	if err != nil {
		return fmt.Errorf("validate trade: %w", err)
	}

	if res.Approved {
		fmt.Printf("✓ APPROVED: %s $%.2f\n", args[0], checkValue)
	} else {
		fmt.Printf("✗ REJECTED: %s $%.2f\n", args[0], checkValue)
		for _, v := range res.Violations {
			fmt.Printf("  [%s] %s\n", v.Code, v.Msg)
		}
	}
	for _, w := range res.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	return nil
}
