package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/sentry/journal"
	"github.com/rustyeddy/sentry/monitor"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored portfolio snapshot",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Clear a trading halt",
	Long: `Clear the trading-paused flag on a halted portfolio.

A halt never clears on its own, even after the account recovers; this
command is the only way to resume trading. The resume is recorded in
the risk audit trail with the operator name.

Example:
  sentry resume --operator alice`,
	Args: cobra.NoArgs,
	RunE: runResume,
}

var (
	statusDBPath    string
	statusPortfolio string
	resumeOperator  string
)

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resumeCmd)

	for _, c := range []*cobra.Command{statusCmd, resumeCmd} {
		c.Flags().StringVarP(&statusDBPath, "db", "d", "./sentry.db", "path to SQLite journal DB")
		c.Flags().StringVarP(&statusPortfolio, "portfolio", "p", "MAIN", "portfolio id")
	}
	resumeCmd.Flags().StringVar(&resumeOperator, "operator", "", "who is resuming (required)")
	resumeCmd.MarkFlagRequired("operator")
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := journal.NewSQLite(statusDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	snap, err := store.Portfolio(statusPortfolio)
	if err != nil {
		return fmt.Errorf("load portfolio: %w", err)
	}

	fmt.Printf("Portfolio %s\n", snap.PortfolioID)
	fmt.Printf("  Equity:    $%.2f (peak $%.2f)\n", snap.Equity, snap.PeakValue)
	fmt.Printf("  Cash:      $%.2f\n", snap.Cash)
	fmt.Printf("  Drawdown:  %.2f%%\n", snap.DrawdownPct)
	if snap.TradingPaused {
		fmt.Printf("  HALTED:    %s\n", snap.PausedReason)
	} else {
		fmt.Printf("  Trading:   active\n")
	}
	fmt.Printf("  Updated:   %s\n", snap.UpdatedAt.Format("2006-01-02 15:04:05 MST"))

	events, err := store.RiskEvents(statusPortfolio, 5)
	if err != nil {
		return fmt.Errorf("load risk events: %w", err)
	}
	if len(events) > 0 {
		fmt.Println("\nRecent risk events:")
		for _, e := range events {
			fmt.Printf("  %s  %-7s  %s\n", e.Time.Format("2006-01-02 15:04"), e.Severity, e.Reason)
		}
	}
	return nil
}

func runResume(cmd *cobra.Command, args []string) error {
	store, err := journal.NewSQLite(statusDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	engine := monitor.NewEngine(store, monitor.Options{})
	if err := engine.Resume(context.Background(), statusPortfolio, resumeOperator); err != nil {
		return fmt.Errorf("resume: %w", err)
	}

	fmt.Printf("✓ Trading resumed for %s\n", statusPortfolio)
	return nil
}
