package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/sentry/config"
	"github.com/rustyeddy/sentry/journal"
	"github.com/rustyeddy/sentry/monitor"
	"github.com/rustyeddy/sentry/perf"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <daily|weekly|monthly>",
	Short: "List stored performance metrics",
	Long: `List the stored performance rows for one period type.

Examples:
  sentry metrics daily
  sentry metrics monthly -d ./sentry.db -p MAIN`,
	Args: cobra.ExactArgs(1),
	RunE: runMetrics,
}

var metricsComputeCmd = &cobra.Command{
	Use:   "compute <YYYY-MM-DD>",
	Short: "Compute the metric rows covering a date",
	Long: `Compute and store the daily, weekly, and monthly rows for the
period windows containing the given date. Recomputing a period
overwrites its row.

Example:
  sentry metrics compute 2024-01-15 -f sentry.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runMetricsCompute,
}

var (
	metricsDBPath     string
	metricsPortfolio  string
	metricsConfigPath string
)

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.AddCommand(metricsComputeCmd)

	metricsCmd.PersistentFlags().StringVarP(&metricsDBPath, "db", "d", "./sentry.db", "path to SQLite journal DB")
	metricsCmd.PersistentFlags().StringVarP(&metricsPortfolio, "portfolio", "p", "MAIN", "portfolio id")
	metricsComputeCmd.Flags().StringVarP(&metricsConfigPath, "config", "f", "", "path to config file (required)")
	metricsComputeCmd.MarkFlagRequired("config")
}

func runMetrics(cmd *cobra.Command, args []string) error {
	pt := perf.PeriodType(args[0])
	switch pt {
	case perf.Daily, perf.Weekly, perf.Monthly:
	default:
		return fmt.Errorf("unknown period type %q", args[0])
	}

	store, err := journal.NewSQLite(metricsDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	list, err := store.MetricsByType(metricsPortfolio, pt)
	if err != nil {
		return fmt.Errorf("query metrics: %w", err)
	}
	if len(list) == 0 {
		fmt.Printf("No %s metrics for %s\n", pt, metricsPortfolio)
		return nil
	}

	fmt.Printf("%-12s %12s %8s %8s %8s %7s %7s %7s\n",
		"period", "value", "ret%", "total%", "maxdd%", "sharpe", "win%", "trades")
	for _, m := range list {
		fmt.Printf("%-12s %12.2f %8.2f %8.2f %8.2f %7s %7s %7d\n",
			m.PeriodDate.Format("2006-01-02"),
			m.PortfolioValue, m.PeriodReturnPct, m.TotalReturnPct, m.MaxDrawdownPct,
			fmtOpt(m.SharpeRatio), fmtOpt(m.WinRate), m.TotalTrades)
	}
	return nil
}

// fmtOpt renders an optional stat, "-" when there was no basis for it.
func fmtOpt(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func runMetricsCompute(cmd *cobra.Command, args []string) error {
	date, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	cfg, err := config.LoadFromFile(metricsConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	engine := monitor.NewEngine(store, monitor.Options{
		InitialCapital: cfg.Portfolio.InitialCapital,
		Benchmark:      cfg.Portfolio.Benchmark,
		RiskFreeRate:   cfg.Portfolio.RiskFreeRate,
	})

	ctx := context.Background()
	id := cfg.Portfolio.ID

	d, err := engine.DailyMetrics(ctx, id, date)
	if err != nil {
		return fmt.Errorf("daily: %w", err)
	}
	w, err := engine.WeeklyMetrics(ctx, id, date)
	if err != nil {
		return fmt.Errorf("weekly: %w", err)
	}
	m, err := engine.MonthlyMetrics(ctx, id, date)
	if err != nil {
		return fmt.Errorf("monthly: %w", err)
	}

	fmt.Printf("✓ daily   %s  return %.2f%%\n", d.PeriodDate.Format("2006-01-02"), d.PeriodReturnPct)
	fmt.Printf("✓ weekly  %s  return %.2f%%\n", w.PeriodDate.Format("2006-01-02"), w.PeriodReturnPct)
	fmt.Printf("✓ monthly %s  return %.2f%%  sharpe %s  alpha %s\n",
		m.PeriodDate.Format("2006-01-02"), m.PeriodReturnPct, fmtOpt(m.SharpeRatio), fmtOpt(m.AlphaPct))
	return nil
}
