package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/sentry/config"
	"github.com/rustyeddy/sentry/journal"
	"github.com/rustyeddy/sentry/monitor"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the monitoring scheduler from a config file",
	Long: `Run the portfolio monitor on its configured schedule.

Every sync interval the monitor reads live account state, classifies
risk, persists the snapshot, and ingests watchlist bars. Every check
interval it runs the lightweight drawdown check. Daily, weekly, and
monthly metric rows are computed when their period closes.

Account state is read from a JSON file and bars from per-symbol CSV
files, so any broker export can feed the monitor.

Example:
  sentry run -f sentry.yaml --account account.json --bars ./bars`,
	RunE: runRun,
}

var (
	runConfigPath  string
	runAccountPath string
	runBarsDir     string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().StringVar(&runAccountPath, "account", "account.json", "path to account state JSON")
	runCmd.Flags().StringVar(&runBarsDir, "bars", "", "directory of per-symbol CSV bar files")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	// .env may carry SENTRY_DB; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	engine := monitor.NewEngine(store, monitor.Options{
		Accounts:       monitor.FileAccountSource{Path: runAccountPath},
		MarketData:     monitor.DirMarketData{Dir: runBarsDir},
		Thresholds:     cfg.Risk.Thresholds(),
		Limits:         cfg.Risk.Limits(),
		InitialCapital: cfg.Portfolio.InitialCapital,
		Benchmark:      cfg.Portfolio.Benchmark,
		RiskFreeRate:   cfg.Portfolio.RiskFreeRate,
	})

	syncEvery, err := cfg.Schedule.ParseSyncInterval()
	if err != nil {
		return fmt.Errorf("sync interval: %w", err)
	}
	checkEvery, err := cfg.Schedule.ParseCheckInterval()
	if err != nil {
		return fmt.Errorf("check interval: %w", err)
	}

	fmt.Printf("Monitoring %s (sync %s, check %s, db %s)\n",
		cfg.Portfolio.ID, syncEvery, checkEvery, cfg.Journal.DBPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tick(ctx, engine, cfg)

	syncTicker := time.NewTicker(syncEvery)
	defer syncTicker.Stop()
	checkTicker := time.NewTicker(checkEvery)
	defer checkTicker.Stop()

	lastDay := time.Now().UTC().Truncate(24 * time.Hour)

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nShutting down")
			return nil

		case <-syncTicker.C:
			tick(ctx, engine, cfg)

			now := time.Now().UTC()
			if day := now.Truncate(24 * time.Hour); day.After(lastDay) {
				rollover(ctx, engine, cfg.Portfolio.ID, lastDay)
				lastDay = day
			}

		case <-checkTicker.C:
			if _, err := engine.CheckDrawdown(ctx, cfg.Portfolio.ID); err != nil {
				log.Printf("drawdown check: %v", err)
			}
		}
	}
}

// tick is one full sync cycle: account sync plus bar ingestion.
func tick(ctx context.Context, engine *monitor.Engine, cfg *config.Config) {
	a, err := engine.SyncAccount(ctx, cfg.Portfolio.ID)
	if err != nil {
		log.Printf("account sync: %v", err)
	} else {
		log.Printf("%s %s drawdown %.2f%% daily %.2f%%",
			cfg.Portfolio.ID, a.Severity, a.DrawdownPct, a.DailyLossPct)
	}

	if len(cfg.Watchlist) > 0 {
		engine.IngestBars(ctx, cfg.Watchlist)
	}
}

// rollover closes out the just-ended day, and its week and month when
// that day was their last.
func rollover(ctx context.Context, engine *monitor.Engine, portfolioID string, closed time.Time) {
	if _, err := engine.DailyMetrics(ctx, portfolioID, closed); err != nil {
		log.Printf("daily metrics: %v", err)
	}
	if closed.Weekday() == time.Sunday {
		if _, err := engine.WeeklyMetrics(ctx, portfolioID, closed); err != nil {
			log.Printf("weekly metrics: %v", err)
		}
	}
	if closed.AddDate(0, 0, 1).Day() == 1 {
		if _, err := engine.MonthlyMetrics(ctx, portfolioID, closed); err != nil {
			log.Printf("monthly metrics: %v", err)
		}
	}
}
