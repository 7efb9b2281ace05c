package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/sentry/risk"
)

// Config represents the complete monitoring configuration
type Config struct {
	Portfolio PortfolioConfig `json:"portfolio" yaml:"portfolio"`
	Risk      RiskConfig      `json:"risk" yaml:"risk"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Schedule  ScheduleConfig  `json:"schedule" yaml:"schedule"`
	Watchlist []string        `json:"watchlist,omitempty" yaml:"watchlist,omitempty"`
}

// PortfolioConfig identifies the monitored portfolio
type PortfolioConfig struct {
	ID             string  `json:"id" yaml:"id"`
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	Benchmark      string  `json:"benchmark,omitempty" yaml:"benchmark,omitempty"`
	RiskFreeRate   float64 `json:"risk_free_rate" yaml:"risk_free_rate"` // annual fraction, e.g. 0.05
}

// RiskConfig contains the severity thresholds and per-order limits
type RiskConfig struct {
	DrawdownWarnPct  float64 `json:"drawdown_warn_pct" yaml:"drawdown_warn_pct"`
	DrawdownHaltPct  float64 `json:"drawdown_halt_pct" yaml:"drawdown_halt_pct"`
	DailyLossWarnPct float64 `json:"daily_loss_warn_pct" yaml:"daily_loss_warn_pct"`
	DailyLossHaltPct float64 `json:"daily_loss_halt_pct" yaml:"daily_loss_halt_pct"`

	MaxPositionPct  float64 `json:"max_position_pct" yaml:"max_position_pct"`
	MaxPositions    int     `json:"max_positions" yaml:"max_positions"`
	MaxDailyLossPct float64 `json:"max_daily_loss_pct" yaml:"max_daily_loss_pct"`
	MaxDailyTrades  int     `json:"max_daily_trades" yaml:"max_daily_trades"`
	MinCashPct      float64 `json:"min_cash_pct,omitempty" yaml:"min_cash_pct,omitempty"`
}

// JournalConfig contains persistence parameters. The SENTRY_DB
// environment variable overrides DBPath.
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ScheduleConfig contains the monitoring cadences
type ScheduleConfig struct {
	SyncInterval  string `json:"sync_interval" yaml:"sync_interval"`   // e.g. "15m"
	CheckInterval string `json:"check_interval" yaml:"check_interval"` // e.g. "5m"
}

// ParseSyncInterval converts the sync cadence to a time.Duration
func (s ScheduleConfig) ParseSyncInterval() (time.Duration, error) {
	return time.ParseDuration(s.SyncInterval)
}

// ParseCheckInterval converts the check cadence to a time.Duration
func (s ScheduleConfig) ParseCheckInterval() (time.Duration, error) {
	return time.ParseDuration(s.CheckInterval)
}

// Thresholds maps the config onto the risk package's thresholds
func (r RiskConfig) Thresholds() risk.Thresholds {
	return risk.Thresholds{
		DrawdownWarnPct:  r.DrawdownWarnPct,
		DrawdownHaltPct:  r.DrawdownHaltPct,
		DailyLossWarnPct: r.DailyLossWarnPct,
		DailyLossHaltPct: r.DailyLossHaltPct,
	}
}

// Limits maps the config onto the trade validator's limits, keeping the
// package defaults for anything the file does not set
func (r RiskConfig) Limits() risk.Limits {
	lim := risk.DefaultLimits()
	if r.MaxPositionPct > 0 {
		lim.MaxPositionPct = r.MaxPositionPct
	}
	if r.MaxPositions > 0 {
		lim.MaxPositions = r.MaxPositions
	}
	if r.MaxDailyLossPct > 0 {
		lim.MaxDailyLossPct = r.MaxDailyLossPct
	}
	if r.MaxDailyTrades > 0 {
		lim.MaxDailyTrades = r.MaxDailyTrades
	}
	lim.HaltDrawdownPct = r.DrawdownHaltPct
	lim.MinCashPct = r.MinCashPct
	return lim
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if db := os.Getenv("SENTRY_DB"); db != "" {
		cfg.Journal.DBPath = db
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Portfolio.ID == "" {
		return fmt.Errorf("portfolio.id is required")
	}
	if c.Portfolio.InitialCapital <= 0 {
		return fmt.Errorf("portfolio.initial_capital must be positive")
	}
	if c.Portfolio.RiskFreeRate < 0 || c.Portfolio.RiskFreeRate > 1 {
		return fmt.Errorf("portfolio.risk_free_rate must be a fraction between 0 and 1")
	}
	if c.Risk.DrawdownWarnPct >= 0 || c.Risk.DrawdownHaltPct >= 0 {
		return fmt.Errorf("risk drawdown thresholds must be negative percentages")
	}
	if c.Risk.DrawdownHaltPct >= c.Risk.DrawdownWarnPct {
		return fmt.Errorf("risk.drawdown_halt_pct must be below risk.drawdown_warn_pct")
	}
	if c.Risk.DailyLossWarnPct >= 0 || c.Risk.DailyLossHaltPct >= 0 {
		return fmt.Errorf("risk daily-loss thresholds must be negative percentages")
	}
	if c.Risk.DailyLossHaltPct >= c.Risk.DailyLossWarnPct {
		return fmt.Errorf("risk.daily_loss_halt_pct must be below risk.daily_loss_warn_pct")
	}
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if _, err := c.Schedule.ParseSyncInterval(); err != nil {
		return fmt.Errorf("schedule.sync_interval: %w", err)
	}
	if _, err := c.Schedule.ParseCheckInterval(); err != nil {
		return fmt.Errorf("schedule.check_interval: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	th := risk.DefaultThresholds()
	lim := risk.DefaultLimits()

	return &Config{
		Portfolio: PortfolioConfig{
			ID:             "MAIN",
			InitialCapital: 100000,
			Benchmark:      "SPY",
			RiskFreeRate:   0.05,
		},
		Risk: RiskConfig{
			DrawdownWarnPct:  th.DrawdownWarnPct,
			DrawdownHaltPct:  th.DrawdownHaltPct,
			DailyLossWarnPct: th.DailyLossWarnPct,
			DailyLossHaltPct: th.DailyLossHaltPct,
			MaxPositionPct:   lim.MaxPositionPct,
			MaxPositions:     lim.MaxPositions,
			MaxDailyLossPct:  lim.MaxDailyLossPct,
			MaxDailyTrades:   lim.MaxDailyTrades,
		},
		Journal: JournalConfig{
			DBPath: "./sentry.db",
		},
		Schedule: ScheduleConfig{
			SyncInterval:  "15m",
			CheckInterval: "5m",
		},
		Watchlist: []string{"SPY"},
	}
}
