package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	sync, err := cfg.Schedule.ParseSyncInterval()
	assert.NoError(t, err)
	assert.Equal(t, 15*time.Minute, sync)
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing_id", func(c *Config) { c.Portfolio.ID = "" }},
		{"zero_capital", func(c *Config) { c.Portfolio.InitialCapital = 0 }},
		{"risk_free_over_one", func(c *Config) { c.Portfolio.RiskFreeRate = 5 }},
		{"positive_drawdown_warn", func(c *Config) { c.Risk.DrawdownWarnPct = 15 }},
		{"halt_above_warn", func(c *Config) { c.Risk.DrawdownHaltPct = -10 }},
		{"positive_daily_halt", func(c *Config) { c.Risk.DailyLossHaltPct = 5 }},
		{"missing_db", func(c *Config) { c.Journal.DBPath = "" }},
		{"bad_interval", func(c *Config) { c.Schedule.SyncInterval = "often" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentry.yaml")

	cfg := Default()
	cfg.Portfolio.ID = "ALGO-7"
	cfg.Watchlist = []string{"SPY", "QQQ"}
	assert.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "ALGO-7", got.Portfolio.ID)
	assert.Equal(t, []string{"SPY", "QQQ"}, got.Watchlist)
	assert.Equal(t, cfg.Risk.DrawdownHaltPct, got.Risk.DrawdownHaltPct)
}

func TestLoadJSONFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentry.json")

	cfg := Default()
	assert.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, cfg.Portfolio.ID, got.Portfolio.ID)
}

func TestEnvOverridesDBPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentry.yaml")
	assert.NoError(t, Default().SaveToFile(path))

	os.Setenv("SENTRY_DB", "/tmp/override.db")
	defer os.Unsetenv("SENTRY_DB")

	got, err := LoadFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", got.Journal.DBPath)
}

func TestLimitsKeepDefaultsForUnsetFields(t *testing.T) {
	cfg := Default()
	cfg.Risk.MaxPositions = 0

	lim := cfg.Risk.Limits()
	assert.Equal(t, 10, lim.MaxPositions)
	assert.Equal(t, cfg.Risk.DrawdownHaltPct, lim.HaltDrawdownPct)
}
