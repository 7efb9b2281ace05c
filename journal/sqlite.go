package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/sentry/indicators"
	"github.com/rustyeddy/sentry/market"
	"github.com/rustyeddy/sentry/perf"
)

// dateKey is the stored form of a metric period date.
const dateKey = "2006-01-02"

// SQLite is the Store implementation backed by a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at path and ensures
// the schema exists.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// SavePortfolio rewrites the portfolio's snapshot row.
func (j *SQLite) SavePortfolio(p PortfolioSnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO portfolios
		(portfolio_id, equity, cash, buying_power, peak_value, drawdown_pct,
		 initial_capital, trading_paused, paused_reason, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(portfolio_id) DO UPDATE SET
		 equity=excluded.equity,
		 cash=excluded.cash,
		 buying_power=excluded.buying_power,
		 peak_value=excluded.peak_value,
		 drawdown_pct=excluded.drawdown_pct,
		 initial_capital=excluded.initial_capital,
		 trading_paused=excluded.trading_paused,
		 paused_reason=excluded.paused_reason,
		 updated_at=excluded.updated_at`,
		p.PortfolioID, p.Equity, p.Cash, p.BuyingPower, p.PeakValue, p.DrawdownPct,
		p.InitialCapital, p.TradingPaused, p.PausedReason, p.UpdatedAt,
	)
	return err
}

// UpsertMetric writes the metric row, overwriting any previous row for
// the same (portfolio, period type, period date) key.
func (j *SQLite) UpsertMetric(m perf.Metric) error {
	_, err := j.db.Exec(`
		INSERT INTO metrics
		(portfolio_id, period_type, period_date, portfolio_value,
		 period_return_pct, total_return_pct, max_drawdown_pct,
		 sharpe_ratio, win_rate, alpha_pct,
		 total_trades, winning_trades, losing_trades)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(portfolio_id, period_type, period_date) DO UPDATE SET
		 portfolio_value=excluded.portfolio_value,
		 period_return_pct=excluded.period_return_pct,
		 total_return_pct=excluded.total_return_pct,
		 max_drawdown_pct=excluded.max_drawdown_pct,
		 sharpe_ratio=excluded.sharpe_ratio,
		 win_rate=excluded.win_rate,
		 alpha_pct=excluded.alpha_pct,
		 total_trades=excluded.total_trades,
		 winning_trades=excluded.winning_trades,
		 losing_trades=excluded.losing_trades`,
		m.PortfolioID, string(m.PeriodType), m.PeriodDate.UTC().Format(dateKey),
		m.PortfolioValue, m.PeriodReturnPct, m.TotalReturnPct, m.MaxDrawdownPct,
		nullable(m.SharpeRatio), nullable(m.WinRate), nullable(m.AlphaPct),
		m.TotalTrades, m.WinningTrades, m.LosingTrades,
	)
	return err
}

// RecordTrade appends a closed trade.
func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, portfolio_id, symbol, quantity, entry_price, exit_price,
		 realized_pl, realized_pl_pct, holding_days, winner, open_time, close_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.PortfolioID, t.Symbol, t.Quantity, t.EntryPrice, t.ExitPrice,
		t.RealizedPL, t.RealizedPLPct, t.HoldingDays, t.Winner, t.OpenTime, t.CloseTime,
	)
	return err
}

// RecordRiskEvent appends an audit entry.
func (j *SQLite) RecordRiskEvent(e RiskEvent) error {
	_, err := j.db.Exec(`
		INSERT INTO risk_events
		(id, portfolio_id, severity, track, reason, equity, peak_value, drawdown_pct, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.PortfolioID, e.Severity, e.Track, e.Reason,
		e.Equity, e.PeakValue, e.DrawdownPct, e.Time,
	)
	return err
}

// SaveBar persists a price bar with its indicator set. Re-ingesting the
// same (symbol, time) bar is a no-op: bars and their indicators are
// immutable once recorded.
func (j *SQLite) SaveBar(symbol string, p market.PricePoint, set indicators.Set) error {
	_, err := j.db.Exec(`
		INSERT OR IGNORE INTO prices
		(symbol, time, open, high, low, close, volume,
		 rsi14, sma20, sma50, sma200, ema12, ema26, macd, macd_signal, macd_hist)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		symbol, p.Time, p.Open, p.High, p.Low, p.Close, p.Volume,
		nullable(set.RSI14), nullable(set.SMA20), nullable(set.SMA50), nullable(set.SMA200),
		nullable(set.EMA12), nullable(set.EMA26),
		nullable(set.MACD), nullable(set.MACDSignal), nullable(set.MACDHistogram),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func optional(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func parseDateKey(s string) time.Time {
	t, err := time.Parse(dateKey, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
