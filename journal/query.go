package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rustyeddy/sentry/market"
	"github.com/rustyeddy/sentry/perf"
)

// Portfolio returns the stored snapshot, or ErrNotFound.
func (j *SQLite) Portfolio(portfolioID string) (PortfolioSnapshot, error) {
	var p PortfolioSnapshot

	row := j.db.QueryRow(`
		SELECT portfolio_id, equity, cash, buying_power, peak_value, drawdown_pct,
		       initial_capital, trading_paused, paused_reason, updated_at
		FROM portfolios
		WHERE portfolio_id = ?`, portfolioID)

	err := row.Scan(
		&p.PortfolioID,
		&p.Equity,
		&p.Cash,
		&p.BuyingPower,
		&p.PeakValue,
		&p.DrawdownPct,
		&p.InitialCapital,
		&p.TradingPaused,
		&p.PausedReason,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return PortfolioSnapshot{}, fmt.Errorf("portfolio %q: %w", portfolioID, ErrNotFound)
		}
		return PortfolioSnapshot{}, err
	}
	return p, nil
}

// Metric returns the stored metric for the period key, or ErrNotFound.
func (j *SQLite) Metric(portfolioID string, pt perf.PeriodType, date time.Time) (perf.Metric, error) {
	row := j.db.QueryRow(metricSelect+`
		WHERE portfolio_id = ? AND period_type = ? AND period_date = ?`,
		portfolioID, string(pt), date.UTC().Format(dateKey))

	m, err := scanMetric(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return perf.Metric{}, fmt.Errorf("metric %s/%s/%s: %w",
				portfolioID, pt, date.UTC().Format(dateKey), ErrNotFound)
		}
		return perf.Metric{}, err
	}
	return m, nil
}

// MetricsByType returns all stored metrics of one period type in
// chronological order.
func (j *SQLite) MetricsByType(portfolioID string, pt perf.PeriodType) ([]perf.Metric, error) {
	rows, err := j.db.Query(metricSelect+`
		WHERE portfolio_id = ? AND period_type = ?
		ORDER BY period_date ASC`, portfolioID, string(pt))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []perf.Metric
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// TradesClosedBetween returns trades whose close_time is within
// [start, end).
func (j *SQLite) TradesClosedBetween(portfolioID string, start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, portfolio_id, symbol, quantity, entry_price, exit_price,
		       realized_pl, realized_pl_pct, holding_days, winner, open_time, close_time
		FROM trades
		WHERE portfolio_id = ? AND close_time >= ? AND close_time < ?
		ORDER BY close_time ASC`, portfolioID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID,
			&rec.PortfolioID,
			&rec.Symbol,
			&rec.Quantity,
			&rec.EntryPrice,
			&rec.ExitPrice,
			&rec.RealizedPL,
			&rec.RealizedPLPct,
			&rec.HoldingDays,
			&rec.Winner,
			&rec.OpenTime,
			&rec.CloseTime,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DayTradeCount counts trades opened and closed on the same calendar
// day with close_time at or after since. The pattern-day-trader rule
// feeds it a since of five calendar days back, a slightly wider net
// than FINRA's five business days.
func (j *SQLite) DayTradeCount(portfolioID string, since time.Time) (int, error) {
	var n int
	err := j.db.QueryRow(`
		SELECT COUNT(*)
		FROM trades
		WHERE portfolio_id = ? AND close_time >= ?
		  AND date(open_time) = date(close_time)`, portfolioID, since).Scan(&n)
	return n, err
}

// RiskEvents returns the most recent audit entries, newest first.
func (j *SQLite) RiskEvents(portfolioID string, limit int) ([]RiskEvent, error) {
	rows, err := j.db.Query(`
		SELECT id, portfolio_id, severity, track, reason, equity, peak_value, drawdown_pct, time
		FROM risk_events
		WHERE portfolio_id = ?
		ORDER BY time DESC
		LIMIT ?`, portfolioID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RiskEvent
	for rows.Next() {
		var e RiskEvent
		if err := rows.Scan(
			&e.ID,
			&e.PortfolioID,
			&e.Severity,
			&e.Track,
			&e.Reason,
			&e.Equity,
			&e.PeakValue,
			&e.DrawdownPct,
			&e.Time,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PriceHistory returns the most recent bars for the symbol in
// chronological order. limit <= 0 returns the full history.
func (j *SQLite) PriceHistory(symbol string, limit int) (market.History, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.Query(`
		SELECT time, open, high, low, close, volume
		FROM (
			SELECT time, open, high, low, close, volume
			FROM prices
			WHERE symbol = ?
			ORDER BY time DESC
			LIMIT ?
		)
		ORDER BY time ASC`, symbol, limit)
	if err != nil {
		return market.History{}, err
	}
	defer rows.Close()

	h := market.History{Symbol: symbol}
	for rows.Next() {
		var p market.PricePoint
		if err := rows.Scan(&p.Time, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume); err != nil {
			return market.History{}, err
		}
		h.Points = append(h.Points, p)
	}
	if err := rows.Err(); err != nil {
		return market.History{}, err
	}
	return h, nil
}

const metricSelect = `
	SELECT portfolio_id, period_type, period_date, portfolio_value,
	       period_return_pct, total_return_pct, max_drawdown_pct,
	       sharpe_ratio, win_rate, alpha_pct,
	       total_trades, winning_trades, losing_trades
	FROM metrics`

type scanner interface {
	Scan(dest ...any) error
}

func scanMetric(row scanner) (perf.Metric, error) {
	var (
		m           perf.Metric
		periodType  string
		periodDate  string
		sharpe      sql.NullFloat64
		winRate     sql.NullFloat64
		alpha       sql.NullFloat64
	)

	err := row.Scan(
		&m.PortfolioID,
		&periodType,
		&periodDate,
		&m.PortfolioValue,
		&m.PeriodReturnPct,
		&m.TotalReturnPct,
		&m.MaxDrawdownPct,
		&sharpe,
		&winRate,
		&alpha,
		&m.TotalTrades,
		&m.WinningTrades,
		&m.LosingTrades,
	)
	if err != nil {
		return perf.Metric{}, err
	}

	m.PeriodType = perf.PeriodType(periodType)
	m.PeriodDate = parseDateKey(periodDate)
	m.SharpeRatio = optional(sharpe)
	m.WinRate = optional(winRate)
	m.AlphaPct = optional(alpha)
	return m, nil
}
