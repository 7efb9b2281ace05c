package monitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rustyeddy/sentry/perf"
)

// DailyMetrics computes and upserts the daily performance row for the
// day containing date. Recomputing the same day overwrites the row.
func (e *Engine) DailyMetrics(ctx context.Context, portfolioID string, date time.Time) (perf.Metric, error) {
	start, end := dayWindow(date)
	in, err := e.periodInputs(portfolioID, perf.Daily, start, end)
	if err != nil {
		return perf.Metric{}, err
	}

	m := perf.DailyMetric(in)
	if err := e.store.UpsertMetric(m); err != nil {
		return perf.Metric{}, fmt.Errorf("upsert daily metric: %w", err)
	}
	return m, nil
}

// WeeklyMetrics computes and upserts the row for the ISO week
// containing date.
func (e *Engine) WeeklyMetrics(ctx context.Context, portfolioID string, date time.Time) (perf.Metric, error) {
	start, end := weekWindow(date)
	in, err := e.periodInputs(portfolioID, perf.Weekly, start, end)
	if err != nil {
		return perf.Metric{}, err
	}

	m := perf.WeeklyMetric(in)
	if err := e.store.UpsertMetric(m); err != nil {
		return perf.Metric{}, fmt.Errorf("upsert weekly metric: %w", err)
	}
	return m, nil
}

// MonthlyMetrics computes and upserts the row for the calendar month
// containing date, adding the month's Sharpe ratio, max drawdown over
// the stored daily values, and alpha against the benchmark when its
// history covers the month.
func (e *Engine) MonthlyMetrics(ctx context.Context, portfolioID string, date time.Time) (perf.Metric, error) {
	start, end := monthWindow(date)
	in, err := e.periodInputs(portfolioID, perf.Monthly, start, end)
	if err != nil {
		return perf.Metric{}, err
	}

	inputs := perf.MonthlyInputs{
		PeriodInputs:   in,
		RiskFreeAnnual: e.riskFree,
	}

	dailies, err := e.store.MetricsByType(portfolioID, perf.Daily)
	if err != nil {
		return perf.Metric{}, fmt.Errorf("load daily metrics: %w", err)
	}
	for _, d := range dailies {
		if d.PeriodDate.Before(start) || !d.PeriodDate.Before(end) {
			continue
		}
		inputs.DailyReturns = append(inputs.DailyReturns, d.PeriodReturnPct)
		inputs.DailyValues = append(inputs.DailyValues, d.PortfolioValue)
	}

	if bench, err := e.BenchmarkHistory(); err != nil {
		log.Printf("benchmark history %s: %v", e.benchmark, err)
	} else if ret, ok := bench.BenchmarkReturn(start, end); ok {
		inputs.BenchmarkPct = &ret
	}

	m := perf.MonthlyMetric(inputs)
	if err := e.store.UpsertMetric(m); err != nil {
		return perf.Metric{}, fmt.Errorf("upsert monthly metric: %w", err)
	}
	return m, nil
}

// periodInputs assembles the shared aggregation inputs for one window.
// The period key is the window start date.
func (e *Engine) periodInputs(portfolioID string, pt perf.PeriodType, start, end time.Time) (perf.PeriodInputs, error) {
	snap, err := e.store.Portfolio(portfolioID)
	if err != nil {
		return perf.PeriodInputs{}, err
	}

	trades, err := e.store.TradesClosedBetween(portfolioID, start, end)
	if err != nil {
		return perf.PeriodInputs{}, fmt.Errorf("load trades: %w", err)
	}
	outcomes := make([]perf.TradeOutcome, len(trades))
	for i, t := range trades {
		outcomes[i] = t.Outcome()
	}

	prior, err := e.priorMetric(portfolioID, pt, start)
	if err != nil {
		return perf.PeriodInputs{}, err
	}

	return perf.PeriodInputs{
		PortfolioID:    portfolioID,
		Date:           start,
		Prior:          prior,
		Equity:         snap.Equity,
		InitialCapital: snap.InitialCapital,
		DrawdownPct:    snap.DrawdownPct,
		Trades:         outcomes,
	}, nil
}

// priorMetric finds the most recent stored metric of the same period
// type before the given date, nil when this is the first period.
func (e *Engine) priorMetric(portfolioID string, pt perf.PeriodType, before time.Time) (*perf.Metric, error) {
	list, err := e.store.MetricsByType(portfolioID, pt)
	if err != nil {
		return nil, fmt.Errorf("load %s metrics: %w", pt, err)
	}

	var prior *perf.Metric
	for i := range list {
		if list[i].PeriodDate.Before(before) {
			prior = &list[i]
		}
	}
	return prior, nil
}

func dayWindow(date time.Time) (time.Time, time.Time) {
	d := date.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// weekWindow returns the ISO week: Monday through the next Monday.
func weekWindow(date time.Time) (time.Time, time.Time) {
	start, _ := dayWindow(date)
	offset := (int(start.Weekday()) + 6) % 7
	start = start.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

func monthWindow(date time.Time) (time.Time, time.Time) {
	d := date.UTC()
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
