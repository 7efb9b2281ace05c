package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/sentry/indicators"
	"github.com/rustyeddy/sentry/market"
	"github.com/rustyeddy/sentry/perf"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j
}

func TestPortfolioRoundTrip(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)

	snap := PortfolioSnapshot{
		PortfolioID:    "P1",
		Equity:         10500,
		Cash:           4000,
		BuyingPower:    8000,
		PeakValue:      11000,
		DrawdownPct:    -4.55,
		InitialCapital: 10000,
		UpdatedAt:      time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, j.SavePortfolio(snap))

	got, err := j.Portfolio("P1")
	assert.NoError(t, err)
	assert.Equal(t, snap.Equity, got.Equity)
	assert.Equal(t, snap.PeakValue, got.PeakValue)
	assert.False(t, got.TradingPaused)

	// second save overwrites the single row
	snap.Equity = 9000
	snap.TradingPaused = true
	snap.PausedReason = "drawdown halt"
	assert.NoError(t, j.SavePortfolio(snap))

	got, err = j.Portfolio("P1")
	assert.NoError(t, err)
	assert.Equal(t, 9000.0, got.Equity)
	assert.True(t, got.TradingPaused)
	assert.Equal(t, "drawdown halt", got.PausedReason)
}

func TestPortfolioNotFound(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	_, err := j.Portfolio("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertMetricIdempotent(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	date := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	sharpe := 1.25
	m := perf.Metric{
		PortfolioID:     "P1",
		PeriodType:      perf.Daily,
		PeriodDate:      date,
		PortfolioValue:  10500,
		PeriodReturnPct: 1.2,
		TotalReturnPct:  5.0,
		MaxDrawdownPct:  -3.1,
		SharpeRatio:     &sharpe,
		TotalTrades:     4,
		WinningTrades:   3,
		LosingTrades:    1,
	}
	assert.NoError(t, j.UpsertMetric(m))

	// recompute for the same period key overwrites, never duplicates
	m.PortfolioValue = 10600
	m.SharpeRatio = nil
	assert.NoError(t, j.UpsertMetric(m))

	list, err := j.MetricsByType("P1", perf.Daily)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 10600.0, list[0].PortfolioValue)
	assert.Nil(t, list[0].SharpeRatio)
	assert.Equal(t, date, list[0].PeriodDate)

	got, err := j.Metric("P1", perf.Daily, date)
	assert.NoError(t, err)
	assert.Equal(t, 10600.0, got.PortfolioValue)

	_, err = j.Metric("P1", perf.Weekly, date)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTradesClosedBetween(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	day := func(d int) time.Time {
		return time.Date(2024, 5, d, 15, 0, 0, 0, time.UTC)
	}

	for i, rec := range []TradeRecord{
		{TradeID: "T1", Symbol: "AAPL", RealizedPL: 120, Winner: true, OpenTime: day(1), CloseTime: day(2)},
		{TradeID: "T2", Symbol: "MSFT", RealizedPL: -60, Winner: false, OpenTime: day(3), CloseTime: day(3)},
		{TradeID: "T3", Symbol: "TSLA", RealizedPL: 40, Winner: true, OpenTime: day(6), CloseTime: day(6)},
	} {
		rec.PortfolioID = "P1"
		rec.Quantity = float64(10 + i)
		assert.NoError(t, j.RecordTrade(rec))
	}

	got, err := j.TradesClosedBetween("P1", day(1), day(5))
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "T1", got[0].TradeID)
	assert.Equal(t, "T2", got[1].TradeID)
}

func TestDayTradeCount(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	day := func(d, h int) time.Time {
		return time.Date(2024, 5, d, h, 0, 0, 0, time.UTC)
	}

	// two same-day round trips, one overnight hold
	records := []TradeRecord{
		{TradeID: "D1", OpenTime: day(6, 10), CloseTime: day(6, 15)},
		{TradeID: "D2", OpenTime: day(7, 10), CloseTime: day(7, 11)},
		{TradeID: "O1", OpenTime: day(6, 10), CloseTime: day(7, 15)},
	}
	for _, rec := range records {
		rec.PortfolioID = "P1"
		rec.Symbol = "AAPL"
		assert.NoError(t, j.RecordTrade(rec))
	}

	n, err := j.DayTradeCount("P1", day(1, 0))
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	// window excludes the earlier day trade
	n, err = j.DayTradeCount("P1", day(7, 0))
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRiskEventRoundTrip(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)

	e := RiskEvent{
		ID:          "01HRISKEVENT",
		PortfolioID: "P1",
		Severity:    "HALTED",
		Track:       "drawdown",
		Reason:      "drawdown -21.00% breached halt threshold -20.00%",
		Equity:      7900,
		PeakValue:   10000,
		DrawdownPct: -21,
		Time:        time.Date(2024, 5, 6, 14, 30, 0, 0, time.UTC),
	}
	assert.NoError(t, j.RecordRiskEvent(e))

	got, err := j.RiskEvents("P1", 10)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, e.Reason, got[0].Reason)
	assert.Equal(t, e.Severity, got[0].Severity)
}

func TestSaveBarAndHistory(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	rsi := 62.5
	sma := 101.1234
	set := indicators.Set{RSI14: &rsi, SMA20: &sma}

	for i := 0; i < 3; i++ {
		p := market.PricePoint{
			Time:   base.AddDate(0, 0, i),
			Open:   100,
			High:   102,
			Low:    99,
			Close:  101 + float64(i),
			Volume: 1000,
		}
		assert.NoError(t, j.SaveBar("AAPL", p, set))
	}

	// re-ingesting an existing bar is a no-op
	assert.NoError(t, j.SaveBar("AAPL", market.PricePoint{Time: base, Close: 999}, indicators.Set{}))

	h, err := j.PriceHistory("AAPL", 0)
	assert.NoError(t, err)
	assert.Len(t, h.Points, 3)
	assert.Equal(t, 101.0, h.Points[0].Close)
	assert.Equal(t, 103.0, h.Points[2].Close)

	// limited fetch returns the most recent bars, still ascending
	h, err = j.PriceHistory("AAPL", 2)
	assert.NoError(t, err)
	assert.Len(t, h.Points, 2)
	assert.Equal(t, 102.0, h.Points[0].Close)
}
