package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var tickTime = time.Date(2024, 5, 6, 14, 30, 0, 0, time.UTC)

func TestDrawdownPct(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -10.0, DrawdownPct(9000, 10000))
	assert.Equal(t, 0.0, DrawdownPct(10000, 10000))
	// equity above peak clamps to 0; peak updates elsewhere
	assert.Equal(t, 0.0, DrawdownPct(11000, 10000))
	// no peak, no drawdown
	assert.Equal(t, 0.0, DrawdownPct(5000, 0))
}

func TestEvaluateOK(t *testing.T) {
	t.Parallel()

	a := Evaluate(AccountSnapshot{
		Equity: 9900, PeakValue: 10000, DayStartValue: 9950,
	}, DefaultThresholds(), tickTime, NewDedupeCache(0))

	assert.Equal(t, SeverityOK, a.Severity)
	assert.Empty(t, a.HaltReason)
	assert.False(t, a.ShouldAlert)
}

func TestEvaluateDrawdownWarning(t *testing.T) {
	t.Parallel()

	cache := NewDedupeCache(0)
	a := Evaluate(AccountSnapshot{
		Equity: 8400, PeakValue: 10000, DayStartValue: 8500,
	}, DefaultThresholds(), tickTime, cache)

	assert.Equal(t, SeverityWarning, a.Severity)
	assert.Equal(t, TrackDrawdown, a.Track)
	assert.Empty(t, a.HaltReason)
	assert.True(t, a.ShouldAlert)

	// same day, same kind: deduped
	again := Evaluate(AccountSnapshot{
		Equity: 8400, PeakValue: 10000, DayStartValue: 8500,
	}, DefaultThresholds(), tickTime.Add(5*time.Minute), cache)
	assert.Equal(t, SeverityWarning, again.Severity)
	assert.False(t, again.ShouldAlert)
}

func TestEvaluateDrawdownHalt(t *testing.T) {
	t.Parallel()

	a := Evaluate(AccountSnapshot{
		Equity: 7900, PeakValue: 10000, DayStartValue: 8000,
	}, DefaultThresholds(), tickTime, NewDedupeCache(0))

	assert.Equal(t, SeverityHalted, a.Severity)
	assert.Equal(t, TrackDrawdown, a.Track)
	assert.Contains(t, a.HaltReason, "drawdown")
	assert.True(t, a.ShouldAlert)
}

func TestEvaluateDailyLossTracks(t *testing.T) {
	t.Parallel()

	th := DefaultThresholds()

	warn := Evaluate(AccountSnapshot{
		Equity: 9550, PeakValue: 10000, DayStartValue: 10000,
	}, th, tickTime, NewDedupeCache(0))
	assert.Equal(t, SeverityWarning, warn.Severity)
	assert.Equal(t, TrackDailyLoss, warn.Track)

	halt := Evaluate(AccountSnapshot{
		Equity: 9490, PeakValue: 10000, DayStartValue: 10000,
	}, th, tickTime, NewDedupeCache(0))
	assert.Equal(t, SeverityHalted, halt.Severity)
	assert.Contains(t, halt.HaltReason, "daily loss")
}

func TestEvaluateStickyHalt(t *testing.T) {
	t.Parallel()

	// full recovery, but the pause flag is set: stays HALTED, no alert
	a := Evaluate(AccountSnapshot{
		Equity: 10000, PeakValue: 10000, DayStartValue: 10000,
		TradingPaused: true,
	}, DefaultThresholds(), tickTime, NewDedupeCache(0))

	assert.Equal(t, SeverityHalted, a.Severity)
	assert.Empty(t, a.HaltReason)
	assert.False(t, a.ShouldAlert)
}

func TestEvaluateWorstTrackWins(t *testing.T) {
	t.Parallel()

	// drawdown warning and daily-loss halt together
	a := Evaluate(AccountSnapshot{
		Equity: 8400, PeakValue: 10000, DayStartValue: 8900,
	}, DefaultThresholds(), tickTime, NewDedupeCache(0))

	assert.Equal(t, SeverityHalted, a.Severity)
	assert.Equal(t, TrackDailyLoss, a.Track)
}

func TestDedupeCacheTTL(t *testing.T) {
	t.Parallel()

	cache := NewDedupeCache(time.Hour)
	assert.True(t, cache.MarkOnce("k", tickTime))
	assert.False(t, cache.MarkOnce("k", tickTime.Add(30*time.Minute)))
	// expired
	assert.True(t, cache.MarkOnce("k", tickTime.Add(2*time.Hour)))
}

func TestDayOpenCapture(t *testing.T) {
	t.Parallel()

	var d DayOpen

	first := d.Capture(tickTime, 10000)
	assert.Equal(t, 10000.0, first)

	// later reads the same day keep the first value
	later := d.Capture(tickTime.Add(4*time.Hour), 9400)
	assert.Equal(t, 10000.0, later)

	// next UTC day re-captures
	next := d.Capture(tickTime.AddDate(0, 0, 1), 9400)
	assert.Equal(t, 9400.0, next)
}
