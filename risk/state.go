package risk

import (
	"fmt"
	"time"
)

// Severity is the monitoring state of a portfolio.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityHalted
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityHalted:
		return "HALTED"
	default:
		return "OK"
	}
}

// Track identifies which monitoring track produced a severity.
type Track string

const (
	TrackDrawdown  Track = "drawdown"
	TrackDailyLoss Track = "daily_loss"
)

// AccountSnapshot is the live state Evaluate consumes.
type AccountSnapshot struct {
	Equity        float64
	PeakValue     float64
	DayStartValue float64
	TradingPaused bool
}

// Assessment is the outcome of one monitoring tick. The caller persists
// the halt flag and sends a notification only when ShouldAlert is set.
type Assessment struct {
	Severity     Severity
	Track        Track
	DrawdownPct  float64
	DailyLossPct float64
	HaltReason   string
	ShouldAlert  bool
	AlertKey     string
}

// DrawdownPct is the percent decline of equity from peak, always <= 0,
// and exactly 0 when the peak is not positive.
func DrawdownPct(equity, peak float64) float64 {
	if peak <= 0 {
		return 0
	}
	dd := (equity - peak) / peak * 100
	if dd > 0 {
		dd = 0
	}
	return round2(dd)
}

// Evaluate classifies the snapshot on both severity tracks and decides
// whether an alert is due. Warnings are advisory and deduplicated per
// (track, severity, UTC day) through the cache; a halted track fills
// HaltReason. A snapshot already paused stays HALTED regardless of
// recovery — only an explicit resume clears it.
func Evaluate(acct AccountSnapshot, th Thresholds, now time.Time, cache *DedupeCache) Assessment {
	a := Assessment{
		DrawdownPct: DrawdownPct(acct.Equity, acct.PeakValue),
	}
	if acct.DayStartValue > 0 {
		a.DailyLossPct = round2((acct.Equity - acct.DayStartValue) / acct.DayStartValue * 100)
	}

	ddSev := classify(a.DrawdownPct, th.DrawdownWarnPct, th.DrawdownHaltPct)
	dlSev := classify(a.DailyLossPct, th.DailyLossWarnPct, th.DailyLossHaltPct)

	a.Severity, a.Track = ddSev, TrackDrawdown
	if dlSev > ddSev {
		a.Severity, a.Track = dlSev, TrackDailyLoss
	}

	switch {
	case ddSev == SeverityHalted:
		a.HaltReason = fmt.Sprintf("drawdown %.2f%% breached halt threshold %.2f%%",
			a.DrawdownPct, th.DrawdownHaltPct)
	case dlSev == SeverityHalted:
		a.HaltReason = fmt.Sprintf("daily loss %.2f%% breached halt threshold %.2f%%",
			a.DailyLossPct, th.DailyLossHaltPct)
	}

	// Halt is sticky: a paused portfolio never downgrades below HALTED,
	// even on full recovery.
	if acct.TradingPaused && a.Severity < SeverityHalted {
		a.Severity = SeverityHalted
	}

	// Alert on an active breach only: a warning track, or a fresh halt.
	// A sticky halt with no live breach stays silent — the operator was
	// already told when it tripped.
	active := a.Severity == SeverityWarning || a.HaltReason != ""
	if active {
		a.AlertKey = alertKey(a.Track, a.Severity, now)
		if cache != nil {
			a.ShouldAlert = cache.MarkOnce(a.AlertKey, now)
		}
	}

	return a
}

func classify(pct, warnAt, haltAt float64) Severity {
	switch {
	case pct <= haltAt:
		return SeverityHalted
	case pct <= warnAt:
		return SeverityWarning
	default:
		return SeverityOK
	}
}

// alertKey dedupes to at most one alert per calendar day per track and
// severity.
func alertKey(track Track, sev Severity, now time.Time) string {
	return fmt.Sprintf("%s:%s|%s", track, sev, now.UTC().Format("2006-01-02"))
}
