// Package journal persists the monitoring records: portfolio
// snapshots, performance metrics, closed trades, risk audit events, and
// price bars with their indicator sets.
package journal

import (
	"errors"
	"time"

	"github.com/rustyeddy/sentry/indicators"
	"github.com/rustyeddy/sentry/market"
	"github.com/rustyeddy/sentry/perf"
)

// ErrNotFound reports that no record exists for the requested key.
var ErrNotFound = errors.New("not found")

// PortfolioSnapshot is the persisted per-portfolio state, one row per
// portfolio, rewritten each sync cycle. PeakValue only grows; the pause
// flag is owned by the risk state machine.
type PortfolioSnapshot struct {
	PortfolioID    string
	Equity         float64
	Cash           float64
	BuyingPower    float64
	PeakValue      float64
	DrawdownPct    float64
	InitialCapital float64
	TradingPaused  bool
	PausedReason   string
	UpdatedAt      time.Time
}

// TradeRecord is a closed trade, immutable once written; used only for
// statistics.
type TradeRecord struct {
	TradeID       string
	PortfolioID   string
	Symbol        string
	Quantity      float64
	EntryPrice    float64
	ExitPrice     float64
	RealizedPL    float64
	RealizedPLPct float64
	HoldingDays   int
	Winner        bool
	OpenTime      time.Time
	CloseTime     time.Time
}

// Outcome converts the record into the slice perf statistics consume.
func (t TradeRecord) Outcome() perf.TradeOutcome {
	return perf.TradeOutcome{RealizedPL: t.RealizedPL, Winner: t.Winner}
}

// RiskEvent is one audit entry: a halt, resume, or warning with the
// equity picture at that moment.
type RiskEvent struct {
	ID          string
	PortfolioID string
	Severity    string
	Track       string
	Reason      string
	Equity      float64
	PeakValue   float64
	DrawdownPct float64
	Time        time.Time
}

// Store is the persistence surface the engine works against.
type Store interface {
	SavePortfolio(PortfolioSnapshot) error
	Portfolio(portfolioID string) (PortfolioSnapshot, error)

	UpsertMetric(perf.Metric) error
	Metric(portfolioID string, pt perf.PeriodType, date time.Time) (perf.Metric, error)
	MetricsByType(portfolioID string, pt perf.PeriodType) ([]perf.Metric, error)

	RecordTrade(TradeRecord) error
	TradesClosedBetween(portfolioID string, start, end time.Time) ([]TradeRecord, error)
	DayTradeCount(portfolioID string, since time.Time) (int, error)

	RecordRiskEvent(RiskEvent) error
	RiskEvents(portfolioID string, limit int) ([]RiskEvent, error)

	SaveBar(symbol string, p market.PricePoint, set indicators.Set) error
	PriceHistory(symbol string, limit int) (market.History, error)

	Close() error
}
