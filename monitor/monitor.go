// Package monitor is the scheduled portfolio-monitoring engine. It
// pulls live account state, classifies risk, persists snapshots and
// performance metrics, and ingests price bars with their indicators.
//
// The engine is stateless per invocation except for the persisted
// portfolio record and the short-lived alert-dedupe cache. Callers must
// not invoke it concurrently for the same portfolio; the scheduler
// owns that single-writer guarantee.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rustyeddy/sentry/journal"
	"github.com/rustyeddy/sentry/market"
	"github.com/rustyeddy/sentry/notify"
	"github.com/rustyeddy/sentry/risk"
)

// AccountReading is one live account snapshot from the broker.
type AccountReading struct {
	Equity      float64
	Cash        float64
	BuyingPower float64
}

// AccountSource supplies live account state. The broker client behind
// it is an external collaborator.
type AccountSource interface {
	Read(ctx context.Context, portfolioID string) (AccountReading, error)
}

// MarketData supplies ordered OHLCV bars per symbol.
type MarketData interface {
	Candles(ctx context.Context, symbol string) ([]market.PricePoint, error)
}

// Options configures an Engine. Zero-value fields fall back to
// defaults: LogNotifier, DefaultThresholds, time.Now.
type Options struct {
	Accounts   AccountSource
	MarketData MarketData
	Notifier   notify.Notifier
	Thresholds risk.Thresholds

	InitialCapital float64
	Benchmark      string
	RiskFreeRate   float64 // annual fraction
	Limits         risk.Limits

	Now func() time.Time
}

// Engine ties the store, the collaborators, and the risk state machine
// together.
type Engine struct {
	store      journal.Store
	accounts   AccountSource
	marketData MarketData
	notifier   notify.Notifier

	thresholds     risk.Thresholds
	limits         risk.Limits
	initialCapital float64
	benchmark      string
	riskFree       float64

	dedupe *risk.DedupeCache
	now    func() time.Time

	mu           sync.Mutex
	dayOpen      map[string]*risk.DayOpen
	lastSeverity map[string]risk.Severity
}

// NewEngine creates an engine over the given store.
func NewEngine(store journal.Store, opts Options) *Engine {
	if opts.Notifier == nil {
		opts.Notifier = notify.LogNotifier{}
	}
	if opts.Thresholds == (risk.Thresholds{}) {
		opts.Thresholds = risk.DefaultThresholds()
	}
	if opts.Limits == (risk.Limits{}) {
		opts.Limits = risk.DefaultLimits()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Engine{
		store:          store,
		accounts:       opts.Accounts,
		marketData:     opts.MarketData,
		notifier:       opts.Notifier,
		thresholds:     opts.Thresholds,
		limits:         opts.Limits,
		initialCapital: opts.InitialCapital,
		benchmark:      opts.Benchmark,
		riskFree:       opts.RiskFreeRate,
		dedupe:         risk.NewDedupeCache(risk.DedupeTTL),
		now:            opts.Now,
		dayOpen:        make(map[string]*risk.DayOpen),
		lastSeverity:   make(map[string]risk.Severity),
	}
}

func (e *Engine) dayOpenFor(portfolioID string) *risk.DayOpen {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.dayOpen[portfolioID]
	if !ok {
		d = &risk.DayOpen{}
		e.dayOpen[portfolioID] = d
	}
	return d
}

// swapSeverity records the tick's severity and returns the previous one.
func (e *Engine) swapSeverity(portfolioID string, sev risk.Severity) risk.Severity {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.lastSeverity[portfolioID]
	e.lastSeverity[portfolioID] = sev
	return prev
}
