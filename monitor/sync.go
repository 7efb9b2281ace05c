package monitor

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/rustyeddy/sentry/journal"
	"github.com/rustyeddy/sentry/notify"
	"github.com/rustyeddy/sentry/pkg/id"
	"github.com/rustyeddy/sentry/risk"
)

// SyncAccount is the full account-sync tick: read live equity, roll the
// peak forward, classify risk, persist the snapshot and any halt, and
// emit a deduped alert. The halt flag is persisted before any send is
// attempted; a failing send is logged and swallowed.
func (e *Engine) SyncAccount(ctx context.Context, portfolioID string) (risk.Assessment, error) {
	reading, err := e.accounts.Read(ctx, portfolioID)
	if err != nil {
		return risk.Assessment{}, fmt.Errorf("read account %s: %w", portfolioID, err)
	}

	snap, err := e.loadOrInit(portfolioID)
	if err != nil {
		return risk.Assessment{}, err
	}

	now := e.now()

	snap.Equity = reading.Equity
	snap.Cash = reading.Cash
	snap.BuyingPower = reading.BuyingPower
	if reading.Equity > snap.PeakValue {
		snap.PeakValue = reading.Equity
	}
	snap.DrawdownPct = risk.DrawdownPct(snap.Equity, snap.PeakValue)

	dayStart := e.dayOpenFor(portfolioID).Capture(now, reading.Equity)

	a := risk.Evaluate(risk.AccountSnapshot{
		Equity:        snap.Equity,
		PeakValue:     snap.PeakValue,
		DayStartValue: dayStart,
		TradingPaused: snap.TradingPaused,
	}, e.thresholds, now, e.dedupe)

	halted := a.HaltReason != "" && !snap.TradingPaused
	if halted {
		snap.TradingPaused = true
		snap.PausedReason = a.HaltReason
	}
	snap.UpdatedAt = now

	if err := e.store.SavePortfolio(snap); err != nil {
		return a, fmt.Errorf("save portfolio %s: %w", portfolioID, err)
	}

	if halted {
		e.audit(snap, a.Severity.String(), string(a.Track), a.HaltReason)
	}

	prev := e.swapSeverity(portfolioID, a.Severity)
	if prev >= risk.SeverityWarning && a.Severity == risk.SeverityOK {
		log.Printf("%s recovered: drawdown %.2f%%, daily %.2f%%",
			portfolioID, a.DrawdownPct, a.DailyLossPct)
	}

	if a.ShouldAlert {
		e.send(portfolioID, a)
	}

	return a, nil
}

// CheckDrawdown is the lightweight 5-minute tick: classify the live
// reading against the stored peak and persist only on a halt
// transition.
func (e *Engine) CheckDrawdown(ctx context.Context, portfolioID string) (risk.Assessment, error) {
	reading, err := e.accounts.Read(ctx, portfolioID)
	if err != nil {
		return risk.Assessment{}, fmt.Errorf("read account %s: %w", portfolioID, err)
	}

	snap, err := e.loadOrInit(portfolioID)
	if err != nil {
		return risk.Assessment{}, err
	}

	now := e.now()
	dayStart := e.dayOpenFor(portfolioID).Capture(now, reading.Equity)

	peak := snap.PeakValue
	if reading.Equity > peak {
		peak = reading.Equity
	}

	a := risk.Evaluate(risk.AccountSnapshot{
		Equity:        reading.Equity,
		PeakValue:     peak,
		DayStartValue: dayStart,
		TradingPaused: snap.TradingPaused,
	}, e.thresholds, now, e.dedupe)

	if a.HaltReason != "" && !snap.TradingPaused {
		snap.Equity = reading.Equity
		snap.PeakValue = peak
		snap.DrawdownPct = a.DrawdownPct
		snap.TradingPaused = true
		snap.PausedReason = a.HaltReason
		snap.UpdatedAt = now

		if err := e.store.SavePortfolio(snap); err != nil {
			return a, fmt.Errorf("save portfolio %s: %w", portfolioID, err)
		}
		e.audit(snap, a.Severity.String(), string(a.Track), a.HaltReason)
	}

	e.swapSeverity(portfolioID, a.Severity)

	if a.ShouldAlert {
		e.send(portfolioID, a)
	}

	return a, nil
}

// Resume clears a sticky halt. This is the only path that unsets the
// pause flag; recovery alone never does.
func (e *Engine) Resume(ctx context.Context, portfolioID, operator string) error {
	snap, err := e.store.Portfolio(portfolioID)
	if err != nil {
		return err
	}
	if !snap.TradingPaused {
		log.Printf("%s is not paused, nothing to resume", portfolioID)
		return nil
	}

	snap.TradingPaused = false
	snap.PausedReason = ""
	snap.UpdatedAt = e.now()

	if err := e.store.SavePortfolio(snap); err != nil {
		return fmt.Errorf("save portfolio %s: %w", portfolioID, err)
	}

	e.audit(snap, risk.SeverityOK.String(), "", fmt.Sprintf("manual resume by %s", operator))

	e.mu.Lock()
	e.lastSeverity[portfolioID] = risk.SeverityOK
	e.mu.Unlock()

	return nil
}

// ValidateTrade builds the rule-set request from the stored snapshot
// and the caller's order context, then evaluates every rule.
func (e *Engine) ValidateTrade(ctx context.Context, portfolioID string, intent OrderIntent) (risk.Result, error) {
	snap, err := e.store.Portfolio(portfolioID)
	if err != nil {
		return risk.Result{}, err
	}

	now := e.now()
	dayStart := e.dayOpenFor(portfolioID).Capture(now, snap.Equity)

	dayTrades, err := e.store.DayTradeCount(portfolioID, now.AddDate(0, 0, -5))
	if err != nil {
		return risk.Result{}, fmt.Errorf("count day trades: %w", err)
	}

	req := risk.Request{
		Symbol:               intent.Symbol,
		OrderValue:           intent.Value,
		OrderPrice:           intent.Price,
		MinPrice:             intent.MinPrice,
		MaxPrice:             intent.MaxPrice,
		PortfolioValue:       snap.Equity,
		DayStartValue:        dayStart,
		CurrentValue:         snap.Equity,
		DrawdownPct:          snap.DrawdownPct,
		CashBalance:          snap.Cash,
		BuyingPower:          snap.BuyingPower,
		TradingPaused:        snap.TradingPaused,
		PositionCount:        intent.PositionCount,
		TradesToday:          intent.TradesToday,
		PendingSymbols:       intent.PendingSymbols,
		AccountEquity:        snap.Equity,
		DayTradesInLast5Days: dayTrades,
	}

	return risk.ValidateTrade(req, e.limits), nil
}

// OrderIntent is the order-side context for trade validation; the
// portfolio side comes from the stored snapshot.
type OrderIntent struct {
	Symbol   string
	Value    float64
	Price    float64
	MinPrice *float64
	MaxPrice *float64

	PositionCount  int
	TradesToday    int
	PendingSymbols []string
}

// loadOrInit returns the stored snapshot, creating a fresh one at
// initial capital on first sight of the portfolio.
func (e *Engine) loadOrInit(portfolioID string) (journal.PortfolioSnapshot, error) {
	snap, err := e.store.Portfolio(portfolioID)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, journal.ErrNotFound) {
		return journal.PortfolioSnapshot{}, err
	}
	return journal.PortfolioSnapshot{
		PortfolioID:    portfolioID,
		InitialCapital: e.initialCapital,
	}, nil
}

func (e *Engine) audit(snap journal.PortfolioSnapshot, severity, track, reason string) {
	event := journal.RiskEvent{
		ID:          id.New(),
		PortfolioID: snap.PortfolioID,
		Severity:    severity,
		Track:       track,
		Reason:      reason,
		Equity:      snap.Equity,
		PeakValue:   snap.PeakValue,
		DrawdownPct: snap.DrawdownPct,
		Time:        e.now(),
	}
	if err := e.store.RecordRiskEvent(event); err != nil {
		log.Printf("record risk event for %s: %v", snap.PortfolioID, err)
	}
}

// send delivers an assessment alert; failures are logged, never
// propagated, so a broken transport cannot block halt persistence.
func (e *Engine) send(portfolioID string, a risk.Assessment) {
	subject, body := notify.Format(portfolioID, a)
	alert := notify.Alert{
		ID:       id.New(),
		Kind:     string(a.Track),
		Priority: notify.PriorityFor(a.Severity),
		Subject:  subject,
		Body:     body,
		Time:     e.now(),
	}
	if err := e.notifier.Send(alert); err != nil {
		log.Printf("send alert %s for %s: %v", alert.Kind, portfolioID, err)
	}
}
