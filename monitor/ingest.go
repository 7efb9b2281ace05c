package monitor

import (
	"context"
	"fmt"
	"log"

	"github.com/rustyeddy/sentry/indicators"
	"github.com/rustyeddy/sentry/market"
)

// IngestBars fetches the latest bars for every symbol and persists each
// new bar with its indicator set. One symbol failing never aborts the
// others; failures are logged and the loop continues.
func (e *Engine) IngestBars(ctx context.Context, symbols []string) {
	for _, symbol := range symbols {
		if err := e.ingestSymbol(ctx, symbol); err != nil {
			log.Printf("ingest %s: %v", symbol, err)
		}
	}
}

// ingestSymbol appends the provider's bars that are newer than the
// stored history. A bar's indicators are a pure function of the history
// up to and including that bar, computed once at ingestion.
func (e *Engine) ingestSymbol(ctx context.Context, symbol string) error {
	bars, err := e.marketData.Candles(ctx, symbol)
	if err != nil {
		return fmt.Errorf("fetch candles: %w", err)
	}

	history, err := e.store.PriceHistory(symbol, 0)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	for _, bar := range bars {
		if !history.Append(bar) {
			continue
		}

		set, err := indicators.Compute(history)
		if err != nil {
			return fmt.Errorf("compute indicators at %s: %w", bar.Time.Format("2006-01-02"), err)
		}
		if err := e.store.SaveBar(symbol, bar, set); err != nil {
			return fmt.Errorf("save bar at %s: %w", bar.Time.Format("2006-01-02"), err)
		}
	}

	return nil
}

// BenchmarkHistory returns the stored history for the configured
// benchmark symbol, empty when no benchmark is set.
func (e *Engine) BenchmarkHistory() (market.History, error) {
	if e.benchmark == "" {
		return market.History{}, nil
	}
	return e.store.PriceHistory(e.benchmark, 0)
}
