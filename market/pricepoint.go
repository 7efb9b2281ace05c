// Package market holds the price data types shared across the engine.
package market

import "time"

// PricePoint represents one OHLCV (Open, High, Low, Close, Volume) bar.
// Bars are immutable once recorded.
type PricePoint struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
