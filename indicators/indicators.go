// Package indicators provides technical analysis indicators over close
// price series.
package indicators

import (
	"errors"
	"math"
)

// ErrInsufficientData reports that a series is too short for the
// requested indicator. Callers treat it as "value not yet available",
// not as a failure; Compute maps it to a nil field.
var ErrInsufficientData = errors.New("insufficient data")

// Indicator computes a single streaming value from closes.
// It is deterministic and must reproduce the batch computation exactly.
type Indicator interface {
	// Name returns a stable identifier like "EMA(12)" or "RSI(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next *closed* bar's close price.
	Update(close float64)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool

	// Value returns the current indicator value. If !Ready(), it returns 0;
	// callers should always check Ready().
	Value() float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
