package indicators

import (
	"errors"

	"github.com/rustyeddy/sentry/market"
)

// Set is the per-bar indicator snapshot persisted alongside each price
// point. A nil field means the history is still too short for that
// indicator. A bar's Set is a pure function of the history up to and
// including the bar and is never recomputed afterward.
type Set struct {
	RSI14         *float64
	SMA20         *float64
	SMA50         *float64
	SMA200        *float64
	EMA12         *float64
	EMA26         *float64
	MACD          *float64
	MACDSignal    *float64
	MACDHistogram *float64
}

// Compute derives the indicator Set for the most recent bar of the
// history. Short history is not an error: fields the series cannot
// support yet stay nil. Raw moving-average and MACD values are rounded
// to four decimals; RSI to two.
func Compute(h market.History) (Set, error) {
	closes := h.Closes()

	var set Set

	if v, err := RSI(closes, RSIPeriod); err == nil {
		set.RSI14 = &v
	} else if !errors.Is(err, ErrInsufficientData) {
		return Set{}, err
	}

	for _, ma := range []struct {
		period int
		field  **float64
	}{
		{20, &set.SMA20},
		{50, &set.SMA50},
		{200, &set.SMA200},
	} {
		if v, err := SMA(closes, ma.period); err == nil {
			v = round4(v)
			*ma.field = &v
		} else if !errors.Is(err, ErrInsufficientData) {
			return Set{}, err
		}
	}

	for _, ema := range []struct {
		period int
		field  **float64
	}{
		{macdFast, &set.EMA12},
		{macdSlow, &set.EMA26},
	} {
		if v, err := EMA(closes, ema.period); err == nil {
			v = round4(v)
			*ema.field = &v
		} else if !errors.Is(err, ErrInsufficientData) {
			return Set{}, err
		}
	}

	if v, err := MACD(closes); err == nil {
		m := round4(v.MACD)
		set.MACD = &m
		if v.Signal != nil {
			s := round4(*v.Signal)
			h := round4(v.MACD - *v.Signal)
			set.MACDSignal = &s
			set.MACDHistogram = &h
		}
	} else if !errors.Is(err, ErrInsufficientData) {
		return Set{}, err
	}

	return set, nil
}
