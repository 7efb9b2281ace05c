package indicators

import "fmt"

// RSIPeriod is the conventional lookback for the Relative Strength Index.
const RSIPeriod = 14

// RSI calculates the Relative Strength Index with Wilder smoothing.
//
// Per-step gains and losses come from consecutive closes, so the series
// needs period+1 closes. The average gain/loss is seeded with the simple
// mean of the first 'period' values, then smoothed with
// avg = (avg*(period-1) + new) / period. The result is rounded to two
// decimals and always lies in [0, 100].
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(closes) < period+1 {
		return 0, fmt.Errorf("%w: need %d closes, got %d", ErrInsufficientData, period+1, len(closes))
	}

	avgGain := 0.0
	avgLoss := 0.0
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss += -delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing over the remaining deltas
	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100, nil
	}
	rsi := 100 - 100/(1+avgGain/avgLoss)
	return round2(rsi), nil
}
