package indicators

import "fmt"

// MACD line parameters: 12/26 EMAs with a 9-period signal line.
const (
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9

	// minimum bars before the signal line exists: a MACD value per bar
	// from bar 26 onward, plus the 9-period signal warmup
	macdSignalMin = macdSlow + macdSignal
)

// MACDValue is the MACD line with its optional signal and histogram.
// Signal and Histogram are nil until macdSignalMin bars exist.
type MACDValue struct {
	MACD      float64
	Signal    *float64
	Histogram *float64
}

// MACD calculates the Moving Average Convergence Divergence:
// EMA(12) - EMA(26), with the signal line as the 9-period EMA of the
// per-bar MACD series and the histogram as MACD - signal.
func MACD(closes []float64) (MACDValue, error) {
	if len(closes) < macdSlow {
		return MACDValue{}, fmt.Errorf("%w: need %d closes, got %d", ErrInsufficientData, macdSlow, len(closes))
	}

	series := macdSeries(closes)
	v := MACDValue{MACD: series[len(series)-1]}

	if len(closes) >= macdSignalMin {
		sig, err := EMA(series, macdSignal)
		if err != nil {
			return MACDValue{}, err
		}
		hist := v.MACD - sig
		v.Signal = &sig
		v.Histogram = &hist
	}

	return v, nil
}

// macdSeries returns one MACD value per bar from the point where the
// slow EMA is warmed up, using streaming EMAs so each value matches the
// batch EMA over the same prefix.
func macdSeries(closes []float64) []float64 {
	fast := NewEMAState(macdFast)
	slow := NewEMAState(macdSlow)

	series := make([]float64, 0, len(closes)-macdSlow+1)
	for _, c := range closes {
		fast.Update(c)
		slow.Update(c)
		if slow.Ready() {
			series = append(series, fast.Value()-slow.Value())
		}
	}
	return series
}
