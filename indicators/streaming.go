package indicators

import "fmt"

// EMAState is a streaming Exponential Moving Average indicator.
// After warmup it produces the same values as the batch EMA over the
// full series, so ingestion can avoid re-scanning history each bar.
type EMAState struct {
	period     int
	multiplier float64
	ema        float64
	count      int
	warmupSum  float64
}

// NewEMAState creates a streaming EMA with the given period.
func NewEMAState(period int) *EMAState {
	return &EMAState{
		period:     period,
		multiplier: 2.0 / float64(period+1),
	}
}

func (e *EMAState) Name() string {
	return fmt.Sprintf("EMA(%d)", e.period)
}

func (e *EMAState) Warmup() int {
	return e.period
}

func (e *EMAState) Reset() {
	e.ema = 0
	e.count = 0
	e.warmupSum = 0
}

func (e *EMAState) Update(close float64) {
	if e.count < e.period {
		// During warmup, accumulate sum for the initial SMA seed
		e.warmupSum += close
		e.count++
		if e.count == e.period {
			e.ema = e.warmupSum / float64(e.period)
		}
	} else {
		e.ema = (close-e.ema)*e.multiplier + e.ema
	}
}

func (e *EMAState) Ready() bool {
	return e.count >= e.period
}

func (e *EMAState) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.ema
}

// RSIState is a streaming Relative Strength Index with Wilder smoothing.
// Matches the batch RSI over the same series exactly.
type RSIState struct {
	period    int
	avgGain   float64
	avgLoss   float64
	count     int
	prevClose float64
	hasPrev   bool
}

// NewRSIState creates a streaming RSI with the given period.
func NewRSIState(period int) *RSIState {
	return &RSIState{period: period}
}

func (r *RSIState) Name() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}

func (r *RSIState) Warmup() int {
	// Need period+1 closes because deltas require a previous close
	return r.period + 1
}

func (r *RSIState) Reset() {
	r.avgGain = 0
	r.avgLoss = 0
	r.count = 0
	r.prevClose = 0
	r.hasPrev = false
}

func (r *RSIState) Update(close float64) {
	if !r.hasPrev {
		r.prevClose = close
		r.hasPrev = true
		return
	}

	delta := close - r.prevClose
	gain, loss := 0.0, 0.0
	if delta > 0 {
		gain = delta
	} else {
		loss = -delta
	}

	if r.count < r.period {
		// During warmup, accumulate for the seed averages
		r.avgGain += gain
		r.avgLoss += loss
		r.count++
		if r.count == r.period {
			r.avgGain /= float64(r.period)
			r.avgLoss /= float64(r.period)
		}
	} else {
		r.avgGain = (r.avgGain*float64(r.period-1) + gain) / float64(r.period)
		r.avgLoss = (r.avgLoss*float64(r.period-1) + loss) / float64(r.period)
		r.count++
	}

	r.prevClose = close
}

func (r *RSIState) Ready() bool {
	return r.count >= r.period
}

func (r *RSIState) Value() float64 {
	if !r.Ready() {
		return 0
	}
	if r.avgLoss == 0 {
		return 100
	}
	return round2(100 - 100/(1+r.avgGain/r.avgLoss))
}
