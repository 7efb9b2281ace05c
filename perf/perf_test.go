package perf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriodReturn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		prev float64
		curr float64
		want float64
	}{
		{"gain", 10000, 10500, 5.0},
		{"loss", 10000, 9500, -5.0},
		{"flat", 10000, 10000, 0},
		{"zero_prev", 0, 10000, 0},
		{"negative_prev", -100, 10000, 0},
		{"rounding", 10000, 10033.33, 0.33},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PeriodReturn(tt.prev, tt.curr))
		})
	}
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	// trough 8000 against peak 10000
	dd := MaxDrawdown([]float64{10000, 9500, 9000, 8500, 8000, 8500, 9000})
	assert.Equal(t, -20.0, dd)
}

func TestMaxDrawdownMonotonicRise(t *testing.T) {
	t.Parallel()

	dd := MaxDrawdown([]float64{100, 200, 300, 400})
	assert.Equal(t, 0.0, dd)
}

func TestMaxDrawdownPeakNeverResets(t *testing.T) {
	t.Parallel()

	// recovery to 9900 then a drop to 9000 is still measured against 10000
	dd := MaxDrawdown([]float64{10000, 9000, 9900, 9100})
	assert.Equal(t, -10.0, dd)
}

func TestMaxDrawdownEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, MaxDrawdown(nil))
}

func TestSharpeRatioTooFewPoints(t *testing.T) {
	t.Parallel()

	_, ok := SharpeRatio([]float64{1.0}, 0.05)
	assert.False(t, ok)

	_, ok = SharpeRatio(nil, 0.05)
	assert.False(t, ok)
}

func TestSharpeRatioZeroStddev(t *testing.T) {
	t.Parallel()

	sharpe, ok := SharpeRatio([]float64{0.5, 0.5, 0.5}, 0.05)
	assert.True(t, ok)
	assert.Equal(t, 0.0, sharpe)
}

func TestSharpeRatioAnnualized(t *testing.T) {
	t.Parallel()

	returns := []float64{0.2, -0.1, 0.3, 0.15, -0.05}
	sharpe, ok := SharpeRatio(returns, 0.05)
	assert.True(t, ok)

	// recompute by hand: mean=0.1, sample stddev over N-1
	mean := 0.1
	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	stddev := math.Sqrt(variance / 4)
	want := (mean*252 - 0.05*100) / (stddev * math.Sqrt(252))
	assert.InDelta(t, want, sharpe, 0.01)
}

func TestAlpha(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.5, Alpha(7.5, 5.0))
	assert.Equal(t, -3.0, Alpha(2.0, 5.0))
}
