package indicators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func risingCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return closes
}

func TestSMA(t *testing.T) {
	t.Parallel()

	closes := []float64{102, 105, 106, 108, 110, 111, 113, 114, 116, 118}

	sma, err := SMA(closes, 5)
	assert.NoError(t, err)
	// Last 5 closes: 111,113,114,116,118 => 572/5 = 114.4
	assert.InDelta(t, 114.4, sma, 0.001)
}

func TestSMAInsufficientData(t *testing.T) {
	t.Parallel()

	_, err := SMA([]float64{1, 2, 3}, 5)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestSMAInvalidPeriod(t *testing.T) {
	t.Parallel()

	_, err := SMA([]float64{1, 2, 3}, 0)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInsufficientData))

	_, err = SMA([]float64{1, 2, 3}, -1)
	assert.Error(t, err)
}

func TestEMAInsufficientData(t *testing.T) {
	t.Parallel()

	_, err := EMA(risingCloses(9), 10)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestEMAConstantSeriesEqualsSMA(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 42.5
	}

	ema, err := EMA(closes, 10)
	assert.NoError(t, err)
	sma, err := SMA(closes, 10)
	assert.NoError(t, err)
	assert.InDelta(t, sma, ema, 1e-9)
	assert.InDelta(t, 42.5, ema, 1e-9)
}

func TestRSIAllGains(t *testing.T) {
	t.Parallel()

	rsi, err := RSI(risingCloses(15), 14)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, rsi)
}

func TestRSIAllLosses(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}

	rsi, err := RSI(closes, 14)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, rsi)
}

func TestRSIAlternatingEqualMoves(t *testing.T) {
	t.Parallel()

	// gains and losses alternate with equal magnitude
	closes := make([]float64, 30)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%2 == 1 {
			closes[i] = closes[i-1] + 2
		} else {
			closes[i] = closes[i-1] - 2
		}
	}

	rsi, err := RSI(closes, 14)
	assert.NoError(t, err)
	assert.InDelta(t, 50.0, rsi, 1.0)
}

func TestRSIInsufficientData(t *testing.T) {
	t.Parallel()

	// RSI needs period+1 closes
	_, err := RSI(risingCloses(14), 14)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestRSIDomain(t *testing.T) {
	t.Parallel()

	closes := []float64{
		44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42,
		45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00,
		46.03, 46.41, 46.22, 45.64,
	}

	rsi, err := RSI(closes, 14)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, rsi, 0.0)
	assert.LessOrEqual(t, rsi, 100.0)
}

func TestMACDInsufficientData(t *testing.T) {
	t.Parallel()

	_, err := MACD(risingCloses(25))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestMACDNoSignalBelowMinimum(t *testing.T) {
	t.Parallel()

	v, err := MACD(risingCloses(30))
	assert.NoError(t, err)
	assert.Nil(t, v.Signal)
	assert.Nil(t, v.Histogram)
	// steadily rising series: fast EMA above slow EMA
	assert.Greater(t, v.MACD, 0.0)
}

func TestMACDWithSignal(t *testing.T) {
	t.Parallel()

	v, err := MACD(risingCloses(40))
	assert.NoError(t, err)
	assert.NotNil(t, v.Signal)
	assert.NotNil(t, v.Histogram)
	assert.InDelta(t, v.MACD-*v.Signal, *v.Histogram, 1e-9)
}
