package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func noisyCloses(n int) []float64 {
	closes := make([]float64, n)
	price := 100.0
	for i := range closes {
		// deterministic zig-zag with drift
		switch i % 3 {
		case 0:
			price += 1.7
		case 1:
			price -= 0.9
		case 2:
			price += 0.4
		}
		closes[i] = price
	}
	return closes
}

func TestEMAStateMatchesBatch(t *testing.T) {
	t.Parallel()

	closes := noisyCloses(60)
	state := NewEMAState(12)

	for i, c := range closes {
		state.Update(c)
		if i+1 < 12 {
			assert.False(t, state.Ready())
			continue
		}
		batch, err := EMA(closes[:i+1], 12)
		assert.NoError(t, err)
		assert.True(t, state.Ready())
		assert.InDelta(t, batch, state.Value(), 1e-12)
	}
}

func TestRSIStateMatchesBatch(t *testing.T) {
	t.Parallel()

	closes := noisyCloses(60)
	state := NewRSIState(14)

	for i, c := range closes {
		state.Update(c)
		if i+1 < 15 {
			assert.False(t, state.Ready())
			continue
		}
		batch, err := RSI(closes[:i+1], 14)
		assert.NoError(t, err)
		assert.True(t, state.Ready())
		assert.InDelta(t, batch, state.Value(), 1e-9)
	}
}

func TestEMAStateReset(t *testing.T) {
	t.Parallel()

	state := NewEMAState(5)
	for _, c := range noisyCloses(10) {
		state.Update(c)
	}
	assert.True(t, state.Ready())

	state.Reset()
	assert.False(t, state.Ready())
	assert.Equal(t, 0.0, state.Value())
}
