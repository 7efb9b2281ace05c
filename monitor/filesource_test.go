package monitor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAccountSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "account.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"equity": 102500.0, "cash": 41000.0, "buying_power": 82000.0}`), 0644))

	src := FileAccountSource{Path: path}
	r, err := src.Read(context.Background(), "MAIN")
	require.NoError(t, err)
	assert.Equal(t, 102500.0, r.Equity)
	assert.Equal(t, 41000.0, r.Cash)
	assert.Equal(t, 82000.0, r.BuyingPower)

	src.Path = filepath.Join(t.TempDir(), "missing.json")
	_, err = src.Read(context.Background(), "MAIN")
	assert.Error(t, err)
}

func TestDirMarketData(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csv := "time,open,high,low,close,volume\n" +
		"2024-01-02T00:00:00Z,100,104,99,103,125000\n" +
		"2024-01-03T00:00:00Z,103,105,101,104.5,98000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AAPL.csv"), []byte(csv), 0644))

	md := DirMarketData{Dir: dir}
	bars, err := md.Candles(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Time)
	assert.Equal(t, 103.0, bars[0].Close)
	assert.Equal(t, 104.5, bars[1].Close)
	assert.Equal(t, 98000.0, bars[1].Volume)

	_, err = md.Candles(context.Background(), "MSFT")
	assert.Error(t, err)

	// header only means no bars yet, not an error
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SPY.csv"),
		[]byte("time,open,high,low,close,volume\n"), 0644))
	bars, err = md.Candles(context.Background(), "SPY")
	require.NoError(t, err)
	assert.Empty(t, bars)
}
