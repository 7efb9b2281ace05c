package monitor

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rustyeddy/sentry/market"
)

// FileAccountSource reads account state from a JSON file an external
// broker fetcher keeps refreshed:
//
//	{"equity": 102500.0, "cash": 41000.0, "buying_power": 82000.0}
type FileAccountSource struct {
	Path string
}

func (f FileAccountSource) Read(ctx context.Context, portfolioID string) (AccountReading, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return AccountReading{}, fmt.Errorf("read account file: %w", err)
	}

	var doc struct {
		Equity      float64 `json:"equity"`
		Cash        float64 `json:"cash"`
		BuyingPower float64 `json:"buying_power"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return AccountReading{}, fmt.Errorf("parse account file: %w", err)
	}

	return AccountReading{
		Equity:      doc.Equity,
		Cash:        doc.Cash,
		BuyingPower: doc.BuyingPower,
	}, nil
}

// DirMarketData reads per-symbol CSV bar files from a directory the
// external data fetcher writes into. File name is <SYMBOL>.csv with a
// header row and columns time,open,high,low,close,volume; time is
// RFC3339.
type DirMarketData struct {
	Dir string
}

func (d DirMarketData) Candles(ctx context.Context, symbol string) ([]market.PricePoint, error) {
	path := filepath.Join(d.Dir, symbol+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read bars file: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	bars := make([]market.PricePoint, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 6 {
			return nil, fmt.Errorf("row %d: want 6 columns, got %d", i+2, len(row))
		}

		t, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse time: %w", i+2, err)
		}

		var vals [5]float64
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", i+2, j+2, err)
			}
			vals[j] = v
		}

		bars = append(bars, market.PricePoint{
			Time:   t,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}

	return bars, nil
}
