// Package perf computes portfolio performance statistics: period
// returns, drawdown, Sharpe ratio, trade statistics, and benchmark
// alpha. All functions are pure; percentages and ratios are rounded to
// two decimals.
package perf

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PeriodReturn is the percent change from prev to curr. A non-positive
// prev has no return basis and yields 0. Applies identically to
// daily/weekly/monthly/total returns.
func PeriodReturn(prev, curr float64) float64 {
	if prev <= 0 {
		return 0
	}
	return round2((curr - prev) / prev * 100)
}

// Alpha is the portfolio return minus the benchmark return over the
// same window, in percentage points.
func Alpha(portfolioPct, benchmarkPct float64) float64 {
	return round2(portfolioPct - benchmarkPct)
}

// MaxDrawdown scans the value series chronologically, tracking the
// running peak, and returns the most negative percent decline from that
// peak. The peak never resets on recovery. Result is <= 0.
func MaxDrawdown(values []float64) float64 {
	peak := 0.0
	maxDD := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (v - peak) / peak * 100
			if dd < maxDD {
				maxDD = dd
			}
		}
	}
	return round2(maxDD)
}
