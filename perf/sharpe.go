package perf

import (
	"math"

	"github.com/montanaflynn/stats"
)

// tradingDaysPerYear annualizes daily period returns.
const tradingDaysPerYear = 252

// SharpeRatio annualizes the mean of the period returns against the
// risk-free rate (an annual fraction, e.g. 0.05), over sample (N-1)
// standard deviation:
//
//	(mean*252 - riskFree*100) / (stddev * sqrt(252))
//
// Fewer than two data points is no basis for a ratio and returns
// ok=false; a zero standard deviation returns 0.
func SharpeRatio(periodReturns []float64, riskFreeAnnual float64) (float64, bool) {
	if len(periodReturns) < 2 {
		return 0, false
	}

	mean, err := stats.Mean(periodReturns)
	if err != nil {
		return 0, false
	}
	stddev, err := stats.StandardDeviationSample(periodReturns)
	if err != nil {
		return 0, false
	}
	if stddev == 0 {
		return 0, true
	}

	sharpe := (mean*tradingDaysPerYear - riskFreeAnnual*100) / (stddev * math.Sqrt(tradingDaysPerYear))
	return round2(sharpe), true
}
