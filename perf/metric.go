package perf

import "time"

// PeriodType identifies the aggregation window of a Metric.
type PeriodType string

const (
	Daily   PeriodType = "daily"
	Weekly  PeriodType = "weekly"
	Monthly PeriodType = "monthly"
)

// Metric is one performance row per (PortfolioID, PeriodType,
// PeriodDate). Recomputation for the same key overwrites the stored
// row. SharpeRatio and WinRate are nil when there is no basis to
// compute them, never a misleading zero.
type Metric struct {
	PortfolioID string
	PeriodType  PeriodType
	PeriodDate  time.Time

	PortfolioValue  float64
	PeriodReturnPct float64
	TotalReturnPct  float64
	MaxDrawdownPct  float64
	SharpeRatio     *float64
	WinRate         *float64
	AlphaPct        *float64

	TotalTrades   int
	WinningTrades int
	LosingTrades  int
}

// PeriodInputs are the inputs common to every period aggregation.
// Prior is the previous metric of the same period type, nil for the
// first period; the initial capital then serves as the return basis.
type PeriodInputs struct {
	PortfolioID    string
	Date           time.Time
	Prior          *Metric
	Equity         float64
	InitialCapital float64
	DrawdownPct    float64
	Trades         []TradeOutcome
}

// MonthlyInputs extends PeriodInputs with the stored daily series of
// the month, needed for the month's Sharpe ratio and max drawdown.
type MonthlyInputs struct {
	PeriodInputs

	DailyReturns   []float64
	DailyValues    []float64
	RiskFreeAnnual float64
	BenchmarkPct   *float64
}

// DailyMetric aggregates one trading day.
func DailyMetric(in PeriodInputs) Metric {
	return periodMetric(Daily, in)
}

// WeeklyMetric aggregates one ISO week.
func WeeklyMetric(in PeriodInputs) Metric {
	return periodMetric(Weekly, in)
}

// MonthlyMetric aggregates one calendar month, adding the Sharpe ratio
// over the month's daily returns, the max drawdown over the month's
// daily values, and alpha against the benchmark when available.
func MonthlyMetric(in MonthlyInputs) Metric {
	m := periodMetric(Monthly, in.PeriodInputs)

	if sharpe, ok := SharpeRatio(in.DailyReturns, in.RiskFreeAnnual); ok {
		m.SharpeRatio = &sharpe
	}
	if len(in.DailyValues) > 0 {
		m.MaxDrawdownPct = MaxDrawdown(in.DailyValues)
	}
	if in.BenchmarkPct != nil {
		alpha := Alpha(m.PeriodReturnPct, *in.BenchmarkPct)
		m.AlphaPct = &alpha
	}

	return m
}

func periodMetric(pt PeriodType, in PeriodInputs) Metric {
	prev := in.InitialCapital
	if in.Prior != nil {
		prev = in.Prior.PortfolioValue
	}

	stats := ComputeTradeStats(in.Trades)

	return Metric{
		PortfolioID:     in.PortfolioID,
		PeriodType:      pt,
		PeriodDate:      in.Date,
		PortfolioValue:  in.Equity,
		PeriodReturnPct: PeriodReturn(prev, in.Equity),
		TotalReturnPct:  PeriodReturn(in.InitialCapital, in.Equity),
		MaxDrawdownPct:  round2(in.DrawdownPct),
		WinRate:         stats.WinRate,
		TotalTrades:     stats.Total,
		WinningTrades:   stats.Winners,
		LosingTrades:    stats.Losers,
	}
}
