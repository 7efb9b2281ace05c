// Package risk classifies live portfolio state into OK/WARNING/HALTED
// severities and validates prospective trades against a rule set.
package risk

// Thresholds are the severity cut-offs for the two monitoring tracks.
// All values are percentages and negative: a drawdown of -16% is at or
// below DrawdownWarnPct.
type Thresholds struct {
	DrawdownWarnPct  float64
	DrawdownHaltPct  float64
	DailyLossWarnPct float64
	DailyLossHaltPct float64
}

// DefaultThresholds returns the standard monitoring cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DrawdownWarnPct:  -15,
		DrawdownHaltPct:  -20,
		DailyLossWarnPct: -4,
		DailyLossHaltPct: -5,
	}
}

// Limits bound what a single prospective order may do to the portfolio.
type Limits struct {
	MaxPositionPct  float64 // order value as % of portfolio value
	MaxPositions    int     // concurrent open positions
	MaxDailyLossPct float64 // positive magnitude; -5% daily change violates 5
	MaxDailyTrades  int
	HaltDrawdownPct float64 // at or below this drawdown all orders are rejected
	MinCashPct      float64 // 0 disables the cash reserve rule

	PDTEquityFloor  float64 // pattern-day-trader rule applies below this equity
	PDTMaxDayTrades int
}

// DefaultLimits returns the standard per-order limits.
func DefaultLimits() Limits {
	return Limits{
		MaxPositionPct:  10,
		MaxPositions:    10,
		MaxDailyLossPct: 5,
		MaxDailyTrades:  20,
		HaltDrawdownPct: -20,
		MinCashPct:      0,
		PDTEquityFloor:  25000,
		PDTMaxDayTrades: 3,
	}
}
