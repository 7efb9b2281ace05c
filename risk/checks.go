package risk

import (
	"fmt"
	"slices"
)

// Rule codes in evaluation order.
const (
	RuleTradingHalted  = "TRADING_HALTED"
	RulePositionSize   = "POSITION_SIZE"
	RuleMaxPositions   = "MAX_POSITIONS"
	RuleDailyLoss      = "DAILY_LOSS"
	RuleDailyTrades    = "DAILY_TRADES"
	RuleDrawdownHalt   = "DRAWDOWN_HALT"
	RuleBuyingPower    = "BUYING_POWER"
	RuleDuplicateOrder = "DUPLICATE_ORDER"
	RulePriceBounds    = "PRICE_BOUNDS"
	RuleCashReserve    = "CASH_RESERVE"
	RulePDTLimit       = "PDT_LIMIT"
)

// Violation is one failed rule with a human-readable reason.
type Violation struct {
	Code string
	Msg  string
}

// Request bundles everything one prospective order is judged against.
// MinPrice/MaxPrice are optional bounds; nil disables the check.
type Request struct {
	Symbol     string
	OrderValue float64
	OrderPrice float64
	MinPrice   *float64
	MaxPrice   *float64

	PortfolioValue float64
	DayStartValue  float64
	CurrentValue   float64
	DrawdownPct    float64
	CashBalance    float64
	BuyingPower    float64
	TradingPaused  bool

	PositionCount  int
	TradesToday    int
	PendingSymbols []string

	AccountEquity        float64
	DayTradesInLast5Days int
}

// Result is the validator's verdict. Every rule is evaluated; the
// violations list holds all failures in evaluation order, not just the
// first. Warnings are advisory and never affect Approved.
type Result struct {
	Approved   bool
	Violations []Violation
	Warnings   []string
}

func (r *Result) add(code, msg string) {
	r.Violations = append(r.Violations, Violation{Code: code, Msg: msg})
	r.Approved = false
}

// ViolatedRules returns just the failing rule codes, in order.
func (r Result) ViolatedRules() []string {
	codes := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		codes[i] = v.Code
	}
	return codes
}

// ValidateTrade evaluates every rule independently and collects all
// failures.
func ValidateTrade(req Request, lim Limits) Result {
	res := Result{Approved: true}

	// 1. sticky halt: a paused portfolio approves nothing until a
	// manual resume, whatever the current drawdown reads
	if req.TradingPaused {
		res.add(RuleTradingHalted, "trading is halted; manual resume required")
	}

	// 2. position size against portfolio value
	sizePct := pctOf(req.OrderValue, req.PortfolioValue)
	if req.PortfolioValue <= 0 {
		res.add(RulePositionSize, "portfolio value must be positive to size a position")
	} else if sizePct > lim.MaxPositionPct {
		res.add(RulePositionSize,
			fmt.Sprintf("order is %.2f%% of portfolio, max %.2f%%", sizePct, lim.MaxPositionPct))
	}

	// 3. concurrent positions
	if req.PositionCount >= lim.MaxPositions {
		res.add(RuleMaxPositions,
			fmt.Sprintf("open positions %d >= max %d", req.PositionCount, lim.MaxPositions))
	}

	// 4. daily loss
	if req.DayStartValue > 0 {
		dayPct := (req.CurrentValue - req.DayStartValue) / req.DayStartValue * 100
		if dayPct <= -lim.MaxDailyLossPct {
			res.add(RuleDailyLoss,
				fmt.Sprintf("daily change %.2f%% at or below -%.2f%% limit", dayPct, lim.MaxDailyLossPct))
		}
	}

	// 5. daily trade count
	if req.TradesToday >= lim.MaxDailyTrades {
		res.add(RuleDailyTrades,
			fmt.Sprintf("trades today %d >= max %d", req.TradesToday, lim.MaxDailyTrades))
	}

	// 6. drawdown halt
	if req.DrawdownPct <= lim.HaltDrawdownPct {
		res.add(RuleDrawdownHalt,
			fmt.Sprintf("drawdown %.2f%% at or below halt threshold %.2f%%",
				req.DrawdownPct, lim.HaltDrawdownPct))
	}

	// 7. buying power
	if req.BuyingPower < req.OrderValue {
		res.add(RuleBuyingPower,
			fmt.Sprintf("buying power %.2f below order value %.2f", req.BuyingPower, req.OrderValue))
	}

	// 8. duplicate order
	if slices.Contains(req.PendingSymbols, req.Symbol) {
		res.add(RuleDuplicateOrder,
			fmt.Sprintf("a pending order already exists for %s", req.Symbol))
	}

	// 9. price bounds, when provided
	if req.MinPrice != nil && req.OrderPrice < *req.MinPrice {
		res.add(RulePriceBounds,
			fmt.Sprintf("price %.2f below minimum %.2f", req.OrderPrice, *req.MinPrice))
	}
	if req.MaxPrice != nil && req.OrderPrice > *req.MaxPrice {
		res.add(RulePriceBounds,
			fmt.Sprintf("price %.2f above maximum %.2f", req.OrderPrice, *req.MaxPrice))
	}

	// 10. cash reserve, when enabled
	if lim.MinCashPct > 0 {
		cashPct := pctOf(req.CashBalance, req.PortfolioValue)
		if cashPct < lim.MinCashPct {
			res.add(RuleCashReserve,
				fmt.Sprintf("cash %.2f%% of portfolio below reserve %.2f%%", cashPct, lim.MinCashPct))
		}
	}

	// 11. pattern day trader, only below the equity floor
	if req.AccountEquity < lim.PDTEquityFloor {
		if req.DayTradesInLast5Days >= lim.PDTMaxDayTrades {
			res.add(RulePDTLimit,
				fmt.Sprintf("%d day trades in last 5 days; one more would trip the PDT rule under $%.0f equity",
					req.DayTradesInLast5Days, lim.PDTEquityFloor))
		}
		if req.DayTradesInLast5Days == lim.PDTMaxDayTrades {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("at the PDT day-trade limit (%d in last 5 days)", req.DayTradesInLast5Days))
		}
	}

	return res
}
