package perf

import "math"

// TradeOutcome is the slice of a closed trade that statistics need.
type TradeOutcome struct {
	RealizedPL float64
	Winner     bool
}

// TradeStats summarizes a set of closed trades. WinRate is nil when
// there are no trades to rate. AverageLoss is reported as a positive
// magnitude.
type TradeStats struct {
	Total   int
	Winners int
	Losers  int

	WinRate      *float64
	AverageGain  float64
	AverageLoss  float64
	ProfitFactor float64
}

// ComputeTradeStats derives win rate, average gain/loss, and profit
// factor from closed trades.
//
// Profit factor policy: 0 when there are no losers and no gains;
// +Inf when there are gains but no losers.
func ComputeTradeStats(trades []TradeOutcome) TradeStats {
	s := TradeStats{Total: len(trades)}
	if len(trades) == 0 {
		return s
	}

	grossGain := 0.0
	grossLoss := 0.0
	for _, t := range trades {
		if t.Winner {
			s.Winners++
			grossGain += t.RealizedPL
		} else {
			s.Losers++
			grossLoss += -t.RealizedPL
		}
	}

	rate := round2(float64(s.Winners) / float64(s.Total) * 100)
	s.WinRate = &rate

	if s.Winners > 0 {
		s.AverageGain = round2(grossGain / float64(s.Winners))
	}
	if s.Losers > 0 {
		s.AverageLoss = round2(grossLoss / float64(s.Losers))
	}

	switch {
	case s.Losers > 0 && s.AverageLoss > 0:
		s.ProfitFactor = round2(s.AverageGain / s.AverageLoss)
	case s.AverageGain > 0:
		s.ProfitFactor = math.Inf(1)
	default:
		s.ProfitFactor = 0
	}

	return s
}
