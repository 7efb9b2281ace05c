package risk

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// pctOf returns part as a percentage of whole, 0 when whole is not
// positive.
func pctOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
