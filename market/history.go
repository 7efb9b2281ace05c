package market

import "time"

// History is the ordered price series for a single symbol.
// Points are ascending by time; the collection owns its bars.
type History struct {
	Symbol string
	Points []PricePoint
}

// Closes returns the close prices in chronological order.
func (h History) Closes() []float64 {
	closes := make([]float64, len(h.Points))
	for i, p := range h.Points {
		closes[i] = p.Close
	}
	return closes
}

// Last returns the most recent bar, or false when the history is empty.
func (h History) Last() (PricePoint, bool) {
	if len(h.Points) == 0 {
		return PricePoint{}, false
	}
	return h.Points[len(h.Points)-1], true
}

// Window returns the bars with start <= Time < end, preserving order.
func (h History) Window(start, end time.Time) []PricePoint {
	var out []PricePoint
	for _, p := range h.Points {
		if p.Time.Before(start) || !p.Time.Before(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Append adds a bar to the end of the series. Bars must arrive in
// chronological order; out-of-order bars are dropped.
func (h *History) Append(p PricePoint) bool {
	if last, ok := h.Last(); ok && !p.Time.After(last.Time) {
		return false
	}
	h.Points = append(h.Points, p)
	return true
}

// BenchmarkReturn computes the percent return of the symbol over the
// bars inside [start, end): (lastClose-firstClose)/firstClose*100.
// Returns false when fewer than two bars fall inside the window or the
// first close is not positive.
func (h History) BenchmarkReturn(start, end time.Time) (float64, bool) {
	w := h.Window(start, end)
	if len(w) < 2 {
		return 0, false
	}
	first := w[0].Close
	last := w[len(w)-1].Close
	if first <= 0 {
		return 0, false
	}
	return (last - first) / first * 100, true
}
