package risk

import (
	"sync"
	"time"
)

// DayOpen captures a portfolio's first equity reading of each UTC
// trading day and serves it for the rest of the day. The daily-loss
// track measures against this value.
type DayOpen struct {
	mu     sync.Mutex
	day    string
	value  float64
	primed bool
}

// Capture returns the day-start value for the day containing now,
// recording equity as that value on the first call of the day.
func (d *DayOpen) Capture(now time.Time, equity float64) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	day := now.UTC().Format("2006-01-02")
	if !d.primed || d.day != day {
		d.day = day
		d.value = equity
		d.primed = true
	}
	return d.value
}
