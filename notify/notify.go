// Package notify defines the alert shapes the engine emits and the
// transport interface an operator plugs a real sender into.
package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/rustyeddy/sentry/risk"
)

// Priority orders alert delivery urgency.
type Priority int

const (
	PriorityInfo Priority = iota
	PriorityWarning
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityWarning:
		return "warning"
	case PriorityCritical:
		return "critical"
	default:
		return "info"
	}
}

// PriorityFor maps a risk severity to a delivery priority.
func PriorityFor(sev risk.Severity) Priority {
	switch sev {
	case risk.SeverityHalted:
		return PriorityCritical
	case risk.SeverityWarning:
		return PriorityWarning
	default:
		return PriorityInfo
	}
}

// Alert is one structured notification. The engine produces these; the
// transport formats and delivers them.
type Alert struct {
	ID       string
	Kind     string
	Priority Priority
	Subject  string
	Body     string
	Time     time.Time
}

// Notifier delivers alerts. Implementations must not be load-bearing:
// the engine persists state before sending and swallows send errors.
type Notifier interface {
	Send(Alert) error
}

// LogNotifier writes alerts to the process log. It is the default
// transport and the fallback when no sender is configured.
type LogNotifier struct{}

func (LogNotifier) Send(a Alert) error {
	log.Printf("[%s] %s: %s", a.Priority, a.Subject, a.Body)
	return nil
}

// Func adapts a function to the Notifier interface.
type Func func(Alert) error

func (f Func) Send(a Alert) error {
	return f(a)
}

// Format renders the conventional one-line subject for a risk
// assessment alert.
func Format(portfolioID string, a risk.Assessment) (subject, body string) {
	subject = fmt.Sprintf("%s %s: %s", portfolioID, a.Severity, a.Track)
	if a.HaltReason != "" {
		body = a.HaltReason
	} else {
		body = fmt.Sprintf("drawdown %.2f%%, daily %.2f%%", a.DrawdownPct, a.DailyLossPct)
	}
	return subject, body
}
