package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/sentry/risk"
)

func TestPriorityFor(t *testing.T) {
	assert.Equal(t, PriorityInfo, PriorityFor(risk.SeverityOK))
	assert.Equal(t, PriorityWarning, PriorityFor(risk.SeverityWarning))
	assert.Equal(t, PriorityCritical, PriorityFor(risk.SeverityHalted))
}

func TestFormat(t *testing.T) {
	subject, body := Format("MAIN", risk.Assessment{
		Severity:     risk.SeverityWarning,
		Track:        risk.TrackDrawdown,
		DrawdownPct:  -16.5,
		DailyLossPct: -1.2,
	})
	assert.Equal(t, "MAIN WARNING: drawdown", subject)
	assert.Equal(t, "drawdown -16.50%, daily -1.20%", body)

	_, body = Format("MAIN", risk.Assessment{
		Severity:   risk.SeverityHalted,
		Track:      risk.TrackDailyLoss,
		HaltReason: "daily loss -5.40% breached halt threshold -5.00%",
	})
	assert.Equal(t, "daily loss -5.40% breached halt threshold -5.00%", body)
}

func TestFuncAdapter(t *testing.T) {
	var got Alert
	n := Func(func(a Alert) error {
		got = a
		return nil
	})
	assert.NoError(t, n.Send(Alert{ID: "x", Priority: PriorityCritical}))
	assert.Equal(t, "x", got.ID)
}
