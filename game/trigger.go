package game

import "github.com/pthm-cable/npcbrain/behavior"

var _ behavior.Trigger = (*AlertTrigger)(nil)

// AlertTrigger is the external alert-break signal. It fires every interval
// ticks and on request. The value is latched per tick so every controller
// sampling it in that tick sees the same answer.
type AlertTrigger struct {
	interval  uint64
	requested bool
	firing    bool
}

// NewAlertTrigger creates a trigger firing every interval ticks (0 = only on request).
func NewAlertTrigger(interval int) *AlertTrigger {
	return &AlertTrigger{interval: uint64(max(interval, 0))}
}

// Request fires the signal on the next latched tick.
func (t *AlertTrigger) Request() {
	t.requested = true
}

// Latch fixes the signal for tick and reports whether it fires.
func (t *AlertTrigger) Latch(tick uint64) bool {
	t.firing = t.requested || (t.interval > 0 && tick > 0 && tick%t.interval == 0)
	t.requested = false
	return t.firing
}

// Fired reports the value latched for the running tick.
func (t *AlertTrigger) Fired() bool {
	return t.firing
}
