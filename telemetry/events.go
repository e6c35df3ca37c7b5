// Package telemetry provides behavior transition journaling, windowed state
// occupancy stats, perf timing and bookmarks for notable windows.
package telemetry

import "github.com/pthm-cable/npcbrain/behavior"

// TransitionRecord is one row of the transition journal.
type TransitionRecord struct {
	Tick     uint64  `csv:"tick"`
	SimTime  float64 `csv:"sim_time"`
	Agent    string  `csv:"agent"`
	From     string  `csv:"from"`
	To       string  `csv:"to"`
	DwellSec float64 `csv:"dwell_sec"` // time spent in From
}

// NewTransitionRecord converts a controller transition into a journal row.
func NewTransitionRecord(tr behavior.Transition, dt, dwellSec float64) TransitionRecord {
	return TransitionRecord{
		Tick:     tr.Tick,
		SimTime:  float64(tr.Tick) * dt,
		Agent:    tr.AgentID,
		From:     tr.From.String(),
		To:       tr.To.String(),
		DwellSec: dwellSec,
	}
}
