package telemetry

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/pthm-cable/npcbrain/behavior"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(10, 0.5)

	c.OnTransition(behavior.Transition{Tick: 4, AgentID: "a", From: behavior.Idle, To: behavior.Patrol})
	c.OnTransition(behavior.Transition{Tick: 6, AgentID: "a", From: behavior.Patrol, To: behavior.Pursue})
	c.OnTransition(behavior.Transition{Tick: 3, AgentID: "b", From: behavior.Idle, To: behavior.Wander})
	for range 3 {
		c.RecordOccupancy(behavior.Idle)
	}
	c.RecordOccupancy(behavior.Patrol)
	c.RecordAlertBreak()

	if c.ShouldFlush(9) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush at the window end")
	}

	s := c.Flush(10, 2)
	if s.Transitions != 3 || s.AlertBreaks != 1 || s.Agents != 2 {
		t.Errorf("counts = %d/%d/%d, want 3/1/2", s.Transitions, s.AlertBreaks, s.Agents)
	}
	if !scalar.EqualWithinAbs(s.Idle, 0.75, 1e-12) || !scalar.EqualWithinAbs(s.Patrol, 0.25, 1e-12) {
		t.Errorf("occupancy idle=%v patrol=%v, want 0.75 and 0.25", s.Idle, s.Patrol)
	}
	if !scalar.EqualWithinAbs(s.DwellMean, 1.5, 1e-12) || !scalar.EqualWithinAbs(s.DwellP50, 1.5, 1e-12) {
		t.Errorf("dwell mean=%v p50=%v, want 1.5", s.DwellMean, s.DwellP50)
	}
	if s.SimTimeSec != 5 || s.WindowStartTick != 0 || s.WindowEndTick != 10 {
		t.Errorf("window = [%d, %d] at %vs", s.WindowStartTick, s.WindowEndTick, s.SimTimeSec)
	}

	next := c.Flush(20, 2)
	if next.WindowStartTick != 10 || next.Transitions != 0 || next.Idle != 0 || next.DwellMean != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollectorJournal(t *testing.T) {
	c := NewCollector(10, 0.5)
	c.OnTransition(behavior.Transition{Tick: 4, AgentID: "a", From: behavior.Idle, To: behavior.Patrol})
	c.OnTransition(behavior.Transition{Tick: 6, AgentID: "a", From: behavior.Patrol, To: behavior.Pursue})

	j := c.DrainJournal()
	if len(j) != 2 {
		t.Fatalf("journal has %d records, want 2", len(j))
	}
	want := TransitionRecord{Tick: 6, SimTime: 3, Agent: "a", From: "patrol", To: "pursue", DwellSec: 1}
	if j[1] != want {
		t.Errorf("record = %+v, want %+v", j[1], want)
	}
	if again := c.DrainJournal(); len(again) != 0 {
		t.Errorf("second drain returned %d records", len(again))
	}
}
