package telemetry

import "github.com/pthm-cable/npcbrain/behavior"

// Collector accumulates transitions and state occupancy within tick windows
// and produces WindowStats. It implements behavior.Listener.
type Collector struct {
	windowTicks uint64
	dt          float64

	// Current window tracking
	windowStartTick uint64

	// Counters for current window
	transitions int
	alertBreaks int
	agentTicks  int
	occupancy   map[behavior.Kind]int // agent-ticks spent per state
	dwell       []float64             // seconds spent in states left this window

	// Tick each agent entered its current state
	entered map[string]uint64

	journal []TransitionRecord
}

// NewCollector creates a new stats collector.
// windowTicks: ticks per stats window
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowTicks int, dt float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: uint64(windowTicks),
		dt:          dt,
		occupancy:   make(map[behavior.Kind]int),
		entered:     make(map[string]uint64),
	}
}

// OnTransition records an accepted state swap.
func (c *Collector) OnTransition(tr behavior.Transition) {
	dwell := float64(tr.Tick-c.entered[tr.AgentID]) * c.dt
	c.entered[tr.AgentID] = tr.Tick

	c.transitions++
	c.dwell = append(c.dwell, dwell)
	c.journal = append(c.journal, NewTransitionRecord(tr, c.dt, dwell))
}

// RecordOccupancy counts one agent-tick spent in state k.
func (c *Collector) RecordOccupancy(k behavior.Kind) {
	c.occupancy[k]++
	c.agentTicks++
}

// RecordAlertBreak counts one firing of the alert-break signal.
func (c *Collector) RecordAlertBreak() {
	c.alertBreaks++
}

// DrainJournal returns the transitions recorded since the last drain.
func (c *Collector) DrainJournal() []TransitionRecord {
	out := c.journal
	c.journal = nil
	return out
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick uint64, agents int) WindowStats {
	dwellMean, dwellP10, dwellP50, dwellP90 := ComputeDwellStats(c.dwell)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Agents:      agents,
		Transitions: c.transitions,
		AlertBreaks: c.alertBreaks,

		DwellMean: dwellMean,
		DwellP10:  dwellP10,
		DwellP50:  dwellP50,
		DwellP90:  dwellP90,
	}
	if c.agentTicks > 0 {
		for k, n := range c.occupancy {
			stats.setOccupancy(k, float64(n)/float64(c.agentTicks))
		}
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.transitions = 0
	c.alertBreaks = 0
	c.agentTicks = 0
	clear(c.occupancy)
	c.dwell = c.dwell[:0]

	return stats
}
