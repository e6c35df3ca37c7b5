package telemetry

import (
	"log/slog"
	"sort"

	"github.com/pthm-cable/npcbrain/behavior"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Agents      int `csv:"agents"`
	Transitions int `csv:"transitions"`
	AlertBreaks int `csv:"alert_breaks"`

	// Share of agent-ticks spent in each state
	Idle         float64 `csv:"idle"`
	Patrol       float64 `csv:"patrol"`
	Pursue       float64 `csv:"pursue"`
	Attack       float64 `csv:"attack"`
	AlertedChase float64 `csv:"alerted_chase"`
	Blind        float64 `csv:"blind"`
	Wander       float64 `csv:"wander"`
	Chase        float64 `csv:"chase"`
	Cry          float64 `csv:"cry"`

	// Seconds spent in a state before leaving it
	DwellMean float64 `csv:"dwell_mean"`
	DwellP10  float64 `csv:"dwell_p10"`
	DwellP50  float64 `csv:"dwell_p50"`
	DwellP90  float64 `csv:"dwell_p90"`
}

func (s *WindowStats) occupancyField(k behavior.Kind) *float64 {
	switch k {
	case behavior.Idle:
		return &s.Idle
	case behavior.Patrol:
		return &s.Patrol
	case behavior.Pursue:
		return &s.Pursue
	case behavior.Attack:
		return &s.Attack
	case behavior.AlertedChase:
		return &s.AlertedChase
	case behavior.Blind:
		return &s.Blind
	case behavior.Wander:
		return &s.Wander
	case behavior.Chase:
		return &s.Chase
	case behavior.Cry:
		return &s.Cry
	}
	return nil
}

func (s *WindowStats) setOccupancy(k behavior.Kind, frac float64) {
	if f := s.occupancyField(k); f != nil {
		*f = frac
	}
}

// Occupancy returns the share of agent-ticks spent in state k.
func (s WindowStats) Occupancy(k behavior.Kind) float64 {
	if f := s.occupancyField(k); f != nil {
		return *f
	}
	return 0
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDwellStats calculates mean and percentiles from dwell times.
func ComputeDwellStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("agents", s.Agents),
		slog.Int("transitions", s.Transitions),
		slog.Int("alert_breaks", s.AlertBreaks),
	}
	for _, k := range behavior.Kinds() {
		attrs = append(attrs, slog.Float64(k.String(), s.Occupancy(k)))
	}
	attrs = append(attrs,
		slog.Float64("dwell_mean", s.DwellMean),
		slog.Float64("dwell_p50", s.DwellP50),
		slog.Float64("dwell_p90", s.DwellP90),
	)
	return slog.GroupValue(attrs...)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
