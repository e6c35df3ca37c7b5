package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/npcbrain/behavior"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDwellStats(t *testing.T) {
	mean, p10, p50, p90 := ComputeDwellStats([]float64{5, 1, 3, 2, 4})

	if math.Abs(mean-3) > 0.001 || math.Abs(p50-3) > 0.001 {
		t.Errorf("mean=%v p50=%v, want 3 and 3", mean, p50)
	}
	if math.Abs(p10-1.4) > 0.001 || math.Abs(p90-4.6) > 0.001 {
		t.Errorf("p10=%v p90=%v, want 1.4 and 4.6", p10, p90)
	}

	if mean, p10, p50, p90 := ComputeDwellStats(nil); mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestOccupancyFields(t *testing.T) {
	var s WindowStats
	for i, k := range behavior.Kinds() {
		s.setOccupancy(k, float64(i+1)/100)
	}
	for i, k := range behavior.Kinds() {
		if got := s.Occupancy(k); got != float64(i+1)/100 {
			t.Errorf("Occupancy(%s) = %v", k, got)
		}
	}
	if s.Occupancy(behavior.Kind(77)) != 0 {
		t.Error("unknown kind should have no occupancy")
	}
}
