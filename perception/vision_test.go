package perception

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestCanSeeTarget(t *testing.T) {
	origin := r3.Vec{}
	forward := r3.Vec{Z: 1}

	tests := []struct {
		name      string
		target    r3.Vec
		visDist   float64
		halfAngle float64
		want      bool
	}{
		{"straight ahead", r3.Vec{Z: 5}, 10, 30, true},
		{"inside cone", r3.Vec{X: 1, Z: 5}, 10, 30, true},
		{"outside cone", r3.Vec{X: 5, Z: 5}, 10, 30, false},
		{"behind", r3.Vec{Z: -5}, 10, 30, false},
		{"too far", r3.Vec{Z: 15}, 10, 30, false},
		{"distance equals vis dist", r3.Vec{Z: 10}, 10, 30, false},
		{"just inside vis dist", r3.Vec{Z: 9.999}, 10, 30, true},
		{"angle equals half angle", r3.Vec{X: 5}, 10, 90, false},
		{"just inside wide cone", r3.Vec{X: 5, Z: 0.01}, 10, 90, true},
		{"on top of observer", r3.Vec{}, 10, 30, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CanSeeTarget(origin, forward, tc.target, tc.visDist, tc.halfAngle)
			if got != tc.want {
				t.Errorf("CanSeeTarget(%v) = %v, want %v", tc.target, got, tc.want)
			}
		})
	}
}

// TestCanSeeTargetIgnoresObstacles documents that the cone test has no
// line-of-sight component: it only looks at geometry.
func TestCanSeeTargetIgnoresObstacles(t *testing.T) {
	observer := r3.Vec{X: 10, Z: 10}
	forward := r3.Vec{X: 1}
	target := r3.Vec{X: 18, Z: 10}

	if !CanSeeTarget(observer, forward, target, 10, 30) {
		t.Error("expected target in cone to be visible regardless of walls")
	}
}

func TestInEngagementRange(t *testing.T) {
	tests := []struct {
		name   string
		target r3.Vec
		want   bool
	}{
		{"close", r3.Vec{X: 3}, true},
		{"boundary", r3.Vec{Z: 7}, false},
		{"far", r3.Vec{X: 8}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := InEngagementRange(r3.Vec{}, tc.target, 7); got != tc.want {
				t.Errorf("InEngagementRange(%v) = %v, want %v", tc.target, got, tc.want)
			}
		})
	}
}

type stubQuery map[string]bool

func (q stubQuery) InRange(tag string, _ r3.Vec, _ float64) bool { return q[tag] }

func TestInRangeOfTag(t *testing.T) {
	q := stubQuery{"player": true}

	if !InRangeOfTag(q, "player", r3.Vec{}, 5) {
		t.Error("expected player in range")
	}
	if InRangeOfTag(q, "safe", r3.Vec{}, 5) {
		t.Error("expected unknown tag out of range")
	}
	if InRangeOfTag(nil, "player", r3.Vec{}, 5) {
		t.Error("nil query must report false")
	}
}
