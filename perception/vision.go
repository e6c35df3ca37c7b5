// Package perception provides the geometric predicates agents use to detect
// a target. There is no occlusion: a target inside the cone is seen through
// anything in between.
package perception

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/geom"
)

// Query reports whether an object carrying tag lies within radius of origin.
type Query interface {
	InRange(tag string, origin r3.Vec, radius float64) bool
}

// CanSeeTarget reports whether target lies inside the observer's vision cone:
// closer than visDist and less than halfAngle degrees off forward.
// Both bounds are strict.
func CanSeeTarget(observer, forward, target r3.Vec, visDist, halfAngle float64) bool {
	dir := r3.Sub(target, observer)
	if r3.Norm(dir) >= visDist {
		return false
	}
	cos, ok := geom.CosAngle(dir, forward)
	if !ok {
		// Target on top of the observer (or no facing): angle is zero.
		return halfAngle > 0
	}
	// Compare in cosine space so angle == halfAngle is rejected exactly.
	return cos > math.Cos(halfAngle*math.Pi/180)
}

// InEngagementRange reports whether target is strictly closer than engageDist.
func InEngagementRange(observer, target r3.Vec, engageDist float64) bool {
	return geom.Distance(observer, target) < engageDist
}

// InRangeOfTag delegates to the world query. A nil query sees nothing.
func InRangeOfTag(q Query, tag string, origin r3.Vec, radius float64) bool {
	if q == nil {
		return false
	}
	return q.InRange(tag, origin, radius)
}
