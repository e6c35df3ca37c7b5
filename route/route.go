// Package route holds the shared world points NPCs move between: the ordered
// patrol route and the random wander area.
package route

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/geom"
)

// Route is an ordered, fixed list of waypoints. It is never mutated after
// construction, so one Route may be shared by any number of controllers.
type Route struct {
	points []r3.Vec
}

// New copies points into a new Route.
func New(points []r3.Vec) *Route {
	return &Route{points: append([]r3.Vec(nil), points...)}
}

// Len returns the number of waypoints. A nil Route is empty.
func (r *Route) Len() int {
	if r == nil {
		return 0
	}
	return len(r.points)
}

// At returns waypoint i.
func (r *Route) At(i int) r3.Vec {
	return r.points[i]
}

// Nearest returns the index of the waypoint closest to p, or -1 when the
// route is empty. Ties keep the lowest index.
func (r *Route) Nearest(p r3.Vec) int {
	best := -1
	bestDist := math.Inf(1)
	for i := 0; i < r.Len(); i++ {
		d := geom.Distance(p, r.points[i])
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Next returns the index after i, wrapping to 0 past the last waypoint.
func (r *Route) Next(i int) int {
	if i >= r.Len()-1 {
		return 0
	}
	return i + 1
}
