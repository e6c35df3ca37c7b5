package navigation

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/behavior"
	"github.com/pthm-cable/npcbrain/components"
	"github.com/pthm-cable/npcbrain/geom"
)

// Agent follows A* paths toward the last commanded destination. It
// satisfies the behavior controller's movement facade; the host advances it
// once per tick with Step.
type Agent struct {
	planner *AStarPlanner

	pos     r3.Vec
	speed   float64
	stopped bool

	path    []r3.Vec // remaining waypoints start at path[index]
	index   int
	goal    r3.Vec
	goalGX  int
	goalGZ  int
	hasGoal bool
	reached bool
	replans int
}

var _ behavior.Mover = (*Agent)(nil)

// NewAgent creates an agent standing at start.
func NewAgent(planner *AStarPlanner, start r3.Vec) *Agent {
	return &Agent{planner: planner, pos: start}
}

// SetDestination plans a path to p. A destination in the same grid cell as
// the current one keeps the existing path and only moves its end point.
// It returns false when no path exists.
func (a *Agent) SetDestination(p r3.Vec) bool {
	grid := a.planner.Grid()
	gx, gz := grid.WorldToGrid(p)

	if a.hasGoal && !a.reached && gx == a.goalGX && gz == a.goalGZ && a.index < len(a.path) {
		a.goal = p
		if !grid.IsBlockedWorld(p) {
			a.path[len(a.path)-1] = p
		}
		return true
	}

	path := a.planner.FindPath(a.pos, p)
	a.replans++
	if path == nil {
		a.clearPath()
		return false
	}

	// The exact goal replaces its cell center when it is reachable.
	if !grid.IsBlockedWorld(p) {
		path[len(path)-1] = p
	}

	a.path = path
	a.index = 0
	// Skip the start cell center when there is somewhere further to go.
	if len(path) > 1 {
		a.index = 1
	}
	a.goal = p
	a.goalGX, a.goalGZ = gx, gz
	a.hasGoal = true
	a.reached = false
	return true
}

func (a *Agent) clearPath() {
	a.path = nil
	a.index = 0
	a.hasGoal = false
	a.reached = false
}

// SetSpeed sets the travel speed in world units per second.
func (a *Agent) SetSpeed(v float64) { a.speed = v }

// Stop halts movement. The path is kept.
func (a *Agent) Stop() { a.stopped = true }

// Resume continues along the current path.
func (a *Agent) Resume() { a.stopped = false }

// HasActivePath reports whether there are waypoints left to follow.
func (a *Agent) HasActivePath() bool {
	return a.index < len(a.path)
}

// DestinationReached reports whether the last path was walked to its end.
func (a *Agent) DestinationReached() bool {
	return a.reached
}

// RemainingDistance returns the length of the path still ahead, or 0
// without a path.
func (a *Agent) RemainingDistance() float64 {
	if !a.HasActivePath() {
		return 0
	}
	total := geom.Distance(a.pos, a.path[a.index])
	for i := a.index + 1; i < len(a.path); i++ {
		total += geom.Distance(a.path[i-1], a.path[i])
	}
	return total
}

// Path returns the waypoints still ahead.
func (a *Agent) Path() []r3.Vec {
	if !a.HasActivePath() {
		return nil
	}
	return a.path[a.index:]
}

// Replans returns how many times a new path has been planned.
func (a *Agent) Replans() int {
	return a.replans
}

// Step moves the transform along the path by speed*dt and turns it to face
// the direction of travel.
func (a *Agent) Step(t *components.Transform, dt float64) {
	a.pos = t.Position
	if a.stopped || !a.HasActivePath() || a.speed <= 0 || dt <= 0 {
		return
	}

	start := a.pos
	budget := a.speed * dt
	for budget > 0 && a.HasActivePath() {
		wp := a.path[a.index]
		wp.Y = a.pos.Y
		d := geom.Distance(a.pos, wp)
		if d <= budget {
			a.pos = wp
			budget -= d
			a.index++
			continue
		}
		a.pos = r3.Add(a.pos, r3.Scale(budget/d, r3.Sub(wp, a.pos)))
		budget = 0
	}

	if !a.HasActivePath() {
		a.reached = true
	}

	if dir := geom.Toward(start, a.pos); dir != (r3.Vec{}) {
		t.Forward = dir
	}
	t.Position = a.pos
}
