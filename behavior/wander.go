package behavior

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/geom"
)

// wanderState drifts between random points for a while, then regroups on
// the patrol route. A tagged target in range starts a chase.
type wanderState struct {
	base
	timer float64
	limit float64
}

func (*wanderState) Kind() Kind { return Wander }

func (s *wanderState) Enter(c *Controller) {
	s.timer = 0
	s.limit = c.params.Timers.Wander
	c.setSpeed(c.params.Speeds.Wander)
	c.resume()
	c.ClearDestination()
	s.pickPoint(c)
}

func (s *wanderState) Act(c *Controller, dt float64) {
	c.log.Debug("is wandering")
	s.timer += dt

	m := c.env.Mover
	if m == nil {
		return
	}
	if _, ok := c.Destination(); !ok || m.DestinationReached() {
		s.pickPoint(c)
	}
}

func (s *wanderState) CheckTransitions(c *Controller) {
	if c.InRangeOfTag(c.params.TargetTag, c.params.ChaseRange) {
		c.SetState(Chase)
	}
	if s.timer > s.limit {
		c.SetState(Patrol)
	}
}

func (*wanderState) pickPoint(c *Controller) {
	if p, ok := c.WanderPoint(); ok {
		c.SetDestination(p)
	}
}

// chaseState follows the tagged target while it stays within chase range.
type chaseState struct{ base }

func (*chaseState) Kind() Kind { return Chase }

func (*chaseState) Enter(c *Controller) {
	c.setSpeed(c.params.Speeds.Chase)
	c.resume()
}

func (*chaseState) Act(c *Controller, _ float64) {
	c.log.Debug("is chasing")
	if tp, ok := c.TargetPosition(); ok {
		c.SetDestination(tp)
	}
}

func (*chaseState) CheckTransitions(c *Controller) {
	if c.env.World == nil || c.env.Body == nil {
		return
	}
	if !c.InRangeOfTag(c.params.TargetTag, c.params.ChaseRange) {
		c.SetState(Cry)
	}
}

// cryState flees away from the target for a fixed time, then wanders again.
type cryState struct {
	base
	timer float64
}

func (*cryState) Kind() Kind { return Cry }

func (s *cryState) Enter(c *Controller) {
	s.timer = 0
	c.setSpeed(c.params.Speeds.Cry)
	c.resume()
}

func (s *cryState) Act(c *Controller, dt float64) {
	c.log.Debug("is crying")
	s.timer += dt

	body := c.env.Body
	tp, ok := c.TargetPosition()
	if body == nil || !ok {
		return
	}
	pos := body.Position()
	away := geom.Toward(tp, pos)
	if away == (r3.Vec{}) {
		away = r3.Scale(-1, geom.Flatten(body.Forward()))
	}
	c.SetDestination(r3.Add(pos, r3.Scale(c.params.FleeDistance, away)))
}

func (s *cryState) CheckTransitions(c *Controller) {
	if s.timer > c.params.Timers.Cry {
		c.SetState(Wander)
	}
}
