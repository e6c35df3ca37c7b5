package behavior

// patrolState walks the shared route in order, wrapping at the end.
type patrolState struct {
	base
	index int // last commanded waypoint; -1 before the first
}

func (*patrolState) Kind() Kind { return Patrol }

// Enter starts one index before the nearest waypoint so the first Act
// heads for it.
func (s *patrolState) Enter(c *Controller) {
	c.setSpeed(c.params.Speeds.Patrol)
	c.resume()

	s.index = -1
	if nearest := c.NearestWaypoint(); nearest >= 0 {
		s.index = nearest - 1
	}
}

func (s *patrolState) Act(c *Controller, _ float64) {
	c.log.Debug("is patrolling", "waypoint", s.index)

	if m := c.env.Mover; m != nil && c.env.Route.Len() > 0 {
		if m.RemainingDistance() < c.params.ArrivalEpsilon {
			s.index = c.env.Route.Next(s.index)
			if p, ok := c.Waypoint(s.index); ok {
				c.SetDestination(p)
			}
		}
	}

	if c.roll(c.params.Chances.PatrolToAlert) {
		c.SetState(AlertedChase)
	}
}

func (*patrolState) CheckTransitions(c *Controller) {
	if c.CanSeeTarget() {
		c.SetState(Pursue)
	}
}
