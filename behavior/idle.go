package behavior

// idleState stands still until it sees the target or randomly starts a patrol.
type idleState struct{ base }

func (*idleState) Kind() Kind { return Idle }

func (*idleState) Act(c *Controller, _ float64) {
	c.log.Debug("is idle")
}

func (*idleState) CheckTransitions(c *Controller) {
	if c.CanSeeTarget() {
		c.SetState(Pursue)
	} else if c.roll(c.params.Chances.IdleToPatrol) {
		c.SetState(Patrol)
	}
}
