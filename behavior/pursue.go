package behavior

// pursueState follows the live target until it slips out of sight.
type pursueState struct{ base }

func (*pursueState) Kind() Kind { return Pursue }

func (*pursueState) Enter(c *Controller) {
	c.setSpeed(c.params.Speeds.Pursue)
	c.resume()
}

func (*pursueState) Act(c *Controller, _ float64) {
	c.log.Debug("is pursuing")
	if tp, ok := c.TargetPosition(); ok {
		c.SetDestination(tp)
	}
}

func (*pursueState) CheckTransitions(c *Controller) {
	if !c.canPerceive() {
		return
	}
	if m := c.env.Mover; m != nil && m.HasActivePath() && !c.CanSeeTarget() {
		c.SetState(Patrol)
	} else if c.params.PursueEngages && c.InEngagementRange() {
		c.SetState(Attack)
	}
}
