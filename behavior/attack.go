package behavior

// attackState holds position and turns to face the target while it stays
// within engagement range.
type attackState struct{ base }

func (*attackState) Kind() Kind { return Attack }

func (*attackState) Enter(c *Controller) {
	c.stop()
}

func (*attackState) Act(c *Controller, dt float64) {
	c.log.Debug("is attacking")
	c.faceTarget(c.params.Rotation.Attack, dt)
}

func (*attackState) CheckTransitions(c *Controller) {
	if c.canPerceive() && !c.InEngagementRange() {
		c.SetState(Idle)
	}
}
