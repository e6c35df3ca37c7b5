package behavior

// alertedChaseState runs the target down at high speed until the external
// alert-break signal blinds it.
type alertedChaseState struct{ base }

func (*alertedChaseState) Kind() Kind { return AlertedChase }

func (*alertedChaseState) Enter(c *Controller) {
	c.resume()
	c.setSpeed(c.params.Speeds.Alert)
}

func (*alertedChaseState) Act(c *Controller, dt float64) {
	c.log.Debug("is alerted")
	if tp, ok := c.TargetPosition(); ok {
		c.SetDestination(tp)
	}
	c.faceTarget(c.params.Rotation.Alert, dt)
}

func (*alertedChaseState) CheckTransitions(c *Controller) {
	if c.env.Trigger != nil && c.env.Trigger.Fired() {
		c.SetState(Blind)
	}
}

// blindState stands still until it randomly recovers.
type blindState struct{ base }

func (*blindState) Kind() Kind { return Blind }

func (*blindState) Enter(c *Controller) {
	c.stop()
}

func (*blindState) Act(c *Controller, _ float64) {
	c.log.Debug("is blind")
}

func (*blindState) CheckTransitions(c *Controller) {
	if c.roll(c.params.Chances.BlindToIdle) {
		c.SetState(Idle)
	}
}
