// Package behavior implements the per-agent NPC state machine: one active
// state per agent, driven once per tick through Enter, Act, CheckTransitions
// and Exit, with at most one state swap per tick.
package behavior

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/config"
	"github.com/pthm-cable/npcbrain/geom"
	"github.com/pthm-cable/npcbrain/perception"
)

// Controller owns the current behavior state of one agent.
type Controller struct {
	id     string
	params config.BehaviorConfig
	env    Env
	log    *slog.Logger

	current State
	entered bool
	pending State

	destination    r3.Vec
	hasDestination bool

	tick uint64
}

// New builds a controller whose initial state is params.InitialState
// (idle when empty). The initial state is entered on the first Tick.
func New(id string, params config.BehaviorConfig, env Env) (*Controller, error) {
	if err := validate(params); err != nil {
		return nil, fmt.Errorf("controller %s: %w", id, err)
	}

	initial := Idle
	if params.InitialState != "" {
		k, err := ParseKind(params.InitialState)
		if err != nil {
			return nil, fmt.Errorf("controller %s: initial state: %w", id, err)
		}
		initial = k
	}

	logger := env.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		id:     id,
		params: params,
		env:    env,
		log:    logger.With("agent", id),
	}
	c.current, _ = newState(initial)
	return c, nil
}

// Tick runs one lifecycle step of the current state. A transition requested
// during this tick is applied before Tick returns: the old state exits and
// the new one enters, but the new state's Act waits for the next tick.
func (c *Controller) Tick(dt float64) {
	c.tick++

	if !c.entered {
		c.enter(c.current)
	}

	c.current.Act(c, dt)
	c.current.CheckTransitions(c)

	if c.pending == nil {
		return
	}

	next := c.pending
	c.pending = nil
	prev := c.current

	prev.Exit(c)
	c.current = next
	c.enter(next)

	c.log.Debug("state transition", "from", prev.Kind(), "to", next.Kind(), "tick", c.tick)
	if c.env.Listener != nil {
		c.env.Listener.OnTransition(Transition{
			Tick:    c.tick,
			AgentID: c.id,
			From:    prev.Kind(),
			To:      next.Kind(),
		})
	}
}

func (c *Controller) enter(s State) {
	c.entered = true
	s.Enter(c)
	if c.env.Presenter != nil {
		c.env.Presenter.OnEnterVisualCue(c.id, s.Kind().Cue())
	}
}

// SetState requests a transition to k, taking effect at the end of the
// current tick. A later request in the same tick replaces an earlier one.
// Unknown kinds are a programmer error: they panic in strict mode and are
// logged and ignored otherwise, leaving the current state untouched.
func (c *Controller) SetState(k Kind) {
	s, err := newState(k)
	if err != nil {
		if c.params.Strict {
			panic(fmt.Sprintf("behavior: agent %s: %v", c.id, err))
		}
		c.log.Error("ignoring transition request", "error", err, "state", c.current.Kind())
		return
	}
	c.pending = s
}

// ID returns the agent identifier.
func (c *Controller) ID() string { return c.id }

// Params returns the behavior parameters the controller was built with.
// Ticks returns the number of Tick calls so far.
func (c *Controller) Ticks() uint64 { return c.tick }

// Current returns the active state. It is never nil.
func (c *Controller) Current() State { return c.current }

// CurrentKind returns the kind of the active state.
func (c *Controller) CurrentKind() Kind { return c.current.Kind() }

// Pending returns the transition requested so far in the running tick.
func (c *Controller) Pending() (Kind, bool) {
	if c.pending == nil {
		return 0, false
	}
	return c.pending.Kind(), true
}

// Destination returns the last commanded target point.
func (c *Controller) Destination() (r3.Vec, bool) {
	return c.destination, c.hasDestination
}

// ClearDestination forgets the last commanded target point.
func (c *Controller) ClearDestination() {
	c.destination = r3.Vec{}
	c.hasDestination = false
}

// SetDestination records p as the destination and commands the mover toward it.
// It returns false when there is no mover.
func (c *Controller) SetDestination(p r3.Vec) bool {
	if c.env.Mover == nil {
		return false
	}
	c.destination = p
	c.hasDestination = true
	c.env.Mover.SetDestination(p)
	return true
}

// WanderPoint asks the point source for a new wander destination.
func (c *Controller) WanderPoint() (r3.Vec, bool) {
	if c.env.Wander == nil {
		return r3.Vec{}, false
	}
	return c.env.Wander.WanderPoint(), true
}

// NearestWaypoint returns the index of the route point closest to the body,
// or -1 when there is no body or the route is empty.
func (c *Controller) NearestWaypoint() int {
	if c.env.Body == nil {
		return -1
	}
	return c.env.Route.Nearest(c.env.Body.Position())
}

// Waypoint returns route point i.
func (c *Controller) Waypoint(i int) (r3.Vec, bool) {
	r := c.env.Route
	if i < 0 || i >= r.Len() {
		return r3.Vec{}, false
	}
	return r.At(i), true
}

// TargetPosition returns the live target position.
func (c *Controller) TargetPosition() (r3.Vec, bool) {
	if c.env.Target == nil {
		return r3.Vec{}, false
	}
	return c.env.Target.Position()
}

// canPerceive reports whether the body and target needed by the perception
// checks are both available.
func (c *Controller) canPerceive() bool {
	if c.env.Body == nil {
		return false
	}
	_, ok := c.TargetPosition()
	return ok
}

// CanSeeTarget runs the vision cone test against the live target.
func (c *Controller) CanSeeTarget() bool {
	if c.env.Body == nil {
		return false
	}
	tp, ok := c.TargetPosition()
	if !ok {
		return false
	}
	return perception.CanSeeTarget(c.env.Body.Position(), c.env.Body.Forward(), tp,
		c.params.VisionDistance, c.params.VisionHalfAngle)
}

// InEngagementRange reports whether the live target is within engage distance.
func (c *Controller) InEngagementRange() bool {
	if c.env.Body == nil {
		return false
	}
	tp, ok := c.TargetPosition()
	if !ok {
		return false
	}
	return perception.InEngagementRange(c.env.Body.Position(), tp, c.params.EngageDistance)
}

// InRangeOfTag asks the world query for an object tagged tag within radius.
func (c *Controller) InRangeOfTag(tag string, radius float64) bool {
	if c.env.Body == nil {
		return false
	}
	return perception.InRangeOfTag(c.env.World, tag, c.env.Body.Position(), radius)
}

// roll returns true with probability p. Without a random source it never fires.
func (c *Controller) roll(p float64) bool {
	if c.env.Rand == nil {
		return false
	}
	return c.env.Rand.Float64() < p
}

// faceTarget turns the body toward the target on the ground plane by
// fraction rate*dt of the remaining angle.
func (c *Controller) faceTarget(rate, dt float64) {
	if c.env.Body == nil {
		return
	}
	tp, ok := c.TargetPosition()
	if !ok {
		return
	}
	dir := geom.Flatten(r3.Sub(tp, c.env.Body.Position()))
	if r3.Norm(dir) == 0 {
		return
	}
	c.env.Body.SetForward(geom.SlerpDirection(c.env.Body.Forward(), dir, rate*dt))
}

func (c *Controller) setSpeed(v float64) {
	if c.env.Mover != nil {
		c.env.Mover.SetSpeed(v)
	}
}

func (c *Controller) resume() {
	if c.env.Mover != nil {
		c.env.Mover.Resume()
	}
}

func (c *Controller) stop() {
	if c.env.Mover != nil {
		c.env.Mover.Stop()
	}
}

func validate(p config.BehaviorConfig) error {
	switch {
	case p.VisionDistance <= 0:
		return fmt.Errorf("%w: vision_distance must be positive, got %v", ErrInvalidParams, p.VisionDistance)
	case p.VisionHalfAngle <= 0 || p.VisionHalfAngle > 180:
		return fmt.Errorf("%w: vision_half_angle must be in (0, 180], got %v", ErrInvalidParams, p.VisionHalfAngle)
	case p.EngageDistance <= 0:
		return fmt.Errorf("%w: engage_distance must be positive, got %v", ErrInvalidParams, p.EngageDistance)
	case p.ArrivalEpsilon < 0 || p.ChaseRange < 0 || p.FleeDistance < 0:
		return fmt.Errorf("%w: distances must not be negative", ErrInvalidParams)
	}

	for name, v := range map[string]float64{
		"idle_to_patrol":  p.Chances.IdleToPatrol,
		"patrol_to_alert": p.Chances.PatrolToAlert,
		"blind_to_idle":   p.Chances.BlindToIdle,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: chance %s must be in [0, 1], got %v", ErrInvalidParams, name, v)
		}
	}

	s := p.Speeds
	if s.Patrol < 0 || s.Pursue < 0 || s.Alert < 0 || s.Wander < 0 || s.Chase < 0 || s.Cry < 0 {
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidParams)
	}
	if p.Rotation.Attack < 0 || p.Rotation.Alert < 0 {
		return fmt.Errorf("%w: rotation rates must not be negative", ErrInvalidParams)
	}
	if p.Timers.Wander < 0 || p.Timers.Cry < 0 {
		return fmt.Errorf("%w: timers must not be negative", ErrInvalidParams)
	}
	return nil
}
