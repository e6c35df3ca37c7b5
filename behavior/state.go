package behavior

import "fmt"

// State is one behavior mode. The set of implementations is closed: every
// State comes from newState, and Kind never changes after construction.
//
// Enter and Exit run exactly once per instance. Act and CheckTransitions run
// every tick while the state is current; either may call SetState on the
// controller, and CheckTransitions runs second so its request wins.
type State interface {
	Kind() Kind
	Enter(c *Controller)
	Act(c *Controller, dt float64)
	CheckTransitions(c *Controller)
	Exit(c *Controller)
}

// newState builds a fresh instance of the given kind. States are never reused.
func newState(k Kind) (State, error) {
	switch k {
	case Idle:
		return &idleState{}, nil
	case Patrol:
		return &patrolState{index: -1}, nil
	case Pursue:
		return &pursueState{}, nil
	case Attack:
		return &attackState{}, nil
	case AlertedChase:
		return &alertedChaseState{}, nil
	case Blind:
		return &blindState{}, nil
	case Wander:
		return &wanderState{}, nil
	case Chase:
		return &chaseState{}, nil
	case Cry:
		return &cryState{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
}

// base supplies no-op lifecycle hooks for states that do not need them.
type base struct{}

func (base) Enter(*Controller)            {}
func (base) Act(*Controller, float64)     {}
func (base) CheckTransitions(*Controller) {}
func (base) Exit(*Controller)             {}
