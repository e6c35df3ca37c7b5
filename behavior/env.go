package behavior

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/perception"
	"github.com/pthm-cable/npcbrain/route"
)

// Body exposes the agent's transform.
type Body interface {
	Position() r3.Vec
	Forward() r3.Vec
	SetForward(r3.Vec)
}

// Mover is the movement agent facade. Commands are fire-and-forget; the
// controller never looks at how paths are planned.
type Mover interface {
	SetDestination(p r3.Vec) bool
	SetSpeed(v float64)
	Stop()
	Resume()
	RemainingDistance() float64
	HasActivePath() bool
	DestinationReached() bool
}

// Target reports the live position of the tracked target.
// ok is false while the target does not exist.
type Target interface {
	Position() (p r3.Vec, ok bool)
}

// PointSource produces wander destinations.
type PointSource interface {
	WanderPoint() r3.Vec
}

// Presenter receives fire-and-forget visual cues on state entry.
type Presenter interface {
	OnEnterVisualCue(agentID, cue string)
}

// Trigger is the external alert-break signal, sampled once per tick.
type Trigger interface {
	Fired() bool
}

// Rand is the injected random source behind probability-driven transitions.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Transition records one accepted state swap.
type Transition struct {
	Tick    uint64
	AgentID string
	From    Kind
	To      Kind
}

// Listener is notified after every accepted swap.
type Listener interface {
	OnTransition(t Transition)
}

// Env bundles the collaborators a controller consults. Any of them may be
// nil; steps that need a missing collaborator do nothing that tick.
type Env struct {
	Body      Body
	Mover     Mover
	Target    Target
	World     perception.Query
	Route     *route.Route
	Wander    PointSource
	Presenter Presenter
	Trigger   Trigger
	Rand      Rand
	Listener  Listener
	Logger    *slog.Logger
}
