package behavior

import (
	"io"
	"log/slog"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/config"
	"github.com/pthm-cable/npcbrain/route"
)

func testParams() config.BehaviorConfig {
	return config.BehaviorConfig{
		InitialState:    "idle",
		VisionDistance:  10,
		VisionHalfAngle: 30,
		EngageDistance:  7,
		ArrivalEpsilon:  2,
		ChaseRange:      6,
		FleeDistance:    8,
		TargetTag:       "player",
		PursueEngages:   true,
		Speeds:          config.SpeedConfig{Patrol: 5, Pursue: 5, Alert: 40, Wander: 2, Chase: 4, Cry: 6},
		Chances:         config.ChanceConfig{IdleToPatrol: 0.1, PatrolToAlert: 0.0001, BlindToIdle: 0.001},
		Rotation:        config.RotationConfig{Attack: 2, Alert: 20},
		Timers:          config.TimerConfig{Wander: 5, Cry: 3},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeBody struct {
	pos, fwd r3.Vec
}

func (b *fakeBody) Position() r3.Vec    { return b.pos }
func (b *fakeBody) Forward() r3.Vec     { return b.fwd }
func (b *fakeBody) SetForward(v r3.Vec) { b.fwd = v }

type fakeMover struct {
	speed        float64
	stopped      bool
	stops        int
	remaining    float64
	activePath   bool
	reached      bool
	destinations []r3.Vec
}

func (m *fakeMover) SetDestination(p r3.Vec) bool {
	m.destinations = append(m.destinations, p)
	m.activePath = true
	return true
}

func (m *fakeMover) Stop() {
	m.stopped = true
	m.stops++
}

func (m *fakeMover) SetSpeed(v float64)         { m.speed = v }
func (m *fakeMover) Resume()                    { m.stopped = false }
func (m *fakeMover) RemainingDistance() float64 { return m.remaining }
func (m *fakeMover) HasActivePath() bool        { return m.activePath }
func (m *fakeMover) DestinationReached() bool   { return m.reached }

type fakeTarget struct {
	pos     r3.Vec
	present bool
}

func (t *fakeTarget) Position() (r3.Vec, bool) { return t.pos, t.present }

type fakeWorld map[string]bool

func (w fakeWorld) InRange(tag string, _ r3.Vec, _ float64) bool { return w[tag] }

type fakeTrigger struct{ fired bool }

func (t *fakeTrigger) Fired() bool { return t.fired }

type fixedRand struct{ v float64 }

func (r *fixedRand) Float64() float64 { return r.v }

type fixedPoint struct{ p r3.Vec }

func (f fixedPoint) WanderPoint() r3.Vec { return f.p }

type recorder struct {
	cues        []string
	transitions []Transition
}

func (r *recorder) OnEnterVisualCue(_, cue string) { r.cues = append(r.cues, cue) }
func (r *recorder) OnTransition(t Transition)      { r.transitions = append(r.transitions, t) }

type harness struct {
	c       *Controller
	body    *fakeBody
	mover   *fakeMover
	target  *fakeTarget
	world   fakeWorld
	trigger *fakeTrigger
	rng     *fixedRand
	rec     *recorder
}

// newHarness wires a controller to fakes: agent at the origin facing +Z,
// no target, random rolls at 0.5.
func newHarness(t *testing.T, initial Kind, waypoints []r3.Vec, tweak func(*config.BehaviorConfig)) *harness {
	t.Helper()

	params := testParams()
	params.InitialState = initial.String()
	if tweak != nil {
		tweak(&params)
	}

	h := &harness{
		body:    &fakeBody{fwd: r3.Vec{Z: 1}},
		mover:   &fakeMover{remaining: 100},
		target:  &fakeTarget{},
		world:   fakeWorld{},
		trigger: &fakeTrigger{},
		rng:     &fixedRand{v: 0.5},
		rec:     &recorder{},
	}

	c, err := New("npc", params, Env{
		Body:      h.body,
		Mover:     h.mover,
		Target:    h.target,
		World:     h.world,
		Route:     route.New(waypoints),
		Wander:    fixedPoint{p: r3.Vec{X: 42, Z: 42}},
		Presenter: h.rec,
		Trigger:   h.trigger,
		Rand:      h.rng,
		Listener:  h.rec,
		Logger:    quietLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.c = c
	return h
}

func (h *harness) placeTarget(p r3.Vec) {
	h.target.pos = p
	h.target.present = true
}

func (h *harness) requireKind(t *testing.T, want Kind) {
	t.Helper()
	if got := h.c.CurrentKind(); got != want {
		t.Fatalf("current state = %s, want %s", got, want)
	}
}
