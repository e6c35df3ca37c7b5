package behavior

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/config"
)

func TestNewValidatesParams(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(*config.BehaviorConfig)
		want  error
	}{
		{"zero vision distance", func(p *config.BehaviorConfig) { p.VisionDistance = 0 }, ErrInvalidParams},
		{"half angle too wide", func(p *config.BehaviorConfig) { p.VisionHalfAngle = 181 }, ErrInvalidParams},
		{"negative engage", func(p *config.BehaviorConfig) { p.EngageDistance = -1 }, ErrInvalidParams},
		{"chance above one", func(p *config.BehaviorConfig) { p.Chances.BlindToIdle = 1.5 }, ErrInvalidParams},
		{"negative speed", func(p *config.BehaviorConfig) { p.Speeds.Alert = -40 }, ErrInvalidParams},
		{"unknown initial state", func(p *config.BehaviorConfig) { p.InitialState = "dance" }, ErrUnknownKind},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := testParams()
			tc.tweak(&p)
			_, err := New("npc", p, Env{})
			if !errors.Is(err, tc.want) {
				t.Errorf("New error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNewDefaultsToIdle(t *testing.T) {
	p := testParams()
	p.InitialState = ""
	c, err := New("npc", p, Env{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.CurrentKind() != Idle {
		t.Errorf("initial state = %s, want idle", c.CurrentKind())
	}
}

// TestCurrentNeverNil checks the no-null invariant: a state is current
// before the first tick and after every tick, and it matches the last
// accepted transition.
func TestCurrentNeverNil(t *testing.T) {
	h := newHarness(t, Idle, nil, nil)
	if h.c.Current() == nil {
		t.Fatal("current state is nil before the first tick")
	}

	h.placeTarget(r3.Vec{Z: 5})
	for i := 0; i < 20; i++ {
		if i == 10 {
			h.placeTarget(r3.Vec{Z: 50})
		}
		h.c.Tick(0.1)
		if h.c.Current() == nil {
			t.Fatalf("tick %d: current state is nil", i)
		}
		if n := len(h.rec.transitions); n > 0 {
			if last := h.rec.transitions[n-1]; last.To != h.c.CurrentKind() {
				t.Fatalf("tick %d: current %s does not match last transition %s", i, h.c.CurrentKind(), last.To)
			}
		}
	}
}

// TestEnterRunsOnce verifies Act/CheckTransitions run every tick while
// Enter and Exit do not repeat when nothing is pending.
func TestEnterRunsOnce(t *testing.T) {
	h := newHarness(t, Idle, nil, nil)
	h.rng.v = 0.99

	for i := 0; i < 10; i++ {
		h.c.Tick(0.1)
	}

	if len(h.rec.cues) != 1 {
		t.Errorf("enter cues = %v, want exactly one", h.rec.cues)
	}
	if len(h.rec.transitions) != 0 {
		t.Errorf("unexpected transitions: %v", h.rec.transitions)
	}
	if h.c.Ticks() != 10 {
		t.Errorf("Ticks = %d, want 10", h.c.Ticks())
	}
}

// TestSingleTransitionPerTick has Act and CheckTransitions both request a
// swap in the same tick; only the later request is applied.
func TestSingleTransitionPerTick(t *testing.T) {
	h := newHarness(t, Patrol, []r3.Vec{{X: 20}}, func(p *config.BehaviorConfig) {
		p.Chances.PatrolToAlert = 1
	})
	h.rng.v = 0
	h.placeTarget(r3.Vec{Z: 9})

	h.c.Tick(0.1)

	h.requireKind(t, Pursue)
	if len(h.rec.transitions) != 1 {
		t.Fatalf("transitions = %v, want one", h.rec.transitions)
	}
	if tr := h.rec.transitions[0]; tr.From != Patrol || tr.To != Pursue || tr.AgentID != "npc" || tr.Tick != 1 {
		t.Errorf("transition = %+v", tr)
	}
	if want := []string{Patrol.Cue(), Pursue.Cue()}; len(h.rec.cues) != 2 || h.rec.cues[0] != want[0] || h.rec.cues[1] != want[1] {
		t.Errorf("cues = %v, want %v", h.rec.cues, want)
	}
	if _, ok := h.c.Pending(); ok {
		t.Error("pending transition survived the tick")
	}
}

// TestNewStateActsNextTick verifies the state entered at the end of a tick
// does not run its Act until the following tick.
func TestNewStateActsNextTick(t *testing.T) {
	h := newHarness(t, Idle, nil, nil)
	h.placeTarget(r3.Vec{Z: 8})

	h.c.Tick(0.1)
	h.requireKind(t, Pursue)
	if len(h.mover.destinations) != 0 {
		t.Fatalf("pursue acted during the transition tick: %v", h.mover.destinations)
	}

	h.c.Tick(0.1)
	if len(h.mover.destinations) != 1 || h.mover.destinations[0] != (r3.Vec{Z: 8}) {
		t.Errorf("destinations = %v, want the target position", h.mover.destinations)
	}
	if d, ok := h.c.Destination(); !ok || d != (r3.Vec{Z: 8}) {
		t.Errorf("Destination = %v, %v", d, ok)
	}
}

func TestUnknownKindLenient(t *testing.T) {
	h := newHarness(t, Idle, nil, nil)
	h.rng.v = 0.99
	h.c.Tick(0.1)

	h.c.SetState(Kind(200))
	if _, ok := h.c.Pending(); ok {
		t.Fatal("unknown kind must not become pending")
	}

	h.c.Tick(0.1)
	h.requireKind(t, Idle)
}

func TestUnknownKindStrictPanics(t *testing.T) {
	h := newHarness(t, Idle, nil, func(p *config.BehaviorConfig) { p.Strict = true })

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown kind in strict mode")
		}
	}()
	h.c.SetState(numKinds)
}

func TestUnknownKindKeepsEarlierRequest(t *testing.T) {
	h := newHarness(t, Idle, nil, nil)
	h.c.SetState(Blind)
	h.c.SetState(Kind(99))

	if k, ok := h.c.Pending(); !ok || k != Blind {
		t.Errorf("pending = %s, %v; want blind", k, ok)
	}
}

// TestMissingProviders ticks every state with no collaborators at all.
// Nothing may panic and no state may leave on its own.
func TestMissingProviders(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			p := testParams()
			p.InitialState = k.String()
			c, err := New("bare", p, Env{Logger: quietLogger()})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			for i := 0; i < 5; i++ {
				c.Tick(0.1)
			}
			if c.CurrentKind() != k {
				t.Errorf("state changed to %s without providers", c.CurrentKind())
			}
		})
	}
}

func TestMissingTargetDefersPursue(t *testing.T) {
	h := newHarness(t, Pursue, nil, nil)
	h.mover.activePath = true

	for i := 0; i < 3; i++ {
		h.c.Tick(0.1)
	}
	h.requireKind(t, Pursue)
}
