package behavior

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/config"
	"github.com/pthm-cable/npcbrain/geom"
)

func TestIdleTransitions(t *testing.T) {
	t.Run("sees target", func(t *testing.T) {
		h := newHarness(t, Idle, nil, nil)
		h.placeTarget(r3.Vec{Z: 5})
		h.c.Tick(0.1)
		h.requireKind(t, Pursue)
	})

	t.Run("random patrol", func(t *testing.T) {
		h := newHarness(t, Idle, nil, nil)
		h.rng.v = 0.05
		h.c.Tick(0.1)
		h.requireKind(t, Patrol)
	})

	t.Run("target behind", func(t *testing.T) {
		h := newHarness(t, Idle, nil, nil)
		h.rng.v = 0.99
		h.placeTarget(r3.Vec{Z: -5})
		h.c.Tick(0.1)
		h.requireKind(t, Idle)
	})

	t.Run("sight beats patrol roll", func(t *testing.T) {
		h := newHarness(t, Idle, nil, nil)
		h.rng.v = 0
		h.placeTarget(r3.Vec{X: 1, Z: 5})
		h.c.Tick(0.1)
		h.requireKind(t, Pursue)
	})
}

func TestPursueLosesSight(t *testing.T) {
	h := newHarness(t, Pursue, nil, nil)
	h.placeTarget(r3.Vec{Z: 8})

	h.c.Tick(0.1)
	h.requireKind(t, Pursue)
	if h.mover.speed != 5 || h.mover.stopped {
		t.Errorf("mover speed=%v stopped=%v, want 5 and moving", h.mover.speed, h.mover.stopped)
	}

	h.placeTarget(r3.Vec{Z: 15})
	h.c.Tick(0.1)
	h.requireKind(t, Patrol)
}

func TestPursueEngages(t *testing.T) {
	tests := []struct {
		name    string
		engages bool
		want    Kind
	}{
		{"engage enabled", true, Attack},
		{"engage disabled", false, Pursue},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, Pursue, nil, func(p *config.BehaviorConfig) { p.PursueEngages = tc.engages })
			h.placeTarget(r3.Vec{Z: 5})
			h.c.Tick(0.1)
			h.requireKind(t, tc.want)
		})
	}
}

func TestAttackHoldsUntilOutOfRange(t *testing.T) {
	h := newHarness(t, Attack, nil, nil)
	h.placeTarget(r3.Vec{Z: 5})

	h.c.Tick(0.1)
	h.requireKind(t, Attack)
	if !h.mover.stopped || h.mover.stops != 1 {
		t.Errorf("mover stopped=%v stops=%d, want stopped once", h.mover.stopped, h.mover.stops)
	}

	h.c.Tick(0.1)
	h.requireKind(t, Attack)

	h.placeTarget(r3.Vec{Z: 8})
	h.c.Tick(0.1)
	h.requireKind(t, Idle)
}

func TestAttackTurnsTowardTarget(t *testing.T) {
	h := newHarness(t, Attack, nil, nil)
	h.placeTarget(r3.Vec{X: 5})

	// rate 2 over dt 0.25 covers half of the 90 degree gap.
	h.c.Tick(0.25)

	fwd := h.body.fwd
	if got := geom.Angle(fwd, r3.Vec{Z: 1}); !scalar.EqualWithinAbs(got, 45, 1e-9) {
		t.Errorf("angle from start = %v, want 45", got)
	}
	if got := geom.Angle(fwd, r3.Vec{X: 1}); !scalar.EqualWithinAbs(got, 45, 1e-9) {
		t.Errorf("angle to target = %v, want 45", got)
	}
	if !scalar.EqualWithinAbs(fwd.Y, 0, 1e-12) {
		t.Errorf("forward left the ground plane: %v", fwd)
	}
	if len(h.mover.destinations) != 0 {
		t.Errorf("attack moved: %v", h.mover.destinations)
	}
}

func TestPatrolRandomAlert(t *testing.T) {
	h := newHarness(t, Patrol, nil, func(p *config.BehaviorConfig) { p.Chances.PatrolToAlert = 1 })
	h.rng.v = 0

	h.c.Tick(0.1)
	h.requireKind(t, AlertedChase)
	if h.mover.speed != 40 || h.mover.stopped {
		t.Errorf("mover speed=%v stopped=%v, want 40 and moving", h.mover.speed, h.mover.stopped)
	}
}

func TestPatrolWrapsRoute(t *testing.T) {
	waypoints := []r3.Vec{{}, {X: 10}, {X: 20}}
	h := newHarness(t, Patrol, waypoints, nil)
	h.body.pos = r3.Vec{X: 19}
	h.mover.remaining = 0

	h.c.Tick(0.1)
	h.c.Tick(0.1)

	want := []r3.Vec{waypoints[2], waypoints[0]}
	if len(h.mover.destinations) != len(want) {
		t.Fatalf("destinations = %v, want %v", h.mover.destinations, want)
	}
	for i := range want {
		if h.mover.destinations[i] != want[i] {
			t.Errorf("destination %d = %v, want %v", i, h.mover.destinations[i], want[i])
		}
	}
	h.requireKind(t, Patrol)
}

func TestPatrolKeepsCourseUntilArrival(t *testing.T) {
	waypoints := []r3.Vec{{}, {X: 10}, {X: 20}}
	h := newHarness(t, Patrol, waypoints, nil)
	h.mover.remaining = 0

	h.c.Tick(0.1)
	h.mover.remaining = 5
	h.c.Tick(0.1)
	h.c.Tick(0.1)

	if len(h.mover.destinations) != 1 || h.mover.destinations[0] != waypoints[0] {
		t.Errorf("destinations = %v, want only the nearest waypoint", h.mover.destinations)
	}
}

func TestPatrolEmptyRoute(t *testing.T) {
	h := newHarness(t, Patrol, nil, nil)
	h.mover.remaining = 0

	for i := 0; i < 5; i++ {
		h.c.Tick(0.1)
	}

	if len(h.mover.destinations) != 0 {
		t.Errorf("empty route produced destinations: %v", h.mover.destinations)
	}
	h.requireKind(t, Patrol)
}

func TestAlertBreakAndRecovery(t *testing.T) {
	h := newHarness(t, AlertedChase, nil, nil)
	h.placeTarget(r3.Vec{X: 30, Z: 30})

	h.c.Tick(0.1)
	h.requireKind(t, AlertedChase)
	if n := len(h.mover.destinations); n != 1 || h.mover.destinations[0] != (r3.Vec{X: 30, Z: 30}) {
		t.Errorf("destinations = %v, want the target", h.mover.destinations)
	}

	h.trigger.fired = true
	h.c.Tick(0.1)
	h.requireKind(t, Blind)
	if !h.mover.stopped {
		t.Error("blind did not stop the mover")
	}
	h.trigger.fired = false

	// Default recovery chance is far below the fixed roll.
	for i := 0; i < 5; i++ {
		h.c.Tick(0.1)
	}
	h.requireKind(t, Blind)

	h.rng.v = 0.0005
	h.c.Tick(0.1)
	h.requireKind(t, Idle)
}

func TestAlertedChaseFacesTarget(t *testing.T) {
	h := newHarness(t, AlertedChase, nil, nil)
	h.placeTarget(r3.Vec{X: 10})

	h.c.Tick(0.25)

	if got := geom.Angle(h.body.fwd, r3.Vec{X: 1}); !scalar.EqualWithinAbs(got, 0, 1e-4) {
		t.Errorf("angle to target = %v, want 0 once rate*dt reaches 1", got)
	}
}

func TestWanderChaseCryCycle(t *testing.T) {
	h := newHarness(t, Wander, nil, nil)
	h.placeTarget(r3.Vec{X: 3})

	h.c.Tick(1)
	h.requireKind(t, Wander)
	if len(h.mover.destinations) != 1 || h.mover.destinations[0] != (r3.Vec{X: 42, Z: 42}) {
		t.Fatalf("wander destinations = %v", h.mover.destinations)
	}
	if h.mover.speed != 2 {
		t.Errorf("wander speed = %v, want 2", h.mover.speed)
	}

	h.world["player"] = true
	h.c.Tick(1)
	h.requireKind(t, Chase)

	h.c.Tick(1)
	h.requireKind(t, Chase)
	if h.mover.speed != 4 {
		t.Errorf("chase speed = %v, want 4", h.mover.speed)
	}
	if d, _ := h.c.Destination(); d != (r3.Vec{X: 3}) {
		t.Errorf("chase destination = %v, want the target", d)
	}

	h.world["player"] = false
	h.c.Tick(1)
	h.requireKind(t, Cry)

	for i := 0; i < 3; i++ {
		h.c.Tick(1)
		h.requireKind(t, Cry)
	}
	h.c.Tick(1)
	h.requireKind(t, Wander)

	want := []Kind{Chase, Cry, Wander}
	if len(h.rec.transitions) != len(want) {
		t.Fatalf("transitions = %v", h.rec.transitions)
	}
	for i, k := range want {
		if h.rec.transitions[i].To != k {
			t.Errorf("transition %d to %s, want %s", i, h.rec.transitions[i].To, k)
		}
	}
}

func TestWanderTimesOut(t *testing.T) {
	h := newHarness(t, Wander, nil, nil)

	for i := 0; i < 5; i++ {
		h.c.Tick(1)
		h.requireKind(t, Wander)
	}
	h.c.Tick(1)
	h.requireKind(t, Patrol)
}

func TestWanderTimeoutBeatsChase(t *testing.T) {
	h := newHarness(t, Wander, nil, nil)

	for i := 0; i < 5; i++ {
		h.c.Tick(1)
	}
	h.world["player"] = true
	h.c.Tick(1)
	h.requireKind(t, Patrol)
}

func TestWanderRepicksOnArrival(t *testing.T) {
	h := newHarness(t, Wander, nil, nil)

	h.c.Tick(0.1)
	if len(h.mover.destinations) != 1 {
		t.Fatalf("destinations after first tick = %v", h.mover.destinations)
	}

	h.mover.reached = true
	h.c.Tick(0.1)
	if len(h.mover.destinations) != 2 {
		t.Errorf("destinations after arrival = %v, want a new pick", h.mover.destinations)
	}
}

func TestCryFleesFromTarget(t *testing.T) {
	tests := []struct {
		name   string
		body   r3.Vec
		target r3.Vec
		want   r3.Vec
	}{
		{"away from target", r3.Vec{X: 3, Z: 4}, r3.Vec{}, r3.Vec{X: 7.8, Z: 10.4}},
		{"on top of target", r3.Vec{}, r3.Vec{}, r3.Vec{Z: -8}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, Cry, nil, nil)
			h.body.pos = tc.body
			h.placeTarget(tc.target)

			h.c.Tick(0.1)

			got, ok := h.c.Destination()
			if !ok {
				t.Fatal("cry set no destination")
			}
			if !scalar.EqualWithinAbs(got.X, tc.want.X, 1e-9) ||
				!scalar.EqualWithinAbs(got.Y, tc.want.Y, 1e-9) ||
				!scalar.EqualWithinAbs(got.Z, tc.want.Z, 1e-9) {
				t.Errorf("flee destination = %v, want %v", got, tc.want)
			}
			if h.mover.speed != 6 {
				t.Errorf("cry speed = %v, want 6", h.mover.speed)
			}
		})
	}
}
