// Package components defines ECS components for the host world.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/behavior"
)

// NPC identifies an agent driven by a behavior controller. Controllers and
// navigation agents are stored by ID outside the ECS world.
type NPC struct {
	ID    uint32
	Name  string
	State behavior.Kind // mirrors the controller after each brain pass
	Cue   string        // last visual cue received on state entry
}

// Roamer moves an entity between random points at a fixed speed.
type Roamer struct {
	Speed   float64
	Goal    r3.Vec
	HasGoal bool
}
