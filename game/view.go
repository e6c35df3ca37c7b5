package game

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/behavior"
)

// AgentView is a read-only snapshot of one agent.
type AgentView struct {
	Name     string
	Position r3.Vec
	Forward  r3.Vec
	Radius   float64
	State    behavior.Kind
	Cue      string

	Path           []r3.Vec
	Destination    r3.Vec
	HasDestination bool
}

// TargetView is a read-only snapshot of the target.
type TargetView struct {
	Position r3.Vec
	Forward  r3.Vec
	Radius   float64
	Goal     r3.Vec
	HasGoal  bool
}

// Agents returns a snapshot of every agent.
func (g *Game) Agents() []AgentView {
	views := make([]AgentView, 0, len(g.npcs))

	query := g.npcFilter.Query()
	for query.Next() {
		t, body, npc := query.Get()
		v := AgentView{
			Name:     npc.Name,
			Position: t.Position,
			Forward:  t.Forward,
			Radius:   body.Radius,
			State:    npc.State,
			Cue:      npc.Cue,
		}
		if mover, ok := g.movers[npc.ID]; ok {
			v.Path = mover.Path()
		}
		if ctrl, ok := g.controllers[npc.ID]; ok {
			v.Destination, v.HasDestination = ctrl.Destination()
		}
		views = append(views, v)
	}
	return views
}

// Target returns a snapshot of the target; ok is false while it is despawned.
func (g *Game) Target() (TargetView, bool) {
	if !g.hasTarget {
		return TargetView{}, false
	}
	t := g.transformMap.Get(g.target)
	roamer := g.roamerMap.Get(g.target)
	return TargetView{
		Position: t.Position,
		Forward:  t.Forward,
		Radius:   g.bodyMap.Get(g.target).Radius,
		Goal:     roamer.Goal,
		HasGoal:  roamer.HasGoal,
	}, true
}

// StateCounts returns how many agents are in each state.
func (g *Game) StateCounts() map[behavior.Kind]int {
	counts := make(map[behavior.Kind]int, len(behavior.Kinds()))
	for _, h := range g.npcs {
		counts[g.controllers[h.id].CurrentKind()]++
	}
	return counts
}

// ToggleTarget despawns the target, or spawns it again at its start point.
func (g *Game) ToggleTarget() {
	if g.hasTarget {
		g.despawnTarget()
		return
	}
	g.spawnTarget()
}
