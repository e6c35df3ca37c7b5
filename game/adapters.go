package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/behavior"
	"github.com/pthm-cable/npcbrain/components"
)

var (
	_ behavior.Body      = (*bodyRef)(nil)
	_ behavior.Target    = targetRef{}
	_ behavior.Presenter = (*cuePresenter)(nil)
)

// bodyRef exposes an entity's transform to its controller.
type bodyRef struct {
	transforms *ecs.Map1[components.Transform]
	entity     ecs.Entity
}

func (b *bodyRef) Position() r3.Vec { return b.transforms.Get(b.entity).Position }

func (b *bodyRef) Forward() r3.Vec { return b.transforms.Get(b.entity).Forward }

func (b *bodyRef) SetForward(f r3.Vec) { b.transforms.Get(b.entity).Forward = f }

// targetRef reads the live target position; ok is false once it is despawned.
type targetRef struct {
	g *Game
}

func (t targetRef) Position() (r3.Vec, bool) {
	if !t.g.hasTarget || !t.g.world.Alive(t.g.target) {
		return r3.Vec{}, false
	}
	return t.g.transformMap.Get(t.g.target).Position, true
}

// cuePresenter stores the latest visual cue on the agent's NPC component.
type cuePresenter struct {
	npcs   *ecs.Map1[components.NPC]
	entity ecs.Entity
	logger *slog.Logger
}

func (p *cuePresenter) OnEnterVisualCue(agentID, cue string) {
	p.npcs.Get(p.entity).Cue = cue
	p.logger.Debug("visual cue", "agent", agentID, "cue", cue)
}
