package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/behavior"
	"github.com/pthm-cable/npcbrain/components"
	"github.com/pthm-cable/npcbrain/config"
	"github.com/pthm-cable/npcbrain/geom"
	"github.com/pthm-cable/npcbrain/navigation"
)

// spawnTarget creates the tracked target entity.
func (g *Game) spawnTarget() {
	cfg := g.cfg

	t := components.Transform{Position: cfg.Target.Start, Forward: r3.Vec{Z: 1}}
	body := components.Body{Radius: cfg.World.AgentRadius}
	tag := components.Tag{Name: cfg.Target.Tag}
	roamer := components.Roamer{Speed: cfg.Target.Speed}

	g.target = g.targetMapper.NewEntity(&t, &body, &tag, &roamer)
	g.hasTarget = true

	g.targetNav = navigation.NewAgent(g.planner, t.Position)
	g.targetNav.SetSpeed(cfg.Target.Speed)
}

// despawnTarget removes the target. Controllers see it as missing from the
// next perception check on.
func (g *Game) despawnTarget() {
	if !g.hasTarget {
		return
	}
	g.targetMapper.Remove(g.target)
	g.hasTarget = false
	g.targetNav = nil
}

// spawnAgent creates one agent entity with its controller and movement agent.
func (g *Game) spawnAgent(ac config.AgentConfig) (ecs.Entity, error) {
	id := g.nextID
	g.nextID++

	params := g.cfg.Behavior
	params.InitialState = ac.InitialState

	forward := geom.Flatten(ac.Forward)
	if n := r3.Norm(forward); n > 0 {
		forward = r3.Scale(1/n, forward)
	} else {
		forward = r3.Vec{Z: 1}
	}

	t := components.Transform{Position: ac.Position, Forward: forward}
	body := components.Body{Radius: g.cfg.World.AgentRadius}
	tag := components.Tag{Name: npcTag}
	npc := components.NPC{ID: id, Name: ac.ID}

	entity := g.npcMapper.NewEntity(&t, &body, &tag, &npc)

	mover := navigation.NewAgent(g.planner, ac.Position)
	ctrl, err := behavior.New(ac.ID, params, behavior.Env{
		Body:      &bodyRef{transforms: g.transformMap, entity: entity},
		Mover:     mover,
		Target:    targetRef{g: g},
		World:     g.tagIndex,
		Route:     g.route,
		Wander:    g.wander,
		Presenter: &cuePresenter{npcs: g.npcMap, entity: entity, logger: g.logger},
		Trigger:   g.trigger,
		Rand:      g.rng,
		Listener:  g.collector,
		Logger:    g.logger,
	})
	if err != nil {
		g.npcMapper.Remove(entity)
		return ecs.Entity{}, err
	}

	g.npcMap.Get(entity).State = ctrl.CurrentKind()
	g.controllers[id] = ctrl
	g.movers[id] = mover
	g.npcs = append(g.npcs, npcHandle{id: id, entity: entity})

	g.logger.Info("agent spawned",
		"agent", ac.ID,
		"state", ctrl.CurrentKind(),
		"x", ac.Position.X,
		"z", ac.Position.Z,
	)
	return entity, nil
}
