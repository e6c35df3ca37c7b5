package game

import "github.com/pthm-cable/npcbrain/telemetry"

// simulationStep runs a single tick of the simulation.
func (g *Game) simulationStep() {
	dt := g.cfg.Sim.DT
	g.perfCollector.StartTick()

	// 1. Move the target
	g.perfCollector.StartPhase(telemetry.PhaseTarget)
	g.updateTarget(dt)

	// 2. Rebuild the tag index
	g.perfCollector.StartPhase(telemetry.PhaseTagIndex)
	g.updateTagIndex()

	// 3. Run every controller in spawn order
	g.perfCollector.StartPhase(telemetry.PhaseBrain)
	alertBreak := g.trigger.Latch(g.tick + 1)
	g.updateBrains(dt)

	// 4. Follow paths
	g.perfCollector.StartPhase(telemetry.PhaseMotion)
	g.updateMotion(dt)

	// 5. Occupancy and window stats
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	if alertBreak {
		g.collector.RecordAlertBreak()
	}
	g.updateOccupancy()

	g.tick++
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// updateTarget roams the target between random wander points.
func (g *Game) updateTarget(dt float64) {
	if !g.hasTarget {
		return
	}
	roamer := g.roamerMap.Get(g.target)
	if g.cfg.Target.Roam && !g.targetNav.HasActivePath() {
		goal := g.wander.WanderPoint()
		roamer.Goal = goal
		roamer.HasGoal = g.targetNav.SetDestination(goal)
	}
	g.targetNav.SetSpeed(roamer.Speed)
	g.targetNav.Step(g.transformMap.Get(g.target), dt)
}

// updateTagIndex rebuilds the tag index from every tagged entity.
func (g *Game) updateTagIndex() {
	g.tagIndex.Clear()

	query := g.tagFilter.Query()
	for query.Next() {
		t, tag := query.Get()
		g.tagIndex.Insert(query.Entity(), tag.Name, t.Position)
	}
}

// updateBrains ticks each controller once.
func (g *Game) updateBrains(dt float64) {
	for _, h := range g.npcs {
		g.controllers[h.id].Tick(dt)
	}
}

// updateMotion advances each movement agent along its path.
func (g *Game) updateMotion(dt float64) {
	for _, h := range g.npcs {
		g.movers[h.id].Step(g.transformMap.Get(h.entity), dt)
	}
}

// updateOccupancy mirrors controller state into the NPC components and counts
// one agent-tick per agent.
func (g *Game) updateOccupancy() {
	query := g.npcFilter.Query()
	for query.Next() {
		_, _, npc := query.Get()
		ctrl, ok := g.controllers[npc.ID]
		if !ok {
			continue
		}
		npc.State = ctrl.CurrentKind()
		g.collector.RecordOccupancy(npc.State)
	}
}
