// Package game is the reference host for the behavior controllers: an ark ECS
// world holding agents and the target, stepped one fixed tick at a time.
package game

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/npcbrain/behavior"
	"github.com/pthm-cable/npcbrain/components"
	"github.com/pthm-cable/npcbrain/config"
	"github.com/pthm-cable/npcbrain/navigation"
	"github.com/pthm-cable/npcbrain/route"
	"github.com/pthm-cable/npcbrain/telemetry"
)

// npcTag is the tag every spawned agent carries in the tag index.
const npcTag = "npc"

// Options configures a game instance.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           int64
	LogStats       bool
	OutputDir      string
	StepsPerUpdate int
	Logger         *slog.Logger

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// npcHandle links a spawned agent to its entity in spawn order.
type npcHandle struct {
	id     uint32
	entity ecs.Entity
}

// Game holds the complete simulation state.
type Game struct {
	cfg    *config.Config
	world  *ecs.World
	rng    *rand.Rand
	logger *slog.Logger

	// Entity mappers
	npcMapper    *ecs.Map4[components.Transform, components.Body, components.Tag, components.NPC]
	targetMapper *ecs.Map4[components.Transform, components.Body, components.Tag, components.Roamer]
	npcFilter    *ecs.Filter3[components.Transform, components.Body, components.NPC]
	tagFilter    *ecs.Filter2[components.Transform, components.Tag]

	// Individual component mappers for lookups
	transformMap *ecs.Map1[components.Transform]
	npcMap       *ecs.Map1[components.NPC]
	roamerMap    *ecs.Map1[components.Roamer]
	bodyMap      *ecs.Map1[components.Body]

	// Per-agent state outside the ECS world, keyed by NPC.ID
	controllers map[uint32]*behavior.Controller
	movers      map[uint32]*navigation.Agent
	npcs        []npcHandle
	nextID      uint32

	target    ecs.Entity
	hasTarget bool
	targetNav *navigation.Agent

	// Shared world data
	grid     *navigation.NavGrid
	planner  *navigation.AStarPlanner
	route    *route.Route
	wander   *route.WanderArea
	tagIndex *TagIndex
	trigger  *AlertTrigger

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool

	// State
	tick           uint64
	paused         bool
	stepsPerUpdate int
}

// NewGameWithOptions builds the world from the configuration and spawns the
// target and every configured agent.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	world := ecs.NewWorld()
	grid := navigation.NewNavGrid(cfg.World.Width, cfg.World.Depth, cfg.World.CellSize,
		cfg.World.Obstacles, cfg.World.AgentRadius)
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:    cfg,
		world:  world,
		rng:    rng,
		logger: logger,

		npcMapper:    ecs.NewMap4[components.Transform, components.Body, components.Tag, components.NPC](world),
		targetMapper: ecs.NewMap4[components.Transform, components.Body, components.Tag, components.Roamer](world),
		npcFilter:    ecs.NewFilter3[components.Transform, components.Body, components.NPC](world),
		tagFilter:    ecs.NewFilter2[components.Transform, components.Tag](world),

		transformMap: ecs.NewMap1[components.Transform](world),
		npcMap:       ecs.NewMap1[components.NPC](world),
		roamerMap:    ecs.NewMap1[components.Roamer](world),
		bodyMap:      ecs.NewMap1[components.Body](world),

		controllers: make(map[uint32]*behavior.Controller),
		movers:      make(map[uint32]*navigation.Agent),

		grid:     grid,
		planner:  navigation.NewAStarPlanner(grid),
		route:    route.New(cfg.World.Waypoints),
		wander:   route.NewWanderArea(cfg.World.WanderArea.Min, cfg.World.WanderArea.Max, rng),
		tagIndex: NewTagIndex(cfg.World.Width, cfg.World.Depth, tagCellSize(cfg)),
		trigger:  NewAlertTrigger(cfg.Sim.AlertBreakInterval),

		collector:        telemetry.NewCollector(cfg.Telemetry.WindowTicks, cfg.Sim.DT),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.WindowTicks),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,

		stepsPerUpdate: steps,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	g.spawnTarget()
	for _, ac := range cfg.Agents {
		if _, err := g.spawnAgent(ac); err != nil {
			om.Close()
			return nil, err
		}
	}

	g.logger.Info("world ready",
		"seed", opts.Seed,
		"agents", len(g.npcs),
		"waypoints", g.route.Len(),
		"obstacles", len(cfg.World.Obstacles),
		"output_dir", om.Dir(),
	)
	return g, nil
}

// tagCellSize sizes tag index cells to the largest radius agents query with.
func tagCellSize(cfg *config.Config) float64 {
	return math.Max(cfg.Behavior.ChaseRange, math.Max(cfg.World.CellSize, 1))
}

// UpdateHeadless runs stepsPerUpdate simulation ticks.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Update runs stepsPerUpdate ticks unless paused and records frame timing.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	if g.paused {
		return
	}
	g.UpdateHeadless()
}

// Tick returns the number of completed simulation ticks.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Paused reports whether Update is currently a no-op.
func (g *Game) Paused() bool {
	return g.paused
}

// TogglePause flips the paused flag.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// StepsPerUpdate returns how many ticks one update call runs.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate changes the ticks per update call, clamped to [1, 10].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, min(n, 10))
}

// RequestAlertBreak fires the alert-break signal on the next tick.
func (g *Game) RequestAlertBreak() {
	g.trigger.Request()
}

// Config returns the configuration the world was built from.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Grid returns the navigation grid.
func (g *Game) Grid() *navigation.NavGrid {
	return g.grid
}

// Route returns the shared patrol route.
func (g *Game) Route() *route.Route {
	return g.route
}

// Controller returns the controller of the agent with the given name.
func (g *Game) Controller(name string) (*behavior.Controller, bool) {
	for _, h := range g.npcs {
		if c := g.controllers[h.id]; c.ID() == name {
			return c, true
		}
	}
	return nil, false
}

// PerfStats returns timing statistics for the current perf window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// Unload writes any buffered telemetry and closes output files.
func (g *Game) Unload() {
	if err := g.outputManager.WriteTransitions(g.collector.DrainJournal()); err != nil {
		g.logger.Error("failed to write transitions", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
	g.logger.Info("simulation finished", "tick", g.tick, "agents", len(g.npcs))
}
