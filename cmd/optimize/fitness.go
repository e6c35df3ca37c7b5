package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/pthm-cable/npcbrain/behavior"
	"github.com/pthm-cable/npcbrain/config"
	"github.com/pthm-cable/npcbrain/game"
	"github.com/pthm-cable/npcbrain/telemetry"
)

// Occupancy maps a state to the share of agent-ticks it should receive.
type Occupancy map[behavior.Kind]float64

// ParseOccupancy parses "patrol=0.5,pursue=0.2" into target shares.
func ParseOccupancy(s string) (Occupancy, error) {
	occ := make(Occupancy)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("occupancy %q: want state=share", part)
		}
		k, err := behavior.ParseKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		share, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("occupancy %q: %w", part, err)
		}
		if share < 0 || share > 1 {
			return nil, fmt.Errorf("occupancy %q: share must be in [0, 1]", part)
		}
		occ[k] = share
	}
	if len(occ) == 0 {
		return nil, fmt.Errorf("occupancy %q: no states given", s)
	}
	return occ, nil
}

// String renders the shares in state order.
func (o Occupancy) String() string {
	var parts []string
	for _, k := range behavior.Kinds() {
		if share, ok := o[k]; ok {
			parts = append(parts, fmt.Sprintf("%s=%.3f", k, share))
		}
	}
	return strings.Join(parts, ",")
}

// warmupWindows are skipped before scoring so initial states wash out.
const warmupWindows = 1

// FitnessEvaluator runs headless simulations and scores how close the
// observed state occupancy comes to the target shares.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   uint64
	seeds      []int64
	baseConfig *config.Config
	target     Occupancy
	logger     *slog.Logger

	mu          sync.Mutex
	bestFitness float64
	lastMean    telemetry.WindowStats
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks uint64, seeds []int64, baseCfg *config.Config, target Occupancy) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		target:      target,
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		bestFitness: math.Inf(1),
	}
}

// BestFitness returns the lowest fitness seen so far.
func (fe *FitnessEvaluator) BestFitness() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestFitness
}

// LastMean returns the averaged window stats from the most recent evaluation.
func (fe *FitnessEvaluator) LastMean() telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMean
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([][]telemetry.WindowStats, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx], errs[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var windows []telemetry.WindowStats
	for i, r := range results {
		if errs[i] != nil {
			return math.Inf(1)
		}
		if len(r) > warmupWindows {
			windows = append(windows, r[warmupWindows:]...)
		}
	}

	mean := meanOccupancy(windows)
	fitness := occupancyLoss(mean, fe.target)

	fe.mu.Lock()
	fe.bestFitness = min(fe.bestFitness, fitness)
	fe.lastMean = mean
	fe.mu.Unlock()

	return fitness
}

// runSimulation executes a single headless run and returns its windows.
// cfg is shared read-only between concurrent runs.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) ([]telemetry.WindowStats, error) {
	var windows []telemetry.WindowStats

	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		StepsPerUpdate: 1,
		Logger:         fe.logger,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	g.Unload()
	return windows, nil
}

// copyConfig returns a copy of the base config whose behavior section can be
// changed without touching the base. Agents and world geometry stay shared.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// meanOccupancy averages per-state occupancy over windows.
func meanOccupancy(windows []telemetry.WindowStats) telemetry.WindowStats {
	var mean telemetry.WindowStats
	if len(windows) == 0 {
		return mean
	}
	n := float64(len(windows))
	for _, w := range windows {
		mean.Idle += w.Idle / n
		mean.Patrol += w.Patrol / n
		mean.Pursue += w.Pursue / n
		mean.Attack += w.Attack / n
		mean.AlertedChase += w.AlertedChase / n
		mean.Blind += w.Blind / n
		mean.Wander += w.Wander / n
		mean.Chase += w.Chase / n
		mean.Cry += w.Cry / n
		mean.Transitions += w.Transitions
	}
	return mean
}

// occupancyLoss is the squared error between observed and target shares over
// the states named in target.
func occupancyLoss(observed telemetry.WindowStats, target Occupancy) float64 {
	var loss float64
	for k, share := range target {
		d := observed.Occupancy(k) - share
		loss += d * d
	}
	return loss
}
