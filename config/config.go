// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sim       SimConfig       `yaml:"sim"`
	Behavior  BehaviorConfig  `yaml:"behavior"`
	World     WorldConfig     `yaml:"world"`
	Target    TargetConfig    `yaml:"target"`
	Agents    []AgentConfig   `yaml:"agents"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the debug viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimConfig holds tick loop parameters.
type SimConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick

	// AlertBreakInterval fires the alert-break signal every N ticks in
	// headless runs (0 = never).
	AlertBreakInterval int `yaml:"alert_break_interval"`
}

// BehaviorConfig holds the per-controller perception thresholds, speeds,
// transition chances and timers. Values are read-only once a controller
// has been built.
type BehaviorConfig struct {
	InitialState    string  `yaml:"initial_state"`
	VisionDistance  float64 `yaml:"vision_distance"`
	VisionHalfAngle float64 `yaml:"vision_half_angle"` // degrees
	EngageDistance  float64 `yaml:"engage_distance"`
	ArrivalEpsilon  float64 `yaml:"arrival_epsilon"` // patrol waypoint arrival distance
	ChaseRange      float64 `yaml:"chase_range"`     // tag range used by wander/chase
	FleeDistance    float64 `yaml:"flee_distance"`
	TargetTag       string  `yaml:"target_tag"`
	PursueEngages   bool    `yaml:"pursue_engages"` // pursue hands over to attack inside engage distance
	Strict          bool    `yaml:"strict"`         // panic on unknown transition targets

	Speeds   SpeedConfig    `yaml:"speeds"`
	Chances  ChanceConfig   `yaml:"chances"`
	Rotation RotationConfig `yaml:"rotation"`
	Timers   TimerConfig    `yaml:"timers"`
}

// SpeedConfig holds movement speeds per state.
type SpeedConfig struct {
	Patrol float64 `yaml:"patrol"`
	Pursue float64 `yaml:"pursue"`
	Alert  float64 `yaml:"alert"`
	Wander float64 `yaml:"wander"`
	Chase  float64 `yaml:"chase"`
	Cry    float64 `yaml:"cry"`
}

// ChanceConfig holds per-tick transition probabilities in [0, 1].
type ChanceConfig struct {
	IdleToPatrol  float64 `yaml:"idle_to_patrol"`
	PatrolToAlert float64 `yaml:"patrol_to_alert"`
	BlindToIdle   float64 `yaml:"blind_to_idle"`
}

// RotationConfig holds slerp rates (per second) for states that turn in place.
type RotationConfig struct {
	Attack float64 `yaml:"attack"`
	Alert  float64 `yaml:"alert"`
}

// TimerConfig holds state durations in seconds.
type TimerConfig struct {
	Wander float64 `yaml:"wander"`
	Cry    float64 `yaml:"cry"`
}

// Box is an axis-aligned region on the ground plane.
type Box struct {
	Min r3.Vec `yaml:"min"`
	Max r3.Vec `yaml:"max"`
}

// WorldConfig holds the shared, read-only world data.
type WorldConfig struct {
	Width       float64  `yaml:"width"` // extent along X
	Depth       float64  `yaml:"depth"` // extent along Z
	CellSize    float64  `yaml:"cell_size"`
	AgentRadius float64  `yaml:"agent_radius"`
	Obstacles   []Box    `yaml:"obstacles"`
	Waypoints   []r3.Vec `yaml:"waypoints"`
	WanderArea  Box      `yaml:"wander_area"`
}

// TargetConfig describes the tracked target (the player stand-in).
type TargetConfig struct {
	Tag   string  `yaml:"tag"`
	Start r3.Vec  `yaml:"start"`
	Speed float64 `yaml:"speed"`
	Roam  bool    `yaml:"roam"` // wander the world between random points
}

// AgentConfig describes one spawned NPC.
type AgentConfig struct {
	ID           string `yaml:"id"`
	InitialState string `yaml:"initial_state"` // empty = behavior.initial_state
	Position     r3.Vec `yaml:"position"`
	Forward      r3.Vec `yaml:"forward"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32     float32 // Sim.DT as float32
	WorldW32 float32
	WorldD32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Sim.DT)
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldD32 = float32(c.World.Depth)

	if c.Target.Tag == "" {
		c.Target.Tag = c.Behavior.TargetTag
	}

	for i := range c.Agents {
		a := &c.Agents[i]
		if a.ID == "" {
			a.ID = fmt.Sprintf("npc-%d", i)
		}
		if a.InitialState == "" {
			a.InitialState = c.Behavior.InitialState
		}
		if a.Forward == (r3.Vec{}) {
			a.Forward = r3.Vec{Z: 1}
		}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
