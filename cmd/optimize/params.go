package main

import "github.com/pthm-cable/npcbrain/config"

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable behavior parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Transition chances
			{
				Name: "idle_to_patrol", Path: "behavior.chances.idle_to_patrol", Min: 0, Max: 0.5,
				get: func(c *config.Config) float64 { return c.Behavior.Chances.IdleToPatrol },
				set: func(c *config.Config, v float64) { c.Behavior.Chances.IdleToPatrol = v },
			},
			{
				Name: "patrol_to_alert", Path: "behavior.chances.patrol_to_alert", Min: 0, Max: 0.01,
				get: func(c *config.Config) float64 { return c.Behavior.Chances.PatrolToAlert },
				set: func(c *config.Config, v float64) { c.Behavior.Chances.PatrolToAlert = v },
			},
			{
				Name: "blind_to_idle", Path: "behavior.chances.blind_to_idle", Min: 0, Max: 0.05,
				get: func(c *config.Config) float64 { return c.Behavior.Chances.BlindToIdle },
				set: func(c *config.Config, v float64) { c.Behavior.Chances.BlindToIdle = v },
			},
			// Perception
			{
				Name: "vision_distance", Path: "behavior.vision_distance", Min: 4, Max: 25,
				get: func(c *config.Config) float64 { return c.Behavior.VisionDistance },
				set: func(c *config.Config, v float64) { c.Behavior.VisionDistance = v },
			},
			{
				Name: "vision_half_angle", Path: "behavior.vision_half_angle", Min: 10, Max: 90,
				get: func(c *config.Config) float64 { return c.Behavior.VisionHalfAngle },
				set: func(c *config.Config, v float64) { c.Behavior.VisionHalfAngle = v },
			},
			{
				Name: "engage_distance", Path: "behavior.engage_distance", Min: 2, Max: 10,
				get: func(c *config.Config) float64 { return c.Behavior.EngageDistance },
				set: func(c *config.Config, v float64) { c.Behavior.EngageDistance = v },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(v[i], spec.Max))
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}
