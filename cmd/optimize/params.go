// Package main provides CMA-ES calibration of the duplication parameters.
package main

import (
	"github.com/pthm-cable/mitosis/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Duplication drift
			{Name: "drift_min", Path: "duplication.drift_min", Min: -0.9, Max: 0.0, Default: -0.5},
			{Name: "drift_max", Path: "duplication.drift_max", Min: 0.0, Max: 2.0, Default: 1.0},
			{Name: "drift_scale", Path: "duplication.drift_scale", Min: 0.0, Max: 1.0, Default: 0.5},
			// Seeding
			{Name: "speed_jitter", Path: "seeding.speed_jitter", Min: 0.0, Max: 0.5, Default: 0.2},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
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
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.Duplication.DriftMin = clamped[0]
	cfg.Duplication.DriftMax = clamped[1]
	cfg.Duplication.DriftScale = clamped[2]
	cfg.Seeding.SpeedJitter = clamped[3]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Duplication.DriftMin,
		cfg.Duplication.DriftMax,
		cfg.Duplication.DriftScale,
		cfg.Seeding.SpeedJitter,
	}
}
