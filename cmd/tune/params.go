// Package main provides CMA-ES search for growth parameters that settle the
// network near a target branch count.
package main

import (
	"github.com/doublejbs/interactive-archive/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable growth parameters.
// Branch angle and tube tessellation are cosmetic and stay locked.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "branch_probability", Path: "growth.branch_probability", Min: 0.2, Max: 0.95, Default: 0.65},
			{Name: "length_shrink", Path: "growth.length_shrink", Min: 0.02, Max: 0.4, Default: 0.12},
			{Name: "base_length", Path: "growth.base_length", Min: 4.0, Max: 20.0, Default: 10.0},
			{Name: "growth_speed", Path: "growth.growth_speed", Min: 4.0, Max: 40.0, Default: 12.0},
			{Name: "children_max", Path: "growth.children_max", Min: 2, Max: 6, Default: 5},
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
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Growth.BranchProb = clamped[0]
	cfg.Growth.LengthShrink = clamped[1]
	cfg.Growth.BaseLength = clamped[2]
	cfg.Growth.GrowthSpeed = clamped[3]
	cfg.Growth.ChildrenMax = int(clamped[4] + 0.5)
	if cfg.Growth.ChildrenMax < cfg.Growth.ChildrenMin {
		cfg.Growth.ChildrenMax = cfg.Growth.ChildrenMin
	}
}
