// SPDX-License-Identifier: MIT
// Package: littletsp/gen
//
// options.go - functional options for the generators.
//
// Contract:
//   - Options are functional (type Option func(*config)).
//   - Option constructors VALIDATE and PANIC on meaningless inputs.
//     Generators themselves never panic.
//   - Determinism is explicit: seeding is done via WithSeed or WithRand.

package gen

import "math/rand"

// Deterministic defaults (named, no magic numbers).
const (
	defaultMinCost = int64(1)   // cheapest generated edge
	defaultMaxCost = int64(100) // most expensive generated edge
	defaultDensity = 0.5        // Sparse edge probability
	defaultScale   = 100.0      // Circle radius in cost units
)

// config aggregates all knobs used by generators. It is passed by value.
type config struct {
	// RNG for stochastic choices; nil means "no randomness".
	rng *rand.Rand
	// Inclusive cost range for Random and Sparse.
	minCost, maxCost int64
	// Edge probability for Sparse.
	density float64
	// Mirror (i,j) onto (j,i) when set.
	symmetric bool
	// Circle radius.
	scale float64
}

// Option customizes a generator.
type Option func(*config)

// newConfig constructs a config with deterministic defaults and applies all
// options in order (last wins).
func newConfig(opts ...Option) config {
	cfg := config{
		minCost: defaultMinCost,
		maxCost: defaultMaxCost,
		density: defaultDensity,
		scale:   defaultScale,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithRand provides an explicit RNG. Panics on nil; prefer WithSeed.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("gen: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// WithSeed creates a deterministic RNG from seed. Seed 0 maps to a fixed
// default so that "unset" still reproduces.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rngFromSeed(seed)
	}
}

// WithCostRange sets the inclusive cost range. Panics unless 0 ≤ min ≤ max.
func WithCostRange(min, max int64) Option {
	if min < 0 || max < min {
		panic("gen: WithCostRange requires 0 <= min <= max")
	}
	return func(c *config) {
		c.minCost, c.maxCost = min, max
	}
}

// WithDensity sets the Sparse edge probability. The value is validated by
// the generator so callers get ErrInvalidDensity rather than a panic.
func WithDensity(p float64) Option {
	return func(c *config) {
		c.density = p
	}
}

// WithSymmetric makes Random and Sparse emit symmetric matrices.
func WithSymmetric() Option {
	return func(c *config) {
		c.symmetric = true
	}
}

// WithScale sets the Circle radius in cost units. Panics if s <= 0.
func WithScale(s float64) Option {
	if s <= 0 {
		panic("gen: WithScale(s<=0)")
	}
	return func(c *config) {
		c.scale = s
	}
}
