// SPDX-License-Identifier: MIT
// Package: littletsp/gen
//
// errors.go - sentinel errors for the gen package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Implementations attach context with %w (method tag + parameters).
//   - Generators never panic at runtime; validation panics are confined to
//     option constructors (WithX...).

package gen

import "errors"

// ErrTooFewCities indicates n below the minimum a tour needs (2).
var ErrTooFewCities = errors.New("gen: too few cities")

// ErrInvalidDensity indicates an edge probability outside [0,1].
var ErrInvalidDensity = errors.New("gen: density out of range")

// ErrNeedRandSource indicates a stochastic generator was called without an
// RNG (use WithSeed or WithRand).
var ErrNeedRandSource = errors.New("gen: rng is required")

// ErrUnknownKind indicates an unsupported generator name passed to Build.
var ErrUnknownKind = errors.New("gen: unknown kind")
