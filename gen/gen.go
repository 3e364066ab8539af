// SPDX-License-Identifier: MIT
// Package: littletsp/gen
//
// gen.go - instance generators.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewCities).
//   - Cells are filled in a stable order (i asc, then j asc), so a fixed seed
//     and option list always produce the same matrix.
//   - The diagonal is always Forbidden.
//   - Generators return only sentinel errors (wrapped with context).
//
// Complexity: O(n²) time and space for every generator.

package gen

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/littletsp/tsp"
)

// Generator names accepted by Build.
const (
	KindUniform = "uniform"
	KindRandom  = "random"
	KindSparse  = "sparse"
	KindCircle  = "circle"
)

// Method tags used for error context.
const (
	methodUniform = "Uniform"
	methodRandom  = "Random"
	methodSparse  = "Sparse"
	methodCircle  = "Circle"
	minCities     = 2
)

// Kinds lists the generator names in display order.
func Kinds() []string {
	return []string{KindUniform, KindRandom, KindSparse, KindCircle}
}

// Build dispatches to the generator called kind. Uniform uses the lower end
// of WithCostRange as its constant cost.
func Build(kind string, n int, opts ...Option) (*tsp.CostMatrix, error) {
	switch kind {
	case KindUniform:
		return Uniform(n, newConfig(opts...).minCost)
	case KindRandom:
		return Random(n, opts...)
	case KindSparse:
		return Sparse(n, opts...)
	case KindCircle:
		return Circle(n, opts...)
	}

	return nil, fmt.Errorf("%q (want one of %v): %w", kind, Kinds(), ErrUnknownKind)
}

// Uniform returns an n×n matrix whose off-diagonal cells all cost c. Every
// tour costs c·n, so every one of the (n-1)! cycles is optimal.
func Uniform(n int, c int64) (*tsp.CostMatrix, error) {
	rows, err := newRows(methodUniform, n)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i != j {
				rows[i][j] = tsp.Finite(c)
			}
		}
	}

	return finish(methodUniform, rows)
}

// Random returns a complete matrix with costs drawn uniformly from the
// configured range. Requires an RNG.
func Random(n int, opts ...Option) (*tsp.CostMatrix, error) {
	cfg := newConfig(opts...)
	rows, err := newRows(methodRandom, n)
	if err != nil {
		return nil, err
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodRandom, ErrNeedRandSource)
	}

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j || (cfg.symmetric && j < i) {
				continue
			}
			rows[i][j] = tsp.Finite(drawCost(cfg.rng, cfg.minCost, cfg.maxCost))
			if cfg.symmetric {
				rows[j][i] = rows[i][j]
			}
		}
	}

	return finish(methodRandom, rows)
}

// Sparse returns a matrix in which every off-diagonal edge exists with the
// configured probability and is Forbidden otherwise. A random Hamiltonian
// cycle is planted first, so the instance always has a tour.
func Sparse(n int, opts ...Option) (*tsp.CostMatrix, error) {
	cfg := newConfig(opts...)
	rows, err := newRows(methodSparse, n)
	if err != nil {
		return nil, err
	}
	if cfg.density < 0 || cfg.density > 1 {
		return nil, fmt.Errorf("%s: density=%g: %w", methodSparse, cfg.density, ErrInvalidDensity)
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodSparse, ErrNeedRandSource)
	}

	var (
		planted = permRange(n, cfg.rng)
		i, j    int
		u, v    int
	)
	for i = 0; i < n; i++ {
		u, v = planted[i], planted[(i+1)%n]
		rows[u][v] = tsp.Finite(drawCost(cfg.rng, cfg.minCost, cfg.maxCost))
		if cfg.symmetric {
			rows[v][u] = rows[u][v]
		}
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j || (cfg.symmetric && j < i) || !rows[i][j].IsForbidden() {
				continue
			}
			if cfg.rng.Float64() >= cfg.density {
				continue
			}
			rows[i][j] = tsp.Finite(drawCost(cfg.rng, cfg.minCost, cfg.maxCost))
			if cfg.symmetric {
				rows[j][i] = rows[i][j]
			}
		}
	}

	return finish(methodSparse, rows)
}

// Circle places n cities on a slightly rippled circle and uses rounded
// Euclidean distances. With an RNG the city numbering is shuffled; without
// one, cities are numbered around the circle.
func Circle(n int, opts ...Option) (*tsp.CostMatrix, error) {
	cfg := newConfig(opts...)
	rows, err := newRows(methodCircle, n)
	if err != nil {
		return nil, err
	}

	order := make([]int, n)
	var i, j int
	for i = range order {
		order[i] = i
	}
	if cfg.rng != nil {
		order = permRange(n, cfg.rng)
	}

	var (
		xs = make([]float64, n)
		ys = make([]float64, n)
		th float64
		r  float64
	)
	for i = 0; i < n; i++ {
		th = 2 * math.Pi * float64(i) / float64(n)
		r = cfg.scale * (1 + 0.02*float64((i*5)%7))
		xs[order[i]] = r * math.Cos(th)
		ys[order[i]] = r * math.Sin(th)
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i != j {
				rows[i][j] = tsp.Finite(int64(math.Round(math.Hypot(xs[i]-xs[j], ys[i]-ys[j]))))
			}
		}
	}

	return finish(methodCircle, rows)
}

// newRows validates n and returns an all-Forbidden n×n buffer.
func newRows(method string, n int) ([][]tsp.Cost, error) {
	if n < minCities {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", method, n, minCities, ErrTooFewCities)
	}
	rows := make([][]tsp.Cost, n)
	var i int
	for i = range rows {
		rows[i] = slices.Repeat([]tsp.Cost{tsp.Forbidden}, n)
	}

	return rows, nil
}

// finish hands rows to tsp validation with method context.
func finish(method string, rows [][]tsp.Cost) (*tsp.CostMatrix, error) {
	m, err := tsp.NewCostMatrix(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	return m, nil
}
