// Package tsp_test provides lightweight testing helpers shared across *_test.go
// files in this package: canonical instances, a brute-force reference solver
// and small assertion helpers.
package tsp_test

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/katalvlaran/littletsp/tsp"
)

// -----------------------------------------------------------------------------
// Constants - single source of truth for test knobs
// -----------------------------------------------------------------------------

const (
	// inf is the integer marker used in literal matrices below.
	inf = -1

	// fiveCityOptimum is the optimal cost of fiveCity().
	fiveCityOptimum = 32

	// seedDet is the base seed for randomized instances.
	seedDet = int64(7)
)

// fiveCityRows is the classic symmetric 5-city instance.
func fiveCityRows() [][]int64 {
	return [][]int64{
		{inf, 10, 8, 19, 12},
		{10, inf, 20, 6, 3},
		{8, 20, inf, 4, 2},
		{19, 6, 4, inf, 7},
		{12, 3, 2, 7, inf},
	}
}

// fiveCity returns fiveCityRows as a CostMatrix.
func fiveCity() *tsp.CostMatrix {
	return tsp.MustFromInts(fiveCityRows(), inf)
}

// uniform returns an n×n matrix whose off-diagonal costs all equal c.
func uniform(n int, c int64) *tsp.CostMatrix {
	rows := make([][]int64, n)
	var i, j int
	for i = 0; i < n; i++ {
		rows[i] = make([]int64, n)
		for j = 0; j < n; j++ {
			rows[i][j] = c
		}
	}

	return tsp.MustFromInts(rows, inf)
}

// randomRows draws an n×n asymmetric instance; each off-diagonal edge exists
// with probability density and costs lie in [0, maxCost].
func randomRows(rng *rand.Rand, n int, density float64, maxCost int64) [][]int64 {
	rows := make([][]int64, n)
	var i, j int
	for i = 0; i < n; i++ {
		rows[i] = make([]int64, n)
		for j = 0; j < n; j++ {
			if i == j || rng.Float64() > density {
				rows[i][j] = inf
				continue
			}
			rows[i][j] = rng.Int63n(maxCost + 1)
		}
	}

	return rows
}

// bruteForce enumerates every cycle starting at 0 and returns the optimum and
// all optimal cycles. ok is false when no finite cycle exists.
func bruteForce(m *tsp.CostMatrix) (best int64, tours [][]int, ok bool) {
	n := m.Size()
	perm := make([]int, n-1)
	var i int
	for i = range perm {
		perm[i] = i + 1
	}

	var permute func(k int)
	permute = func(k int) {
		if k == len(perm) {
			path := append([]int{0}, perm...)
			c, err := tsp.CycleCost(m, path)
			if err != nil {
				return
			}
			v, finite := c.Int64()
			switch {
			case !finite:
			case !ok || v < best:
				best, tours, ok = v, [][]int{path}, true
			case v == best:
				tours = append(tours, path)
			}
			return
		}
		var j int
		for j = k; j < len(perm); j++ {
			perm[k], perm[j] = perm[j], perm[k]
			permute(k + 1)
			perm[k], perm[j] = perm[j], perm[k]
		}
	}
	permute(0)

	return best, tours, ok
}

// -----------------------------------------------------------------------------
// Generic helpers (repeaters, assertions)
// -----------------------------------------------------------------------------

// Repeat runs fn N times. Useful for determinism/stability checks.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	var i int
	for i = 0; i < n; i++ {
		fn(t)
	}
}

// mustErrIs asserts that err matches target using errors.Is.
func mustErrIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("want %v, got %v", target, err)
	}
}

// mustValidSolution asserts that sol is a Hamiltonian cycle of m whose edge
// sum equals both sol.Cost and want.
func mustValidSolution(t *testing.T, m *tsp.CostMatrix, sol tsp.Solution, want int64) {
	t.Helper()
	if err := tsp.ValidateCycle(sol.Path, m.Size()); err != nil {
		t.Fatalf("invalid cycle %v: %v", sol.Path, err)
	}
	c, err := tsp.CycleCost(m, sol.Path)
	if err != nil {
		t.Fatalf("CycleCost failed: %v", err)
	}
	got, ok := c.Int64()
	if !ok || got != want || sol.Cost != want {
		t.Fatalf("cost mismatch for %v: edge sum=%v reported=%d want=%d", sol.Path, c, sol.Cost, want)
	}
}

// sortedPaths returns a sorted copy of the solution paths for set comparison.
func sortedPaths(sols []tsp.Solution) [][]int {
	out := make([][]int, 0, len(sols))
	for _, s := range sols {
		out = append(out, slices.Clone(s.Path))
	}
	slices.SortFunc(out, slices.Compare[[]int])

	return out
}
