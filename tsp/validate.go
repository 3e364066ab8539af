// Package tsp - input validation.
//
// Validation runs once, before any search, and reports only sentinel errors
// from types.go. It never coerces: a malformed matrix is rejected as a whole.
//
// Checks, in priority order:
//  1. shape: non-nil, square, N ≥ 2;
//  2. values: off-diagonal finite costs are non-negative and small enough
//     that N-fold sums cannot overflow int64.
//
// The diagonal is not checked; NewCostMatrix forces it to Forbidden.
//
// Complexity: O(N²).
package tsp

import "math"

// costHeadroom divides math.MaxInt64 per city. A tour sums N edges and the
// lower bound adds at most one row and one column minimum per city, so 4·N
// leaves room for both with a margin.
const costHeadroom = 4

// validateRows checks shape and values of a raw row slice and returns N.
func validateRows(rows [][]Cost) (int, error) {
	// Stage 1: shape.
	if rows == nil {
		return 0, ErrNilMatrix
	}
	n := len(rows)
	var r, c int
	for r = 0; r < n; r++ {
		if rows[r] == nil {
			return 0, ErrNilMatrix
		}
		if len(rows[r]) != n {
			return 0, ErrNonSquare
		}
	}
	if n < 2 {
		return 0, ErrTooSmall
	}

	// Stage 2: values.
	var (
		limit = math.MaxInt64 / int64(costHeadroom*n)
		v     int64
		ok    bool
	)
	for r = 0; r < n; r++ {
		for c = 0; c < n; c++ {
			if r == c {
				continue
			}
			if v, ok = rows[r][c].Int64(); !ok {
				continue
			}
			if v < 0 {
				return 0, ErrNegativeCost
			}
			if v > limit {
				return 0, ErrCostOverflow
			}
		}
	}

	return n, nil
}

// validateStartVertex verifies that start∈[0..n-1].
//
// Complexity: O(1).
func validateStartVertex(n int, start int) error {
	if start < 0 || start >= n {
		return ErrStartOutOfRange
	}

	return nil
}
