// Package tsp — cycle utilities.
//
// A cycle is an open permutation of the cities in visiting order; the edge
// from the last city back to the first is implicit. These helpers operate on
// structure only and never read a matrix.
//
// Provided helpers:
//   - ValidateCycle: verify a permutation over {0..n-1}.
//   - RotateToStart: cyclic shift so a given city comes first.
//   - Close: append the closing city (n+1 form used in printing).
//   - EqualCyclesModuloRotation: same directed cycle, any starting point.
//   - DebugString: "0 → 2 → 3 → 1 → 4 → 0".
//
// Direction matters: on an asymmetric matrix a reversed cycle is a different
// tour, so there is no orientation canonicalization here.
package tsp

import (
	"strconv"
	"strings"
)

// ValidateCycle checks that path visits each of the n cities exactly once.
//
// Complexity: O(n) time, O(n) space.
func ValidateCycle(path []int, n int) error {
	if n <= 0 || len(path) != n {
		return ErrInvalidPath
	}
	seen := make([]bool, n)

	var v int
	for _, v = range path {
		if v < 0 || v >= n || seen[v] {
			return ErrInvalidPath
		}
		seen[v] = true
	}

	return nil
}

// RotateToStart returns a fresh copy of path shifted so that out[0] == start.
//
// Errors: ErrStartOutOfRange when start is not on the path.
//
// Complexity: O(n).
func RotateToStart(path []int, start int) ([]int, error) {
	var (
		n     = len(path)
		pivot = -1
		i     int
	)
	for i = 0; i < n; i++ {
		if path[i] == start {
			pivot = i
			break
		}
	}
	if pivot == -1 {
		return nil, ErrStartOutOfRange
	}

	out := make([]int, n)
	for i = 0; i < n; i++ {
		out[i] = path[(pivot+i)%n]
	}

	return out, nil
}

// Close returns path with its first city appended, the n+1 closed form.
func Close(path []int) []int {
	if len(path) == 0 {
		return nil
	}
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = path[0]

	return out
}

// EqualCyclesModuloRotation reports whether a and b describe the same directed
// cycle, possibly starting at different cities.
//
// Complexity: O(n).
func EqualCyclesModuloRotation(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	rb, err := RotateToStart(b, a[0])
	if err != nil {
		return false
	}
	var i int
	for i = range a {
		if a[i] != rb[i] {
			return false
		}
	}

	return true
}

// DebugString renders the closed cycle, e.g. "0 → 2 → 3 → 1 → 4 → 0".
func DebugString(path []int) string {
	if len(path) == 0 {
		return "[]"
	}
	parts := make([]string, 0, len(path)+1)
	for _, v := range Close(path) {
		parts = append(parts, strconv.Itoa(v))
	}

	return strings.Join(parts, " → ")
}
