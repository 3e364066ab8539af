package tsp

// MaxHeldKarpCities bounds HeldKarp; its tables grow as N·2ᴺ.
const MaxHeldKarpCities = 16

// HeldKarp computes the optimal tour cost of m with the Held–Karp dynamic
// program. It is an independent exact method used to cross-check Solve on
// small instances; it returns one optimal cycle starting at city 0.
//
// dp[mask][j] = minimum cost to start at 0, visit exactly the cities in mask
// (which always contains 0) and end at j. Closing the tour adds j→0.
//
// Errors: ErrNilMatrix, ErrTooLarge for N > MaxHeldKarpCities, ErrInfeasible.
//
// Time complexity:  O(N² · 2ᴺ)
// Memory complexity: O(N · 2ᴺ)
func HeldKarp(m *CostMatrix) (int64, []int, error) {
	if m == nil {
		return 0, nil, ErrNilMatrix
	}
	n := m.n
	if n > MaxHeldKarpCities {
		return 0, nil, ErrTooLarge
	}

	// --- 1. Allocate DP and parent tables ---
	allMask := (1 << n) - 1
	dp := make([][]Cost, 1<<n)
	parent := make([][]int, 1<<n)
	var mask, j, k int
	for mask = 0; mask <= allMask; mask++ {
		dp[mask] = make([]Cost, n)
		parent[mask] = make([]int, n)
		for j = 0; j < n; j++ {
			dp[mask][j] = Forbidden
			parent[mask][j] = noLink
		}
	}
	dp[1][0] = Finite(0)

	// --- 2. Fill DP for all masks that include city 0 ---
	var cand Cost
	for mask = 1; mask <= allMask; mask += 2 {
		for j = 1; j < n; j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			prevMask := mask ^ (1 << j)
			for k = 0; k < n; k++ {
				if prevMask&(1<<k) == 0 || dp[prevMask][k].IsForbidden() {
					continue
				}
				cand = dp[prevMask][k].Add(m.At(k, j))
				if cand.Less(dp[mask][j]) {
					dp[mask][j] = cand
					parent[mask][j] = k
				}
			}
		}
	}

	// --- 3. Close the tour by returning to 0 ---
	best := Forbidden
	last := noLink
	for j = 1; j < n; j++ {
		cand = dp[allMask][j].Add(m.At(j, 0))
		if cand.Less(best) {
			best = cand
			last = j
		}
	}
	cost, ok := best.Int64()
	if !ok {
		return 0, nil, ErrInfeasible
	}

	// --- 4. Reconstruct the cycle from the parent table ---
	path := make([]int, n)
	mask = allMask
	j = last
	for k = n - 1; k >= 1; k-- {
		path[k] = j
		p := parent[mask][j]
		mask ^= 1 << j
		j = p
	}
	path[0] = 0

	return cost, path, nil
}
