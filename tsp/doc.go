// Package tsp solves the asymmetric Travelling Salesman Problem exactly with
// Little's branch-and-bound algorithm and returns every optimal tour.
//
// Building blocks, leaf first:
//
//   - Cost — a tagged cost: Finite(v) or Forbidden. Forbidden is absorbing
//     under Add/Sub and larger than every finite value, so no arithmetic can
//     overflow through a "very large" sentinel.
//
//   - CostMatrix — N×N costs with a Forbidden diagonal. Row/column minima,
//     row/column reduction (the lower-bound contributions) and the regret of
//     a zero cell (VertexCost).
//
//   - StageState — one node of the branching tree: an owned matrix, a lower
//     bound, a level and the committed edges. Reduce, ChooseNewVertex,
//     Commit, RightBranch and FinalPath are the node transitions.
//
//   - Solve — the depth-first search over a LIFO frontier of right-branch
//     siblings, pruning by lower bound and keeping all tours tied at the
//     minimum bound.
//
// Quick start:
//
//	m := tsp.MustFromInts([][]int64{
//		{-1, 10, 8, 19, 12},
//		{10, -1, 20, 6, 3},
//		{8, 20, -1, 4, 2},
//		{19, 6, 4, -1, 7},
//		{12, 3, 2, 7, -1},
//	}, -1)
//	res, err := tsp.Solve(m)
//	// res.Cost == 32, res.Solutions[0].Path == [0 2 3 4 1]
//
// Complexity: exponential in N in the worst case. The frontier is unbounded;
// use WithContext to impose a deadline. HeldKarp (N ≤ 16) is provided as an
// independent exact check.
//
// The package does not log. Observe the search through WithOnBranch,
// WithOnPrune and WithOnSolution.
package tsp
