// Package littletsp finds every optimal tour of an asymmetric Travelling
// Salesman instance with Little's branch-and-bound algorithm.
//
// 🚀 What is littletsp?
//
//	An exact solver with everything around it to use it in practice:
//		• tsp/       — tagged costs, cost matrices, reduction, the search itself
//		• gen/       — reproducible instances: uniform, random, sparse, circle
//		• matrixio/  — TOML, YAML, JSON and plain-text matrix files
//		• render/    — the optimal tour as DOT, SVG or PNG (embedded Graphviz)
//		• cache/     — solved results in files, SQLite or Redis
//		• server/    — POST /v1/solve over HTTP with Prometheus metrics
//		• cmd/littletsp — the CLI tying it together
//
// ✨ Why Little's algorithm?
//
//   - Exact – every returned tour is optimal, and all ties are returned
//   - Asymmetric – c(i,j) need not equal c(j,i); missing edges are "INF"
//   - Observable – hooks report each branch, prune and candidate tour
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
//	res, _ := tsp.Solve(m)
//	fmt.Println(res.Cost) // 32
//
// From the shell:
//
//	littletsp gen --kind sparse -n 12 --seed 7 -o sparse.toml
//	littletsp solve sparse.toml --verify
//	littletsp render sparse.toml -o tour.svg
//	littletsp serve --addr :8080
//
// The search is exponential in the worst case; bound it with a context
// deadline (tsp.WithContext, `solve --timeout`, the server's timeout).
package littletsp
