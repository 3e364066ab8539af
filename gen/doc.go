// SPDX-License-Identifier: MIT

// Package gen builds deterministic TSP instances for tests, benchmarks and
// the `littletsp gen` command.
//
// Generators:
//   - Uniform(n, c): every off-diagonal edge costs c; all tours tie.
//   - Random(n): complete matrix, costs uniform in a range (WithCostRange).
//   - Sparse(n): edges present with probability WithDensity over a planted
//     Hamiltonian cycle, so a tour always exists.
//   - Circle(n): rounded Euclidean distances of points on a rippled circle.
//
// Stochastic generators need an RNG (WithSeed or WithRand); the same seed and
// options always give the same matrix.
package gen
