// SPDX-License-Identifier: MIT
// Package: littletsp/gen
//
// rng.go - deterministic random helpers shared by the generators.
//
// Concurrency: math/rand.Rand is NOT goroutine-safe. Do not share a
// *rand.Rand across goroutines; derive one per worker instead.

package gen

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed==0 maps to defaultRNGSeed.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// DeriveSeed mixes a parent seed and a stream id into a new seed with a
// SplitMix64 finalizer. The CLI uses it to give every instance of a batch
// its own reproducible stream.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// permRange returns a permutation of 0..n-1 drawn with a Fisher–Yates shuffle.
func permRange(n int, rng *rand.Rand) []int {
	p := make([]int, n)
	var i, j int
	for i = 0; i < n; i++ {
		p[i] = i
	}
	for i = n - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}

	return p
}

// drawCost returns a cost uniformly in [min, max].
func drawCost(rng *rand.Rand, min, max int64) int64 {
	if max == min {
		return min
	}

	return min + rng.Int63n(max-min+1)
}
