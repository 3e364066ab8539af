package gen_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/littletsp/gen"
	"github.com/katalvlaran/littletsp/tsp"
)

func TestUniform(t *testing.T) {
	m, err := gen.Uniform(4, 5)
	require.NoError(t, err)
	require.Equal(t, 4, m.Size())
	var i, j int
	for i = 0; i < 4; i++ {
		for j = 0; j < 4; j++ {
			if i == j {
				assert.True(t, m.At(i, j).IsForbidden())
				continue
			}
			assert.Equal(t, tsp.Finite(5), m.At(i, j))
		}
	}

	res, err := tsp.Solve(m)
	require.NoError(t, err)
	require.Equal(t, int64(20), res.Cost)
	require.Len(t, res.Solutions, 6)
}

func TestTooFewCities(t *testing.T) {
	_, err := gen.Uniform(1, 5)
	require.ErrorIs(t, err, gen.ErrTooFewCities)
	_, err = gen.Random(0, gen.WithSeed(1))
	require.ErrorIs(t, err, gen.ErrTooFewCities)
	_, err = gen.Sparse(1, gen.WithSeed(1))
	require.ErrorIs(t, err, gen.ErrTooFewCities)
	_, err = gen.Circle(1)
	require.ErrorIs(t, err, gen.ErrTooFewCities)
}

func TestRandom_DeterministicAndInRange(t *testing.T) {
	a, err := gen.Random(6, gen.WithSeed(42), gen.WithCostRange(3, 9))
	require.NoError(t, err)
	b, err := gen.Random(6, gen.WithSeed(42), gen.WithCostRange(3, 9))
	require.NoError(t, err)
	require.Equal(t, a.Rows(), b.Rows())

	var i, j int
	for i = 0; i < 6; i++ {
		for j = 0; j < 6; j++ {
			if i == j {
				continue
			}
			v, ok := a.At(i, j).Int64()
			require.True(t, ok)
			require.GreaterOrEqual(t, v, int64(3))
			require.LessOrEqual(t, v, int64(9))
		}
	}

	_, err = gen.Random(6)
	require.ErrorIs(t, err, gen.ErrNeedRandSource)
}

func TestRandom_Symmetric(t *testing.T) {
	m, err := gen.Random(7, gen.WithRand(rand.New(rand.NewSource(3))), gen.WithSymmetric())
	require.NoError(t, err)
	var i, j int
	for i = 0; i < 7; i++ {
		for j = 0; j < 7; j++ {
			require.Equal(t, m.At(i, j), m.At(j, i))
		}
	}
}

func TestSparse_AlwaysFeasible(t *testing.T) {
	var seed int64
	for seed = 1; seed <= 25; seed++ {
		m, err := gen.Sparse(7, gen.WithSeed(seed), gen.WithDensity(0))
		require.NoError(t, err)

		// Density 0 leaves exactly the planted cycle: one edge per row.
		var r, c, finite int
		for r = 0; r < 7; r++ {
			for c = 0; c < 7; c++ {
				if !m.At(r, c).IsForbidden() {
					finite++
				}
			}
		}
		require.Equal(t, 7, finite)

		res, err := tsp.Solve(m)
		require.NoError(t, err, "seed %d", seed)
		require.Len(t, res.Solutions, 1)
	}
}

func TestSparse_InvalidDensity(t *testing.T) {
	_, err := gen.Sparse(5, gen.WithSeed(1), gen.WithDensity(1.5))
	require.ErrorIs(t, err, gen.ErrInvalidDensity)
	_, err = gen.Sparse(5, gen.WithDensity(0.5))
	require.ErrorIs(t, err, gen.ErrNeedRandSource)
}

func TestCircle_OptimalIsPerimeter(t *testing.T) {
	m, err := gen.Circle(8)
	require.NoError(t, err)

	want, _, err := tsp.HeldKarp(m)
	require.NoError(t, err)
	res, err := tsp.Solve(m)
	require.NoError(t, err)
	require.Equal(t, want, res.Cost)

	perimeter, err := tsp.CycleCost(m, []int{0, 1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, err)
	v, _ := perimeter.Int64()
	require.GreaterOrEqual(t, v, res.Cost)
}

func TestBuild(t *testing.T) {
	for _, kind := range gen.Kinds() {
		m, err := gen.Build(kind, 5, gen.WithSeed(9))
		require.NoError(t, err, kind)
		require.Equal(t, 5, m.Size(), kind)
	}
	_, err := gen.Build("hexagram", 5)
	require.ErrorIs(t, err, gen.ErrUnknownKind)
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, gen.DeriveSeed(7, 1), gen.DeriveSeed(7, 1))
	assert.NotEqual(t, gen.DeriveSeed(7, 1), gen.DeriveSeed(7, 2))
	assert.NotEqual(t, gen.DeriveSeed(7, 1), gen.DeriveSeed(8, 1))
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { gen.WithRand(nil) })
	assert.Panics(t, func() { gen.WithCostRange(5, 1) })
	assert.Panics(t, func() { gen.WithCostRange(-1, 1) })
	assert.Panics(t, func() { gen.WithScale(0) })
}
