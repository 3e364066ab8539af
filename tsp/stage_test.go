package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/littletsp/tsp"
)

func TestStageState_RootDoesNotAliasInput(t *testing.T) {
	m := fiveCity()
	s := tsp.NewStageState(m)
	require.Equal(t, 0, s.Level())
	require.Equal(t, tsp.Finite(0), s.LowerBound())
	require.Empty(t, s.UnsortedPath())

	s.Reduce()
	assert.Equal(t, fiveCity().Rows(), m.Rows(), "caller matrix must stay untouched")
}

func TestStageState_ReduceInitializesBound(t *testing.T) {
	s := tsp.NewStageState(fiveCity())
	require.Equal(t, tsp.Finite(28), s.Reduce())
	require.Equal(t, tsp.Finite(28), s.LowerBound())

	// A reduced matrix contributes nothing more.
	require.Equal(t, tsp.Finite(0), s.Reduce())
	require.Equal(t, tsp.Finite(28), s.LowerBound())
}

func TestStageState_ReduceMarksDeadEnd(t *testing.T) {
	s := tsp.NewStageState(tsp.MustFromInts([][]int64{
		{inf, inf, inf},
		{1, inf, 1},
		{1, 1, inf},
	}, inf))
	s.Reduce()
	require.True(t, s.LowerBound().IsForbidden())
}

func TestStageState_ChooseNewVertex(t *testing.T) {
	s := tsp.NewStageState(fiveCity())
	s.Reduce()

	nv, err := s.ChooseNewVertex()
	require.NoError(t, err)
	// Six zero cells tie at regret 1; the first in row-major order wins.
	require.Equal(t, tsp.Vertex{Row: 0, Col: 2}, nv.Vertex)
	require.Equal(t, tsp.Finite(1), nv.Cost)
}

func TestStageState_ChooseNewVertexPrefersUnavoidable(t *testing.T) {
	s := tsp.NewStageState(tsp.MustFromInts([][]int64{
		{inf, 0, 0},
		{0, inf, 0},
		{inf, 0, inf},
	}, inf))
	s.Reduce()

	nv, err := s.ChooseNewVertex()
	require.NoError(t, err)
	// Column 0 has a single way in, so 1→0 has no alternative. 2→1 is
	// unavoidable as well but comes later in row-major order.
	require.Equal(t, tsp.Vertex{Row: 1, Col: 0}, nv.Vertex)
	require.True(t, nv.Cost.IsForbidden())

	_, ok := s.RightBranch(nv)
	require.False(t, ok)
}

func TestStageState_ChooseNewVertexWithoutZero(t *testing.T) {
	// Not reduced, so no cell is zero.
	s := tsp.NewStageState(fiveCity())
	_, err := s.ChooseNewVertex()
	mustErrIs(t, err, tsp.ErrNoZeroCell)
}

func TestStageState_RightBranch(t *testing.T) {
	s := tsp.NewStageState(fiveCity())
	s.Reduce()
	nv, err := s.ChooseNewVertex()
	require.NoError(t, err)

	right, ok := s.RightBranch(nv)
	require.True(t, ok)
	require.Equal(t, tsp.Finite(29), right.LowerBound(), "parent bound plus regret")
	require.Equal(t, 0, right.Level())
	require.Equal(t, tsp.MustFromInts([][]int64{
		{inf, 0, inf, 8, 3},
		{1, inf, 17, 1, 0},
		{0, 17, inf, 0, 0},
		{9, 1, 0, inf, 3},
		{4, 0, 0, 3, inf},
	}, inf).Rows(), right.Matrix().Rows())

	// The parent is untouched by branching.
	require.Equal(t, tsp.Finite(0), s.Matrix().At(0, 2))
	require.Equal(t, tsp.Finite(28), s.LowerBound())
}

func TestStageState_Commit(t *testing.T) {
	s := tsp.NewStageState(fiveCity())
	s.Reduce()
	s.Commit(tsp.Vertex{Row: 0, Col: 2})

	require.Equal(t, 1, s.Level())
	require.Equal(t, []tsp.Vertex{{Row: 0, Col: 2}}, s.UnsortedPath())
	require.Equal(t, tsp.MustFromInts([][]int64{
		{inf, inf, inf, inf, inf},
		{1, inf, inf, 1, 0},
		{inf, 17, inf, 0, 0},
		{9, 1, inf, inf, 3},
		{4, 0, inf, 3, inf},
	}, inf).Rows(), s.Matrix().Rows())
}

func TestStageState_CommitForbidsChainClosure(t *testing.T) {
	s := tsp.NewStageState(uniform(4, 5))
	s.Commit(tsp.Vertex{Row: 0, Col: 1})
	s.Commit(tsp.Vertex{Row: 1, Col: 2})

	m := s.Matrix()
	// Chain 0→1→2: closing it with 2→0 would leave city 3 out.
	assert.True(t, m.At(2, 0).IsForbidden())
	assert.True(t, m.At(2, 1).IsForbidden())
	assert.Equal(t, tsp.Finite(5), m.At(2, 3))
	assert.Equal(t, tsp.Finite(5), m.At(3, 0))

	path := s.UnsortedPath()
	path[0] = tsp.Vertex{Row: 3, Col: 3}
	assert.Equal(t, tsp.Vertex{Row: 0, Col: 1}, s.UnsortedPath()[0], "UnsortedPath returns a copy")
}

func TestStageState_FinalPath(t *testing.T) {
	s := tsp.NewStageState(tsp.MustFromInts([][]int64{{inf, 3}, {4, inf}}, inf))
	path, err := s.FinalPath(1)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, path)
	require.Equal(t, tsp.Finite(7), s.LowerBound())
	require.Len(t, s.UnsortedPath(), 2)
}

func TestStageState_FinalPathPicksCyclePairing(t *testing.T) {
	// With 0→1 and 2→3 taken, pairing 1→0 with 3→2 would close two sub-tours
	// and is already forbidden; only 1→2 with 3→0 remains.
	s := tsp.NewStageState(uniform(4, 1))
	s.Commit(tsp.Vertex{Row: 0, Col: 1})
	s.Commit(tsp.Vertex{Row: 2, Col: 3})

	path, err := s.FinalPath(0)
	require.NoError(t, err)
	require.NoError(t, tsp.ValidateCycle(path, 4))
	require.Equal(t, []int{0, 1, 2, 3}, path)
	require.Equal(t, 4, s.Level())
}

func TestStageState_FinalPathWrongLevel(t *testing.T) {
	s := tsp.NewStageState(fiveCity())
	_, err := s.FinalPath(0)
	mustErrIs(t, err, tsp.ErrInvariant)
}
