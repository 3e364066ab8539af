package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/littletsp/matrixio"
	"github.com/katalvlaran/littletsp/render"
	"github.com/katalvlaran/littletsp/tsp"
)

func instance() *matrixio.Instance {
	return &matrixio.Instance{
		Name:   "tri",
		Labels: []string{"Oslo", "Bergen", "Tromsø"},
		Matrix: tsp.MustFromInts([][]int64{
			{-1, 4, 9},
			{3, -1, 5},
			{6, 7, -1},
		}, -1),
	}
}

func TestToDOT_TourEdges(t *testing.T) {
	sol := &tsp.Solution{Cost: 15, Path: []int{0, 1, 2}}
	dot := render.ToDOT(instance(), sol, render.Options{})

	assert.True(t, strings.HasPrefix(dot, "digraph G {"))
	assert.Contains(t, dot, `0 [label="Oslo"];`)
	assert.Contains(t, dot, `2 [label="Tromsø"];`)
	assert.Contains(t, dot, `0 -> 1 [label="4", penwidth=2.5`)
	assert.Contains(t, dot, `1 -> 2 [label="5", penwidth=2.5`)
	assert.Contains(t, dot, `2 -> 0 [label="6", penwidth=2.5`)
	assert.NotContains(t, dot, "0 -> 2")
	assert.Contains(t, dot, `label="tri · cost 15"`)
}

func TestToDOT_ShowAll(t *testing.T) {
	dot := render.ToDOT(instance(), nil, render.Options{ShowAll: true})
	assert.Equal(t, 6, strings.Count(dot, "style=dashed"))
	assert.NotContains(t, dot, "penwidth")
}

func TestRender_DOTPassthroughAndErrors(t *testing.T) {
	dot := render.ToDOT(instance(), nil, render.Options{})
	out, err := render.Render(context.Background(), dot, render.FormatDOT)
	require.NoError(t, err)
	assert.Equal(t, dot, string(out))

	_, err = render.Render(context.Background(), dot, "gif")
	require.Error(t, err)
}

func TestRender_SVG(t *testing.T) {
	sol := &tsp.Solution{Cost: 15, Path: []int{0, 1, 2}}
	out, err := render.Render(context.Background(), render.ToDOT(instance(), sol, render.Options{}), render.FormatSVG)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<svg")
}
