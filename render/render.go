// Package render draws a solved tour as a Graphviz graph.
//
// ToDOT produces DOT text: one node per city (labelled when the instance
// carries labels) and one bold edge per tour step annotated with its cost.
// Render turns DOT into SVG or PNG with the embedded Graphviz of
// goccy/go-graphviz, so no system install is needed.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/katalvlaran/littletsp/matrixio"
	"github.com/katalvlaran/littletsp/tsp"
)

// Output formats accepted by Render.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// Options configures DOT generation.
type Options struct {
	// ShowAll also draws every finite non-tour edge, dashed and grey.
	ShowAll bool
}

// ToDOT converts an instance and one of its tours into DOT. A nil sol draws
// the cities only (plus all edges with ShowAll).
func ToDOT(inst *matrixio.Instance, sol *tsp.Solution, opts Options) string {
	var (
		buf  bytes.Buffer
		n    = inst.Matrix.Size()
		tour = make(map[tsp.Vertex]bool, n)
		i, j int
	)
	if sol != nil {
		for i = range sol.Path {
			tour[tsp.Vertex{Row: sol.Path[i], Col: sol.Path[(i+1)%len(sol.Path)]}] = true
		}
	}

	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if title := dotTitle(inst, sol); title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", title)
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	for i = 0; i < n; i++ {
		fmt.Fprintf(&buf, "  %d [label=%q];\n", i, inst.Label(i))
	}

	buf.WriteString("\n")
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			c := inst.Matrix.At(i, j)
			switch {
			case tour[tsp.Vertex{Row: i, Col: j}]:
				fmt.Fprintf(&buf, "  %d -> %d [label=%q, penwidth=2.5, color=\"#2a9d8f\"];\n", i, j, c.String())
			case opts.ShowAll && !c.IsForbidden():
				fmt.Fprintf(&buf, "  %d -> %d [label=%q, style=dashed, color=grey, fontcolor=grey];\n", i, j, c.String())
			}
		}
	}

	buf.WriteString("}\n")

	return buf.String()
}

func dotTitle(inst *matrixio.Instance, sol *tsp.Solution) string {
	var parts []string
	if inst.Name != "" {
		parts = append(parts, inst.Name)
	}
	if sol != nil {
		parts = append(parts, fmt.Sprintf("cost %d", sol.Cost))
	}

	return strings.Join(parts, " · ")
}

// Render lays out dot and encodes it in format (svg, png or dot).
func Render(ctx context.Context, dot string, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("unsupported format %q (want svg, png or dot)", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return buf.Bytes(), nil
}
