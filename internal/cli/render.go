package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/littletsp/render"
)

type renderOpts struct {
	output  string
	format  string
	start   int
	all     bool
	noCache bool
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: render.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the optimal tour of a cost matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runRender(ctx, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png, dot")
	cmd.Flags().IntVarP(&opts.start, "start", "s", 0, "city the drawn tour starts from")
	cmd.Flags().BoolVar(&opts.all, "all-edges", false, "also draw every non-tour edge")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "neither read nor write the result cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	switch opts.format {
	case render.FormatSVG, render.FormatPNG, render.FormatDOT:
	default:
		return fmt.Errorf("unsupported format %q (want svg, png or dot)", opts.format)
	}

	inst, err := readInstance(path, "")
	if err != nil {
		return err
	}

	cc := c.openCache(ctx, opts.noCache)
	defer cc.Close()

	res, _, err := solveCached(ctx, cc, inst.Matrix, opts.start, 0, c.Config.Cache.TTL.Duration)
	if err != nil {
		return fmt.Errorf("solve %s: %w", path, err)
	}

	dot := render.ToDOT(inst, &res.Solutions[0], render.Options{ShowAll: opts.all})
	out, err := render.Render(ctx, dot, opts.format)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + "." + opts.format
	}
	if err := os.WriteFile(output, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess(c.out, "Rendered tour of cost %d", res.Cost)
	printFile(c.out, output)

	return nil
}
