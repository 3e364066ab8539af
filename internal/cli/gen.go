package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/littletsp/gen"
	"github.com/katalvlaran/littletsp/matrixio"
)

type genOpts struct {
	kind      string
	n         int
	seed      int64
	min, max  int64
	density   float64
	scale     float64
	symmetric bool
	name      string
	output    string
	format    string
}

func (c *CLI) genCommand() *cobra.Command {
	opts := genOpts{kind: gen.KindRandom, n: 8, seed: 1, min: 1, max: 100, density: 0.5, scale: 100}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a benchmark instance",
		Long: fmt.Sprintf(`Gen writes a reproducible cost matrix. Kinds: %s.
Without --output the instance is printed to stdout.`, strings.Join(gen.Kinds(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGen(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", opts.kind, "instance kind: "+strings.Join(gen.Kinds(), ", "))
	cmd.Flags().IntVarP(&opts.n, "cities", "n", opts.n, "number of cities")
	cmd.Flags().Int64Var(&opts.seed, "seed", opts.seed, "random seed")
	cmd.Flags().Int64Var(&opts.min, "min", opts.min, "minimum edge cost (uniform uses this for every edge)")
	cmd.Flags().Int64Var(&opts.max, "max", opts.max, "maximum edge cost")
	cmd.Flags().Float64Var(&opts.density, "density", opts.density, "probability of an extra edge (sparse)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "circle radius in cost units (circle)")
	cmd.Flags().BoolVar(&opts.symmetric, "symmetric", false, "mirror costs so that c(i,j) = c(j,i)")
	cmd.Flags().StringVar(&opts.name, "name", "", "instance name (default: <kind>-<n>)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file; format from extension")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "toml", "stdout format: toml, yaml, json, text")

	return cmd
}

func (c *CLI) runGen(opts genOpts) error {
	genOptions := []gen.Option{
		gen.WithSeed(opts.seed),
		gen.WithDensity(opts.density),
	}
	if opts.min < 0 || opts.min > opts.max {
		return fmt.Errorf("invalid cost range [%d, %d]", opts.min, opts.max)
	}
	if opts.scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", opts.scale)
	}
	genOptions = append(genOptions, gen.WithCostRange(opts.min, opts.max), gen.WithScale(opts.scale))
	if opts.symmetric {
		genOptions = append(genOptions, gen.WithSymmetric())
	}

	m, err := gen.Build(opts.kind, opts.n, genOptions...)
	if err != nil {
		return err
	}

	name := opts.name
	if name == "" {
		name = fmt.Sprintf("%s-%d", opts.kind, opts.n)
	}
	inst := &matrixio.Instance{Name: name, Matrix: m}

	if opts.output == "" {
		f, err := matrixio.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		return matrixio.Write(c.out, inst, f)
	}

	if err := matrixio.WriteFile(opts.output, inst); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(c.out, "Generated %s instance with %d cities", opts.kind, opts.n)
	printFile(c.out, opts.output)
	printNextStep(c.out, "Solve it", appName+" solve "+opts.output)

	return nil
}
