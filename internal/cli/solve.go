package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/littletsp/cache"
	"github.com/katalvlaran/littletsp/matrixio"
	"github.com/katalvlaran/littletsp/tsp"
)

type solveOpts struct {
	start   int
	verify  bool
	asJSON  bool
	noCache bool
	format  string
	timeout time.Duration
}

// solveOutput is the --json document.
type solveOutput struct {
	Name      string         `json:"name,omitempty"`
	Cities    int            `json:"cities"`
	Cost      int64          `json:"cost"`
	Solutions []tsp.Solution `json:"solutions"`
	Stats     tsp.Stats      `json:"stats"`
	Cached    bool           `json:"cached"`
	Verified  bool           `json:"verified,omitempty"`
}

func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Find every optimal tour of a cost matrix",
		Long: `Solve reads a cost matrix (TOML, YAML, JSON or whitespace text; "INF" marks
a missing edge) and prints the optimal cost followed by every tour achieving it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runSolve(ctx, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.start, "start", "s", 0, "city every reported tour starts from")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "cross-check the cost with Held-Karp (up to 16 cities)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "neither read nor write the result cache")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "input format: toml, yaml, json, text (default: from extension)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "abort the search after this long (0 = no limit)")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, path string, opts solveOpts) error {
	logger := loggerFromContext(ctx)

	inst, err := readInstance(path, opts.format)
	if err != nil {
		return err
	}
	logger.Debug("loaded instance", "file", path, "cities", inst.Matrix.Size())

	cc := c.openCache(ctx, opts.noCache)
	defer cc.Close()

	res, cached, err := solveCached(ctx, cc, inst.Matrix, opts.start, opts.timeout, c.Config.Cache.TTL.Duration)
	if err != nil {
		return fmt.Errorf("solve %s: %w", path, err)
	}

	verified := false
	if opts.verify {
		if verified, err = c.verify(ctx, inst.Matrix, res.Cost, opts.asJSON); err != nil {
			return err
		}
	}

	if opts.asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(solveOutput{
			Name:      inst.Name,
			Cities:    inst.Matrix.Size(),
			Cost:      res.Cost,
			Solutions: res.Solutions,
			Stats:     res.Stats,
			Cached:    cached,
			Verified:  verified,
		})
	}

	printSuccess(c.out, "Optimal cost %s (%d %s)", styleNumber.Render(fmt.Sprint(res.Cost)),
		len(res.Solutions), plural(len(res.Solutions), "tour", "tours"))
	for i, s := range res.Solutions {
		printTour(c.out, i, formatTour(inst, s.Path))
	}
	printStats(c.out, []string{
		fmt.Sprintf("%d cities", inst.Matrix.Size()),
		fmt.Sprintf("%d nodes", res.Stats.Popped),
		fmt.Sprintf("%d pruned", res.Stats.Pruned),
	}, cached)

	return nil
}

// solveCached answers from cc when possible, otherwise runs the search with
// debug hooks and stores the result. Cache errors are logged, never fatal.
func solveCached(ctx context.Context, cc cache.Cache, m *tsp.CostMatrix, start int, timeout, ttl time.Duration) (tsp.Result, bool, error) {
	logger := loggerFromContext(ctx)
	key := cache.SolveKey(m, start)

	res, hit, err := cache.GetResult(ctx, cc, key)
	if err != nil {
		logger.Warn("cache lookup failed", "err", err)
	}
	if hit {
		logger.Debug("cache hit", "key", key)
		return res, true, nil
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	p := newProgress(logger)
	res, err = tsp.Solve(m,
		tsp.WithContext(ctx),
		tsp.WithStartVertex(start),
		tsp.WithOnBranch(func(level int, v tsp.NewVertex, lb tsp.Cost) {
			logger.Debug("branch", "level", level, "edge", fmt.Sprintf("%d→%d", v.Row, v.Col), "regret", v.Cost, "bound", lb)
		}),
		tsp.WithOnPrune(func(level int, lb, best tsp.Cost) {
			logger.Debug("prune", "level", level, "bound", lb, "best", best)
		}),
		tsp.WithOnSolution(func(s tsp.Solution, lb tsp.Cost) {
			logger.Debug("candidate", "cost", s.Cost, "tour", tsp.DebugString(s.Path))
		}),
	)
	if err != nil {
		return tsp.Result{}, false, err
	}
	p.done(fmt.Sprintf("Solved %d cities", m.Size()))

	if err := cache.PutResult(ctx, cc, key, res, ttl); err != nil {
		logger.Warn("cache store failed", "err", err)
	}

	return res, false, nil
}

// verify checks cost against Held-Karp when the instance is small enough.
func (c *CLI) verify(ctx context.Context, m *tsp.CostMatrix, cost int64, quiet bool) (bool, error) {
	if m.Size() > tsp.MaxHeldKarpCities {
		if !quiet {
			printWarning(c.out, "Skipping verification: %d cities exceeds the Held-Karp limit of %d", m.Size(), tsp.MaxHeldKarpCities)
		}
		return false, nil
	}

	hk, _, err := tsp.HeldKarp(m)
	if err != nil {
		return false, fmt.Errorf("verify: %w", err)
	}
	if hk != cost {
		if !quiet {
			printError(c.out, "Held-Karp found cost %d, branch-and-bound %d", hk, cost)
		}
		return false, fmt.Errorf("verify: held-karp cost %d != %d: %w", hk, cost, tsp.ErrInvariant)
	}
	loggerFromContext(ctx).Debug("verified", "cost", cost)
	if !quiet {
		printSuccess(c.out, "Verified with Held-Karp")
	}

	return true, nil
}

func readInstance(path, format string) (*matrixio.Instance, error) {
	if format == "" {
		return matrixio.ReadFile(path)
	}
	f, err := matrixio.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	return matrixio.ReadFileAs(path, f)
}

// formatTour renders a closed tour with city labels.
func formatTour(inst *matrixio.Instance, path []int) string {
	names := make([]string, 0, len(path)+1)
	for _, v := range path {
		names = append(names, inst.Label(v))
	}
	if len(path) > 0 {
		names = append(names, inst.Label(path[0]))
	}

	return strings.Join(names, " "+iconArrow+" ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}
