package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/littletsp/server"
)

// shutdownGrace bounds how long in-flight solves may finish after a signal.
const shutdownGrace = 10 * time.Second

type serveOpts struct {
	addr      string
	maxCities int
	timeout   time.Duration
}

func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solve service",
		Long: `Serve exposes POST /v1/solve and POST /v1/render, plus /healthz and
Prometheus /metrics. It stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runServe(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().IntVar(&opts.maxCities, "max-cities", 0, "reject larger instances (default from config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-request search timeout (default from config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cmd *cobra.Command, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg := server.Config{
		Addr:         c.Config.Server.Addr,
		MaxCities:    c.Config.Server.MaxCities,
		SolveTimeout: c.Config.Server.Timeout.Duration,
		CacheTTL:     c.Config.Cache.TTL.Duration,
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = opts.addr
	}
	if cmd.Flags().Changed("max-cities") {
		cfg.MaxCities = opts.maxCities
	}
	if cmd.Flags().Changed("timeout") {
		cfg.SolveTimeout = opts.timeout
	}

	srv := server.New(cfg, c.openCache(ctx, false), logger)
	addr, err := srv.Start()
	if err != nil {
		return err
	}
	printSuccess(c.out, "Listening on http://%s", addr)
	printDetail(c.out, "cache: %s · max cities: %d · timeout: %s", c.Config.Cache.Backend, cfg.MaxCities, cfg.SolveTimeout)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		printError(c.out, "Shutdown: %v", err)
		return err
	}

	return nil
}
