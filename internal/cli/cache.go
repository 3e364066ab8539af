package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/littletsp/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runCacheClear(ctx)
		},
	}
}

func (c *CLI) runCacheClear(ctx context.Context) error {
	if c.Config.Cache.Backend == cache.BackendNone {
		printInfo(c.out, "Caching is disabled")
		return nil
	}

	cc, err := cache.Open(ctx, c.Config.cacheConfig())
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer cc.Close()

	clr, ok := cc.(cache.Clearer)
	if !ok {
		printInfo(c.out, "Backend %s cannot be cleared", c.Config.Cache.Backend)
		return nil
	}
	count, err := clr.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	if count == 0 {
		printInfo(c.out, "Cache is empty")
		return nil
	}
	printSuccess(c.out, "Cleared %d cached %s", count, plural(count, "entry", "entries"))
	printDetail(c.out, "%s", c.cacheLocation())

	return nil
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where results are cached",
		RunE: func(cmd *cobra.Command, args []string) error {
			printKeyValue(c.out, "backend", c.Config.Cache.Backend)
			printKeyValue(c.out, "location", c.cacheLocation())
			return nil
		},
	}
}

func (c *CLI) cacheLocation() string {
	switch c.Config.Cache.Backend {
	case cache.BackendFile:
		return c.Config.Cache.Dir
	case cache.BackendSQLite:
		return c.Config.Cache.Path
	case cache.BackendRedis:
		return "redis://" + c.Config.Cache.RedisAddr
	}

	return "-"
}
