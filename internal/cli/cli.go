// Package cli implements the littletsp command-line interface.
//
// Commands:
//   - solve: find every optimal tour of a matrix file
//   - gen: generate benchmark instances
//   - render: draw the optimal tour as SVG, PNG or DOT
//   - serve: run the HTTP solve service
//   - cache: inspect or clear the result cache
//   - version: print build information
//
// All commands accept --verbose (-v) for debug logging (including every
// branching decision of the search) and --config to point at a TOML or YAML
// configuration file.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/littletsp/cache"
	"github.com/katalvlaran/littletsp/internal/buildinfo"
)

// appName is used for directories and display.
const appName = "littletsp"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	out        io.Writer
	configPath string
}

// New creates a CLI logging to w at level. Command output goes to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "littletsp solves travelling salesman instances exactly",
		Long:         `littletsp finds every optimal tour of an asymmetric travelling salesman instance with Little's branch-and-bound algorithm.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg

			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (TOML or YAML)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.genCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// openCache opens the configured backend, or a NullCache when noCache is
// set. A backend that cannot be opened degrades to no caching with a warning.
func (c *CLI) openCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	cc, err := cache.Open(ctx, c.Config.cacheConfig())
	if err != nil {
		loggerFromContext(ctx).Warn("cache unavailable, continuing without", "backend", c.Config.Cache.Backend, "err", err)
		return cache.NewNullCache()
	}

	return cc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/littletsp/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns ~/.config/littletsp/ (or $XDG_CONFIG_HOME/littletsp/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", appName), nil
}
