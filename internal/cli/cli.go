// Package cli implements the picroute command-line interface.
//
// This package provides commands for routing a chip's electrical
// contacts to peripheral bond pads, rendering connectivity diagrams,
// serving the pipeline over HTTP, and managing the result cache. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - route: Run the interconnect pipeline over a ports file and netlist
//   - graph: Render group→pad connectivity from a routing result
//   - serve: Expose the pipeline as an HTTP service
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lightfab/picroute/pkg/buildinfo"
	"github.com/lightfab/picroute/pkg/cache"
	"github.com/lightfab/picroute/pkg/route"
)

// appName is the application name used for directories and display.
const appName = "picroute"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "picroute",
		Short:        "Picroute routes chip electrical contacts to peripheral bond pads",
		Long:         `Picroute is a CLI tool for generating the electrical interconnect of a photonic chip: it groups scattered contact ports, places bond pads along the left and bottom edges, and routes collision-free Manhattan metal traces between them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.routeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) *route.Runner {
	return c.newRunnerWith(newCache(noCache))
}

// newRunnerWith creates a runner around an explicit cache backend.
func (c *CLI) newRunnerWith(store cache.Cache) *route.Runner {
	return route.NewRunner(store, c.Logger)
}

// newCache builds the local result cache. Cache setup failures degrade
// to the null cache; routing still works, just uncached.
func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/picroute/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	return cache.DefaultDir()
}

// loadParams reads the layout parameter file, or returns the
// reference-process defaults when no file is given.
func loadParams(path string) (route.Params, error) {
	if path == "" {
		return route.DefaultParams(), nil
	}
	return route.LoadParams(path)
}
