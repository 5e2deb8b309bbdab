// Package cli implements the bqplot command-line interface.
//
// The CLI loads chart documents, runs them through the layout pipeline and
// writes the resulting snapshots. It is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Compute layout snapshots for one or more chart files
//   - inspect: Print a chart's scales, domains and ranges as tables
//   - explore: Resize and restyle a chart interactively in the terminal
//   - serve: Expose the pipeline over HTTP
//   - cache: Manage the snapshot cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sandutsar/bqplot/pkg/buildinfo"
	"github.com/sandutsar/bqplot/pkg/cache"
	"github.com/sandutsar/bqplot/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bqplot"

	// cacheDirEnv overrides the snapshot cache directory.
	cacheDirEnv = "BQPLOT_CACHE_DIR"

	// redisEnv supplies a default for --redis.
	redisEnv = "BQPLOT_REDIS_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "bqplot lays out bar charts from TOML documents",
		Long:         `bqplot computes stacked and grouped bar geometry, shared scale domains and padded pixel ranges for chart documents, and exports the result as JSON, BSON or MessagePack snapshots.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the snapshot cache backend.
type cacheFlags struct {
	noCache   bool
	redis     string
	namespace string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redis, "redis", os.Getenv(redisEnv), "redis address or URL for a shared cache (default: local files)")
	cmd.Flags().StringVar(&f.namespace, "cache-namespace", "", "prefix for cache keys, to keep deployments sharing a cache apart")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if f.namespace != "" {
		keyer = cache.NewScopedKeyer(nil, f.namespace+":")
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	switch {
	case f.noCache:
		return cache.NewNullCache(), nil
	case f.redis != "":
		rc, err := cache.NewRedisCache(ctx, f.redis)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the snapshot cache directory: $BQPLOT_CACHE_DIR if set,
// otherwise the user cache directory (~/.cache/bqplot on Linux).
func cacheDir() (string, error) {
	if dir := os.Getenv(cacheDirEnv); dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}
