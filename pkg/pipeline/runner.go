package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/sandutsar/bqplot/pkg/cache"
	"github.com/sandutsar/bqplot/pkg/config"
	"github.com/sandutsar/bqplot/pkg/export"
	"github.com/sandutsar/bqplot/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner holds no per-chart state, so several goroutines may share it.
// Each run builds its own scales, marks and figure.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  cache.Instrument(c),
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → relayout → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, chart *config.Chart, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	chart = withOverrides(chart, opts)
	if err := chart.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chart: %w", err)
	}

	encoded, err := chart.Encode()
	if err != nil {
		return nil, err
	}
	result := &Result{ChartHash: cache.Hash(encoded)}
	layoutKey := r.Keyer.LayoutKey(result.ChartHash, cache.LayoutKeyOpts{Width: opts.Width, Height: opts.Height})

	// Stage 1+2: Build and relayout
	buildStart := time.Now()
	snap, hit, err := r.SnapshotWithCacheInfo(ctx, chart, layoutKey, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Snapshot = snap
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Marks = len(snap.Marks)
	for _, m := range snap.Marks {
		result.Stats.Segments += m.SegmentCount()
	}
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"chart", chart.Name,
		"marks", result.Stats.Marks,
		"segments", result.Stats.Segments,
		"hidden", snap.Layout.Hidden,
		"cached", hit,
		"duration", result.Stats.BuildTime)

	// Stage 3: Export
	exportStart := time.Now()
	artifact, artifactHit, err := r.ExportWithCacheInfo(ctx, snap, layoutKey, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifact = artifact
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ArtifactHit = artifactHit

	r.Logger.Debug("encoded snapshot",
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.ExportTime)

	return result, nil
}

// ExecuteBatch runs Execute for every chart, at most limit at a time.
// Charts share no state, so they are processed in parallel. Results are in
// input order; the first failure cancels the remaining runs.
func (r *Runner) ExecuteBatch(ctx context.Context, charts []*config.Chart, opts Options, limit int) ([]*Result, error) {
	results := make([]*Result, len(charts))
	var done atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, chart := range charts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.Execute(ctx, chart, opts)
			if err != nil {
				return fmt.Errorf("chart %d (%s): %w", i, chart.Name, err)
			}
			results[i] = res
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), len(charts))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SnapshotWithCacheInfo builds chart, flushes its relayout and captures a
// snapshot, consulting the cache under key first unless opts.Refresh is set.
func (r *Runner) SnapshotWithCacheInfo(ctx context.Context, chart *config.Chart, key string, opts Options) (export.Snapshot, bool, error) {
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if snap, err := export.Unmarshal(data, export.FormatMsgpack); err == nil {
				return snap, true, nil
			}
		}
	}

	observability.Pipeline().OnBuildStart(ctx, chart.Name, len(chart.Marks))
	start := time.Now()
	snap, err := r.build(chart)
	observability.Pipeline().OnBuildComplete(ctx, chart.Name, time.Since(start), err)
	if err != nil {
		return export.Snapshot{}, false, err
	}

	if data, err := export.Marshal(snap, export.FormatMsgpack); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return snap, false, nil
}

func (r *Runner) build(chart *config.Chart) (export.Snapshot, error) {
	ch, err := Build(chart, WithBuildLogger(r.Logger))
	if err != nil {
		return export.Snapshot{}, err
	}
	defer ch.Close()
	ch.Flush()
	return ch.Snapshot(), nil
}

// ExportWithCacheInfo encodes snap in opts.Format with caching. Artifacts
// are keyed by the layout key the snapshot was stored under.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, snap export.Snapshot, layoutKey string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(layoutKey)), cache.ArtifactKeyOpts{
		Format: string(opts.Format),
		Indent: opts.Format == export.FormatJSON,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return data, true, nil
		}
	}

	observability.Pipeline().OnExportStart(ctx, string(opts.Format))
	start := time.Now()
	data, err := export.Marshal(snap, opts.Format)
	observability.Pipeline().OnExportComplete(ctx, string(opts.Format), len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	}
	return data, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// withOverrides returns chart with the size overrides of opts applied,
// leaving the caller's document untouched.
func withOverrides(chart *config.Chart, opts Options) *config.Chart {
	if opts.Width <= 0 && opts.Height <= 0 {
		return chart
	}
	c := *chart
	if opts.Width > 0 {
		c.Figure.Width = opts.Width
	}
	if opts.Height > 0 {
		c.Figure.Height = opts.Height
	}
	return &c
}
