// Package pipeline turns chart documents into layout snapshots.
//
// This package implements the build → relayout → export pipeline shared by
// the CLI commands and the HTTP API, so every entry point validates,
// caches and encodes charts the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: create scales, bars marks and a figure from a [config.Chart]
//  2. Relayout: flush the figure's queue so the plot area, padding and
//     scale ranges are resolved
//  3. Export: capture an [export.Snapshot] and encode it
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, chart, pipeline.Options{Format: export.FormatJSON})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
//
// Interactive callers use [Build] directly and flush on their own frame
// loop.
package pipeline

import (
	"time"

	"github.com/sandutsar/bqplot/pkg/export"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Width and Height override the document's container size when set.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Format is the artifact encoding. Defaults to JSON.
	Format export.Format `json:"format,omitempty"`

	// Refresh bypasses cached snapshots. Fresh results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Progress is called by ExecuteBatch after each chart completes, with
	// the number of completed charts so far. Calls may come from several
	// goroutines. Optional.
	Progress func(done, total int) `json:"-"`
}

// SetDefaults fills omitted options.
func (o *Options) SetDefaults() {
	if o.Format == "" {
		o.Format = export.FormatJSON
	}
}

// Validate checks the options after defaults were applied.
func (o *Options) Validate() error {
	return export.ValidateFormat(o.Format)
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snapshot is the computed layout.
	Snapshot export.Snapshot

	// Artifact is Snapshot encoded in the requested format.
	Artifact []byte

	// ChartHash is the content hash of the normalized document.
	ChartHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Marks      int
	Segments   int
	BuildTime  time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	LayoutHit   bool // Whether the snapshot came from cache
	ArtifactHit bool // Whether the encoded artifact came from cache
}
