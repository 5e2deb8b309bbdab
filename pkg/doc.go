// Package pkg provides the core libraries for bqplot bar chart layout.
//
// # Overview
//
// bqplot turns bar chart data into geometry: stacked or grouped segments,
// shared scale domains, negotiated padding and pixel ranges for a figure of
// a given size. The pkg directory is organized into four main areas:
//
//  1. [bars], [scale], [padding], [figure] - Domain logic (stacking, color
//     scoping, domains, padding negotiation, figure layout)
//  2. [config] - Chart documents in TOML
//  3. [pipeline], [session] - Orchestration (build → relayout → export)
//     and live charts
//  4. [export], [cache] - Snapshot encodings and caching
//
// # Architecture
//
// The typical data flow through bqplot:
//
//	Chart document (TOML)
//	         ↓
//	    [config] package (decode, defaults, validation)
//	         ↓
//	    [bars] + [scale] packages (segments, domain requests)
//	         ↓
//	    [figure] + [padding] packages (layout, padded ranges)
//	         ↓
//	    [export] package (JSON/BSON/MessagePack snapshot)
//
// # Quick Start
//
//	chart, _ := config.Load("sales.toml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, chart, pipeline.Options{})
//	os.Stdout.Write(result.Artifact)
//
// # Supporting Packages
//
//   - [errors] - Structured error codes
//   - [event] - Typed change notifications
//   - [observability] - Hooks for metrics and tracing
//   - [buildinfo] - Version information
package pkg
