// Package figure resolves the plot area of a chart.
//
// A [Figure] combines the size reported by its [Container], the configured
// margin and aspect-ratio bounds, and the padding its marks negotiate on
// shared scales. The result is a [Layout] and, per scale, the pixel range
// marks draw into:
//
//	fig := figure.New(container, figure.DefaultConfig())
//	fig.AddMark(mark)
//	fig.RequestRelayout()
//	// ... on the next display frame
//	queue.Flush()
//	lo, hi := fig.PaddedRange(padding.Horizontal, xScale)
//
// # Relayout
//
// Relayout is deferred to a [Scheduler]. Any number of requests made
// before the scheduled task runs collapse into a single recomputation, and
// the recomputation is skipped when the container size and margin are
// unchanged and nothing forced it. A figure that is not visible skips
// recomputation until it becomes visible again.
//
// [Queue] is the in-process scheduler. Its owner flushes it once per
// display frame.
package figure
