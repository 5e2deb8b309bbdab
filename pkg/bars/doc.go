// Package bars binds raw numeric series to bar geometry.
//
// A [Mark] owns the input of one bars element (keys, one or more value
// series and a baseline) and keeps three derived views of it current:
//
//   - the stacked geometry ([StackSeries]): one [Group] per key holding one
//     [Segment] per series, with running positive and negative edges;
//   - color and opacity indices ([AssignColors]) under group, element or
//     sequential scoping, with "auto" resolved from the multi-series flag;
//   - domain requests to the x, y and color scales, issued under the mark's
//     owner keys so other marks sharing a scale are never disturbed.
//
// Numeric faults never fail: NaN magnitudes count as zero, mismatched
// lengths are truncated to the shortest series, and empty input clears the
// mark's domain contributions.
//
// # Example
//
//	reg := scale.NewRegistry()
//	m := bars.New(bars.Scales{X: reg.NewOrdinal("x"), Y: reg.NewLinear("y")},
//	    bars.WithData([]float64{1, 2, 3}, [][]float64{{5, -3, 2}, {1, 4, -1}}, 0))
//	for _, g := range m.Groups() {
//	    fmt.Println(g.Key, g.PosExtent, g.NegExtent)
//	}
package bars
