package bars

import "math"

// Type selects how the segments of a group are laid out.
type Type string

const (
	// Stacked lays segments end to end on a running baseline.
	Stacked Type = "stacked"
	// Grouped lays segments side by side, each from the common baseline.
	Grouped Type = "grouped"
)

// Valid reports whether t is a known layout type.
func (t Type) Valid() bool { return t == Stacked || t == Grouped }

// Segment is the bar drawn for one (group, series) pair.
type Segment struct {
	GroupIndex  int
	SeriesIndex int
	Key         float64

	// Low and High are the stacked-mode edges on the value axis.
	Low, High float64

	// Magnitude is Raw minus the baseline, with NaN replaced by zero.
	Magnitude float64
	Raw       float64

	ColorIndex   int
	OpacityIndex int

	// Color is the color data value at ColorIndex. HasColor is false when
	// the color data is too short; the renderer picks a fallback.
	Color    float64
	HasColor bool
}

// Positive reports whether the segment stacks upward.
func (s Segment) Positive() bool { return s.Magnitude >= 0 }

// GroupedEdges returns the segment's extent in grouped mode, which only
// depends on the baseline and its own magnitude.
func (s Segment) GroupedEdges(base float64) (low, high float64) {
	if s.Magnitude >= 0 {
		return base, base + s.Magnitude
	}
	return base + s.Magnitude, base
}

// Edges returns the value-axis extent for layout type t.
func (s Segment) Edges(t Type, base float64) (low, high float64) {
	if t == Grouped {
		return s.GroupedEdges(base)
	}
	return s.Low, s.High
}

// Group holds the segments drawn at one key.
type Group struct {
	Key      float64
	Segments []Segment

	// PosExtent is the highest stacked edge reached, NegExtent the lowest.
	// Both start at the baseline.
	PosExtent float64
	NegExtent float64
}

// Stack is the geometry derived from one set of series.
type Stack struct {
	Groups []Group
	Base   float64

	// MultiSeries is set when groups hold more than one segment. It drives
	// the "auto" color and opacity scoping.
	MultiSeries bool
}

// Empty reports whether the stack holds no groups.
func (st Stack) Empty() bool { return len(st.Groups) == 0 }

// accumulator carries the running stacked edges of one group.
type accumulator struct {
	pos, neg float64
}

// push places a segment of magnitude mag and returns its edges together
// with the advanced accumulator.
func (a accumulator) push(mag float64) (low, high float64, next accumulator) {
	if mag >= 0 {
		return a.pos, a.pos + mag, accumulator{pos: a.pos + mag, neg: a.neg}
	}
	return a.neg + mag, a.neg, accumulator{pos: a.pos, neg: a.neg + mag}
}

// StackSeries builds one group per key. The number of groups is the length
// of the shortest input; a NaN base counts as zero.
func StackSeries(x []float64, y [][]float64, base float64) Stack {
	if math.IsNaN(base) {
		base = 0
	}
	st := Stack{Base: base}
	if len(x) == 0 || len(y) == 0 {
		return st
	}

	n := len(x)
	for _, s := range y {
		n = min(n, len(s))
	}
	if n == 0 {
		return st
	}

	st.Groups = make([]Group, n)
	for i := range n {
		acc := accumulator{pos: base, neg: base}
		g := Group{Key: x[i], Segments: make([]Segment, len(y))}
		for j, series := range y {
			raw := series[i]
			mag := raw - base
			if math.IsNaN(mag) {
				mag = 0
			}
			var low, high float64
			low, high, acc = acc.push(mag)
			g.Segments[j] = Segment{
				GroupIndex:  i,
				SeriesIndex: j,
				Key:         x[i],
				Low:         low,
				High:        high,
				Magnitude:   mag,
				Raw:         raw,
			}
		}
		g.PosExtent, g.NegExtent = acc.pos, acc.neg
		st.Groups[i] = g
	}
	st.MultiSeries = len(y) > 1
	return st
}
