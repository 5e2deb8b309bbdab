package bars

import "math"

// Preserve marks axes whose domain the mark must not drive. For a preserved
// axis the mark withdraws its own contribution; other owners on the shared
// scale keep theirs.
type Preserve struct {
	X     bool `toml:"x" json:"x"`
	Y     bool `toml:"y" json:"y"`
	Color bool `toml:"color" json:"color"`
}

// Owner keys under which a mark contributes to each axis.
const (
	axisX     = "x"
	axisY     = "y"
	axisColor = "color"
)

// OwnerKey returns the domain owner key of mark id for axis.
func OwnerKey(id, axis string) string { return id + "_" + axis }

// XDomain returns the group keys in order.
func XDomain(st Stack) []float64 {
	keys := make([]float64, len(st.Groups))
	for i, g := range st.Groups {
		keys[i] = g.Key
	}
	return keys
}

// YDomain returns the value-axis domain request for layout type t:
// [lowest, highest, base]. The base is always included so the baseline
// stays representable. An empty stack yields nil.
func YDomain(st Stack, t Type) []float64 {
	if st.Empty() {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	if t == Grouped {
		for _, g := range st.Groups {
			for _, s := range g.Segments {
				lo = math.Min(lo, s.Magnitude)
				hi = math.Max(hi, s.Magnitude)
			}
		}
	} else {
		for _, g := range st.Groups {
			lo = math.Min(lo, g.NegExtent)
			hi = math.Max(hi, g.PosExtent)
		}
	}
	return []float64{lo, hi, st.Base}
}
