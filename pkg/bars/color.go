package bars

// ColorMode is the user-facing policy for color or opacity indices.
type ColorMode string

const (
	ColorModeAuto       ColorMode = "auto"
	ColorModeGroup      ColorMode = "group"
	ColorModeElement    ColorMode = "element"
	ColorModeSequential ColorMode = "sequential"
)

// Valid reports whether m is a known mode.
func (m ColorMode) Valid() bool {
	switch m {
	case ColorModeAuto, ColorModeGroup, ColorModeElement, ColorModeSequential:
		return true
	}
	return false
}

// Scope is a resolved [ColorMode].
type Scope int

const (
	// ScopeGroup indexes by the group's position.
	ScopeGroup Scope = iota
	// ScopeElement indexes by the segment's position within its group.
	ScopeElement
	// ScopeSequential counts every segment in traversal order.
	ScopeSequential
)

func (s Scope) String() string {
	switch s {
	case ScopeGroup:
		return "group"
	case ScopeElement:
		return "element"
	default:
		return "sequential"
	}
}

// Resolve maps m onto a scope. Auto follows the multi-series flag; unknown
// modes fall back to sequential indexing.
func (m ColorMode) Resolve(multiSeries bool) Scope {
	switch m {
	case ColorModeGroup:
		return ScopeGroup
	case ColorModeElement:
		return ScopeElement
	case ColorModeAuto:
		if multiSeries {
			return ScopeElement
		}
		return ScopeGroup
	}
	return ScopeSequential
}

func (s Scope) index(group, element, seq int) int {
	switch s {
	case ScopeGroup:
		return group
	case ScopeElement:
		return element
	}
	return seq
}

// Scoping is the pair of scopes applied in one recomputation.
type Scoping struct {
	Color   Scope
	Opacity Scope
}

// ResolveScoping resolves both modes against the same multi-series flag.
func ResolveScoping(color, opacity ColorMode, multiSeries bool) Scoping {
	return Scoping{
		Color:   color.Resolve(multiSeries),
		Opacity: opacity.Resolve(multiSeries),
	}
}

// AssignColors tags every segment of st with color and opacity indices and
// resolves its color value from colorData.
func AssignColors(st *Stack, colorData []float64, sc Scoping) {
	seq := 0
	for gi := range st.Groups {
		segs := st.Groups[gi].Segments
		for ei := range segs {
			s := &segs[ei]
			s.ColorIndex = sc.Color.index(gi, ei, seq)
			s.OpacityIndex = sc.Opacity.index(gi, ei, seq)
			s.Color, s.HasColor = 0, false
			if s.ColorIndex < len(colorData) {
				s.Color, s.HasColor = colorData[s.ColorIndex], true
			}
			seq++
		}
	}
}

// Fill picks the palette entry for index i, cycling through the palette.
// An empty palette yields "".
func Fill(palette []string, i int) string {
	if len(palette) == 0 || i < 0 {
		return ""
	}
	return palette[i%len(palette)]
}

// Opacity picks the opacity for index i, cycling like [Fill]. Without
// opacities every segment is opaque.
func Opacity(opacities []float64, i int) float64 {
	if len(opacities) == 0 || i < 0 {
		return 1
	}
	return opacities[i%len(opacities)]
}
