package bars

import (
	"slices"

	"github.com/google/uuid"

	"github.com/sandutsar/bqplot/pkg/event"
	"github.com/sandutsar/bqplot/pkg/scale"
)

// Orientation says which way bars extend.
type Orientation string

const (
	// Vertical bars put keys on the horizontal axis.
	Vertical Orientation = "vertical"
	// Horizontal bars put keys on the vertical axis.
	Horizontal Orientation = "horizontal"
)

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool { return o == Vertical || o == Horizontal }

// Scales are the scales a mark writes to. Color may be nil.
type Scales struct {
	X     scale.Scale
	Y     scale.Scale
	Color scale.Scale
}

// roles returns the scales in (horizontal, vertical) order for o.
func (s Scales) roles(o Orientation) (horizontal, vertical scale.Scale) {
	if o == Horizontal {
		return s.Y, s.X
	}
	return s.X, s.Y
}

// DefaultColors is the palette used when none is configured.
var DefaultColors = []string{"steelblue"}

// Mark is a bars element: it owns the raw series and keeps the stacked
// geometry, color tags and scale domains in step with them.
//
// A Mark is not safe for concurrent use.
type Mark struct {
	id string

	x         []float64
	y         [][]float64
	base      float64
	colorData []float64
	colors    []string
	opacities []float64

	typ         Type
	colorMode   ColorMode
	opacityMode ColorMode
	orientation Orientation
	preserve    Preserve
	scales      Scales

	padX, padY float64

	stack Stack

	// DataUpdated fires after the geometry was rebuilt.
	DataUpdated event.Signal[*Mark]
	// ColorsUpdated fires after color and opacity indices were reassigned.
	ColorsUpdated event.Signal[*Mark]
	// PaddingUpdated fires when the mark's pixel padding demand changes.
	PaddingUpdated event.Signal[*Mark]
	// ScalesUpdated fires after the scales or orientation changed. It
	// carries the previous (horizontal, vertical) scales.
	ScalesUpdated event.Signal[[2]scale.Scale]
}

// Option configures a Mark at construction.
type Option func(*Mark)

// WithID sets the owner identity. By default a random one is generated.
func WithID(id string) Option { return func(m *Mark) { m.id = id } }

// WithData sets keys, series and baseline.
func WithData(x []float64, y [][]float64, base float64) Option {
	return func(m *Mark) { m.x, m.y, m.base = x, y, base }
}

// WithType sets the layout type.
func WithType(t Type) Option { return func(m *Mark) { m.typ = t } }

// WithColorMode sets the color index policy.
func WithColorMode(c ColorMode) Option { return func(m *Mark) { m.colorMode = c } }

// WithOpacityMode sets the opacity index policy.
func WithOpacityMode(c ColorMode) Option { return func(m *Mark) { m.opacityMode = c } }

// WithColorData sets the numeric values mapped through the color scale.
func WithColorData(v []float64) Option { return func(m *Mark) { m.colorData = v } }

// WithColors sets the fallback palette.
func WithColors(p []string) Option { return func(m *Mark) { m.colors = p } }

// WithOpacities sets the opacity palette.
func WithOpacities(o []float64) Option { return func(m *Mark) { m.opacities = o } }

// WithOrientation sets the bar orientation.
func WithOrientation(o Orientation) Option { return func(m *Mark) { m.orientation = o } }

// WithPreserve sets the per-axis domain preservation flags.
func WithPreserve(p Preserve) Option { return func(m *Mark) { m.preserve = p } }

// WithViewPadding sets the pixel padding the mark demands on its
// horizontal and vertical scales.
func WithViewPadding(horizontal, vertical float64) Option {
	return func(m *Mark) { m.padX, m.padY = horizontal, vertical }
}

// New creates a mark bound to scales and computes its geometry, colors and
// domains once.
func New(scales Scales, opts ...Option) *Mark {
	m := &Mark{
		colors:      DefaultColors,
		typ:         Stacked,
		colorMode:   ColorModeAuto,
		opacityMode: ColorModeAuto,
		orientation: Vertical,
		scales:      scales,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.id == "" {
		m.id = "bars-" + uuid.NewString()
	}
	m.RecomputeData()
	return m
}

// =============================================================================
// Accessors
// =============================================================================

func (m *Mark) ID() string               { return m.id }
func (m *Mark) Type() Type               { return m.typ }
func (m *Mark) Base() float64            { return m.stack.Base }
func (m *Mark) MultiSeries() bool        { return m.stack.MultiSeries }
func (m *Mark) Groups() []Group          { return m.stack.Groups }
func (m *Mark) Stack() Stack             { return m.stack }
func (m *Mark) Scales() Scales           { return m.scales }
func (m *Mark) Preserve() Preserve       { return m.preserve }
func (m *Mark) Orientation() Orientation { return m.orientation }
func (m *Mark) Colors() []string         { return m.colors }
func (m *Mark) Opacities() []float64     { return m.opacities }
func (m *Mark) ColorData() []float64     { return m.colorData }

// ColorModes returns the configured color and opacity policies.
func (m *Mark) ColorModes() (color, opacity ColorMode) { return m.colorMode, m.opacityMode }

// Scoping returns the color and opacity scopes currently in effect.
func (m *Mark) Scoping() Scoping {
	return ResolveScoping(m.colorMode, m.opacityMode, m.stack.MultiSeries)
}

// RoleScales returns the scales on the horizontal and vertical axes.
func (m *Mark) RoleScales() (horizontal, vertical scale.Scale) {
	return m.scales.roles(m.orientation)
}

// ViewPadding returns the pixel padding demanded per role.
func (m *Mark) ViewPadding() (horizontal, vertical float64) { return m.padX, m.padY }

// OnPaddingUpdated subscribes fn to padding demand changes.
func (m *Mark) OnPaddingUpdated(fn func()) (cancel func()) {
	return m.PaddingUpdated.Subscribe(func(*Mark) { fn() })
}

// OnScalesUpdated subscribes fn to scale or orientation changes.
func (m *Mark) OnScalesUpdated(fn func()) (cancel func()) {
	return m.ScalesUpdated.Subscribe(func([2]scale.Scale) { fn() })
}

// =============================================================================
// Mutations
// =============================================================================

// SetData replaces keys, series and baseline and rebuilds the geometry.
func (m *Mark) SetData(x []float64, y [][]float64, base float64) {
	m.x, m.y, m.base = x, y, base
	m.RecomputeData()
}

// SetX replaces the keys.
func (m *Mark) SetX(x []float64) {
	m.x = x
	m.RecomputeData()
}

// SetY replaces the series.
func (m *Mark) SetY(y [][]float64) {
	m.y = y
	m.RecomputeData()
}

// SetBase replaces the baseline.
func (m *Mark) SetBase(base float64) {
	m.base = base
	m.RecomputeData()
}

// SetType switches between stacked and grouped layout. Only the value
// domain depends on it; geometry consumers are notified through
// DataUpdated.
func (m *Mark) SetType(t Type) {
	if t == m.typ {
		return
	}
	m.typ = t
	m.RecomputeDomains()
	m.DataUpdated.Emit(m)
}

// SetColorData replaces the color values.
func (m *Mark) SetColorData(v []float64) {
	m.colorData = v
	m.RecomputeColors()
}

// SetColors replaces the fallback palette.
func (m *Mark) SetColors(p []string) {
	m.colors = p
	m.RecomputeColors()
}

// SetOpacities replaces the opacity palette.
func (m *Mark) SetOpacities(o []float64) {
	m.opacities = o
	m.RecomputeColors()
}

// SetColorModes replaces the color and opacity policies.
func (m *Mark) SetColorModes(color, opacity ColorMode) {
	m.colorMode, m.opacityMode = color, opacity
	m.RecomputeColors()
}

// SetPreserve updates the domain preservation flags and reissues the
// affected domain requests.
func (m *Mark) SetPreserve(p Preserve) {
	m.preserve = p
	m.RecomputeDomains()
	m.requestColorDomain()
}

// SetScales rebinds the mark. Contributions to scales the mark no longer
// uses are withdrawn before the new requests are issued.
func (m *Mark) SetScales(s Scales) {
	prevH, prevV := m.RoleScales()
	old := m.scales
	m.scales = s
	if old.X != nil && old.X != s.X {
		old.X.DelDomain(OwnerKey(m.id, axisX))
	}
	if old.Y != nil && old.Y != s.Y {
		old.Y.DelDomain(OwnerKey(m.id, axisY))
	}
	if old.Color != nil && old.Color != s.Color {
		old.Color.DelDomain(OwnerKey(m.id, axisColor))
	}
	m.RecomputeDomains()
	m.requestColorDomain()
	m.ScalesUpdated.Emit([2]scale.Scale{prevH, prevV})
}

// SetOrientation swaps the role of the x and y scales.
func (m *Mark) SetOrientation(o Orientation) {
	if o == m.orientation {
		return
	}
	prevH, prevV := m.RoleScales()
	m.orientation = o
	m.ScalesUpdated.Emit([2]scale.Scale{prevH, prevV})
}

// SetViewPadding changes the padding demand.
func (m *Mark) SetViewPadding(horizontal, vertical float64) {
	if horizontal == m.padX && vertical == m.padY {
		return
	}
	m.padX, m.padY = horizontal, vertical
	m.PaddingUpdated.Emit(m)
}

// =============================================================================
// Recomputation
// =============================================================================

// RecomputeData rebuilds the geometry from the current input, retags it and
// reissues domain requests. It fires DataUpdated.
func (m *Mark) RecomputeData() {
	m.stack = StackSeries(m.x, m.y, m.base)
	m.assignColors()
	m.RecomputeDomains()
	m.DataUpdated.Emit(m)
}

// RecomputeColors retags the current geometry and fires ColorsUpdated.
func (m *Mark) RecomputeColors() {
	m.assignColors()
	m.ColorsUpdated.Emit(m)
}

func (m *Mark) assignColors() {
	AssignColors(&m.stack, m.colorData, m.Scoping())
	m.requestColorDomain()
}

func (m *Mark) requestColorDomain() {
	s := m.scales.Color
	if s == nil || len(m.colorData) == 0 {
		return
	}
	owner := OwnerKey(m.id, axisColor)
	if m.preserve.Color {
		s.DelDomain(owner)
		return
	}
	s.ComputeAndSetDomain(slices.Clone(m.colorData), owner)
}

// RecomputeDomains issues the x and y domain requests for the current
// geometry. Preserved axes and empty geometry withdraw the mark's
// contribution instead.
func (m *Mark) RecomputeDomains() {
	if s := m.scales.X; s != nil {
		owner := OwnerKey(m.id, axisX)
		if m.preserve.X || m.stack.Empty() {
			s.DelDomain(owner)
		} else {
			s.ComputeAndSetDomain(XDomain(m.stack), owner)
		}
	}
	if s := m.scales.Y; s != nil {
		owner := OwnerKey(m.id, axisY)
		if m.preserve.Y || m.stack.Empty() {
			s.DelDomain(owner)
		} else {
			s.ComputeAndSetDomain(YDomain(m.stack, m.typ), owner)
		}
	}
}

// Detach withdraws every domain contribution of the mark.
func (m *Mark) Detach() {
	for axis, s := range map[string]scale.Scale{axisX: m.scales.X, axisY: m.scales.Y, axisColor: m.scales.Color} {
		if s != nil {
			s.DelDomain(OwnerKey(m.id, axis))
		}
	}
}
