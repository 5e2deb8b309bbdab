package bars

import (
	"slices"
	"testing"

	"github.com/sandutsar/bqplot/pkg/scale"
)

func newTestScales() (*scale.Registry, Scales) {
	reg := scale.NewRegistry()
	return reg, Scales{
		X:     reg.NewOrdinal("x"),
		Y:     reg.NewLinear("y"),
		Color: reg.NewLinear("color"),
	}
}

func linearDomain(t *testing.T, s scale.Scale) (float64, float64, bool) {
	t.Helper()
	l, ok := s.(*scale.Linear)
	if !ok {
		t.Fatalf("scale %s is not linear", s.Name())
	}
	return l.Domain()
}

func TestMarkInitialDomains(t *testing.T) {
	_, sc := newTestScales()
	m := New(sc, WithID("m1"), WithData([]float64{1, 2, 3}, [][]float64{{5, -3, 2}, {1, 4, -1}}, 0))

	if got, want := sc.X.(*scale.Ordinal).Domain(), []float64{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("x domain = %v, want %v", got, want)
	}
	if lo, hi, _ := linearDomain(t, sc.Y); lo != -3 || hi != 6 {
		t.Errorf("y domain = [%v, %v], want [-3, 6]", lo, hi)
	}
	if !m.MultiSeries() {
		t.Error("MultiSeries() = false, want true")
	}
	if got := m.Scoping(); got.Color != ScopeElement || got.Opacity != ScopeElement {
		t.Errorf("Scoping() = %+v, want element/element", got)
	}
}

func TestMarkDefaultID(t *testing.T) {
	_, sc := newTestScales()
	a, b := New(sc), New(sc)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("IDs = %q, %q, want unique non-empty", a.ID(), b.ID())
	}
}

func TestMarkTypeSwitchesYDomain(t *testing.T) {
	_, sc := newTestScales()
	m := New(sc, WithData([]float64{1, 2}, [][]float64{{5, 1}, {4, 2}}, 0))

	if _, hi, _ := linearDomain(t, sc.Y); hi != 9 {
		t.Errorf("stacked max = %v, want 9", hi)
	}
	updates := 0
	m.DataUpdated.Subscribe(func(*Mark) { updates++ })

	m.SetType(Grouped)
	if _, hi, _ := linearDomain(t, sc.Y); hi != 5 {
		t.Errorf("grouped max = %v, want 5", hi)
	}
	m.SetType(Grouped)
	if updates != 1 {
		t.Errorf("DataUpdated fired %d times, want 1", updates)
	}
}

func TestMarkPreserveDomainSharedScale(t *testing.T) {
	_, sc := newTestScales()
	a := New(sc, WithID("a"), WithData([]float64{1, 2}, [][]float64{{10, 20}}, 0))
	New(sc, WithID("b"), WithData([]float64{3}, [][]float64{{-5}}, 0))

	if lo, hi, _ := linearDomain(t, sc.Y); lo != -5 || hi != 20 {
		t.Fatalf("merged y domain = [%v, %v], want [-5, 20]", lo, hi)
	}

	a.SetPreserve(Preserve{Y: true})

	if lo, hi, _ := linearDomain(t, sc.Y); lo != -5 || hi != 0 {
		t.Errorf("y domain after preserve = [%v, %v], want [-5, 0]", lo, hi)
	}
	if got, want := sc.Y.Owners(), []string{"b_y"}; !slices.Equal(got, want) {
		t.Errorf("y owners = %v, want %v", got, want)
	}
	if got, want := sc.X.(*scale.Ordinal).Domain(), []float64{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("x domain = %v, want %v (x not preserved)", got, want)
	}

	a.SetPreserve(Preserve{})
	if _, hi, _ := linearDomain(t, sc.Y); hi != 20 {
		t.Errorf("y max after un-preserve = %v, want 20", hi)
	}
}

func TestMarkEmptyDataClearsDomains(t *testing.T) {
	_, sc := newTestScales()
	m := New(sc, WithID("m"), WithData([]float64{1}, [][]float64{{4}}, 0))

	m.SetY(nil)

	if got := sc.X.Owners(); len(got) != 0 {
		t.Errorf("x owners = %v, want none", got)
	}
	if _, _, ok := linearDomain(t, sc.Y); ok {
		t.Error("y domain should be cleared")
	}
	if m.MultiSeries() {
		t.Error("MultiSeries() = true after clearing data")
	}

	// Recomputing with no data stays a no-op.
	m.RecomputeData()
	m.RecomputeColors()
	m.RecomputeDomains()
}

func TestMarkColorDomain(t *testing.T) {
	_, sc := newTestScales()
	m := New(sc, WithID("m"),
		WithData([]float64{1, 2}, [][]float64{{1, 2}}, 0),
		WithColorData([]float64{-1, 3}))

	if lo, hi, _ := linearDomain(t, sc.Color); lo != -1 || hi != 3 {
		t.Errorf("color domain = [%v, %v], want [-1, 3]", lo, hi)
	}
	if s := m.Groups()[1].Segments[0]; !s.HasColor || s.Color != 3 {
		t.Errorf("segment color = %v, %v, want 3, true", s.Color, s.HasColor)
	}

	m.SetPreserve(Preserve{Color: true})
	if _, _, ok := linearDomain(t, sc.Color); ok {
		t.Error("color domain should be withdrawn when preserved")
	}
}

func TestMarkColorsUpdated(t *testing.T) {
	_, sc := newTestScales()
	m := New(sc, WithData([]float64{1, 2}, [][]float64{{1, 2}, {3, 4}}, 0))

	colors, data := 0, 0
	m.ColorsUpdated.Subscribe(func(*Mark) { colors++ })
	m.DataUpdated.Subscribe(func(*Mark) { data++ })

	m.SetColorModes(ColorModeGroup, ColorModeSequential)
	if colors != 1 || data != 0 {
		t.Errorf("colors=%d data=%d, want 1 and 0", colors, data)
	}
	if s := m.Groups()[1].Segments[1]; s.ColorIndex != 1 || s.OpacityIndex != 3 {
		t.Errorf("indices = (%d, %d), want (1, 3)", s.ColorIndex, s.OpacityIndex)
	}

	m.SetBase(1)
	if data != 1 {
		t.Errorf("DataUpdated fired %d times, want 1", data)
	}
	if s := m.Groups()[1].Segments[1]; s.ColorIndex != 1 {
		t.Errorf("ColorIndex after SetBase = %d, want 1", s.ColorIndex)
	}
}

func TestMarkSetScalesWithdrawsOld(t *testing.T) {
	reg, sc := newTestScales()
	m := New(sc, WithID("m"), WithData([]float64{1}, [][]float64{{4}}, 0))

	var prevH, prevV scale.Scale
	m.ScalesUpdated.Subscribe(func(prev [2]scale.Scale) { prevH, prevV = prev[0], prev[1] })

	y2 := reg.NewLinear("y2")
	m.SetScales(Scales{X: sc.X, Y: y2})

	if got := sc.Y.Owners(); len(got) != 0 {
		t.Errorf("old y owners = %v, want none", got)
	}
	if got := y2.Owners(); !slices.Equal(got, []string{"m_y"}) {
		t.Errorf("new y owners = %v, want [m_y]", got)
	}
	if prevH != sc.X || prevV != sc.Y {
		t.Errorf("ScalesUpdated carried (%v, %v), want previous roles", prevH, prevV)
	}
}

func TestMarkOrientationRoles(t *testing.T) {
	_, sc := newTestScales()
	m := New(sc)

	if h, v := m.RoleScales(); h != sc.X || v != sc.Y {
		t.Errorf("vertical roles = (%v, %v)", h, v)
	}
	fired := 0
	m.OnScalesUpdated(func() { fired++ })
	m.SetOrientation(Horizontal)
	if h, v := m.RoleScales(); h != sc.Y || v != sc.X {
		t.Errorf("horizontal roles = (%v, %v)", h, v)
	}
	if fired != 1 {
		t.Errorf("ScalesUpdated fired %d times, want 1", fired)
	}
}

func TestMarkPaddingUpdated(t *testing.T) {
	_, sc := newTestScales()
	m := New(sc)

	fired := 0
	cancel := m.OnPaddingUpdated(func() { fired++ })
	m.SetViewPadding(4, 0)
	m.SetViewPadding(4, 0)
	cancel()
	m.SetViewPadding(8, 0)

	if fired != 1 {
		t.Errorf("PaddingUpdated fired %d times, want 1", fired)
	}
	if h, v := m.ViewPadding(); h != 8 || v != 0 {
		t.Errorf("ViewPadding() = (%v, %v), want (8, 0)", h, v)
	}
}

func TestMarkDetach(t *testing.T) {
	_, sc := newTestScales()
	m := New(sc, WithID("m"), WithData([]float64{1}, [][]float64{{4}}, 0), WithColorData([]float64{1}))
	m.Detach()
	for _, s := range []scale.Scale{sc.X, sc.Y, sc.Color} {
		if got := s.Owners(); len(got) != 0 {
			t.Errorf("%s owners = %v, want none", s.Name(), got)
		}
	}
}
