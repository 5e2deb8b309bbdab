package figure

import (
	"testing"

	"github.com/sandutsar/bqplot/pkg/event"
	"github.com/sandutsar/bqplot/pkg/padding"
	"github.com/sandutsar/bqplot/pkg/scale"
)

type stubMark struct {
	id         string
	h, v       scale.Scale
	padH, padV float64

	paddingChanged event.Signal[struct{}]
	scalesChanged  event.Signal[struct{}]
}

func (m *stubMark) ID() string                                    { return m.id }
func (m *stubMark) RoleScales() (horizontal, vertical scale.Scale) { return m.h, m.v }
func (m *stubMark) ViewPadding() (horizontal, vertical float64)    { return m.padH, m.padV }

func (m *stubMark) OnPaddingUpdated(fn func()) func() {
	return m.paddingChanged.Subscribe(func(struct{}) { fn() })
}

func (m *stubMark) OnScalesUpdated(fn func()) func() {
	return m.scalesChanged.Subscribe(func(struct{}) { fn() })
}

func (m *stubMark) setPadding(h, v float64) {
	m.padH, m.padV = h, v
	m.paddingChanged.Emit(struct{}{})
}

func (m *stubMark) setScales(h, v scale.Scale) {
	m.h, m.v = h, v
	m.scalesChanged.Emit(struct{}{})
}

// newTestFigure returns an 800x500 figure with default attributes, laid
// out through q.
func newTestFigure(q *Queue, opts ...Option) (*Figure, *Fixed) {
	c := &Fixed{Width: 800, Height: 500}
	return New(c, DefaultConfig(), append([]Option{WithScheduler(q)}, opts...)...), c
}

func countLayouts(f *Figure) *int {
	n := new(int)
	f.LayoutUpdated.Subscribe(func(*Figure) { *n++ })
	return n
}

func TestRelayoutCoalesces(t *testing.T) {
	q := &Queue{}
	f, _ := newTestFigure(q)
	n := countLayouts(f)

	for range 5 {
		f.RequestRelayout()
	}
	f.NotifyResize()
	f.SetVisible(true)

	if q.Len() != 1 {
		t.Fatalf("queued = %d, want 1", q.Len())
	}
	q.Flush()
	if *n != 1 {
		t.Errorf("relayouts = %d, want 1", *n)
	}
	if !f.LaidOut() || f.Pending() {
		t.Errorf("LaidOut() = %v, Pending() = %v", f.LaidOut(), f.Pending())
	}
}

func TestRelayoutSkipsUnchanged(t *testing.T) {
	q := &Queue{}
	f, c := newTestFigure(q)
	f.RequestRelayout()
	q.Flush()

	n := countLayouts(f)
	f.RequestRelayout()
	q.Flush()
	if *n != 0 {
		t.Errorf("relayouts after unchanged request = %d, want 0", *n)
	}

	c.Width = 900
	f.NotifyResize()
	q.Flush()
	if *n != 1 {
		t.Errorf("relayouts after resize = %d, want 1", *n)
	}
	if got := f.Layout().PlotWidth; got != 780 {
		t.Errorf("PlotWidth = %v, want 780", got)
	}
}

func TestRelayoutForced(t *testing.T) {
	q := &Queue{}
	f, _ := newTestFigure(q)
	f.RequestRelayout()
	q.Flush()

	n := countLayouts(f)
	f.SetMargin(f.Config().Margin)
	q.Flush()
	if *n != 1 {
		t.Errorf("relayouts after SetMargin = %d, want 1", *n)
	}

	f.RequestRelayout()
	q.Flush()
	if *n != 1 {
		t.Errorf("forced flag not cleared: relayouts = %d, want 1", *n)
	}

	f.SetAspectRatio(1, 1)
	q.Flush()
	if got := f.Layout().Size; got != (Size{500, 500}) {
		t.Errorf("Size = %v, want 500x500", got)
	}
}

func TestRelayoutInvisible(t *testing.T) {
	q := &Queue{}
	f, _ := newTestFigure(q)
	n := countLayouts(f)

	f.SetVisible(false)
	f.RequestRelayout()
	q.Flush()
	if *n != 0 || f.LaidOut() {
		t.Fatalf("invisible figure was laid out")
	}
	if q.Len() != 0 {
		t.Errorf("queued = %d, want 0", q.Len())
	}

	f.SetVisible(true)
	q.Flush()
	if *n != 1 {
		t.Errorf("relayouts after becoming visible = %d, want 1", *n)
	}
}

func TestFlushPrivateQueue(t *testing.T) {
	f := New(&Fixed{Width: 400, Height: 300}, DefaultConfig())
	f.RequestRelayout()
	if !f.Flush() {
		t.Fatal("Flush() = false, want true")
	}
	if got := f.Layout().PlotWidth; got != 280 {
		t.Errorf("PlotWidth = %v, want 280", got)
	}
	if f.Flush() {
		t.Error("second Flush() = true, want false")
	}
}

func TestPaddedRange(t *testing.T) {
	reg := scale.NewRegistry()
	x := reg.NewLinear("x")
	y := reg.NewLinear("y")
	fixed := reg.NewLinear("fixed", scale.WithAllowPadding(false))

	q := &Queue{}
	f, _ := newTestFigure(q)
	f.AddMark(&stubMark{id: "a", h: x, v: y, padH: 10, padV: 4})
	f.RequestRelayout()
	q.Flush()

	if got := f.PaddedRange(padding.Horizontal, x); got != [2]float64{10, 670} {
		t.Errorf("PaddedRange(horizontal, x) = %v, want [10 670]", got)
	}
	got := f.PaddedRange(padding.Vertical, y)
	if !near(got[0], 366.5) || !near(got[1], 13.5) {
		t.Errorf("PaddedRange(vertical, y) = %v, want [366.5 13.5]", got)
	}
	if got := f.PaddedRange(padding.Horizontal, fixed); got != [2]float64{0, 680} {
		t.Errorf("PaddedRange(horizontal, fixed) = %v, want [0 680]", got)
	}
	if got := f.MarkPlotWidth(x); got != 660 {
		t.Errorf("MarkPlotWidth(x) = %v, want 660", got)
	}
	if got := f.MarkPlotHeight(y); !near(got, 362.5) {
		t.Errorf("MarkPlotHeight(y) = %v, want 362.5", got)
	}
	if got := f.MarkPlotWidth(fixed); got != 680 {
		t.Errorf("MarkPlotWidth(fixed) = %v, want 680", got)
	}

	if got := x.Range(); got != [2]float64{10, 670} {
		t.Errorf("x.Range() = %v, want [10 670]", got)
	}
}

func TestFigurePaddingErodesRange(t *testing.T) {
	reg := scale.NewRegistry()
	x := reg.NewLinear("x")
	q := &Queue{}
	f, _ := newTestFigure(q)
	f.AddMark(&stubMark{id: "a", h: x, padH: 20})
	f.RequestRelayout()
	q.Flush()

	margins := 0
	f.MarginUpdated.Subscribe(func(*Figure) { margins++ })
	f.SetPadding(0.1, 0)

	if got := x.Range(); !near(got[0], 88) || !near(got[1], 592) {
		t.Errorf("x.Range() = %v, want [88 592]", got)
	}
	if margins != 1 {
		t.Errorf("MarginUpdated fired %d times, want 1", margins)
	}
	if q.Len() != 0 {
		t.Errorf("SetPadding scheduled a relayout")
	}
	if got := f.MarkPlotWidth(x); !near(got, 572) {
		t.Errorf("MarkPlotWidth(x) = %v, want 572", got)
	}
}

func TestRelayoutFiresMarginUpdated(t *testing.T) {
	q := &Queue{}
	f, c := newTestFigure(q)
	margins := 0
	f.MarginUpdated.Subscribe(func(*Figure) { margins++ })

	f.RequestRelayout()
	q.Flush()
	if margins != 1 {
		t.Fatalf("MarginUpdated fired %d times after first layout, want 1", margins)
	}

	c.Width, c.Height = 600, 400
	f.NotifyResize()
	q.Flush()
	c.Width = 500
	f.NotifyResize()
	q.Flush()
	if margins != 3 {
		t.Errorf("MarginUpdated fired %d times after two resizes, want 3", margins)
	}

	f.NotifyResize()
	q.Flush()
	if margins != 3 {
		t.Errorf("skipped relayout fired MarginUpdated: %d", margins)
	}
}

func TestPaddingChangeReappliesRanges(t *testing.T) {
	reg := scale.NewRegistry()
	x := reg.NewLinear("x")
	q := &Queue{}
	f, _ := newTestFigure(q)
	a := &stubMark{id: "a", h: x, padH: 5}
	b := &stubMark{id: "b", h: x, padH: 8}
	f.AddMark(a)
	f.AddMark(b)
	f.RequestRelayout()
	q.Flush()

	if got := x.Range(); got != [2]float64{8, 672} {
		t.Errorf("x.Range() = %v, want [8 672]", got)
	}

	b.setPadding(3, 0)
	if got := x.Range(); got != [2]float64{5, 675} {
		t.Errorf("after demand change x.Range() = %v, want [5 675]", got)
	}

	f.RemoveMark(a)
	if got := x.Range(); got != [2]float64{3, 677} {
		t.Errorf("after removal x.Range() = %v, want [3 677]", got)
	}
}

func TestMarkScaleMigration(t *testing.T) {
	reg := scale.NewRegistry()
	x1 := reg.NewLinear("x1")
	x2 := reg.NewLinear("x2")
	y := reg.NewLinear("y")

	q := &Queue{}
	f, _ := newTestFigure(q)
	m := &stubMark{id: "a", h: x1, v: y, padH: 6, padV: 2}
	f.AddMark(m)

	n := f.Negotiator()
	if got := n.Padding(padding.Horizontal, x1.ID()); got != 6 {
		t.Fatalf("Padding(x1) = %v, want 6", got)
	}

	m.setScales(x2, y)
	if _, ok := n.Lookup(padding.Horizontal, x1.ID()); ok {
		t.Error("stale demand left on x1")
	}
	if got := n.Padding(padding.Horizontal, x2.ID()); got != 6 {
		t.Errorf("Padding(x2) = %v, want 6", got)
	}
	if got := n.Padding(padding.Vertical, y.ID()); got != 2 {
		t.Errorf("Padding(y) = %v, want 2", got)
	}
}

func TestDefaultScales(t *testing.T) {
	reg := scale.NewRegistry()
	fx := reg.NewLinear("fig-x")
	fy := reg.NewLinear("fig-y")
	own := reg.NewLinear("own")

	q := &Queue{}
	f, _ := newTestFigure(q, WithScales(fx, fy))
	f.AddMark(&stubMark{id: "a", h: own, padH: 4, padV: 7})
	f.RequestRelayout()
	q.Flush()

	if got := f.Negotiator().Padding(padding.Vertical, fy.ID()); got != 7 {
		t.Errorf("Padding(fig-y) = %v, want 7", got)
	}
	if got := fx.Range(); got != [2]float64{0, 680} {
		t.Errorf("fig-x Range() = %v, want [0 680]", got)
	}
	got := fy.Range()
	if !near(got[0], 363.5) || !near(got[1], 16.5) {
		t.Errorf("fig-y Range() = %v, want [363.5 16.5]", got)
	}
}

func TestHiddenLeavesRanges(t *testing.T) {
	reg := scale.NewRegistry()
	x := reg.NewLinear("x", scale.WithRange([2]float64{1, 2}))
	q := &Queue{}
	f := New(&Fixed{Width: 100, Height: 100}, DefaultConfig(), WithScheduler(q))
	f.AddMark(&stubMark{id: "a", h: x})
	f.RequestRelayout()
	q.Flush()

	if !f.Layout().Hidden {
		t.Fatal("Hidden = false, want true")
	}
	if got := x.Range(); got != [2]float64{1, 2} {
		t.Errorf("x.Range() = %v, want untouched [1 2]", got)
	}
}

func TestMultipleViews(t *testing.T) {
	reg := scale.NewRegistry()
	x := reg.NewLinear("x")
	q := &Queue{}
	f, _ := newTestFigure(q)
	m := &stubMark{id: "a", h: x, padH: 9}

	el1 := f.AddMark(m)
	el2 := f.AddMark(m)
	if el1 == el2 {
		t.Fatal("views share an element ID")
	}
	if got := len(f.Negotiator().Demands(padding.Horizontal, x.ID())); got != 2 {
		t.Errorf("demands = %d, want 2", got)
	}

	if !f.RemoveElement(el1) {
		t.Fatal("RemoveElement() = false")
	}
	if got := len(f.Marks()); got != 1 {
		t.Errorf("Marks() = %d, want 1", got)
	}
	if !f.RemoveMark(m) || f.RemoveMark(m) {
		t.Error("RemoveMark() should succeed once")
	}
	if _, ok := f.Negotiator().Lookup(padding.Horizontal, x.ID()); ok {
		t.Error("demand left after removing every view")
	}
}

func TestClose(t *testing.T) {
	reg := scale.NewRegistry()
	x := reg.NewLinear("x")
	f, _ := newTestFigure(&Queue{})
	m := &stubMark{id: "a", h: x, padH: 9}
	f.AddMark(m)
	f.Close()

	if m.paddingChanged.Len() != 0 || m.scalesChanged.Len() != 0 {
		t.Error("subscriptions left after Close")
	}
	if len(f.Negotiator().Scales(padding.Horizontal)) != 0 {
		t.Error("demands left after Close")
	}
}
