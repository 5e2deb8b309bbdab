package figure

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sandutsar/bqplot/pkg/event"
	"github.com/sandutsar/bqplot/pkg/observability"
	"github.com/sandutsar/bqplot/pkg/padding"
	"github.com/sandutsar/bqplot/pkg/scale"
)

// Container reports the space available to a figure.
type Container interface {
	Size() Size
}

// ContainerFunc adapts a function to [Container].
type ContainerFunc func() Size

func (f ContainerFunc) Size() Size { return f() }

// Fixed is a container whose size only changes when assigned.
type Fixed struct{ Width, Height float64 }

func (c *Fixed) Size() Size { return Size{Width: c.Width, Height: c.Height} }

// Mark is the view of a mark the figure lays out.
type Mark interface {
	ID() string
	RoleScales() (horizontal, vertical scale.Scale)
	ViewPadding() (horizontal, vertical float64)
	OnPaddingUpdated(fn func()) (cancel func())
	OnScalesUpdated(fn func()) (cancel func())
}

// Skip reasons reported to observability hooks.
const (
	SkipInvisible = "invisible"
	SkipUnchanged = "unchanged"
)

type entry struct {
	mark    Mark
	el      padding.ElementID
	h, v    scale.Scale
	cancels []func()
}

// Figure owns the layout of a set of marks. It is not safe for concurrent
// use; drive it from the goroutine that flushes its scheduler.
type Figure struct {
	cfg        Config
	container  Container
	scheduler  Scheduler
	negotiator *padding.Negotiator
	logger     *log.Logger

	scaleX, scaleY scale.Scale

	layout  Layout
	laidOut bool
	pending bool
	force   bool
	visible bool

	marks        []*entry
	cancelPadded func()

	// MarginUpdated fires whenever the ranges marks draw into may have
	// changed: after a recomputation, and on negotiated or figure padding
	// changes that need no relayout.
	MarginUpdated event.Signal[*Figure]

	// LayoutUpdated fires after every recomputation that was not skipped.
	LayoutUpdated event.Signal[*Figure]
}

// Option configures a [Figure].
type Option func(*Figure)

// WithScheduler sets where relayout is deferred to. The default is a
// private [Queue], only useful when flushed through [Figure.Flush].
func WithScheduler(s Scheduler) Option { return func(f *Figure) { f.scheduler = s } }

// WithLogger sets the logger used for relayout decisions.
func WithLogger(l *log.Logger) Option { return func(f *Figure) { f.logger = l } }

// WithScales sets the figure-level scales. Marks with no scale on a role
// use them, and they receive the unpadded range on relayout.
func WithScales(x, y scale.Scale) Option {
	return func(f *Figure) { f.scaleX, f.scaleY = x, y }
}

// WithNegotiator shares a padding negotiator between figures.
func WithNegotiator(n *padding.Negotiator) Option { return func(f *Figure) { f.negotiator = n } }

// New returns a visible figure that has not been laid out yet.
func New(container Container, cfg Config, opts ...Option) *Figure {
	f := &Figure{
		cfg:       cfg,
		container: container,
		visible:   true,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.scheduler == nil {
		f.scheduler = &Queue{}
	}
	if f.negotiator == nil {
		f.negotiator = padding.New()
	}
	if f.logger == nil {
		f.logger = log.New(io.Discard)
	}
	f.cancelPadded = f.negotiator.Updated.Subscribe(func(*padding.Negotiator) { f.paddingUpdated() })
	return f
}

// =============================================================================
// Accessors
// =============================================================================

func (f *Figure) Config() Config                  { return f.cfg }
func (f *Figure) Layout() Layout                  { return f.layout }
func (f *Figure) LaidOut() bool                   { return f.laidOut }
func (f *Figure) Visible() bool                   { return f.visible }
func (f *Figure) Pending() bool                   { return f.pending }
func (f *Figure) Negotiator() *padding.Negotiator { return f.negotiator }

// Scales returns the figure-level scales.
func (f *Figure) Scales() (x, y scale.Scale) { return f.scaleX, f.scaleY }

// Marks returns the laid out mark views in insertion order.
func (f *Figure) Marks() []Mark {
	out := make([]Mark, len(f.marks))
	for i, e := range f.marks {
		out[i] = e.mark
	}
	return out
}

// =============================================================================
// Relayout
// =============================================================================

// RequestRelayout schedules a recomputation unless one is already pending.
func (f *Figure) RequestRelayout() {
	if f.pending {
		return
	}
	f.pending = true
	f.scheduler.Schedule(f.relayout)
}

// Flush runs a pending relayout now when the figure uses its private
// queue. It reports whether a task ran.
func (f *Figure) Flush() bool {
	q, ok := f.scheduler.(*Queue)
	return ok && q.Flush() > 0
}

// NotifyResize signals that the container size may have changed.
func (f *Figure) NotifyResize() { f.RequestRelayout() }

// SetVisible records whether the figure is on screen. Becoming visible
// requests a relayout.
func (f *Figure) SetVisible(visible bool) {
	f.visible = visible
	if visible {
		f.RequestRelayout()
	}
}

// SetMargin replaces the margin and forces the next relayout.
func (f *Figure) SetMargin(m Margin) {
	f.cfg.Margin = m
	f.forceRelayout()
}

// SetAspectRatio replaces the aspect-ratio bounds and forces the next
// relayout.
func (f *Figure) SetAspectRatio(minRatio, maxRatio float64) {
	f.cfg.MinAspectRatio, f.cfg.MaxAspectRatio = minRatio, maxRatio
	f.forceRelayout()
}

// SetPadding replaces the fractional figure padding. The plot area does
// not move, so ranges are reapplied without a relayout.
func (f *Figure) SetPadding(x, y float64) {
	f.cfg.PaddingX, f.cfg.PaddingY = x, y
	f.applyRanges()
	f.MarginUpdated.Emit(f)
}

func (f *Figure) forceRelayout() {
	f.force = true
	f.RequestRelayout()
}

func (f *Figure) relayout() {
	f.pending = false
	if !f.visible {
		f.skip(SkipInvisible)
		return
	}

	start := time.Now()
	next := ComputeLayout(f.container.Size(), f.cfg)
	if f.laidOut && !f.force && next.Size == f.layout.Size && next.Margin == f.layout.Margin {
		f.skip(SkipUnchanged)
		return
	}
	f.force = false
	f.layout = next
	f.laidOut = true
	f.applyRanges()

	elapsed := time.Since(start)
	f.logger.Debug("relayout", "size", next.Size, "plot_width", next.PlotWidth,
		"plot_height", next.PlotHeight, "hidden", next.Hidden)
	observability.Figure().OnRelayout(next.PlotWidth, next.PlotHeight, next.Hidden, elapsed)
	f.LayoutUpdated.Emit(f)
	f.MarginUpdated.Emit(f)
}

func (f *Figure) skip(reason string) {
	f.logger.Debug("relayout skipped", "reason", reason)
	observability.Figure().OnRelayoutSkipped(reason)
}

// applyRanges pushes the current ranges into every scale. Hidden or not
// yet laid out figures carry no ranges.
func (f *Figure) applyRanges() {
	if !f.laidOut || f.layout.Hidden {
		return
	}
	if f.scaleX != nil {
		f.scaleX.SetRange(f.UnpaddedRange(padding.Horizontal))
	}
	if f.scaleY != nil {
		f.scaleY.SetRange(f.UnpaddedRange(padding.Vertical))
	}
	for _, e := range f.marks {
		if e.h != nil {
			e.h.SetRange(f.PaddedRange(padding.Horizontal, e.h))
		}
		if e.v != nil {
			e.v.SetRange(f.PaddedRange(padding.Vertical, e.v))
		}
	}
}

func (f *Figure) paddingUpdated() {
	n := len(f.negotiator.Scales(padding.Horizontal)) + len(f.negotiator.Scales(padding.Vertical))
	observability.Figure().OnPaddingNegotiated(n)
	f.applyRanges()
	f.MarginUpdated.Emit(f)
}

// =============================================================================
// Ranges
// =============================================================================

// UnpaddedRange returns the full plot extent in role dir.
func (f *Figure) UnpaddedRange(dir padding.Direction) [2]float64 {
	return f.layout.UnpaddedRange(dir == padding.Vertical)
}

// PaddedRange returns the pixel range marks on s draw into. Figure padding
// and the padding negotiated for s both erode the range from each end.
// Scales that disallow padding get the unpadded range.
func (f *Figure) PaddedRange(dir padding.Direction, s scale.Scale) [2]float64 {
	if s == nil || !s.AllowPadding() {
		return f.UnpaddedRange(dir)
	}
	pad := f.negotiator.Padding(dir, s.ID())
	if dir == padding.Vertical {
		h := f.layout.PlotHeight
		figPad := h * f.cfg.PaddingY
		return [2]float64{h - figPad - pad, figPad + pad}
	}
	w := f.layout.PlotWidth
	figPad := w * f.cfg.PaddingX
	return [2]float64{figPad + pad, w - figPad - pad}
}

// MarkPlotWidth returns the horizontal extent available to marks on s:
// the plot width less its figure padding fraction, less the negotiated
// padding at both ends. Scales that disallow padding get the full width.
func (f *Figure) MarkPlotWidth(s scale.Scale) float64 {
	w := f.layout.PlotWidth
	if s == nil || !s.AllowPadding() {
		return w
	}
	pad := f.negotiator.Padding(padding.Horizontal, s.ID())
	return max(w*(1-f.cfg.PaddingX)-2*pad, 0)
}

// MarkPlotHeight is the vertical counterpart of [Figure.MarkPlotWidth].
func (f *Figure) MarkPlotHeight(s scale.Scale) float64 {
	h := f.layout.PlotHeight
	if s == nil || !s.AllowPadding() {
		return h
	}
	pad := f.negotiator.Padding(padding.Vertical, s.ID())
	return max(h*(1-f.cfg.PaddingY)-2*pad, 0)
}

// =============================================================================
// Marks
// =============================================================================

// AddMark lays out a new view of m and registers its padding demands. The
// same mark may be added more than once; each view gets its own element ID.
func (f *Figure) AddMark(m Mark) padding.ElementID {
	e := &entry{mark: m, el: padding.NewElementID(m.ID())}
	e.h, e.v = f.roleScales(m)
	f.marks = append(f.marks, e)

	e.cancels = append(e.cancels,
		m.OnPaddingUpdated(func() { f.markPaddingUpdated(e) }),
		m.OnScalesUpdated(func() { f.markScalesUpdated(e) }),
	)
	f.markPaddingUpdated(e)
	return e.el
}

// RemoveMark drops every view of m and withdraws their padding demands. It
// reports whether any view was found.
func (f *Figure) RemoveMark(m Mark) bool {
	var kept, removed []*entry
	for _, e := range f.marks {
		if e.mark == m {
			removed = append(removed, e)
		} else {
			kept = append(kept, e)
		}
	}
	f.marks = kept
	for _, e := range removed {
		f.detach(e)
	}
	return len(removed) > 0
}

// RemoveElement drops a single view.
func (f *Figure) RemoveElement(el padding.ElementID) bool {
	for i, e := range f.marks {
		if e.el == el {
			f.marks = append(f.marks[:i], f.marks[i+1:]...)
			f.detach(e)
			return true
		}
	}
	return false
}

// Close drops every mark and stops listening to the negotiator.
func (f *Figure) Close() {
	for _, e := range f.marks {
		for _, cancel := range e.cancels {
			cancel()
		}
		f.negotiator.Remove(e.el)
	}
	f.marks = nil
	if f.cancelPadded != nil {
		f.cancelPadded()
		f.cancelPadded = nil
	}
}

func (f *Figure) detach(e *entry) {
	for _, cancel := range e.cancels {
		cancel()
	}
	f.negotiator.Remove(e.el)
}

func (f *Figure) roleScales(m Mark) (h, v scale.Scale) {
	h, v = m.RoleScales()
	if h == nil {
		h = f.scaleX
	}
	if v == nil {
		v = f.scaleY
	}
	return h, v
}

func (f *Figure) markPaddingUpdated(e *entry) {
	padH, padV := e.mark.ViewPadding()
	if e.h != nil {
		f.negotiator.Register(e.el, padding.Horizontal, e.h.ID(), padH)
	}
	if e.v != nil {
		f.negotiator.Register(e.el, padding.Vertical, e.v.ID(), padV)
	}
}

// markScalesUpdated migrates the view's demands to its current scales.
func (f *Figure) markScalesUpdated(e *entry) {
	oldH, oldV := e.h, e.v
	e.h, e.v = f.roleScales(e.mark)
	padH, padV := e.mark.ViewPadding()
	if e.h != oldH {
		f.negotiator.Reassign(e.el, padding.Horizontal, scaleID(oldH), scaleID(e.h), padH)
	}
	if e.v != oldV {
		f.negotiator.Reassign(e.el, padding.Vertical, scaleID(oldV), scaleID(e.v), padV)
	}
}

func scaleID(s scale.Scale) scale.ID {
	if s == nil {
		return scale.NoID
	}
	return s.ID()
}
