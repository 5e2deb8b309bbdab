package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/sandutsar/bqplot/pkg/bars"
	"github.com/sandutsar/bqplot/pkg/config"
	"github.com/sandutsar/bqplot/pkg/errors"
	"github.com/sandutsar/bqplot/pkg/figure"
	"github.com/sandutsar/bqplot/pkg/scale"
)

// =============================================================================
// Chart - Live Objects Built From a Document
// =============================================================================

// Chart is a chart document turned into live scales, marks and a figure.
// The figure defers relayout to Queue; call Flush to run it. A Chart is
// not safe for concurrent use.
type Chart struct {
	Name      string
	Registry  *scale.Registry
	Figure    *figure.Figure
	Queue     *figure.Queue
	Container *figure.Fixed

	// Marks are in document order. Names holds the document name of each.
	Marks []*bars.Mark
	Names []string

	scales map[string]scale.Scale
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	logger *log.Logger
}

// WithBuildLogger sets the logger handed to the figure.
func WithBuildLogger(l *log.Logger) BuildOption {
	return func(c *buildConfig) { c.logger = l }
}

// Build creates the scales, marks and figure described by c and requests
// the first relayout. The chart must be valid.
func Build(c *config.Chart, opts ...BuildOption) (*Chart, error) {
	bc := buildConfig{}
	for _, opt := range opts {
		opt(&bc)
	}
	if bc.logger == nil {
		bc.logger = log.New(io.Discard)
	}

	ch := &Chart{
		Name:      c.Name,
		Registry:  scale.NewRegistry(),
		Queue:     &figure.Queue{},
		Container: &figure.Fixed{Width: c.Figure.Width, Height: c.Figure.Height},
		scales:    make(map[string]scale.Scale, len(c.Scales)),
	}

	for _, sc := range c.Scales {
		allow := sc.AllowPadding == nil || *sc.AllowPadding
		ch.scales[sc.Name] = ch.Registry.New(sc.Kind, sc.Name, scale.WithAllowPadding(allow))
	}

	lookup := func(owner, role, name string) (scale.Scale, error) {
		if name == "" {
			return nil, nil
		}
		s, ok := ch.scales[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownScale, "%s: unknown %s scale %q", owner, role, name)
		}
		return s, nil
	}

	figX, err := lookup("figure", "x", c.Figure.XScale)
	if err != nil {
		return nil, err
	}
	figY, err := lookup("figure", "y", c.Figure.YScale)
	if err != nil {
		return nil, err
	}
	ch.Figure = figure.New(ch.Container, c.FigureConfig(),
		figure.WithScheduler(ch.Queue),
		figure.WithLogger(bc.logger),
		figure.WithScales(figX, figY),
	)

	for _, mc := range c.Marks {
		var s bars.Scales
		if s.X, err = lookup("mark "+mc.Name, "x", mc.Scales.X); err != nil {
			return nil, err
		}
		if s.Y, err = lookup("mark "+mc.Name, "y", mc.Scales.Y); err != nil {
			return nil, err
		}
		if s.Color, err = lookup("mark "+mc.Name, "color", mc.Scales.Color); err != nil {
			return nil, err
		}
		padH, padV := mc.Padding.X, mc.Padding.Y
		if mc.Orientation == bars.Horizontal {
			padH, padV = padV, padH
		}
		m := bars.New(s,
			bars.WithID(mc.Name),
			bars.WithData(mc.X, mc.Y, mc.Base),
			bars.WithType(mc.Type),
			bars.WithOrientation(mc.Orientation),
			bars.WithColorMode(mc.ColorMode),
			bars.WithOpacityMode(mc.OpacityMode),
			bars.WithColors(mc.Colors),
			bars.WithColorData(mc.Color),
			bars.WithOpacities(mc.Opacities),
			bars.WithPreserve(mc.Preserve),
			bars.WithViewPadding(padH, padV),
		)
		ch.Marks = append(ch.Marks, m)
		ch.Names = append(ch.Names, mc.Name)
		ch.Figure.AddMark(m)
	}

	ch.Figure.RequestRelayout()
	return ch, nil
}

// Flush runs the pending relayout, if any, and reports whether one ran.
func (ch *Chart) Flush() bool {
	return ch.Queue.Flush() > 0
}

// Resize changes the container and notifies the figure. The relayout runs
// on the next Flush.
func (ch *Chart) Resize(width, height float64) {
	ch.Container.Width, ch.Container.Height = width, height
	ch.Figure.NotifyResize()
}

// Scale returns the named scale.
func (ch *Chart) Scale(name string) (scale.Scale, bool) {
	s, ok := ch.scales[name]
	return s, ok
}

// Mark returns the named mark.
func (ch *Chart) Mark(name string) (*bars.Mark, bool) {
	for i, n := range ch.Names {
		if n == name {
			return ch.Marks[i], true
		}
	}
	return nil, false
}

// Close detaches every mark from its scales and the figure.
func (ch *Chart) Close() {
	ch.Figure.Close()
	for _, m := range ch.Marks {
		m.Detach()
	}
}
