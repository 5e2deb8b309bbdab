package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sandutsar/bqplot/pkg/bars"
	"github.com/sandutsar/bqplot/pkg/errors"
	"github.com/sandutsar/bqplot/pkg/figure"
	"github.com/sandutsar/bqplot/pkg/scale"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the container width used when none is configured.
	DefaultWidth = 800.0

	// DefaultHeight is the container height used when none is configured.
	DefaultHeight = 600.0
)

// =============================================================================
// Document Types
// =============================================================================

// Chart is one chart document.
type Chart struct {
	Name   string  `toml:"name,omitempty"`
	Figure Figure  `toml:"figure"`
	Scales []Scale `toml:"scales"`
	Marks  []Mark  `toml:"marks"`
}

// Figure holds the container size and the layout attributes. Pointer
// fields distinguish an explicit zero from an omitted value.
type Figure struct {
	Width          float64        `toml:"width,omitempty"`
	Height         float64        `toml:"height,omitempty"`
	Margin         *figure.Margin `toml:"margin,omitempty"`
	MinAspectRatio float64        `toml:"min_aspect_ratio,omitempty"`
	MaxAspectRatio float64        `toml:"max_aspect_ratio,omitempty"`
	PaddingX       *float64       `toml:"padding_x,omitempty"`
	PaddingY       *float64       `toml:"padding_y,omitempty"`

	// XScale and YScale name the figure-level scales. Marks with no scale
	// on a role fall back to them.
	XScale string `toml:"x_scale,omitempty"`
	YScale string `toml:"y_scale,omitempty"`
}

// Scale declares a scale shared by name.
type Scale struct {
	Name         string     `toml:"name"`
	Kind         scale.Kind `toml:"kind"`
	AllowPadding *bool      `toml:"allow_padding,omitempty"`
}

// MarkScales names the scales a mark writes to.
type MarkScales struct {
	X     string `toml:"x,omitempty"`
	Y     string `toml:"y,omitempty"`
	Color string `toml:"color,omitempty"`
}

// Padding is a pixel padding demand per axis. Axes follow the mark's x and
// y, not the screen, so it moves with the scales when orientation flips.
type Padding struct {
	X float64 `toml:"x,omitempty"`
	Y float64 `toml:"y,omitempty"`
}

// Mark is one bars mark.
type Mark struct {
	Name        string           `toml:"name"`
	X           Numbers          `toml:"x"`
	Y           Series           `toml:"y"`
	Base        float64          `toml:"base,omitempty"`
	Type        bars.Type        `toml:"type,omitempty"`
	Orientation bars.Orientation `toml:"orientation,omitempty"`
	ColorMode   bars.ColorMode   `toml:"color_mode,omitempty"`
	OpacityMode bars.ColorMode   `toml:"opacity_mode,omitempty"`
	Colors      []string         `toml:"colors,omitempty"`
	Color       Numbers          `toml:"color,omitempty"`
	Opacities   Numbers          `toml:"opacities,omitempty"`
	Scales      MarkScales       `toml:"scales"`
	Preserve    bars.Preserve    `toml:"preserve_domain"`
	Padding     Padding          `toml:"padding"`
}

// =============================================================================
// Loading
// =============================================================================

// Load reads and decodes the chart at path. Defaults are applied but the
// chart is not validated.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a chart document and applies defaults.
func Parse(data []byte) (*Chart, error) {
	var c Chart
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode chart")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	c.SetDefaults()
	return &c, nil
}

// Encode writes c back as TOML. The output is stable for equal charts and
// serves as cache key material.
func (c *Chart) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode chart")
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Defaults
// =============================================================================

// SetDefaults fills omitted attributes. It is idempotent.
func (c *Chart) SetDefaults() {
	def := figure.DefaultConfig()
	f := &c.Figure
	if f.Width == 0 {
		f.Width = DefaultWidth
	}
	if f.Height == 0 {
		f.Height = DefaultHeight
	}
	if f.Margin == nil {
		m := def.Margin
		f.Margin = &m
	}
	if f.MinAspectRatio == 0 {
		f.MinAspectRatio = def.MinAspectRatio
	}
	if f.MaxAspectRatio == 0 {
		f.MaxAspectRatio = def.MaxAspectRatio
	}
	if f.PaddingX == nil {
		f.PaddingX = ptr(def.PaddingX)
	}
	if f.PaddingY == nil {
		f.PaddingY = ptr(def.PaddingY)
	}

	for i := range c.Scales {
		s := &c.Scales[i]
		if s.Kind == "" {
			s.Kind = scale.KindLinear
		}
		if s.AllowPadding == nil {
			s.AllowPadding = ptr(true)
		}
	}

	for i := range c.Marks {
		m := &c.Marks[i]
		if m.Type == "" {
			m.Type = bars.Stacked
		}
		if m.Orientation == "" {
			m.Orientation = bars.Vertical
		}
		if m.ColorMode == "" {
			m.ColorMode = bars.ColorModeAuto
		}
		if m.OpacityMode == "" {
			m.OpacityMode = bars.ColorModeAuto
		}
		if len(m.Colors) == 0 {
			m.Colors = append([]string(nil), bars.DefaultColors...)
		}
	}
}

func ptr[T any](v T) *T { return &v }

// FigureConfig returns the layout attributes. Call SetDefaults first.
func (c *Chart) FigureConfig() figure.Config {
	cfg := figure.DefaultConfig()
	f := c.Figure
	if f.Margin != nil {
		cfg.Margin = *f.Margin
	}
	if f.MinAspectRatio != 0 {
		cfg.MinAspectRatio = f.MinAspectRatio
	}
	if f.MaxAspectRatio != 0 {
		cfg.MaxAspectRatio = f.MaxAspectRatio
	}
	if f.PaddingX != nil {
		cfg.PaddingX = *f.PaddingX
	}
	if f.PaddingY != nil {
		cfg.PaddingY = *f.PaddingY
	}
	return cfg
}

// Size returns the configured container size.
func (c *Chart) Size() figure.Size {
	return figure.Size{Width: c.Figure.Width, Height: c.Figure.Height}
}

// Scale returns the declaration of the named scale.
func (c *Chart) Scale(name string) (Scale, bool) {
	for _, s := range c.Scales {
		if s.Name == name {
			return s, true
		}
	}
	return Scale{}, false
}
