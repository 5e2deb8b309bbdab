package figure

import (
	"fmt"
	"math"
)

// Size is a rectangle extent in pixels.
type Size struct {
	Width  float64 `toml:"width" json:"width" bson:"width" msgpack:"width"`
	Height float64 `toml:"height" json:"height" bson:"height" msgpack:"height"`
}

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.Width, s.Height) }

// Margin is the space reserved around the plot area, in pixels.
type Margin struct {
	Top    float64 `toml:"top" json:"top" bson:"top" msgpack:"top"`
	Bottom float64 `toml:"bottom" json:"bottom" bson:"bottom" msgpack:"bottom"`
	Left   float64 `toml:"left" json:"left" bson:"left" msgpack:"left"`
	Right  float64 `toml:"right" json:"right" bson:"right" msgpack:"right"`
}

// UniformMargin returns a margin of px on every side.
func UniformMargin(px float64) Margin {
	return Margin{Top: px, Bottom: px, Left: px, Right: px}
}

// Config holds the figure attributes that shape the layout.
type Config struct {
	Margin         Margin
	MinAspectRatio float64
	MaxAspectRatio float64

	// PaddingX and PaddingY are fractions of the plot extent removed from
	// both ends of every padded range.
	PaddingX float64
	PaddingY float64
}

const (
	DefaultMargin         = 60
	DefaultMinAspectRatio = 0.01
	DefaultMaxAspectRatio = 100
	DefaultPaddingX       = 0
	DefaultPaddingY       = 0.025
)

// DefaultConfig returns the standard figure attributes.
func DefaultConfig() Config {
	return Config{
		Margin:         UniformMargin(DefaultMargin),
		MinAspectRatio: DefaultMinAspectRatio,
		MaxAspectRatio: DefaultMaxAspectRatio,
		PaddingX:       DefaultPaddingX,
		PaddingY:       DefaultPaddingY,
	}
}

// visibleThreshold is the smallest plot extent that is rendered.
const visibleThreshold = 1

// Layout is the resolved geometry of a figure.
type Layout struct {
	// Size is the container size after aspect correction.
	Size   Size   `json:"size" bson:"size" msgpack:"size"`
	Margin Margin `json:"margin" bson:"margin" msgpack:"margin"`

	// PlotWidth and PlotHeight are never negative.
	PlotWidth  float64 `json:"plot_width" bson:"plot_width" msgpack:"plot_width"`
	PlotHeight float64 `json:"plot_height" bson:"plot_height" msgpack:"plot_height"`

	// Hidden is set when either plot extent is below one pixel. Hidden
	// figures carry no ranges and must not be rendered.
	Hidden bool `json:"hidden" bson:"hidden" msgpack:"hidden"`
}

// ConstrainAspect corrects size so its width/height ratio lies within
// [minRatio, maxRatio]. A ratio below the minimum shrinks the height, one
// above the maximum shrinks the width. Non-positive bounds are ignored, as
// are degenerate sizes.
func ConstrainAspect(size Size, minRatio, maxRatio float64) Size {
	if size.Width <= 0 || size.Height <= 0 {
		return size
	}
	ratio := size.Width / size.Height
	switch {
	case minRatio > 0 && ratio < minRatio:
		size.Height = size.Width / minRatio
	case maxRatio > 0 && ratio > maxRatio:
		size.Width = size.Height * maxRatio
	}
	return size
}

// ComputeLayout derives the plot area for a container of the given size.
func ComputeLayout(container Size, cfg Config) Layout {
	size := ConstrainAspect(container, cfg.MinAspectRatio, cfg.MaxAspectRatio)
	w := size.Width - cfg.Margin.Left - cfg.Margin.Right
	h := size.Height - cfg.Margin.Top - cfg.Margin.Bottom
	return Layout{
		Size:       size,
		Margin:     cfg.Margin,
		PlotWidth:  math.Max(w, 0),
		PlotHeight: math.Max(h, 0),
		Hidden:     !(w >= visibleThreshold && h >= visibleThreshold),
	}
}

// UnpaddedRange returns the full pixel range of the plot area. The
// vertical range runs from the bottom edge to the top edge.
func (l Layout) UnpaddedRange(vertical bool) [2]float64 {
	if vertical {
		return [2]float64{l.PlotHeight, 0}
	}
	return [2]float64{0, l.PlotWidth}
}
