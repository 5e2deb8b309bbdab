package config

import (
	"fmt"

	"github.com/sandutsar/bqplot/pkg/errors"
	"github.com/sandutsar/bqplot/pkg/scale"
)

// Validate checks c after defaults were applied. It returns nil or an
// [errors.ValidationErrors] listing every problem.
func (c *Chart) Validate() error {
	var errs errors.ValidationErrors
	add := func(err error) {
		if e, ok := err.(*errors.Error); ok && e != nil {
			errs = append(errs, e)
		}
	}

	f := c.Figure
	add(errors.ValidateNonNegative("figure.width", f.Width))
	add(errors.ValidateNonNegative("figure.height", f.Height))
	add(errors.ValidateAspectBounds(f.MinAspectRatio, f.MaxAspectRatio))
	if f.Margin != nil {
		add(errors.ValidateNonNegative("figure.margin.top", f.Margin.Top))
		add(errors.ValidateNonNegative("figure.margin.bottom", f.Margin.Bottom))
		add(errors.ValidateNonNegative("figure.margin.left", f.Margin.Left))
		add(errors.ValidateNonNegative("figure.margin.right", f.Margin.Right))
	}
	if f.PaddingX != nil {
		add(errors.ValidateFraction("figure.padding_x", *f.PaddingX))
	}
	if f.PaddingY != nil {
		add(errors.ValidateFraction("figure.padding_y", *f.PaddingY))
	}

	scales := make(map[string]bool, len(c.Scales))
	for _, s := range c.Scales {
		add(errors.ValidateName("scale", s.Name))
		if scales[s.Name] {
			add(errors.New(errors.ErrCodeInvalidName, "duplicate scale %q", s.Name))
		}
		scales[s.Name] = true
		if s.Kind != scale.KindLinear && s.Kind != scale.KindOrdinal {
			add(errors.New(errors.ErrCodeInvalidType, "scale %q: unknown kind %q (must be one of: linear, ordinal)", s.Name, s.Kind))
		}
	}

	ref := func(owner, role, name string) {
		if name != "" && !scales[name] {
			add(errors.New(errors.ErrCodeUnknownScale, "%s: unknown %s scale %q", owner, role, name))
		}
	}
	ref("figure", "x", f.XScale)
	ref("figure", "y", f.YScale)

	marks := make(map[string]bool, len(c.Marks))
	for i, m := range c.Marks {
		owner := fmt.Sprintf("marks[%d]", i)
		if m.Name != "" {
			owner = fmt.Sprintf("mark %q", m.Name)
		}
		add(errors.ValidateName("mark", m.Name))
		if marks[m.Name] {
			add(errors.New(errors.ErrCodeInvalidName, "duplicate mark %q", m.Name))
		}
		marks[m.Name] = true

		if !m.Type.Valid() {
			add(errors.New(errors.ErrCodeInvalidType, "%s: invalid type %q (must be one of: stacked, grouped)", owner, m.Type))
		}
		if !m.Orientation.Valid() {
			add(errors.New(errors.ErrCodeInvalidOrientation, "%s: invalid orientation %q (must be one of: vertical, horizontal)", owner, m.Orientation))
		}
		if !m.ColorMode.Valid() {
			add(errors.New(errors.ErrCodeInvalidMode, "%s: invalid color_mode %q", owner, m.ColorMode))
		}
		if !m.OpacityMode.Valid() {
			add(errors.New(errors.ErrCodeInvalidMode, "%s: invalid opacity_mode %q", owner, m.OpacityMode))
		}
		ref(owner, "x", m.Scales.X)
		ref(owner, "y", m.Scales.Y)
		ref(owner, "color", m.Scales.Color)
		add(errors.ValidateNonNegative(owner+" padding.x", m.Padding.X))
		add(errors.ValidateNonNegative(owner+" padding.y", m.Padding.Y))
		for _, o := range m.Opacities {
			if o < 0 || o > 1 {
				add(errors.New(errors.ErrCodeInvalidConfig, "%s: opacity %v outside [0, 1]", owner, o))
				break
			}
		}
	}
	if len(c.Marks) == 0 {
		add(errors.New(errors.ErrCodeInvalidConfig, "chart has no marks"))
	}

	return errs.Err()
}
