package export

import (
	"math"

	"github.com/sandutsar/bqplot/pkg/figure"
)

// =============================================================================
// Snapshot - Computed Chart Layout
// =============================================================================

// Snapshot is the serialized state of a chart after relayout.
type Snapshot struct {
	Chart     string        `json:"chart,omitempty" bson:"chart,omitempty" msgpack:"chart,omitempty"`
	Container figure.Size   `json:"container" bson:"container" msgpack:"container"`
	Layout    figure.Layout `json:"layout" bson:"layout" msgpack:"layout"`

	// PaddingX and PaddingY are the fractional figure paddings applied on
	// top of every scale's negotiated padding.
	PaddingX float64 `json:"padding_x" bson:"padding_x" msgpack:"padding_x"`
	PaddingY float64 `json:"padding_y" bson:"padding_y" msgpack:"padding_y"`

	Scales []Scale `json:"scales" bson:"scales" msgpack:"scales"`
	Marks  []Mark  `json:"marks" bson:"marks" msgpack:"marks"`
}

// Scale is the state of one scale.
type Scale struct {
	Name string `json:"name" bson:"name" msgpack:"name"`
	Kind string `json:"kind" bson:"kind" msgpack:"kind"`

	// Domain is [min, max] for linear scales and the distinct values in
	// contribution order for ordinal ones. It is empty when no owner
	// contributes.
	Domain []float64  `json:"domain" bson:"domain" msgpack:"domain"`
	Range  [2]float64 `json:"range" bson:"range" msgpack:"range"`
	Owners []string   `json:"owners,omitempty" bson:"owners,omitempty" msgpack:"owners,omitempty"`

	AllowPadding bool `json:"allow_padding" bson:"allow_padding" msgpack:"allow_padding"`

	// PaddingH and PaddingV are the negotiated paddings in each role. Nil
	// means no mark uses the scale in that role.
	PaddingH *float64 `json:"padding_horizontal,omitempty" bson:"padding_horizontal,omitempty" msgpack:"padding_horizontal,omitempty"`
	PaddingV *float64 `json:"padding_vertical,omitempty" bson:"padding_vertical,omitempty" msgpack:"padding_vertical,omitempty"`
}

// Mark is the state of one bars mark.
type Mark struct {
	Name        string  `json:"name" bson:"name" msgpack:"name"`
	Type        string  `json:"type" bson:"type" msgpack:"type"`
	Orientation string  `json:"orientation" bson:"orientation" msgpack:"orientation"`
	Base        float64 `json:"base" bson:"base" msgpack:"base"`
	MultiSeries bool    `json:"multi_series" bson:"multi_series" msgpack:"multi_series"`

	// ColorScope and OpacityScope name the resolved index policies.
	ColorScope   string `json:"color_scope" bson:"color_scope" msgpack:"color_scope"`
	OpacityScope string `json:"opacity_scope" bson:"opacity_scope" msgpack:"opacity_scope"`

	XScale     string `json:"x_scale,omitempty" bson:"x_scale,omitempty" msgpack:"x_scale,omitempty"`
	YScale     string `json:"y_scale,omitempty" bson:"y_scale,omitempty" msgpack:"y_scale,omitempty"`
	ColorScale string `json:"color_scale,omitempty" bson:"color_scale,omitempty" msgpack:"color_scale,omitempty"`

	Groups []Group `json:"groups" bson:"groups" msgpack:"groups"`
}

// Group is one key of a mark. Key is nil when the x value is NaN.
type Group struct {
	Key       *float64  `json:"key,omitempty" bson:"key,omitempty" msgpack:"key,omitempty"`
	PosExtent float64   `json:"pos_extent" bson:"pos_extent" msgpack:"pos_extent"`
	NegExtent float64   `json:"neg_extent" bson:"neg_extent" msgpack:"neg_extent"`
	Segments  []Segment `json:"segments" bson:"segments" msgpack:"segments"`
}

// Segment is one bar. Low and High are the edges for the mark's type.
type Segment struct {
	Series    int      `json:"series" bson:"series" msgpack:"series"`
	Low       float64  `json:"low" bson:"low" msgpack:"low"`
	High      float64  `json:"high" bson:"high" msgpack:"high"`
	Magnitude float64  `json:"magnitude" bson:"magnitude" msgpack:"magnitude"`
	Raw       *float64 `json:"raw,omitempty" bson:"raw,omitempty" msgpack:"raw,omitempty"`

	ColorIndex   int      `json:"color_index" bson:"color_index" msgpack:"color_index"`
	OpacityIndex int      `json:"opacity_index" bson:"opacity_index" msgpack:"opacity_index"`
	Color        *float64 `json:"color,omitempty" bson:"color,omitempty" msgpack:"color,omitempty"`
	Fill         string   `json:"fill" bson:"fill" msgpack:"fill"`
	Opacity      float64  `json:"opacity" bson:"opacity" msgpack:"opacity"`
}

// Number returns a pointer to v, or nil when v is NaN.
func Number(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// SegmentCount returns the number of segments across all groups.
func (m Mark) SegmentCount() int {
	n := 0
	for _, g := range m.Groups {
		n += len(g.Segments)
	}
	return n
}

// FindScale returns the scale named name.
func (s *Snapshot) FindScale(name string) (Scale, bool) {
	for _, sc := range s.Scales {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scale{}, false
}

// FindMark returns the mark named name.
func (s *Snapshot) FindMark(name string) (Mark, bool) {
	for _, m := range s.Marks {
		if m.Name == name {
			return m, true
		}
	}
	return Mark{}, false
}
