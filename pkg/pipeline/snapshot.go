package pipeline

import (
	"github.com/sandutsar/bqplot/pkg/bars"
	"github.com/sandutsar/bqplot/pkg/export"
	"github.com/sandutsar/bqplot/pkg/padding"
	"github.com/sandutsar/bqplot/pkg/scale"
)

// Snapshot captures the current state of ch. Geometry is read from the
// live objects, so a snapshot taken right after Flush reflects every
// domain and padding change made before it.
func (ch *Chart) Snapshot() export.Snapshot {
	cfg := ch.Figure.Config()
	snap := export.Snapshot{
		Chart:     ch.Name,
		Container: ch.Container.Size(),
		Layout:    ch.Figure.Layout(),
		PaddingX:  cfg.PaddingX,
		PaddingY:  cfg.PaddingY,
		Scales:    make([]export.Scale, 0, ch.Registry.Len()),
		Marks:     make([]export.Mark, 0, len(ch.Marks)),
	}

	n := ch.Figure.Negotiator()
	for _, s := range ch.Registry.All() {
		snap.Scales = append(snap.Scales, scaleState(s, n))
	}
	for i, m := range ch.Marks {
		snap.Marks = append(snap.Marks, markState(ch.Names[i], m))
	}
	return snap
}

func scaleState(s scale.Scale, n *padding.Negotiator) export.Scale {
	st := export.Scale{
		Name:         s.Name(),
		Kind:         string(s.Kind()),
		Domain:       []float64{},
		Range:        s.Range(),
		Owners:       s.Owners(),
		AllowPadding: s.AllowPadding(),
	}
	switch s := s.(type) {
	case *scale.Linear:
		if lo, hi, ok := s.Domain(); ok {
			st.Domain = []float64{lo, hi}
		}
	case *scale.Ordinal:
		st.Domain = s.Domain()
	}
	if px, ok := n.Lookup(padding.Horizontal, s.ID()); ok {
		st.PaddingH = &px
	}
	if px, ok := n.Lookup(padding.Vertical, s.ID()); ok {
		st.PaddingV = &px
	}
	return st
}

func markState(name string, m *bars.Mark) export.Mark {
	sc := m.Scoping()
	st := export.Mark{
		Name:         name,
		Type:         string(m.Type()),
		Orientation:  string(m.Orientation()),
		Base:         m.Base(),
		MultiSeries:  m.MultiSeries(),
		ColorScope:   sc.Color.String(),
		OpacityScope: sc.Opacity.String(),
		Groups:       make([]export.Group, 0, len(m.Groups())),
	}
	scales := m.Scales()
	st.XScale = scaleName(scales.X)
	st.YScale = scaleName(scales.Y)
	st.ColorScale = scaleName(scales.Color)

	for _, g := range m.Groups() {
		gs := export.Group{
			Key:       export.Number(g.Key),
			PosExtent: g.PosExtent,
			NegExtent: g.NegExtent,
			Segments:  make([]export.Segment, 0, len(g.Segments)),
		}
		for _, seg := range g.Segments {
			low, high := seg.Edges(m.Type(), m.Base())
			ss := export.Segment{
				Series:       seg.SeriesIndex,
				Low:          low,
				High:         high,
				Magnitude:    seg.Magnitude,
				Raw:          export.Number(seg.Raw),
				ColorIndex:   seg.ColorIndex,
				OpacityIndex: seg.OpacityIndex,
				Fill:         bars.Fill(m.Colors(), seg.ColorIndex),
				Opacity:      bars.Opacity(m.Opacities(), seg.OpacityIndex),
			}
			if seg.HasColor {
				ss.Color = export.Number(seg.Color)
			}
			gs.Segments = append(gs.Segments, ss)
		}
		st.Groups = append(st.Groups, gs)
	}
	return st
}

func scaleName(s scale.Scale) string {
	if s == nil {
		return ""
	}
	return s.Name()
}
