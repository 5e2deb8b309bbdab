package figure

import (
	"testing"

	"github.com/sandutsar/bqplot/pkg/bars"
	"github.com/sandutsar/bqplot/pkg/padding"
	"github.com/sandutsar/bqplot/pkg/scale"
)

func TestBarsMarkOrientationSwap(t *testing.T) {
	reg := scale.NewRegistry()
	x := reg.NewOrdinal("x")
	y := reg.NewLinear("y")

	m := bars.New(bars.Scales{X: x, Y: y},
		bars.WithData([]float64{1, 2, 3}, [][]float64{{5, -3, 2}}, 0),
		bars.WithViewPadding(5, 8),
	)
	q := &Queue{}
	f, _ := newTestFigure(q)
	f.AddMark(m)
	f.RequestRelayout()
	q.Flush()

	n := f.Negotiator()
	if got := n.Padding(padding.Horizontal, x.ID()); got != 5 {
		t.Errorf("Padding(horizontal, x) = %v, want 5", got)
	}
	if got := n.Padding(padding.Vertical, y.ID()); got != 8 {
		t.Errorf("Padding(vertical, y) = %v, want 8", got)
	}

	m.SetOrientation(bars.Horizontal)
	if _, ok := n.Lookup(padding.Horizontal, x.ID()); ok {
		t.Error("horizontal demand left on x")
	}
	if got := n.Padding(padding.Horizontal, y.ID()); got != 5 {
		t.Errorf("Padding(horizontal, y) = %v, want 5", got)
	}
	if got := n.Padding(padding.Vertical, x.ID()); got != 8 {
		t.Errorf("Padding(vertical, x) = %v, want 8", got)
	}
	if got := y.Range(); got != [2]float64{5, 675} {
		t.Errorf("y.Range() = %v, want [5 675]", got)
	}

	m.SetViewPadding(1, 2)
	if got := n.Padding(padding.Horizontal, y.ID()); got != 1 {
		t.Errorf("after SetViewPadding Padding(horizontal, y) = %v, want 1", got)
	}
}
