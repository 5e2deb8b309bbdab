package figure

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestConstrainAspect(t *testing.T) {
	tests := []struct {
		name     string
		size     Size
		min, max float64
		want     Size
	}{
		{"within bounds", Size{800, 400}, 0.01, 100, Size{800, 400}},
		{"too tall", Size{100, 1000}, 0.5, 100, Size{100, 200}},
		{"too wide", Size{1000, 10}, 0.01, 2, Size{20, 10}},
		{"bounds ignored", Size{1000, 10}, 0, 0, Size{1000, 10}},
		{"degenerate", Size{0, 500}, 1, 1, Size{0, 500}},
		{"square forced", Size{300, 200}, 1, 1, Size{200, 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConstrainAspect(tt.size, tt.min, tt.max)
			if got != tt.want {
				t.Errorf("ConstrainAspect(%v, %v, %v) = %v, want %v", tt.size, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestComputeLayout(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name   string
		size   Size
		w, h   float64
		hidden bool
	}{
		{"regular", Size{800, 500}, 680, 380, false},
		{"margins exceed", Size{100, 100}, 0, 0, true},
		{"one pixel", Size{121, 121}, 1, 1, false},
		{"thin", Size{800, 120.5}, 680, 0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(tt.size, cfg)
			if !near(l.PlotWidth, tt.w) || !near(l.PlotHeight, tt.h) {
				t.Errorf("plot = %vx%v, want %vx%v", l.PlotWidth, l.PlotHeight, tt.w, tt.h)
			}
			if l.Hidden != tt.hidden {
				t.Errorf("Hidden = %v, want %v", l.Hidden, tt.hidden)
			}
		})
	}
}

func TestComputeLayoutNeverNegative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Margin = UniformMargin(500)
	l := ComputeLayout(Size{300, 300}, cfg)
	if l.PlotWidth != 0 || l.PlotHeight != 0 {
		t.Errorf("plot = %vx%v, want 0x0", l.PlotWidth, l.PlotHeight)
	}
}

func TestUnpaddedRange(t *testing.T) {
	l := Layout{PlotWidth: 680, PlotHeight: 380}
	if got := l.UnpaddedRange(false); got != [2]float64{0, 680} {
		t.Errorf("UnpaddedRange(horizontal) = %v, want [0 680]", got)
	}
	if got := l.UnpaddedRange(true); got != [2]float64{380, 0} {
		t.Errorf("UnpaddedRange(vertical) = %v, want [380 0]", got)
	}
}

func TestQueueFlush(t *testing.T) {
	var q Queue
	var ran []int
	q.Schedule(func() {
		ran = append(ran, 1)
		q.Schedule(func() { ran = append(ran, 2) })
	})
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	if n := q.Flush(); n != 1 {
		t.Errorf("Flush() = %d, want 1", n)
	}
	if len(ran) != 1 || q.Len() != 1 {
		t.Errorf("nested task ran early: ran=%v len=%d", ran, q.Len())
	}
	q.Flush()
	if len(ran) != 2 {
		t.Errorf("ran = %v, want [1 2]", ran)
	}
	if n := q.Flush(); n != 0 {
		t.Errorf("Flush() on empty queue = %d, want 0", n)
	}
}
