package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandutsar/bqplot/pkg/bars"
	"github.com/sandutsar/bqplot/pkg/config"
	"github.com/sandutsar/bqplot/pkg/pipeline"
	"github.com/sandutsar/bqplot/pkg/scale"
)

func newTestExplorer(t *testing.T) *exploreModel {
	t.Helper()
	doc, err := config.Parse([]byte(sampleChart))
	if err != nil {
		t.Fatal(err)
	}
	ch, err := pipeline.Build(doc)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ch.Close)
	m := newExploreModel(ch)
	m.Update(flushMsg(time.Now()))
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestExploreResizeCoalesces(t *testing.T) {
	m := newTestExplorer(t)
	if m.relayouts != 1 || m.snap.Layout.PlotWidth != 520 {
		t.Fatalf("initial relayouts = %d, plot width = %v", m.relayouts, m.snap.Layout.PlotWidth)
	}

	m.Update(key("left"))
	m.Update(key("left"))
	m.Update(key("up"))
	if m.snap.Layout.PlotWidth != 520 {
		t.Error("snapshot changed before the frame flush")
	}

	m.Update(flushMsg(time.Now()))
	if m.relayouts != 2 {
		t.Errorf("relayouts = %d, want 2 (one per frame)", m.relayouts)
	}
	if l := m.snap.Layout; l.PlotWidth != 480 || l.PlotHeight != 380 {
		t.Errorf("plot = %vx%v, want 480x380", l.PlotWidth, l.PlotHeight)
	}
}

func TestExploreMargin(t *testing.T) {
	m := newTestExplorer(t)
	m.Update(key("m"))
	m.Update(flushMsg(time.Now()))
	if l := m.snap.Layout; l.PlotWidth != 600 || l.PlotHeight != 440 {
		t.Errorf("plot with 20px margins = %vx%v, want 600x440", l.PlotWidth, l.PlotHeight)
	}
}

func TestExploreToggleType(t *testing.T) {
	m := newTestExplorer(t)
	m.Update(key("t"))
	m.Update(flushMsg(time.Now()))

	if got := m.chart.Marks[0].Type(); got != bars.Grouped {
		t.Fatalf("Type() = %q, want grouped", got)
	}
	y, _ := m.chart.Scale("y")
	if lo, hi, _ := y.(*scale.Linear).Domain(); lo != -3 || hi != 5 {
		t.Errorf("grouped y domain = [%v %v], want [-3 5]", lo, hi)
	}
	if m.snap.Marks[0].Type != "grouped" {
		t.Errorf("snapshot type = %q, want grouped", m.snap.Marks[0].Type)
	}
}

func TestExploreOrientation(t *testing.T) {
	m := newTestExplorer(t)
	m.Update(key("o"))
	m.Update(flushMsg(time.Now()))

	y, _ := m.snap.FindScale("y")
	if y.Range[0] != 0 || y.Range[1] != 520 {
		t.Errorf("horizontal y range = %v, want [0 520]", y.Range)
	}
}

func TestExploreView(t *testing.T) {
	m := newTestExplorer(t)
	out := m.View()
	for _, want := range []string{"bqplot explore", "640x480", "520x360", "sales"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}
