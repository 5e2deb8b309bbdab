package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sandutsar/bqplot/pkg/bars"
	"github.com/sandutsar/bqplot/pkg/config"
	"github.com/sandutsar/bqplot/pkg/export"
	"github.com/sandutsar/bqplot/pkg/figure"
	"github.com/sandutsar/bqplot/pkg/pipeline"
)

const (
	// frameInterval is how often the explorer flushes pending relayouts.
	frameInterval = 50 * time.Millisecond

	// resizeStep is the container change per arrow key press.
	resizeStep = 20.0
)

// marginPresets are cycled with "m".
var marginPresets = []figure.Margin{
	figure.UniformMargin(figure.DefaultMargin),
	figure.UniformMargin(20),
	{Top: 10, Bottom: 40, Left: 50, Right: 10},
	figure.UniformMargin(0),
}

var exploreKeyStyle = lipgloss.NewStyle().Foreground(colorDim)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [chart.toml]",
		Short: "Resize and restyle a chart interactively",
		Long: `Resize and restyle a chart interactively.

Arrow keys resize the container, m cycles margins, t toggles stacked and
grouped bars, o flips the orientation and p toggles preserving the value
domain. Changes are coalesced and laid out once per frame.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return err
			}
			ch, err := pipeline.Build(doc, pipeline.WithBuildLogger(c.Logger))
			if err != nil {
				return err
			}
			defer ch.Close()

			p := tea.NewProgram(newExploreModel(ch), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

// flushMsg drives the explorer's frame loop.
type flushMsg time.Time

func flushTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return flushMsg(t) })
}

// exploreModel is the bubbletea model of the explore command. Key presses
// only mutate the chart; the relayout they request runs on the next frame.
type exploreModel struct {
	chart     *pipeline.Chart
	snap      export.Snapshot
	margin    int
	relayouts int
	dirty     bool
}

func newExploreModel(ch *pipeline.Chart) *exploreModel {
	m := &exploreModel{chart: ch, dirty: true}
	for i, preset := range marginPresets {
		if preset == ch.Figure.Config().Margin {
			m.margin = i
		}
	}
	return m
}

func (m *exploreModel) Init() tea.Cmd {
	return flushTick()
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case flushMsg:
		if m.chart.Flush() {
			m.relayouts++
			m.dirty = true
		}
		if m.dirty {
			m.snap = m.chart.Snapshot()
			m.dirty = false
		}
		return m, flushTick()
	}
	return m, nil
}

func (m *exploreModel) handleKey(key string) tea.Cmd {
	size := m.chart.Container.Size()
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "left", "h":
		m.chart.Resize(max(size.Width-resizeStep, 0), size.Height)
	case "right", "l":
		m.chart.Resize(size.Width+resizeStep, size.Height)
	case "up", "k":
		m.chart.Resize(size.Width, size.Height+resizeStep)
	case "down", "j":
		m.chart.Resize(size.Width, max(size.Height-resizeStep, 0))
	case "m":
		m.margin = (m.margin + 1) % len(marginPresets)
		m.chart.Figure.SetMargin(marginPresets[m.margin])
	case "t":
		for _, mk := range m.chart.Marks {
			next := bars.Grouped
			if mk.Type() == bars.Grouped {
				next = bars.Stacked
			}
			mk.SetType(next)
		}
		m.dirty = true
	case "o":
		for _, mk := range m.chart.Marks {
			next := bars.Horizontal
			if mk.Orientation() == bars.Horizontal {
				next = bars.Vertical
			}
			h, v := mk.ViewPadding()
			mk.SetOrientation(next)
			mk.SetViewPadding(v, h)
		}
		m.dirty = true
	case "p":
		for _, mk := range m.chart.Marks {
			p := mk.Preserve()
			p.Y = !p.Y
			mk.SetPreserve(p)
		}
		m.dirty = true
	}
	return nil
}

func (m *exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("bqplot explore") + "  " + StyleDim.Render(m.snap.Chart))
	b.WriteString("\n")
	b.WriteString(exploreKeyStyle.Render("←/→/↑/↓ resize  m margin  t type  o orientation  p preserve y  q quit"))
	b.WriteString("\n\n")

	l := m.snap.Layout
	status := StyleSuccess.Render("visible")
	if l.Hidden {
		status = StyleWarning.Render("hidden")
	}
	fmt.Fprintf(&b, "%s  container %s  plot %s  %s  %s\n\n",
		StyleHighlight.Render("layout"),
		StyleValue.Render(m.snap.Container.String()),
		StyleValue.Render(fmt.Sprintf("%gx%g", l.PlotWidth, l.PlotHeight)),
		status,
		StyleDim.Render(fmt.Sprintf("%d relayouts", m.relayouts)))

	st := newTable("Scale", "Domain", "Range", "Pad H", "Pad V")
	for _, s := range m.snap.Scales {
		st.Row(s.Name, formatDomain(s), formatRange(s.Range),
			formatPad(s.PaddingH, s.AllowPadding), formatPad(s.PaddingV, s.AllowPadding))
	}
	b.WriteString(st.Render())
	b.WriteString("\n")

	mt := newTable("Mark", "Type", "Orientation", "Preserve y", "Segments")
	for i, mk := range m.snap.Marks {
		preserve := "no"
		if i < len(m.chart.Marks) && m.chart.Marks[i].Preserve().Y {
			preserve = "yes"
		}
		mt.Row(mk.Name, mk.Type, mk.Orientation, preserve, fmt.Sprint(mk.SegmentCount()))
	}
	b.WriteString(mt.Render())
	b.WriteString("\n")

	return b.String()
}
