package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sandutsar/bqplot/pkg/config"
	"github.com/sandutsar/bqplot/pkg/export"
	"github.com/sandutsar/bqplot/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		cf       cacheFlags
		opts     pipeline.Options
		segments bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [chart.toml | snapshot]",
		Short: "Print a chart's layout, scales and marks",
		Long: `Print a chart's layout, scales and marks as tables.

The input is either a chart document (.toml), which is laid out first, or a
snapshot written by 'layout' (.json, .bson, .mpk).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := c.loadSnapshot(cmd.Context(), args[0], cf, opts)
			if err != nil {
				return err
			}
			fmt.Print(renderSnapshot(snap, segments))
			return nil
		},
	}

	cf.register(cmd)
	cmd.Flags().BoolVarP(&segments, "segments", "s", false, "list every bar segment")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "override container width")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "override container height")

	return cmd
}

// loadSnapshot lays out a chart document or reads a stored snapshot.
func (c *CLI) loadSnapshot(ctx context.Context, path string, cf cacheFlags, opts pipeline.Options) (export.Snapshot, error) {
	if strings.ToLower(filepath.Ext(path)) != ".toml" {
		return export.ReadFile(path)
	}
	chart, err := config.Load(path)
	if err != nil {
		return export.Snapshot{}, err
	}
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return export.Snapshot{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Format = export.FormatMsgpack
	res, err := runner.Execute(ctx, chart, opts)
	if err != nil {
		return export.Snapshot{}, err
	}
	return res.Snapshot, nil
}

// =============================================================================
// Rendering
// =============================================================================

var headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// renderSnapshot formats snap as a layout summary followed by scale and
// mark tables.
func renderSnapshot(snap export.Snapshot, segments bool) string {
	var b strings.Builder

	title := snap.Chart
	if title == "" {
		title = "chart"
	}
	b.WriteString(StyleTitle.Render(title) + "\n")

	l := snap.Layout
	m := l.Margin
	kv := func(k, v string) {
		b.WriteString(lipgloss.NewStyle().Foreground(colorGray).Width(12).Render(k) + " " + StyleValue.Render(v) + "\n")
	}
	kv("container", snap.Container.String())
	kv("figure", l.Size.String())
	kv("margin", fmt.Sprintf("top %g  bottom %g  left %g  right %g", m.Top, m.Bottom, m.Left, m.Right))
	kv("plot", fmt.Sprintf("%gx%g", l.PlotWidth, l.PlotHeight))
	kv("padding", fmt.Sprintf("x %g  y %g", snap.PaddingX, snap.PaddingY))
	if l.Hidden {
		b.WriteString(StyleWarning.Render("plot area is empty; ranges were not updated") + "\n")
	}
	b.WriteString("\n")

	st := newTable("Scale", "Kind", "Domain", "Range", "Pad H", "Pad V", "Owners")
	for _, s := range snap.Scales {
		st.Row(s.Name, s.Kind, formatDomain(s), formatRange(s.Range),
			formatPad(s.PaddingH, s.AllowPadding), formatPad(s.PaddingV, s.AllowPadding),
			strings.Join(s.Owners, ", "))
	}
	b.WriteString(st.Render() + "\n")

	mt := newTable("Mark", "Type", "Orientation", "Groups", "Segments", "Scales", "Color", "Opacity")
	for _, mk := range snap.Marks {
		mt.Row(mk.Name, mk.Type, mk.Orientation,
			strconv.Itoa(len(mk.Groups)), strconv.Itoa(mk.SegmentCount()),
			formatScales(mk), mk.ColorScope, mk.OpacityScope)
	}
	b.WriteString(mt.Render() + "\n")

	if segments {
		for _, mk := range snap.Marks {
			b.WriteString("\n" + StyleTitle.Render(mk.Name) + "\n")
			t := newTable("Key", "Series", "Low", "High", "Raw", "Fill", "Opacity")
			for _, g := range mk.Groups {
				for _, s := range g.Segments {
					t.Row(formatOptional(g.Key), strconv.Itoa(s.Series),
						formatFloat(s.Low), formatFloat(s.High), formatOptional(s.Raw),
						s.Fill, formatFloat(s.Opacity))
				}
			}
			b.WriteString(t.Render() + "\n")
		}
	}
	return b.String()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatFloat(*v)
}

func formatDomain(s export.Scale) string {
	if len(s.Domain) == 0 {
		return "-"
	}
	parts := make([]string, len(s.Domain))
	for i, v := range s.Domain {
		parts[i] = formatFloat(v)
	}
	if s.Kind == "ordinal" {
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatRange(r [2]float64) string {
	return "[" + formatFloat(r[0]) + ", " + formatFloat(r[1]) + "]"
}

func formatPad(v *float64, allowed bool) string {
	if !allowed {
		return "off"
	}
	return formatOptional(v)
}

func formatScales(m export.Mark) string {
	var parts []string
	for _, p := range [][2]string{{"x", m.XScale}, {"y", m.YScale}, {"color", m.ColorScale}} {
		if p[1] != "" {
			parts = append(parts, p[0]+"="+p[1])
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
