package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandutsar/bqplot/pkg/pipeline"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("33")  // steel blue, the default bar fill
	colorGreen  = lipgloss.Color("35")
	colorAmber  = lipgloss.Color("214")
	colorRed    = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorAccent)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorAmber)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorAmber)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleHit         = lipgloss.NewStyle().Foreground(colorGreen)
	styleMiss        = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

// =============================================================================
// Status lines
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }

// =============================================================================
// Layout results
// =============================================================================

// printResult prints the output path of one chart, its summary line and a
// warning when the plot area collapsed.
func printResult(path string, res *pipeline.Result) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
	fmt.Println("    " + resultSummary(res))
	if l := res.Snapshot.Layout; l.Hidden {
		printWarning("%s: plot area is empty at %s", res.Snapshot.Chart, l.Size)
	}
}

// resultSummary renders "2 marks · 6 segments · layout hit · 1ms".
func resultSummary(res *pipeline.Result) string {
	sep := StyleDim.Render(" · ")
	parts := []string{
		StyleDim.Render(plural(res.Stats.Marks, "mark")),
		StyleDim.Render(plural(res.Stats.Segments, "segment")),
		cacheState("layout", res.CacheInfo.LayoutHit),
		cacheState("artifact", res.CacheInfo.ArtifactHit),
	}
	if !res.CacheInfo.LayoutHit {
		parts = append(parts, StyleDim.Render(res.Stats.BuildTime.Round(time.Microsecond).String()))
	}
	return strings.Join(parts, sep)
}

func cacheState(stage string, hit bool) string {
	if hit {
		return styleHit.Render(stage + " hit")
	}
	return styleMiss.Render(stage + " miss")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
