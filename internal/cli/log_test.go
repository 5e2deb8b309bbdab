package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("relayout", "plot_width", 680)

	out := buf.String()
	if !regexp.MustCompile(`^\d\d:\d\d:\d\d\.\d\d `).MatchString(out) {
		t.Errorf("output %q does not start with an HH:MM:SS.cc timestamp", out)
	}
	for _, want := range []string{appName, "relayout", "plot_width=680"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level log.Level
		debug bool
	}{
		{log.InfoLevel, false},
		{log.DebugLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			newLogger(&buf, tt.level).Debug("relayout skipped", "reason", "unchanged")
			if got := buf.Len() > 0; got != tt.debug {
				t.Errorf("debug line written = %v, want %v", got, tt.debug)
			}
		})
	}
}

func TestCLISetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := &CLI{Logger: newLogger(&buf, log.InfoLevel)}
	c.SetLogLevel(log.DebugLevel)
	c.Logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("SetLogLevel(debug) did not enable debug output")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	p.done("Wrote 2 file(s)")

	if !regexp.MustCompile(`Wrote 2 file\(s\) \(\d+ms\)`).MatchString(buf.String()) {
		t.Errorf("output %q lacks the elapsed suffix", buf.String())
	}
}
