package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a "label done/total" line while a batch of charts is
// laid out. Advance may be called from the batch's worker goroutines.
type spinner struct {
	w     io.Writer
	label string
	total int

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once

	mu      sync.Mutex
	done    int
	frame   int
	width   int
	started bool
}

// newSpinner creates a spinner for total items. It stops drawing when ctx
// is cancelled.
func newSpinner(ctx context.Context, w io.Writer, label string, total int) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &spinner{
		w:       w,
		label:   label,
		total:   total,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-ticker.C:
				s.mu.Lock()
				s.frame++
				s.draw()
				s.mu.Unlock()
			}
		}
	}()
}

// Advance records one completed item and redraws. It matches the
// signature of pipeline.Options.Progress.
func (s *spinner) Advance(done, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = max(s.done, done)
	s.total = total
	if s.started && s.ctx.Err() == nil {
		s.draw()
	}
}

// Done returns the highest completion count reported so far.
func (s *spinner) Done() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// line renders the current status. Callers hold mu.
func (s *spinner) line() string {
	frame := spinnerFrames[s.frame%len(spinnerFrames)]
	count := fmt.Sprintf("%d/%d", s.done, s.total)
	return styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.label) + " " + StyleNumber.Render(count)
}

// draw overwrites the current line. Callers hold mu.
func (s *spinner) draw() {
	l := s.line()
	s.width = max(s.width, len(l))
	fmt.Fprintf(s.w, "\r%s", l)
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// Stop halts the animation and clears the line. It is safe to call more
// than once and before Start.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if started {
			<-s.stopped
		}
		s.clear()
	})
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *spinner) StopWithSuccess(format string, args ...any) {
	s.Stop()
	printSuccess(format, args...)
}

// StopWithError stops the spinner and prints an error line.
func (s *spinner) StopWithError(format string, args ...any) {
	s.Stop()
	printError(format, args...)
}
