package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner animates a braille frame while a command waits on the server.
// Exactly one of Stop, Success, or Fail ends it; later calls are no-ops
// so error paths can stop it without tracking state.
type Spinner struct {
	w        io.Writer
	message  string
	frames   []string
	interval time.Duration

	once sync.Once
	done chan struct{}
}

// NewSpinner creates a spinner that writes to w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:        w,
		message:  message,
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}
}

// Start begins the animation. It returns immediately.
func (s *Spinner) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			fmt.Fprintf(s.w, "\r%s %s", s.frames[i%len(s.frames)], s.message)
			select {
			case <-s.done:
				return
			case <-ticker.C:
			}
		}
	}()
}

// halt ends the animation once. It reports whether this call won.
func (s *Spinner) halt() bool {
	won := false
	s.once.Do(func() {
		close(s.done)
		won = true
	})
	return won
}

// Stop ends the spinner and clears its line.
func (s *Spinner) Stop() {
	if s.halt() {
		fmt.Fprint(s.w, "\r\033[K")
	}
}

// Success ends the spinner with a checkmark and message.
func (s *Spinner) Success(message string) {
	if s.halt() {
		fmt.Fprintf(s.w, "\r\033[K✓ %s\n", message)
	}
}

// Fail ends the spinner with a cross and message.
func (s *Spinner) Fail(message string) {
	if s.halt() {
		fmt.Fprintf(s.w, "\r\033[K✗ %s\n", message)
	}
}
