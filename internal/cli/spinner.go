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

// spinner animates a one-line progress indicator until stopped or until
// its context is cancelled.
type spinner struct {
	w       io.Writer
	message string
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

// startSpinner writes frames to w every 80ms. The caller must call stop.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{w: w, message: message, cancel: cancel, stopped: make(chan struct{})}

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			fmt.Fprintf(s.w, "\r%s %s", styleLive.Render(spinnerFrames[i%len(spinnerFrames)]), styleMuted.Render(s.message))
			select {
			case <-ctx.Done():
				fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// stop ends the animation and clears the line. It is safe to call twice.
func (s *spinner) stop() {
	s.once.Do(s.cancel)
	<-s.stopped
}
