package commands

import (
	"fmt"
	"io"
	"sync"
	"time"

	bubblespinner "github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// spinner draws a bubbles spinner on a plain writer while a one-shot
// request is in flight. It runs outside a tea.Program, so it ticks itself.
type spinner struct {
	w       io.Writer
	message string
	frames  bubblespinner.Spinner
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

var (
	spinnerFrameStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	spinnerTextStyle  = lipgloss.NewStyle().Foreground(colorText)
	spinnerDoneStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
)

func newSpinner(w io.Writer, message string) *spinner {
	return &spinner{
		w:       w,
		message: message,
		frames:  bubblespinner.MiniDot,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.frames.FPS)
		defer ticker.Stop()

		fmt.Fprint(s.w, "\033[?25l") // hide cursor
		for frame := 0; ; frame++ {
			fmt.Fprintf(s.w, "\r\033[K%s %s",
				spinnerFrameStyle.Render(s.frames.Frames[frame%len(s.frames.Frames)]),
				spinnerTextStyle.Render(s.message+"..."))

			select {
			case <-s.stop:
				fmt.Fprint(s.w, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
			}
		}
	}()
}

func (s *spinner) halt() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

func (s *spinner) stopWithSuccess(message string) {
	s.halt()
	fmt.Fprintln(s.w, spinnerDoneStyle.Render("✓ "+message))
}

func (s *spinner) stopWithError() {
	s.halt()
}
