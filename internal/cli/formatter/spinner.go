package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// Spinner redraws one status line on w until stopped. Once a second has
// passed it also shows the elapsed time.
type Spinner struct {
	w       io.Writer
	message string
	started time.Time

	once sync.Once
	quit chan struct{}
	done chan struct{}
}

func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{w: w, message: message, quit: make(chan struct{}), done: make(chan struct{})}
}

func (s *Spinner) Start() {
	s.started = time.Now()
	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.done)
	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.quit:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
			fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(spinnerFrames[frame%len(spinnerFrames)]), s.line())
		}
	}
}

func (s *Spinner) line() string {
	elapsed := time.Since(s.started)
	if elapsed < time.Second {
		return Dim(s.message)
	}
	return Dim(fmt.Sprintf("%s %ds", s.message, int(elapsed.Seconds())))
}

// Stop clears the line and waits for the animation to end. Calling it
// again is a no-op.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.done
	})
}

// StartSpinner starts a spinner on w and returns its Stop.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
