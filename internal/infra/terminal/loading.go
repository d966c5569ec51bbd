package terminal

import (
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Spinner implements the analysis.Loading port for the terminal. Show and
// Hide are reference-counted: overlapping submissions share one spinner,
// which stays up until the last one settles.
type Spinner struct {
	mu     sync.Mutex
	active int
	bar    *progressbar.ProgressBar
	stop   chan struct{}
}

func NewSpinner() *Spinner { return &Spinner{} }

func (s *Spinner) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active++
	if s.active > 1 {
		return
	}

	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Analyzing media..."),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	s.stop = make(chan struct{})

	go func(bar *progressbar.ProgressBar, stop chan struct{}) {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				bar.Add(1)
			case <-stop:
				return
			}
		}
	}(s.bar, s.stop)
}

func (s *Spinner) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == 0 {
		return
	}
	s.active--
	if s.active > 0 {
		return
	}

	close(s.stop)
	s.bar.Finish()
	s.bar = nil
}
