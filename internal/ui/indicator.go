package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// Indicator is the spinner shown during long-running daemon calls.
// Transfers update its suffix with the current phase; the logger pauses it
// around log lines so output doesn't interleave with the redraw.

const indicatorDefaultText = "Processing..."

type Indicator struct {
	mu sync.Mutex
	s  *spinner.Spinner
}

var (
	globalIndicator *Indicator
	indicatorOnce   sync.Once
)

// GetIndicator returns the singleton indicator instance.
func GetIndicator() *Indicator {
	indicatorOnce.Do(func() {
		globalIndicator = &Indicator{}
		globalIndicator.s = spinner.New(spinner.CharSets[14],
			100*time.Millisecond,
			spinner.WithWriter(os.Stderr))
		globalIndicator.s.Color("fgHiCyan", "bold")
	})
	return globalIndicator
}

func (i *Indicator) IsActive() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.s != nil && i.s.Active()
}

func (i *Indicator) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.s != nil && i.s.Active() {
		i.s.Stop()
	}
}

// Start begins spinning with the given suffix text. Restarting while active
// resets the spinner to guarantee a fresh redraw.
func (i *Indicator) Start(text string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if text == "" {
		text = indicatorDefaultText
	}
	if i.s.Active() {
		i.s.Stop()
	}
	i.s.Lock()
	i.s.Suffix = fmt.Sprintf(" %s", text)
	i.s.Unlock()
	i.s.Start()
}

// Update swaps the suffix text without restarting the spinner animation.
func (i *Indicator) Update(text string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.s.Lock()
	i.s.Suffix = fmt.Sprintf(" %s", text)
	i.s.Unlock()
	if !i.s.Active() {
		i.s.Start()
	}
}
