package fyne

import (
	fyneapp "fyne.io/fyne/v2"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// Scheduler runs functions on the Fyne main goroutine, which is the logic
// thread of the windowed player.
type Scheduler struct{}

// Do queues fn on the main goroutine without waiting for it.
func (Scheduler) Do(fn func()) {
	fyneapp.Do(fn)
}

var _ ports.Scheduler = Scheduler{}
