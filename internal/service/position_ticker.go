package service

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// DefaultTickInterval is how often the position display refreshes.
const DefaultTickInterval = time.Second

// ProgressSource exposes the session and the engine position.
// *Orchestrator implements it.
type ProgressSource interface {
	Session() domain.PlaybackSession
	Progress() (position, duration time.Duration)
}

// PositionTicker refreshes the position text and slider while a track is
// loaded. Ticks happen on a goroutine of their own; the refresh itself is
// handed to the scheduler so it runs on the logic thread.
type PositionTicker struct {
	logger   *slog.Logger
	clock    clockwork.Clock
	interval time.Duration
	sched    ports.Scheduler
	source   ProgressSource
	view     ports.NowPlayingView

	dragging atomic.Bool

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	done      chan struct{}
}

// NewPositionTicker creates a ticker. A nil clock means the real clock and
// a non-positive interval means DefaultTickInterval.
func NewPositionTicker(
	logger *slog.Logger,
	clock clockwork.Clock,
	interval time.Duration,
	sched ports.Scheduler,
	source ProgressSource,
	view ports.NowPlayingView,
) *PositionTicker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &PositionTicker{
		logger:   logger,
		clock:    clock,
		interval: interval,
		sched:    sched,
		source:   source,
		view:     view,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins ticking. Calling it more than once has no effect.
func (t *PositionTicker) Start() {
	t.startOnce.Do(func() {
		ticker := t.clock.NewTicker(t.interval)
		go t.run(ticker)
	})
}

// Stop ends ticking and waits for the ticker goroutine to exit.
func (t *PositionTicker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
	})
	// A ticker that never started has no goroutine to close done.
	t.startOnce.Do(func() { close(t.done) })
	<-t.done
}

// SetDragging suspends refreshes while the user holds the position slider.
func (t *PositionTicker) SetDragging(dragging bool) {
	t.dragging.Store(dragging)
}

func (t *PositionTicker) run(ticker clockwork.Ticker) {
	defer close(t.done)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.Chan():
			t.sched.Do(t.Refresh)
		}
	}
}

// Refresh updates the display once. It must run on the logic thread.
func (t *PositionTicker) Refresh() {
	if t.dragging.Load() {
		return
	}
	if t.source.Session().Status == domain.StatusStopped {
		return
	}
	position, duration := t.source.Progress()
	t.view.SetPosition(domain.FormatPosition(position, duration), fraction(position, duration))
}

// fraction returns position/duration clamped to [0, 1].
func fraction(position, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	f := float64(position) / float64(duration)
	return min(max(f, 0), 1)
}

// scale returns fraction of d.
func scale(d time.Duration, fraction float64) time.Duration {
	return time.Duration(float64(d) * fraction)
}
