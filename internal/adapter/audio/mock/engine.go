// Package mock provides an in-memory implementation of the AudioEngine interface.
// It is used by tests and by the "mock" audio backend, which runs the player
// without an output device.
package mock

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// DefaultDuration is the length given to every track unless overridden.
const DefaultDuration = 3 * time.Minute

// Engine simulates playback in memory and records every command it receives.
//
// Thread-safety: This implementation is thread-safe.
type Engine struct {
	logger *slog.Logger
	bus    ports.EventBus

	mu          sync.RWMutex
	initialized bool
	loaded      string
	status      domain.PlaybackStatus
	position    time.Duration
	volume      int
	durations   map[string]time.Duration
	calls       []string

	// Behavior configuration (for testing error scenarios)
	failInitialize bool
	failLoad       map[string]bool
	failLoadAll    bool
	failStop       bool
}

// NewEngine creates a new mock audio engine that publishes end-of-media
// events on bus.
func NewEngine(bus ports.EventBus) *Engine {
	return &Engine{
		bus:       bus,
		logger:    slog.New(slog.DiscardHandler),
		durations: make(map[string]time.Duration),
		failLoad:  make(map[string]bool),
		volume:    domain.DefaultVolume,
	}
}

// SetLogger sets the logger for this engine.
func (m *Engine) SetLogger(logger *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

// SetFailInitialize configures the mock to fail initialization.
func (m *Engine) SetFailInitialize(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failInitialize = fail
}

// SetFailLoad configures the mock to fail loading every track.
func (m *Engine) SetFailLoad(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoadAll = fail
}

// SetFailLoadFor configures the mock to fail loading one track.
func (m *Engine) SetFailLoadFor(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad[uri] = true
}

// SetFailStop configures the mock to report an error from Stop.
func (m *Engine) SetFailStop(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failStop = fail
}

// SetDuration overrides the length reported for uri.
func (m *Engine) SetDuration(uri string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[uri] = d
}

func (m *Engine) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

// Initialize marks the engine ready.
func (m *Engine) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInitialize {
		return domain.NewAudioEngineError("initialize", "", "mock initialization failed", nil)
	}
	if m.initialized {
		return domain.ErrAlreadyInitialized
	}
	m.initialized = true
	return nil
}

// Shutdown unloads the current track.
func (m *Engine) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}
	m.initialized = false
	m.loaded = ""
	m.status = domain.StatusStopped
	return nil
}

// IsInitialized returns true if the engine is initialized.
func (m *Engine) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// LoadAndPlay replaces the loaded track and starts it.
func (m *Engine) LoadAndPlay(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("load_and_play %s", uri)

	if !m.initialized {
		return domain.ErrNotInitialized
	}
	if uri == "" {
		return domain.ErrFileNotFound
	}
	if m.failLoadAll || m.failLoad[uri] {
		return domain.NewAudioEngineError("load", uri, "mock load failed", nil)
	}

	m.loaded = uri
	m.position = 0
	m.status = domain.StatusPlaying
	m.logger.Debug("mock playing", slog.String("uri", uri))
	return nil
}

// Pause pauses a playing track.
func (m *Engine) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("pause")
	if m.loaded == "" {
		return domain.ErrNoTrackLoaded
	}
	if m.status == domain.StatusPlaying {
		m.status = domain.StatusPaused
	}
	return nil
}

// Resume continues a paused track.
func (m *Engine) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("resume")
	if m.loaded == "" {
		return domain.ErrNoTrackLoaded
	}
	if m.status == domain.StatusPaused {
		m.status = domain.StatusPlaying
	}
	return nil
}

// Stop unloads the current track. Safe when nothing is loaded.
func (m *Engine) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("stop")
	m.loaded = ""
	m.position = 0
	m.status = domain.StatusStopped
	if m.failStop {
		return domain.NewAudioEngineError("stop", "", "mock stop failed", nil)
	}
	return nil
}

// SetVolume stores the volume as given.
func (m *Engine) SetVolume(volume int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("set_volume %d", volume)
	m.volume = volume
	return nil
}

// Volume returns the last volume set.
func (m *Engine) Volume() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// State returns the simulated transport state.
func (m *Engine) State() domain.PlaybackStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Loaded returns the loaded track, empty when stopped.
func (m *Engine) Loaded() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// Position returns the simulated position.
func (m *Engine) Position() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position
}

// Duration returns the length of the loaded track, zero when stopped.
func (m *Engine) Duration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.durationLocked()
}

func (m *Engine) durationLocked() time.Duration {
	if m.loaded == "" {
		return 0
	}
	if d, ok := m.durations[m.loaded]; ok {
		return d
	}
	return DefaultDuration
}

// Seek moves the simulated position.
func (m *Engine) Seek(position time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("seek %s", position)
	if m.loaded == "" {
		return domain.ErrNoTrackLoaded
	}
	if position < 0 || position > m.durationLocked() {
		return domain.NewAudioEngineError("seek", m.loaded, "position out of range", nil)
	}
	m.position = position
	return nil
}

// Calls returns the commands received so far, oldest first.
func (m *Engine) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.calls...)
}

// ResetCalls forgets the recorded commands.
func (m *Engine) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// SimulateProgress advances a playing track by delta. Reaching the end
// stops the track and publishes domain.MediaEndedEvent, like a real engine.
func (m *Engine) SimulateProgress(delta time.Duration) error {
	m.mu.Lock()
	if m.status != domain.StatusPlaying {
		m.mu.Unlock()
		return fmt.Errorf("track is not playing")
	}

	m.position += delta
	if m.position < m.durationLocked() {
		m.mu.Unlock()
		return nil
	}

	ended := m.loaded
	m.loaded = ""
	m.position = 0
	m.status = domain.StatusStopped
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(domain.NewMediaEndedEvent(domain.Track(ended)))
	}
	return nil
}

var _ ports.AudioEngine = (*Engine)(nil)
