// Package beep provides a gopxl/beep adapter implementing the AudioEngine interface.
package beep

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/audio/decode"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// DefaultSampleRate is the rate the output device is opened at.
// Tracks recorded at other rates are resampled.
const DefaultSampleRate beep.SampleRate = 44100

// resampleQuality is passed to beep.Resample.
const resampleQuality = 4

// silentVolume is the beep volume used for level 0 (base 2, so 1/1024).
const silentVolume = -10

// Engine plays one track at a time through a beep Output.
//
// The mixer goroutine owned by the output reports the end of a track; the
// engine then publishes domain.MediaEndedEvent from a goroutine of its own.
//
// Thread-safety: This implementation is thread-safe via sync.Mutex.
type Engine struct {
	logger     *slog.Logger
	bus        ports.EventBus
	output     Output
	sampleRate beep.SampleRate

	mu          sync.Mutex
	initialized bool
	stream      *decode.Stream
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	loaded      string
	status      domain.PlaybackStatus
	level       int
	generation  uint64
	ended       sync.WaitGroup
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput replaces the speaker with another output.
func WithOutput(o Output) Option {
	return func(e *Engine) { e.output = o }
}

// WithSampleRate sets the device sample rate.
func WithSampleRate(sr beep.SampleRate) Option {
	return func(e *Engine) { e.sampleRate = sr }
}

// NewEngine creates a beep engine that publishes end-of-media events on bus.
func NewEngine(logger *slog.Logger, bus ports.EventBus, opts ...Option) *Engine {
	e := &Engine{
		logger:     logger,
		bus:        bus,
		output:     speakerOutput{},
		sampleRate: DefaultSampleRate,
		level:      domain.DefaultVolume,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize opens the output device with a 100ms buffer.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return domain.ErrAlreadyInitialized
	}
	if err := e.output.Init(e.sampleRate, e.sampleRate.N(time.Second/10)); err != nil {
		return domain.NewAudioEngineError("initialize", "", "failed to open output device", err)
	}
	e.initialized = true
	e.logger.Info("audio output ready", slog.Int("sample_rate", int(e.sampleRate)))
	return nil
}

// Shutdown stops playback and closes the output device.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	if !e.initialized {
		e.mu.Unlock()
		return domain.ErrNotInitialized
	}
	e.unloadLocked()
	e.output.Close()
	e.initialized = false
	e.mu.Unlock()

	e.ended.Wait()
	return nil
}

// LoadAndPlay decodes uri and starts it from the beginning.
func (e *Engine) LoadAndPlay(uri string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}

	e.unloadLocked()

	stream, err := decode.Open(uri)
	if err != nil {
		return domain.NewAudioEngineError("load", uri, "failed to decode track", err)
	}

	var source beep.Streamer = stream
	if stream.Format.SampleRate != e.sampleRate {
		source = beep.Resample(resampleQuality, stream.Format.SampleRate, e.sampleRate, stream)
	}

	e.generation++
	gen := e.generation
	e.stream = stream
	e.ctrl = &beep.Ctrl{Streamer: source}
	e.volume = &effects.Volume{Streamer: e.ctrl, Base: 2}
	e.applyVolumeLocked()
	e.loaded = uri
	e.status = domain.StatusPlaying

	e.output.Play(beep.Seq(e.volume, beep.Callback(func() {
		// Runs on the mixer goroutine with the output locked.
		e.ended.Add(1)
		go e.finish(gen)
	})))

	e.logger.Debug("playing", slog.String("uri", uri), slog.Duration("duration", stream.Duration()))
	return nil
}

// finish unloads a track that played to its end and announces it.
// Tracks that were replaced or stopped in the meantime are ignored.
func (e *Engine) finish(gen uint64) {
	defer e.ended.Done()

	e.mu.Lock()
	if gen != e.generation || e.stream == nil {
		e.mu.Unlock()
		return
	}
	uri := e.loaded
	e.closeStreamLocked()
	e.mu.Unlock()

	e.logger.Debug("track ended", slog.String("uri", uri))
	if e.bus != nil {
		e.bus.Publish(domain.NewMediaEndedEvent(domain.Track(uri)))
	}
}

// Pause pauses the loaded track.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ctrl == nil {
		return domain.ErrNoTrackLoaded
	}
	e.output.Lock()
	e.ctrl.Paused = true
	e.output.Unlock()
	e.status = domain.StatusPaused
	return nil
}

// Resume continues a paused track.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ctrl == nil {
		return domain.ErrNoTrackLoaded
	}
	e.output.Lock()
	e.ctrl.Paused = false
	e.output.Unlock()
	e.status = domain.StatusPlaying
	return nil
}

// Stop stops and unloads the current track. Safe when nothing is loaded.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.unloadLocked()
	return nil
}

// SetVolume maps 0-100 onto beep's base-2 volume scale.
func (e *Engine) SetVolume(volume int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.level = volume
	if e.volume != nil {
		e.output.Lock()
		e.applyVolumeLocked()
		e.output.Unlock()
	}
	return nil
}

// State returns the transport state.
func (e *Engine) State() domain.PlaybackStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Position returns the playback position of the loaded track.
func (e *Engine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stream == nil {
		return 0
	}
	e.output.Lock()
	pos := e.stream.Position()
	e.output.Unlock()
	return e.stream.Format.SampleRate.D(pos)
}

// Duration returns the length of the loaded track.
func (e *Engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stream == nil {
		return 0
	}
	return e.stream.Duration()
}

// Seek moves the playback position of the loaded track.
func (e *Engine) Seek(position time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stream == nil {
		return domain.ErrNoTrackLoaded
	}
	n := e.stream.Format.SampleRate.N(position)
	if n < 0 || n > e.stream.Len() {
		return domain.NewAudioEngineError("seek", e.loaded, "position out of range", nil)
	}

	e.output.Lock()
	err := e.stream.Seek(n)
	e.output.Unlock()
	if err != nil {
		return domain.NewAudioEngineError("seek", e.loaded, "seek failed", err)
	}
	return nil
}

func (e *Engine) unloadLocked() {
	if e.stream == nil {
		return
	}
	// Invalidate the pending end callback before clearing the mixer.
	e.generation++
	e.output.Clear()
	e.closeStreamLocked()
}

func (e *Engine) closeStreamLocked() {
	if err := e.stream.Close(); err != nil {
		e.logger.Warn("failed to close stream", slog.String("uri", e.loaded), slog.Any("error", err))
	}
	e.stream = nil
	e.ctrl = nil
	e.volume = nil
	e.loaded = ""
	e.status = domain.StatusStopped
}

func (e *Engine) applyVolumeLocked() {
	e.volume.Volume, e.volume.Silent = levelToVolume(e.level)
}

// levelToVolume converts 0-100 to beep's volume value.
// 100 maps to 0 (unchanged), 50 to -1 (half), 25 to -2 and so on.
func levelToVolume(level int) (volume float64, silent bool) {
	switch {
	case level <= 0:
		return silentVolume, true
	case level >= domain.MaxVolume:
		return 0, false
	}
	return math.Max(math.Log2(float64(level)/domain.MaxVolume), silentVolume), false
}

var _ ports.AudioEngine = (*Engine)(nil)
