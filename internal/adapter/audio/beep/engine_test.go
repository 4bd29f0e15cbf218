package beep

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/logger"
	"github.com/tejashwikalptaru/beetbox/internal/testutil"
)

// manualOutput mixes only when the test pulls samples.
type manualOutput struct {
	mu        sync.Mutex
	streamers []beep.Streamer
	initErr   error
	inits     int
	closed    bool
}

func (o *manualOutput) Init(beep.SampleRate, int) error {
	o.inits++
	return o.initErr
}

func (o *manualOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.streamers = append(o.streamers, s)
}

func (o *manualOutput) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.streamers = nil
}

func (o *manualOutput) Lock()   { o.mu.Lock() }
func (o *manualOutput) Unlock() { o.mu.Unlock() }
func (o *manualOutput) Close()  { o.closed = true }

// pull mixes d worth of samples at rate, dropping finished streamers.
func (o *manualOutput) pull(rate beep.SampleRate, d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	buf := make([][2]float64, rate.N(d))
	kept := o.streamers[:0]
	for _, s := range o.streamers {
		if n, ok := s.Stream(buf); ok && n == len(buf) {
			kept = append(kept, s)
		}
	}
	o.streamers = kept
}

func writeWAV(t *testing.T, name string, rate beep.SampleRate, d time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, generators.Silence(rate.N(d)), format))
	return path
}

func newTestEngine(t *testing.T) (*Engine, *manualOutput, *eventbus.SyncEventBus) {
	t.Helper()
	bus := eventbus.NewSyncEventBus(logger.NewTestLogger())
	out := &manualOutput{}
	e := NewEngine(logger.NewTestLogger(), bus, WithOutput(out))
	require.NoError(t, e.Initialize())
	t.Cleanup(func() {
		if e.initialized {
			_ = e.Shutdown()
		}
	})
	return e, out, bus
}

func TestEngine_Initialize(t *testing.T) {
	e, out, _ := newTestEngine(t)

	assert.ErrorIs(t, e.Initialize(), domain.ErrAlreadyInitialized)
	assert.Equal(t, 1, out.inits)

	require.NoError(t, e.Shutdown())
	assert.True(t, out.closed)
	assert.ErrorIs(t, e.Shutdown(), domain.ErrNotInitialized)
	assert.ErrorIs(t, e.LoadAndPlay("x.wav"), domain.ErrNotInitialized)
}

func TestEngine_InitializeFailure(t *testing.T) {
	out := &manualOutput{initErr: errors.New("no device")}
	e := NewEngine(logger.NewTestLogger(), nil, WithOutput(out))

	var engErr *domain.AudioEngineError
	require.ErrorAs(t, e.Initialize(), &engErr)
	assert.Equal(t, "initialize", engErr.Op)
}

func TestEngine_PlaybackLifecycle(t *testing.T) {
	e, out, _ := newTestEngine(t)
	path := writeWAV(t, "one.wav", DefaultSampleRate, 2*time.Second)

	require.NoError(t, e.LoadAndPlay(path))
	assert.Equal(t, domain.StatusPlaying, e.State())
	assert.Equal(t, 2*time.Second, e.Duration())

	out.pull(DefaultSampleRate, 500*time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, e.Position())

	require.NoError(t, e.Pause())
	assert.Equal(t, domain.StatusPaused, e.State())
	out.pull(DefaultSampleRate, 500*time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, e.Position(), "paused tracks do not advance")

	require.NoError(t, e.Resume())
	require.NoError(t, e.Seek(1500*time.Millisecond))
	assert.Equal(t, 1500*time.Millisecond, e.Position())

	require.NoError(t, e.Stop())
	assert.Equal(t, domain.StatusStopped, e.State())
	assert.Zero(t, e.Duration())
	assert.Empty(t, out.streamers)
	require.NoError(t, e.Stop(), "stopping twice is fine")
}

func TestEngine_NoTrackLoaded(t *testing.T) {
	e, _, _ := newTestEngine(t)

	assert.ErrorIs(t, e.Pause(), domain.ErrNoTrackLoaded)
	assert.ErrorIs(t, e.Resume(), domain.ErrNoTrackLoaded)
	assert.ErrorIs(t, e.Seek(time.Second), domain.ErrNoTrackLoaded)
	assert.Zero(t, e.Position())
}

func TestEngine_LoadFailures(t *testing.T) {
	e, _, _ := newTestEngine(t)

	err := e.LoadAndPlay(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	err = e.LoadAndPlay("cover.png")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Equal(t, domain.StatusStopped, e.State())
}

func TestEngine_SeekOutOfRange(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay(writeWAV(t, "one.wav", DefaultSampleRate, time.Second)))

	var engErr *domain.AudioEngineError
	assert.ErrorAs(t, e.Seek(5*time.Second), &engErr)
	assert.Error(t, e.Seek(-time.Second))
}

func TestEngine_MediaEnded(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	e, out, bus := newTestEngine(t)
	ended := make(chan domain.Track, 1)
	bus.Subscribe(domain.EventMediaEnded, func(ev domain.Event) {
		ended <- ev.(domain.MediaEndedEvent).Track
	})

	path := writeWAV(t, "short.wav", DefaultSampleRate, 200*time.Millisecond)
	require.NoError(t, e.LoadAndPlay(path))
	out.pull(DefaultSampleRate, time.Second)

	select {
	case track := <-ended:
		assert.Equal(t, domain.Track(path), track)
	case <-time.After(2 * time.Second):
		t.Fatal("media ended was not published")
	}
	assert.Equal(t, domain.StatusStopped, e.State())
	require.NoError(t, e.Shutdown())
}

func TestEngine_ReplacedTrackDoesNotEnd(t *testing.T) {
	e, out, bus := newTestEngine(t)
	var ended []domain.Track
	bus.Subscribe(domain.EventMediaEnded, func(ev domain.Event) {
		ended = append(ended, ev.(domain.MediaEndedEvent).Track)
	})

	first := writeWAV(t, "first.wav", DefaultSampleRate, time.Second)
	second := writeWAV(t, "second.wav", 22050, time.Second)
	require.NoError(t, e.LoadAndPlay(first))
	require.NoError(t, e.LoadAndPlay(second))
	assert.Len(t, out.streamers, 1)
	assert.Equal(t, time.Second, e.Duration(), "resampled tracks report their own length")

	require.NoError(t, e.Shutdown())
	assert.Empty(t, ended)
}

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level  int
		volume float64
		silent bool
	}{
		{0, silentVolume, true},
		{-5, silentVolume, true},
		{100, 0, false},
		{150, 0, false},
		{50, -1, false},
		{25, -2, false},
	}
	for _, tt := range tests {
		v, silent := levelToVolume(tt.level)
		assert.InDelta(t, tt.volume, v, 1e-9, "level %d", tt.level)
		assert.Equal(t, tt.silent, silent, "level %d", tt.level)
	}

	e, _, _ := newTestEngine(t)
	require.NoError(t, e.SetVolume(50))
	assert.Equal(t, 50, e.level)
}
