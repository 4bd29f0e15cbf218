package decode

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"song.MP3", true},
		{"song.flac", true},
		{"song.wav", true},
		{"song.ogg", true},
		{"song.m4a", false},
		{"song", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Supported(tt.path), tt.path)
	}
}

func TestOpen_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	format := beep.Format{SampleRate: 22050, NumChannels: 1, Precision: 2}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, wav.Encode(f, generators.Silence(format.SampleRate.N(time.Second)), format))
	require.NoError(t, f.Close())

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, s.Duration())
	assert.Equal(t, format.SampleRate, s.Format.SampleRate)
	assert.NoError(t, s.Close())
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open("")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	_, err = Open(filepath.Join(dir, "missing.mp3"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	_, err = Open(filepath.Join(dir, "cover.jpg"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	bad := filepath.Join(dir, "bad.wav")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o600))
	_, err = Open(bad)
	assert.Error(t, err)
}
