package metadata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/logger"
)

// createMinimalMP3 writes a single MPEG1 Layer3 frame header with padding.
func createMinimalMP3(t *testing.T, path string) {
	t.Helper()
	frame := make([]byte, 417)
	frame[0] = 0xff
	frame[1] = 0xfb
	frame[2] = 0x90
	frame[3] = 0x00
	require.NoError(t, os.WriteFile(path, frame, 0o600))
}

func createSilentWAV(t *testing.T, path string, d time.Duration) {
	t.Helper()
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, wav.Encode(f, generators.Silence(format.SampleRate.N(d)), format))
}

func TestReader_TaggedMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagged.mp3")
	createMinimalMP3(t, path)

	tg, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	tg.SetTitle("Test Title")
	tg.SetArtist("Test Artist")
	tg.SetAlbum("Test Album")
	require.NoError(t, tg.Save())
	require.NoError(t, tg.Close())

	info, err := NewReader(logger.NewTestLogger()).Read(domain.Track(path))
	require.NoError(t, err)
	assert.Equal(t, "Test Title", info.Title)
	assert.Equal(t, "Test Artist", info.Artist)
	assert.Equal(t, "Test Album", info.Album)
}

func TestReader_PartialTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.mp3")
	createMinimalMP3(t, path)

	tg, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	tg.SetArtist("Only Artist")
	require.NoError(t, tg.Save())
	require.NoError(t, tg.Close())

	info, err := NewReader(logger.NewTestLogger()).Read(domain.Track(path))
	require.NoError(t, err)
	assert.Equal(t, "partial.mp3", info.Title)
	assert.Equal(t, "Only Artist", info.Artist)
	assert.Equal(t, domain.UnknownAlbum, info.Album)
}

func TestReader_UntaggedWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "silence.wav")
	createSilentWAV(t, path, 2*time.Second)

	info, err := NewReader(logger.NewTestLogger()).Read(domain.Track(path))
	require.NoError(t, err)
	assert.Equal(t, Fallback(domain.Track(path)).Title, info.Title)
	assert.Equal(t, domain.UnknownArtist, info.Artist)
	assert.Equal(t, 2*time.Second, info.Duration)
}

func TestReader_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.flac")

	info, err := NewReader(logger.NewTestLogger()).Read(domain.Track(path))
	require.ErrorIs(t, err, domain.ErrFileNotFound)
	assert.Equal(t, domain.TrackInfo{
		Title:  "gone.flac",
		Artist: domain.UnknownArtist,
		Album:  domain.UnknownAlbum,
	}, info)
}

func TestReader_UndecodableKeepsZeroDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.ogg")
	require.NoError(t, os.WriteFile(path, []byte("not audio"), 0o600))

	info, err := NewReader(logger.NewTestLogger()).Read(domain.Track(path))
	require.NoError(t, err)
	assert.Zero(t, info.Duration)
	assert.Equal(t, "noise.ogg", info.Title)
}
