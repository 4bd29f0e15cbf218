// Package decode opens audio files as beep streamers.
// It is shared by the playback engine and the metadata reader so both agree
// on which files are playable.
package decode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
)

// Extensions lists the file extensions that can be decoded.
var Extensions = []string{".mp3", ".flac", ".wav", ".ogg"}

// Supported reports whether path has a decodable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Stream is a decoded file. Closing it also closes the file.
type Stream struct {
	beep.StreamSeekCloser
	Format beep.Format

	file *os.File
}

// Duration returns the total length of the stream.
func (s *Stream) Duration() time.Duration {
	return s.Format.SampleRate.D(s.Len())
}

// Close closes the decoder and the underlying file.
func (s *Stream) Close() error {
	err := s.StreamSeekCloser.Close()
	if ferr := s.file.Close(); ferr != nil && !errors.Is(ferr, os.ErrClosed) {
		err = errors.Join(err, ferr)
	}
	return err
}

// Open decodes the file at path, picking the decoder by extension.
func Open(path string) (*Stream, error) {
	if path == "" {
		return nil, domain.ErrFileNotFound
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	return &Stream{StreamSeekCloser: streamer, Format: format, file: f}, nil
}
