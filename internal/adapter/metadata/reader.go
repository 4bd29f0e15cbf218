// Package metadata reads display information from audio files.
package metadata

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/audio/decode"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// Reader extracts title, artist, album and duration from audio files.
//
// Tags come from dhowden/tag. MP3 files whose tags it cannot parse are
// retried with id3v2, which is more forgiving about malformed frames.
// The duration is measured by decoding the stream header.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a metadata reader.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logger}
}

// Fallback returns the information shown for a track without usable tags.
func Fallback(track domain.Track) domain.TrackInfo {
	return domain.TrackInfo{
		Title:  filepath.Base(track.String()),
		Artist: domain.UnknownArtist,
		Album:  domain.UnknownAlbum,
	}
}

// Read returns the track's display information.
// A file without tags is not an error: missing fields keep their fallback.
// A file that cannot be opened returns the fallback along with the error.
func (r *Reader) Read(track domain.Track) (domain.TrackInfo, error) {
	info := Fallback(track)
	path := track.String()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return info, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	switch {
	case err == nil:
		apply(&info, m.Title(), m.Artist(), m.Album())
	case errors.Is(err, tag.ErrNoTagsFound):
		r.logger.Debug("no tags found", slog.String("track", path))
	case strings.EqualFold(filepath.Ext(path), ".mp3"):
		if ferr := readID3v2(path, &info); ferr != nil {
			r.logger.Debug("id3v2 fallback failed", slog.String("track", path), slog.Any("error", ferr))
		}
	default:
		r.logger.Debug("unreadable tags", slog.String("track", path), slog.Any("error", err))
	}

	if decode.Supported(path) {
		stream, err := decode.Open(path)
		if err != nil {
			r.logger.Debug("duration probe failed", slog.String("track", path), slog.Any("error", err))
			return info, nil
		}
		info.Duration = stream.Duration()
		_ = stream.Close()
	}

	return info, nil
}

func readID3v2(path string, info *domain.TrackInfo) error {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer t.Close()

	apply(info, t.Title(), t.Artist(), t.Album())
	return nil
}

func apply(info *domain.TrackInfo, title, artist, album string) {
	if v := strings.TrimSpace(title); v != "" {
		info.Title = v
	}
	if v := strings.TrimSpace(artist); v != "" {
		info.Artist = v
	}
	if v := strings.TrimSpace(album); v != "" {
		info.Album = v
	}
}

var _ ports.MetadataReader = (*Reader)(nil)
