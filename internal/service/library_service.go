package service

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
)

// DefaultExtensions are the file types the beep engine can decode.
var DefaultExtensions = []string{".mp3", ".flac", ".wav", ".ogg"}

// LibraryService loads audio files into the loaded-songs page.
type LibraryService struct {
	// Dependencies (injected)
	logger *slog.Logger
	lists  *ListGateway

	// Configuration
	supportedExts []string
}

// NewLibraryService creates a new library service accepting the given
// extensions (case-insensitive, with the leading dot). No extensions
// means DefaultExtensions.
func NewLibraryService(logger *slog.Logger, lists *ListGateway, extensions []string) *LibraryService {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &LibraryService{
		logger: logger,
		lists:  lists,
		supportedExts: lo.Map(extensions, func(ext string, _ int) string {
			return strings.ToLower(ext)
		}),
	}
}

// IsSupported reports whether path has a supported extension.
func (s *LibraryService) IsSupported(path string) bool {
	return slices.Contains(s.supportedExts, strings.ToLower(filepath.Ext(path)))
}

// AddFiles appends the supported files among paths to the loaded songs
// and returns how many rows were added. Nothing usable fails with
// domain.ErrNothingChosen.
func (s *LibraryService) AddFiles(paths []string) (int, error) {
	tracks := lo.FilterMap(paths, func(p string, _ int) (domain.Track, bool) {
		return domain.Track(p), p != "" && s.IsSupported(p)
	})
	return s.append(tracks)
}

// AddFolder scans dir recursively and appends every supported file.
func (s *LibraryService) AddFolder(ctx context.Context, dir string) (int, error) {
	if dir == "" {
		return 0, domain.ErrNothingChosen
	}
	tracks, err := s.ScanFolder(ctx, dir)
	if err != nil {
		return 0, err
	}
	return s.append(tracks)
}

// ScanFolder returns the supported files below dir in lexical order.
// Unreadable subdirectories are skipped.
func (s *LibraryService) ScanFolder(ctx context.Context, dir string) ([]domain.Track, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrFileNotFound
		}
		return nil, domain.NewServiceError("LibraryService", "scan", "cannot read folder", err)
	}
	if !info.IsDir() {
		return nil, domain.NewServiceError("LibraryService", "scan", dir+" is not a folder", nil)
	}

	var tracks []domain.Track
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			s.logger.Debug("skipping unreadable path", slog.String("path", path), slog.Any("error", err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && s.IsSupported(path) {
			tracks = append(tracks, domain.Track(path))
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewServiceError("LibraryService", "scan", "scan aborted", err)
	}

	s.logger.Debug("folder scanned", slog.String("dir", dir), slog.Int("tracks", len(tracks)))
	return tracks, nil
}

func (s *LibraryService) append(tracks []domain.Track) (int, error) {
	if len(tracks) == 0 {
		return 0, domain.ErrNothingChosen
	}
	list, ok := s.lists.List(domain.PageSongs)
	if !ok {
		return 0, domain.NewServiceError("LibraryService", "add", "no songs page", nil)
	}

	before := list.Len()
	list.Append(tracks...)
	added := list.Len() - before
	s.logger.Info("songs loaded", slog.Int("added", added))
	return added, nil
}
