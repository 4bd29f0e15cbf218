// Package prefs implements ports.TrackStore on top of Fyne preferences.
// Each table is stored as a JSON array under "table.<name>"; the table
// names are kept under "table._names". It suits small libraries and runs
// where no database file is wanted.
package prefs

import (
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

const namesKey = "table._names"

// Store implements ports.TrackStore using Fyne preferences.
//
// Thread-safe: All operations protected by sync.RWMutex.
type Store struct {
	prefs  fyne.Preferences
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewStore creates a store over prefs and makes sure the favourites table exists.
// The preferences parameter should be obtained from fyne.CurrentApp().Preferences().
func NewStore(prefs fyne.Preferences, logger *slog.Logger) (*Store, error) {
	s := &Store{prefs: prefs, logger: logger}
	if err := s.CreateTable(domain.FavouritesTable); err != nil {
		return nil, err
	}
	return s, nil
}

func tableKey(name string) string {
	return "table." + name
}

// CreateTable creates an empty table.
func (s *Store) CreateTable(name string) error {
	if err := domain.ValidateTableName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := s.loadNames()
	if err != nil {
		return err
	}
	if slices.Contains(names, name) {
		return nil
	}
	if err := s.saveTracks(name, nil); err != nil {
		return err
	}
	return s.saveNames(append(names, name))
}

// DeleteTable drops a table.
func (s *Store) DeleteTable(name string) error {
	if err := domain.ValidateTableName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := s.loadNames()
	if err != nil {
		return err
	}
	s.prefs.RemoveValue(tableKey(name))
	return s.saveNames(slices.DeleteFunc(names, func(n string) bool { return n == name }))
}

// ListTables returns the table names in creation order.
func (s *Store) ListTables() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadNames()
}

// HasTable reports whether a table exists.
func (s *Store) HasTable(name string) (bool, error) {
	if err := domain.ValidateTableName(name); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := s.loadNames()
	if err != nil {
		return false, err
	}
	return slices.Contains(names, name), nil
}

// Insert appends a track to a table.
func (s *Store) Insert(table string, track domain.Track) error {
	if err := domain.ValidateTableName(table); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tracks, err := s.loadTracks(table)
	if err != nil {
		return err
	}
	if slices.Contains(tracks, track) {
		return domain.NewRepositoryError("insert", table, "track already present", domain.ErrDuplicateTrack)
	}
	return s.saveTracks(table, append(tracks, track))
}

// Delete removes a track from a table.
func (s *Store) Delete(table string, track domain.Track) error {
	if err := domain.ValidateTableName(table); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tracks, err := s.loadTracks(table)
	if err != nil {
		return err
	}
	return s.saveTracks(table, slices.DeleteFunc(tracks, func(t domain.Track) bool { return t == track }))
}

// DeleteAll empties a table.
func (s *Store) DeleteAll(table string) error {
	if err := domain.ValidateTableName(table); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.loadTracks(table); err != nil {
		return err
	}
	return s.saveTracks(table, nil)
}

// FetchAll returns the tracks of a table in insertion order.
func (s *Store) FetchAll(table string) ([]domain.Track, error) {
	if err := domain.ValidateTableName(table); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadTracks(table)
}

// Close is a no-op; preferences are saved by Fyne.
func (s *Store) Close() error {
	return nil
}

// loadNames loads the table names.
// Must be called with lock held.
func (s *Store) loadNames() ([]string, error) {
	data := s.prefs.String(namesKey)
	if data == "" {
		return []string{}, nil
	}
	var names []string
	if err := json.Unmarshal([]byte(data), &names); err != nil {
		return nil, domain.NewRepositoryError("list_tables", "", "failed to unmarshal table names", err)
	}
	return names, nil
}

// saveNames saves the table names.
// Must be called with lock held.
func (s *Store) saveNames(names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return domain.NewRepositoryError("save_names", "", "failed to marshal table names", err)
	}
	s.prefs.SetString(namesKey, string(data))
	return nil
}

// loadTracks loads a table, failing with domain.ErrTableNotFound when it
// does not exist.
// Must be called with lock held.
func (s *Store) loadTracks(table string) ([]domain.Track, error) {
	names, err := s.loadNames()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(names, table) {
		return nil, domain.NewRepositoryError("load", table, "no such table", domain.ErrTableNotFound)
	}

	data := s.prefs.String(tableKey(table))
	if data == "" {
		return []domain.Track{}, nil
	}
	var tracks []domain.Track
	if err := json.Unmarshal([]byte(data), &tracks); err != nil {
		s.logger.Warn("table corrupted", slog.String("table", table), slog.Any("error", err))
		return nil, domain.NewRepositoryError("load", table, "failed to unmarshal tracks", err)
	}
	return tracks, nil
}

// saveTracks saves a table.
// Must be called with lock held.
func (s *Store) saveTracks(table string, tracks []domain.Track) error {
	if tracks == nil {
		tracks = []domain.Track{}
	}
	data, err := json.Marshal(tracks)
	if err != nil {
		return domain.NewRepositoryError("save", table, "failed to marshal tracks", err)
	}
	s.prefs.SetString(tableKey(table), string(data))
	return nil
}

// Verify interface implementation
var _ ports.TrackStore = (*Store)(nil)
