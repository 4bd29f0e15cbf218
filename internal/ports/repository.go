// Package ports define repository interfaces for data persistence abstraction.
// These interfaces enable the repository pattern and allow swapping persistence mechanisms.
package ports

import (
	"github.com/tejashwikalptaru/beetbox/internal/domain"
)

// TrackStore is a keyed-table store of tracks.
// Every playlist and the favourites list is one table holding unique tracks.
// The loaded-songs list is never persisted.
//
// Table names are validated before any statement is built; a rejected name
// fails with domain.ErrInvalidTableName. Failures are returned as
// *domain.RepositoryError wrapping the cause.
//
// Implementations are accessed from the single logic thread, but must
// tolerate concurrent readers.
type TrackStore interface {
	// CreateTable creates an empty table. Creating an existing table is a no-op.
	CreateTable(name string) error

	// DeleteTable drops a table and its tracks. Dropping a missing table is a no-op.
	DeleteTable(name string) error

	// ListTables returns the names of all tables, favourites included.
	ListTables() ([]string, error)

	// HasTable reports whether a table exists.
	HasTable(name string) (bool, error)

	// Insert adds a track to a table.
	// Returns an error wrapping domain.ErrDuplicateTrack if the track is already present.
	Insert(table string, track domain.Track) error

	// Delete removes a track from a table. Removing an absent track is a no-op.
	Delete(table string, track domain.Track) error

	// DeleteAll removes every track from a table, keeping the table.
	DeleteAll(table string) error

	// FetchAll returns the tracks of a table. Implementations return them in
	// insertion order when they can, but callers must not rely on it.
	FetchAll(table string) ([]domain.Track, error)

	// Close releases the store.
	Close() error
}
