// Package sqlite implements ports.TrackStore on a SQLite database.
// Every playlist is a table with one unique "song" column; the favourites
// table is created by the first migration.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// InMemory opens a private in-memory database.
const InMemory = ":memory:"

const gooseTable = "goose_db_version"

// Store implements ports.TrackStore.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path != InMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection: a single writer, and an in-memory database stays one database.
	db.SetMaxOpenConns(1)

	if err := migrateUp(db, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("track store opened", slog.String("path", path))
	return New(db, logger), nil
}

// New wraps an already migrated database.
func New(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// quote returns name as a SQL identifier. Names are validated before they
// get here, so they never contain a double quote.
func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func checkName(name string) error {
	if err := domain.ValidateTableName(name); err != nil {
		return err
	}
	if name == gooseTable || strings.HasPrefix(strings.ToLower(name), "sqlite_") {
		return domain.NewValidationError("table", name, "name is reserved", domain.ErrInvalidTableName)
	}
	return nil
}

// wrap converts a driver error into a RepositoryError, mapping unique
// violations and missing tables to their sentinels.
func wrap(op, table string, err error) error {
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		switch {
		case sqlErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT:
			return domain.NewRepositoryError(op, table, "track already present", errors.Join(domain.ErrDuplicateTrack, err))
		case strings.Contains(sqlErr.Error(), "no such table"):
			return domain.NewRepositoryError(op, table, "no such table", errors.Join(domain.ErrTableNotFound, err))
		}
	}
	return domain.NewRepositoryError(op, table, err.Error(), err)
}

// CreateTable creates an empty table.
func (s *Store) CreateTable(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (song TEXT NOT NULL UNIQUE)`, quote(name))
	if _, err := s.db.Exec(query); err != nil {
		return wrap("create_table", name, err)
	}
	s.logger.Debug("table created", slog.String("table", name))
	return nil
}

// DeleteTable drops a table.
func (s *Store) DeleteTable(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DROP TABLE IF EXISTS ` + quote(name)); err != nil {
		return wrap("delete_table", name, err)
	}
	s.logger.Debug("table dropped", slog.String("table", name))
	return nil
}

// ListTables returns the user tables sorted by name.
func (s *Store) ListTables() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name != ?
		ORDER BY name`, gooseTable)
	if err != nil {
		return nil, wrap("list_tables", "", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, wrap("list_tables", "", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list_tables", "", err)
	}
	return names, nil
}

// HasTable reports whether a table exists.
func (s *Store) HasTable(name string) (bool, error) {
	if err := checkName(name); err != nil {
		return false, err
	}
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return false, wrap("has_table", name, err)
	}
	return n > 0, nil
}

// Insert adds a track to a table.
func (s *Store) Insert(table string, track domain.Track) error {
	if err := checkName(table); err != nil {
		return err
	}
	if _, err := s.db.Exec(`INSERT INTO `+quote(table)+` (song) VALUES (?)`, track.String()); err != nil {
		return wrap("insert", table, err)
	}
	return nil
}

// Delete removes a track from a table.
func (s *Store) Delete(table string, track domain.Track) error {
	if err := checkName(table); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM `+quote(table)+` WHERE song = ?`, track.String()); err != nil {
		return wrap("delete", table, err)
	}
	return nil
}

// DeleteAll removes every track from a table.
func (s *Store) DeleteAll(table string) error {
	if err := checkName(table); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM ` + quote(table)); err != nil {
		return wrap("delete_all", table, err)
	}
	return nil
}

// FetchAll returns the tracks of a table in insertion order.
func (s *Store) FetchAll(table string) ([]domain.Track, error) {
	if err := checkName(table); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT song FROM ` + quote(table) + ` ORDER BY rowid`)
	if err != nil {
		return nil, wrap("fetch_all", table, err)
	}
	defer rows.Close()

	tracks := []domain.Track{}
	for rows.Next() {
		var song string
		if err := rows.Scan(&song); err != nil {
			return nil, wrap("fetch_all", table, err)
		}
		tracks = append(tracks, domain.Track(song))
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("fetch_all", table, err)
	}
	return tracks, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

var _ ports.TrackStore = (*Store)(nil)
