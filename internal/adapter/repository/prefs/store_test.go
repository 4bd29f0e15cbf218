package prefs

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/logger"
)

// Helper to create a test store
func newTestStore(t *testing.T) *Store {
	t.Helper()
	app := test.NewTempApp(t)
	store, err := NewStore(app.Preferences(), logger.NewTestLogger())
	require.NoError(t, err)
	return store
}

func TestStore_FavouritesCreatedOnOpen(t *testing.T) {
	store := newTestStore(t)

	tables, err := store.ListTables()
	require.NoError(t, err)
	assert.Equal(t, []string{domain.FavouritesTable}, tables)
}

func TestStore_TableLifecycle(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateTable("Road trip"))
	require.NoError(t, store.CreateTable("Road trip"), "creating twice is a no-op")

	ok, err := store.HasTable("Road trip")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.DeleteTable("Road trip"))
	ok, err = store.HasTable("Road trip")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_InsertFetchDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Insert(domain.FavouritesTable, "/music/a.mp3"))
	require.NoError(t, store.Insert(domain.FavouritesTable, "/music/b.mp3"))

	err := store.Insert(domain.FavouritesTable, "/music/a.mp3")
	assert.ErrorIs(t, err, domain.ErrDuplicateTrack)

	tracks, err := store.FetchAll(domain.FavouritesTable)
	require.NoError(t, err)
	assert.Equal(t, []domain.Track{"/music/a.mp3", "/music/b.mp3"}, tracks)

	require.NoError(t, store.Delete(domain.FavouritesTable, "/music/a.mp3"))
	tracks, err = store.FetchAll(domain.FavouritesTable)
	require.NoError(t, err)
	assert.Equal(t, []domain.Track{"/music/b.mp3"}, tracks)

	require.NoError(t, store.DeleteAll(domain.FavouritesTable))
	tracks, err = store.FetchAll(domain.FavouritesTable)
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestStore_MissingTable(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FetchAll("nope")
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
	assert.ErrorIs(t, store.Insert("nope", "/music/a.mp3"), domain.ErrTableNotFound)
}

func TestStore_RejectsInvalidNames(t *testing.T) {
	store := newTestStore(t)

	assert.ErrorIs(t, store.CreateTable("bad/name"), domain.ErrInvalidTableName)
	assert.ErrorIs(t, store.Insert("bad.name", "/music/a.mp3"), domain.ErrInvalidTableName)
	_, err := store.FetchAll("")
	assert.ErrorIs(t, err, domain.ErrInvalidTableName)
}
