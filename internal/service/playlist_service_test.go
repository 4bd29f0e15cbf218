package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/logger"
)

// Helper to create a test playlist service on top of a harness
func newTestPlaylistService(t *testing.T) (*PlaylistService, *harness, *fakeView) {
	t.Helper()
	h := newHarness(t)
	view := newFakeView()
	s := NewPlaylistService(logger.NewTestLogger(), h.store, h.lists, view, h.orch, h.bus)
	t.Cleanup(s.Close)
	return s, h, view
}

func TestPlaylistService_CreateAndList(t *testing.T) {
	s, h, view := newTestPlaylistService(t)

	var published []string
	h.bus.Subscribe(domain.EventPlaylistsChanged, func(e domain.Event) {
		published = e.(domain.PlaylistsChangedEvent).Names
	})

	require.NoError(t, s.Create("Road trip", false))
	require.NoError(t, s.Create("Gym", false))

	names, err := s.Playlists()
	require.NoError(t, err)
	assert.Equal(t, []string{"Road trip", "Gym"}, names, "favourites is not listed")
	assert.Equal(t, names, view.playlists)
	assert.Equal(t, names, published)
}

func TestPlaylistService_CreateExisting(t *testing.T) {
	s, h, _ := newTestPlaylistService(t)
	require.NoError(t, s.Create("Road trip", false))
	require.NoError(t, h.store.Insert("Road trip", "A"))

	err := s.Create("Road trip", false)
	assert.ErrorIs(t, err, domain.ErrPlaylistExists)
	assert.Equal(t, domain.KindWarning, domain.KindOf(err))
	assert.Equal(t, []domain.Track{"A"}, h.store.tracks("Road trip"))

	require.NoError(t, s.Create("Road trip", true))
	assert.Empty(t, h.store.tracks("Road trip"), "replacing empties the playlist")
}

func TestPlaylistService_CreateRejectsNames(t *testing.T) {
	s, _, _ := newTestPlaylistService(t)

	assert.ErrorIs(t, s.Create("bad/name", false), domain.ErrInvalidTableName)
	assert.ErrorIs(t, s.Create(domain.FavouritesTable, false), domain.ErrInvalidTableName)
	assert.ErrorIs(t, s.Create("   ", false), domain.ErrInvalidTableName)
}

func TestPlaylistService_LoadAndDelete(t *testing.T) {
	s, h, _ := newTestPlaylistService(t)
	require.NoError(t, s.Create("Road trip", false))
	require.NoError(t, h.store.Insert("Road trip", "A"))
	require.NoError(t, h.store.Insert("Road trip", "B"))

	require.NoError(t, s.Load("Road trip"))
	list := h.pages.Playlist()
	assert.Equal(t, "Road trip", list.Table())
	assert.Equal(t, []domain.Track{"A", "B"}, list.Tracks())

	h.pages.SetCurrentPage(domain.PagePlaylist)
	h.playing(t, list, 1)

	require.NoError(t, s.Delete("Road trip"))

	assert.Equal(t, domain.StatusStopped, h.orch.Session().Status, "playback from the deleted playlist stops")
	assert.Zero(t, list.Len())
	assert.Empty(t, list.Table())
	ok, err := h.store.HasTable("Road trip")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlaylistService_DeleteOtherPlaylistKeepsPlaying(t *testing.T) {
	s, h, _ := newTestPlaylistService(t)
	require.NoError(t, s.Create("Road trip", false))
	list := h.songs("A")
	h.playing(t, list, 0)

	require.NoError(t, s.Delete("Road trip"))
	assert.Equal(t, domain.StatusPlaying, h.orch.Session().Status)
}

func TestPlaylistService_LoadMissing(t *testing.T) {
	s, _, _ := newTestPlaylistService(t)

	assert.ErrorIs(t, s.Load("nope"), domain.ErrTableNotFound)
	assert.ErrorIs(t, s.Load("a.b"), domain.ErrInvalidTableName)
}

func TestPlaylistService_DeleteAll(t *testing.T) {
	s, h, view := newTestPlaylistService(t)

	_, err := s.DeleteAll()
	assert.ErrorIs(t, err, domain.ErrEmptyList)

	require.NoError(t, s.Create("One", false))
	require.NoError(t, s.Create("Two", false))

	n, err := s.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, view.playlists)

	tables, err := h.store.ListTables()
	require.NoError(t, err)
	assert.Equal(t, []string{domain.FavouritesTable}, tables)
}

func TestPlaylistService_StoreFailure(t *testing.T) {
	s, h, _ := newTestPlaylistService(t)
	h.store.failOn("list_tables", errDisk)

	_, err := s.Playlists()
	assert.ErrorIs(t, err, errDisk)
	assert.ErrorIs(t, s.Refresh(), errDisk)
}

func TestPlaylistService_LoadFavourites(t *testing.T) {
	s, h, _ := newTestPlaylistService(t)
	require.NoError(t, h.store.Insert(domain.FavouritesTable, "A"))

	require.NoError(t, s.LoadFavourites())
	assert.Equal(t, []domain.Track{"A"}, h.pages.Favourites().Tracks())
}

func TestPlaylistService_ReloadsOnTableChange(t *testing.T) {
	s, h, _ := newTestPlaylistService(t)
	require.NoError(t, s.LoadFavourites())
	fav := h.pages.Favourites()
	fav.Append("X")
	require.NoError(t, h.store.Insert(domain.FavouritesTable, "X"))
	fav.Select(0)

	songs := h.songs("A", "B")
	songs.Select(1)
	require.NoError(t, h.orch.AddSelectedTo(domain.FavouritesTable))

	assert.Equal(t, []domain.Track{"X", "B"}, fav.Tracks())
	idx, ok := fav.Selected()
	require.True(t, ok, "selection survives the reload")
	assert.Equal(t, 0, idx)
}
