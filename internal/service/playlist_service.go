package service

import (
	"log/slog"

	"github.com/samber/lo"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// PlaybackStopper stops playback when it comes from a given list.
// *Orchestrator implements it.
type PlaybackStopper interface {
	StopIfFrom(list ports.PlayableList) error
}

// PlaylistService manages the stored playlists and fills the playlist and
// favourites pages from the track store.
//
// All methods must be called from the logic thread.
type PlaylistService struct {
	// Dependencies (injected)
	logger  *slog.Logger
	store   ports.TrackStore
	lists   *ListGateway
	view    ports.PlaylistView
	stopper PlaybackStopper
	bus     ports.EventBus

	// Event subscription
	tableSub domain.SubscriptionID
}

// NewPlaylistService creates a new playlist service. It keeps lists that
// show a table in sync when that table changes.
func NewPlaylistService(
	logger *slog.Logger,
	store ports.TrackStore,
	lists *ListGateway,
	view ports.PlaylistView,
	stopper PlaybackStopper,
	bus ports.EventBus,
) *PlaylistService {
	s := &PlaylistService{
		logger:  logger,
		store:   store,
		lists:   lists,
		view:    view,
		stopper: stopper,
		bus:     bus,
	}
	s.tableSub = bus.Subscribe(domain.EventTableChanged, s.handleTableChanged)
	return s
}

// Close drops the event subscription.
func (s *PlaylistService) Close() {
	s.bus.Unsubscribe(s.tableSub)
}

// Playlists returns the stored playlist names. Favourites is not a playlist.
func (s *PlaylistService) Playlists() ([]string, error) {
	tables, err := s.store.ListTables()
	if err != nil {
		return nil, err
	}
	return lo.Filter(tables, func(name string, _ int) bool {
		return name != domain.FavouritesTable
	}), nil
}

// Refresh pushes the playlist names to the view.
func (s *PlaylistService) Refresh() error {
	names, err := s.Playlists()
	if err != nil {
		return err
	}
	s.view.SetPlaylists(names)
	s.bus.Publish(domain.NewPlaylistsChangedEvent(names))
	return nil
}

// Create creates an empty playlist. An existing playlist fails with
// domain.ErrPlaylistExists unless replace is set, in which case it is
// emptied.
func (s *PlaylistService) Create(name string, replace bool) error {
	if err := s.checkPlaylistName(name); err != nil {
		return err
	}

	exists, err := s.store.HasTable(name)
	if err != nil {
		return err
	}
	if exists {
		if !replace {
			return domain.NewValidationError("playlist", name, "already exists", domain.ErrPlaylistExists)
		}
		if err := s.Delete(name); err != nil {
			return err
		}
	}

	if err := s.store.CreateTable(name); err != nil {
		return err
	}
	s.logger.Info("playlist created", slog.String("playlist", name), slog.Bool("replaced", exists))
	return s.Refresh()
}

// Delete drops a playlist. When it is the one on the playlist page, that
// page is emptied and playback from it is stopped.
func (s *PlaylistService) Delete(name string) error {
	if err := s.checkPlaylistName(name); err != nil {
		return err
	}

	if list, ok := s.lists.List(domain.PagePlaylist); ok && list.Table() == name {
		if err := s.stopper.StopIfFrom(list); err != nil {
			s.logger.Warn("failed to stop playback of deleted playlist", slog.Any("error", err))
		}
		list.Clear()
		list.SetTable("")
	}

	if err := s.store.DeleteTable(name); err != nil {
		return err
	}
	s.logger.Info("playlist deleted", slog.String("playlist", name))
	return s.Refresh()
}

// DeleteAll drops every playlist and returns how many were dropped.
func (s *PlaylistService) DeleteAll() (int, error) {
	names, err := s.Playlists()
	if err != nil {
		return 0, err
	}
	if len(names) == 0 {
		return 0, domain.ErrEmptyList
	}
	for i, name := range names {
		if err := s.Delete(name); err != nil {
			return i, err
		}
	}
	return len(names), nil
}

// Load shows a playlist on the playlist page.
func (s *PlaylistService) Load(name string) error {
	if err := domain.ValidateTableName(name); err != nil {
		return err
	}
	tracks, err := s.store.FetchAll(name)
	if err != nil {
		return err
	}
	list, ok := s.lists.List(domain.PagePlaylist)
	if !ok {
		return domain.NewServiceError("PlaylistService", "load", "no playlist page", nil)
	}
	list.SetTable(name)
	list.Replace(tracks)
	s.logger.Debug("playlist loaded", slog.String("playlist", name), slog.Int("tracks", len(tracks)))
	return nil
}

// LoadFavourites fills the favourites page.
func (s *PlaylistService) LoadFavourites() error {
	tracks, err := s.store.FetchAll(domain.FavouritesTable)
	if err != nil {
		return err
	}
	list, ok := s.lists.List(domain.PageFavourites)
	if !ok {
		return domain.NewServiceError("PlaylistService", "load_favourites", "no favourites page", nil)
	}
	list.SetTable(domain.FavouritesTable)
	list.Replace(tracks)
	return nil
}

func (s *PlaylistService) checkPlaylistName(name string) error {
	if err := domain.ValidateTableName(name); err != nil {
		return err
	}
	if name == domain.FavouritesTable {
		return domain.NewValidationError("playlist", name, "name is reserved", domain.ErrInvalidTableName)
	}
	return nil
}

// handleTableChanged reloads every page currently showing the table.
func (s *PlaylistService) handleTableChanged(event domain.Event) {
	e, ok := event.(domain.TableChangedEvent)
	if !ok {
		return
	}

	for _, page := range []domain.Page{domain.PagePlaylist, domain.PageFavourites} {
		list, ok := s.lists.List(page)
		if !ok || list.Table() != e.Table {
			continue
		}
		tracks, err := s.store.FetchAll(e.Table)
		if err != nil {
			s.logger.Warn("failed to reload list", slog.String("table", e.Table), slog.Any("error", err))
			continue
		}
		reloadKeepingSelection(list, tracks)
	}
}

// reloadKeepingSelection replaces the rows of list and selects the
// previously selected track again if it is still there.
func reloadKeepingSelection(list ports.PlayableList, tracks []domain.Track) {
	var selected domain.Track
	if idx, ok := list.Selected(); ok {
		selected = list.Track(idx)
	}
	list.Replace(tracks)
	if selected == "" {
		return
	}
	if idx := lo.IndexOf(list.Tracks(), selected); idx >= 0 {
		list.Select(idx)
	}
}
