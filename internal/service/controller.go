package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// Operation names shown in error messages.
const (
	opPlay           = "Playing song"
	opPause          = "Pausing song"
	opStop           = "Stopping song"
	opNavigate       = "Switching song"
	opDelete         = "Removing song"
	opClear          = "Removing songs"
	opVolume         = "Changing volume"
	opSeek           = "Seeking"
	opAdd            = "Adding song"
	opAddAll         = "Adding songs"
	opCreatePlaylist = "Creating playlist"
	opDeletePlaylist = "Deleting playlist"
	opLoadPlaylist   = "Loading playlist"
	opLoadFavourites = "Loading favourites"
	opLoadSongs      = "Loading songs"
)

// DragState tracks whether the user holds the position slider.
// *PositionTicker implements it.
type DragState interface {
	SetDragging(dragging bool)
}

// Controller is the boundary between UI intents and the services. Every
// OnX handler runs one operation and reports its outcome; nothing it
// calls shows messages on its own.
//
// All handlers must be called from the logic thread.
type Controller struct {
	logger    *slog.Logger
	orch      *Orchestrator
	playlists *PlaylistService
	library   *LibraryService
	reporter  *Reporter
	confirmer ports.Confirmer
	drag      DragState
}

// NewController creates a controller. drag may be nil when there is no
// position slider.
func NewController(
	logger *slog.Logger,
	orch *Orchestrator,
	playlists *PlaylistService,
	library *LibraryService,
	reporter *Reporter,
	confirmer ports.Confirmer,
	drag DragState,
) *Controller {
	return &Controller{
		logger:    logger,
		orch:      orch,
		playlists: playlists,
		library:   library,
		reporter:  reporter,
		confirmer: confirmer,
		drag:      drag,
	}
}

// OnPlay plays the selected song.
func (c *Controller) OnPlay() {
	c.reporter.Report(opPlay, c.orch.Play())
}

// OnPauseResume pauses or resumes playback.
func (c *Controller) OnPauseResume() {
	c.reporter.Report(opPause, c.orch.PauseResume())
}

// OnStop stops playback.
func (c *Controller) OnStop() {
	c.reporter.Report(opStop, c.orch.Stop())
}

// OnNext plays the next song.
func (c *Controller) OnNext() {
	c.reporter.Report(opNavigate, c.orch.Next())
}

// OnPrevious plays the previous song.
func (c *Controller) OnPrevious() {
	c.reporter.Report(opNavigate, c.orch.Previous())
}

// OnMediaEnded moves on after track finished playing.
func (c *Controller) OnMediaEnded(track domain.Track) {
	c.reporter.Report(opNavigate, c.orch.MediaEnded(track))
}

// OnDelete removes the selected song from the visible list.
func (c *Controller) OnDelete() {
	c.reporter.Report(opDelete, c.orch.DeleteSelected(""))
}

// OnClearAll removes every song from the visible list after confirmation.
func (c *Controller) OnClearAll() {
	err := c.orch.ClearAll("", func(err error) {
		c.reporter.Report(opClear, err)
	})
	c.reporter.Report(opClear, err)
}

// OnToggleLoop toggles looping of the current song.
func (c *Controller) OnToggleLoop() {
	c.orch.ToggleLoop()
}

// OnToggleShuffle toggles shuffle.
func (c *Controller) OnToggleShuffle() {
	c.orch.ToggleShuffle()
}

// OnVolumeChanged applies the volume slider value.
func (c *Controller) OnVolumeChanged(value float64) {
	c.reporter.Report(opVolume, c.orch.SetVolume(value))
}

// OnSeekStarted suspends position refreshes while the slider is held.
func (c *Controller) OnSeekStarted() {
	if c.drag != nil {
		c.drag.SetDragging(true)
	}
}

// OnSeekReleased seeks to fraction (0 to 1) of the current song.
func (c *Controller) OnSeekReleased(fraction float64) {
	if c.drag != nil {
		c.drag.SetDragging(false)
	}
	err := c.orch.Seek(fraction)
	if errors.Is(err, domain.ErrNoTrackLoaded) {
		return
	}
	c.reporter.Report(opSeek, err)
}

// OnAddToFavourites adds the selected song to favourites.
func (c *Controller) OnAddToFavourites() {
	c.reporter.Report(opAdd, c.orch.AddSelectedTo(domain.FavouritesTable))
}

// OnAddAllToFavourites adds every loaded song to favourites.
func (c *Controller) OnAddAllToFavourites() {
	c.addAll(domain.FavouritesTable)
}

// OnAddToPlaylist adds the selected song to playlist.
func (c *Controller) OnAddToPlaylist(playlist string) {
	if playlist == "" {
		c.reporter.Report(opAdd, domain.ErrNoPlaylist)
		return
	}
	c.reporter.Report(opAdd, c.orch.AddSelectedTo(playlist))
}

// OnAddAllToPlaylist adds every loaded song to playlist.
func (c *Controller) OnAddAllToPlaylist(playlist string) {
	if playlist == "" {
		c.reporter.Report(opAddAll, domain.ErrNoPlaylist)
		return
	}
	c.addAll(playlist)
}

func (c *Controller) addAll(table string) {
	n, err := c.orch.AddAllTo(table)
	if err != nil {
		c.reporter.Report(opAddAll, err)
		return
	}
	c.reporter.Success(fmt.Sprintf("%d songs added to %s.", n, table))
}

// OnCreatePlaylist creates a playlist, asking before replacing one with the
// same name.
func (c *Controller) OnCreatePlaylist(name string) {
	if name == "" {
		c.reporter.Report(opCreatePlaylist, domain.ErrNothingChosen)
		return
	}

	err := c.playlists.Create(name, false)
	if !errors.Is(err, domain.ErrPlaylistExists) {
		c.reportCreated(name, err)
		return
	}

	c.confirmer.Confirm("Replace Playlist",
		fmt.Sprintf("A playlist with name %q already exists.\nDo you want to replace it?", name),
		func(yes bool) {
			if !yes {
				c.reporter.Report(opCreatePlaylist, err)
				return
			}
			c.reportCreated(name, c.playlists.Create(name, true))
		})
}

func (c *Controller) reportCreated(name string, err error) {
	if err != nil {
		c.reporter.Report(opCreatePlaylist, err)
		return
	}
	c.reporter.Success(fmt.Sprintf("Playlist %q created.", name))
}

// OnDeletePlaylist deletes a playlist after confirmation.
func (c *Controller) OnDeletePlaylist(name string) {
	if name == "" {
		c.reporter.Report(opDeletePlaylist, domain.ErrNoPlaylist)
		return
	}

	c.confirmer.Confirm("Delete Playlist",
		fmt.Sprintf("Are you sure you want to delete playlist '%s'?", name),
		func(yes bool) {
			if !yes {
				return
			}
			if err := c.playlists.Delete(name); err != nil {
				c.reporter.Report(opDeletePlaylist, err)
				return
			}
			c.reporter.Success(fmt.Sprintf("Playlist '%s' has been deleted.", name))
		})
}

// OnDeleteAllPlaylists deletes every playlist after confirmation.
func (c *Controller) OnDeleteAllPlaylists() {
	names, err := c.playlists.Playlists()
	if err != nil {
		c.reporter.Report(opDeletePlaylist, err)
		return
	}
	if len(names) == 0 {
		c.reporter.Report(opDeletePlaylist, domain.ErrEmptyList)
		return
	}

	c.confirmer.Confirm("Delete Playlists", "Are you sure you want to delete all playlists?",
		func(yes bool) {
			if !yes {
				return
			}
			if _, err := c.playlists.DeleteAll(); err != nil {
				c.reporter.Report(opDeletePlaylist, err)
				return
			}
			c.reporter.Success("Playlists have been deleted.")
		})
}

// OnLoadPlaylist shows a playlist on the playlist page.
func (c *Controller) OnLoadPlaylist(name string) {
	if name == "" {
		c.reporter.Report(opLoadPlaylist, domain.ErrNoPlaylist)
		return
	}
	c.reporter.Report(opLoadPlaylist, c.playlists.Load(name))
}

// OnShowFavourites reloads the favourites page.
func (c *Controller) OnShowFavourites() {
	c.reporter.Report(opLoadFavourites, c.playlists.LoadFavourites())
}

// OnAddFiles loads the chosen files.
func (c *Controller) OnAddFiles(paths []string) {
	n, err := c.library.AddFiles(paths)
	c.logger.Debug("files added", slog.Int("count", n))
	c.reporter.Report(opLoadSongs, err)
}

// OnAddFolder loads every supported file below dir.
func (c *Controller) OnAddFolder(dir string) {
	n, err := c.library.AddFolder(context.Background(), dir)
	c.logger.Debug("folder added", slog.String("dir", dir), slog.Int("count", n))
	c.reporter.Report(opLoadSongs, err)
}
