// Package ports define the UI interfaces for view abstraction.
// These interfaces allow the services to drive the UI without depending on Fyne directly.
package ports

import (
	"github.com/tejashwikalptaru/beetbox/internal/domain"
)

// PlayableList is an ordered list of tracks with an optional selection.
// The UI owns the concrete lists; services only manipulate them through
// this interface, always from the logic thread.
type PlayableList interface {
	// Len returns the number of tracks.
	Len() int

	// Selected returns the selected index, or false when nothing is selected.
	Selected() (int, bool)

	// Select moves the selection. Out-of-range indexes clear it.
	Select(index int)

	// Track returns the track at index. The index must be in range.
	Track(index int) domain.Track

	// Tracks returns a copy of all tracks in display order.
	Tracks() []domain.Track

	// Append adds tracks at the end, skipping tracks already in the list.
	Append(tracks ...domain.Track)

	// Replace swaps the whole content and clears the selection.
	Replace(tracks []domain.Track)

	// Remove deletes the row at index and clears the selection.
	Remove(index int)

	// Clear removes every row.
	Clear()

	// Table returns the store table backing this list, empty when the list
	// is not persisted.
	Table() string

	// SetTable changes the backing table.
	SetTable(name string)
}

// ListProvider exposes the visible page and the list behind each page.
type ListProvider interface {
	// CurrentPage returns the page the user is looking at.
	CurrentPage() domain.Page

	// List returns the list shown on page, or false when the page has none.
	List(page domain.Page) (PlayableList, bool)
}

// Notifier shows messages to the user.
type Notifier interface {
	Info(title, message string)
	Warning(title, message string)
	Critical(title, message string)
}

// Confirmer asks the user a yes/cancel question.
// onAnswer is called exactly once, on the logic thread, with the answer.
// Implementations backed by a modal dialog call it after this method returns.
type Confirmer interface {
	Confirm(title, message string, onAnswer func(yes bool))
}

// NowPlayingView is the display sink for the playing track and the
// transport controls.
type NowPlayingView interface {
	// ShowTrackInfo displays the playing track.
	ShowTrackInfo(info domain.TrackInfo)

	// ClearTrackInfo resets the display to its idle state.
	ClearTrackInfo()

	// SetVolumeLabel shows the volume text.
	SetVolumeLabel(text string)

	// SetPosition shows the position text and moves the position slider
	// to fraction (0 to 1).
	SetPosition(text string, fraction float64)

	// SetLoopControlEnabled enables or disables the loop toggle.
	SetLoopControlEnabled(enabled bool)

	// SetShuffleControlEnabled enables or disables the shuffle toggle.
	SetShuffleControlEnabled(enabled bool)
}

// PlaylistView shows the names of the stored playlists.
type PlaylistView interface {
	SetPlaylists(names []string)
}

// Scheduler runs functions on the logic thread.
// Anything that is triggered off that thread (engine callbacks, timers)
// goes through Do before it touches shared state.
type Scheduler interface {
	Do(fn func())
}
