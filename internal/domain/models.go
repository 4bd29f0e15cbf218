// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the beetbox music player.
package domain

import (
	"fmt"
	"time"
)

// Track is an opaque reference to a playable audio item.
// In practice it is a filesystem path, but the core never parses it:
// tracks are only compared, stored and handed to the audio engine.
type Track string

// String returns the raw reference.
func (t Track) String() string {
	return string(t)
}

// DefaultVolume is the volume a new session starts with.
const DefaultVolume = 15

// MaxVolume is the upper bound accepted for volume changes.
const MaxVolume = 100

// FavouritesTable is the store table that backs the favourites list.
const FavouritesTable = "favourites"

// Page identifies one of the user-visible track lists.
type Page int

const (
	// PageSongs is the list of loaded songs. It is not persisted.
	PageSongs Page = iota

	// PagePlaylist is the song list of the active playlist.
	PagePlaylist

	// PageFavourites is the favourites list.
	PageFavourites
)

// String returns a human-readable page name.
func (p Page) String() string {
	switch p {
	case PageSongs:
		return "songs"
	case PagePlaylist:
		return "playlist"
	case PageFavourites:
		return "favourites"
	default:
		return fmt.Sprintf("page(%d)", int(p))
	}
}

// Direction is a navigation direction. Values other than Forward and
// Backward are accepted and keep the current position.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// PlaybackStatus represents the current playback state.
type PlaybackStatus int

const (
	// StatusStopped indicates playback is stopped
	StatusStopped PlaybackStatus = iota

	// StatusPlaying indicates playback is active
	StatusPlaying

	// StatusPaused indicates playback is paused
	StatusPaused
)

// String returns a human-readable representation of the playback status.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// PlaybackSession is the single mutable playback state of the player.
// It is owned by the orchestrator and threaded through the playback
// state machine; nothing else keeps a copy that it mutates.
type PlaybackSession struct {
	// CurrentTrack is the loaded track, empty when nothing is loaded
	CurrentTrack Track

	// Status is the transport state
	Status PlaybackStatus

	// Volume is the last volume forwarded to the engine (0-100)
	Volume int

	// LoopEnabled repeats the current track on navigation
	LoopEnabled bool

	// ShuffleEnabled picks a random track on navigation
	ShuffleEnabled bool
}

// NewPlaybackSession returns a stopped session at the given volume.
func NewPlaybackSession(volume int) PlaybackSession {
	return PlaybackSession{
		Status: StatusStopped,
		Volume: volume,
	}
}

// HasTrack reports whether a track is loaded.
func (s PlaybackSession) HasTrack() bool {
	return s.CurrentTrack != ""
}

// IsCurrent reports whether t is the loaded track.
func (s PlaybackSession) IsCurrent(t Track) bool {
	return s.HasTrack() && s.CurrentTrack == t
}

// TrackInfo is the best-effort description of a track shown while it plays.
type TrackInfo struct {
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// Fallback values used when a tag is missing or unreadable.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// FormatDuration renders d as H:MM:SS, the format used for track lengths.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// FormatClock renders d as HH:MM:SS, the format of the position display.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// ClearedPosition is the position text shown when nothing is playing.
const ClearedPosition = "00:00:00 / 00:00:00"

// FormatPosition renders the "elapsed / total" position text.
func FormatPosition(position, duration time.Duration) string {
	return FormatClock(position) + " / " + FormatClock(duration)
}
