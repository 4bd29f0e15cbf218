// Package ports define interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of external frameworks.
package ports

import (
	"time"

	"github.com/tejashwikalptaru/beetbox/internal/domain"
)

// AudioEngine is the interface for audio playback engines.
// This abstracts the underlying audio library (beep) and allows for testing with mocks.
//
// An engine plays at most one track at a time. When a track plays to its
// end the engine publishes domain.MediaEndedEvent on the event bus it was
// built with; that publication may happen on an engine-owned goroutine.
//
// Implementations must be thread-safe as they may be called from multiple goroutines.
type AudioEngine interface {
	// Initialize prepares the output device.
	// Returns domain.ErrAlreadyInitialized when called twice.
	Initialize() error

	// Shutdown stops playback and releases the output device.
	Shutdown() error

	// LoadAndPlay replaces whatever is loaded with uri and starts playing it
	// from the beginning, at the engine's current volume.
	LoadAndPlay(uri string) error

	// Pause pauses the loaded track.
	Pause() error

	// Resume continues a paused track.
	Resume() error

	// Stop stops and unloads the current track.
	// It is safe to call when nothing is loaded.
	Stop() error

	// SetVolume sets the output volume. The value is passed through as given;
	// 0 is silent and 100 is full volume.
	SetVolume(volume int) error

	// State returns the engine's own view of the transport state.
	State() domain.PlaybackStatus

	// Position returns the playback position of the loaded track.
	Position() time.Duration

	// Duration returns the total length of the loaded track.
	Duration() time.Duration

	// Seek moves the playback position of the loaded track.
	Seek(position time.Duration) error
}

// MetadataReader reads best-effort display information for a track.
type MetadataReader interface {
	// Read returns the track's title, artist, album and duration.
	// On failure it still returns usable fallback information along with
	// the error: the file's base name, domain.UnknownArtist,
	// domain.UnknownAlbum and a zero duration.
	Read(track domain.Track) (domain.TrackInfo, error)
}
