// Package domain defines events for the event-driven architecture.
// Events let the display and the playlist pages follow playback and store
// changes without the orchestrator knowing about them.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Playback events
	EventTrackStarted EventType = "track.started"
	EventTrackPaused  EventType = "track.paused"
	EventTrackResumed EventType = "track.resumed"
	EventTrackStopped EventType = "track.stopped"
	EventTrackError   EventType = "track.error"
	EventMediaEnded   EventType = "track.media_ended"

	// Volume events
	EventVolumeChanged EventType = "volume.changed"

	// Playback mode events
	EventPlaybackModeChanged EventType = "mode.changed"

	// Store events
	EventTableChanged     EventType = "table.changed"
	EventPlaylistsChanged EventType = "playlists.changed"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// TrackStartedEvent is published when a track starts playing from the beginning.
type TrackStartedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackStartedEvent) Type() EventType {
	return EventTrackStarted
}

// NewTrackStartedEvent creates a new TrackStartedEvent.
func NewTrackStartedEvent(track Track) TrackStartedEvent {
	return TrackStartedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
	}
}

// TrackPausedEvent is published when playback is paused.
type TrackPausedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackPausedEvent) Type() EventType {
	return EventTrackPaused
}

// NewTrackPausedEvent creates a new TrackPausedEvent.
func NewTrackPausedEvent(track Track) TrackPausedEvent {
	return TrackPausedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
	}
}

// TrackResumedEvent is published when paused playback resumes.
type TrackResumedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackResumedEvent) Type() EventType {
	return EventTrackResumed
}

// NewTrackResumedEvent creates a new TrackResumedEvent.
func NewTrackResumedEvent(track Track) TrackResumedEvent {
	return TrackResumedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
	}
}

// TrackStoppedEvent is published whenever playback is stopped.
// Track is empty when nothing was loaded.
type TrackStoppedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackStoppedEvent) Type() EventType {
	return EventTrackStopped
}

// NewTrackStoppedEvent creates a new TrackStoppedEvent.
func NewTrackStoppedEvent(track Track) TrackStoppedEvent {
	return TrackStoppedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
	}
}

// TrackErrorEvent is published when a track fails to load or play.
type TrackErrorEvent struct {
	baseEvent
	Track Track
	Error error
}

// Type returns the event type.
func (e TrackErrorEvent) Type() EventType {
	return EventTrackError
}

// NewTrackErrorEvent creates a new TrackErrorEvent.
func NewTrackErrorEvent(track Track, err error) TrackErrorEvent {
	return TrackErrorEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
		Error:     err,
	}
}

// MediaEndedEvent is published by an audio engine when a track plays to
// its end. It may be published from any goroutine.
type MediaEndedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e MediaEndedEvent) Type() EventType {
	return EventMediaEnded
}

// NewMediaEndedEvent creates a new MediaEndedEvent.
func NewMediaEndedEvent(track Track) MediaEndedEvent {
	return MediaEndedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
	}
}

// VolumeChangedEvent is published when the volume changes.
type VolumeChangedEvent struct {
	baseEvent
	Volume int
}

// Type returns the event type.
func (e VolumeChangedEvent) Type() EventType {
	return EventVolumeChanged
}

// NewVolumeChangedEvent creates a new VolumeChangedEvent.
func NewVolumeChangedEvent(volume int) VolumeChangedEvent {
	return VolumeChangedEvent{
		baseEvent: newBaseEvent(),
		Volume:    volume,
	}
}

// PlaybackModeChangedEvent is published when loop or shuffle is toggled.
type PlaybackModeChangedEvent struct {
	baseEvent
	Loop    bool
	Shuffle bool
}

// Type returns the event type.
func (e PlaybackModeChangedEvent) Type() EventType {
	return EventPlaybackModeChanged
}

// NewPlaybackModeChangedEvent creates a new PlaybackModeChangedEvent.
func NewPlaybackModeChangedEvent(loop, shuffle bool) PlaybackModeChangedEvent {
	return PlaybackModeChangedEvent{
		baseEvent: newBaseEvent(),
		Loop:      loop,
		Shuffle:   shuffle,
	}
}

// TableChangedEvent is published after tracks were inserted into a table
// by an operation that did not update the list showing that table.
type TableChangedEvent struct {
	baseEvent
	Table string
}

// Type returns the event type.
func (e TableChangedEvent) Type() EventType {
	return EventTableChanged
}

// NewTableChangedEvent creates a new TableChangedEvent.
func NewTableChangedEvent(table string) TableChangedEvent {
	return TableChangedEvent{
		baseEvent: newBaseEvent(),
		Table:     table,
	}
}

// PlaylistsChangedEvent is published when playlists are created or deleted.
type PlaylistsChangedEvent struct {
	baseEvent
	Names []string
}

// Type returns the event type.
func (e PlaylistsChangedEvent) Type() EventType {
	return EventPlaylistsChanged
}

// NewPlaylistsChangedEvent creates a new PlaylistsChangedEvent.
func NewPlaylistsChangedEvent(names []string) PlaylistsChangedEvent {
	return PlaylistsChangedEvent{
		baseEvent: newBaseEvent(),
		Names:     names,
	}
}
