package service

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// MetadataFallbackMessage is the warning shown when tags cannot be read.
const MetadataFallbackMessage = "Could not read the tags of %s; showing the file name instead."

// NowPlaying keeps the now-playing display in step with playback events.
type NowPlaying struct {
	logger   *slog.Logger
	reader   ports.MetadataReader
	view     ports.NowPlayingView
	reporter *Reporter
	bus      ports.EventBus

	subs []domain.SubscriptionID
}

// NewNowPlaying creates the display service and subscribes it to the bus.
func NewNowPlaying(
	logger *slog.Logger,
	reader ports.MetadataReader,
	view ports.NowPlayingView,
	reporter *Reporter,
	bus ports.EventBus,
) *NowPlaying {
	n := &NowPlaying{
		logger:   logger,
		reader:   reader,
		view:     view,
		reporter: reporter,
		bus:      bus,
	}

	subscriptions := map[domain.EventType]domain.EventHandler{
		domain.EventTrackStarted:        n.onTrackStarted,
		domain.EventTrackStopped:        n.onTrackCleared,
		domain.EventTrackError:          n.onTrackCleared,
		domain.EventVolumeChanged:       n.onVolumeChanged,
		domain.EventPlaybackModeChanged: n.onModeChanged,
	}
	for eventType, handler := range subscriptions {
		n.subs = append(n.subs, bus.Subscribe(eventType, handler))
	}
	return n
}

// Close drops the event subscriptions.
func (n *NowPlaying) Close() {
	for _, id := range n.subs {
		n.bus.Unsubscribe(id)
	}
	n.subs = nil
}

// Reset puts the display in its idle state for the given session.
func (n *NowPlaying) Reset(sess domain.PlaybackSession) {
	n.view.ClearTrackInfo()
	n.view.SetPosition(domain.ClearedPosition, 0)
	n.view.SetVolumeLabel(VolumeLabel(sess.Volume))
	n.applyModes(sess.LoopEnabled, sess.ShuffleEnabled)
}

// VolumeLabel is the text shown next to the volume slider.
func VolumeLabel(volume int) string {
	return strconv.Itoa(volume)
}

func (n *NowPlaying) onTrackStarted(event domain.Event) {
	e, ok := event.(domain.TrackStartedEvent)
	if !ok {
		return
	}

	info, err := n.reader.Read(e.Track)
	if err != nil {
		n.logger.Warn("metadata fallback", slog.String("track", e.Track.String()), slog.Any("error", err))
		n.reporter.Warn(fmt.Sprintf(MetadataFallbackMessage, info.Title))
	}
	n.view.ShowTrackInfo(info)
}

func (n *NowPlaying) onTrackCleared(domain.Event) {
	n.view.ClearTrackInfo()
	n.view.SetPosition(domain.ClearedPosition, 0)
}

func (n *NowPlaying) onVolumeChanged(event domain.Event) {
	if e, ok := event.(domain.VolumeChangedEvent); ok {
		n.view.SetVolumeLabel(VolumeLabel(e.Volume))
	}
}

func (n *NowPlaying) onModeChanged(event domain.Event) {
	if e, ok := event.(domain.PlaybackModeChangedEvent); ok {
		n.applyModes(e.Loop, e.Shuffle)
	}
}

// applyModes disables the opposite toggle while a mode is on.
func (n *NowPlaying) applyModes(loop, shuffle bool) {
	n.view.SetShuffleControlEnabled(!loop)
	n.view.SetLoopControlEnabled(!shuffle)
}
