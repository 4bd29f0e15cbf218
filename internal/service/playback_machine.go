// Package service provides business logic for the beetbox application.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// PlaybackMachine owns the transport discipline over an audio engine:
// play always loads afresh, pause toggles, stop is always safe.
//
// It keeps no state of its own. The session it acts on is passed in by
// the caller, which owns it.
type PlaybackMachine struct {
	logger *slog.Logger
	engine ports.AudioEngine
	bus    ports.EventBus
}

// NewPlaybackMachine creates a new playback state machine.
func NewPlaybackMachine(
	logger *slog.Logger,
	engine ports.AudioEngine,
	bus ports.EventBus,
) *PlaybackMachine {
	return &PlaybackMachine{
		logger: logger,
		engine: engine,
		bus:    bus,
	}
}

// Play loads track and starts it from the beginning, whatever the current
// state is. On failure the session falls back to Stopped with no track and
// the returned error wraps domain.ErrPlaybackFailed.
func (m *PlaybackMachine) Play(sess *domain.PlaybackSession, track domain.Track) error {
	m.logger.Debug("play", slog.String("track", track.String()), slog.String("from", sess.Status.String()))

	if err := m.engine.LoadAndPlay(track.String()); err != nil {
		m.logger.Warn("failed to start track", slog.String("track", track.String()), slog.Any("error", err))
		if stopErr := m.engine.Stop(); stopErr != nil {
			m.logger.Warn("failed to stop engine after load error", slog.Any("error", stopErr))
		}
		sess.Status = domain.StatusStopped
		sess.CurrentTrack = ""
		m.bus.Publish(domain.NewTrackErrorEvent(track, err))
		return domain.NewServiceError("PlaybackMachine", "play",
			fmt.Sprintf("cannot play %s", track), errors.Join(domain.ErrPlaybackFailed, err))
	}

	sess.CurrentTrack = track
	sess.Status = domain.StatusPlaying
	m.bus.Publish(domain.NewTrackStartedEvent(track))
	return nil
}

// TogglePause pauses a playing track and resumes a paused one.
// When stopped it does nothing and issues no engine command.
func (m *PlaybackMachine) TogglePause(sess *domain.PlaybackSession) error {
	switch sess.Status {
	case domain.StatusPlaying:
		if err := m.engine.Pause(); err != nil {
			return domain.NewServiceError("PlaybackMachine", "pause", "engine refused to pause", err)
		}
		sess.Status = domain.StatusPaused
		m.bus.Publish(domain.NewTrackPausedEvent(sess.CurrentTrack))
	case domain.StatusPaused:
		if err := m.engine.Resume(); err != nil {
			return domain.NewServiceError("PlaybackMachine", "resume", "engine refused to resume", err)
		}
		sess.Status = domain.StatusPlaying
		m.bus.Publish(domain.NewTrackResumedEvent(sess.CurrentTrack))
	default:
		m.logger.Debug("pause ignored while stopped")
	}
	return nil
}

// Stop stops playback. It may be called in any state; the session always
// ends up Stopped with no track, even if the engine reports an error.
func (m *PlaybackMachine) Stop(sess *domain.PlaybackSession) error {
	track := sess.CurrentTrack
	err := m.engine.Stop()

	sess.Status = domain.StatusStopped
	sess.CurrentTrack = ""
	m.bus.Publish(domain.NewTrackStoppedEvent(track))

	if err != nil {
		m.logger.Warn("engine stop failed", slog.Any("error", err))
		return domain.NewServiceError("PlaybackMachine", "stop", "engine refused to stop", err)
	}
	return nil
}

// SetVolume forwards volume to the engine as given. Range checks are the
// caller's job.
func (m *PlaybackMachine) SetVolume(sess *domain.PlaybackSession, volume int) error {
	if err := m.engine.SetVolume(volume); err != nil {
		return domain.NewServiceError("PlaybackMachine", "set_volume", "engine refused volume", err)
	}
	sess.Volume = volume
	m.bus.Publish(domain.NewVolumeChangedEvent(volume))
	return nil
}

// Seek moves the position of the loaded track.
func (m *PlaybackMachine) Seek(sess *domain.PlaybackSession, position time.Duration) error {
	if sess.Status == domain.StatusStopped {
		return domain.ErrNoTrackLoaded
	}
	if err := m.engine.Seek(position); err != nil {
		return domain.NewServiceError("PlaybackMachine", "seek", "engine refused to seek", err)
	}
	return nil
}

// Progress returns the engine's position and duration for the loaded track.
func (m *PlaybackMachine) Progress() (position, duration time.Duration) {
	return m.engine.Position(), m.engine.Duration()
}
