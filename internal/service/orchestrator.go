package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// Confirmation texts for ClearAll.
const (
	ClearConfirmTitle   = "Remove songs"
	ClearConfirmMessage = "Are you sure you want to remove all songs from this list?"
)

// Orchestrator sequences user intents across navigation, playback, the
// visible lists and the track store. It owns the playback session.
//
// All methods must be called from the logic thread.
type Orchestrator struct {
	logger    *slog.Logger
	session   domain.PlaybackSession
	nav       *NavigationHandler
	machine   *PlaybackMachine
	lists     *ListGateway
	store     ports.TrackStore
	confirmer ports.Confirmer
	bus       ports.EventBus
	random    NavigationStrategy
}

// OrchestratorOption customises an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithRandomSource makes shuffle draw indexes from intN.
func WithRandomSource(intN func(n int) int) OrchestratorOption {
	return func(o *Orchestrator) {
		o.random = NewRandomStrategy(intN)
	}
}

// NewOrchestrator creates an orchestrator with a stopped session at the
// default volume, loop and shuffle off.
func NewOrchestrator(
	logger *slog.Logger,
	machine *PlaybackMachine,
	lists *ListGateway,
	store ports.TrackStore,
	confirmer ports.Confirmer,
	bus ports.EventBus,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		logger:    logger,
		session:   domain.NewPlaybackSession(domain.DefaultVolume),
		nav:       NewNavigationHandler(),
		machine:   machine,
		lists:     lists,
		store:     store,
		confirmer: confirmer,
		bus:       bus,
		random:    NewRandomStrategy(nil),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Session returns a snapshot of the playback session.
func (o *Orchestrator) Session() domain.PlaybackSession {
	return o.session
}

// currentList returns the active list, failing with domain.ErrEmptyList
// when there is none or it has no rows.
func (o *Orchestrator) currentList() (ports.PlayableList, error) {
	list, ok := o.lists.CurrentList()
	if !ok || list.Len() == 0 {
		return nil, domain.ErrEmptyList
	}
	return list, nil
}

// Play plays the selected track of the active list.
func (o *Orchestrator) Play() error {
	if _, err := o.currentList(); err != nil {
		return err
	}
	track, ok := o.lists.SelectedTrack()
	if !ok {
		return domain.ErrNoSelection
	}
	return o.machine.Play(&o.session, track)
}

// PauseResume pauses or resumes the current track.
func (o *Orchestrator) PauseResume() error {
	return o.machine.TogglePause(&o.session)
}

// Stop stops playback.
func (o *Orchestrator) Stop() error {
	return o.machine.Stop(&o.session)
}

// Next moves forward and plays the new selection.
func (o *Orchestrator) Next() error {
	return o.Navigate(domain.Forward)
}

// Previous moves backward and plays the new selection.
func (o *Orchestrator) Previous() error {
	return o.Navigate(domain.Backward)
}

// Navigate moves the selection of the active list with the current
// strategy and plays what ends up selected.
func (o *Orchestrator) Navigate(direction domain.Direction) error {
	list, err := o.currentList()
	if err != nil {
		return err
	}
	idx, err := o.nav.Navigate(list, direction)
	if err != nil {
		return err
	}
	return o.machine.Play(&o.session, list.Track(idx))
}

// MediaEnded advances to the next track after track finished. A stale
// notification for a track that is no longer current is ignored. When
// nothing can follow, the session stops.
func (o *Orchestrator) MediaEnded(track domain.Track) error {
	if !o.session.IsCurrent(track) || o.session.Status != domain.StatusPlaying {
		o.logger.Debug("ignoring stale end of media", slog.String("track", track.String()))
		return nil
	}
	err := o.Next()
	if err == nil {
		return nil
	}
	if o.session.Status != domain.StatusStopped {
		if stopErr := o.machine.Stop(&o.session); stopErr != nil {
			return errors.Join(err, stopErr)
		}
	}
	return err
}

// DeleteSelected removes the selected track from the active list and from
// table. An empty table means the list's own backing table; a list
// without one is not persisted. Deleting the playing track moves playback
// to the track that takes its row.
func (o *Orchestrator) DeleteSelected(table string) error {
	list, err := o.currentList()
	if err != nil {
		return err
	}
	row, ok := list.Selected()
	if !ok {
		return domain.ErrNoSelection
	}
	track := list.Track(row)
	if table == "" {
		table = list.Table()
	}

	wasCurrent := o.session.IsCurrent(track)
	wasPlaying := wasCurrent && o.session.Status == domain.StatusPlaying
	if wasCurrent {
		if err := o.machine.Stop(&o.session); err != nil {
			o.logger.Warn("stop before delete failed", slog.Any("error", err))
		}
	}

	if table != "" {
		if err := o.store.Delete(table, track); err != nil {
			return err
		}
	}
	list.Remove(row)

	remaining := list.Len()
	if remaining == 0 {
		return nil
	}
	next := row % remaining
	list.Select(next)
	if wasPlaying {
		return o.machine.Play(&o.session, list.Track(next))
	}
	return nil
}

// ClearAll asks for confirmation and then empties the active list and its
// table. The returned error covers the checks made before asking; done
// receives the outcome of an accepted clear and is not called when the
// user declines.
func (o *Orchestrator) ClearAll(table string, done func(error)) error {
	list, err := o.currentList()
	if err != nil {
		return err
	}
	if table == "" {
		table = list.Table()
	}

	o.confirmer.Confirm(ClearConfirmTitle, ClearConfirmMessage, func(yes bool) {
		if !yes {
			o.logger.Debug("clear declined")
			return
		}
		done(o.clear(list, table))
	})
	return nil
}

func (o *Orchestrator) clear(list ports.PlayableList, table string) error {
	var errs []error
	if err := o.machine.Stop(&o.session); err != nil {
		errs = append(errs, err)
	}
	if table != "" {
		if err := o.store.DeleteAll(table); err != nil {
			return errors.Join(append(errs, err)...)
		}
	}
	list.Clear()
	o.logger.Info("list cleared", slog.String("table", table))
	return errors.Join(errs...)
}

// ToggleLoop turns looping on or off. Turning it on turns shuffle off.
func (o *Orchestrator) ToggleLoop() {
	o.setModes(!o.session.LoopEnabled, false)
}

// ToggleShuffle turns shuffle on or off. Turning it on turns looping off.
func (o *Orchestrator) ToggleShuffle() {
	o.setModes(false, !o.session.ShuffleEnabled)
}

func (o *Orchestrator) setModes(loop, shuffle bool) {
	o.session.LoopEnabled = loop
	o.session.ShuffleEnabled = shuffle

	switch {
	case loop:
		o.nav.SetStrategy(LoopingStrategy{})
	case shuffle:
		o.nav.SetStrategy(o.random)
	default:
		o.nav.SetStrategy(NormalStrategy{})
	}

	o.logger.Debug("playback mode changed", slog.Bool("loop", loop), slog.Bool("shuffle", shuffle))
	o.bus.Publish(domain.NewPlaybackModeChangedEvent(loop, shuffle))
}

// SetVolume applies a volume coming from a UI control. Only whole numbers
// in [0, domain.MaxVolume] are accepted.
func (o *Orchestrator) SetVolume(value float64) error {
	if math.IsNaN(value) || value != math.Trunc(value) || value < 0 || value > domain.MaxVolume {
		return domain.NewValidationError("volume", value,
			fmt.Sprintf("must be a whole number between 0 and %d", domain.MaxVolume), domain.ErrInvalidVolume)
	}
	return o.machine.SetVolume(&o.session, int(value))
}

// AddSelectedTo inserts the selected track of the active list into table.
func (o *Orchestrator) AddSelectedTo(table string) error {
	if err := domain.ValidateTableName(table); err != nil {
		return err
	}
	if _, err := o.currentList(); err != nil {
		return err
	}
	track, ok := o.lists.SelectedTrack()
	if !ok {
		return domain.ErrNoSelection
	}
	if err := o.store.Insert(table, track); err != nil {
		return err
	}
	o.bus.Publish(domain.NewTableChangedEvent(table))
	return nil
}

// AddAllTo inserts every loaded song into table and returns how many were
// added, whichever page is visible. Tracks already in the table are
// skipped.
func (o *Orchestrator) AddAllTo(table string) (int, error) {
	if err := domain.ValidateTableName(table); err != nil {
		return 0, err
	}
	list, ok := o.lists.List(domain.PageSongs)
	if !ok || list == nil || list.Len() == 0 {
		return 0, domain.ErrEmptyList
	}

	added := 0
	for _, track := range list.Tracks() {
		err := o.store.Insert(table, track)
		switch {
		case errors.Is(err, domain.ErrDuplicateTrack):
			continue
		case err != nil:
			if added > 0 {
				o.bus.Publish(domain.NewTableChangedEvent(table))
			}
			return added, err
		}
		added++
	}

	if added > 0 {
		o.bus.Publish(domain.NewTableChangedEvent(table))
	}
	o.logger.Info("tracks added", slog.String("table", table), slog.Int("count", added))
	return added, nil
}

// Seek moves the current track to fraction (0 to 1) of its length.
func (o *Orchestrator) Seek(fraction float64) error {
	if fraction < 0 || fraction > 1 || math.IsNaN(fraction) {
		return domain.NewValidationError("position", fraction, "must be between 0 and 1", domain.ErrInvalidNavigationInput)
	}
	_, duration := o.machine.Progress()
	return o.machine.Seek(&o.session, scale(duration, fraction))
}

// Progress returns the position and length of the loaded track.
func (o *Orchestrator) Progress() (position, duration time.Duration) {
	return o.machine.Progress()
}

// StopIfFrom stops playback when the current track belongs to list.
// Playlist deletion uses it so nothing keeps playing from a list that is
// about to disappear.
func (o *Orchestrator) StopIfFrom(list ports.PlayableList) error {
	if !o.session.HasTrack() {
		return nil
	}
	for _, t := range list.Tracks() {
		if t == o.session.CurrentTrack {
			return o.Stop()
		}
	}
	return nil
}
