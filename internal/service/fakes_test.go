package service

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/ui/listmodel"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/logger"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// fakeStore is an in-memory TrackStore that records calls and can be told
// to fail.
type fakeStore struct {
	mu     sync.Mutex
	tables map[string][]domain.Track
	order  []string
	calls  []string
	fail   map[string]error // op -> error
}

func newFakeStore() *fakeStore {
	s := &fakeStore{tables: map[string][]domain.Track{}, fail: map[string]error{}}
	s.tables[domain.FavouritesTable] = nil
	s.order = []string{domain.FavouritesTable}
	return s
}

func (s *fakeStore) failOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = err
}

func (s *fakeStore) record(op string, args ...any) error {
	s.calls = append(s.calls, fmt.Sprint(append([]any{op}, args...)...))
	return s.fail[op]
}

func (s *fakeStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

func (s *fakeStore) CreateTable(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("create_table ", name); err != nil {
		return err
	}
	if _, ok := s.tables[name]; !ok {
		s.tables[name] = nil
		s.order = append(s.order, name)
	}
	return nil
}

func (s *fakeStore) DeleteTable(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("delete_table ", name); err != nil {
		return err
	}
	delete(s.tables, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
	return nil
}

func (s *fakeStore) ListTables() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("list_tables"); err != nil {
		return nil, err
	}
	return slices.Clone(s.order), nil
}

func (s *fakeStore) HasTable(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tables[name]
	return ok, nil
}

func (s *fakeStore) Insert(table string, track domain.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("insert ", table, " ", track); err != nil {
		return err
	}
	tracks, ok := s.tables[table]
	if !ok {
		return domain.NewRepositoryError("insert", table, "no such table", domain.ErrTableNotFound)
	}
	if slices.Contains(tracks, track) {
		return domain.NewRepositoryError("insert", table, "duplicate", domain.ErrDuplicateTrack)
	}
	s.tables[table] = append(tracks, track)
	return nil
}

func (s *fakeStore) Delete(table string, track domain.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("delete ", table, " ", track); err != nil {
		return err
	}
	s.tables[table] = slices.DeleteFunc(s.tables[table], func(t domain.Track) bool { return t == track })
	return nil
}

func (s *fakeStore) DeleteAll(table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("delete_all ", table); err != nil {
		return err
	}
	s.tables[table] = nil
	return nil
}

func (s *fakeStore) FetchAll(table string) ([]domain.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("fetch_all ", table); err != nil {
		return nil, err
	}
	tracks, ok := s.tables[table]
	if !ok {
		return nil, domain.NewRepositoryError("fetch_all", table, "no such table", domain.ErrTableNotFound)
	}
	return slices.Clone(tracks), nil
}

func (s *fakeStore) Close() error { return nil }

func (s *fakeStore) tracks(table string) []domain.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tables[table])
}

var _ ports.TrackStore = (*fakeStore)(nil)

var errDisk = errors.New("disk I/O error")

// message is one notification shown to the user.
type message struct {
	Kind  string
	Title string
	Text  string
}

type fakeNotifier struct {
	messages []message
}

func (n *fakeNotifier) Info(title, text string) {
	n.messages = append(n.messages, message{"info", title, text})
}

func (n *fakeNotifier) Warning(title, text string) {
	n.messages = append(n.messages, message{"warning", title, text})
}

func (n *fakeNotifier) Critical(title, text string) {
	n.messages = append(n.messages, message{"critical", title, text})
}

func (n *fakeNotifier) kinds() []string {
	kinds := make([]string, len(n.messages))
	for i, m := range n.messages {
		kinds[i] = m.Kind
	}
	return kinds
}

func (n *fakeNotifier) last() message {
	if len(n.messages) == 0 {
		return message{}
	}
	return n.messages[len(n.messages)-1]
}

// scriptedConfirmer answers every question with answer.
type scriptedConfirmer struct {
	answer bool
	asked  []string
}

func (c *scriptedConfirmer) Confirm(title, _ string, onAnswer func(bool)) {
	c.asked = append(c.asked, title)
	onAnswer(c.answer)
}

// fakeView records what the services show.
type fakeView struct {
	info           *domain.TrackInfo
	cleared        int
	volumeLabel    string
	positionText   string
	positionFrac   float64
	loopEnabled    bool
	shuffleEnabled bool
	playlists      []string
}

func newFakeView() *fakeView {
	return &fakeView{loopEnabled: true, shuffleEnabled: true}
}

func (v *fakeView) ShowTrackInfo(info domain.TrackInfo) { v.info = &info }
func (v *fakeView) ClearTrackInfo()                     { v.info = nil; v.cleared++ }
func (v *fakeView) SetVolumeLabel(text string)          { v.volumeLabel = text }
func (v *fakeView) SetPosition(text string, f float64) {
	v.positionText = text
	v.positionFrac = f
}
func (v *fakeView) SetLoopControlEnabled(enabled bool)    { v.loopEnabled = enabled }
func (v *fakeView) SetShuffleControlEnabled(enabled bool) { v.shuffleEnabled = enabled }
func (v *fakeView) SetPlaylists(names []string)           { v.playlists = names }

// inlineScheduler runs functions immediately.
type inlineScheduler struct{}

func (inlineScheduler) Do(fn func()) { fn() }

// harness wires an orchestrator and its collaborators the way the app does.
type harness struct {
	bus       *eventbus.SyncEventBus
	engine    *mock.Engine
	pages     *listmodel.Pages
	lists     *ListGateway
	store     *fakeStore
	confirmer *scriptedConfirmer
	notifier  *fakeNotifier
	reporter  *Reporter
	orch      *Orchestrator
	random    []int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := logger.NewTestLogger()

	h := &harness{
		bus:       eventbus.NewSyncEventBus(log),
		pages:     listmodel.NewPages(),
		store:     newFakeStore(),
		confirmer: &scriptedConfirmer{answer: true},
		notifier:  &fakeNotifier{},
	}
	h.engine = mock.NewEngine(h.bus)
	require.NoError(t, h.engine.Initialize())
	h.lists = NewListGateway(h.pages)
	h.reporter = NewReporter(log, h.notifier)

	machine := NewPlaybackMachine(log, h.engine, h.bus)
	h.orch = NewOrchestrator(log, machine, h.lists, h.store, h.confirmer, h.bus,
		WithRandomSource(func(n int) int {
			if len(h.random) == 0 {
				return 0
			}
			next := h.random[0] % n
			h.random = h.random[1:]
			return next
		}))
	return h
}

// songs fills the loaded songs page and shows it.
func (h *harness) songs(tracks ...domain.Track) *listmodel.List {
	h.pages.Songs().Append(tracks...)
	h.pages.SetCurrentPage(domain.PageSongs)
	return h.pages.Songs()
}

// favourites fills the favourites page and store table and shows it.
func (h *harness) favourites(t *testing.T, tracks ...domain.Track) *listmodel.List {
	t.Helper()
	for _, tr := range tracks {
		require.NoError(t, h.store.Insert(domain.FavouritesTable, tr))
	}
	h.pages.Favourites().Append(tracks...)
	h.pages.SetCurrentPage(domain.PageFavourites)
	return h.pages.Favourites()
}

// playing plays the track at index of the visible list.
func (h *harness) playing(t *testing.T, list ports.PlayableList, index int) {
	t.Helper()
	list.Select(index)
	require.NoError(t, h.orch.Play())
	h.engine.ResetCalls()
}
