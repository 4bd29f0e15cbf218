// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/jonboulle/clockwork"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/audio/beep"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/metadata"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/repository/prefs"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/repository/sqlite"
	fyneui "github.com/tejashwikalptaru/beetbox/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/ui/listmodel"
	"github.com/tejashwikalptaru/beetbox/internal/config"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/logger"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
	"github.com/tejashwikalptaru/beetbox/internal/service"
)

// AppID is the Fyne application identifier; it also names the preferences file.
const AppID = "com.beetbox.app"

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	config  *config.Config
	fyneApp fyne.App

	// Infrastructure
	eventBus    ports.EventBus
	audioEngine ports.AudioEngine
	store       ports.TrackStore
	scheduler   ports.Scheduler
	pages       *listmodel.Pages

	// Services
	orchestrator *service.Orchestrator
	reporter     *service.Reporter
	playlists    *service.PlaylistService
	library      *service.LibraryService
	nowPlaying   *service.NowPlaying
	ticker       *service.PositionTicker
	controller   *service.Controller

	// UI
	mainWindow *fyneui.MainWindow

	mediaEndedSub domain.SubscriptionID
	shutdownOnce  sync.Once
	shutdownErr   error
}

// Options controls how the application is built.
type Options struct {
	// ConfigPath is an explicit TOML file loaded after the user config.
	ConfigPath string

	// Config replaces file loading entirely when set.
	Config *config.Config

	// FyneApp allows injecting a test Fyne app (nil for production).
	FyneApp fyne.App

	// Scheduler replaces the Fyne main-goroutine scheduler.
	Scheduler ports.Scheduler

	// Clock drives the position ticker (nil for the real clock).
	Clock clockwork.Clock
}

// NewApplication creates a new application with all dependencies wired.
func NewApplication(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	app := &Application{
		config:    cfg,
		logger:    logger.NewLogger(logger.FromSettings(cfg.Log.Level, cfg.Log.Format)),
		scheduler: opts.Scheduler,
	}
	app.logger.Info("initializing application",
		slog.String("version", GetVersionInfo().FullString()),
		slog.String("audio", cfg.Player.Audio),
		slog.String("storage", cfg.Storage.Backend))

	if opts.FyneApp != nil {
		app.fyneApp = opts.FyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(AppID)
	}
	if app.scheduler == nil {
		app.scheduler = fyneui.Scheduler{}
	}

	app.eventBus = eventbus.NewSyncEventBus(app.logger.With(slog.String("component", "eventbus")))

	if err := app.initAudio(); err != nil {
		return nil, err
	}
	if err := app.initStore(); err != nil {
		app.closeInfrastructure()
		return nil, err
	}

	app.wire(opts.Clock)

	if err := app.loadInitialState(); err != nil {
		app.logger.Warn("failed to load initial state", slog.Any("error", err))
	}

	return app, nil
}

func (a *Application) initAudio() error {
	log := a.logger.With(slog.String("adapter", "audio"), slog.String("engine", a.config.Player.Audio))

	var engine ports.AudioEngine
	switch a.config.Player.Audio {
	case config.AudioMock:
		m := mock.NewEngine(a.eventBus)
		m.SetLogger(log)
		engine = m
	default:
		engine = beep.NewEngine(log, a.eventBus)
	}

	if err := engine.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize audio engine: %w", err)
	}
	a.audioEngine = engine
	return nil
}

func (a *Application) initStore() error {
	log := a.logger.With(slog.String("adapter", "store"))

	switch a.config.Storage.Backend {
	case config.StoragePrefs:
		store, err := prefs.NewStore(a.fyneApp.Preferences(), log)
		if err != nil {
			return fmt.Errorf("failed to open preferences store: %w", err)
		}
		a.store = store
	default:
		path := a.config.DatabasePath()
		store, err := sqlite.Open(path, log)
		if err != nil {
			return fmt.Errorf("failed to open database %s: %w", path, err)
		}
		a.store = store
	}
	return nil
}

// wire builds the services and the window and connects them.
func (a *Application) wire(clock clockwork.Clock) {
	a.pages = listmodel.NewPages()
	gateway := service.NewListGateway(a.pages)

	a.mainWindow = fyneui.NewMainWindow(a.fyneApp, a.pages, a.config.Library.Extensions,
		a.logger.With(slog.String("component", "window")))
	dialogs := a.mainWindow.Dialogs()

	machine := service.NewPlaybackMachine(
		a.logger.With(slog.String("service", "playback")),
		a.audioEngine,
		a.eventBus,
	)

	a.orchestrator = service.NewOrchestrator(
		a.logger.With(slog.String("service", "orchestrator")),
		machine,
		gateway,
		a.store,
		dialogs,
		a.eventBus,
	)

	a.reporter = service.NewReporter(a.logger.With(slog.String("component", "reporter")), dialogs)

	a.playlists = service.NewPlaylistService(
		a.logger.With(slog.String("service", "playlist")),
		a.store,
		gateway,
		a.mainWindow,
		a.orchestrator,
		a.eventBus,
	)

	a.library = service.NewLibraryService(
		a.logger.With(slog.String("service", "library")),
		gateway,
		a.config.Library.Extensions,
	)

	a.nowPlaying = service.NewNowPlaying(
		a.logger.With(slog.String("service", "nowplaying")),
		metadata.NewReader(a.logger.With(slog.String("adapter", "metadata"))),
		a.mainWindow,
		a.reporter,
		a.eventBus,
	)

	a.ticker = service.NewPositionTicker(
		a.logger.With(slog.String("service", "ticker")),
		clock,
		a.config.TickInterval(),
		a.scheduler,
		a.orchestrator,
		a.mainWindow,
	)

	a.controller = service.NewController(
		a.logger.With(slog.String("component", "controller")),
		a.orchestrator,
		a.playlists,
		a.library,
		a.reporter,
		dialogs,
		a.ticker,
	)
	a.mainWindow.SetIntents(a.controller)

	// The engine reports the end of a track from its own goroutine.
	a.mediaEndedSub = a.eventBus.Subscribe(domain.EventMediaEnded, func(event domain.Event) {
		track := event.(domain.MediaEndedEvent).Track
		a.scheduler.Do(func() {
			a.controller.OnMediaEnded(track)
		})
	})
}

// loadInitialState applies the configured volume and fills the stored lists.
func (a *Application) loadInitialState() error {
	volume := a.config.Player.DefaultVolume
	if err := a.orchestrator.SetVolume(float64(volume)); err != nil {
		return fmt.Errorf("failed to set volume: %w", err)
	}
	a.mainWindow.SetVolume(volume)
	a.nowPlaying.Reset(a.orchestrator.Session())

	return errors.Join(a.playlists.Refresh(), a.playlists.LoadFavourites())
}

// Run shows the window and blocks until it is closed.
func (a *Application) Run() {
	a.logger.Info("beetbox started")
	a.ticker.Start()
	a.mainWindow.ShowAndRun()
}

// Shutdown gracefully shuts down the application. Calling it again returns
// the result of the first call.
func (a *Application) Shutdown() error {
	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		a.ticker.Stop()
		a.eventBus.Unsubscribe(a.mediaEndedSub)
		a.nowPlaying.Close()
		a.playlists.Close()

		if err := a.orchestrator.Stop(); err != nil {
			a.logger.Warn("failed to stop playback", slog.Any("error", err))
		}

		a.shutdownErr = a.closeInfrastructure()
		a.logger.Info("application shutdown complete")
	})
	return a.shutdownErr
}

// closeInfrastructure releases the engine, the store and the bus, in
// reverse order of creation.
func (a *Application) closeInfrastructure() error {
	var errs []error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	if a.audioEngine != nil {
		if err := a.audioEngine.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("shutdown audio engine: %w", err))
		}
	}
	if err := a.eventBus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close event bus: %w", err))
	}
	return errors.Join(errs...)
}

// Config returns the effective configuration.
func (a *Application) Config() *config.Config { return a.config }

// Controller returns the intent handler the window drives.
func (a *Application) Controller() *service.Controller { return a.controller }

// Orchestrator returns the playback orchestrator.
func (a *Application) Orchestrator() *service.Orchestrator { return a.orchestrator }

// Pages returns the page lists.
func (a *Application) Pages() *listmodel.Pages { return a.pages }

// Engine returns the audio engine.
func (a *Application) Engine() ports.AudioEngine { return a.audioEngine }

// Window returns the main window.
func (a *Application) Window() *fyneui.MainWindow { return a.mainWindow }
