// Package fyne provides the Fyne UI adapter: the main window with its three
// track pages, the transport controls and the modal dialogs.
package fyne

import (
	"log/slog"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/ui/listmodel"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
	"github.com/tejashwikalptaru/beetbox/res"
)

const (
	APPNAME         = "beetbox"
	WIDTH   float32 = 640
	HEIGHT  float32 = 520

	// marqueeWidth is the number of runes of the title shown at once.
	marqueeWidth = 48
	volumeStep   = 5
)

// Intents receives the user's actions. service.Controller implements it.
type Intents interface {
	OnPlay()
	OnPauseResume()
	OnStop()
	OnNext()
	OnPrevious()
	OnDelete()
	OnClearAll()
	OnToggleLoop()
	OnToggleShuffle()
	OnVolumeChanged(value float64)
	OnSeekStarted()
	OnSeekReleased(fraction float64)
	OnAddToFavourites()
	OnAddAllToFavourites()
	OnAddToPlaylist(playlist string)
	OnAddAllToPlaylist(playlist string)
	OnCreatePlaylist(name string)
	OnDeletePlaylist(name string)
	OnDeleteAllPlaylists()
	OnLoadPlaylist(name string)
	OnShowFavourites()
	OnAddFiles(paths []string)
	OnAddFolder(dir string)
}

// MainWindow is a "dumb view": it renders the page lists and the now-playing
// state and forwards every interaction to Intents.
type MainWindow struct {
	app     fyneapp.App
	window  fyneapp.Window
	pages   *listmodel.Pages
	dialogs *Dialogs
	logger  *slog.Logger

	extensions []string

	// UI components
	tabs           *container.AppTabs
	lists          map[domain.Page]*TrackList
	playlistSelect *widget.Select
	prevButton     *widget.Button
	playButton     *widget.Button
	pauseButton    *widget.Button
	stopButton     *widget.Button
	nextButton     *widget.Button
	loopButton     *widget.Button
	shuffleButton  *widget.Button
	deleteButton   *widget.Button
	clearButton    *widget.Button
	titleLabel     *widget.Label
	albumLabel     *widget.Label
	durationLabel  *widget.Label
	positionLabel  *widget.Label
	volumeLabel    *widget.Label
	volumeSlider   *widget.Slider
	positionSlider *widgets.SeekSlider

	marquee *widgets.Marquee

	intents   Intents
	closeOnce sync.Once
}

// NewMainWindow creates the main window over pages. extensions filters the
// file chooser.
func NewMainWindow(app fyneapp.App, pages *listmodel.Pages, extensions []string, logger *slog.Logger) *MainWindow {
	w := &MainWindow{
		app:        app,
		pages:      pages,
		logger:     logger,
		extensions: extensions,
		lists:      make(map[domain.Page]*TrackList),
	}

	w.window = app.NewWindow(APPNAME)
	w.dialogs = NewDialogs(w.window, logger)
	w.buildUI()

	w.window.Resize(fyneapp.NewSize(WIDTH, HEIGHT))
	return w
}

// SetIntents connects the action handler to this view.
// This must be called before showing the window.
func (w *MainWindow) SetIntents(intents Intents) {
	w.intents = intents
	w.wireHandlers()
	w.addShortcuts()
}

// Dialogs returns the notifier and confirmer bound to this window.
func (w *MainWindow) Dialogs() *Dialogs {
	return w.dialogs
}

// Window returns the underlying Fyne window.
func (w *MainWindow) Window() fyneapp.Window {
	return w.window
}

// buildUI constructs the UI components.
func (w *MainWindow) buildUI() {
	for _, page := range []domain.Page{domain.PageSongs, domain.PagePlaylist, domain.PageFavourites} {
		model := w.pageList(page)
		w.lists[page] = NewTrackList(model, w.onRowActivated, w.showRowMenu)
	}

	w.playlistSelect = widget.NewSelect(nil, nil)
	w.playlistSelect.PlaceHolder = "Choose a playlist"
	newPlaylist := widget.NewButtonWithIcon("", theme.ContentAddIcon(), w.askPlaylistName)
	deletePlaylist := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		w.intents.OnDeletePlaylist(w.playlistSelect.Selected)
	})
	playlistBar := container.NewBorder(nil, nil, nil,
		container.NewHBox(newPlaylist, deletePlaylist), w.playlistSelect)

	w.tabs = container.NewAppTabs(
		container.NewTabItem("Songs", w.lists[domain.PageSongs].Widget()),
		container.NewTabItem("Playlist", container.NewBorder(playlistBar, nil, nil, nil,
			w.lists[domain.PagePlaylist].Widget())),
		container.NewTabItem("Favourites", w.lists[domain.PageFavourites].Widget()),
	)

	// Now playing
	w.titleLabel = widget.NewLabel("")
	w.titleLabel.Truncation = fyneapp.TextTruncateClip
	w.titleLabel.TextStyle = fyneapp.TextStyle{Bold: true, Italic: true}
	w.albumLabel = widget.NewLabel("")
	w.durationLabel = widget.NewLabel("")
	w.positionLabel = widget.NewLabel(domain.ClearedPosition)
	w.positionSlider = widgets.NewSeekSlider(1)

	info := container.NewVBox(
		w.titleLabel,
		container.NewBorder(nil, nil, nil, w.durationLabel, w.albumLabel),
		container.NewBorder(nil, nil, nil, w.positionLabel, w.positionSlider),
	)

	// Control buttons
	w.prevButton = widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), nil)
	w.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), nil)
	w.pauseButton = widget.NewButtonWithIcon("", theme.MediaPauseIcon(), nil)
	w.stopButton = widget.NewButtonWithIcon("", theme.MediaStopIcon(), nil)
	w.nextButton = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), nil)
	w.loopButton = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), nil)
	w.shuffleButton = widget.NewButton("Shuffle", nil)
	w.deleteButton = widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
	w.clearButton = widget.NewButtonWithIcon("", theme.ContentClearIcon(), nil)

	// Volume slider
	w.volumeSlider = widget.NewSlider(0, domain.MaxVolume)
	w.volumeSlider.Value = domain.DefaultVolume
	w.volumeLabel = widget.NewLabel("")
	volumeHolder := container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel("Volume:"), w.volumeLabel), nil, w.volumeSlider)

	buttons := container.NewHBox(
		w.prevButton, w.playButton, w.pauseButton, w.stopButton, w.nextButton,
		w.loopButton, w.shuffleButton, w.deleteButton, w.clearButton,
	)
	controls := container.NewVBox(info, container.NewBorder(nil, nil, buttons, nil, volumeHolder))

	w.window.SetContent(container.NewPadded(container.NewBorder(nil, controls, nil, nil, w.tabs)))
	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

func (w *MainWindow) pageList(page domain.Page) *listmodel.List {
	switch page {
	case domain.PagePlaylist:
		return w.pages.Playlist()
	case domain.PageFavourites:
		return w.pages.Favourites()
	default:
		return w.pages.Songs()
	}
}

// wireHandlers connects UI events to the intents.
func (w *MainWindow) wireHandlers() {
	w.prevButton.OnTapped = w.intents.OnPrevious
	w.playButton.OnTapped = w.intents.OnPlay
	w.pauseButton.OnTapped = w.intents.OnPauseResume
	w.stopButton.OnTapped = w.intents.OnStop
	w.nextButton.OnTapped = w.intents.OnNext
	w.loopButton.OnTapped = w.intents.OnToggleLoop
	w.shuffleButton.OnTapped = w.intents.OnToggleShuffle
	w.deleteButton.OnTapped = w.intents.OnDelete
	w.clearButton.OnTapped = w.intents.OnClearAll

	w.volumeSlider.OnChanged = w.intents.OnVolumeChanged
	w.positionSlider.OnDragStarted = w.intents.OnSeekStarted
	w.positionSlider.OnReleased = w.intents.OnSeekReleased

	w.playlistSelect.OnChanged = func(name string) {
		if name != "" {
			w.intents.OnLoadPlaylist(name)
		}
	}

	w.tabs.OnSelected = func(*container.TabItem) {
		page := domain.Page(w.tabs.SelectedIndex())
		w.pages.SetCurrentPage(page)
		if page == domain.PageFavourites {
			w.intents.OnShowFavourites()
		}
	}
}

func (w *MainWindow) onRowActivated(int) {
	if w.intents != nil {
		w.intents.OnPlay()
	}
}

// showRowMenu pops up the per-track actions at pos.
func (w *MainWindow) showRowMenu(_ int, pos fyneapp.Position) {
	if w.intents == nil {
		return
	}
	items := []*fyneapp.MenuItem{
		fyneapp.NewMenuItem("Play", w.intents.OnPlay),
		fyneapp.NewMenuItem("Add to favourites", w.intents.OnAddToFavourites),
		fyneapp.NewMenuItem("Add to playlist", func() {
			w.intents.OnAddToPlaylist(w.playlistSelect.Selected)
		}),
		fyneapp.NewMenuItemSeparator(),
		fyneapp.NewMenuItem("Remove", w.intents.OnDelete),
	}
	widget.ShowPopUpMenuAtPosition(fyneapp.NewMenu("", items...), w.window.Canvas(), pos)
}

// createMenu creates the application menu.
func (w *MainWindow) createMenu() []*fyneapp.Menu {
	separator := fyneapp.NewMenuItemSeparator()

	addFiles := fyneapp.NewMenuItem("Add Files", func() {
		w.dialogs.OpenFile(w.extensions, w.intents.OnAddFiles)
	})
	addFolder := fyneapp.NewMenuItem("Add Folder", func() {
		w.dialogs.OpenFolder(w.intents.OnAddFolder)
	})
	exitMenu := fyneapp.NewMenuItem("Exit", func() {
		w.window.Close()
	})
	file := fyneapp.NewMenu("File", addFiles, addFolder, separator, exitMenu)

	newPlaylist := fyneapp.NewMenuItem("New Playlist", w.askPlaylistName)
	addAll := fyneapp.NewMenuItem("Add All to Playlist", func() {
		w.intents.OnAddAllToPlaylist(w.playlistSelect.Selected)
	})
	addAllFav := fyneapp.NewMenuItem("Add All to Favourites", func() {
		w.intents.OnAddAllToFavourites()
	})
	deleteAll := fyneapp.NewMenuItem("Delete All Playlists", func() {
		w.intents.OnDeleteAllPlaylists()
	})
	playlists := fyneapp.NewMenu("Playlists", newPlaylist, addAll, addAllFav, separator, deleteAll)

	about := fyneapp.NewMenuItem("About", func() {
		dialog.ShowCustom("About "+APPNAME, "Close", widget.NewRichTextFromMarkdown(res.AboutContent), w.window)
	})
	help := fyneapp.NewMenu("Help", about)

	return []*fyneapp.Menu{file, playlists, help}
}

func (w *MainWindow) askPlaylistName() {
	w.dialogs.AskName("New Playlist", w.intents.OnCreatePlaylist)
}

// addShortcuts adds keyboard shortcuts.
func (w *MainWindow) addShortcuts() {
	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyUp,
		Modifier: fyneapp.KeyModifierAlt,
	}, func(fyneapp.Shortcut) {
		w.volumeSlider.SetValue(min(w.volumeSlider.Value+volumeStep, domain.MaxVolume))
	})

	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyDown,
		Modifier: fyneapp.KeyModifierAlt,
	}, func(fyneapp.Shortcut) {
		w.volumeSlider.SetValue(max(w.volumeSlider.Value-volumeStep, 0))
	})
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// SetOnClosed registers fn to run when the window closes.
func (w *MainWindow) SetOnClosed(fn func()) {
	w.window.SetOnClosed(fn)
}

// Close closes the window. It's safe to call multiple times.
func (w *MainWindow) Close() {
	w.closeOnce.Do(w.window.Close)
}

// NowPlayingView implementation

// ShowTrackInfo displays the playing track.
func (w *MainWindow) ShowTrackInfo(info domain.TrackInfo) {
	w.marquee = widgets.NewMarquee(info.Artist+" - "+info.Title, marqueeWidth)
	w.titleLabel.SetText(w.marquee.Text())
	w.albumLabel.SetText(info.Album)
	w.durationLabel.SetText(domain.FormatDuration(info.Duration))
}

// ClearTrackInfo resets the display to its idle state.
func (w *MainWindow) ClearTrackInfo() {
	w.marquee = nil
	w.titleLabel.SetText("")
	w.albumLabel.SetText("")
	w.durationLabel.SetText("")
}

// SetVolumeLabel shows the volume text.
func (w *MainWindow) SetVolumeLabel(text string) {
	w.volumeLabel.SetText(text)
}

// SetVolume moves the volume slider without firing its handler.
func (w *MainWindow) SetVolume(volume int) {
	w.volumeSlider.Value = float64(volume)
	w.volumeSlider.Refresh()
}

// SetPosition shows the position and scrolls a long title one step.
func (w *MainWindow) SetPosition(text string, fraction float64) {
	w.positionLabel.SetText(text)
	w.positionSlider.SetFraction(fraction)
	if w.marquee != nil && w.marquee.Scrolls() {
		w.titleLabel.SetText(w.marquee.Rotate())
	}
}

// SetLoopControlEnabled enables or disables the loop toggle.
func (w *MainWindow) SetLoopControlEnabled(enabled bool) {
	setEnabled(w.loopButton, enabled)
}

// SetShuffleControlEnabled enables or disables the shuffle toggle.
func (w *MainWindow) SetShuffleControlEnabled(enabled bool) {
	setEnabled(w.shuffleButton, enabled)
}

// SetPlaylists refreshes the playlist chooser. A selection that no longer
// exists is cleared.
func (w *MainWindow) SetPlaylists(names []string) {
	selected := w.playlistSelect.Selected
	w.playlistSelect.SetOptions(names)
	for _, n := range names {
		if n == selected {
			return
		}
	}
	w.playlistSelect.ClearSelected()
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

var (
	_ ports.NowPlayingView = (*MainWindow)(nil)
	_ ports.PlaylistView   = (*MainWindow)(nil)
)
