package fyne

import (
	"log/slog"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// Dialogs shows modal messages and questions over a window.
type Dialogs struct {
	window fyneapp.Window
	logger *slog.Logger
}

// NewDialogs creates dialogs parented to window.
func NewDialogs(window fyneapp.Window, logger *slog.Logger) *Dialogs {
	return &Dialogs{window: window, logger: logger}
}

// Info shows an informational message.
func (d *Dialogs) Info(title, message string) {
	dialog.ShowInformation(title, message, d.window)
}

// Warning shows a warning.
func (d *Dialogs) Warning(title, message string) {
	dialog.ShowInformation(title, message, d.window)
}

// Critical shows an error message.
func (d *Dialogs) Critical(title, message string) {
	dialog.NewCustom(title, "OK", widget.NewLabel(message), d.window).Show()
}

// Confirm asks a yes/cancel question. onAnswer runs on the main goroutine
// once the dialog is dismissed.
func (d *Dialogs) Confirm(title, message string, onAnswer func(bool)) {
	dialog.ShowConfirm(title, message, onAnswer, d.window)
}

// AskName asks for a playlist name. onName is not called when the user cancels.
func (d *Dialogs) AskName(title string, onName func(string)) {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Playlist name")
	items := []*widget.FormItem{widget.NewFormItem("Name", entry)}
	dialog.ShowForm(title, "Create", "Cancel", items, func(ok bool) {
		if ok {
			onName(entry.Text)
		}
	}, d.window)
}

// OpenFile asks for an audio file. Cancelling calls onFiles with nothing,
// which the caller reports as "no files selected".
func (d *Dialogs) OpenFile(extensions []string, onFiles func([]string)) {
	fd := dialog.NewFileOpen(func(reader fyneapp.URIReadCloser, err error) {
		if err != nil {
			d.logger.Error("file dialog error", slog.Any("error", err))
			return
		}
		if reader == nil {
			onFiles(nil)
			return
		}
		defer reader.Close()
		onFiles([]string{reader.URI().Path()})
	}, d.window)
	if len(extensions) > 0 {
		fd.SetFilter(storage.NewExtensionFileFilter(extensions))
	}
	fd.Show()
}

// OpenFolder asks for a folder to scan.
func (d *Dialogs) OpenFolder(onFolder func(string)) {
	dialog.ShowFolderOpen(func(uri fyneapp.ListableURI, err error) {
		if err != nil {
			d.logger.Error("folder dialog error", slog.Any("error", err))
			return
		}
		if uri == nil {
			return // User cancelled
		}
		onFolder(uri.Path())
	}, d.window)
}

var (
	_ ports.Notifier  = (*Dialogs)(nil)
	_ ports.Confirmer = (*Dialogs)(nil)
)
