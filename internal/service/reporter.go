package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// Message titles.
const (
	TitleInfo     = "Attention!"
	TitleWarning  = "Warning"
	TitleCritical = "Error"
	TitleSuccess  = "Success"
)

// friendly texts for errors the user causes. Anything else is shown with
// its details.
var friendly = []struct {
	err error
	msg string
}{
	{domain.ErrEmptyList, "List is empty!"},
	{domain.ErrNoSelection, "No song selected!"},
	{domain.ErrNothingChosen, "No files selected."},
	{domain.ErrNoPlaylist, "No playlist selected!"},
	{domain.ErrDuplicateTrack, "Song is already in this list."},
	{domain.ErrPlaylistExists, "A playlist with this name already exists."},
	{domain.ErrInvalidTableName, "A playlist name may contain Latin, Cyrillic and Ukrainian letters, " +
		"digits, spaces, underscores, dashes and exclamation marks."},
	{domain.ErrInvalidVolume, "Volume must be a whole number between 0 and 100."},
}

// Reporter turns operation results into user messages. It is the only
// place where errors are classified for display.
type Reporter struct {
	logger   *slog.Logger
	notifier ports.Notifier
}

// NewReporter creates a reporter writing to notifier.
func NewReporter(logger *slog.Logger, notifier ports.Notifier) *Reporter {
	return &Reporter{logger: logger, notifier: notifier}
}

// Report shows err as an info, warning or critical message according to
// domain.KindOf. A nil error shows nothing. op names what the user tried
// to do, e.g. "Playing song".
func (r *Reporter) Report(op string, err error) {
	kind := domain.KindOf(err)
	if kind == domain.KindNone {
		return
	}

	msg := Describe(op, err)
	r.logger.Log(context.Background(), levelFor(kind), "operation failed",
		slog.String("op", op), slog.String("kind", kind.String()), slog.Any("error", err))

	switch kind {
	case domain.KindInfo:
		r.notifier.Info(TitleInfo, msg)
	case domain.KindWarning:
		r.notifier.Warning(TitleWarning, msg)
	default:
		r.notifier.Critical(TitleCritical, msg)
	}
}

// Success shows a confirmation message.
func (r *Reporter) Success(message string) {
	r.notifier.Info(TitleSuccess, message)
}

// Warn shows a warning that did not stop the operation.
func (r *Reporter) Warn(message string) {
	r.notifier.Warning(TitleWarning, message)
}

// Describe returns the text shown for err.
func Describe(op string, err error) string {
	for _, f := range friendly {
		if errors.Is(err, f.err) {
			return f.msg
		}
	}
	return fmt.Sprintf("%s failed.\nError details: %v", op, err)
}

func levelFor(kind domain.ErrorKind) slog.Level {
	switch kind {
	case domain.KindInfo:
		return slog.LevelDebug
	case domain.KindWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
