package fyne

import (
	"path/filepath"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/ui/listmodel"
)

// TrackList renders a listmodel.List and keeps the widget selection and the
// model selection in step.
type TrackList struct {
	model  *listmodel.List
	widget *widget.List

	// syncing is set while the model pushes its selection into the widget,
	// so the widget callback does not echo it back.
	syncing bool

	onActivate    func(index int)
	onContextMenu func(index int, pos fyneapp.Position)
}

// NewTrackList builds the widget for model. onActivate runs when a row is
// double-tapped, onContextMenu on a secondary tap.
func NewTrackList(
	model *listmodel.List,
	onActivate func(index int),
	onContextMenu func(index int, pos fyneapp.Position),
) *TrackList {
	t := &TrackList{
		model:         model,
		onActivate:    onActivate,
		onContextMenu: onContextMenu,
	}

	t.widget = widget.NewList(
		t.model.Len,
		t.createCell,
		t.updateCell,
	)
	t.widget.OnSelected = func(id widget.ListItemID) {
		if t.syncing {
			return
		}
		t.model.Select(id)
	}
	t.widget.OnUnselected = func(widget.ListItemID) {}

	model.OnChange(t.sync)
	return t
}

// Widget returns the canvas object to place in a layout.
func (t *TrackList) Widget() *widget.List {
	return t.widget
}

func (t *TrackList) createCell() fyneapp.CanvasObject {
	label := widgets.NewDoubleTapLabel(t.activate)
	label.Truncation = fyneapp.TextTruncateEllipsis
	label.SetSecondaryTapped(t.contextMenu)
	return label
}

func (t *TrackList) updateCell(i widget.ListItemID, obj fyneapp.CanvasObject) {
	label, ok := obj.(*widgets.DoubleTapLabel)
	if !ok || i >= t.model.Len() {
		return
	}
	label.SetIndex(i)
	label.SetText(filepath.Base(t.model.Track(i).String()))
}

func (t *TrackList) activate(index int) {
	t.model.Select(index)
	if t.onActivate != nil {
		t.onActivate(index)
	}
}

func (t *TrackList) contextMenu(index int, pos fyneapp.Position) {
	t.model.Select(index)
	if t.onContextMenu != nil {
		t.onContextMenu(index, pos)
	}
}

// sync redraws the rows and mirrors the model selection.
func (t *TrackList) sync() {
	t.syncing = true
	defer func() { t.syncing = false }()

	t.widget.Refresh()
	if idx, ok := t.model.Selected(); ok {
		t.widget.Select(idx)
	} else {
		t.widget.UnselectAll()
	}
}
