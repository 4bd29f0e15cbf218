package widgets

import (
	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// SeekSlider is a slider that tells its owner when the user grabs it and
// where they let go, so programmatic updates can pause during a drag.
type SeekSlider struct {
	widget.Slider

	// OnDragStarted runs once at the start of every drag.
	OnDragStarted func()
	// OnReleased runs with the position as a fraction of the range when a
	// drag ends or the track is tapped.
	OnReleased func(fraction float64)

	dragging bool
}

// NewSeekSlider creates a slider over 0 to max.
func NewSeekSlider(max float64) *SeekSlider {
	s := &SeekSlider{}
	s.Min = 0
	s.Max = max
	s.Step = max / 1000
	s.ExtendBaseWidget(s)
	return s
}

// Dragging reports whether the user is holding the slider.
func (s *SeekSlider) Dragging() bool {
	return s.dragging
}

// SetFraction moves the thumb without firing any callback.
// It is ignored while the user drags.
func (s *SeekSlider) SetFraction(fraction float64) {
	if s.dragging {
		return
	}
	s.Value = fraction * s.Max
	s.Refresh()
}

// Dragged implements fyne.Draggable.
func (s *SeekSlider) Dragged(e *fyneapp.DragEvent) {
	if !s.dragging {
		s.dragging = true
		if s.OnDragStarted != nil {
			s.OnDragStarted()
		}
	}
	s.Slider.Dragged(e)
}

// DragEnd implements fyne.Draggable.
func (s *SeekSlider) DragEnd() {
	s.Slider.DragEnd()
	s.dragging = false
	s.release()
}

// Tapped implements fyne.Tappable.
func (s *SeekSlider) Tapped(e *fyneapp.PointEvent) {
	s.Slider.Tapped(e)
	s.release()
}

func (s *SeekSlider) release() {
	if s.OnReleased == nil || s.Max <= 0 {
		return
	}
	s.OnReleased(s.Value / s.Max)
}
