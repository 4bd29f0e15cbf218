package widgets

import "strings"

// Marquee scrolls text that is wider than its window one rune at a time.
type Marquee struct {
	runes []rune
	width int
}

// NewMarquee creates a marquee showing width runes of text.
// A few spaces separate the end of the text from its start.
func NewMarquee(text string, width int) *Marquee {
	return &Marquee{runes: []rune(strings.Repeat(" ", 4) + text), width: width}
}

// Text returns the text as it currently stands.
func (m *Marquee) Text() string {
	return string(m.runes)
}

// Scrolls reports whether the text is wide enough to scroll.
func (m *Marquee) Scrolls() bool {
	return len(m.runes) > m.width
}

// Rotate moves the first rune to the end and returns the new text.
// Short text is returned unchanged.
func (m *Marquee) Rotate() string {
	if !m.Scrolls() {
		return m.Text()
	}
	m.runes = append(m.runes[1:], m.runes[0])
	return m.Text()
}
