// Package listmodel provides the toolkit-independent track lists behind the
// three pages of the player. The Fyne window renders these models; tests
// and headless runs use them directly.
package listmodel

import (
	"slices"
	"sync"

	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

const noSelection = -1

// List is an ordered, duplicate-free list of tracks with an optional selection.
//
// Thread-safety: all methods are safe for concurrent use. Change listeners
// run after the lock is released.
type List struct {
	mu       sync.RWMutex
	tracks   []domain.Track
	selected int
	table    string

	listeners []func()
}

// New creates an empty list backed by table (empty for an unpersisted list).
func New(table string) *List {
	return &List{selected: noSelection, table: table}
}

// OnChange registers fn to run after every mutation.
func (l *List) OnChange(fn func()) {
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	l.mu.Unlock()
}

func (l *List) changed() {
	l.mu.RLock()
	listeners := slices.Clone(l.listeners)
	l.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}

// Len returns the number of tracks.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.tracks)
}

// Selected returns the selected index.
func (l *List) Selected() (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.selected == noSelection {
		return 0, false
	}
	return l.selected, true
}

// Select moves the selection; an out-of-range index clears it.
func (l *List) Select(index int) {
	l.mu.Lock()
	if index < 0 || index >= len(l.tracks) {
		index = noSelection
	}
	l.selected = index
	l.mu.Unlock()
	l.changed()
}

// Track returns the track at index.
func (l *List) Track(index int) domain.Track {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tracks[index]
}

// Tracks returns a copy of the tracks.
func (l *List) Tracks() []domain.Track {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.tracks)
}

// Append adds tracks that are not already present.
func (l *List) Append(tracks ...domain.Track) {
	l.mu.Lock()
	for _, t := range tracks {
		if t != "" && !slices.Contains(l.tracks, t) {
			l.tracks = append(l.tracks, t)
		}
	}
	l.mu.Unlock()
	l.changed()
}

// Replace swaps the content and clears the selection.
func (l *List) Replace(tracks []domain.Track) {
	l.mu.Lock()
	l.tracks = l.tracks[:0]
	for _, t := range tracks {
		if t != "" && !slices.Contains(l.tracks, t) {
			l.tracks = append(l.tracks, t)
		}
	}
	l.selected = noSelection
	l.mu.Unlock()
	l.changed()
}

// Remove deletes the row at index and clears the selection.
// Out-of-range indexes are ignored.
func (l *List) Remove(index int) {
	l.mu.Lock()
	if index < 0 || index >= len(l.tracks) {
		l.mu.Unlock()
		return
	}
	l.tracks = slices.Delete(l.tracks, index, index+1)
	l.selected = noSelection
	l.mu.Unlock()
	l.changed()
}

// Clear removes every row.
func (l *List) Clear() {
	l.mu.Lock()
	l.tracks = nil
	l.selected = noSelection
	l.mu.Unlock()
	l.changed()
}

// Table returns the backing table.
func (l *List) Table() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.table
}

// SetTable changes the backing table.
func (l *List) SetTable(name string) {
	l.mu.Lock()
	l.table = name
	l.mu.Unlock()
}

var _ ports.PlayableList = (*List)(nil)
