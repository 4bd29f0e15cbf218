package service

import (
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// ListGateway resolves the list the user is looking at, so the
// orchestrator works the same way on songs, playlist and favourites.
type ListGateway struct {
	provider ports.ListProvider
}

// NewListGateway creates a gateway over provider.
func NewListGateway(provider ports.ListProvider) *ListGateway {
	return &ListGateway{provider: provider}
}

// CurrentList returns the list of the visible page, or false when that
// page has no list.
func (g *ListGateway) CurrentList() (ports.PlayableList, bool) {
	list, ok := g.provider.List(g.provider.CurrentPage())
	if !ok || list == nil {
		return nil, false
	}
	return list, true
}

// SelectedTrack returns the selected track of the current list. It is
// absent when there is no list, the list is empty, or nothing is selected.
func (g *ListGateway) SelectedTrack() (domain.Track, bool) {
	list, ok := g.CurrentList()
	if !ok || list.Len() == 0 {
		return "", false
	}
	idx, ok := list.Selected()
	if !ok || idx >= list.Len() {
		return "", false
	}
	return list.Track(idx), true
}

// ClearCurrentList removes every row of the current list. The store is
// not touched.
func (g *ListGateway) ClearCurrentList() {
	if list, ok := g.CurrentList(); ok {
		list.Clear()
	}
}

// BackingTable returns the store table of the current list, empty when
// there is none.
func (g *ListGateway) BackingTable() string {
	if list, ok := g.CurrentList(); ok {
		return list.Table()
	}
	return ""
}

// List returns the list shown on page.
func (g *ListGateway) List(page domain.Page) (ports.PlayableList, bool) {
	return g.provider.List(page)
}
