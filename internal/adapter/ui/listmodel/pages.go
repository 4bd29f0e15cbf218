package listmodel

import (
	"sync"

	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// Pages holds the three page lists and tracks which page is visible.
type Pages struct {
	mu      sync.RWMutex
	current domain.Page

	songs      *List
	playlist   *List
	favourites *List
}

// NewPages creates the loaded-songs list (unpersisted), an empty playlist
// list with no playlist loaded, and the favourites list.
func NewPages() *Pages {
	return &Pages{
		current:    domain.PageSongs,
		songs:      New(""),
		playlist:   New(""),
		favourites: New(domain.FavouritesTable),
	}
}

// CurrentPage returns the visible page.
func (p *Pages) CurrentPage() domain.Page {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// SetCurrentPage records the visible page. Any value is accepted; pages
// without a list resolve to no list.
func (p *Pages) SetCurrentPage(page domain.Page) {
	p.mu.Lock()
	p.current = page
	p.mu.Unlock()
}

// List returns the list shown on page.
func (p *Pages) List(page domain.Page) (ports.PlayableList, bool) {
	switch page {
	case domain.PageSongs:
		return p.songs, true
	case domain.PagePlaylist:
		return p.playlist, true
	case domain.PageFavourites:
		return p.favourites, true
	default:
		return nil, false
	}
}

// Songs returns the loaded-songs list.
func (p *Pages) Songs() *List { return p.songs }

// Playlist returns the active playlist's song list.
func (p *Pages) Playlist() *List { return p.playlist }

// Favourites returns the favourites list.
func (p *Pages) Favourites() *List { return p.favourites }

var _ ports.ListProvider = (*Pages)(nil)
