// Package res holds static content shown by the window.
package res

// AboutContent contains the Markdown content for the About dialog.
const AboutContent = `A small desktop music player built with Go and Fyne.

**Features:**
- Play MP3, FLAC, WAV and Ogg Vorbis files
- Loop and shuffle navigation
- Playlists and favourites kept in SQLite
`
