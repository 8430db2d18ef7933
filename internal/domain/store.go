package domain

// SongStore persists catalog songs between sessions (BoltDB + memory).
// Selection and import flags are session state and are not stored.
type SongStore interface {
	GetSongs() ([]*Song, error)
	SaveSong(song *Song) error
	DeleteSong(songID string) error

	Close() error
}
