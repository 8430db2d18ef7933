package catalog

import (
	"sort"
	"sync"

	"github.com/mmcdole/beatlib/internal/domain"
)

// AppState is any enclosing application state that embeds the catalog.
// All queries are synchronous reads; they never modify the state.
type AppState interface {
	SongsState() State
}

// AllSongs returns every song in ascending id order
func AllSongs(st AppState) []*domain.Song {
	byID := st.SongsState().ByID
	songs := make([]*domain.Song, 0, len(byID))
	for _, id := range sortedIDs(byID) {
		songs = append(songs, byID[id])
	}
	return songs
}

// AllSongIDs returns every song id in ascending order
func AllSongIDs(st AppState) []string {
	return sortedIDs(st.SongsState().ByID)
}

// AllSongsChronologically returns songs most recently opened first.
// Songs opened at the same instant keep ascending id order.
func AllSongsChronologically(st AppState) []*domain.Song {
	songs := AllSongs(st)
	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].LastOpenedAt > songs[j].LastOpenedAt
	})
	return songs
}

// ProcessingImport reports whether an import is pending
func ProcessingImport(st AppState) bool {
	return st.SongsState().ProcessingImport
}

// SongByID returns the song for id, or nil
func SongByID(st AppState, id string) *domain.Song {
	return st.SongsState().ByID[id]
}

// SelectedSongID returns the open song id, or "" when none is open
func SelectedSongID(st AppState) string {
	return st.SongsState().SelectedID
}

// SelectedSong returns the open song, or nil
func SelectedSong(st AppState) *domain.Song {
	return selectedSong(st.SongsState())
}

// SelectedSongDifficultyIDs returns the open song's difficulty ids sorted
// Easy to ExpertPlus, custom ids last. The result is cached against the
// selected song pointer and must not be modified by callers.
func SelectedSongDifficultyIDs(st AppState) []domain.DifficultyID {
	return selectedDifficultyIDs.get(SelectedSong(st))
}

// DemoSong returns the first demo song in id order, or nil
func DemoSong(st AppState) *domain.Song {
	for _, song := range AllSongs(st) {
		if song.Demo {
			return song
		}
	}
	return nil
}

// difficultyIDMemo caches the sorted ids of the last song it was asked about.
// Songs are immutable, so pointer identity is a sufficient cache key.
type difficultyIDMemo struct {
	mu   sync.Mutex
	song *domain.Song
	ids  []domain.DifficultyID
}

var selectedDifficultyIDs = &difficultyIDMemo{}

func (m *difficultyIDMemo) get(song *domain.Song) []domain.DifficultyID {
	if song == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.song != song {
		m.song = song
		m.ids = song.DifficultyIDs()
	}
	return m.ids
}

func sortedIDs(byID map[string]*domain.Song) []string {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
