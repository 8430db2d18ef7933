// Package catalog holds the in-memory song catalog: its state, the actions
// that transition it, and the read-only views derived from it.
package catalog

import "github.com/mmcdole/beatlib/internal/domain"

// State is one immutable generation of the catalog.
//
// Songs reachable from a State are never modified. Transitions that change a
// song allocate a replacement *Song and a new ByID map, sharing every
// untouched song with the previous generation.
type State struct {
	ByID             map[string]*domain.Song
	SelectedID       string // empty when no song is open
	ProcessingImport bool
}

// NewState returns an empty catalog
func NewState() State {
	return State{ByID: map[string]*domain.Song{}}
}

// FromSongs returns a catalog holding songs, keyed by their ids
func FromSongs(songs []*domain.Song) State {
	s := NewState()
	for _, song := range songs {
		if song == nil {
			continue
		}
		s.ByID[song.ID] = song
	}
	return s
}

// SongsState lets State serve as its own enclosing application state.
func (s State) SongsState() State { return s }

// song looks up id, returning a NotFoundError when absent
func (s State) song(id string) (*domain.Song, error) {
	song, ok := s.ByID[id]
	if !ok || song == nil {
		return nil, domain.SongNotFound(id)
	}
	return song, nil
}

// withSong returns a copy of s whose ByID maps song.ID to song
func (s State) withSong(song *domain.Song) State {
	byID := make(map[string]*domain.Song, len(s.ByID)+1)
	for id, existing := range s.ByID {
		byID[id] = existing
	}
	byID[song.ID] = song
	s.ByID = byID
	return s
}

// withoutSong returns a copy of s with id removed from ByID
func (s State) withoutSong(id string) State {
	byID := make(map[string]*domain.Song, len(s.ByID))
	for existingID, existing := range s.ByID {
		if existingID != id {
			byID[existingID] = existing
		}
	}
	s.ByID = byID
	return s
}

// copySong returns a shallow copy of song. The difficulties map and mod
// settings stay shared until the caller replaces them.
func copySong(song *domain.Song) *domain.Song {
	c := *song
	return &c
}

func copyDifficulties(src map[domain.DifficultyID]domain.Difficulty) map[domain.DifficultyID]domain.Difficulty {
	dst := make(map[domain.DifficultyID]domain.Difficulty, len(src)+1)
	for id, d := range src {
		dst[id] = d
	}
	return dst
}

func copyModSettings(src *domain.ModSettings) *domain.ModSettings {
	if src == nil {
		return &domain.ModSettings{}
	}
	c := *src
	if src.MappingExtensions != nil {
		grid := *src.MappingExtensions
		c.MappingExtensions = &grid
	}
	if src.CustomColors != nil {
		colors := *src.CustomColors
		c.CustomColors = &colors
	}
	return &c
}
