package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/beatlib/internal/catalog"
	"github.com/mmcdole/beatlib/internal/domain"
	"github.com/mmcdole/beatlib/internal/songpkg"
)

// CatalogService is the dispatch layer around the catalog: it owns the
// current state, runs actions through catalog.Reduce, and persists the songs
// each action changed.
type CatalogService struct {
	mu     sync.Mutex
	state  catalog.State
	store  domain.SongStore
	logger *slog.Logger

	// Now supplies timestamps for import and open; replaced in tests
	Now func() time.Time
}

// NewCatalogService creates a catalog service backed by store
func NewCatalogService(store domain.SongStore, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		state:  catalog.NewState(),
		store:  store,
		logger: logger,
		Now:    time.Now,
	}
}

// Load replaces the in-memory catalog with the songs in the store.
// Selection and import flags reset.
func (s *CatalogService) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	songs, err := s.store.GetSongs()
	if err != nil {
		s.logger.Error("failed to load songs", "error", err)
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	s.mu.Lock()
	s.state = catalog.FromSongs(songs)
	s.mu.Unlock()

	s.logger.Debug("loaded catalog", "count", len(songs))
	return nil
}

// State returns the current catalog snapshot. Snapshots are immutable and
// safe to read while further actions are dispatched.
func (s *CatalogService) State() catalog.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SongsState lets the service be passed directly to catalog queries.
func (s *CatalogService) SongsState() catalog.State {
	return s.State()
}

// Dispatch applies action and persists the result.
//
// A rejected action leaves the state unchanged and returns the reducer's
// error. A persistence failure is returned too, but the new state is kept:
// the in-memory catalog stays authoritative for the session.
func (s *CatalogService) Dispatch(ctx context.Context, action catalog.Action) (catalog.State, error) {
	if err := ctx.Err(); err != nil {
		return s.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(action)
}

// dispatchLocked is Dispatch with s.mu already held
func (s *CatalogService) dispatchLocked(action catalog.Action) (catalog.State, error) {
	prev := s.state
	next, err := catalog.Reduce(prev, action)
	if err != nil {
		s.logger.Warn("action rejected", "action", action.Kind(), "error", err)
		return prev, err
	}
	s.state = next

	s.logger.Debug("dispatched action", "action", action.Kind(), "songs", len(next.ByID), "selectedID", next.SelectedID)

	if err := s.persist(prev, next); err != nil {
		s.logger.Error("failed to persist catalog", "action", action.Kind(), "error", err)
		return next, fmt.Errorf("failed to persist catalog: %w", err)
	}
	return next, nil
}

// persist writes songs whose pointer changed between prev and next and
// removes songs that disappeared.
func (s *CatalogService) persist(prev, next catalog.State) error {
	for id, song := range next.ByID {
		if prev.ByID[id] == song {
			continue
		}
		if err := s.store.SaveSong(song); err != nil {
			return fmt.Errorf("save %s: %w", id, err)
		}
	}
	for id := range prev.ByID {
		if _, ok := next.ByID[id]; ok {
			continue
		}
		if err := s.store.DeleteSong(id); err != nil {
			return fmt.Errorf("delete %s: %w", id, err)
		}
	}
	return nil
}

// ImportPackage imports the song package at path and returns the new song.
// The import flag is raised for the duration and cleared on failure.
// A package whose id is already taken is imported under the next free
// numbered id ("believer-2") so existing songs are never replaced.
func (s *CatalogService) ImportPackage(ctx context.Context, path string) (*domain.Song, error) {
	if _, err := s.Dispatch(ctx, catalog.StartImportingSong{}); err != nil {
		return nil, err
	}

	data, err := songpkg.Load(path)
	if err != nil {
		s.logger.Error("failed to import song package", "path", path, "error", err)
		if _, cancelErr := s.Dispatch(ctx, catalog.CancelImportingSong{}); cancelErr != nil {
			s.logger.Error("failed to cancel import", "error", cancelErr)
		}
		return nil, err
	}

	s.mu.Lock()
	if id := uniqueSongID(s.state, data.SongID); id != data.SongID {
		s.logger.Info("song id already in catalog", "songID", data.SongID, "newID", id)
		data.SongID = id
	}
	now := s.Now().UnixMilli()
	state, err := s.dispatchLocked(catalog.ImportExistingSong{
		CreatedAt:    now,
		LastOpenedAt: now,
		SongData:     data,
	})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.logger.Info("imported song", "songID", data.SongID, "difficulties", len(data.DifficultiesByID))
	return state.ByID[data.SongID], nil
}

// CreateSong adds a blank song built from a and leaves it open in the
// editor. An empty SongID is derived from the name; ids already in the
// catalog get a numeric suffix. Timestamps come from Now.
func (s *CatalogService) CreateSong(ctx context.Context, a catalog.CreateNewSong) (*domain.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.SongID == "" {
		a.SongID = songpkg.Slugify(a.Name)
	}
	if a.SongID == "" {
		return nil, fmt.Errorf("song name %q has no letters or digits", a.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a.SongID = uniqueSongID(s.state, a.SongID)
	now := s.Now().UnixMilli()
	a.CreatedAt = now
	a.LastOpenedAt = now

	state, err := s.dispatchLocked(a)
	if err != nil {
		return nil, err
	}
	s.logger.Info("created song", "songID", a.SongID)
	return state.ByID[a.SongID], nil
}

// uniqueSongID returns id, or id with the lowest numeric suffix from 2 up
// that no song in state uses.
func uniqueSongID(state catalog.State, id string) string {
	if _, taken := state.ByID[id]; !taken {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if _, taken := state.ByID[candidate]; !taken {
			return candidate
		}
	}
}

// OpenSong opens songID in the editor at its selected difficulty (or its
// easiest one) and stamps the open time.
func (s *CatalogService) OpenSong(ctx context.Context, songID string) (*domain.Song, error) {
	song := catalog.SongByID(s, songID)
	if song == nil {
		return nil, domain.SongNotFound(songID)
	}

	difficulty := song.SelectedDifficulty
	if _, ok := song.DifficultiesByID[difficulty]; !ok {
		difficulty = ""
		if ids := song.DifficultyIDs(); len(ids) > 0 {
			difficulty = ids[0]
		}
	}

	if _, err := s.Dispatch(ctx, catalog.StartLoadingSong{SongID: songID, Difficulty: difficulty}); err != nil {
		return nil, err
	}
	state, err := s.Dispatch(ctx, catalog.FinishLoadingSong{SongID: songID, LastOpenedAt: s.Now().UnixMilli()})
	if err != nil {
		return nil, err
	}
	return state.ByID[songID], nil
}
