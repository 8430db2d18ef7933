package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/beatlib/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSongs = []byte("songs")
)

const dbFilename = "beatlib.db"

// SongStore implements domain.SongStore using BoltDB.
type SongStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// Encoded songs keyed by id, mirrored from the songs bucket
	cache map[string][]byte
}

// NewSongStore opens (or creates) the catalog database under dir.
// An empty dir gives a memory-only store.
func NewSongStore(dir string) (*SongStore, error) {
	if dir == "" {
		return &SongStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, dbFilename)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSongs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SongStore{db: db, cache: make(map[string][]byte)}
	if err := s.warm(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// warm loads every stored song into the memory cache
func (s *SongStore) warm() error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSongs)
		return b.ForEach(func(k, v []byte) error {
			data := make([]byte, len(v))
			copy(data, v)
			s.cache[string(k)] = data
			return nil
		})
	})
}

func (s *SongStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetSongs returns every stored song in id order
func (s *SongStore) GetSongs() ([]*domain.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.cache))
	for id := range s.cache {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	songs := make([]*domain.Song, 0, len(ids))
	for _, id := range ids {
		var song domain.Song
		if err := json.Unmarshal(s.cache[id], &song); err != nil {
			return nil, fmt.Errorf("failed to decode song %s: %w", id, err)
		}
		songs = append(songs, &song)
	}
	return songs, nil
}

func (s *SongStore) SaveSong(song *domain.Song) error {
	data, err := json.Marshal(song)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[song.ID] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSongs).Put([]byte(song.ID), data)
	})
}

func (s *SongStore) DeleteSong(songID string) error {
	s.mu.Lock()
	delete(s.cache, songID)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSongs).Delete([]byte(songID))
	})
}
