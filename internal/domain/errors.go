package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations
var (
	// ErrSongNotFound indicates the referenced song id is not in the catalog
	ErrSongNotFound = errors.New("song not found")

	// ErrDifficultyNotFound indicates the referenced difficulty is not on the song
	ErrDifficultyNotFound = errors.New("difficulty not found")

	// ErrUnknownMod indicates a mod name outside the supported set
	ErrUnknownMod = errors.New("unknown mod")

	// ErrUnknownColorElement indicates a palette slot outside the supported set
	ErrUnknownColorElement = errors.New("unknown color element")

	// ErrInvalidPackage indicates a song package could not be parsed
	ErrInvalidPackage = errors.New("invalid song package")
)

// EntityKind names what a NotFoundError failed to find
type EntityKind string

const (
	EntitySong       EntityKind = "song"
	EntityDifficulty EntityKind = "difficulty"
)

// NotFoundError reports a lookup of a caller-supplied id that is absent.
// It unwraps to ErrSongNotFound or ErrDifficultyNotFound.
type NotFoundError struct {
	Kind EntityKind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	switch e.Kind {
	case EntityDifficulty:
		return ErrDifficultyNotFound
	default:
		return ErrSongNotFound
	}
}

// SongNotFound returns a NotFoundError for a song id
func SongNotFound(id string) error {
	return &NotFoundError{Kind: EntitySong, ID: id}
}

// DifficultyNotFound returns a NotFoundError for a difficulty id
func DifficultyNotFound(id DifficultyID) error {
	return &NotFoundError{Kind: EntityDifficulty, ID: string(id)}
}
