package tui

import (
	"github.com/mmcdole/beatlib/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CatalogUpdatedMsg signals that an action was applied to the catalog
type CatalogUpdatedMsg struct {
	Status string
}

// SongOpenedMsg signals that a song was opened in the editor
type SongOpenedMsg struct {
	Song *domain.Song
}

// SongImportedMsg signals that a song package was imported
type SongImportedMsg struct {
	Song *domain.Song
}
