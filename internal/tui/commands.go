package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/beatlib/internal/catalog"
	"github.com/mmcdole/beatlib/internal/service"
)

// Command factories for catalog operations

// DispatchCmd applies action to the catalog and reports status on success
func DispatchCmd(svc *service.CatalogService, action catalog.Action, status string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := svc.Dispatch(ctx, action); err != nil {
			return ErrMsg{Err: err, Context: string(action.Kind())}
		}
		return CatalogUpdatedMsg{Status: status}
	}
}

// OpenSongCmd opens a song in the editor
func OpenSongCmd(svc *service.CatalogService, songID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		song, err := svc.OpenSong(ctx, songID)
		if err != nil {
			return ErrMsg{Err: err, Context: "opening song"}
		}
		return SongOpenedMsg{Song: song}
	}
}

// ImportPackageCmd imports the song package at path
func ImportPackageCmd(svc *service.CatalogService, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		song, err := svc.ImportPackage(ctx, path)
		if err != nil {
			return ErrMsg{Err: err, Context: "importing song"}
		}
		return SongImportedMsg{Song: song}
	}
}
