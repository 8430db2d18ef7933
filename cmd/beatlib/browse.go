package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/beatlib/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// createBrowseCommand creates the browse command
func (app *Application) createBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive catalog browser",
		Long:  `Open the interactive catalog browser. Without a terminal, prints the song list instead.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.browse(cmd)
		},
	}
}

func (app *Application) browse(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		app.Logger.Debug("stdout is not a terminal, listing songs")
		app.listSongs(cmd.OutOrStdout(), app.Config.UI.Sort)
		return nil
	}

	model := tui.NewModel(app.Catalog, app.Config.UI.Sort, app.Logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	app.Logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		app.Logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
