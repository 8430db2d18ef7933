package main

import (
	"context"
	"fmt"

	"github.com/mmcdole/beatlib/internal/catalog"
	"github.com/mmcdole/beatlib/internal/domain"
	"github.com/mmcdole/beatlib/internal/search"
	"github.com/spf13/cobra"
)

// createDeleteCommand creates the delete command
func (app *Application) createDeleteCommand(ctx context.Context) *cobra.Command {
	var difficulty string

	cmd := &cobra.Command{
		Use:   "delete [song id]",
		Short: "Delete a song, or one of its beatmaps",
		Long:  `Delete a song from the catalog. With --difficulty, delete only that beatmap.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID := args[0]
			song := catalog.SongByID(app.Catalog, songID)
			if song == nil {
				return app.notFound(songID)
			}

			if difficulty != "" {
				id := domain.DifficultyID(difficulty)
				if _, err := app.Catalog.Dispatch(ctx, catalog.DeleteBeatmap{SongID: songID, Difficulty: id}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s beatmap from %s\n", id.DisplayName(), song.Title())
				return nil
			}

			if _, err := app.Catalog.Dispatch(ctx, catalog.DeleteSong{SongID: songID}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", song.Title())
			return nil
		},
	}
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "delete only this beatmap (e.g. ExpertPlus)")
	return cmd
}

// notFound builds a song-not-found error with a suggestion when one is close
func (app *Application) notFound(songID string) error {
	err := domain.SongNotFound(songID)
	if suggestion, ok := search.Suggest(songID, catalog.AllSongIDs(app.Catalog)); ok {
		return fmt.Errorf("%w (did you mean %q?)", err, suggestion)
	}
	return err
}
