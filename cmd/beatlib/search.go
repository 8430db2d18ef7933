package main

import (
	"fmt"
	"strings"

	"github.com/mmcdole/beatlib/internal/catalog"
	"github.com/mmcdole/beatlib/internal/domain"
	"github.com/mmcdole/beatlib/internal/search"
	"github.com/spf13/cobra"
)

// createSearchCommand creates the search command
func (app *Application) createSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Fuzzy search songs by title, artist or mapper",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			matches := search.FilterSongs(query, catalog.AllSongs(app.Catalog))

			w := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(w, "No songs match %q\n", query)
				return nil
			}

			songs := make([]*domain.Song, len(matches))
			for i, m := range matches {
				songs[i] = m.Song
			}
			printSongTable(w, songs)
			return nil
		},
	}
}
