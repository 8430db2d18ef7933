package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/beatlib/internal/catalog"
	"github.com/mmcdole/beatlib/internal/config"
	"github.com/mmcdole/beatlib/internal/domain"
	"github.com/spf13/cobra"
)

// createListCommand creates the list command
func (app *Application) createListCommand() *cobra.Command {
	var sortFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every song in the catalog",
		Long:  `Print a table of all songs with their artist, BPM and difficulties.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			order := app.Config.UI.Sort
			if sortFlag != "" {
				order = config.SortOrder(sortFlag)
			}
			switch order {
			case config.SortRecent, config.SortName:
			default:
				return fmt.Errorf("invalid sort %q (want %q or %q)", sortFlag, config.SortRecent, config.SortName)
			}
			app.listSongs(cmd.OutOrStdout(), order)
			return nil
		},
	}
	cmd.Flags().StringVar(&sortFlag, "sort", "", "sort order: recent or name (default from config)")
	return cmd
}

// sortedSongs returns the catalog in the given order
func (app *Application) sortedSongs(order config.SortOrder) []*domain.Song {
	if order == config.SortName {
		songs := catalog.AllSongs(app.Catalog)
		sort.SliceStable(songs, func(i, j int) bool {
			return strings.ToLower(songs[i].Title()) < strings.ToLower(songs[j].Title())
		})
		return songs
	}
	return catalog.AllSongsChronologically(app.Catalog)
}

func (app *Application) listSongs(w io.Writer, order config.SortOrder) {
	songs := app.sortedSongs(order)
	if len(songs) == 0 {
		fmt.Fprintln(w, "Catalog is empty. Add songs with 'beatlib import'.")
		return
	}

	fmt.Fprintf(w, "%d songs\n\n", len(songs))
	printSongTable(w, songs)
}

func printSongTable(w io.Writer, songs []*domain.Song) {
	fmt.Fprintf(w, "%-24s %-30s %-20s %6s  %s\n", "ID", "Title", "Artist", "BPM", "Difficulties")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, song := range songs {
		fmt.Fprintf(w, "%-24s %-30s %-20s %6.1f  %s\n",
			truncateString(song.ID, 24),
			truncateString(song.Title(), 30),
			truncateString(song.ArtistName, 20),
			song.BPM,
			difficultySummary(song))
	}
}

func difficultySummary(song *domain.Song) string {
	var names []string
	for _, id := range song.DifficultyIDs() {
		names = append(names, song.DifficultiesByID[id].DisplayName())
	}
	return strings.Join(names, ", ")
}

// createShowCommand creates the show command
func (app *Application) createShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [song id]",
		Short: "Show a song's details and beatmaps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			song := catalog.SongByID(app.Catalog, args[0])
			if song == nil {
				return app.notFound(args[0])
			}
			printSong(cmd.OutOrStdout(), song)
			return nil
		},
	}
}

func printSong(w io.Writer, song *domain.Song) {
	fmt.Fprintf(w, "%s\n", song.Title())
	fmt.Fprintf(w, "  id:          %s\n", song.ID)
	fmt.Fprintf(w, "  artist:      %s\n", song.ArtistName)
	if song.MapAuthorName != "" {
		fmt.Fprintf(w, "  mapper:      %s\n", song.MapAuthorName)
	}
	fmt.Fprintf(w, "  bpm:         %.2f (offset %.0fms)\n", song.BPM, song.Offset)
	fmt.Fprintf(w, "  environment: %s\n", song.Environment)
	if song.LastOpenedAt > 0 {
		fmt.Fprintf(w, "  last opened: %s\n", time.UnixMilli(song.LastOpenedAt).Format(time.DateTime))
	}

	fmt.Fprintln(w, "  beatmaps:")
	for _, id := range song.DifficultyIDs() {
		d := song.DifficultiesByID[id]
		marker := " "
		if id == song.SelectedDifficulty {
			marker = "*"
		}
		fmt.Fprintf(w, "   %s %-12s njs %5.2f  offset %5.2f\n", marker, d.DisplayName(), d.NoteJumpSpeed, d.StartBeatOffset)
	}

	if song.IsModEnabled(domain.ModMappingExtensions) {
		ext := song.ModSettings.MappingExtensions
		fmt.Fprintf(w, "  mapping extensions: %dx%d grid\n", ext.NumCols, ext.NumRows)
	}
	if song.IsModEnabled(domain.ModCustomColors) {
		c := song.ModSettings.CustomColors
		fmt.Fprintf(w, "  custom colors: left %s right %s\n", c.ColorLeft, c.ColorRight)
	}
}

// truncateString shortens s to maxLen runes with an ellipsis
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
