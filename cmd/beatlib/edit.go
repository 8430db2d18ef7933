package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mmcdole/beatlib/internal/catalog"
	"github.com/mmcdole/beatlib/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// createNewCommand creates the new command
func (app *Application) createNewCommand(ctx context.Context) *cobra.Command {
	var (
		action     catalog.CreateNewSong
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "new [song name]",
		Short: "Create a blank song",
		Long:  `Create a song with a single default beatmap. The id is derived from the name.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action.Name = args[0]
			action.SelectedDifficulty = domain.DifficultyID(difficulty)
			if !action.SelectedDifficulty.IsRanked() {
				return fmt.Errorf("unknown difficulty %q", difficulty)
			}

			song, err := app.Catalog.CreateSong(ctx, action)
			if err != nil {
				return err
			}
			if _, err := app.Catalog.Dispatch(ctx, catalog.LeaveEditor{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", song.Title(), song.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&action.SubName, "sub-name", "", "song sub name")
	cmd.Flags().StringVar(&action.ArtistName, "artist", "", "artist name")
	cmd.Flags().StringVar(&action.MapAuthorName, "mapper", "", "map author name")
	cmd.Flags().Float64Var(&action.BPM, "bpm", 120, "beats per minute")
	cmd.Flags().Float64Var(&action.Offset, "offset", 0, "audio offset in milliseconds")
	cmd.Flags().StringVar(&action.SongFilename, "song-file", "song.ogg", "audio file name")
	cmd.Flags().StringVar(&action.CoverArtFilename, "cover-file", "cover.jpg", "cover art file name")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(domain.DifficultyExpert), "first beatmap")
	return cmd
}

// editOptions collects the edit command's flag values
type editOptions struct {
	name, subName, artist, mapper string
	bpm, offset                   float64
	environment                   string
	demo                          bool

	difficulty  string
	njs         float64
	startOffset float64
	label       string

	addDifficulty string
	copyFrom      string

	grid   string
	colors map[string]string
}

// createEditCommand creates the edit command
func (app *Application) createEditCommand(ctx context.Context) *cobra.Command {
	var opts editOptions

	cmd := &cobra.Command{
		Use:   "edit [song id]",
		Short: "Edit a song, its beatmaps and mods",
		Long: `Edit song details, add or update beatmaps, and configure mods.

Only the flags given are changed. Beatmap flags (--njs, --start-offset,
--label) apply to the beatmap named by --difficulty.`,
		Example: `  beatlib edit only-now --bpm 128 --environment NiceEnvironment
  beatlib edit only-now --add-difficulty ExpertPlus --copy-from Expert
  beatlib edit only-now -d Expert --njs 18 --label "Hardcore"
  beatlib edit only-now --grid 4x6 --color colorLeft=#ff0000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID := args[0]
			if catalog.SongByID(app.Catalog, songID) == nil {
				return app.notFound(songID)
			}

			changed, err := app.editSong(ctx, cmd.Flags(), songID, opts)
			if err != nil {
				return err
			}
			if !changed {
				return errors.New("nothing to edit; see beatlib edit --help")
			}

			song := catalog.SongByID(app.Catalog, songID)
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", song.Title())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "", "song name")
	f.StringVar(&opts.subName, "sub-name", "", "song sub name")
	f.StringVar(&opts.artist, "artist", "", "artist name")
	f.StringVar(&opts.mapper, "mapper", "", "map author name")
	f.Float64Var(&opts.bpm, "bpm", 0, "beats per minute")
	f.Float64Var(&opts.offset, "offset", 0, "audio offset in milliseconds")
	f.StringVar(&opts.environment, "environment", "", "stage environment (e.g. NiceEnvironment)")
	f.BoolVar(&opts.demo, "demo", false, "mark as the demo song")

	f.StringVarP(&opts.difficulty, "difficulty", "d", "", "beatmap to update")
	f.Float64Var(&opts.njs, "njs", 0, "note jump speed")
	f.Float64Var(&opts.startOffset, "start-offset", 0, "note jump start beat offset")
	f.StringVar(&opts.label, "label", "", "custom difficulty label")

	f.StringVar(&opts.addDifficulty, "add-difficulty", "", "add a beatmap")
	f.StringVar(&opts.copyFrom, "copy-from", "", "copy the new beatmap's metadata from this one")

	f.StringVar(&opts.grid, "grid", "", "mapping extensions grid as ROWSxCOLS")
	f.StringToStringVar(&opts.colors, "color", nil, "custom color slot=hex (repeatable)")
	return cmd
}

// editSong dispatches the actions selected by the changed flags, in the
// order details, beatmaps, mods. It reports whether anything was dispatched.
func (app *Application) editSong(ctx context.Context, flags *pflag.FlagSet, songID string, opts editOptions) (bool, error) {
	changed := false

	details, err := songDetails(flags, catalog.SongByID(app.Catalog, songID), opts)
	if err != nil {
		return false, err
	}
	if details != nil {
		if _, err := app.Catalog.Dispatch(ctx, catalog.UpdateSongDetails{SongID: songID, Details: *details}); err != nil {
			return changed, err
		}
		changed = true
	}

	if opts.addDifficulty != "" {
		if err := app.addDifficulty(ctx, songID, opts); err != nil {
			return changed, err
		}
		changed = true
	}

	if flags.Changed("njs") || flags.Changed("start-offset") || flags.Changed("label") {
		if opts.difficulty == "" {
			return changed, errors.New("--difficulty is required with --njs, --start-offset or --label")
		}
		if err := app.updateBeatmap(ctx, flags, songID, opts); err != nil {
			return changed, err
		}
		changed = true
	}

	if len(opts.colors) > 0 {
		if err := app.updateColors(ctx, songID, opts.colors); err != nil {
			return changed, err
		}
		changed = true
	}

	return changed, nil
}

// songDetails builds the details merge from the changed song flags, or nil
// when none changed
func songDetails(flags *pflag.FlagSet, song *domain.Song, opts editOptions) (*catalog.SongDetails, error) {
	var d catalog.SongDetails
	touched := false
	set := func(name string) bool {
		if flags.Changed(name) {
			touched = true
			return true
		}
		return false
	}

	if set("name") {
		d.Name = &opts.name
	}
	if set("sub-name") {
		d.SubName = &opts.subName
	}
	if set("artist") {
		d.ArtistName = &opts.artist
	}
	if set("mapper") {
		d.MapAuthorName = &opts.mapper
	}
	if set("bpm") {
		d.BPM = &opts.bpm
	}
	if set("offset") {
		d.Offset = &opts.offset
	}
	if set("environment") {
		env := domain.Environment(opts.environment)
		if !env.Valid() {
			return nil, fmt.Errorf("unknown environment %q", opts.environment)
		}
		d.Environment = &env
	}
	if set("demo") {
		d.Demo = &opts.demo
	}
	if set("grid") {
		var mods domain.ModSettings
		if song.ModSettings != nil {
			mods = *song.ModSettings
		}
		grid, err := parseGrid(opts.grid, mods.MappingExtensions)
		if err != nil {
			return nil, err
		}
		mods.MappingExtensions = &grid
		d.ModSettings = &mods
	}

	if !touched {
		return nil, nil
	}
	return &d, nil
}

// parseGrid reads a ROWSxCOLS grid size. Cell sizes carry over from
// current, or default when the mod is off.
func parseGrid(s string, current *domain.MappingExtensions) (domain.MappingExtensions, error) {
	grid := domain.DefaultMappingExtensions()
	if current != nil {
		grid = *current
	}
	var rest string
	if n, _ := fmt.Sscanf(s+" ", "%dx%d%s", &grid.NumRows, &grid.NumCols, &rest); n != 2 || grid.NumRows <= 0 || grid.NumCols <= 0 {
		return grid, fmt.Errorf("invalid grid %q, expected ROWSxCOLS", s)
	}
	return grid, nil
}

// addDifficulty creates a beatmap, copying metadata from --copy-from when given
func (app *Application) addDifficulty(ctx context.Context, songID string, opts editOptions) error {
	to := domain.DifficultyID(opts.addDifficulty)
	if _, exists := catalog.SongByID(app.Catalog, songID).DifficultiesByID[to]; exists {
		return fmt.Errorf("%s already has a %s beatmap", songID, to.DisplayName())
	}

	if opts.copyFrom != "" {
		_, err := app.Catalog.Dispatch(ctx, catalog.CopyDifficulty{
			SongID:           songID,
			FromDifficultyID: domain.DifficultyID(opts.copyFrom),
			ToDifficultyID:   to,
		})
		return err
	}

	return app.withSongOpen(ctx, songID, func() error {
		_, err := app.Catalog.Dispatch(ctx, catalog.CreateDifficulty{Difficulty: to})
		return err
	})
}

// updateBeatmap overwrites the changed metadata fields of one beatmap
func (app *Application) updateBeatmap(ctx context.Context, flags *pflag.FlagSet, songID string, opts editOptions) error {
	id := domain.DifficultyID(opts.difficulty)
	song := catalog.SongByID(app.Catalog, songID)
	current, ok := song.DifficultiesByID[id]
	if !ok {
		return domain.DifficultyNotFound(id)
	}

	if flags.Changed("njs") {
		current.NoteJumpSpeed = opts.njs
	}
	if flags.Changed("start-offset") {
		current.StartBeatOffset = opts.startOffset
	}
	if flags.Changed("label") {
		current.CustomLabel = opts.label
	}

	_, err := app.Catalog.Dispatch(ctx, catalog.UpdateBeatmapMetadata{
		SongID:          songID,
		Difficulty:      id,
		NoteJumpSpeed:   current.NoteJumpSpeed,
		StartBeatOffset: current.StartBeatOffset,
		CustomLabel:     current.CustomLabel,
	})
	return err
}

// updateColors enables custom colors if needed and sets each slot
func (app *Application) updateColors(ctx context.Context, songID string, colors map[string]string) error {
	elements := make([]string, 0, len(colors))
	for element := range colors {
		elements = append(elements, element)
	}
	sort.Strings(elements)

	return app.withSongOpen(ctx, songID, func() error {
		if !catalog.SelectedSong(app.Catalog).IsModEnabled(domain.ModCustomColors) {
			if _, err := app.Catalog.Dispatch(ctx, catalog.ToggleModForSong{Mod: domain.ModCustomColors}); err != nil {
				return err
			}
		}
		for _, element := range elements {
			action := catalog.UpdateModColor{Element: domain.ColorElement(element), Color: colors[element]}
			if _, err := app.Catalog.Dispatch(ctx, action); err != nil {
				return err
			}
		}
		return nil
	})
}

// withSongOpen runs fn with songID open in the editor, then closes it.
// Actions that target the open song need this.
func (app *Application) withSongOpen(ctx context.Context, songID string, fn func() error) error {
	if _, err := app.Catalog.OpenSong(ctx, songID); err != nil {
		return err
	}
	err := fn()
	if _, leaveErr := app.Catalog.Dispatch(ctx, catalog.LeaveEditor{}); err == nil {
		err = leaveErr
	}
	return err
}
