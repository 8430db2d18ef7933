package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/beatlib/internal/catalog"
	"github.com/mmcdole/beatlib/internal/config"
	"github.com/mmcdole/beatlib/internal/domain"
	"github.com/mmcdole/beatlib/internal/log"
	"github.com/mmcdole/beatlib/internal/service"
	"github.com/mmcdole/beatlib/internal/store"
	"github.com/spf13/cobra"
)

// createTestApplication builds an application over a memory-only store
func createTestApplication(t *testing.T) *Application {
	t.Helper()

	songStore, err := store.NewSongStore("")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { songStore.Close() })

	cfg := config.DefaultConfig()
	cfg.Store.Dir = ""
	logger := log.Discard()

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Store:   songStore,
		Catalog: service.NewCatalogService(songStore, logger),
	}
}

func seedSong(t *testing.T, app *Application, id, name, artist string, openedAt int64) {
	t.Helper()
	_, err := app.Catalog.Dispatch(context.Background(), catalog.CreateNewSong{
		SongID:             id,
		Name:               name,
		ArtistName:         artist,
		BPM:                120,
		SelectedDifficulty: domain.DifficultyExpert,
		LastOpenedAt:       openedAt,
	})
	if err != nil {
		t.Fatalf("failed to seed %s: %v", id, err)
	}
}

// run executes cmd with args and returns its output
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCmdList(t *testing.T) {
	app := createTestApplication(t)
	seedSong(t, app, "old-song", "Old Song", "Artist A", 1)
	seedSong(t, app, "new-song", "New Song", "Artist B", 2)

	output, err := run(t, app.createListCommand())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"2 songs", "Old Song", "Artist B", "Expert"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q:\n%s", want, output)
		}
	}
	if strings.Index(output, "New Song") > strings.Index(output, "Old Song") {
		t.Errorf("expected most recently opened song first:\n%s", output)
	}

	output, err = run(t, app.createListCommand(), "--sort", "name")
	if err != nil {
		t.Fatalf("list --sort name failed: %v", err)
	}
	if strings.Index(output, "New Song") > strings.Index(output, "Old Song") {
		t.Errorf("expected name order:\n%s", output)
	}
}

func TestCmdListEmpty(t *testing.T) {
	app := createTestApplication(t)

	output, err := run(t, app.createListCommand())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(output, "Catalog is empty") {
		t.Errorf("expected empty catalog message, got %q", output)
	}
}

func TestCmdListInvalidSort(t *testing.T) {
	app := createTestApplication(t)

	if _, err := run(t, app.createListCommand(), "--sort", "bpm"); err == nil {
		t.Error("expected error for unknown sort order")
	}
}

func TestCmdDelete(t *testing.T) {
	app := createTestApplication(t)
	seedSong(t, app, "keep-me", "Keep Me", "Artist", 1)
	seedSong(t, app, "drop-me", "Drop Me", "Artist", 2)

	output, err := run(t, app.createDeleteCommand(context.Background()), "drop-me")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(output, "deleted Drop Me") {
		t.Errorf("unexpected output: %q", output)
	}
	if catalog.SongByID(app.Catalog, "drop-me") != nil {
		t.Error("expected song to be deleted")
	}
	if catalog.SongByID(app.Catalog, "keep-me") == nil {
		t.Error("expected other song to remain")
	}
}

func TestCmdDeleteBeatmap(t *testing.T) {
	app := createTestApplication(t)
	seedSong(t, app, "song", "Song", "Artist", 1)
	if _, err := app.Catalog.Dispatch(context.Background(), catalog.CreateDifficulty{Difficulty: domain.DifficultyHard}); err != nil {
		t.Fatalf("failed to add difficulty: %v", err)
	}

	if _, err := run(t, app.createDeleteCommand(context.Background()), "song", "-d", "Hard"); err != nil {
		t.Fatalf("delete -d failed: %v", err)
	}
	song := catalog.SongByID(app.Catalog, "song")
	if _, ok := song.DifficultiesByID[domain.DifficultyHard]; ok {
		t.Error("expected Hard beatmap to be deleted")
	}
	if song.SelectedDifficulty != domain.DifficultyExpert {
		t.Errorf("expected selection to move to Expert, got %s", song.SelectedDifficulty)
	}
}

func TestCmdDeleteSuggestsID(t *testing.T) {
	app := createTestApplication(t)
	seedSong(t, app, "only-now", "Only Now", "Tokyo Machine", 1)

	_, err := run(t, app.createDeleteCommand(context.Background()), "only-nw")
	if !errors.Is(err, domain.ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), `did you mean "only-now"`) {
		t.Errorf("expected suggestion in error, got %v", err)
	}
}

func TestCmdImport(t *testing.T) {
	app := createTestApplication(t)

	dir := t.TempDir()
	info := `{
  "_songName": "Imported Song",
  "_songAuthorName": "Someone",
  "_beatsPerMinute": 140,
  "_difficultyBeatmapSets": [{
    "_beatmapCharacteristicName": "Standard",
    "_difficultyBeatmaps": [{"_difficulty": "Expert", "_noteJumpMovementSpeed": 16}]
  }]
}`
	if err := os.WriteFile(filepath.Join(dir, "info.dat"), []byte(info), 0644); err != nil {
		t.Fatalf("failed to write package: %v", err)
	}

	output, err := run(t, app.createImportCommand(context.Background()), dir, filepath.Join(dir, "missing"))
	if err == nil {
		t.Error("expected an error for the missing package")
	}
	if !strings.Contains(output, "imported Imported Song (imported-song) with 1 difficulties") {
		t.Errorf("unexpected output: %q", output)
	}
	if catalog.SongByID(app.Catalog, "imported-song") == nil {
		t.Error("expected song in catalog")
	}
}

func TestCmdSearch(t *testing.T) {
	app := createTestApplication(t)
	seedSong(t, app, "only-now", "Only Now", "Tokyo Machine", 1)
	seedSong(t, app, "ghost", "Ghost", "Jaroslav Beck", 2)

	output, err := run(t, app.createSearchCommand(), "tokyo")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(output, "Only Now") || strings.Contains(output, "Ghost") {
		t.Errorf("unexpected search output:\n%s", output)
	}

	output, _ = run(t, app.createSearchCommand(), "zzzz")
	if !strings.Contains(output, "No songs match") {
		t.Errorf("expected no-match message, got %q", output)
	}
}

func TestCmdShow(t *testing.T) {
	app := createTestApplication(t)
	seedSong(t, app, "song", "Song", "Artist", 1)

	output, err := run(t, app.createShowCommand(), "song")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	for _, want := range []string{"id:          song", "* Expert", "njs 15.00"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q:\n%s", want, output)
		}
	}
}

func TestRootCommandUsesConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfgBody := "store:\n  dir: " + filepath.Join(dir, "data") + "\nlogging:\n  file: " + filepath.Join(dir, "beatlib.log") + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfgBody), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	app := &Application{}
	t.Cleanup(func() { app.close() })
	root := app.createRootCommand(context.Background())
	output, err := run(t, root, "--config", cfgPath, "list")
	if err != nil {
		t.Fatalf("root list failed: %v", err)
	}
	if !strings.Contains(output, "Catalog is empty") {
		t.Errorf("unexpected output: %q", output)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "beatlib.db")); err != nil {
		t.Errorf("expected store file to be created: %v", err)
	}
}

func TestExecuteClosesStoreAfterFailure(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	cfgPath := filepath.Join(dir, "config.yaml")
	cfgBody := "store:\n  dir: " + dataDir + "\nlogging:\n  file: " + filepath.Join(dir, "beatlib.log") + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfgBody), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	err := execute(context.Background(), &Application{}, []string{"--config", cfgPath, "delete", "missing"})
	if !errors.Is(err, domain.ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}

	// The database lock must be released for the next process
	reopened, err := store.NewSongStore(dataDir)
	if err != nil {
		t.Fatalf("expected store to be closed after a failed command: %v", err)
	}
	reopened.Close()
}

func TestCmdNew(t *testing.T) {
	app := createTestApplication(t)
	seedSong(t, app, "only-now", "Only Now", "Someone", 1)

	output, err := run(t, app.createNewCommand(context.Background()), "Only Now", "--artist", "Tokyo Machine", "-d", "Hard")
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if !strings.Contains(output, "created Only Now (only-now-2)") {
		t.Errorf("unexpected output: %q", output)
	}
	song := catalog.SongByID(app.Catalog, "only-now-2")
	if song == nil || song.ArtistName != "Tokyo Machine" || song.SelectedDifficulty != domain.DifficultyHard {
		t.Fatalf("unexpected song: %+v", song)
	}
	if got := catalog.SelectedSongID(app.Catalog); got != "" {
		t.Errorf("expected editor closed, got %q", got)
	}

	if _, err := run(t, app.createNewCommand(context.Background()), "X", "-d", "Impossible"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestCmdEdit(t *testing.T) {
	app := createTestApplication(t)
	seedSong(t, app, "song", "Song", "Artist", 1)

	output, err := run(t, app.createEditCommand(context.Background()), "song",
		"--bpm", "128",
		"--environment", "NiceEnvironment",
		"--add-difficulty", "ExpertPlus", "--copy-from", "Expert",
		"-d", "ExpertPlus", "--njs", "19", "--label", "Hardcore",
		"--grid", "4x6",
		"--color", "colorLeft=#ff0000",
	)
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if !strings.Contains(output, "updated Song") {
		t.Errorf("unexpected output: %q", output)
	}

	song := catalog.SongByID(app.Catalog, "song")
	if song.BPM != 128 || song.Environment != domain.EnvironmentNice {
		t.Errorf("expected details merged, got bpm %v env %s", song.BPM, song.Environment)
	}
	if song.ArtistName != "Artist" {
		t.Errorf("expected artist untouched, got %q", song.ArtistName)
	}
	plus, ok := song.DifficultiesByID[domain.DifficultyExpertPlus]
	if !ok || plus.NoteJumpSpeed != 19 || plus.CustomLabel != "Hardcore" {
		t.Errorf("unexpected ExpertPlus beatmap: %+v", plus)
	}
	if expert := song.DifficultiesByID[domain.DifficultyExpert]; expert.NoteJumpSpeed != 15 {
		t.Errorf("expected Expert untouched, got %+v", expert)
	}

	grid := song.ModSettings.MappingExtensions
	if grid == nil || grid.NumRows != 4 || grid.NumCols != 6 || grid.CellWidth != 1 {
		t.Errorf("unexpected grid: %+v", grid)
	}
	colors := song.ModSettings.CustomColors
	if colors == nil || colors.ColorLeft != "#ff0000" || colors.ColorRight != domain.DefaultBlue {
		t.Errorf("unexpected colors: %+v", colors)
	}
	if got := catalog.SelectedSongID(app.Catalog); got != "" {
		t.Errorf("expected editor closed, got %q", got)
	}
}

func TestCmdEditErrors(t *testing.T) {
	app := createTestApplication(t)
	seedSong(t, app, "song", "Song", "Artist", 1)

	cases := map[string][]string{
		"no flags":           {"song"},
		"missing beatmap":    {"song", "-d", "Hard", "--njs", "12"},
		"beatmap flags only": {"song", "--njs", "12"},
		"existing beatmap":   {"song", "--add-difficulty", "Expert"},
		"bad grid":           {"song", "--grid", "4by6"},
		"bad environment":    {"song", "--environment", "Moon"},
		"unknown song":       {"sng", "--bpm", "1"},
	}
	for name, args := range cases {
		if _, err := run(t, app.createEditCommand(context.Background()), args...); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}

	_, err := run(t, app.createEditCommand(context.Background()), "song", "-d", "Hard", "--njs", "12")
	if !errors.Is(err, domain.ErrDifficultyNotFound) {
		t.Errorf("expected ErrDifficultyNotFound, got %v", err)
	}
	if song := catalog.SongByID(app.Catalog, "song"); song.BPM != 120 {
		t.Errorf("expected song unchanged, got bpm %v", song.BPM)
	}
}

func TestCmdExport(t *testing.T) {
	app := createTestApplication(t)
	seedSong(t, app, "song", "Song", "Artist", 1)

	output, err := run(t, app.createExportCommand())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	for _, want := range []string{"- id: song", "artist: Artist", "noteJumpSpeed: 15"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected yaml to contain %q:\n%s", want, output)
		}
	}

	output, err = run(t, app.createExportCommand(), "--format", "json")
	if err != nil {
		t.Fatalf("export --format json failed: %v", err)
	}
	if !strings.Contains(output, `"id": "song"`) {
		t.Errorf("unexpected json output:\n%s", output)
	}

	if _, err := run(t, app.createExportCommand(), "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
