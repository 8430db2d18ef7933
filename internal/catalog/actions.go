package catalog

import "github.com/mmcdole/beatlib/internal/domain"

// Kind is the wire name of an action variant
type Kind string

const (
	KindStartLoadingSong         Kind = "START_LOADING_SONG"
	KindFinishLoadingSong        Kind = "FINISH_LOADING_SONG"
	KindLeaveEditor              Kind = "LEAVE_EDITOR"
	KindStartImportingSong       Kind = "START_IMPORTING_SONG"
	KindCancelImportingSong      Kind = "CANCEL_IMPORTING_SONG"
	KindCreateNewSong            Kind = "CREATE_NEW_SONG"
	KindImportExistingSong       Kind = "IMPORT_EXISTING_SONG"
	KindUpdateSongDetails        Kind = "UPDATE_SONG_DETAILS"
	KindCreateDifficulty         Kind = "CREATE_DIFFICULTY"
	KindCopyDifficulty           Kind = "COPY_DIFFICULTY"
	KindChangeSelectedDifficulty Kind = "CHANGE_SELECTED_DIFFICULTY"
	KindDeleteBeatmap            Kind = "DELETE_BEATMAP"
	KindUpdateBeatmapMetadata    Kind = "UPDATE_BEATMAP_METADATA"
	KindDeleteSong               Kind = "DELETE_SONG"
	KindToggleModForSong         Kind = "TOGGLE_MOD_FOR_SONG"
	KindUpdateModColor           Kind = "UPDATE_MOD_COLOR"
)

// Action is a catalog transition request. Reduce handles the variants
// declared in this file; any other implementation passes through unchanged.
type Action interface {
	Kind() Kind
}

// StartLoadingSong opens a song in the editor at the given difficulty
type StartLoadingSong struct {
	SongID     string
	Difficulty domain.DifficultyID
}

// FinishLoadingSong stamps the open time once the song's assets are loaded
type FinishLoadingSong struct {
	SongID       string
	LastOpenedAt int64
}

// LeaveEditor closes the open song
type LeaveEditor struct{}

// StartImportingSong marks an import as in progress
type StartImportingSong struct{}

// CancelImportingSong clears the import-in-progress flag
type CancelImportingSong struct{}

// CreateNewSong adds a blank song with one difficulty and opens it
type CreateNewSong struct {
	SongID             string
	Name               string
	SubName            string
	ArtistName         string
	BPM                float64
	Offset             float64
	SelectedDifficulty domain.DifficultyID
	MapAuthorName      string
	CreatedAt          int64
	LastOpenedAt       int64
	SongFilename       string
	CoverArtFilename   string
}

// ImportExistingSong adds a fully specified song from a parsed package
type ImportExistingSong struct {
	CreatedAt    int64
	LastOpenedAt int64
	SongData     domain.ImportedSong
}

// SongDetails lists the song fields UpdateSongDetails may overwrite.
// Nil fields are left untouched.
type SongDetails struct {
	Name             *string
	SubName          *string
	ArtistName       *string
	MapAuthorName    *string
	BPM              *float64
	Offset           *float64
	SwingAmount      *float64
	SwingPeriod      *float64
	PreviewStartTime *float64
	PreviewDuration  *float64
	Environment      *domain.Environment
	SongFilename     *string
	CoverArtFilename *string
	Demo             *bool
	// ModSettings replaces the whole mod configuration, including the
	// mapping extensions grid
	ModSettings *domain.ModSettings
}

// UpdateSongDetails shallow-merges Details onto an existing song
type UpdateSongDetails struct {
	SongID  string
	Details SongDetails
}

// CreateDifficulty adds a default difficulty to the open song
type CreateDifficulty struct {
	Difficulty domain.DifficultyID
}

// CopyDifficulty clones one difficulty's metadata under a new id
type CopyDifficulty struct {
	SongID           string
	FromDifficultyID domain.DifficultyID
	ToDifficultyID   domain.DifficultyID
}

// ChangeSelectedDifficulty switches the active difficulty of a song
type ChangeSelectedDifficulty struct {
	SongID     string
	Difficulty domain.DifficultyID
}

// DeleteBeatmap removes a difficulty from a song
type DeleteBeatmap struct {
	SongID     string
	Difficulty domain.DifficultyID
}

// UpdateBeatmapMetadata overwrites all mutable fields of a difficulty
type UpdateBeatmapMetadata struct {
	SongID          string
	Difficulty      domain.DifficultyID
	NoteJumpSpeed   float64
	StartBeatOffset float64
	CustomLabel     string
}

// DeleteSong removes a song from the catalog
type DeleteSong struct {
	SongID string
}

// ToggleModForSong enables or disables a mod on the open song
type ToggleModForSong struct {
	Mod domain.ModName
}

// UpdateModColor sets one custom color slot on the open song
type UpdateModColor struct {
	Element domain.ColorElement
	Color   string
}

func (StartLoadingSong) Kind() Kind         { return KindStartLoadingSong }
func (FinishLoadingSong) Kind() Kind        { return KindFinishLoadingSong }
func (LeaveEditor) Kind() Kind              { return KindLeaveEditor }
func (StartImportingSong) Kind() Kind       { return KindStartImportingSong }
func (CancelImportingSong) Kind() Kind      { return KindCancelImportingSong }
func (CreateNewSong) Kind() Kind            { return KindCreateNewSong }
func (ImportExistingSong) Kind() Kind       { return KindImportExistingSong }
func (UpdateSongDetails) Kind() Kind        { return KindUpdateSongDetails }
func (CreateDifficulty) Kind() Kind         { return KindCreateDifficulty }
func (CopyDifficulty) Kind() Kind           { return KindCopyDifficulty }
func (ChangeSelectedDifficulty) Kind() Kind { return KindChangeSelectedDifficulty }
func (DeleteBeatmap) Kind() Kind            { return KindDeleteBeatmap }
func (UpdateBeatmapMetadata) Kind() Kind    { return KindUpdateBeatmapMetadata }
func (DeleteSong) Kind() Kind               { return KindDeleteSong }
func (ToggleModForSong) Kind() Kind         { return KindToggleModForSong }
func (UpdateModColor) Kind() Kind           { return KindUpdateModColor }
