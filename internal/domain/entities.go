package domain

import "fmt"

// Environment is the in-game stage a song is mapped for
type Environment string

const (
	EnvironmentDefault   Environment = "DefaultEnvironment"
	EnvironmentBigMirror Environment = "BigMirrorEnvironment"
	EnvironmentTriangle  Environment = "TriangleEnvironment"
	EnvironmentNice      Environment = "NiceEnvironment"
	EnvironmentDragons   Environment = "DragonsEnvironment"
)

// Environments lists every supported environment in display order
var Environments = []Environment{
	EnvironmentDefault,
	EnvironmentBigMirror,
	EnvironmentTriangle,
	EnvironmentNice,
	EnvironmentDragons,
}

// Valid reports whether e is one of the supported environments
func (e Environment) Valid() bool {
	for _, env := range Environments {
		if e == env {
			return true
		}
	}
	return false
}

// Difficulty is one beatmap variant of a song
type Difficulty struct {
	ID              DifficultyID `json:"id"`
	NoteJumpSpeed   float64      `json:"noteJumpSpeed"`
	StartBeatOffset float64      `json:"startBeatOffset"`
	CustomLabel     string       `json:"customLabel,omitempty"`
}

// NewDifficulty returns a difficulty with the table defaults for id
func NewDifficulty(id DifficultyID) Difficulty {
	return Difficulty{
		ID:              id,
		NoteJumpSpeed:   DefaultNoteJumpSpeed(id),
		StartBeatOffset: 0,
		CustomLabel:     "",
	}
}

// DisplayName returns the custom label when set, otherwise the difficulty name
func (d Difficulty) DisplayName() string {
	if d.CustomLabel != "" {
		return d.CustomLabel
	}
	return d.ID.DisplayName()
}

// Song is one catalog entry. Songs held by catalog state are treated as
// immutable; transitions replace them rather than editing in place.
type Song struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SubName       string `json:"subName,omitempty"`
	ArtistName    string `json:"artistName"`
	MapAuthorName string `json:"mapAuthorName,omitempty"`

	// Audio timing
	BPM              float64 `json:"bpm"`
	Offset           float64 `json:"offset"` // milliseconds
	SwingAmount      float64 `json:"swingAmount,omitempty"`
	SwingPeriod      float64 `json:"swingPeriod,omitempty"`
	PreviewStartTime float64 `json:"previewStartTime"` // seconds
	PreviewDuration  float64 `json:"previewDuration"`  // seconds

	Environment Environment `json:"environment"`

	// External assets, not owned by the catalog
	SongFilename     string `json:"songFilename"`
	CoverArtFilename string `json:"coverArtFilename"`

	DifficultiesByID   map[DifficultyID]Difficulty `json:"difficultiesById"`
	SelectedDifficulty DifficultyID                `json:"selectedDifficulty,omitempty"`

	CreatedAt    int64 `json:"createdAt"`    // epoch millis
	LastOpenedAt int64 `json:"lastOpenedAt"` // epoch millis

	Demo        bool         `json:"demo,omitempty"`
	ModSettings *ModSettings `json:"modSettings,omitempty"`
}

// DifficultyIDs returns the song's difficulty ids in rank order
func (s *Song) DifficultyIDs() []DifficultyID {
	return DifficultyIDsOf(s.DifficultiesByID)
}

// Title returns "Name (SubName)" or just the name
func (s *Song) Title() string {
	if s.SubName == "" {
		return s.Name
	}
	return fmt.Sprintf("%s (%s)", s.Name, s.SubName)
}

// IsModEnabled reports whether the named mod has settings attached
func (s *Song) IsModEnabled(mod ModName) bool {
	if s.ModSettings == nil {
		return false
	}
	switch mod {
	case ModMappingExtensions:
		return s.ModSettings.MappingExtensions != nil
	case ModCustomColors:
		return s.ModSettings.CustomColors != nil
	default:
		return false
	}
}

// ImportedSong is an already-parsed song package handed to the catalog by
// the import pipeline.
type ImportedSong struct {
	SongID           string
	Name             string
	SubName          string
	ArtistName       string
	MapAuthorName    string
	BPM              float64
	Offset           float64
	SwingAmount      float64
	SwingPeriod      float64
	PreviewStartTime float64
	PreviewDuration  float64
	Environment      Environment
	SongFilename     string
	CoverArtFilename string
	DifficultiesByID map[DifficultyID]Difficulty
	Demo             bool
	ModSettings      *ModSettings
}
