package catalog

import (
	"fmt"

	"github.com/mmcdole/beatlib/internal/domain"
)

// Default preview window for newly created songs, in seconds
const (
	defaultPreviewStartTime = 12
	defaultPreviewDuration  = 10
)

// Reduce applies action to state and returns the next state.
//
// The input state is never modified. Actions that reference a missing song or
// difficulty return the input state with a *domain.NotFoundError. Action
// values not handled here (including pointers to the declared variants) are
// returned unchanged with a nil error.
func Reduce(state State, action Action) (State, error) {
	switch a := action.(type) {
	case StartLoadingSong:
		return startLoadingSong(state, a)
	case FinishLoadingSong:
		return finishLoadingSong(state, a)
	case LeaveEditor:
		state.SelectedID = ""
		return state, nil
	case StartImportingSong:
		state.ProcessingImport = true
		return state, nil
	case CancelImportingSong:
		state.ProcessingImport = false
		return state, nil
	case CreateNewSong:
		return createNewSong(state, a), nil
	case ImportExistingSong:
		return importExistingSong(state, a), nil
	case UpdateSongDetails:
		return updateSongDetails(state, a)
	case CreateDifficulty:
		return createDifficulty(state, a)
	case CopyDifficulty:
		return copyDifficulty(state, a)
	case ChangeSelectedDifficulty:
		return changeSelectedDifficulty(state, a)
	case DeleteBeatmap:
		return deleteBeatmap(state, a)
	case UpdateBeatmapMetadata:
		return updateBeatmapMetadata(state, a)
	case DeleteSong:
		return deleteSong(state, a)
	case ToggleModForSong:
		return toggleModForSong(state, a)
	case UpdateModColor:
		return updateModColor(state, a)
	default:
		return state, nil
	}
}

func startLoadingSong(state State, a StartLoadingSong) (State, error) {
	song, err := state.song(a.SongID)
	if err != nil {
		return state, err
	}
	next := copySong(song)
	next.SelectedDifficulty = a.Difficulty

	state = state.withSong(next)
	state.SelectedID = a.SongID
	return state, nil
}

func finishLoadingSong(state State, a FinishLoadingSong) (State, error) {
	song, err := state.song(a.SongID)
	if err != nil {
		return state, err
	}
	next := copySong(song)
	next.LastOpenedAt = a.LastOpenedAt
	if next.ModSettings == nil {
		next.ModSettings = &domain.ModSettings{}
	}
	return state.withSong(next), nil
}

func createNewSong(state State, a CreateNewSong) State {
	song := &domain.Song{
		ID:               a.SongID,
		Name:             a.Name,
		SubName:          a.SubName,
		ArtistName:       a.ArtistName,
		MapAuthorName:    a.MapAuthorName,
		BPM:              a.BPM,
		Offset:           a.Offset,
		PreviewStartTime: defaultPreviewStartTime,
		PreviewDuration:  defaultPreviewDuration,
		Environment:      domain.EnvironmentDefault,
		SongFilename:     a.SongFilename,
		CoverArtFilename: a.CoverArtFilename,
		DifficultiesByID: map[domain.DifficultyID]domain.Difficulty{
			a.SelectedDifficulty: domain.NewDifficulty(a.SelectedDifficulty),
		},
		SelectedDifficulty: a.SelectedDifficulty,
		CreatedAt:          a.CreatedAt,
		LastOpenedAt:       a.LastOpenedAt,
		ModSettings:        &domain.ModSettings{},
	}

	state = state.withSong(song)
	state.SelectedID = a.SongID
	return state
}

// importExistingSong selects the first difficulty in rank order, which is
// the enumeration order this package uses for difficulty maps.
func importExistingSong(state State, a ImportExistingSong) State {
	data := a.SongData

	difficulties := copyDifficulties(data.DifficultiesByID)
	var selected domain.DifficultyID
	if ids := domain.DifficultyIDsOf(difficulties); len(ids) > 0 {
		selected = ids[0]
	}

	modSettings := data.ModSettings
	if modSettings == nil {
		modSettings = &domain.ModSettings{}
	}

	song := &domain.Song{
		ID:                 data.SongID,
		Name:               data.Name,
		SubName:            data.SubName,
		ArtistName:         data.ArtistName,
		MapAuthorName:      data.MapAuthorName,
		BPM:                data.BPM,
		Offset:             data.Offset,
		SwingAmount:        data.SwingAmount,
		SwingPeriod:        data.SwingPeriod,
		PreviewStartTime:   data.PreviewStartTime,
		PreviewDuration:    data.PreviewDuration,
		Environment:        data.Environment,
		SongFilename:       data.SongFilename,
		CoverArtFilename:   data.CoverArtFilename,
		DifficultiesByID:   difficulties,
		SelectedDifficulty: selected,
		CreatedAt:          a.CreatedAt,
		LastOpenedAt:       a.LastOpenedAt,
		Demo:               data.Demo,
		ModSettings:        modSettings,
	}

	state = state.withSong(song)
	state.ProcessingImport = false
	return state
}

func updateSongDetails(state State, a UpdateSongDetails) (State, error) {
	song, err := state.song(a.SongID)
	if err != nil {
		return state, err
	}
	next := copySong(song)
	d := a.Details

	if d.Name != nil {
		next.Name = *d.Name
	}
	if d.SubName != nil {
		next.SubName = *d.SubName
	}
	if d.ArtistName != nil {
		next.ArtistName = *d.ArtistName
	}
	if d.MapAuthorName != nil {
		next.MapAuthorName = *d.MapAuthorName
	}
	if d.BPM != nil {
		next.BPM = *d.BPM
	}
	if d.Offset != nil {
		next.Offset = *d.Offset
	}
	if d.SwingAmount != nil {
		next.SwingAmount = *d.SwingAmount
	}
	if d.SwingPeriod != nil {
		next.SwingPeriod = *d.SwingPeriod
	}
	if d.PreviewStartTime != nil {
		next.PreviewStartTime = *d.PreviewStartTime
	}
	if d.PreviewDuration != nil {
		next.PreviewDuration = *d.PreviewDuration
	}
	if d.Environment != nil {
		next.Environment = *d.Environment
	}
	if d.SongFilename != nil {
		next.SongFilename = *d.SongFilename
	}
	if d.CoverArtFilename != nil {
		next.CoverArtFilename = *d.CoverArtFilename
	}
	if d.Demo != nil {
		next.Demo = *d.Demo
	}
	if d.ModSettings != nil {
		next.ModSettings = copyModSettings(d.ModSettings)
	}

	return state.withSong(next), nil
}

func createDifficulty(state State, a CreateDifficulty) (State, error) {
	if state.SelectedID == "" {
		return state, nil
	}
	song, err := state.song(state.SelectedID)
	if err != nil {
		return state, err
	}
	next := copySong(song)
	next.DifficultiesByID = copyDifficulties(song.DifficultiesByID)
	next.DifficultiesByID[a.Difficulty] = domain.NewDifficulty(a.Difficulty)
	next.SelectedDifficulty = a.Difficulty

	return state.withSong(next), nil
}

func copyDifficulty(state State, a CopyDifficulty) (State, error) {
	song, err := state.song(a.SongID)
	if err != nil {
		return state, err
	}
	from, ok := song.DifficultiesByID[a.FromDifficultyID]
	if !ok {
		return state, domain.DifficultyNotFound(a.FromDifficultyID)
	}

	copied := from
	copied.ID = a.ToDifficultyID

	next := copySong(song)
	next.DifficultiesByID = copyDifficulties(song.DifficultiesByID)
	next.DifficultiesByID[a.ToDifficultyID] = copied
	next.SelectedDifficulty = a.ToDifficultyID

	return state.withSong(next), nil
}

func changeSelectedDifficulty(state State, a ChangeSelectedDifficulty) (State, error) {
	song, err := state.song(a.SongID)
	if err != nil {
		return state, err
	}
	next := copySong(song)
	next.SelectedDifficulty = a.Difficulty
	return state.withSong(next), nil
}

// deleteBeatmap re-points a song's selected difficulty at the easiest
// remaining one when the selected difficulty is the one removed.
func deleteBeatmap(state State, a DeleteBeatmap) (State, error) {
	song, err := state.song(a.SongID)
	if err != nil {
		return state, err
	}
	if _, ok := song.DifficultiesByID[a.Difficulty]; !ok {
		return state, domain.DifficultyNotFound(a.Difficulty)
	}

	next := copySong(song)
	next.DifficultiesByID = copyDifficulties(song.DifficultiesByID)
	delete(next.DifficultiesByID, a.Difficulty)

	if next.SelectedDifficulty == a.Difficulty {
		next.SelectedDifficulty = ""
		if ids := next.DifficultyIDs(); len(ids) > 0 {
			next.SelectedDifficulty = ids[0]
		}
	}

	return state.withSong(next), nil
}

func updateBeatmapMetadata(state State, a UpdateBeatmapMetadata) (State, error) {
	song, err := state.song(a.SongID)
	if err != nil {
		return state, err
	}
	current, ok := song.DifficultiesByID[a.Difficulty]
	if !ok {
		return state, domain.DifficultyNotFound(a.Difficulty)
	}

	current.NoteJumpSpeed = a.NoteJumpSpeed
	current.StartBeatOffset = a.StartBeatOffset
	current.CustomLabel = a.CustomLabel

	next := copySong(song)
	next.DifficultiesByID = copyDifficulties(song.DifficultiesByID)
	next.DifficultiesByID[a.Difficulty] = current

	return state.withSong(next), nil
}

// deleteSong also closes the song if it was open.
func deleteSong(state State, a DeleteSong) (State, error) {
	if _, err := state.song(a.SongID); err != nil {
		return state, err
	}
	state = state.withoutSong(a.SongID)
	if state.SelectedID == a.SongID {
		state.SelectedID = ""
	}
	return state, nil
}

// selectedSong returns the open song, or nil when none is open or the open
// id no longer resolves.
func selectedSong(state State) *domain.Song {
	if state.SelectedID == "" {
		return nil
	}
	return state.ByID[state.SelectedID]
}

func toggleModForSong(state State, a ToggleModForSong) (State, error) {
	song := selectedSong(state)
	if song == nil {
		return state, nil
	}

	mods := copyModSettings(song.ModSettings)
	switch a.Mod {
	case domain.ModMappingExtensions:
		if mods.MappingExtensions != nil {
			mods.MappingExtensions = nil
		} else {
			defaults := domain.DefaultMappingExtensions()
			mods.MappingExtensions = &defaults
		}
	case domain.ModCustomColors:
		if mods.CustomColors != nil {
			mods.CustomColors = nil
		} else {
			defaults := domain.DefaultCustomColors()
			mods.CustomColors = &defaults
		}
	default:
		return state, fmt.Errorf("%w: %q", domain.ErrUnknownMod, a.Mod)
	}

	next := copySong(song)
	next.ModSettings = mods
	return state.withSong(next), nil
}

func updateModColor(state State, a UpdateModColor) (State, error) {
	song := selectedSong(state)
	if song == nil || song.ModSettings == nil || song.ModSettings.CustomColors == nil {
		return state, nil
	}

	colors, ok := song.ModSettings.CustomColors.With(a.Element, a.Color)
	if !ok {
		return state, fmt.Errorf("%w: %q", domain.ErrUnknownColorElement, a.Element)
	}

	mods := copyModSettings(song.ModSettings)
	mods.CustomColors = &colors

	next := copySong(song)
	next.ModSettings = mods
	return state.withSong(next), nil
}
