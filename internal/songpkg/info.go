// Package songpkg reads Beat Saber song packages into catalog import payloads.
package songpkg

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/mmcdole/beatlib/internal/domain"
)

// InfoFilename is the metadata file at the root of every song package
const InfoFilename = "info.dat"

const (
	characteristicStandard    = "Standard"
	requirementMappingExtends = "Mapping Extensions"
)

// infoFile mirrors the parts of info.dat the catalog uses
type infoFile struct {
	SongName           string          `json:"_songName"`
	SongSubName        string          `json:"_songSubName"`
	SongAuthorName     string          `json:"_songAuthorName"`
	LevelAuthorName    string          `json:"_levelAuthorName"`
	BeatsPerMinute     float64         `json:"_beatsPerMinute"`
	SongTimeOffset     float64         `json:"_songTimeOffset"` // seconds
	Shuffle            float64         `json:"_shuffle"`
	ShufflePeriod      float64         `json:"_shufflePeriod"`
	PreviewStartTime   float64         `json:"_previewStartTime"`
	PreviewDuration    float64         `json:"_previewDuration"`
	SongFilename       string          `json:"_songFilename"`
	CoverImageFilename string          `json:"_coverImageFilename"`
	EnvironmentName    string          `json:"_environmentName"`
	BeatmapSets        []beatmapSetDTO `json:"_difficultyBeatmapSets"`
}

type beatmapSetDTO struct {
	CharacteristicName string       `json:"_beatmapCharacteristicName"`
	Beatmaps           []beatmapDTO `json:"_difficultyBeatmaps"`
}

type beatmapDTO struct {
	Difficulty              string            `json:"_difficulty"`
	BeatmapFilename         string            `json:"_beatmapFilename"`
	NoteJumpMovementSpeed   float64           `json:"_noteJumpMovementSpeed"`
	NoteJumpStartBeatOffset float64           `json:"_noteJumpStartBeatOffset"`
	CustomData              *beatmapCustomDTO `json:"_customData,omitempty"`
}

type beatmapCustomDTO struct {
	DifficultyLabel string    `json:"_difficultyLabel"`
	Requirements    []string  `json:"_requirements"`
	ColorLeft       *colorDTO `json:"_colorLeft"`
	ColorRight      *colorDTO `json:"_colorRight"`
	EnvColorLeft    *colorDTO `json:"_envColorLeft"`
	EnvColorRight   *colorDTO `json:"_envColorRight"`
	ObstacleColor   *colorDTO `json:"_obstacleColor"`
}

// colorDTO holds channels in the 0..1 range
type colorDTO struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Load reads the package at path, which may be the info.dat file itself or
// the package directory containing it.
func Load(path string) (domain.ImportedSong, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, InfoFilename)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.ImportedSong{}, fmt.Errorf("failed to open song package: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes an info.dat document. Only the Standard characteristic is
// imported.
func Parse(r io.Reader) (domain.ImportedSong, error) {
	var info infoFile
	if err := json.NewDecoder(r).Decode(&info); err != nil {
		return domain.ImportedSong{}, fmt.Errorf("%w: %v", domain.ErrInvalidPackage, err)
	}

	id := Slugify(info.SongName)
	if id == "" {
		return domain.ImportedSong{}, fmt.Errorf("%w: song has no name", domain.ErrInvalidPackage)
	}

	env := domain.Environment(info.EnvironmentName)
	if !env.Valid() {
		env = domain.EnvironmentDefault
	}

	song := domain.ImportedSong{
		SongID:           id,
		Name:             info.SongName,
		SubName:          info.SongSubName,
		ArtistName:       info.SongAuthorName,
		MapAuthorName:    info.LevelAuthorName,
		BPM:              info.BeatsPerMinute,
		Offset:           info.SongTimeOffset * 1000,
		SwingAmount:      info.Shuffle,
		SwingPeriod:      info.ShufflePeriod,
		PreviewStartTime: info.PreviewStartTime,
		PreviewDuration:  info.PreviewDuration,
		Environment:      env,
		SongFilename:     info.SongFilename,
		CoverArtFilename: info.CoverImageFilename,
		DifficultiesByID: make(map[domain.DifficultyID]domain.Difficulty),
	}

	mods := &domain.ModSettings{}
	for _, set := range info.BeatmapSets {
		if set.CharacteristicName != characteristicStandard {
			continue
		}
		for _, bm := range set.Beatmaps {
			id := domain.DifficultyID(bm.Difficulty)
			d := domain.Difficulty{
				ID:              id,
				NoteJumpSpeed:   bm.NoteJumpMovementSpeed,
				StartBeatOffset: bm.NoteJumpStartBeatOffset,
			}
			if d.NoteJumpSpeed <= 0 {
				d.NoteJumpSpeed = domain.DefaultNoteJumpSpeed(id)
			}
			if bm.CustomData != nil {
				d.CustomLabel = bm.CustomData.DifficultyLabel
				applyCustomData(mods, bm.CustomData)
			}
			song.DifficultiesByID[id] = d
		}
	}

	if len(song.DifficultiesByID) == 0 {
		return domain.ImportedSong{}, fmt.Errorf("%w: no %s difficulties", domain.ErrInvalidPackage, characteristicStandard)
	}

	song.ModSettings = mods
	return song, nil
}

// applyCustomData enables mods declared by a beatmap. The first beatmap that
// carries colors wins.
func applyCustomData(mods *domain.ModSettings, cd *beatmapCustomDTO) {
	for _, req := range cd.Requirements {
		if req == requirementMappingExtends && mods.MappingExtensions == nil {
			grid := domain.DefaultMappingExtensions()
			mods.MappingExtensions = &grid
		}
	}

	if mods.CustomColors != nil || (cd.ColorLeft == nil && cd.ColorRight == nil) {
		return
	}

	colors := domain.DefaultCustomColors()
	setHex(&colors.ColorLeft, cd.ColorLeft)
	setHex(&colors.ColorRight, cd.ColorRight)
	setHex(&colors.EnvColorLeft, cd.EnvColorLeft)
	setHex(&colors.EnvColorRight, cd.EnvColorRight)
	setHex(&colors.ObstacleColor, cd.ObstacleColor)
	mods.CustomColors = &colors
}

func setHex(dst *string, c *colorDTO) {
	if c != nil {
		*dst = c.hex()
	}
}

func (c colorDTO) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Slugify turns a song name into a catalog id: lower-cased runs of letters
// and digits in any script, separated by single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || (unicode.IsMark(r) && b.Len() > 0) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
