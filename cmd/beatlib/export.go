package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mmcdole/beatlib/internal/catalog"
	"github.com/mmcdole/beatlib/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportSong is the manifest entry written by the export command
type exportSong struct {
	ID           string             `json:"id" yaml:"id"`
	Name         string             `json:"name" yaml:"name"`
	SubName      string             `json:"subName,omitempty" yaml:"subName,omitempty"`
	Artist       string             `json:"artist" yaml:"artist"`
	Mapper       string             `json:"mapper,omitempty" yaml:"mapper,omitempty"`
	BPM          float64            `json:"bpm" yaml:"bpm"`
	Environment  string             `json:"environment" yaml:"environment"`
	Difficulties []exportDifficulty `json:"difficulties" yaml:"difficulties"`
	Mods         []string           `json:"mods,omitempty" yaml:"mods,omitempty"`
}

type exportDifficulty struct {
	ID              string  `json:"id" yaml:"id"`
	Label           string  `json:"label,omitempty" yaml:"label,omitempty"`
	NoteJumpSpeed   float64 `json:"noteJumpSpeed" yaml:"noteJumpSpeed"`
	StartBeatOffset float64 `json:"startBeatOffset" yaml:"startBeatOffset"`
}

// createExportCommand creates the export command
func (app *Application) createExportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a catalog manifest to stdout",
		Long:  `Write every song and its beatmap metadata as YAML or JSON, in id order.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return exportCatalog(cmd.OutOrStdout(), catalog.AllSongs(app.Catalog), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

func exportCatalog(w io.Writer, songs []*domain.Song, format string) error {
	manifest := make([]exportSong, 0, len(songs))
	for _, song := range songs {
		manifest = append(manifest, toExportSong(song))
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(manifest); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(manifest); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

func toExportSong(song *domain.Song) exportSong {
	out := exportSong{
		ID:          song.ID,
		Name:        song.Name,
		SubName:     song.SubName,
		Artist:      song.ArtistName,
		Mapper:      song.MapAuthorName,
		BPM:         song.BPM,
		Environment: string(song.Environment),
	}
	for _, id := range song.DifficultyIDs() {
		d := song.DifficultiesByID[id]
		out.Difficulties = append(out.Difficulties, exportDifficulty{
			ID:              string(id),
			Label:           d.CustomLabel,
			NoteJumpSpeed:   d.NoteJumpSpeed,
			StartBeatOffset: d.StartBeatOffset,
		})
	}
	for _, mod := range []domain.ModName{domain.ModMappingExtensions, domain.ModCustomColors} {
		if song.IsModEnabled(mod) {
			out.Mods = append(out.Mods, string(mod))
		}
	}
	return out
}
