package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestSortDifficultyIDs(t *testing.T) {
	ids := []DifficultyID{"Custom", DifficultyExpertPlus, DifficultyEasy, DifficultyHard, "Another"}
	want := []DifficultyID{DifficultyEasy, DifficultyHard, DifficultyExpertPlus, "Another", "Custom"}

	if got := SortDifficultyIDs(ids); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDefaultNoteJumpSpeed(t *testing.T) {
	cases := map[DifficultyID]float64{
		DifficultyEasy:       10,
		DifficultyNormal:     10,
		DifficultyHard:       12,
		DifficultyExpert:     15,
		DifficultyExpertPlus: 18,
		"Lawless":            10,
	}
	for id, want := range cases {
		if got := DefaultNoteJumpSpeed(id); got != want {
			t.Errorf("%s: expected %v, got %v", id, want, got)
		}
	}
}

func TestDifficultyDisplayName(t *testing.T) {
	if got := NewDifficulty(DifficultyExpertPlus).DisplayName(); got != "Expert+" {
		t.Errorf("expected Expert+, got %q", got)
	}
	d := Difficulty{ID: DifficultyHard, CustomLabel: "Spicy"}
	if got := d.DisplayName(); got != "Spicy" {
		t.Errorf("expected Spicy, got %q", got)
	}
}

func TestCustomColorsWith(t *testing.T) {
	colors := DefaultCustomColors()

	updated, ok := colors.With(EnvColorRight, "#123456")
	if !ok {
		t.Fatal("expected envColorRight to be accepted")
	}
	if updated.EnvColorRight != "#123456" || colors.EnvColorRight != DefaultBlue {
		t.Errorf("expected copy to change and original to stay, got %+v / %+v", updated, colors)
	}

	if _, ok := colors.With("floor", "#000000"); ok {
		t.Error("expected unknown element to be rejected")
	}
}

func TestNotFoundErrorUnwrap(t *testing.T) {
	if err := SongNotFound("x"); !errors.Is(err, ErrSongNotFound) {
		t.Errorf("expected ErrSongNotFound, got %v", err)
	}
	err := DifficultyNotFound(DifficultyHard)
	if !errors.Is(err, ErrDifficultyNotFound) {
		t.Errorf("expected ErrDifficultyNotFound, got %v", err)
	}
	if err.Error() != `difficulty "Hard" not found` {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestEnvironmentValid(t *testing.T) {
	if !EnvironmentDragons.Valid() {
		t.Error("expected DragonsEnvironment to be valid")
	}
	if Environment("KDAEnvironment").Valid() {
		t.Error("expected unknown environment to be invalid")
	}
}
