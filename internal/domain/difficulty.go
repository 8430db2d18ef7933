package domain

import "sort"

// DifficultyID identifies a beatmap difficulty. The five ranked values are
// the standard ones; any other string is a custom difficulty.
type DifficultyID string

const (
	DifficultyEasy       DifficultyID = "Easy"
	DifficultyNormal     DifficultyID = "Normal"
	DifficultyHard       DifficultyID = "Hard"
	DifficultyExpert     DifficultyID = "Expert"
	DifficultyExpertPlus DifficultyID = "ExpertPlus"
)

// RankedDifficulties lists the standard difficulties from easiest to hardest
var RankedDifficulties = []DifficultyID{
	DifficultyEasy,
	DifficultyNormal,
	DifficultyHard,
	DifficultyExpert,
	DifficultyExpertPlus,
}

var difficultyRank = map[DifficultyID]int{
	DifficultyEasy:       0,
	DifficultyNormal:     1,
	DifficultyHard:       2,
	DifficultyExpert:     3,
	DifficultyExpertPlus: 4,
}

var defaultNoteJumpSpeeds = map[DifficultyID]float64{
	DifficultyEasy:       10,
	DifficultyNormal:     10,
	DifficultyHard:       12,
	DifficultyExpert:     15,
	DifficultyExpertPlus: 18,
}

// fallbackNoteJumpSpeed applies to custom difficulty ids
const fallbackNoteJumpSpeed = 10

// Rank returns the position of id in RankedDifficulties, or len(RankedDifficulties)
// for custom ids.
func (id DifficultyID) Rank() int {
	if r, ok := difficultyRank[id]; ok {
		return r
	}
	return len(RankedDifficulties)
}

// IsRanked reports whether id is one of the standard difficulties
func (id DifficultyID) IsRanked() bool {
	_, ok := difficultyRank[id]
	return ok
}

// DisplayName returns the human-readable difficulty name
func (id DifficultyID) DisplayName() string {
	if id == DifficultyExpertPlus {
		return "Expert+"
	}
	return string(id)
}

// DefaultNoteJumpSpeed returns the default note jump speed for id
func DefaultNoteJumpSpeed(id DifficultyID) float64 {
	if njs, ok := defaultNoteJumpSpeeds[id]; ok {
		return njs
	}
	return fallbackNoteJumpSpeed
}

// SortDifficultyIDs sorts ids in place by rank (Easy first) and returns them.
// Custom ids sort after every ranked id, alphabetically among themselves.
func SortDifficultyIDs(ids []DifficultyID) []DifficultyID {
	sort.SliceStable(ids, func(i, j int) bool {
		ri, rj := ids[i].Rank(), ids[j].Rank()
		if ri != rj {
			return ri < rj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// DifficultyIDsOf returns the keys of difficulties in rank order
func DifficultyIDsOf(difficulties map[DifficultyID]Difficulty) []DifficultyID {
	ids := make([]DifficultyID, 0, len(difficulties))
	for id := range difficulties {
		ids = append(ids, id)
	}
	return SortDifficultyIDs(ids)
}
