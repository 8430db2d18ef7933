package search

import (
	"testing"

	"github.com/mmcdole/beatlib/internal/domain"
)

func testSongs() []*domain.Song {
	return []*domain.Song{
		{ID: "only-now", Name: "Only Now", ArtistName: "Tokyo Machine"},
		{ID: "country-rounds", Name: "Country Rounds", SubName: "Initial", ArtistName: "Sqeepo", MapAuthorName: "Freeek"},
		{ID: "escape", Name: "Escape", ArtistName: "Crystal Skies"},
	}
}

func TestFilterSongs(t *testing.T) {
	results := FilterSongs("tokyo", testSongs())
	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	if results[0].Song.ID != "only-now" {
		t.Errorf("expected only-now, got %s", results[0].Song.ID)
	}
	if len(results[0].MatchedIndexes) != len("tokyo") {
		t.Errorf("expected %d matched indexes, got %v", len("tokyo"), results[0].MatchedIndexes)
	}
}

func TestFilterSongsIsCaseInsensitive(t *testing.T) {
	results := FilterSongs("ESCAPE", testSongs())
	if len(results) == 0 || results[0].Song.ID != "escape" {
		t.Errorf("expected escape first, got %v", results)
	}
}

func TestFilterSongsIndexesNonASCIIText(t *testing.T) {
	songs := []*domain.Song{{ID: "istanbul", Name: "İstanbul Café", ArtistName: "Ayşe"}}

	results := FilterSongs("caf", songs)
	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	var got []byte
	for _, i := range results[0].MatchedIndexes {
		got = append(got, results[0].Text[i])
	}
	if string(got) != "Caf" {
		t.Errorf("expected indexes to point at %q, got %q (%v)", "Caf", got, results[0].MatchedIndexes)
	}
}

func TestFilterSongsMatchesMapper(t *testing.T) {
	results := FilterSongs("freeek", testSongs())
	if len(results) != 1 || results[0].Song.ID != "country-rounds" {
		t.Errorf("expected country-rounds, got %v", results)
	}
}

func TestFilterSongsEmptyQuery(t *testing.T) {
	if results := FilterSongs("  ", testSongs()); results != nil {
		t.Errorf("expected nil, got %v", results)
	}
}

func TestSearchText(t *testing.T) {
	got := SearchText(testSongs()[1])
	want := "Country Rounds (Initial) - Sqeepo - Freeek"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSuggest(t *testing.T) {
	ids := []string{"only-now", "country-rounds", "escape"}

	if got, ok := Suggest("cntry", ids); !ok || got != "country-rounds" {
		t.Errorf("expected country-rounds, got %q (%v)", got, ok)
	}
	if got, ok := Suggest("escpae", ids); !ok || got != "escape" {
		t.Errorf("expected escape by edit distance, got %q (%v)", got, ok)
	}
	if _, ok := Suggest("zzzzzzzzzzzz", ids); ok {
		t.Error("expected no suggestion for an unrelated id")
	}
}
