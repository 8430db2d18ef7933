package search

import (
	"sort"
	"strings"

	rank "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/beatlib/internal/domain"
	"github.com/sahilm/fuzzy"
)

// SongMatch is a filter hit with match metadata for highlighting
type SongMatch struct {
	Song           *domain.Song
	Text           string // the searchable text MatchedIndexes refer to
	MatchedIndexes []int
	Score          int // higher is better
}

// songIndex implements fuzzy.Source over song display text
type songIndex struct {
	songs []*domain.Song
	texts []string
}

func (idx songIndex) String(i int) string { return idx.texts[i] }
func (idx songIndex) Len() int            { return len(idx.songs) }

func newSongIndex(songs []*domain.Song) songIndex {
	idx := songIndex{songs: songs, texts: make([]string, len(songs))}
	for i, s := range songs {
		idx.texts[i] = SearchText(s)
	}
	return idx
}

// SearchText is the text a song is matched against: title, artist and mapper
func SearchText(s *domain.Song) string {
	parts := []string{s.Title(), s.ArtistName}
	if s.MapAuthorName != "" {
		parts = append(parts, s.MapAuthorName)
	}
	return strings.Join(parts, " - ")
}

// FilterSongs returns the songs matching query, best match first. Matching
// ignores case; MatchedIndexes are byte offsets into Text.
// An empty query matches nothing.
func FilterSongs(query string, songs []*domain.Song) []SongMatch {
	query = strings.TrimSpace(query)
	if query == "" || len(songs) == 0 {
		return nil
	}

	idx := newSongIndex(songs)
	matches := fuzzy.FindFrom(query, idx)

	results := make([]SongMatch, len(matches))
	for i, m := range matches {
		results[i] = SongMatch{
			Song:           idx.songs[m.Index],
			Text:           idx.texts[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// Suggest returns the candidate closest to input, for "did you mean" hints.
// It prefers fuzzy containment matches and falls back to edit distance;
// ok is false when nothing is reasonably close.
func Suggest(input string, candidates []string) (string, bool) {
	if input == "" || len(candidates) == 0 {
		return "", false
	}

	ranks := rank.RankFindFold(input, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target, true
	}

	best, bestDistance := "", -1
	for _, c := range candidates {
		d := rank.LevenshteinDistance(strings.ToLower(input), strings.ToLower(c))
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = c, d
		}
	}
	if bestDistance > len(input)/2+1 {
		return "", false
	}
	return best, true
}
