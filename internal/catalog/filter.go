package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/PizzaHomicide/hotaru/internal/domain"
)

// FilterBySubstring returns the items whose title, description or any genre tag
// contains the query, case-insensitively and ignoring diacritics.  Matches keep
// their original order.  An empty query returns the full input unfiltered.
func FilterBySubstring(query string, items []domain.Content) []domain.Content {
	if strings.TrimSpace(query) == "" {
		return items
	}

	q := Normalize(query)
	var out []domain.Content
	for _, item := range items {
		if matchesContent(q, item.Info()) {
			out = append(out, item)
		}
	}
	return out
}

// FilterTracks is the music counterpart of FilterBySubstring, matching against
// title, artist, album and genre
func FilterTracks(query string, tracks []domain.Track) []domain.Track {
	if strings.TrimSpace(query) == "" {
		return tracks
	}

	q := Normalize(query)
	var out []domain.Track
	for _, track := range tracks {
		if strings.Contains(Normalize(track.Title), q) ||
			strings.Contains(Normalize(track.Artist), q) ||
			strings.Contains(Normalize(track.Album), q) ||
			strings.Contains(Normalize(track.Genre), q) {
			out = append(out, track)
		}
	}
	return out
}

func matchesContent(normalizedQuery string, info domain.ContentInfo) bool {
	if strings.Contains(Normalize(info.Title), normalizedQuery) {
		return true
	}
	if strings.Contains(Normalize(info.Description), normalizedQuery) {
		return true
	}
	for _, genre := range info.Genres {
		if strings.Contains(Normalize(genre), normalizedQuery) {
			return true
		}
	}
	return false
}

// Normalize lowercases s and strips diacritics so that "Pokémon" matches a
// "pokemon" query
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}
