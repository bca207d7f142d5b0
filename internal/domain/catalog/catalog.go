// Package catalog holds the fixed reference title list used for autocomplete
// and for the offline recommendation buckets.
package catalog

import "strings"

// Suggestion defaults.
const (
	DefaultSuggestionLimit = 5
	// MinSuggestInput is the input length that must be exceeded before
	// suggestions are offered.
	MinSuggestInput = 2
)

var referenceTitles = []string{
	"The Matrix",
	"Inception",
	"Interstellar",
	"The Dark Knight",
	"Pulp Fiction",
	"The Shawshank Redemption",
	"The Godfather",
	"Fight Club",
	"Forrest Gump",
	"The Lord of the Rings",
	"Star Wars",
	"Avatar",
	"Titanic",
	"The Avengers",
	"The Hangover",
	"Superbad",
	"Anchorman",
	"Step Brothers",
	"The 40-Year-Old Virgin",
	"The Conjuring",
	"Insidious",
	"The Ring",
	"Get Out",
	"A Quiet Place",
	"Blade Runner 2049",
	"Ex Machina",
	"Minority Report",
	"Her",
	"Arrival",
}

// featured titles are offered as one-click chips on the search page.
var featured = []string{"The Matrix", "Inception", "The Hangover", "The Conjuring"}

// Titles returns a copy of the reference list in its canonical order.
func Titles() []string {
	cp := make([]string, len(referenceTitles))
	copy(cp, referenceTitles)
	return cp
}

// Featured returns the titles shown as suggestion chips.
func Featured() []string {
	cp := make([]string, len(featured))
	copy(cp, featured)
	return cp
}

// Contains reports whether query is a case-insensitive substring of any
// reference title.
func Contains(query string) bool {
	needle := strings.ToLower(query)
	for _, title := range referenceTitles {
		if strings.Contains(strings.ToLower(title), needle) {
			return true
		}
	}
	return false
}

// Suggest filters the reference list by case-insensitive substring match,
// in list order, capped at limit. Input of MinSuggestInput characters or
// fewer (after trimming) yields nothing. A non-positive limit uses
// DefaultSuggestionLimit.
func Suggest(input string, limit int) []string {
	input = strings.TrimSpace(input)
	if len([]rune(input)) <= MinSuggestInput {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	needle := strings.ToLower(input)
	out := make([]string, 0, limit)
	for _, title := range referenceTitles {
		if strings.Contains(strings.ToLower(title), needle) {
			out = append(out, title)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
