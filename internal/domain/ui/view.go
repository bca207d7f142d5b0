// Package ui models the visible state of the search page and the
// transitions the search flow drives through it.
package ui

import (
	"fmt"
	"time"

	"github.com/okian/moviefront/internal/domain/movie"
)

// cardStagger is the animation delay added per card position.
const cardStagger = 100 * time.Millisecond

// State is the current mutually exclusive panel shown to the user.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
	StateResults
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateResults:
		return "results"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state name in JSON.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Header is the search summary shown above the cards.
type Header struct {
	SearchedMovie string `json:"searched_movie"`
	Cluster       int    `json:"cluster"`
	TotalMovies   int    `json:"total_movies"`
}

// Card is one rendered recommendation. AnimationDelay is in milliseconds.
type Card struct {
	Position       int    `json:"position"`
	Title          string `json:"title"`
	Year           int    `json:"year"`
	Genre          string `json:"genre"`
	Rating         string `json:"rating"`
	AnimationDelay int64  `json:"animation_delay_ms"`
}

// View is the full visible state of one page.
type View struct {
	Loading         bool   `json:"loading"`
	ErrorVisible    bool   `json:"error_visible"`
	ErrorMessage    string `json:"error_message,omitempty"`
	ResultsVisible  bool   `json:"results_visible"`
	Header          Header `json:"header"`
	Cards           []Card `json:"cards"`
	ScrollToResults bool   `json:"scroll_to_results"`
	RequestID       uint64 `json:"request_id"`
}

// State derives the panel currently in front. Loading takes precedence.
func (v View) State() State {
	switch {
	case v.Loading:
		return StateLoading
	case v.ErrorVisible:
		return StateError
	case v.ResultsVisible:
		return StateResults
	default:
		return StateIdle
	}
}

// Clone returns a copy of v that shares no slices with it.
func (v View) Clone() View {
	if v.Cards != nil {
		cards := make([]Card, len(v.Cards))
		copy(cards, v.Cards)
		v.Cards = cards
	}
	return v
}

// NewCard renders a summary at the given zero-based position.
func NewCard(pos int, s movie.Summary) Card {
	return Card{
		Position:       pos,
		Title:          s.Title,
		Year:           s.Year,
		Genre:          s.Genre,
		Rating:         FormatRating(s.Rating),
		AnimationDelay: (time.Duration(pos) * cardStagger).Milliseconds(),
	}
}

// FormatRating renders a rating as "7.9/10"; whole numbers drop the decimal.
func FormatRating(r float64) string {
	if r == float64(int64(r)) {
		return fmt.Sprintf("%d/10", int64(r))
	}
	return fmt.Sprintf("%g/10", r)
}
