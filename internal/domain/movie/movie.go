// Package movie contains the request-scoped values passed between the
// recommender, the search flow and the renderer.
package movie

import (
	"fmt"
	"strings"
)

// Rating bounds.
const (
	MinRating = 0.0
	MaxRating = 10.0
)

// SearchQuery is a trimmed, non-empty movie title typed by the user.
type SearchQuery struct {
	text string
}

// NewSearchQuery trims raw and rejects empty or whitespace-only input.
func NewSearchQuery(raw string) (SearchQuery, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return SearchQuery{}, ErrEmptyQuery
	}
	return SearchQuery{text: text}, nil
}

// String returns the trimmed query text.
func (q SearchQuery) String() string { return q.text }

// Lower returns the query folded to lower case for matching.
func (q SearchQuery) Lower() string { return strings.ToLower(q.text) }

// IsZero reports whether q was never built through NewSearchQuery.
func (q SearchQuery) IsZero() bool { return q.text == "" }

// Summary describes one recommended movie.
type Summary struct {
	Title  string  `json:"title"`
	Year   int     `json:"year"`
	Genre  string  `json:"genre"`
	Rating float64 `json:"rating"`
}

// NewSummary builds a Summary, rejecting ratings outside [0,10].
func NewSummary(title string, year int, genre string, rating float64) (Summary, error) {
	if rating < MinRating || rating > MaxRating {
		return Summary{}, fmt.Errorf("%w: rating %.1f for %q", ErrInvalidRating, rating, title)
	}
	return Summary{Title: title, Year: year, Genre: genre, Rating: rating}, nil
}

// Kind tags a Response as success or failure.
type Kind int

const (
	// KindFailure carries only a message.
	KindFailure Kind = iota
	// KindSuccess carries cluster metadata and recommendations.
	KindSuccess
)

func (k Kind) String() string {
	if k == KindSuccess {
		return "success"
	}
	return "failure"
}

// Response is the outcome of one recommendation lookup.
// The zero value is a Failure with an empty message.
type Response struct {
	kind               Kind
	inputMovie         string
	cluster            int
	totalClusterMovies int
	recommendations    []Summary
	message            string
}

// Success builds a successful Response. recs is copied.
func Success(inputMovie string, cluster, totalClusterMovies int, recs []Summary) Response {
	cp := make([]Summary, len(recs))
	copy(cp, recs)
	return Response{
		kind:               KindSuccess,
		inputMovie:         inputMovie,
		cluster:            cluster,
		totalClusterMovies: totalClusterMovies,
		recommendations:    cp,
	}
}

// Failure builds a failed Response with a user-visible message.
func Failure(message string) Response {
	return Response{kind: KindFailure, message: message}
}

// NotFound is the Failure returned when a query matches no known title.
func NotFound() Response { return Failure(NotFoundMessage) }

// Kind returns the response tag.
func (r Response) Kind() Kind { return r.kind }

// IsSuccess reports whether r is a Success.
func (r Response) IsSuccess() bool { return r.kind == KindSuccess }

// InputMovie returns the title the engine matched the query to.
func (r Response) InputMovie() string { return r.inputMovie }

// Cluster returns the opaque cluster id.
func (r Response) Cluster() int { return r.cluster }

// TotalClusterMovies returns the size of the cluster.
func (r Response) TotalClusterMovies() int { return r.totalClusterMovies }

// Message returns the failure message.
func (r Response) Message() string { return r.message }

// Recommendations returns a copy of the ranked recommendations.
func (r Response) Recommendations() []Summary {
	cp := make([]Summary, len(r.recommendations))
	copy(cp, r.recommendations)
	return cp
}
