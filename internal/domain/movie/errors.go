package movie

import "errors"

// User-visible messages.
const (
	NotFoundMessage = "Movie not found in database. Please try another search."
	GenericMessage  = "An error occurred while searching. Please try again."
)

// Sentinel error kinds for this package.
var (
	ErrEmptyQuery    = errors.New("empty search query")
	ErrInvalidRating = errors.New("rating out of range")
	ErrNotFound      = errors.New("movie not found")
	ErrBadStatus     = errors.New("unknown response status")
)
