package smoke

import "time"

// Reference values the offline catalog guarantees.
const (
	UnmatchedQuery     = "xyzxyz-not-a-movie"
	NotFoundMessage    = "Movie not found in database. Please try another search."
	ExpectedCount      = 5
	MaxClusterID       = 11
	MinClusterSize     = 100
	MaxClusterSize     = 599
	sourceHeader       = "X-Recommendation-Source"
	sourceMock         = "mock"
	defaultTimeout     = 10 * time.Second
	defaultConcurrency = 4
)

// HangoverOrder is the mock answer for "The Hangover", in order.
var HangoverOrder = []string{"Anchorman", "Step Brothers", "Knocked Up", "Old School", "Wedding Crashers"}
