package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("search service not started")
	ErrNoRecommender = errors.New("no recommender configured")
	ErrNoSession     = errors.New("no session")
)
