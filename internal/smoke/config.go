package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Timeout     time.Duration // HTTP request timeout
	Concurrency int           // Overlapping searches fired on one session
	Verbose     bool          // Log every check result in detail
}

// Result is the outcome of one check.
type Result struct {
	Name     string
	Err      error
	Skipped  bool
	Duration time.Duration
}

// Stats summarizes a run.
type Stats struct {
	Passed    int
	Failed    int
	Skipped   int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
