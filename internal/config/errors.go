package config

import "errors"

var (
	// ErrInvalidConfig wraps every Validate failure, e.g. a non-positive
	// session capacity or a malformed api_base_url.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps failures reading MOVIEFRONT_CONFIG or the
	// MOVIEFRONT_* environment.
	ErrLoadConfig = errors.New("load config failed")
)
