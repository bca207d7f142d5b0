// Package smoke verifies the user-visible properties of a running
// moviefront instance over HTTP.
package smoke

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/okian/moviefront/pkg/logger"
)

// ErrFailed is returned when at least one check failed.
var ErrFailed = errors.New("smoke checks failed")

// Run executes every check against cfg.BaseURL.
func Run(ctx context.Context, cfg *Config, log logger.Logger) ([]Result, Stats, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if log == nil {
		log = logger.Nop()
	}

	stats := Stats{StartTime: time.Now()}
	log.Info(ctx, "starting smoke run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Duration("timeout", cfg.Timeout),
		logger.Int("concurrency", cfg.Concurrency),
	)

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	checks := Checks()
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		if err := ctx.Err(); err != nil {
			return results, stats, fmt.Errorf("smoke run: %w", err)
		}
		start := time.Now()
		err := check.Run(ctx, client, cfg)
		res := Result{Name: check.Name, Duration: time.Since(start)}

		switch {
		case errors.Is(err, ErrSkip):
			res.Skipped = true
			stats.Skipped++
			log.Info(ctx, "check skipped", logger.String("check", check.Name))
		case err != nil:
			res.Err = err
			stats.Failed++
			log.Error(ctx, "check failed", logger.String("check", check.Name), logger.Error(err))
		default:
			stats.Passed++
			if cfg.Verbose {
				log.Info(ctx, "check passed", logger.String("check", check.Name), logger.Duration("took", res.Duration))
			}
		}
		results = append(results, res)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "smoke run finished",
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.Int("skipped", stats.Skipped),
		logger.Duration("duration", stats.Duration),
	)
	if stats.Failed > 0 {
		return results, stats, ErrFailed
	}
	return results, stats, nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`moviefront smoke checks
=======================

Runs the search properties against a live instance: matched and unmatched
queries, result order, blank input, sessions, autocomplete and overlapping
searches. Mock-only properties are skipped while a real engine answers.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -timeout duration
        HTTP request timeout (default 10s)
  -concurrency int
        Overlapping searches fired on one session (default 4)
  -verbose
        Log every passing check
  -help
        Show this help message
`)
}
