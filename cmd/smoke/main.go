package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/moviefront/internal/smoke"
	"github.com/okian/moviefront/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout     = 10 * time.Second
	defaultConcurrency = 4
	defaultRunTimeout  = 2 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		concurrency = flag.Int("concurrency", defaultConcurrency, "Overlapping searches fired on one session")
		verbose     = flag.Bool("verbose", false, "Log every passing check")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	cfg := &smoke.Config{
		BaseURL:     *baseURL,
		Timeout:     *timeout,
		Concurrency: *concurrency,
		Verbose:     *verbose,
	}
	if _, _, err := smoke.Run(ctx, cfg, logger.Named("smoke")); err != nil {
		_, _ = os.Stderr.WriteString("smoke failed: " + err.Error() + "\n")
		cancel()
		stop()
		os.Exit(1)
	}
}
