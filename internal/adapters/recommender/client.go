// Package recommender talks to the external recommendation engine and falls
// back to an offline mock when the engine cannot answer.
package recommender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/okian/moviefront/internal/domain/movie"
	"github.com/okian/moviefront/pkg/logger"
	"github.com/okian/moviefront/pkg/metrics"
)

// RecommendPath is the engine endpoint, relative to the base URL.
const RecommendPath = "/api/recommend"

// maxResponseBytes caps how much of an engine response is decoded.
const maxResponseBytes = 1 << 20

// Recommender resolves a query into a response.
type Recommender interface {
	Recommend(ctx context.Context, q movie.SearchQuery) (movie.Response, error)
}

// HTTPClient calls POST {base}/api/recommend behind a circuit breaker.
type HTTPClient struct {
	endpoint         string
	httpClient       *http.Client
	nRecommendations int
	breakerName      string
	maxFailures      int
	openTimeout      time.Duration
	breaker          *gobreaker.CircuitBreaker[movie.Response]
	logger           logger.Logger
}

// NewHTTPClient builds a client for the engine rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		endpoint:         strings.TrimRight(baseURL, "/") + RecommendPath,
		httpClient:       &http.Client{Timeout: defaultUpstreamTimeout},
		nRecommendations: movie.DefaultRecommendations,
		breakerName:      defaultBreakerName,
		maxFailures:      defaultBreakerMaxFailures,
		openTimeout:      defaultBreakerOpenTimeout,
		logger:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = newBreaker(c.breakerName, c.maxFailures, c.openTimeout, c.logger)
	return c
}

// Endpoint returns the full engine URL.
func (c *HTTPClient) Endpoint() string { return c.endpoint }

// BreakerState returns closed, half-open or open.
func (c *HTTPClient) BreakerState() string { return stateToString(c.breaker.State()) }

// Recommend performs one engine round trip. Every failure is an *UpstreamError.
func (c *HTTPClient) Recommend(ctx context.Context, q movie.SearchQuery) (movie.Response, error) {
	start := time.Now()
	resp, err := c.breaker.Execute(func() (movie.Response, error) {
		resp, err := c.do(ctx, q)
		if err != nil && ctx.Err() != nil {
			return resp, upstreamErr(ReasonCanceled, err)
		}
		return resp, err
	})
	elapsed := float64(time.Since(start).Milliseconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = upstreamErr(ReasonBreakerOpen, err)
		}
		metrics.RecordUpstreamLatency(ReasonOf(err), elapsed)
		c.logger.Debug(ctx, "engine call failed",
			logger.String("reason", ReasonOf(err)),
			logger.Float64("latencyMs", elapsed),
		)
		return movie.Response{}, err
	}
	metrics.RecordUpstreamLatency("ok", elapsed)
	c.logger.Debug(ctx, "engine answered", logger.Float64("latencyMs", elapsed))
	return resp, nil
}

func (c *HTTPClient) do(ctx context.Context, q movie.SearchQuery) (movie.Response, error) {
	body, err := json.Marshal(movie.WireRequest{
		MovieName:        q.String(),
		NRecommendations: c.nRecommendations,
	})
	if err != nil {
		return movie.Response{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return movie.Response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return movie.Response{}, upstreamErr(ReasonNetwork, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, maxResponseBytes))
		return movie.Response{}, &UpstreamError{Reason: ReasonStatus, StatusCode: httpResp.StatusCode}
	}

	var wire movie.WireResponse
	if err := json.NewDecoder(io.LimitReader(httpResp.Body, maxResponseBytes)).Decode(&wire); err != nil {
		return movie.Response{}, upstreamErr(ReasonDecode, err)
	}
	out, err := wire.Response()
	if err != nil {
		return movie.Response{}, upstreamErr(ReasonDecode, err)
	}
	return out, nil
}
