package smoke

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

// HTTPClient calls the service under test. It keeps cookies so session
// checks see one browser session.
type HTTPClient struct {
	base   string
	client *http.Client
}

// response is a fully read HTTP answer.
type response struct {
	Status int
	Header http.Header
	Body   []byte
}

func (r response) decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %d body: %w", r.Status, err)
	}
	return nil
}

func newHTTPClient(base string, timeout time.Duration) *HTTPClient {
	jar, _ := cookiejar.New(nil) // never fails with nil options
	return &HTTPClient{
		base:   base,
		client: &http.Client{Timeout: timeout, Jar: jar},
	}
}

// fresh returns a client with the same target and an empty cookie jar.
func (c *HTTPClient) fresh() *HTTPClient {
	return newHTTPClient(c.base, c.client.Timeout)
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, http.NoBody)
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return response{}, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(data))
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, fmt.Errorf("read %s body: %w", req.URL.Path, err)
	}
	return response{Status: resp.StatusCode, Header: resp.Header, Body: body}, nil
}
