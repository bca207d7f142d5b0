package smoke

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
)

// ErrSkip marks a check that does not apply, e.g. a mock-only property
// while the real engine is answering.
var ErrSkip = errors.New("skipped")

type movieJSON struct {
	Title  string  `json:"title"`
	Year   int     `json:"year"`
	Genre  string  `json:"genre"`
	Rating float64 `json:"rating"`
}

type recommendJSON struct {
	Status             string      `json:"status"`
	InputMovie         string      `json:"input_movie"`
	Cluster            *int        `json:"cluster"`
	TotalClusterMovies *int        `json:"total_cluster_movies"`
	Recommendations    []movieJSON `json:"recommendations"`
	Message            string      `json:"message"`
}

type searchJSON struct {
	State string `json:"state"`
	View  struct {
		Loading      bool   `json:"loading"`
		ErrorMessage string `json:"error_message"`
		Header       struct {
			SearchedMovie string `json:"searched_movie"`
		} `json:"header"`
		Cards []struct {
			Position int    `json:"position"`
			Title    string `json:"title"`
		} `json:"cards"`
	} `json:"view"`
}

type statsJSON struct {
	Searches int64 `json:"searches"`
}

// Check is one property verified against the running service.
type Check struct {
	Name string
	Run  func(ctx context.Context, c *HTTPClient, cfg *Config) error
}

// Checks returns the checks in run order.
func Checks() []Check {
	return []Check{
		{Name: "health", Run: checkHealth},
		{Name: "matched query returns recommendations", Run: checkMatched},
		{Name: "unmatched query returns not found", Run: checkUnmatched},
		{Name: "hangover recommendations keep their order", Run: checkHangoverOrder},
		{Name: "blank query never reaches a recommender", Run: checkBlank},
		{Name: "session view preserves card order", Run: checkSessionOrder},
		{Name: "autocomplete filters the catalog", Run: checkSuggest},
		{Name: "overlapping searches settle once", Run: checkOverlap},
	}
}

func recommend(ctx context.Context, c *HTTPClient, name string) (response, recommendJSON, error) {
	resp, err := c.Post(ctx, "/api/recommend", map[string]any{"movie_name": name, "n_recommendations": ExpectedCount})
	if err != nil {
		return resp, recommendJSON{}, err
	}
	var body recommendJSON
	return resp, body, resp.decode(&body)
}

func checkHealth(ctx context.Context, c *HTTPClient, _ *Config) error {
	resp, err := c.Get(ctx, "/api/health")
	if err != nil {
		return err
	}
	if resp.Status != http.StatusOK {
		return fmt.Errorf("health returned %d", resp.Status)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := resp.decode(&body); err != nil {
		return err
	}
	if body.Status != "healthy" {
		return fmt.Errorf("health status %q", body.Status)
	}
	return nil
}

func checkMatched(ctx context.Context, c *HTTPClient, _ *Config) error {
	resp, body, err := recommend(ctx, c, "The Matrix")
	if err != nil {
		return err
	}
	if resp.Status != http.StatusOK || body.Status != "success" {
		return fmt.Errorf("got %d %q", resp.Status, body.Status)
	}
	if len(body.Recommendations) != ExpectedCount {
		return fmt.Errorf("got %d recommendations, want %d", len(body.Recommendations), ExpectedCount)
	}
	if resp.Header.Get(sourceHeader) != sourceMock {
		return nil
	}
	if body.Cluster == nil || *body.Cluster < 0 || *body.Cluster > MaxClusterID {
		return fmt.Errorf("cluster %v outside [0,%d]", body.Cluster, MaxClusterID)
	}
	if body.TotalClusterMovies == nil || *body.TotalClusterMovies < MinClusterSize || *body.TotalClusterMovies > MaxClusterSize {
		return fmt.Errorf("cluster size %v outside [%d,%d]", body.TotalClusterMovies, MinClusterSize, MaxClusterSize)
	}
	return nil
}

func checkUnmatched(ctx context.Context, c *HTTPClient, _ *Config) error {
	resp, body, err := recommend(ctx, c, UnmatchedQuery)
	if err != nil {
		return err
	}
	if resp.Status != http.StatusNotFound || body.Status != "error" {
		return fmt.Errorf("got %d %q", resp.Status, body.Status)
	}
	if resp.Header.Get(sourceHeader) == sourceMock && body.Message != NotFoundMessage {
		return fmt.Errorf("message %q", body.Message)
	}
	return nil
}

func checkHangoverOrder(ctx context.Context, c *HTTPClient, _ *Config) error {
	resp, body, err := recommend(ctx, c, "The Hangover")
	if err != nil {
		return err
	}
	if resp.Header.Get(sourceHeader) != sourceMock {
		return ErrSkip
	}
	got := make([]string, len(body.Recommendations))
	for i, m := range body.Recommendations {
		got[i] = m.Title
	}
	if !slices.Equal(got, HangoverOrder) {
		return fmt.Errorf("got %v, want %v", got, HangoverOrder)
	}
	return nil
}

func checkBlank(ctx context.Context, c *HTTPClient, _ *Config) error {
	before, err := searches(ctx, c)
	if err != nil {
		return err
	}
	resp, err := c.Post(ctx, "/api/recommend", map[string]any{"movie_name": "   "})
	if err != nil {
		return err
	}
	if resp.Status != http.StatusBadRequest {
		return fmt.Errorf("blank recommend returned %d", resp.Status)
	}
	resp, err = c.Post(ctx, "/api/search", map[string]any{"query": " \t "})
	if err != nil {
		return err
	}
	if resp.Status != http.StatusBadRequest {
		return fmt.Errorf("blank search returned %d", resp.Status)
	}
	after, err := searches(ctx, c)
	if err != nil {
		return err
	}
	if after != before {
		return fmt.Errorf("search counter moved from %d to %d", before, after)
	}
	return nil
}

func searches(ctx context.Context, c *HTTPClient) (int64, error) {
	resp, err := c.Get(ctx, "/stats")
	if err != nil {
		return 0, err
	}
	var st statsJSON
	return st.Searches, resp.decode(&st)
}

func checkSessionOrder(ctx context.Context, c *HTTPClient, _ *Config) error {
	sc := c.fresh()
	resp, err := sc.Post(ctx, "/api/search", map[string]any{"query": "Inception"})
	if err != nil {
		return err
	}
	var body searchJSON
	if err := resp.decode(&body); err != nil {
		return err
	}
	if body.View.Loading {
		return errors.New("view still loading after settle")
	}
	if body.State != "results" {
		return fmt.Errorf("state %q: %s", body.State, body.View.ErrorMessage)
	}
	for i, card := range body.View.Cards {
		if card.Position != i {
			return fmt.Errorf("card %q at position %d, want %d", card.Title, card.Position, i)
		}
	}

	resp, err = sc.Get(ctx, "/api/session")
	if err != nil {
		return err
	}
	var again searchJSON
	if err := resp.decode(&again); err != nil {
		return err
	}
	if again.View.Header.SearchedMovie != "Inception" {
		return fmt.Errorf("session lost the search, shows %q", again.View.Header.SearchedMovie)
	}
	return nil
}

func checkSuggest(ctx context.Context, c *HTTPClient, _ *Config) error {
	resp, err := c.Get(ctx, "/api/movies/search?q=the&limit=2")
	if err != nil {
		return err
	}
	var got []string
	if err := resp.decode(&got); err != nil {
		return err
	}
	want := []string{"The Matrix", "The Dark Knight"}
	if !slices.Equal(got, want) {
		return fmt.Errorf("got %v, want %v", got, want)
	}

	resp, err = c.Get(ctx, "/api/movies/search?q=th")
	if err != nil {
		return err
	}
	got = nil
	if err := resp.decode(&got); err != nil {
		return err
	}
	if len(got) != 0 {
		return fmt.Errorf("two-character input suggested %v", got)
	}
	return nil
}

func checkOverlap(ctx context.Context, c *HTTPClient, cfg *Config) error {
	sc := c.fresh()
	// Establish the session before racing on it.
	if _, err := sc.Get(ctx, "/api/session"); err != nil {
		return err
	}

	queries := []string{"The Matrix", "The Hangover", "The Conjuring", "Titanic"}
	n := max(cfg.Concurrency, 1)
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			if _, err := sc.Post(ctx, "/api/search", map[string]any{"query": q}); err != nil {
				errs <- err
			}
		}(queries[i%len(queries)])
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		return err
	}

	resp, err := sc.Get(ctx, "/api/session")
	if err != nil {
		return err
	}
	var body searchJSON
	if err := resp.decode(&body); err != nil {
		return err
	}
	if body.View.Loading {
		return errors.New("session left loading after all searches settled")
	}
	if !slices.Contains(queries, body.View.Header.SearchedMovie) {
		return fmt.Errorf("session shows %q", body.View.Header.SearchedMovie)
	}
	return nil
}
