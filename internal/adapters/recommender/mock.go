package recommender

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/moviefront/internal/domain/catalog"
	"github.com/okian/moviefront/internal/domain/movie"
	"github.com/okian/moviefront/pkg/metrics"
)

// Placeholder cluster metadata ranges. The offline path has no real
// clustering, so these values carry no meaning beyond their range.
const (
	mockClusterCount    = 12  // ids in [0, 11]
	mockClusterSizeMin  = 100 // sizes in [100, 599]
	mockClusterSizeSpan = 500
)

// Mock answers from the fixed catalog after a simulated delay.
type Mock struct {
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMock creates an offline recommender.
func NewMock(opts ...MockOption) *Mock {
	m := &Mock{
		delay: defaultMockDelay,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // placeholder metadata only
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Recommend waits the simulated delay, then answers from the catalog.
func (m *Mock) Recommend(ctx context.Context, q movie.SearchQuery) (movie.Response, error) {
	start := time.Now()
	defer func() { metrics.RecordMockLatency(float64(time.Since(start).Milliseconds())) }()

	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return movie.Response{}, fmt.Errorf("mock recommend: %w", ctx.Err())
		case <-timer.C:
		}
	}

	if !catalog.Contains(q.String()) {
		return movie.NotFound(), nil
	}

	recs := catalog.Recommendations(catalog.Classify(q.String()))
	cluster, size := m.placeholderCluster()
	return movie.Success(q.String(), cluster, size, recs), nil
}

func (m *Mock) placeholderCluster() (cluster, size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Intn(mockClusterCount), m.rng.Intn(mockClusterSizeSpan) + mockClusterSizeMin
}
