// Package repository keeps the per-browser search sessions in memory.
package repository

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/moviefront/internal/domain/ui"
	"github.com/okian/moviefront/pkg/logger"
	"github.com/okian/moviefront/pkg/metrics"
)

// Store provides access to browser sessions.
type Store interface {
	// GetOrCreate returns the session for id, creating a fresh one with a
	// newly minted id when id is unknown. created
	// reports whether a new session was made.
	GetOrCreate(ctx context.Context, id string) (sess *ui.Session, created bool, err error)

	// Get returns the session for id or ErrNotFound.
	Get(ctx context.Context, id string) (*ui.Session, error)

	// Delete drops a session. Unknown ids are ignored.
	Delete(ctx context.Context, id string)

	// Count returns the number of sessions held.
	Count(ctx context.Context) int
}

// SessionStore is a bounded, in-memory Store. When full, the oldest created
// session is evicted.
type SessionStore struct {
	mu      sync.Mutex
	byID    map[string]*list.Element
	order   *list.List // front is the oldest session
	closed  bool
	stopped chan struct{}
	wg      sync.WaitGroup

	capacity              int
	metricsUpdateInterval time.Duration
	now                   func() time.Time
	newID                 func() string
	logger                logger.Logger
}

var _ Store = (*SessionStore)(nil)

// NewSessionStore creates a store and starts its metrics updater, which
// stops when ctx is done or Close is called.
func NewSessionStore(ctx context.Context, opts ...Option) *SessionStore {
	s := &SessionStore{
		byID:                  make(map[string]*list.Element),
		order:                 list.New(),
		stopped:               make(chan struct{}),
		capacity:              defaultCapacity,
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		now:                   time.Now,
		newID:                 uuid.NewString,
		logger:                logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startMetricsUpdater(ctx)
	return s
}

// GetOrCreate implements Store.
func (s *SessionStore) GetOrCreate(ctx context.Context, id string) (*ui.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, ErrClosed
	}

	if el, ok := s.byID[id]; ok {
		return el.Value.(*ui.Session), false, nil
	}

	for s.order.Len() >= s.capacity {
		s.evictOldest(ctx)
	}

	sess := ui.NewSession(s.mintID(), s.now())
	s.byID[sess.ID()] = s.order.PushBack(sess)
	metrics.UpdateActiveSessions(len(s.byID))
	return sess, true, nil
}

// Get implements Store.
func (s *SessionStore) Get(_ context.Context, id string) (*ui.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	el, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return el.Value.(*ui.Session), nil
}

// Delete implements Store.
func (s *SessionStore) Delete(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.byID[id]; ok {
		s.order.Remove(el)
		delete(s.byID, id)
		metrics.UpdateActiveSessions(len(s.byID))
	}
}

// Count implements Store.
func (s *SessionStore) Count(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Close stops the metrics updater and rejects further use.
func (s *SessionStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.stopped)
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}

// evictOldest must be called with s.mu held.
func (s *SessionStore) evictOldest(ctx context.Context) {
	front := s.order.Front()
	if front == nil {
		return
	}
	sess := front.Value.(*ui.Session)
	s.order.Remove(front)
	delete(s.byID, sess.ID())
	metrics.RecordSessionEviction()
	s.logger.Debug(ctx, "session evicted", logger.String("session", sess.ID()))
}

// mintID returns an id not already in use. Must be called with s.mu held.
func (s *SessionStore) mintID() string {
	for {
		id := s.newID()
		if _, taken := s.byID[id]; !taken {
			return id
		}
	}
}

func (s *SessionStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopped:
				return
			case <-ticker.C:
				metrics.UpdateActiveSessions(s.Count(ctx))
			}
		}
	}()
}

