package chartstore

import (
	"context"
	"sync"
	"time"

	"github.com/mingyue/astro-insights/internal/domain/natal"
)

type cachedChart struct {
	payload   natal.Response
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the chart cache for
// tests/dev and for deployments without Valkey.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[string]cachedChart
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string]cachedChart)}
}

// Get implements natal.Store.
func (s *MemoryStore) Get(_ context.Context, key string) (natal.Response, bool, error) {
	if key == "" {
		return natal.Response{}, false, nil
	}
	s.mu.RLock()
	entry, ok := s.charts[key]
	s.mu.RUnlock()
	if !ok {
		return natal.Response{}, false, nil
	}
	if hasExpired(entry.expiresAt) {
		s.mu.Lock()
		delete(s.charts, key)
		s.mu.Unlock()
		return natal.Response{}, false, nil
	}
	return entry.payload, true, nil
}

// Save implements natal.Store with an optional TTL.
func (s *MemoryStore) Save(_ context.Context, key string, chart natal.Response, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.charts[key] = cachedChart{payload: chart, expiresAt: exp}
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ natal.Store = (*MemoryStore)(nil)
