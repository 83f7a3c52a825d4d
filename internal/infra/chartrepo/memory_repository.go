package chartrepo

import (
	"context"
	"sync"

	"github.com/mingyue/astro-insights/internal/domain/natal"
)

// MemoryRepository is an in-memory natal.Repository used for tests/dev and
// as the fallback when no Postgres DSN is configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]natal.ChartRecord
}

// NewMemoryRepository constructs a repo backed by process memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]natal.ChartRecord)}
}

// Insert implements natal.Repository. The first write for an ID wins,
// mirroring the ON CONFLICT DO NOTHING behavior of the Postgres variant.
func (r *MemoryRepository) Insert(_ context.Context, record natal.ChartRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[record.ID]; exists {
		return nil
	}
	r.records[record.ID] = record
	return nil
}

// GetByID implements natal.Repository.
func (r *MemoryRepository) GetByID(_ context.Context, id string) (natal.ChartRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	return record, ok, nil
}

var _ natal.Repository = (*MemoryRepository)(nil)
