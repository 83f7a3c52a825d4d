package chartstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/mingyue/astro-insights/internal/domain/natal"
)

// ValkeyStore caches computed charts in a Valkey-compatible database. Chart
// geometry never changes for a given birth input, so entries are written
// without expiry unless the operator configures a TTL.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "chart"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get implements natal.Store.
func (s *ValkeyStore) Get(ctx context.Context, key string) (natal.Response, bool, error) {
	if key == "" {
		return natal.Response{}, false, nil
	}
	cmd := s.client.B().Get().Key(s.chartKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return natal.Response{}, false, nil
		}
		return natal.Response{}, false, err
	}
	var chart natal.Response
	if err := json.Unmarshal([]byte(payload), &chart); err != nil {
		return natal.Response{}, false, err
	}
	return chart, true, nil
}

// Save implements natal.Store. A non-positive TTL stores the chart without
// expiry.
func (s *ValkeyStore) Save(ctx context.Context, key string, chart natal.Response, ttl time.Duration) error {
	payload, err := json.Marshal(chart)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.chartKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) chartKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

var _ natal.Store = (*ValkeyStore)(nil)
