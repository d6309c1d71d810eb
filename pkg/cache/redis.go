package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ramsey-B/fern/pkg/redis"
)

// Redis is a Store backed by a shared Redis instance, for deployments where
// multiple replicas should share resolved values.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed cache store
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (any, bool, error) {
	raw, found, err := r.client.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false, fmt.Errorf("cache entry for %s is not valid JSON: %w", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache value is not JSON-serializable: %w", err)
	}

	if err := r.client.Set(ctx, key, raw, ttl); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}
