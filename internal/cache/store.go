package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the shared key/value cache used for rate limiting and read-through
// caching of public listings.
type Store interface {
	IncrementWithTTL(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// Purger is implemented by stores that need expired entries removed on a
// schedule. Redis expires keys on its own and does not implement it.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// GetJSON decodes the cached value for key into dest. It reports false on a
// miss or when the cached bytes no longer decode.
func GetJSON(ctx context.Context, store Store, key string, dest any) (bool, error) {
	if store == nil {
		return false, nil
	}
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		_ = store.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, store Store, key string, value any, ttl time.Duration) error {
	if store == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, raw, ttl)
}
