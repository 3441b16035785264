package cache

import (
	"context"
	"time"
)

// CachedFetch returns the cached value for key or calls fetch and caches its result.
// Concurrent callers with the same cold key each call fetch; there is no request
// coalescing. Fetch errors are returned as is and nothing is cached.
func CachedFetch[T any](ctx context.Context, m *Manager, key string, fetch func(context.Context) (T, error), ttl time.Duration) (T, error) {
	if value, ok := Get[T](ctx, m, key); ok {
		return value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := m.Set(ctx, key, value, ttl); err != nil {
		m.log.Warn("not caching %s: %s", key, err)
	}
	return value, nil
}
