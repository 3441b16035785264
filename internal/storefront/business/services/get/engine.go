package get

import (
	"context"
	"time"

	"storefront_api/metrics"
	"storefront_api/pkg/cache"
	"storefront_api/pkg/logger"
)

// degrade logs and counts upstream data that was replaced by an empty or partial value.
func degrade(log logger.Logger, kind, format string, v ...interface{}) {
	metrics.RecordDegradation(kind)
	log.Warn(kind+": "+format, v...)
}

// cached memoizes fetch through the cache manager; a nil manager disables caching.
func cached[T any](ctx context.Context, m *cache.Manager, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	if m == nil {
		return fetch(ctx)
	}
	return cache.CachedFetch(ctx, m, key, fetch, ttl)
}
