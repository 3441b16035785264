package middleware

import (
	"context"
	"errors"
	"net/url"
	"time"

	"golang.org/x/time/rate"
	"storefront_api/metrics"
)

// StatusCoder is implemented by errors that carry an upstream HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// UpstreamMetrics records every upstream call under its operation name.
func UpstreamMetrics() Middleware {
	return func(next RequestFunc) RequestFunc {
		return func(ctx context.Context, operation, endpoint string, query url.Values, response interface{}) error {
			start := time.Now()
			err := next(ctx, operation, endpoint, query, response)

			status := 200
			if err != nil {
				status = 0
				var sc StatusCoder
				if errors.As(err, &sc) {
					status = sc.StatusCode()
				}
			}
			metrics.RecordUpstream(operation, status, time.Since(start))
			return err
		}
	}
}

// RateLimit waits on limiter before each call. A nil limiter disables it.
func RateLimit(limiter *rate.Limiter) Middleware {
	return func(next RequestFunc) RequestFunc {
		if limiter == nil {
			return next
		}
		return func(ctx context.Context, operation, endpoint string, query url.Values, response interface{}) error {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			return next(ctx, operation, endpoint, query, response)
		}
	}
}
