package middleware

import (
	"context"
	"net/url"
)

// RequestFunc performs one upstream GET and decodes the JSON body into response.
type RequestFunc func(ctx context.Context, operation, endpoint string, query url.Values, response interface{}) error

type Middleware func(next RequestFunc) RequestFunc

// Chain applies middlewares so that the first one is the outermost.
func Chain(final RequestFunc, middlewares ...Middleware) RequestFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		final = middlewares[i](final)
	}
	return final
}
