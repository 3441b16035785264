package get

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"storefront_api/internal/storefront/pkg/clients"
	"storefront_api/pkg/logger"
)

// upstream is a fake shop API that counts the requests per route.
type upstream struct {
	mu   sync.Mutex
	hits map[string]int
	mux  *http.ServeMux
	srv  *httptest.Server
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{hits: map[string]int{}, mux: http.NewServeMux()}
	u.srv = httptest.NewServer(u.mux)
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) handle(pattern string, h http.HandlerFunc) {
	u.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.hits[pattern]++
		u.mu.Unlock()
		h(w, r)
	})
}

func (u *upstream) json(pattern, body string) {
	u.handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

func (u *upstream) status(pattern string, code int) {
	u.handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	})
}

func (u *upstream) count(pattern string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits[pattern]
}

func (u *upstream) base() *clients.BaseClient {
	return clients.NewBaseClient(u.srv.URL, nil, "[test]", clients.WithLogger(logger.NewDiscardLogger()))
}

func (u *upstream) productEngine() *ProductEngine {
	return NewProductEngine(clients.NewProductClient(u.base()), nil, nil, 0, nil)
}
