package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/config"
)

func testConfig(t *testing.T, upstreamURL string) *config.AppConfig {
	t.Helper()
	cfg := config.Default()
	cfg.Upstream.BaseURL = upstreamURL
	cfg.Upstream.RateLimit = 0
	return cfg
}

func TestSetup_MemoryBackend(t *testing.T) {
	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[{"id":1,"title":"Cà phê"}]}`))
	}))
	defer shop.Close()

	server := NewStorefrontServer(testConfig(t, shop.URL), nil)
	handler, err := server.Setup(context.Background())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Cà phê")
	}
	assert.Equal(t, uint64(1), server.cache.Stats().MemoryHits)

	require.NoError(t, server.Shutdown(context.Background()))
}

func TestSetup_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":2,"title":"Trà sen"}]`))
	}))
	defer shop.Close()

	cfg := testConfig(t, shop.URL)
	cfg.Cache.Backend = "redis"
	cfg.Redis.Addr = mr.Addr()

	server := NewStorefrontServer(cfg, nil)
	handler, err := server.Setup(context.Background())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products?page=1&limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	keys := mr.Keys()
	assert.Contains(t, keys, cfg.Cache.Prefix+"products:page:1:5")

	require.NoError(t, server.Shutdown(context.Background()))
}

func TestSetup_RedisUnavailable(t *testing.T) {
	cfg := testConfig(t, "http://localhost:1")
	cfg.Cache.Backend = "redis"
	cfg.Redis.Addr = "127.0.0.1:1"

	_, err := NewStorefrontServer(cfg, nil).Setup(context.Background())
	assert.Error(t, err)
}
