package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/config"
	"storefront_api/internal/auth"
)

func TestPrintAdminToken(t *testing.T) {
	cfg := config.Default()
	cfg.Auth.JWTSecret = "cli-secret"

	var out bytes.Buffer
	require.NoError(t, printAdminToken(&out, cfg, "ops", time.Minute))
	token := strings.TrimSpace(out.String())
	require.NotEmpty(t, token)

	guarded := auth.AuthMiddleware(cfg.Auth.JWTSecret)(auth.RoleMiddleware(auth.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})))
	req := httptest.NewRequest(http.MethodDelete, "/v1/cache", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPrintAdminToken_NoSecret(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, printAdminToken(&out, config.Default(), "ops", time.Minute))
	assert.Empty(t, out.String())
}
