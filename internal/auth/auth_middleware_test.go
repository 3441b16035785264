package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func guarded() http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFrom(r.Context())
		_, _ = w.Write([]byte(claims.Subject))
	})
	return AuthMiddleware(secret)(RoleMiddleware(RoleAdmin)(ok))
}

func call(t *testing.T, h http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/v1/cache", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuth_AdminAllowed(t *testing.T) {
	token, err := IssueToken(secret, "ops", RoleAdmin, time.Minute)
	require.NoError(t, err)

	rec := call(t, guarded(), token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ops", rec.Body.String())
}

func TestAuth_Rejections(t *testing.T) {
	viewer, err := IssueToken(secret, "v", "viewer", time.Minute)
	require.NoError(t, err)
	expired, err := IssueToken(secret, "ops", RoleAdmin, -time.Minute)
	require.NoError(t, err)
	foreign, err := IssueToken("other-secret", "ops", RoleAdmin, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, call(t, guarded(), "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(t, guarded(), expired).Code)
	assert.Equal(t, http.StatusUnauthorized, call(t, guarded(), foreign).Code)
	assert.Equal(t, http.StatusForbidden, call(t, guarded(), viewer).Code)
}

func TestAuth_EmptySecretClosesRoute(t *testing.T) {
	token, err := IssueToken(secret, "ops", RoleAdmin, time.Minute)
	require.NoError(t, err)

	h := AuthMiddleware("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	assert.Equal(t, http.StatusUnauthorized, call(t, h, token).Code)

	_, err = IssueToken("", "ops", RoleAdmin, time.Minute)
	assert.Error(t, err)
}
