package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, NewRedisStore(client)
}

func TestRedisStore_Basic(t *testing.T) {
	ctx := context.Background()
	_, s := setupTestRedis(t)

	require.NoError(t, s.Ping(ctx))

	_, err := s.Get(ctx, "storefront_cache:none")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "storefront_cache:a", []byte(`{"x":1}`)))
	require.NoError(t, s.Set(ctx, "storefront_cache:b", []byte(`{"x":2}`)))
	require.NoError(t, s.Set(ctx, "other:c", []byte(`{}`)))

	got, err := s.Get(ctx, "storefront_cache:a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1}`, string(got))

	keys, err := s.Keys(ctx, "storefront_cache:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"storefront_cache:a", "storefront_cache:b"}, keys)

	require.NoError(t, s.Delete(ctx, "storefront_cache:a"))
	_, err = s.Get(ctx, "storefront_cache:a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_WithManager(t *testing.T) {
	ctx := context.Background()
	mr, s := setupTestRedis(t)

	m := New(WithStore(s))
	require.NoError(t, m.Set(ctx, "blog:1", []string{"x", "y"}, time.Minute))
	assert.True(t, mr.Exists(DefaultPrefix+"blog:1"))

	fresh := New(WithStore(s))
	got, ok := Get[[]string](ctx, fresh, "blog:1")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, got)

	require.NoError(t, fresh.Clear(ctx))
	assert.False(t, mr.Exists(DefaultPrefix+"blog:1"))
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `a\*b\?c\[d\]`, escapeGlob("a*b?c[d]"))
}
