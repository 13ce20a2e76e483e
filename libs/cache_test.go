package libs

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisCache(client)
}

func TestRedisCache_GetSet(t *testing.T) {
	ctx := context.Background()
	mr, cache := newTestRedisCache(t)

	_, err := cache.Get(ctx, "catalog:categories")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "catalog:categories", []byte(`[1,2]`), time.Minute))
	got, err := cache.Get(ctx, "catalog:categories")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)

	mr.FastForward(2 * time.Minute)
	_, err = cache.Get(ctx, "catalog:categories")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	mr, cache := newTestRedisCache(t)

	for _, key := range []string{"catalog:categories", "catalog:product:1", "catalog:product:2", "session:9"} {
		require.NoError(t, cache.Set(ctx, key, []byte("x"), 0))
	}

	require.NoError(t, cache.DeletePrefix(ctx, "catalog:"))
	assert.False(t, mr.Exists("catalog:categories"))
	assert.False(t, mr.Exists("catalog:product:2"))
	assert.True(t, mr.Exists("session:9"))

	require.NoError(t, cache.DeletePrefix(ctx, "nothing:"))
}

func TestRedisCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	mr, cache := newTestRedisCache(t)
	mr.Close()

	_, err := cache.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Error(t, cache.Set(ctx, "k", []byte("v"), time.Second))
	assert.Error(t, cache.DeletePrefix(ctx, "k"))
}

func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	var cache Cache = NoopCache{}

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, cache.DeletePrefix(ctx, "k"))
}
