package search

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/quill/pkg/storage"
)

func setupRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := storage.DefaultConfig()
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.SearchCacheTTL = ttl

	cache, err := NewRedisCache(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	return cache, mr
}

func TestRedisCache_PutGet(t *testing.T) {
	cache, _ := setupRedisCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "posts_search/Hello", []int64{3, 1}))

	ids, ok, err := cache.Get(ctx, "posts_search/Hello")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int64{3, 1}, ids)
}

func TestRedisCache_Miss(t *testing.T) {
	cache, _ := setupRedisCache(t, time.Hour)

	_, ok, err := cache.Get(context.Background(), "posts_search/nothing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	cache, mr := setupRedisCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "posts_search/Hello", []int64{1}))

	mr.FastForward(time.Hour + time.Minute)

	_, ok, err := cache.Get(ctx, "posts_search/Hello")
	require.NoError(t, err)
	assert.False(t, ok, "entry should have expired")
}

func TestRedisCache_CorruptEntryIsAMiss(t *testing.T) {
	cache, mr := setupRedisCache(t, time.Hour)

	require.NoError(t, mr.Set("posts_search/Hello", "not json"))

	_, ok, err := cache.Get(context.Background(), "posts_search/Hello")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_EmptyResultIsCached(t *testing.T) {
	cache, _ := setupRedisCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "posts_search/none", []int64{}))

	ids, ok, err := cache.Get(ctx, "posts_search/none")
	require.NoError(t, err)
	require.True(t, ok, "an empty result set is still a cache hit")
	assert.Empty(t, ids)
}

func TestLocalCache_PutGet(t *testing.T) {
	cache := NewLocalCache(16, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "posts_search/Hello", []int64{2}))

	ids, ok, err := cache.Get(ctx, "posts_search/Hello")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int64{2}, ids)

	_, ok, err = cache.Get(ctx, "posts_search/other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalCache_TTLExpiry(t *testing.T) {
	cache := NewLocalCache(16, 30*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "posts_search/Hello", []int64{1}))
	time.Sleep(80 * time.Millisecond)

	_, ok, err := cache.Get(ctx, "posts_search/Hello")
	require.NoError(t, err)
	assert.False(t, ok, "entry should have expired")
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	cfg := storage.DefaultConfig()
	cfg.RedisURL = "invalid://url"

	_, err := NewRedisCache(cfg)
	assert.Error(t, err)
}
