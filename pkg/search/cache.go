package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/platinummonkey/quill/pkg/storage"
)

// Cache maps a query key to a precomputed set of post ids. The TTL is a
// property of the cache instance; recomputation on miss lives in the
// caller. Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached id set for key. ok is false on miss or expiry.
	Get(ctx context.Context, key string) (ids []int64, ok bool, err error)
	// Put stores the id set for key with the cache's TTL
	Put(ctx context.Context, key string, ids []int64) error
	// Backend names the implementation for metrics labels
	Backend() string
}

// RedisCache is a Redis-backed Cache storing JSON-encoded id slices
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis using the storage config and verifies
// connectivity.
func NewRedisCache(config storage.Config) (*RedisCache, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if config.RedisPassword != "" {
		opts.Password = config.RedisPassword
	}
	if config.RedisDB >= 0 {
		opts.DB = config.RedisDB
	}
	if config.RedisMaxRetries > 0 {
		opts.MaxRetries = config.RedisMaxRetries
	}
	if config.RedisPoolSize > 0 {
		opts.PoolSize = config.RedisPoolSize
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client, ttl: config.SearchCacheTTL}, nil
}

// Get returns the cached id set for key
func (c *RedisCache) Get(ctx context.Context, key string) ([]int64, bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var ids []int64
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		// Corrupt entry: drop it and treat as a miss
		c.client.Del(ctx, key)
		return nil, false, nil
	}
	return ids, true, nil
}

// Put stores the id set for key with the configured TTL
func (c *RedisCache) Put(ctx context.Context, key string, ids []int64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal ids: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Backend implements Cache
func (c *RedisCache) Backend() string { return "redis" }

// Client exposes the underlying connection for health checks
func (c *RedisCache) Client() *redis.Client { return c.client }

// Close closes the Redis connection
func (c *RedisCache) Close() error { return c.client.Close() }

// LocalCache is an in-process Cache backed by an expirable LRU, for
// single-node deployments without Redis.
type LocalCache struct {
	lru *lru.LRU[string, []int64]
}

// NewLocalCache creates a local cache holding at most size entries, each
// expiring after ttl.
func NewLocalCache(size int, ttl time.Duration) *LocalCache {
	if size <= 0 {
		size = 1024
	}
	return &LocalCache{
		lru: lru.NewLRU[string, []int64](size, nil, ttl),
	}
}

// Get returns the cached id set for key
func (c *LocalCache) Get(_ context.Context, key string) ([]int64, bool, error) {
	ids, ok := c.lru.Get(key)
	return ids, ok, nil
}

// Put stores the id set for key
func (c *LocalCache) Put(_ context.Context, key string, ids []int64) error {
	c.lru.Add(key, ids)
	return nil
}

// Backend implements Cache
func (c *LocalCache) Backend() string { return "local" }
