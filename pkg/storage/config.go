package storage

import "time"

// Config for the storage backend and the search cache
type Config struct {
	Driver string // "postgres" or "sqlite"

	// PostgreSQL config
	PostgresURL      string
	PostgresMaxConns int
	PostgresMinConns int
	PostgresTimeout  time.Duration

	// SQLite config
	SQLitePath string

	// Redis config
	RedisURL        string
	RedisPassword   string
	RedisDB         int
	RedisMaxRetries int
	RedisPoolSize   int

	// Search cache config
	CacheEnabled   bool
	SearchCacheTTL time.Duration
	LocalCacheSize int // entries held by the in-process fallback cache
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Driver:           "sqlite",
		SQLitePath:       "quill.db",
		PostgresMaxConns: 20,
		PostgresMinConns: 2,
		PostgresTimeout:  10 * time.Second,
		RedisDB:          0,
		RedisMaxRetries:  3,
		RedisPoolSize:    10,
		CacheEnabled:     true,
		SearchCacheTTL:   1 * time.Hour,
		LocalCacheSize:   1024,
	}
}
