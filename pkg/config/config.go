package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platinummonkey/quill/pkg/observability"
	"github.com/platinummonkey/quill/pkg/storage"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Storage       storage.Config
	Report        ReportConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// ReportConfig holds the report dispatcher configuration
type ReportConfig struct {
	Workers   int
	QueueSize int
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Storage:       loadStorageConfig(),
		Report:        loadReportConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("QUILL_HOST", "0.0.0.0"),
		Port:            getEnv("QUILL_PORT", "8080"),
		ReadTimeout:     getEnvDuration("QUILL_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("QUILL_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("QUILL_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("QUILL_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func loadStorageConfig() storage.Config {
	cfg := storage.DefaultConfig()

	if driver := getEnv("QUILL_STORAGE_DRIVER", ""); driver != "" {
		cfg.Driver = driver
	}
	if pgURL := getEnv("QUILL_POSTGRES_URL", ""); pgURL != "" {
		cfg.PostgresURL = pgURL
	}
	if maxConns := getEnvInt("QUILL_POSTGRES_MAX_CONNS", 0); maxConns > 0 {
		cfg.PostgresMaxConns = maxConns
	}
	if minConns := getEnvInt("QUILL_POSTGRES_MIN_CONNS", 0); minConns > 0 {
		cfg.PostgresMinConns = minConns
	}
	if timeout := getEnvDuration("QUILL_POSTGRES_TIMEOUT", 0); timeout > 0 {
		cfg.PostgresTimeout = timeout
	}
	if path := getEnv("QUILL_SQLITE_PATH", ""); path != "" {
		cfg.SQLitePath = path
	}

	if redisURL := getEnv("QUILL_REDIS_URL", ""); redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if redisPassword := getEnv("QUILL_REDIS_PASSWORD", ""); redisPassword != "" {
		cfg.RedisPassword = redisPassword
	}
	if redisDB := getEnvInt("QUILL_REDIS_DB", -1); redisDB >= 0 {
		cfg.RedisDB = redisDB
	}
	if redisMaxRetries := getEnvInt("QUILL_REDIS_MAX_RETRIES", 0); redisMaxRetries > 0 {
		cfg.RedisMaxRetries = redisMaxRetries
	}
	if redisPoolSize := getEnvInt("QUILL_REDIS_POOL_SIZE", 0); redisPoolSize > 0 {
		cfg.RedisPoolSize = redisPoolSize
	}

	if cacheEnabled := getEnv("QUILL_CACHE_ENABLED", ""); cacheEnabled != "" {
		cfg.CacheEnabled = strings.ToLower(cacheEnabled) == "true" || cacheEnabled == "1"
	}
	if ttl := getEnvDuration("QUILL_SEARCH_CACHE_TTL", 0); ttl > 0 {
		cfg.SearchCacheTTL = ttl
	}
	if size := getEnvInt("QUILL_LOCAL_CACHE_SIZE", 0); size > 0 {
		cfg.LocalCacheSize = size
	}

	return cfg
}

func loadReportConfig() ReportConfig {
	return ReportConfig{
		Workers:   getEnvInt("QUILL_REPORT_WORKERS", 2),
		QueueSize: getEnvInt("QUILL_REPORT_QUEUE_SIZE", 64),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       observability.ParseLogLevel(getEnv("QUILL_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("QUILL_METRICS_ENABLED", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	switch c.Storage.Driver {
	case "postgres":
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("postgres URL is required for postgres storage")
		}
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for sqlite storage")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (must be postgres or sqlite)", c.Storage.Driver)
	}

	if c.Storage.SearchCacheTTL <= 0 {
		return fmt.Errorf("search cache TTL must be positive")
	}
	if c.Report.Workers <= 0 {
		return fmt.Errorf("report workers must be positive")
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
