package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/quill/pkg/observability"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, time.Hour, cfg.Storage.SearchCacheTTL)

	assert.Equal(t, 2, cfg.Report.Workers)
	assert.Equal(t, 64, cfg.Report.QueueSize)

	assert.Equal(t, observability.InfoLevel, cfg.Observability.LogLevel)
	assert.True(t, cfg.Observability.MetricsEnabled)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("QUILL_PORT", "9090")
	t.Setenv("QUILL_STORAGE_DRIVER", "postgres")
	t.Setenv("QUILL_POSTGRES_URL", "postgres://localhost/quill")
	t.Setenv("QUILL_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("QUILL_CACHE_ENABLED", "true")
	t.Setenv("QUILL_SEARCH_CACHE_TTL", "30m")
	t.Setenv("QUILL_REPORT_WORKERS", "4")
	t.Setenv("QUILL_LOG_LEVEL", "debug")
	t.Setenv("QUILL_METRICS_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/quill", cfg.Storage.PostgresURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.RedisURL)
	assert.True(t, cfg.Storage.CacheEnabled)
	assert.Equal(t, 30*time.Minute, cfg.Storage.SearchCacheTTL)
	assert.Equal(t, 4, cfg.Report.Workers)
	assert.Equal(t, observability.DebugLevel, cfg.Observability.LogLevel)
	assert.False(t, cfg.Observability.MetricsEnabled)
}

func TestLoadConfig_PostgresRequiresURL(t *testing.T) {
	t.Setenv("QUILL_STORAGE_DRIVER", "postgres")
	t.Setenv("QUILL_POSTGRES_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres URL is required")
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv("QUILL_STORAGE_DRIVER", "mongodb")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage driver")
}

func TestLoadConfig_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("QUILL_REPORT_WORKERS", "many")
	t.Setenv("QUILL_READ_TIMEOUT", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Report.Workers)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Server.Port = ""
	assert.ErrorContains(t, cfg.Validate(), "port is required")

	cfg = base()
	cfg.Storage.SearchCacheTTL = 0
	assert.ErrorContains(t, cfg.Validate(), "cache TTL")

	cfg = base()
	cfg.Report.Workers = 0
	assert.ErrorContains(t, cfg.Validate(), "workers")
}
