package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, SourceCSV, cfg.Catalog.Source)
	assert.Equal(t, ';', cfg.Catalog.Delimiter)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 25.0, cfg.Planner.MaxCredits)
	assert.False(t, cfg.NeedsRedis())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://planner@localhost/planner")
	t.Setenv("CATALOG_DELIMITER", ",")
	t.Setenv("CATALOG_CACHE", "true")
	t.Setenv("CATALOG_CACHE_TTL", "90s")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("PLANNER_MIN_CREDITS", "12")
	t.Setenv("REDIS_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, ',', cfg.Catalog.Delimiter)
	assert.Equal(t, 90*time.Second, cfg.Catalog.CacheTTL)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, 12.0, cfg.Planner.MinCredits)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.True(t, cfg.NeedsRedis())

	opts := cfg.Redis.Options()
	assert.Equal(t, "localhost:6379", opts.Addr)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")
	t.Setenv("CATALOG_SOURCE", "ftp")
	t.Setenv("STORE_BACKEND", "etcd")
	t.Setenv("PLANNER_MIN_CREDITS", "30")
	t.Setenv("PLANNER_MAX_CREDITS", "20")

	_, err := Load()
	require.Error(t, err)
	for _, want := range []string{"SERVER_PORT", "CATALOG_SOURCE", "STORE_BACKEND", "PLANNER_MIN_CREDITS must not exceed"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidatePostgresNeedsURL(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
