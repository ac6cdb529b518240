package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.Swagger)
	assert.Equal(t, 10, cfg.Reconcile.BatchSize)
	assert.Equal(t, 60, cfg.Reconcile.IntervalSeconds)
	assert.Equal(t, 4, cfg.Reconcile.AckConcurrency)
	assert.True(t, cfg.Reconcile.Schedule)
	assert.Equal(t, 30, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "inventory-events", cfg.Storage.Bucket)
	assert.False(t, cfg.Lock.Enabled)
	assert.Equal(t, 120, cfg.Lock.TTLSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("UPSTREAM_HOST", "https://pms.example.com")
	t.Setenv("UPSTREAM_APP_ID", "hotel-42")
	t.Setenv("RECONCILE_INTERVAL_SECONDS", "15")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("LOCK_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://pms.example.com", cfg.Upstream.Host)
	assert.Equal(t, "hotel-42", cfg.Upstream.AppID)
	assert.Equal(t, 15, cfg.Reconcile.IntervalSeconds)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Lock.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("UPSTREAM_USERNAME=poller\nSTORAGE_BUCKET=archive\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("UPSTREAM_USERNAME")
		os.Unsetenv("STORAGE_BUCKET")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "poller", cfg.Upstream.Username)
	assert.Equal(t, "archive", cfg.Storage.Bucket)
}

func TestBindValues_NestedKeys(t *testing.T) {
	v := viper.New()
	bindValues(v, &Config{}, "")

	assert.Equal(t, "hotel-inventory:poll-cycle", v.GetString("lock.key"))
	assert.Equal(t, "batches", v.GetString("storage.prefix"))
	assert.Contains(t, v.AllKeys(), "upstream.password")
}
