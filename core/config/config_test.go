package config_test

import (
	"testing"

	"asset-loader/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "", cfg.Loader.BaseURL)
		assert.Equal(t, int64(10), cfg.Loader.Concurrency)
		assert.True(t, cfg.Loader.Parallel)
		assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
		assert.Equal(t, "resources", cfg.Storage.Bucket)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 3306, cfg.Database.Port)
	})

	t.Run("EnvOverride", func(t *testing.T) {
		t.Setenv("LOADER_BASE_URL", "https://cdn.example.com")
		t.Setenv("LOADER_CONCURRENCY", "3")
		t.Setenv("SERVER_PORT", "9090")

		cfg, err := config.LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "https://cdn.example.com", cfg.Loader.BaseURL)
		assert.Equal(t, int64(3), cfg.Loader.Concurrency)
		assert.Equal(t, "9090", cfg.Server.Port)
	})
}
