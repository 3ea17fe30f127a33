package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/skilltree-api/internal/config"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := config.Load(config.New(""))
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.Port)
	assert.Equal(t, "skillTreeCharacter", cfg.Slot)
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "skilltree.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Empty(t, cfg.CatalogDir)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "skilltree.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
port: 6000
slot: hero
storage:
  backend: redis
  redis_addr: cache:6379
`), 0o600))

	t.Setenv("SKILLTREE_PORT", "7000")
	t.Setenv("SKILLTREE_TELEMETRY_ENABLED", "true")

	cfg, err := config.Load(config.New(file))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port, "env wins over the file")
	assert.Equal(t, "hero", cfg.Slot)
	assert.Equal(t, config.BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "cache:6379", cfg.Storage.RedisAddr)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(config.New(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			Port:     50051,
			Slot:     "skillTreeCharacter",
			LogLevel: "info",
			Storage:  config.StorageConfig{Backend: config.BackendSQLite, SQLitePath: "x.db"},
		}
	}

	testCases := []struct {
		name   string
		mutate func(*config.Config)
		valid  bool
	}{
		{name: "valid", mutate: func(*config.Config) {}, valid: true},
		{name: "port out of range", mutate: func(c *config.Config) { c.Port = 0 }},
		{name: "empty slot", mutate: func(c *config.Config) { c.Slot = " " }},
		{name: "unknown backend", mutate: func(c *config.Config) { c.Storage.Backend = "s3" }},
		{name: "redis without addr", mutate: func(c *config.Config) {
			c.Storage = config.StorageConfig{Backend: config.BackendRedis}
		}},
		{name: "bad log level", mutate: func(c *config.Config) { c.LogLevel = "loud" }},
		{name: "telemetry without endpoint", mutate: func(c *config.Config) { c.Telemetry.Enabled = true }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}
