package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracetm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
debug: true
library: ./machines
store:
  kind: redis
  redis_addr: cache:6379
  ttl: 1h
`), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "./machines", cfg.Library)
	assert.Equal(t, "redis", cfg.Store.Kind)
	assert.Equal(t, "cache:6379", cfg.Store.RedisAddr)
	assert.Equal(t, time.Hour, cfg.Store.TTL)
	assert.Equal(t, ".tracetm/reports", cfg.Store.Path, "unset keys keep defaults")
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"format":"markdown","port":9000}`), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.Format)
	assert.Equal(t, 9000, cfg.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracetm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: text\nport: 8000\n"), 0644))
	t.Setenv("TRACETM_FORMAT", "json")
	t.Setenv("TRACETM_PORT", "9100")
	t.Setenv("TRACETM_DEBUG", "1")
	t.Setenv("TRACETM_STORE", "file")
	t.Setenv("TRACETM_STORE_PATH", "/tmp/reports")
	t.Setenv("TRACETM_REDIS_ADDR", "r:1")
	t.Setenv("TRACETM_STORE_TTL", "30s")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 9100, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "file", cfg.Store.Kind)
	assert.Equal(t, "/tmp/reports", cfg.Store.Path)
	assert.Equal(t, "r:1", cfg.Store.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.Store.TTL)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRACETM_PORT", "eighty")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_EncryptionKeysFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRACETM_STORE_ENCRYPTION_KEY", "aa")
	t.Setenv("TRACETM_STORE_FALLBACK_KEYS", "bb,cc")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "aa", cfg.Store.EncryptionKey)
	assert.Equal(t, []string{"bb", "cc"}, cfg.Store.FallbackKeys)
}
