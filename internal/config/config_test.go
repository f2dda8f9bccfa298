package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("AUTH_ENABLED", "")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.StorageBackend)
	assert.Equal(t, "https://world.openfoodfacts.org", cfg.LookupBaseURL)
	assert.Equal(t, []string{"localhost:9093"}, cfg.KafkaBrokers)
	assert.False(t, cfg.AuthEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("LOOKUP_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "redis", cfg.StorageBackend)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, 10, cfg.LookupTimeoutSeconds)
}

func TestLoad_YAMLSeedsUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "SQLITE_PATH: /data/frigo.db\nEXPIRING_SOON_LIMIT: 5\nPORT: \"9000\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "8181")
	// Registered for cleanup, then cleared so the YAML value applies
	t.Setenv("SQLITE_PATH", "")
	os.Unsetenv("SQLITE_PATH")
	t.Setenv("EXPIRING_SOON_LIMIT", "")
	os.Unsetenv("EXPIRING_SOON_LIMIT")

	cfg := Load()

	assert.Equal(t, "/data/frigo.db", cfg.SQLitePath)
	assert.Equal(t, 5, cfg.ExpiringSoonLimit)
	assert.Equal(t, "8181", cfg.Port)
}

func TestLoadYAML_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PORT: [unclosed"), 0o600))

	assert.Error(t, loadYAML(path))
}
