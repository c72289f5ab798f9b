package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"spacebook/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears key for the duration of the test.
func unset(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad(t *testing.T) {
	unset(t, "APP_APP_NAME", "CACHE_TTL", "EVENTS_DRIVER", "EVENTS_KAFKA_BROKERS")
	t.Setenv("SERVER_PORT", "7000")

	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte(
		"APP_APP_NAME=from-file\nSERVER_PORT=9000\nEVENTS_KAFKA_BROKERS=k1:9092,k2:9092\n",
	), 0o600))

	cfg, err := config.Load(file, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.App.Name)
	assert.Equal(t, "7000", cfg.Server.Port, "environment wins over the file")
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Kafka.Brokers)
	assert.Equal(t, 300, cfg.Cache.TTL)
	assert.Equal(t, "none", cfg.Events.Driver)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SERVER_SHUTDOWN_GRACE_PERIOD_SECONDS", "soon")

	_, err := config.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process environment")
}
