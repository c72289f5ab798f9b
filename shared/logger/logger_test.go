package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"spacebook/config"
	"spacebook/shared/constant"
	"spacebook/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(env, level string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = env
	cfg.Server.LogLevel = level
	cfg.App.Name = "spacebook"

	return cfg
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "debug", level: "debug", expected: zerolog.DebugLevel},
		{name: "warn", level: "warn", expected: zerolog.WarnLevel},
		{name: "trace", level: "trace", expected: zerolog.TraceLevel},
		{name: "empty falls back to info", level: "", expected: zerolog.InfoLevel},
		{name: "garbage falls back to info", level: "loud", expected: zerolog.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, logger.Level(newConfig("production", tc.level)))
		})
	}
}

func TestNew_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, newConfig("production", "info"))
	l.Info().Str("booking_id", "b-1").Msg("booking created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "booking created", line["message"])
	assert.Equal(t, "spacebook", line["app"])
	assert.Equal(t, "b-1", line["booking_id"])
	assert.Contains(t, line, "time")
}

func TestNew_ConsoleInDevelopment(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, newConfig(constant.ServerEnvDevelopment, "debug"))
	l.Info().Msg("space listed")

	assert.Contains(t, buf.String(), "space listed")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestInit(t *testing.T) {
	original, originalLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	})

	logger.Init(newConfig("production", "warn"))

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("space not found"))
	assert.Contains(t, buf.String(), "space not found")
	assert.Contains(t, buf.String(), "logger_test")

	buf.Reset()
	logger.ErrorWithStack(nil)
	assert.Empty(t, buf.String())
}
