package logger

import (
	"io"
	"os"
	"time"

	"spacebook/config"
	"spacebook/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.InfoLevel

// New builds a logger writing to out. Development gets the human readable
// console format; every other environment logs JSON lines tagged with the
// app name.
func New(out io.Writer, cfg *config.Config) zerolog.Logger {
	if cfg.Server.Env == constant.ServerEnvDevelopment {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}

	return zerolog.New(out).
		With().Timestamp().Str("app", cfg.App.Name).Logger()
}

// Level parses the configured level, falling back to info.
func Level(cfg *config.Config) zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return defaultLevel
	}

	return level
}

// Init replaces the global logger and level. Call it once at startup.
func Init(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(Level(cfg))

	log.Logger = New(os.Stdout, cfg)

	log.Debug().
		Str("env", cfg.Server.Env).
		Str("level", zerolog.GlobalLevel().String()).
		Msg("Logger initialized")
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	if err == nil {
		return
	}

	log.Error().Msgf("%+v", errors.WithStack(err))
}
