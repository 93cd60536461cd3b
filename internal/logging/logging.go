package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

//go:generate go-enum -f $GOFILE -marshal -names

/*
ENUM(
trace
debug
info
warn
error
)
*/
type LogLevel string

/*
ENUM(
json
human
)
*/
type LogFormat string

type LoggingConfig struct {
	Level  LogLevel
	Format LogFormat
}

func Init(conf *LoggingConfig) zerolog.Logger {
	var logger zerolog.Logger
	switch conf.Format {
	case LogFormatHuman:
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	default:
		logger = zerolog.New(os.Stderr)
	}

	return logger.
		Level(zerologLevel(conf.Level)).
		With().
		Timestamp().
		Logger()
}

// Component returns a child logger tagged with the subsystem it belongs to
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

func zerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case LogLevelTrace:
		return zerolog.TraceLevel
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
