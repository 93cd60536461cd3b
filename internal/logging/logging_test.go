package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	testData := []struct {
		name  string
		level LogLevel
		want  zerolog.Level
	}{
		{name: "trace", level: LogLevelTrace, want: zerolog.TraceLevel},
		{name: "debug", level: LogLevelDebug, want: zerolog.DebugLevel},
		{name: "info", level: LogLevelInfo, want: zerolog.InfoLevel},
		{name: "warn", level: LogLevelWarn, want: zerolog.WarnLevel},
		{name: "error", level: LogLevelError, want: zerolog.ErrorLevel},
		{name: "unknown falls back to info", level: LogLevel("loud"), want: zerolog.InfoLevel},
	}
	for _, tc := range testData {
		t.Run(tc.name, func(t *testing.T) {
			logger := Init(&LoggingConfig{Level: tc.level, Format: LogFormatJson})
			require.Equal(t, tc.want, logger.GetLevel())
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	got, err := ParseLogFormat("human")
	require.NoError(t, err)
	require.Equal(t, LogFormatHuman, got)

	_, err = ParseLogFormat("xml")
	require.ErrorIs(t, err, ErrInvalidLogFormat)
}
