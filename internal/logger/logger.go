package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Logger()

	logger = logger.Level(zerolog.DebugLevel)

	return logger
}

// NewConsole writes human readable lines to w, for command line use where
// stdout carries the decoded output.
func NewConsole(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger().
		Level(level)
}

// ParseLevel maps a config value onto a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// SetGlobalLevel caps every logger at the configured level.
func SetGlobalLevel(level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
}

var Module = fx.Provide(New)
