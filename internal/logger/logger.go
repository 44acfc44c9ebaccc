package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gg"
	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // Enable pretty console output

	// Output defaults to stderr so rendered frames can go to stdout.
	Output io.Writer
}

// ParseLevel maps a level name to zerolog; unknown names are info.
func ParseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// New creates a new structured logger
func New(cfg Config) zerolog.Logger {
	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
		}
	}

	// gg logs through slog; only surface it when debugging
	if level == zerolog.DebugLevel {
		gg.SetLogger(slog.Default())
	} else {
		gg.SetLogger(nil)
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Logger()
}
