package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"TODOLIST_BACK-END/internal/config"
)

// New builds the root logger. Pretty output is meant for local development;
// production keeps one JSON object per line.
func New(cfg config.LogConfig) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "todolist-backend").
		Logger()
}
