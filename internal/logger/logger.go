package logger

import (
	"io"
	"os"
	"time"

	"github.com/MyelinBots/knightrun-go/config"
	"github.com/rs/zerolog"
)

// New builds the process logger. Development gets a console writer, everything else JSON on stdout.
func New(cfg config.AppConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

func NewWithWriter(cfg config.AppConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", cfg.APPName).
		Str("version", cfg.Version).
		Logger()
}
