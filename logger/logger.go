package logger

import (
	"io"
	"os"
	"time"

	"PalmCare/config"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development gets the console writer.
func New(cfg *config.AppConfig) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.IsDev() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	return NewWithWriter(out, cfg.LogLevel)
}

// NewWithWriter builds a logger writing to out at the given level name.
// Unknown levels fall back to info.
func NewWithWriter(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "palmcare").Logger()
}
