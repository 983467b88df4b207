package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	Level   string `yaml:"level" json:"level" long:"log-level" env:"MCPBRIDGE_LOG_LEVEL" description:"log level: trace, debug, info, warn, error, disabled"`
	Console bool   `yaml:"console" json:"console" long:"log-console" description:"human readable log output"`
}

// New creates a leveled zerolog logger writing to w (stderr when nil).
// Stdout is never used since the stdio transport owns it.
func New(cfg *Config, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
