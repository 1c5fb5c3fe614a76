// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/unifiedui/docsession/internal/config"
)

const (
	DefaultMaxSizeMB  = 50
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 30
)

// Setup sets the global level and writers: stdout as JSON or console text,
// plus a rotating file when cfg.File is set.
func Setup(cfg config.LogConfig) {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	log.Logger = New(cfg, os.Stdout)
}

// New builds a logger writing to out (and cfg.File when set).
func New(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	var stdout io.Writer = out
	if cfg.Format == "console" {
		stdout = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
	}

	if cfg.File == "" {
		return zerolog.New(stdout).With().Timestamp().Logger()
	}

	if err := ensureLogDir(cfg.File); err != nil {
		logger := zerolog.New(stdout).With().Timestamp().Logger()
		logger.Error().Err(err).Str("path", cfg.File).Msg("failed to prepare log directory; logging to stdout only")
		return logger
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
		Compress:   true,
	}

	multi := zerolog.MultiLevelWriter(stdout, fileWriter)
	return zerolog.New(multi).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return parsed
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
