package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/flag-arena/config"
)

const (
	logFileName = "flag-arena.log"
	maxLogSize  = 10 * 1024 * 1024 // rotate above 10 MiB
)

// setupLogging builds the process logger
// The terminal owns stdout, so interactive runs only log to a file and only with debug set
// Headless runs also write to stderr
func setupLogging(cfg config.LogConfig, headless bool) (zerolog.Logger, *os.File, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.Debug && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	var writers []io.Writer
	if headless {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	var file *os.File
	if cfg.Debug {
		file, err = openLogFile(cfg.Dir)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: file, TimeFormat: time.RFC3339, NoColor: true})
	}

	if len(writers) == 0 {
		return zerolog.Nop(), nil, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	logger.Info().Str("loglevel", level.String()).Msg("Logging set up")
	return logger, file, nil
}

// openLogFile appends to dir/flag-arena.log, moving an oversized file to .old first
func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		if err := os.Rename(path, path+".old"); err != nil {
			return nil, fmt.Errorf("rotating log file: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return file, nil
}
