// Package logging builds the process slog.Logger from the logging section
// of folio.yaml. Records go to stderr unless a log file is configured, in
// which case the file is rotated with lumberjack.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/modu-ai/folio/internal/config"
)

// Format names accepted in the logging section.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures New.
type Options struct {
	// Config is the logging section.
	Config config.LoggingConfig
	// File is the resolved log file path; empty means Stderr.
	File string
	// Stderr receives records when no file is configured.
	Stderr io.Writer
	// Verbose forces debug level.
	Verbose bool
}

// New returns a logger and a close function that flushes the file sink.
func New(opts Options) (*slog.Logger, func() error, error) {
	writer, closeFn, err := resolveWriter(opts)
	if err != nil {
		return nil, nil, err
	}

	level := ParseLevel(opts.Config.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Config.Format)) {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	default:
		handler = slog.NewTextHandler(writer, handlerOpts)
	}
	return slog.New(handler), closeFn, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func resolveWriter(opts Options) (io.Writer, func() error, error) {
	path := strings.TrimSpace(opts.File)
	if path == "" {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		return w, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	rot := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    positive(opts.Config.MaxSizeMB, config.DefaultMaxSizeMB),
		MaxBackups: max(opts.Config.MaxBackups, 0),
		MaxAge:     max(opts.Config.MaxAgeDays, 0),
		Compress:   opts.Config.Compress,
	}
	return rot, rot.Close, nil
}

func positive(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
