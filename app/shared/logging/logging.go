// Package logging builds the service's slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options controls the handlers the logger fans out to.
type Options struct {
	Level   string
	Format  string // "text" or "json"
	File    string // optional JSON log file
	Service string
}

// NewLogger returns a logger writing to stdout and, when Options.File is set,
// to a JSON file. The returned closer releases the file handle.
func NewLogger(opts Options) (*slog.Logger, io.Closer, error) {
	return newLogger(os.Stdout, opts)
}

func newLogger(stdout io.Writer, opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var console slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		console = slog.NewTextHandler(stdout, handlerOpts)
	case "json":
		console = slog.NewJSONHandler(stdout, handlerOpts)
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	handlers := []slog.Handler{console}
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, handlerOpts))
		closer = f
	}

	logger := slog.New(slogmulti.Fanout(handlers...))
	if opts.Service != "" {
		logger = logger.With(slog.String("service", opts.Service))
	}
	return logger, closer, nil
}

// ParseLevel maps a config string onto a slog level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
