// Package logging sets up the debug log that records every git invocation.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much is logged.
type Options struct {
	// Enabled turns the log on. When false, New returns a discarding logger.
	Enabled bool
	// Path is the log file. Empty disables logging even when Enabled.
	Path string
	// MaxSizeMB and MaxBackups are passed to lumberjack for rotation.
	MaxSizeMB  int
	MaxBackups int
}

// New returns a logger and a closer for the underlying file.
// The closer is always safe to call.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	if !opts.Enabled || opts.Path == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, nil, err
	}

	w := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     30,
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler).With("pid", os.Getpid()), w, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
