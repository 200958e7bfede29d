package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// newLogger returns a text logger writing to logPath, or a discarding logger when
// logPath is empty. The file is created with mode 0600.
// The terminal belongs to the viewer, so logs never go to stdout or stderr.
func newLogger(logPath string) (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if logPath == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(file, opts)), file.Close, nil
}
