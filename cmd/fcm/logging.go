package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/fcmeans"
	"github.com/hupe1980/fcmeans/internal/config"
)

func newLogger(cfg config.Log, w io.Writer) (*fcmeans.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch cfg.Format {
	case "json":
		return fcmeans.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return fcmeans.NewLogger(slog.NewTextHandler(w, opts)), nil
	}
}
