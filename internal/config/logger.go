package config

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger: JSON at info level in production and
// text at debug level otherwise. Source locations are added in development.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		AddSource: cfg.IsDevelopment(),
	}

	if cfg.IsProduction() {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(w, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
