package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a preconfigured slog.Logger writing JSON to w.
func New(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler)
}

// Default returns the logger used by the running service.
func Default() *slog.Logger {
	return New(os.Stdout)
}
