package app

import (
	"context"
	"log/slog"
	"os"
)

// NewLogger returns a configured slog.Logger based on configuration.
// Error-level records are additionally written to the daily error log file
// so full failure detail is available offline without grepping stdout.
func NewLogger(cfg *Config) *slog.Logger {
	var stdout slog.Handler
	if cfg != nil && cfg.LogFormat == "json" {
		stdout = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true})
	} else {
		stdout = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true})
	}
	if cfg == nil || cfg.LogDir == "" {
		return slog.New(stdout)
	}
	errFile := slog.NewJSONHandler(NewDailyWriter(cfg.LogDir, "error"), &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(teeHandler{handlers: []slog.Handler{stdout, errFile}})
}

// teeHandler fans records out to every handler that accepts the level.
type teeHandler struct {
	handlers []slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return teeHandler{handlers: next}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		next[i] = h.WithGroup(name)
	}
	return teeHandler{handlers: next}
}
