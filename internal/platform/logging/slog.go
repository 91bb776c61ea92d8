package logging

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
)

// NewSlog returns a slog.Logger whose records are written through the
// zap JSON core, so every component logging via slog shares one output
// format and the trace enrichment below.
func NewSlog(level Level) *slog.Logger {
	base := FromZap(NewJSON(level).Zap().WithOptions(zap.AddCallerSkip(3)))
	return slog.New(&slogZapHandler{logger: base, level: level})
}

type slogZapHandler struct {
	logger *Logger
	level  Level
	attrs  []any
	group  string
}

func (h *slogZapHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= SlogLevel(h.level)
}

func (h *slogZapHandler) Handle(ctx context.Context, record slog.Record) error {
	args := make([]any, 0, len(h.attrs)+record.NumAttrs()*2)
	args = append(args, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		args = append(args, h.qualify(attr.Key), attr.Value.Resolve().Any())
		return true
	})

	switch {
	case record.Level < slog.LevelInfo:
		h.logger.DebugContext(ctx, record.Message, args...)
	case record.Level < slog.LevelWarn:
		h.logger.InfoContext(ctx, record.Message, args...)
	case record.Level < slog.LevelError:
		h.logger.WarnContext(ctx, record.Message, args...)
	default:
		h.logger.ErrorContext(ctx, record.Message, args...)
	}

	return nil
}

func (h *slogZapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, attr := range attrs {
		next.attrs = append(next.attrs, next.qualify(attr.Key), attr.Value.Resolve().Any())
	}
	return next
}

func (h *slogZapHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.group = next.qualify(name)
	return next
}

func (h *slogZapHandler) clone() *slogZapHandler {
	attrs := make([]any, len(h.attrs))
	copy(attrs, h.attrs)
	return &slogZapHandler{logger: h.logger, level: h.level, attrs: attrs, group: h.group}
}

func (h *slogZapHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

// SlogLevel converts the zap-style level carried in config to its slog
// equivalent.
func SlogLevel(level Level) slog.Level {
	switch {
	case level <= LevelDebug:
		return slog.LevelDebug
	case level == LevelInfo:
		return slog.LevelInfo
	case level == LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
