package ir

import (
	"context"
	"log/slog"

	"github.com/tyir-dev/tyir/internal/log"
)

var logger = IRLogger(log.DefaultLogger).With("section", "ir")

// Shower is anything that can be rendered in a ShowCtx: types, generic
// args, trait refs, trait instances and const generics
type Shower interface {
	ShowIn(ctx ShowCtx) string
}

// slogShow wraps a Shower as a slog.LogValuer to not render IR strings
// unless they definitely need to be logged
func slogShow(s Shower) slog.LogValuer { return showLogValuer{s} }

type showLogValuer struct{ Shower }

func (l showLogValuer) LogValue() slog.Value {
	return slog.StringValue(l.ShowIn(DumbShowCtx{}))
}

// IRLogger wraps logger so that IR values passed as attributes are
// lazily printed with DumbShowCtx
func IRLogger(logger *slog.Logger) *slog.Logger {
	return slog.New(IRSlogHandler(logger.Handler()))
}

// IRSlogHandler is a slog.Handler capable of lazy-printing IR values
func IRSlogHandler(underlying slog.Handler) slog.Handler {
	return &irLogHandler{underlying: underlying}
}

type irLogHandler struct {
	underlying slog.Handler
}

func wrapAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() != slog.KindAny {
		return attr
	}
	if s, ok := attr.Value.Any().(Shower); ok {
		attr.Value = slog.AnyValue(slogShow(s))
	}
	return attr
}

func (l *irLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return l.underlying.Enabled(ctx, level)
}

func (l *irLogHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		newRecord.AddAttrs(wrapAttr(attr))
		return true
	})
	return l.underlying.Handle(ctx, newRecord)
}

func (l *irLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		wrapped[i] = wrapAttr(attr)
	}
	return IRSlogHandler(l.underlying.WithAttrs(wrapped))
}

func (l *irLogHandler) WithGroup(name string) slog.Handler {
	return IRSlogHandler(l.underlying.WithGroup(name))
}
