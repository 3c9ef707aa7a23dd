package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With derives a context whose logger carries the extra attrs. Middleware
// uses it to pin the trace id; handlers pick it up via From.
func With(ctx context.Context, attrs ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, From(ctx).With(attrs...))
}

// From returns the context logger, or the process logger when none was set.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return L()
}
