// Package ctxutil carries request-scoped identifiers through context.Context.
package ctxutil

import (
	"context"
	"log/slog"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Logger returns base annotated with the request ID from ctx, if any.
func Logger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if id := RequestIDFromCtx(ctx); id != "" {
		return base.With(slog.String("request_id", id))
	}
	return base
}
