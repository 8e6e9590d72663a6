package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// ToContext returns a copy of ctx carrying log.
func ToContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext returns the request logger, or slog.Default when ctx has none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return slog.Default()
}

// With adds attributes to the request logger and stores the result back in
// the context, e.g. the uid once a token has been verified.
func With(ctx context.Context, args ...any) (*slog.Logger, context.Context) {
	log := FromContext(ctx).With(args...)
	return log, ToContext(ctx, log)
}

// IsDebugEnabled guards debug logging whose attributes are costly to build.
func IsDebugEnabled(ctx context.Context) bool {
	return FromContext(ctx).Enabled(ctx, slog.LevelDebug)
}
