package context_manager

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

type requestIDKey struct{}

// SetRequestIDContext stores the request id into context
func SetRequestIDContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, strings.TrimSpace(id))
}

// GetRequestIDFromContext retrieves the request id from context
func GetRequestIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(requestIDKey{}).(string)
	if !ok {
		return ""
	}
	return id
}

// SetLoggerContext attaches a request scoped logger
func SetLoggerContext(ctx context.Context, log zerolog.Logger) context.Context {
	return log.WithContext(ctx)
}

// GetLoggerFromContext returns the request logger, or a disabled logger when none was attached.
func GetLoggerFromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
