package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const requestIDKey contextKey = "request_id"

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// Logger tags base with the request id carried by ctx, if any.
func Logger(ctx context.Context, base *zap.Logger) *zap.Logger {
	if rid := GetRequestID(ctx); rid != "" {
		return base.With(zap.String("request_id", rid))
	}
	return base
}
