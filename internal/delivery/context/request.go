// Package context carries request-scoped values between the echo layer and
// the use cases: the request id, the request logger, and the authenticated
// caller.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the HTTP header name for request ID.
const HeaderXRequestID = "X-Request-Id"

type scopeKey struct{}

// requestScope is stored once per request under scopeKey.
type requestScope struct {
	requestID string
	logger    *slog.Logger
}

// WithRequestScope tags ctx with a request id and the logger that carries it.
// A nil logger keeps the one already on ctx, if any.
func WithRequestScope(ctx context.Context, requestID string, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = GetLogger(ctx)
	}

	return context.WithValue(ctx, scopeKey{}, requestScope{requestID: requestID, logger: logger})
}

func scopeOf(ctx context.Context) requestScope {
	scope, _ := ctx.Value(scopeKey{}).(requestScope)

	return scope
}

// GetRequestIDFromContext returns the request id on ctx, or "".
func GetRequestIDFromContext(ctx context.Context) string {
	return scopeOf(ctx).requestID
}

// GetRequestID returns the id of the request being served, falling back to
// the response header when the scope was never installed.
func GetRequestID(c echo.Context) string {
	if id := GetRequestIDFromContext(c.Request().Context()); id != "" {
		return id
	}

	return c.Response().Header().Get(HeaderXRequestID)
}

// GetLogger returns the request logger on ctx, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	return scopeOf(ctx).logger
}

// GetLoggerOrDefault returns the request logger on ctx, or fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}
