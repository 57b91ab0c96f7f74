package middleware

import (
	"log/slog"
	"strings"
	"time"

	"warranty/config"
	deliverycontext "warranty/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware writes one access line per request when env.debug is set.
// Health checks and artifact downloads are not logged.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.debug || quietRoute(c.Path()) {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		m.logRequest(c, time.Since(start), err)

		return err
	}
}

func quietRoute(route string) bool {
	return route == "/health" || strings.HasPrefix(route, "/uploads/")
}

func (m *LoggerMiddleware) logRequest(c echo.Context, latency time.Duration, err error) {
	req := c.Request()
	status := c.Response().Status

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("route", c.Path()),
		slog.String("uri", req.URL.RequestURI()),
		slog.Int("status", status),
		slog.Duration("latency", latency),
		slog.String("remote_ip", c.RealIP()),
	}

	if principal, ok := deliverycontext.GetPrincipal(c); ok {
		attrs = append(attrs, slog.String("actor_id", principal.ActorID().String()))
		if storeID, ok := principal.StoreScope(); ok {
			attrs = append(attrs, slog.String("store_id", storeID.String()))
		}
	} else if key, ok := deliverycontext.GetAPIKey(c); ok {
		attrs = append(attrs, slog.String("store_id", key.StoreID.String()))
	}

	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	// The request-scoped logger already carries request_id
	deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).LogAttrs(req.Context(), level, "HTTP request", attrs...)
}
