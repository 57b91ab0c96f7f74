package middleware

import (
	"log/slog"
	"net/http"

	"warranty/internal/delivery/api/response"
	deliverycontext "warranty/internal/delivery/context"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger   *slog.Logger
	reporter service.ErrorReporter
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger, reporter service.ErrorReporter) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger:   logger,
		reporter: reporter,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.capture(c, err, appErr.ErrorCode())
		}
		_ = response.RenderAppError(c, appErr)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, nil)

		return
	}

	m.capture(c, err, "INTERNAL_ERROR")

	// For 500 errors, do not expose internal error details to the client
	_ = response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error, please try again later")
}

func (m *ErrorMiddleware) capture(c echo.Context, err error, code string) {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger)
	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("code", code),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	m.reporter.Report(ctx, err, map[string]string{
		"code":       code,
		"route":      c.Path(),
		"method":     c.Request().Method,
		"request_id": deliverycontext.GetRequestID(c),
	})
}
