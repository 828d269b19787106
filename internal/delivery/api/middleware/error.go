package middleware

import (
	"log/slog"

	"mirror/internal/delivery/api/response"
	deliverycontext "mirror/internal/delivery/context"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/errors"

	"github.com/labstack/echo/v4"
)

// statusClientClosedRequest is logged when a device drops a request, typically a long poll.
const statusClientClosedRequest = 499

// ErrorMiddleware renders handler errors as the API error envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	// Hijacked or already-written responses (websocket upgrades) cannot carry an error body
	if c.Response().Committed {
		logger.Debug("Error after response was committed", slog.Any("error", err))

		return
	}

	if errors.IsCanceled(err) && c.Request().Context().Err() != nil {
		logger.Debug("Client closed request", slog.String("path", c.Request().URL.Path))
		c.Response().WriteHeader(statusClientClosedRequest)

		return
	}

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		// Response.Error drops details for 5xx errors
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), response.AppErrorDetails(appErr))

		return
	}

	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		message := "An error occurred"
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, nil)

		return
	}

	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error, please try again later")
}
