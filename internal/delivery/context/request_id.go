// Package context carries request-scoped values (request id, logger and the
// authenticated device) from the transport layer into use cases.
package context

import (
	"context"
	"log/slog"
	"unicode"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyDevice is the key for storing the authenticated device in context.
	KeyDevice ContextKey = "device"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"

	maxRequestIDLength = 128
)

// NormalizeRequestID returns id when it is safe to echo into logs and headers,
// otherwise a fresh UUID.
func NormalizeRequestID(id string) string {
	if id == "" || len(id) > maxRequestIDLength {
		return uuid.NewString()
	}
	for _, r := range id {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return uuid.NewString()
		}
	}

	return id
}

// GetRequestID extracts the request ID from echo.Context, falling back to the
// request's context.Context. Returns "" when none was assigned.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return GetRequestIDFromContext(c.Request().Context())
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext extracts the request ID from standard context.Context.
// If not found, returns empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// Device identifies the authenticated device behind a request.
type Device struct {
	GroupID  string
	DeviceID string
}

// WithDevice binds device to ctx and tags the request-scoped logger, if any,
// with its group and device ids.
func WithDevice(ctx context.Context, device Device) context.Context {
	ctx = context.WithValue(ctx, KeyDevice, device)
	if logger := GetLogger(ctx); logger != nil {
		ctx = WithLogger(ctx, logger.With(
			slog.String("group_id", device.GroupID),
			slog.String("device_id", device.DeviceID),
		))
	}

	return ctx
}

// DeviceFromContext returns the device bound by WithDevice.
func DeviceFromContext(ctx context.Context) (Device, bool) {
	device, ok := ctx.Value(KeyDevice).(Device)

	return device, ok
}
