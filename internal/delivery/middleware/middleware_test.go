package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"mirror/config"
	deliverycontext "mirror/internal/delivery/context"
	"mirror/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedEcho(debug bool, buf *bytes.Buffer) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)

	return e
}

func TestRequestID_EchoesClientIDAndScopesLogger(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(false, &buf)

	var seen string
	e.GET("/ping", func(c echo.Context) error {
		seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), nil).Info("inside")

		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "req-42", seen)
	assert.Contains(t, buf.String(), "request_id=req-42")
}

func TestRequestID_ReplacesMalformedID(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(false, &buf)
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "bad id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	got := rec.Header().Get(deliverycontext.HeaderXRequestID)
	assert.NotEqual(t, "bad id", got)
	assert.Len(t, got, 36)
}

func TestLogger_QuietUnlessDebugOrServerError(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		status  int
		logged  bool
		level   string
		message string
	}{
		{name: "ok without debug", debug: false, status: http.StatusOK, logged: false},
		{name: "client error without debug", debug: false, status: http.StatusConflict, logged: false},
		{name: "server error without debug", debug: false, status: http.StatusServiceUnavailable, logged: true, level: "level=ERROR"},
		{name: "ok with debug", debug: true, status: http.StatusOK, logged: true, level: "level=INFO"},
		{name: "client error with debug", debug: true, status: http.StatusNotFound, logged: true, level: "level=WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			e := newLoggedEcho(tt.debug, &buf)
			e.GET("/status", func(c echo.Context) error { return c.NoContent(tt.status) })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status?since=10", nil))
			require.Equal(t, tt.status, rec.Code)

			if !tt.logged {
				assert.NotContains(t, buf.String(), "HTTP Request")

				return
			}
			assert.Contains(t, buf.String(), "HTTP Request")
			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), "since=10")
		})
	}
}

func TestLogger_BusUpgradeOmitsQuery(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(true, &buf)
	e.GET("/api/v1/bus", func(c echo.Context) error {
		ctx := deliverycontext.WithDevice(c.Request().Context(), deliverycontext.Device{GroupID: "group-1", DeviceID: "laptop"})
		c.SetRequest(c.Request().WithContext(ctx))

		return c.NoContent(http.StatusSwitchingProtocols)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bus?access_token=secret", nil)
	req.Header.Set(echo.HeaderUpgrade, "websocket")
	e.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "Change bus session")
	assert.Contains(t, out, "device_id=laptop")
	assert.NotContains(t, out, "secret")
}

func TestLogger_StatusFromReturnedError(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(false, &buf)
	e.GET("/boom", func(echo.Context) error { return errors.New("disk full") })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Contains(t, buf.String(), "status=500")
	assert.Contains(t, buf.String(), "disk full")
}
