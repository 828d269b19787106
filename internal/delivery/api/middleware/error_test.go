package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
}

func handleError(t *testing.T, ctx context.Context, err error) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var buf bytes.Buffer
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/messages", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	m.HandleHTTPError(err, echo.New().NewContext(req, rec))

	return rec, buf.String()
}

func TestHandleHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		logged bool
	}{
		{
			name:   "device limit keeps details",
			err:    errors.Wrap(domainerrors.NewDeviceLimitReachedError(3, 3), "join group"),
			status: http.StatusConflict,
			code:   "DEVICE_LIMIT_REACHED",
		},
		{
			name:   "echo http error",
			err:    echo.NewHTTPError(http.StatusNotFound, "route not found"),
			status: http.StatusNotFound,
			code:   "HTTP_ERROR",
		},
		{
			name:   "unknown error is hidden",
			err:    errors.New("pq: relation does not exist"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_ERROR",
			logged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, logs := handleError(t, context.Background(), tt.err)
			require.Equal(t, tt.status, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotContains(t, rec.Body.String(), "relation does not exist")
			assert.Equal(t, tt.logged, bytes.Contains([]byte(logs), []byte("Unhandled error")))
		})
	}
}

func TestHandleHTTPError_ClientGone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec, logs := handleError(t, ctx, errors.Wrap(context.Canceled, "wait for changes"))

	assert.Equal(t, statusClientClosedRequest, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.NotContains(t, logs, "Unhandled error")
}
