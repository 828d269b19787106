package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mirror/internal/domain/entity"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, server.Client())
	require.NoError(t, err)

	return client
}

func TestClient_PullSendsCursorAndToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/sync/messages", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("since"))
		assert.Equal(t, "m9", r.URL.Query().Get("after_id"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, `{"data":{"data_type":"messages","records":[{"id":"m10","date":105,"payload":{"x":1}}],
			"next_cursor":{"timestamp":105,"record_id":"m10"},"has_more":true},"meta":{"request_id":"r1"}}`)
	})
	client.SetToken("tok")

	result, err := client.Pull(context.Background(), entity.DataTypeMessages, entity.Cursor{Timestamp: 100, RecordID: "m9"}, 50)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "m10", result.Records[0].ID)
	assert.JSONEq(t, `{"x":1}`, string(result.Records[0].Payload))
	assert.Equal(t, entity.Cursor{Timestamp: 105, RecordID: "m10"}, result.NextCursor)
	assert.True(t, result.HasMore)
}

func TestClient_PullOmitsEmptyAfterID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["after_id"]
		assert.False(t, ok)
		writeJSON(w, http.StatusOK, `{"data":{"data_type":"calls","records":[],"next_cursor":{"timestamp":0},"has_more":false}}`)
	})

	result, err := client.Pull(context.Background(), entity.DataTypeCalls, entity.Cursor{}, 10)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestClient_MapsDomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "device limit",
			status: http.StatusConflict,
			body:   `{"error":{"code":"DEVICE_LIMIT_REACHED","message":"device limit reached, upgrade for unlimited devices","details":{"current":3,"limit":3}}}`,
			check: func(t *testing.T, err error) {
				limitErr, ok := errors.AsType[*domainerrors.DeviceLimitReachedError](err)
				require.True(t, ok)
				assert.Equal(t, 3, limitErr.Current)
				assert.Equal(t, 3, limitErr.Limit)
			},
		},
		{
			name:   "group not found",
			status: http.StatusNotFound,
			body:   `{"error":{"code":"GROUP_NOT_FOUND","message":"sync group not found"}}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domainerrors.ErrGroupNotFound)
			},
		},
		{
			name:   "unknown code",
			status: http.StatusTeapot,
			body:   `{"error":{"code":"TEAPOT","message":"short and stout"}}`,
			check: func(t *testing.T, err error) {
				apiErr, ok := errors.AsType[*APIError](err)
				require.True(t, ok)
				assert.Equal(t, "TEAPOT", apiErr.Code)
			},
		},
		{
			name:   "server error is transient",
			status: http.StatusServiceUnavailable,
			body:   `{"error":{"code":"INTERNAL_ERROR","message":"internal error"}}`,
			check: func(t *testing.T, err error) {
				transportErr, ok := errors.AsType[*domainerrors.TransportError](err)
				require.True(t, ok)
				assert.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := client.JoinGroup(context.Background(), "g1", entity.DeviceIdentity{DeviceID: "d", DeviceType: entity.DeviceTypeWeb, DeviceName: "Web"})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_NetworkFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := New(server.URL, nil)
	require.NoError(t, err)
	server.Close()

	_, err = client.Pull(context.Background(), entity.DataTypeMessages, entity.Cursor{}, 1)

	_, ok := errors.AsType[*domainerrors.TransportError](err)
	assert.True(t, ok)
}

func TestClient_JoinGroupSendsIdentity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/groups/g%201/join", r.URL.EscapedPath())

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"device_id": "d1", "device_type": "desktop", "device_name": "Laptop"}, body)

		writeJSON(w, http.StatusOK, `{"data":{"group_id":"g 1","token":"tok","device_count":2,"device_limit":3,"rejoined":false}}`)
	})

	out, err := client.JoinGroup(context.Background(), "g 1", entity.DeviceIdentity{DeviceID: "d1", DeviceType: entity.DeviceTypeDesktop, DeviceName: "Laptop"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.DeviceCount)
	assert.Equal(t, 3, out.DeviceLimit)
	assert.Equal(t, "tok", out.Token)
}

func TestClient_LeaveGroupNoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/group/leave", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.LeaveGroup(context.Background(), ""))
}

func TestClient_BusEndpoint(t *testing.T) {
	client, err := New("https://sync.example.com/base/", nil)
	require.NoError(t, err)
	client.SetToken("tok")

	endpoint, header := client.BusEndpoint()
	assert.Equal(t, "wss://sync.example.com/base/api/v1/bus", endpoint)
	assert.Equal(t, "Bearer tok", header.Get("Authorization"))

	_, err = New("ftp://nope", nil)
	assert.Error(t, err)
}
