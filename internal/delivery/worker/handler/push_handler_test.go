package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mirror/internal/domain/entity"
	"mirror/internal/domain/repository"
	mockRepo "mirror/internal/mocks/repository"
	mockService "mirror/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPushHandler(t *testing.T) (*PushHandler, *mockRepo.MockGroupRepository, *mockService.MockWakeNotifier) {
	groupRepo := mockRepo.NewMockGroupRepository(t)
	notifier := mockService.NewMockWakeNotifier(t)

	return &PushHandler{
		verifyToken: func(*http.Request) error { return nil },
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		notifier:    notifier,
		groupRepo:   groupRepo,
	}, groupRepo, notifier
}

func pushBody(t *testing.T, notification *entity.ChangeNotification) string {
	t.Helper()

	data, err := json.Marshal(notification)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = "msg-1"
	msg.Message.Attributes = map[string]string{"request_id": "req-1"}
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func servePush(h *PushHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestPushHandler_WakesGroupInBatches(t *testing.T) {
	h, groupRepo, notifier := newTestPushHandler(t)

	targets := make([]repository.PushTarget, 0, 600)
	for i := range 600 {
		targets = append(targets, repository.PushTarget{DeviceID: fmt.Sprintf("d%d", i), PushToken: fmt.Sprintf("tok-%d", i)})
	}

	groupRepo.EXPECT().FindPushTargets(mock.Anything, "g1", "phone").Return(targets, nil)

	var batchSizes []int
	notifier.EXPECT().
		SendWake(mock.Anything, mock.Anything, mock.MatchedBy(func(data map[string]string) bool {
			return data["type"] == "sync" && data["group_id"] == "g1" && data["data_type"] == "messages"
		})).
		RunAndReturn(func(_ context.Context, tokens []string, _ map[string]string) (int, int, []string, error) {
			batchSizes = append(batchSizes, len(tokens))
			if len(tokens) == 100 {
				return 99, 1, []string{"tok-599"}, nil
			}

			return len(tokens), 0, nil, nil
		}).
		Times(2)
	groupRepo.EXPECT().ClearPushTokens(mock.Anything, []string{"tok-599"}).Return(nil)

	rec := servePush(h, pushBody(t, &entity.ChangeNotification{
		GroupID:        "g1",
		DataType:       entity.DataTypeMessages,
		Kind:           entity.DeltaAdded,
		RecordID:       "m1",
		SourceDeviceID: "phone",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{500, 100}, batchSizes)
}

func TestPushHandler_NoTargets(t *testing.T) {
	h, groupRepo, _ := newTestPushHandler(t)

	groupRepo.EXPECT().FindPushTargets(mock.Anything, "g1", "phone").Return(nil, nil)

	rec := servePush(h, pushBody(t, &entity.ChangeNotification{GroupID: "g1", DataType: entity.DataTypeCalls, SourceDeviceID: "phone"}))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_StorageErrorIsRetried(t *testing.T) {
	h, groupRepo, _ := newTestPushHandler(t)

	groupRepo.EXPECT().FindPushTargets(mock.Anything, "g1", "").Return(nil, errors.New("connection refused"))

	rec := servePush(h, pushBody(t, &entity.ChangeNotification{GroupID: "g1", DataType: entity.DataTypeContacts}))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPushHandler_MalformedMessages(t *testing.T) {
	h, _, _ := newTestPushHandler(t)

	rec := servePush(h, `{"message":{"data":"%%%not-base64"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A decodable message for an unknown data type is acknowledged, not retried.
	rec = servePush(h, pushBody(t, &entity.ChangeNotification{GroupID: "g1", DataType: "photos"}))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_RejectsUnverifiedPush(t *testing.T) {
	h, _, _ := newTestPushHandler(t)
	h.verifyPushAuth = true
	h.verifyToken = func(*http.Request) error { return errors.New("missing authorization header") }

	rec := servePush(h, pushBody(t, &entity.ChangeNotification{GroupID: "g1", DataType: entity.DataTypeMessages}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPushHandler_IgnoresDeviceRemoval(t *testing.T) {
	h, groupRepo, notifier := newTestPushHandler(t)

	rec := servePush(h, pushBody(t, entity.NewDeviceRemovedNotification("g1", "tablet")))

	assert.Equal(t, http.StatusOK, rec.Code)
	groupRepo.AssertNotCalled(t, "FindPushTargets", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "SendWake", mock.Anything, mock.Anything, mock.Anything)
}
