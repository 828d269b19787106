package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mirror/internal/delivery/api/middleware"
	"mirror/internal/delivery/api/validator"
	"mirror/internal/domain/entity"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/domain/service"
	mockService "mirror/internal/mocks/service"
	"mirror/internal/infra/realtime"
	mockUsecase "mirror/internal/mocks/usecase"
	"mirror/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type handlerFixtures struct {
	e         *echo.Echo
	pairingUC *mockUsecase.MockPairingUsecase
	syncUC    *mockUsecase.MockSyncUsecase
	tokenSvc  *mockService.MockTokenService
}

// newTestEcho mounts the handlers behind the auth middleware the way the router does.
func newTestEcho(t *testing.T) *handlerFixtures {
	t.Helper()

	f := &handlerFixtures{
		e:         echo.New(),
		pairingUC: mockUsecase.NewMockPairingUsecase(t),
		syncUC:    mockUsecase.NewMockSyncUsecase(t),
		tokenSvc:  mockService.NewMockTokenService(t),
	}
	f.e.Validator = validator.New()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pairing := NewPairingHandler(PairingHandlerParams{PairingUC: f.pairingUC, Logger: logger})
	sync := NewSyncHandler(SyncHandlerParams{SyncUC: f.syncUC, Logger: logger})
	bus := NewBusHandler(BusHandlerParams{Hub: realtime.NewHub(nil, logger), SyncUC: f.syncUC, Logger: logger})
	auth := middleware.NewAuthMiddleware(f.tokenSvc)

	f.e.POST("/groups", pairing.CreateGroup)
	f.e.POST("/groups/:groupId/join", pairing.JoinGroup)
	f.e.POST("/group/leave", pairing.LeaveGroup, auth.Authenticate)
	f.e.GET("/group", pairing.GetGroupInfo, auth.Authenticate)
	f.e.GET("/group/qr", pairing.PairingQR, auth.Authenticate)
	f.e.GET("/group/history", pairing.GroupHistory, auth.Authenticate)
	f.e.GET("/bus", bus.Connect, auth.Authenticate)
	f.e.GET("/sync/:dataType", sync.Pull, auth.Authenticate)
	f.e.PUT("/sync/:dataType/records", sync.PutRecord, auth.Authenticate)
	f.e.DELETE("/sync/:dataType/records/:id", sync.DeleteRecord, auth.Authenticate)

	return f
}

func (f *handlerFixtures) expectValidToken() {
	f.tokenSvc.EXPECT().ValidateToken("good").Return(&service.DeviceClaims{
		GroupID:          "group-1",
		DeviceType:       entity.DeviceTypePhone,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "phone"},
	}, nil)
}

func (f *handlerFixtures) do(method, target, body string, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

const phoneBody = `{"device_id":"d4","device_type":"phone","device_name":"Pixel"}`

func TestPairingHandler_CreateGroup(t *testing.T) {
	f := newTestEcho(t)

	f.pairingUC.EXPECT().
		CreateGroup(mock.Anything, entity.DeviceIdentity{DeviceID: "d4", DeviceType: entity.DeviceTypePhone, DeviceName: "Pixel"}).
		Return(&usecase.PairingOutput{GroupID: "group-1", Token: "tok", DeviceCount: 1, DeviceLimit: 3}, nil)

	rec := f.do(http.MethodPost, "/groups", phoneBody, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.JSONEq(t, `{"group_id":"group-1","token":"tok","device_count":1,"device_limit":3,"rejoined":false,"group":null}`, string(env.Data))
}

func TestPairingHandler_CreateGroupValidation(t *testing.T) {
	f := newTestEcho(t)

	rec := f.do(http.MethodPost, "/groups", `{"device_id":"d4","device_type":"toaster","device_name":"x"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.CodeValidationFailed, env.Error.Code)
	f.pairingUC.AssertNotCalled(t, "CreateGroup", mock.Anything, mock.Anything)
}

func TestPairingHandler_JoinGroupLimitReached(t *testing.T) {
	f := newTestEcho(t)

	f.pairingUC.EXPECT().
		JoinGroup(mock.Anything, "group-1", mock.AnythingOfType("entity.DeviceIdentity")).
		Return(nil, errors.WithStack(domainerrors.NewDeviceLimitReachedError(3, 3)))

	rec := f.do(http.MethodPost, "/groups/group-1/join", phoneBody, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.CodeDeviceLimitReached, env.Error.Code)
	assert.Equal(t, map[string]any{"current": float64(3), "limit": float64(3)}, env.Error.Details)
}

func TestPairingHandler_JoinUnknownGroup(t *testing.T) {
	f := newTestEcho(t)

	f.pairingUC.EXPECT().
		JoinGroup(mock.Anything, "nope", mock.Anything).
		Return(nil, domainerrors.ErrGroupNotFound)

	rec := f.do(http.MethodPost, "/groups/nope/join", phoneBody, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domainerrors.CodeGroupNotFound, decodeEnvelope(t, rec).Error.Code)
}

func TestPairingHandler_LeaveRequiresToken(t *testing.T) {
	f := newTestEcho(t)

	rec := f.do(http.MethodPost, "/group/leave", `{}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domainerrors.CodeInvalidToken, decodeEnvelope(t, rec).Error.Code)
}

func TestPairingHandler_LeaveRejectsBadToken(t *testing.T) {
	f := newTestEcho(t)

	f.tokenSvc.EXPECT().ValidateToken("bad").Return(nil, errors.New("expired"))

	rec := f.do(http.MethodPost, "/group/leave", `{}`, "bad")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPairingHandler_LeaveSelf(t *testing.T) {
	f := newTestEcho(t)
	f.expectValidToken()

	caller := usecase.DeviceCaller{GroupID: "group-1", DeviceID: "phone"}
	f.pairingUC.EXPECT().LeaveGroup(mock.Anything, caller, "").Return(nil)

	rec := f.do(http.MethodPost, "/group/leave", `{}`, "good")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSyncHandler_PullParsesCursor(t *testing.T) {
	f := newTestEcho(t)
	f.expectValidToken()

	want := usecase.PullInput{
		DataType: entity.DataTypeMessages,
		Cursor:   entity.Cursor{Timestamp: 100, RecordID: "m9"},
		Limit:    25,
	}
	f.syncUC.EXPECT().
		Pull(mock.Anything, usecase.DeviceCaller{GroupID: "group-1", DeviceID: "phone"}, want).
		Return(&entity.PullResult{NextCursor: entity.Cursor{Timestamp: 100, RecordID: "m9"}}, nil)

	rec := f.do(http.MethodGet, "/sync/messages?since=100&after_id=m9&limit=25", "", "good")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.JSONEq(t,
		`{"data_type":"messages","records":[],"next_cursor":{"timestamp":100,"record_id":"m9"},"has_more":false}`,
		string(env.Data))
}

func TestSyncHandler_PullRejectsBadSince(t *testing.T) {
	f := newTestEcho(t)
	f.expectValidToken()

	rec := f.do(http.MethodGet, "/sync/messages?since=yesterday", "", "good")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domainerrors.CodeValidationFailed, decodeEnvelope(t, rec).Error.Code)
	f.syncUC.AssertNotCalled(t, "Pull", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncHandler_PullUnknownDataType(t *testing.T) {
	f := newTestEcho(t)
	f.expectValidToken()

	f.syncUC.EXPECT().Pull(mock.Anything, mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidDataType)

	rec := f.do(http.MethodGet, "/sync/calendar", "", "good")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domainerrors.CodeInvalidDataType, decodeEnvelope(t, rec).Error.Code)
}

func TestSyncHandler_PutRecordStatus(t *testing.T) {
	tests := []struct {
		name string
		kind entity.DeltaKind
		want int
	}{
		{name: "added", kind: entity.DeltaAdded, want: http.StatusCreated},
		{name: "changed", kind: entity.DeltaChanged, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestEcho(t)
			f.expectValidToken()

			f.syncUC.EXPECT().
				PutRecord(mock.Anything, mock.Anything, entity.DataTypeContacts, mock.MatchedBy(func(r entity.RawRecord) bool {
					return r.ID == "c1" && r.Date == 42
				})).
				Return(tt.kind, nil)

			rec := f.do(http.MethodPut, "/sync/contacts/records", `{"id":"c1","date":42,"payload":{"name":"Ann"}}`, "good")

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSyncHandler_DeleteRecord(t *testing.T) {
	f := newTestEcho(t)
	f.expectValidToken()

	f.syncUC.EXPECT().DeleteRecord(mock.Anything, mock.Anything, entity.DataTypeMessages, "m1").Return(nil)

	rec := f.do(http.MethodDelete, "/sync/messages/records/m1", "", "good")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

var phoneCaller = usecase.DeviceCaller{GroupID: "group-1", DeviceID: "phone"}

func TestPairingHandler_GroupReadsRejectRemovedDevice(t *testing.T) {
	notMember := errors.Wrap(domainerrors.ErrDeviceNotMember, "check membership")

	tests := []struct {
		name   string
		target string
		expect func(f *handlerFixtures)
	}{
		{
			name:   "group info",
			target: "/group",
			expect: func(f *handlerFixtures) {
				f.pairingUC.EXPECT().GetGroupInfo(mock.Anything, phoneCaller).Return(nil, notMember)
			},
		},
		{
			name:   "pairing qr",
			target: "/group/qr",
			expect: func(f *handlerFixtures) {
				f.pairingUC.EXPECT().PairingQR(mock.Anything, phoneCaller).Return(nil, notMember)
			},
		},
		{
			name:   "history",
			target: "/group/history",
			expect: func(f *handlerFixtures) {
				f.pairingUC.EXPECT().GroupHistory(mock.Anything, phoneCaller).Return(nil, notMember)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestEcho(t)
			f.expectValidToken()
			tt.expect(f)

			rec := f.do(http.MethodGet, tt.target, "", "good")

			assert.Equal(t, http.StatusForbidden, rec.Code)
			env := decodeEnvelope(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, domainerrors.CodeDeviceNotMember, env.Error.Code)
		})
	}
}

func TestPairingHandler_GetGroupInfoForMember(t *testing.T) {
	f := newTestEcho(t)
	f.expectValidToken()

	f.pairingUC.EXPECT().
		GetGroupInfo(mock.Anything, phoneCaller).
		Return(&entity.GroupInfo{GroupID: "group-1", DeviceCount: 2, DeviceLimit: 3}, nil)

	rec := f.do(http.MethodGet, "/group", "", "good")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBusHandler_RejectsRemovedDeviceBeforeUpgrade(t *testing.T) {
	f := newTestEcho(t)
	f.expectValidToken()

	f.syncUC.EXPECT().RequireMember(mock.Anything, phoneCaller).Return(domainerrors.ErrDeviceNotMember)

	rec := f.do(http.MethodGet, "/bus", "", "good")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.CodeDeviceNotMember, env.Error.Code)
}

func TestBusHandler_RequiresToken(t *testing.T) {
	f := newTestEcho(t)

	rec := f.do(http.MethodGet, "/bus", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	f.syncUC.AssertNotCalled(t, "RequireMember", mock.Anything, mock.Anything)
}
