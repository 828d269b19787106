package pairing

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"mirror/internal/client/store"
	"mirror/internal/delivery/api/dto"
	"mirror/internal/domain/entity"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/errors"
	mockpairing "mirror/internal/mocks/pairing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	laptop   = Profile{DeviceName: "Laptop", DeviceType: entity.DeviceTypeDesktop}
)

func newTestManager(t *testing.T) (*Manager, *mockpairing.MockAPI, *store.MemoryStore) {
	t.Helper()

	api := mockpairing.NewMockAPI(t)
	st := store.NewMemoryStore()
	m := NewManager(api, st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.now = func() time.Time { return fixedNow }
	m.newID = func() string { return "device-1" }

	return m, api, st
}

func identity(name string, deviceType entity.DeviceType) entity.DeviceIdentity {
	return entity.DeviceIdentity{DeviceID: "device-1", DeviceType: deviceType, DeviceName: name}
}

func TestManager_DeviceIDGeneratedOnce(t *testing.T) {
	m, _, st := newTestManager(t)
	ctx := context.Background()

	calls := 0
	m.newID = func() string {
		calls++

		return "device-1"
	}

	first, err := m.DeviceID(ctx)
	require.NoError(t, err)
	second, err := m.DeviceID(ctx)
	require.NoError(t, err)

	assert.Equal(t, "device-1", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	saved, err := st.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "device-1", saved)
}

func TestManager_CreateGroupPersistsMembership(t *testing.T) {
	m, api, st := newTestManager(t)
	ctx := context.Background()

	api.EXPECT().CreateGroup(mock.Anything, identity("Laptop", entity.DeviceTypeDesktop)).
		Return(&dto.PairingResponse{GroupID: "group-1", Token: "token-1", DeviceCount: 1, DeviceLimit: 3}, nil)
	api.EXPECT().SetToken("token-1").Return()

	resp, err := m.CreateGroup(ctx, laptop)
	require.NoError(t, err)
	assert.Equal(t, "group-1", resp.GroupID)

	membership, err := st.Membership(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Membership{
		GroupID:    "group-1",
		Token:      "token-1",
		DeviceName: "Laptop",
		DeviceType: entity.DeviceTypeDesktop,
		JoinedAt:   fixedNow,
	}, *membership)

	paired, err := m.Paired(ctx)
	require.NoError(t, err)
	assert.True(t, paired)
}

func TestManager_CreateGroupRejectsBadProfile(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.CreateGroup(context.Background(), Profile{DeviceName: "Laptop", DeviceType: "tablet"})
	require.Error(t, err)

	_, err = m.CreateGroup(context.Background(), Profile{DeviceType: entity.DeviceTypePhone})
	require.Error(t, err)
}

func TestManager_JoinGroupLimitReachedLeavesDeviceUnpaired(t *testing.T) {
	m, api, _ := newTestManager(t)
	ctx := context.Background()

	api.EXPECT().JoinGroup(mock.Anything, "group-1", identity("Laptop", entity.DeviceTypeDesktop)).
		Return(nil, domainerrors.NewDeviceLimitReachedError(3, 3))

	_, err := m.JoinGroup(ctx, "group-1", laptop)
	require.Error(t, err)

	limitErr, ok := errors.AsType[*domainerrors.DeviceLimitReachedError](err)
	require.True(t, ok)
	assert.Equal(t, 3, limitErr.Limit)

	paired, err := m.Paired(ctx)
	require.NoError(t, err)
	assert.False(t, paired)
}

func TestManager_JoinGroupRejoin(t *testing.T) {
	m, api, st := newTestManager(t)
	ctx := context.Background()

	api.EXPECT().JoinGroup(mock.Anything, "group-1", mock.Anything).
		Return(&dto.PairingResponse{GroupID: "group-1", Token: "token-2", DeviceCount: 3, DeviceLimit: 3, Rejoined: true}, nil)
	api.EXPECT().SetToken("token-2").Return()

	resp, err := m.JoinGroup(ctx, "group-1", laptop)
	require.NoError(t, err)
	assert.True(t, resp.Rejoined)
	assert.Equal(t, 3, resp.DeviceCount)

	membership, err := st.Membership(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-2", membership.Token)
}

func TestManager_RecoverGroupUsesPersistedDeviceID(t *testing.T) {
	m, api, st := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, st.SaveDeviceID(ctx, "device-9"))

	api.EXPECT().RecoverGroup(mock.Anything, "device-9").
		Return(&dto.PairingResponse{GroupID: "group-7", Token: "token-7"}, nil)
	api.EXPECT().SetToken("token-7").Return()

	resp, err := m.RecoverGroup(ctx, laptop)
	require.NoError(t, err)
	assert.Equal(t, "group-7", resp.GroupID)

	membership, err := st.Membership(ctx)
	require.NoError(t, err)
	assert.Equal(t, "group-7", membership.GroupID)
}

func TestManager_RecoverGroupNotFound(t *testing.T) {
	m, api, _ := newTestManager(t)

	api.EXPECT().RecoverGroup(mock.Anything, "device-1").Return(nil, domainerrors.ErrNoGroupFound)

	_, err := m.RecoverGroup(context.Background(), laptop)
	assert.True(t, errors.Is(err, domainerrors.ErrNoGroupFound))
}

func TestManager_LeaveGroupClearsLocalState(t *testing.T) {
	m, api, st := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, st.SaveDeviceID(ctx, "device-1"))
	require.NoError(t, st.SaveMembership(ctx, store.Membership{GroupID: "group-1", Token: "token-1"}))
	require.NoError(t, st.SaveSnapshot(ctx, entity.SyncCursor{DataType: entity.DataTypeMessages, LastSyncTimestamp: 10, LastRecordID: "m1"},
		[]entity.RawRecord{{ID: "m1", Date: 10, Payload: []byte(`{}`)}}))

	api.EXPECT().SetToken("token-1").Return()
	api.EXPECT().LeaveGroup(mock.Anything, "device-1").Return(nil)
	api.EXPECT().SetToken("").Return()

	require.NoError(t, m.LeaveGroup(ctx))

	_, err := st.Membership(ctx)
	assert.ErrorIs(t, err, store.ErrNoMembership)

	cursor, err := st.LoadCursor(ctx, entity.DataTypeMessages)
	require.NoError(t, err)
	assert.Empty(t, cursor.LastRecordID)

	deviceID, err := st.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "device-1", deviceID)
}

func TestManager_LeaveGroupKeepsStateOnTransportError(t *testing.T) {
	m, api, st := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, st.SaveMembership(ctx, store.Membership{GroupID: "group-1", Token: "token-1"}))

	api.EXPECT().SetToken("token-1").Return()
	api.EXPECT().LeaveGroup(mock.Anything, "device-1").
		Return(&domainerrors.TransportError{Op: "leave group", Err: errors.New("connection refused")})

	err := m.LeaveGroup(ctx)
	require.Error(t, err)

	paired, err := m.Paired(ctx)
	require.NoError(t, err)
	assert.True(t, paired)
}

func TestManager_UnpairedOperations(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	assert.ErrorIs(t, m.LeaveGroup(ctx), store.ErrNoMembership)

	_, err := m.GroupInfo(ctx)
	assert.ErrorIs(t, err, store.ErrNoMembership)
}

func TestManager_RemoveOtherDevice(t *testing.T) {
	m, api, st := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, st.SaveMembership(ctx, store.Membership{GroupID: "group-1", Token: "token-1"}))

	api.EXPECT().SetToken("token-1").Return()
	api.EXPECT().LeaveGroup(mock.Anything, "phone-1").Return(nil)

	require.NoError(t, m.RemoveDevice(ctx, "phone-1"))

	paired, err := m.Paired(ctx)
	require.NoError(t, err)
	assert.True(t, paired)
}

func TestManager_GroupInfo(t *testing.T) {
	m, api, st := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, st.SaveMembership(ctx, store.Membership{GroupID: "group-1", Token: "token-1"}))

	api.EXPECT().SetToken("token-1").Return()
	api.EXPECT().GroupInfo(mock.Anything).Return(&entity.GroupInfo{GroupID: "group-1", DeviceCount: 2, DeviceLimit: 3}, nil)

	info, err := m.GroupInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, info.DeviceCount)
}
