package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncGroup_HasRoomFor(t *testing.T) {
	t.Parallel()

	free := &SyncGroup{Plan: PlanFree, DeviceLimit: 3}
	assert.True(t, free.HasRoomFor(2))
	assert.False(t, free.HasRoomFor(3))
	assert.False(t, free.HasRoomFor(4))

	paid := &SyncGroup{Plan: PlanPaid, DeviceLimit: UnlimitedDevices}
	assert.True(t, paid.HasRoomFor(10_000))
}

func TestSyncGroup_InfoOrdersDevicesByJoinTime(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	group := &SyncGroup{
		ID:             "g1",
		Plan:           PlanFree,
		DeviceLimit:    3,
		MasterDeviceID: "a",
		Devices: map[string]*DeviceMembership{
			"c": {DeviceID: "c", JoinedAt: base.Add(2 * time.Minute)},
			"a": {DeviceID: "a", JoinedAt: base},
			"b": {DeviceID: "b", JoinedAt: base.Add(time.Minute)},
		},
	}

	info := group.Info()
	assert.Equal(t, 3, info.DeviceCount)
	assert.Equal(t, "a", info.MasterDeviceID)
	if assert.Len(t, info.Devices, 3) {
		assert.Equal(t, "a", info.Devices[0].DeviceID)
		assert.Equal(t, "b", info.Devices[1].DeviceID)
		assert.Equal(t, "c", info.Devices[2].DeviceID)
	}
}

func TestDeviceMembership_Rejoin(t *testing.T) {
	t.Parallel()

	now := time.Now()
	m := &DeviceMembership{DeviceID: "a", DeviceName: "old", DeviceType: DeviceTypeDesktop, Status: MembershipStatusRemoved}
	m.Rejoin(DeviceIdentity{DeviceID: "a", DeviceName: "new"}, now)

	assert.True(t, m.IsActive())
	assert.Equal(t, "new", m.DeviceName)
	assert.Equal(t, DeviceTypeDesktop, m.DeviceType)
	if assert.NotNil(t, m.LastSyncedAt) {
		assert.True(t, m.LastSyncedAt.Equal(now))
	}
}

func TestSyncCursor_FollowNeverGoesBackInTime(t *testing.T) {
	t.Parallel()

	c := SyncCursor{DataType: DataTypeMessages, LastSyncTimestamp: 100}

	assert.True(t, c.Follow(Cursor{Timestamp: 110, RecordID: "b"}))
	assert.Equal(t, int64(110), c.LastSyncTimestamp)
	assert.Equal(t, "b", c.LastRecordID)

	assert.False(t, c.Follow(Cursor{Timestamp: 105, RecordID: "z"}))
	assert.Equal(t, int64(110), c.LastSyncTimestamp)
	assert.Equal(t, "b", c.LastRecordID)

	assert.False(t, c.Follow(Cursor{Timestamp: 110, RecordID: "b"}))
}

func TestSyncCursor_FollowTakesServerIDOrder(t *testing.T) {
	t.Parallel()

	// A case-insensitive store returns "a" before "B" at the same timestamp.
	c := SyncCursor{DataType: DataTypeMessages, LastSyncTimestamp: 100, LastRecordID: "a"}

	assert.True(t, c.Follow(Cursor{Timestamp: 100, RecordID: "B"}))
	assert.Equal(t, "B", c.LastRecordID)
}
