// Package store persists a device's sync state: its identity, its group
// membership, and per data type cursors and record caches.
package store

import (
	"context"
	"time"

	"mirror/internal/domain/entity"
	"mirror/internal/errors"
)

// ErrNoMembership is returned when the device has not joined a group.
var ErrNoMembership = errors.New("device has no group membership")

// Membership is the device's local record of the group it belongs to.
type Membership struct {
	GroupID    string            `json:"group_id"`
	Token      string            `json:"token"`
	DeviceName string            `json:"device_name"`
	DeviceType entity.DeviceType `json:"device_type"`
	JoinedAt   time.Time         `json:"joined_at"`
}

// Store is the device-local persistence used by the sync client.
// Implementations are safe for concurrent use.
type Store interface {
	// DeviceID returns the persisted device id, or "" when none was saved yet.
	DeviceID(ctx context.Context) (string, error)
	SaveDeviceID(ctx context.Context, deviceID string) error

	// Membership returns ErrNoMembership when the device is not paired.
	Membership(ctx context.Context) (*Membership, error)
	SaveMembership(ctx context.Context, membership Membership) error
	// ClearMembership forgets the group along with every cursor and cache.
	ClearMembership(ctx context.Context) error

	// LoadCursor returns a zero cursor for data types never synced.
	LoadCursor(ctx context.Context, dataType entity.DataType) (entity.SyncCursor, error)
	// LoadCache returns cached records ordered by (date, id).
	LoadCache(ctx context.Context, dataType entity.DataType) ([]entity.RawRecord, error)
	// SaveSnapshot replaces the cache of cursor.DataType with records and stores
	// the cursor, atomically.
	SaveSnapshot(ctx context.Context, cursor entity.SyncCursor, records []entity.RawRecord) error
	// ClearDataType drops the cursor and cache of one data type.
	ClearDataType(ctx context.Context, dataType entity.DataType) error

	Close() error
}
