// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"mirror/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for group persistence.
var (
	// ErrGroupNotFound is returned when a group is not found.
	ErrGroupNotFound = errors.New("sync group not found")
	// ErrDuplicateGroup is returned when trying to create a group that already exists.
	ErrDuplicateGroup = errors.New("sync group already exists")
	// ErrDeviceNotFound is returned when a device membership is not found.
	ErrDeviceNotFound = errors.New("device membership not found")
	// ErrDuplicateDevice is returned when inserting a membership that already exists.
	ErrDuplicateDevice = errors.New("device membership already exists")
)

// PushTarget is a member device that can receive wake pushes.
type PushTarget struct {
	DeviceID  string
	PushToken string
}

// GroupRepository defines the interface for sync group, membership and history persistence.
type GroupRepository interface {
	// CreateGroup persists a new group without devices.
	CreateGroup(ctx context.Context, group *entity.SyncGroup) error

	// LockGroup reads the group row under a write lock held until the surrounding transaction ends.
	// It must be called inside TransactionManager.Execute.
	LockGroup(ctx context.Context, groupID string) (*entity.SyncGroup, error)

	// FindGroup retrieves a group with all of its devices.
	FindGroup(ctx context.Context, groupID string) (*entity.SyncGroup, error)

	// ListDevices returns the group's devices keyed by device ID.
	ListDevices(ctx context.Context, groupID string) (map[string]*entity.DeviceMembership, error)

	// FindDevice retrieves one membership.
	FindDevice(ctx context.Context, groupID, deviceID string) (*entity.DeviceMembership, error)

	// InsertDevice adds a new membership.
	InsertDevice(ctx context.Context, membership *entity.DeviceMembership) error

	// UpdateDevice updates status, name, type and lastSyncedAt of an existing membership.
	UpdateDevice(ctx context.Context, membership *entity.DeviceMembership) error

	// DeleteDevice removes a membership. Returns ErrDeviceNotFound if absent.
	DeleteDevice(ctx context.Context, groupID, deviceID string) error

	// AppendHistory appends a membership fact.
	AppendHistory(ctx context.Context, event *entity.HistoryEvent) error

	// ListHistory returns the group's history in timestamp order.
	ListHistory(ctx context.Context, groupID string) ([]*entity.HistoryEvent, error)

	// FindGroupIDByDevice resolves the group a device belongs to through the device index.
	// When the device belongs to several groups, the most recently joined one wins.
	FindGroupIDByDevice(ctx context.Context, deviceID string) (string, error)

	// UpdatePlan changes a group's plan and device limit.
	UpdatePlan(ctx context.Context, groupID string, plan entity.Plan, deviceLimit int) error

	// TouchDevice records a successful sync for a device.
	TouchDevice(ctx context.Context, groupID, deviceID string, at time.Time) error

	// SetPushToken stores the device's wake push token.
	SetPushToken(ctx context.Context, groupID, deviceID, token string) error

	// ClearPushTokens removes the given tokens wherever they are stored.
	ClearPushTokens(ctx context.Context, tokens []string) error

	// FindPushTargets lists active members of the group with push tokens, excluding one device.
	FindPushTargets(ctx context.Context, groupID, excludeDeviceID string) ([]PushTarget, error)
}
