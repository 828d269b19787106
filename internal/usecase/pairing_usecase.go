// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"mirror/internal/domain/entity"
)

// --- Input DTOs ---

// DeviceCaller identifies the authenticated device making a request.
type DeviceCaller struct {
	GroupID  string
	DeviceID string
}

// --- Output DTOs ---

// PairingOutput is returned by create, join and recover.
type PairingOutput struct {
	GroupID     string
	Token       string // Device access token bound to GroupID.
	DeviceCount int
	DeviceLimit int
	Rejoined    bool // True when the device was already a member.
	Info        *entity.GroupInfo
}

// PairingUsecase defines group creation, membership and recovery.
type PairingUsecase interface {
	// CreateGroup creates a free group with the calling device as master.
	CreateGroup(ctx context.Context, identity entity.DeviceIdentity) (*PairingOutput, error)

	// JoinGroup adds the device to an existing group, enforcing the plan's device limit.
	// A device that is already a member rejoins without counting against the limit.
	JoinGroup(ctx context.Context, groupID string, identity entity.DeviceIdentity) (*PairingOutput, error)

	// RecoverGroup finds the group a device belongs to after it lost local state.
	RecoverGroup(ctx context.Context, deviceID string) (*PairingOutput, error)

	// LeaveGroup removes deviceID from the caller's group. Removing an absent device succeeds.
	LeaveGroup(ctx context.Context, caller DeviceCaller, deviceID string) error

	// GetGroupInfo returns the read-only projection of the caller's group.
	GetGroupInfo(ctx context.Context, caller DeviceCaller) (*entity.GroupInfo, error)

	// UpdatePlan changes the group's plan. Only the master device may do this.
	UpdatePlan(ctx context.Context, caller DeviceCaller, plan entity.Plan) (*entity.GroupInfo, error)

	// PairingQR renders a QR code other devices scan to join the caller's group.
	PairingQR(ctx context.Context, caller DeviceCaller) ([]byte, error)

	// RegisterPushToken stores the caller's wake push token.
	RegisterPushToken(ctx context.Context, caller DeviceCaller, token string) error

	// GroupHistory lists the membership history of the caller's group.
	GroupHistory(ctx context.Context, caller DeviceCaller) ([]*entity.HistoryEvent, error)
}
