// Package dto holds the request and response bodies of the sync API.
// Device clients encode and decode the same types.
package dto

import (
	"mirror/internal/domain/entity"
)

// DeviceRequest identifies the calling device when pairing.
type DeviceRequest struct {
	DeviceID   string            `json:"device_id" validate:"required,max=128"`
	DeviceType entity.DeviceType `json:"device_type" validate:"required,oneof=phone desktop web"`
	DeviceName string            `json:"device_name" validate:"required,max=128"`
}

// Identity converts the request to a domain identity.
func (r DeviceRequest) Identity() entity.DeviceIdentity {
	return entity.DeviceIdentity{DeviceID: r.DeviceID, DeviceType: r.DeviceType, DeviceName: r.DeviceName}
}

// RecoverRequest asks for the group of a device that lost its local state.
type RecoverRequest struct {
	DeviceID string `json:"device_id" validate:"required,max=128"`
}

// LeaveRequest removes a device; an empty DeviceID removes the caller.
type LeaveRequest struct {
	DeviceID string `json:"device_id" validate:"omitempty,max=128"`
}

// UpdatePlanRequest changes the group's plan.
type UpdatePlanRequest struct {
	Plan entity.Plan `json:"plan" validate:"required,oneof=free paid"`
}

// PushTokenRequest registers an FCM token for wake pushes.
type PushTokenRequest struct {
	Token string `json:"token" validate:"required,max=4096"`
}

// PairingResponse is returned by create, join and recover.
type PairingResponse struct {
	GroupID     string            `json:"group_id"`
	Token       string            `json:"token"`
	DeviceCount int               `json:"device_count"`
	DeviceLimit int               `json:"device_limit"`
	Rejoined    bool              `json:"rejoined"`
	Group       *entity.GroupInfo `json:"group"`
}

// PullResponse is one page of a pull.
type PullResponse struct {
	DataType   entity.DataType    `json:"data_type"`
	Records    []entity.RawRecord `json:"records"`
	NextCursor entity.Cursor      `json:"next_cursor"`
	HasMore    bool               `json:"has_more"`
}

// PutRecordResponse reports whether the record was added or changed.
type PutRecordResponse struct {
	Kind entity.DeltaKind `json:"kind"`
}

// Query parameters of the pull endpoint
const (
	QuerySince   = "since"
	QueryAfterID = "after_id"
	QueryLimit   = "limit"
)
