package entity

import (
	"time"

	"github.com/google/uuid"
)

// HistoryAction is the kind of membership fact recorded in a group's history.
type HistoryAction string

const (
	HistoryActionDeviceJoined   HistoryAction = "device_joined"
	HistoryActionDeviceRejoined HistoryAction = "device_rejoined"
	HistoryActionDeviceRemoved  HistoryAction = "device_removed"
)

// HistoryEvent is an immutable, append-only membership fact.
type HistoryEvent struct {
	ID         uuid.UUID     `json:"id"`
	GroupID    string        `json:"group_id"`
	Action     HistoryAction `json:"action"`
	DeviceID   string        `json:"device_id"`
	DeviceType DeviceType    `json:"device_type"`
	DeviceName string        `json:"device_name"`
	Timestamp  time.Time     `json:"timestamp"`
}

// NewHistoryEvent records action for the given membership.
func NewHistoryEvent(action HistoryAction, membership *DeviceMembership, now time.Time) *HistoryEvent {
	return &HistoryEvent{
		ID:         uuid.New(),
		GroupID:    membership.GroupID,
		Action:     action,
		DeviceID:   membership.DeviceID,
		DeviceType: membership.DeviceType,
		DeviceName: membership.DeviceName,
		Timestamp:  now,
	}
}
