// Package entity contains the core business objects of the project.
package entity

import (
	"time"
)

// DeviceType represents the kind of client a device is.
type DeviceType string

const (
	// DeviceTypePhone is the phone that owns the mirrored data.
	DeviceTypePhone DeviceType = "phone"
	// DeviceTypeDesktop is a desktop client.
	DeviceTypeDesktop DeviceType = "desktop"
	// DeviceTypeWeb is a browser client.
	DeviceTypeWeb DeviceType = "web"
)

// String returns the string representation of the DeviceType.
func (t DeviceType) String() string {
	return string(t)
}

// IsValid checks if the DeviceType is a valid value.
func (t DeviceType) IsValid() bool {
	switch t {
	case DeviceTypePhone, DeviceTypeDesktop, DeviceTypeWeb:
		return true
	default:
		return false
	}
}

// MembershipStatus represents a device's standing inside a group.
type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "active"
	MembershipStatusRemoved MembershipStatus = "removed"
)

// DeviceIdentity is what a device asserts about itself when pairing.
type DeviceIdentity struct {
	DeviceID   string     `json:"device_id"`   // Stable per physical device.
	DeviceType DeviceType `json:"device_type"` // phone, desktop or web.
	DeviceName string     `json:"device_name"` // User-facing label.
}

// DeviceMembership is one device's row inside a sync group.
type DeviceMembership struct {
	GroupID      string           `json:"group_id"`       // The group this membership belongs to.
	DeviceID     string           `json:"device_id"`      // Stable per physical device.
	DeviceType   DeviceType       `json:"device_type"`    // phone, desktop or web.
	DeviceName   string           `json:"device_name"`    // User-facing label.
	Status       MembershipStatus `json:"status"`         // active or removed.
	PushToken    string           `json:"-"`              // Optional FCM token for wake pushes.
	JoinedAt     time.Time        `json:"joined_at"`      // First time the device joined the group.
	LastSyncedAt *time.Time       `json:"last_synced_at"` // Last successful pull or rejoin, nil if never.
}

// NewDeviceMembership creates an active membership for the given identity.
func NewDeviceMembership(groupID string, identity DeviceIdentity, now time.Time) *DeviceMembership {
	return &DeviceMembership{
		GroupID:    groupID,
		DeviceID:   identity.DeviceID,
		DeviceType: identity.DeviceType,
		DeviceName: identity.DeviceName,
		Status:     MembershipStatusActive,
		JoinedAt:   now,
	}
}

// Rejoin refreshes an existing membership in place.
func (m *DeviceMembership) Rejoin(identity DeviceIdentity, now time.Time) {
	m.Status = MembershipStatusActive
	m.DeviceName = identity.DeviceName
	if identity.DeviceType.IsValid() {
		m.DeviceType = identity.DeviceType
	}
	m.LastSyncedAt = &now
}

// IsActive reports whether the membership may read and write group data.
func (m *DeviceMembership) IsActive() bool {
	return m != nil && m.Status == MembershipStatusActive
}
