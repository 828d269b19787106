package entity

import (
	"cmp"
	"slices"
	"time"
)

// Plan represents a group's subscription plan.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPaid Plan = "paid"
)

// IsValid checks if the Plan is a valid value.
func (p Plan) IsValid() bool {
	return p == PlanFree || p == PlanPaid
}

// UnlimitedDevices marks a group without a device ceiling.
const UnlimitedDevices = 0

// SyncGroup is one account's shared state across its devices.
type SyncGroup struct {
	ID             string                       `json:"group_id"`         // Globally unique, opaque.
	Plan           Plan                         `json:"plan"`             // free or paid.
	DeviceLimit    int                          `json:"device_limit"`     // Derived from plan, 0 means unbounded.
	MasterDeviceID string                       `json:"master_device_id"` // The device that created the group.
	CreatedAt      time.Time                    `json:"created_at"`
	UpdatedAt      time.Time                    `json:"updated_at"`
	Devices        map[string]*DeviceMembership `json:"-"` // Keyed by device ID.
}

// DeviceCount returns the number of member devices.
func (g *SyncGroup) DeviceCount() int {
	return len(g.Devices)
}

// HasRoomFor reports whether a group holding current devices can accept one more.
func (g *SyncGroup) HasRoomFor(current int) bool {
	return g.DeviceLimit == UnlimitedDevices || current < g.DeviceLimit
}

// SortedDevices returns the member devices ordered by join time.
func (g *SyncGroup) SortedDevices() []*DeviceMembership {
	devices := make([]*DeviceMembership, 0, len(g.Devices))
	for _, device := range g.Devices {
		devices = append(devices, device)
	}

	slices.SortFunc(devices, func(a, b *DeviceMembership) int {
		if c := a.JoinedAt.Compare(b.JoinedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.DeviceID, b.DeviceID)
	})

	return devices
}

// GroupInfo is the read-only projection of a group shown to devices.
type GroupInfo struct {
	GroupID        string              `json:"group_id"`
	Plan           Plan                `json:"plan"`
	DeviceLimit    int                 `json:"device_limit"`
	DeviceCount    int                 `json:"device_count"`
	MasterDeviceID string              `json:"master_device_id"`
	Devices        []*DeviceMembership `json:"devices"`
}

// Info projects the group for display.
func (g *SyncGroup) Info() *GroupInfo {
	return &GroupInfo{
		GroupID:        g.ID,
		Plan:           g.Plan,
		DeviceLimit:    g.DeviceLimit,
		DeviceCount:    g.DeviceCount(),
		MasterDeviceID: g.MasterDeviceID,
		Devices:        g.SortedDevices(),
	}
}
