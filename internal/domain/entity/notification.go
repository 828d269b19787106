package entity

import (
	"time"
)

// KindDeviceRemoved marks a notification announcing that RemovedDeviceID left
// the group. It carries no record and no data type.
const KindDeviceRemoved DeltaKind = "device_removed"

// ChangeNotification announces that one row of one group changed. It is
// published only after the mutation committed.
type ChangeNotification struct {
	RequestID      string     `json:"request_id,omitempty"` // For distributed tracing.
	GroupID        string     `json:"group_id"`
	DataType       DataType   `json:"data_type"`
	Kind           DeltaKind  `json:"kind"`
	Record         *RawRecord `json:"record,omitempty"`
	RecordID       string     `json:"record_id"`
	SourceDeviceID string     `json:"source_device_id"` // Device that made the change, skipped on fan-out.
	CommittedAt    time.Time  `json:"committed_at"`

	RemovedDeviceID string `json:"removed_device_id,omitempty"`
}

// NewDeviceRemovedNotification announces that deviceID no longer belongs to groupID.
func NewDeviceRemovedNotification(groupID, deviceID string) *ChangeNotification {
	return &ChangeNotification{GroupID: groupID, Kind: KindDeviceRemoved, RemovedDeviceID: deviceID}
}

// IsDeviceRemoval reports whether the notification is a membership removal rather than a record change.
func (n *ChangeNotification) IsDeviceRemoval() bool {
	return n.Kind == KindDeviceRemoved
}

// Channel returns the fan-out scope of the notification.
func (n *ChangeNotification) Channel() Channel {
	return Channel{GroupID: n.GroupID, DataType: n.DataType}
}

// Delta returns the wire delta carried to subscribed connections.
func (n *ChangeNotification) Delta() RawDelta {
	return RawDelta{Kind: n.Kind, Record: n.Record, RecordID: n.RecordID}
}

// Channel is a (group, data type) pair scoping push fan-out.
type Channel struct {
	GroupID  string
	DataType DataType
}

// String returns a stable channel key.
func (c Channel) String() string {
	return c.GroupID + ":" + string(c.DataType)
}
