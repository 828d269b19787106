package model

import (
	"time"

	"github.com/google/uuid"
)

// SyncGroupModel is the GORM-specific struct for the 'sync_groups' table.
type SyncGroupModel struct {
	ID             string `gorm:"type:varchar(64);primaryKey"`
	Plan           string `gorm:"type:varchar(16);not null;default:free"`
	DeviceLimit    int    `gorm:"not null"`
	MasterDeviceID string `gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (SyncGroupModel) TableName() string {
	return "sync_groups"
}

// DeviceMembershipModel is the GORM-specific struct for the 'sync_group_devices' table.
// The device_id index serves group recovery.
type DeviceMembershipModel struct {
	GroupID      string    `gorm:"type:varchar(64);primaryKey"`
	DeviceID     string    `gorm:"type:varchar(255);primaryKey;index:idx_sync_group_devices_device_id"`
	DeviceType   string    `gorm:"type:varchar(16);not null"`
	DeviceName   string    `gorm:"type:varchar(255);not null"`
	Status       string    `gorm:"type:varchar(16);not null;default:active"`
	PushToken    string    `gorm:"type:varchar(255);not null;default:'';index"`
	JoinedAt     time.Time `gorm:"not null"`
	LastSyncedAt *time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (DeviceMembershipModel) TableName() string {
	return "sync_group_devices"
}

// GroupHistoryModel is the GORM-specific struct for the append-only 'sync_group_history' table.
type GroupHistoryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupID    string    `gorm:"type:varchar(64);not null;index"`
	Action     string    `gorm:"type:varchar(32);not null"`
	DeviceID   string    `gorm:"type:varchar(255);not null"`
	DeviceType string    `gorm:"type:varchar(16);not null"`
	DeviceName string    `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (GroupHistoryModel) TableName() string {
	return "sync_group_history"
}
