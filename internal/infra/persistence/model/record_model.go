package model

import (
	"time"

	"gorm.io/datatypes"
)

// RecordModel is the GORM-specific struct for the 'sync_records' table.
// Pulls scan idx_sync_records_cursor in (date, id) order; id uses byte order.
type RecordModel struct {
	GroupID   string         `gorm:"type:varchar(64);primaryKey;index:idx_sync_records_cursor,priority:1"`
	DataType  string         `gorm:"type:varchar(16);primaryKey;index:idx_sync_records_cursor,priority:2"`
	ID        string         `gorm:"type:varchar(255) COLLATE \"C\";primaryKey;index:idx_sync_records_cursor,priority:4"`
	Date      int64          `gorm:"not null;index:idx_sync_records_cursor,priority:3"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RecordModel) TableName() string {
	return "sync_records"
}
