package entity

import (
	"cmp"
	"time"
)

// Cursor is a position in (date, id) order. An empty RecordID means
// "everything strictly after Timestamp".
type Cursor struct {
	Timestamp int64  `json:"timestamp"`
	RecordID  string `json:"record_id,omitempty"`
}

// IsZero reports whether c is the start of the data type.
func (c Cursor) IsZero() bool {
	return c.Timestamp == 0 && c.RecordID == ""
}

// Compare orders cursors by timestamp, then record id in byte order. The server
// store orders ids the same way; use Follow, not Compare, to move a device cursor.
func (c Cursor) Compare(other Cursor) int {
	if n := cmp.Compare(c.Timestamp, other.Timestamp); n != 0 {
		return n
	}

	return cmp.Compare(c.RecordID, other.RecordID)
}

// SyncCursor is one device's bookkeeping for one data type.
type SyncCursor struct {
	DataType          DataType   `json:"data_type"`
	LastSyncTimestamp int64      `json:"last_sync_timestamp"` // Watermark of the newest record observed.
	LastRecordID      string     `json:"last_record_id"`      // Tie-breaker within LastSyncTimestamp.
	CachedCount       int        `json:"cached_count"`
	LastSyncedAt      *time.Time `json:"last_synced_at"` // Wall-clock time of the last persisted batch.
}

// Position returns the pull cursor for this bookkeeping row.
func (s SyncCursor) Position() Cursor {
	return Cursor{Timestamp: s.LastSyncTimestamp, RecordID: s.LastRecordID}
}

// Follow adopts c as the pull position. Within one timestamp the server decides
// the id order, so c is taken as is; a c with an earlier timestamp is ignored.
// It reports whether the position changed.
func (s *SyncCursor) Follow(c Cursor) bool {
	if c.Timestamp < s.LastSyncTimestamp || c == s.Position() {
		return false
	}
	s.LastSyncTimestamp = c.Timestamp
	s.LastRecordID = c.RecordID

	return true
}

// PullResult is one page returned by a pull.
type PullResult struct {
	Records    []RawRecord `json:"records"`
	NextCursor Cursor      `json:"next_cursor"`
	HasMore    bool        `json:"has_more"`
}
