package repository

import (
	"context"

	"mirror/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrRecordNotFound is returned when a record is not found.
var ErrRecordNotFound = errors.New("record not found")

// RecordRepository defines persistence for synchronized records.
type RecordRepository interface {
	// Upsert inserts or replaces a record by (group, data type, id).
	// inserted reports whether the record did not exist before.
	Upsert(ctx context.Context, groupID string, dataType entity.DataType, record entity.RawRecord) (inserted bool, err error)

	// Delete removes a record. Returns ErrRecordNotFound if absent.
	Delete(ctx context.Context, groupID string, dataType entity.DataType, recordID string) error

	// Pull returns up to limit records strictly after cursor in (date, id) order.
	// An empty cursor.RecordID selects date > cursor.Timestamp.
	Pull(ctx context.Context, groupID string, dataType entity.DataType, cursor entity.Cursor, limit int) ([]entity.RawRecord, error)
}
