package usecase

import (
	"context"

	"mirror/internal/domain/entity"
)

// PullInput defines one page request of the delta sync pull.
type PullInput struct {
	DataType entity.DataType
	Cursor   entity.Cursor
	Limit    int
}

// SyncUsecase defines the server side of delta sync.
type SyncUsecase interface {
	// Pull returns records after the cursor in (date, id) order for the caller's group.
	Pull(ctx context.Context, caller DeviceCaller, input PullInput) (*entity.PullResult, error)

	// PutRecord validates and upserts a record, then announces the change.
	PutRecord(ctx context.Context, caller DeviceCaller, dataType entity.DataType, record entity.RawRecord) (entity.DeltaKind, error)

	// DeleteRecord removes a record, then announces the removal.
	DeleteRecord(ctx context.Context, caller DeviceCaller, dataType entity.DataType, recordID string) error

	// RequireMember fails with ErrDeviceNotMember unless the caller is still an active member of its group.
	RequireMember(ctx context.Context, caller DeviceCaller) error
}
