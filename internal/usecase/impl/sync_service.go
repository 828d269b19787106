package impl

import (
	"context"
	"log/slog"
	"time"

	"mirror/config"
	deliverycontext "mirror/internal/delivery/context"
	"mirror/internal/domain/entity"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/domain/repository"
	"mirror/internal/domain/service"
	"mirror/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// syncService implements the SyncUsecase interface.
type syncService struct {
	txManager  repository.TransactionManager
	groupRepo  repository.GroupRepository
	recordRepo repository.RecordRepository
	feed       service.ChangeFeed
	syncCfg    config.SyncConfig
	logger     *slog.Logger
}

// SyncServiceParams holds dependencies for SyncService, injected by Fx.
type SyncServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	GroupRepo  repository.GroupRepository
	RecordRepo repository.RecordRepository
	ChangeFeed service.ChangeFeed
	Config     *config.Config
	Logger     *slog.Logger
}

// NewSyncService is the constructor for syncService.
func NewSyncService(params SyncServiceParams) usecase.SyncUsecase {
	syncCfg := config.SyncConfig{PollPageSize: 50, MaxPageSize: 1000}
	if params.Config != nil && params.Config.Sync != nil {
		syncCfg = *params.Config.Sync
	}

	return &syncService{
		txManager:  params.TxManager,
		groupRepo:  params.GroupRepo,
		recordRepo: params.RecordRepo,
		feed:       params.ChangeFeed,
		syncCfg:    syncCfg,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *syncService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RequireMember fails unless the caller is still an active member of its group.
func (srv *syncService) RequireMember(ctx context.Context, caller usecase.DeviceCaller) error {
	return requireActiveMember(ctx, srv.groupRepo, caller)
}

func (srv *syncService) clampLimit(limit int) int {
	if limit <= 0 {
		return srv.syncCfg.PollPageSize
	}

	return min(limit, srv.syncCfg.MaxPageSize)
}

// Pull returns one page of records after the cursor.
func (srv *syncService) Pull(ctx context.Context, caller usecase.DeviceCaller, input usecase.PullInput) (*entity.PullResult, error) {
	if !input.DataType.IsValid() {
		return nil, domainerrors.ErrInvalidDataType.WithDetails(string(input.DataType))
	}
	if input.Cursor.Timestamp < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("since must not be negative")
	}
	if err := requireActiveMember(ctx, srv.groupRepo, caller); err != nil {
		return nil, err
	}

	limit := srv.clampLimit(input.Limit)

	// One extra row tells whether another page exists.
	records, err := srv.recordRepo.Pull(ctx, caller.GroupID, input.DataType, input.Cursor, limit+1)
	if err != nil {
		srv.log(ctx).Error("Failed to pull records",
			slog.String("data_type", string(input.DataType)),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to pull records")
	}

	hasMore := len(records) > limit
	if hasMore {
		records = records[:limit]
	}

	next := input.Cursor
	if len(records) > 0 {
		last := records[len(records)-1]
		next = entity.Cursor{Timestamp: last.Date, RecordID: last.ID}
	}

	if err := srv.groupRepo.TouchDevice(ctx, caller.GroupID, caller.DeviceID, time.Now().UTC()); err != nil {
		srv.log(ctx).Warn("Failed to record device sync time", slog.Any("error", err))
	}

	srv.log(ctx).Debug("Pulled records",
		slog.String("data_type", string(input.DataType)),
		slog.Int64("since", input.Cursor.Timestamp),
		slog.Int("count", len(records)),
		slog.Bool("has_more", hasMore),
	)

	return &entity.PullResult{
		Records:    records,
		NextCursor: next,
		HasMore:    hasMore,
	}, nil
}

// PutRecord validates and upserts a record, announcing the change after commit.
func (srv *syncService) PutRecord(ctx context.Context, caller usecase.DeviceCaller, dataType entity.DataType, record entity.RawRecord) (entity.DeltaKind, error) {
	if !dataType.IsValid() {
		return "", domainerrors.ErrInvalidDataType.WithDetails(string(dataType))
	}
	if err := entity.ValidateRawRecord(dataType, record); err != nil {
		return "", domainerrors.ErrInvalidPayload.WithDetails(err.Error())
	}
	if err := requireActiveMember(ctx, srv.groupRepo, caller); err != nil {
		return "", err
	}

	var inserted bool

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error

		inserted, err = repoFactory.RecordRepo().Upsert(ctx, caller.GroupID, dataType, record)
		if err != nil {
			return errors.Wrap(err, "failed to upsert record")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to store record",
			slog.String("data_type", string(dataType)),
			slog.String("record_id", record.ID),
			slog.Any("error", err),
		)

		return "", errors.Wrap(err, "failed to store record")
	}

	kind := entity.DeltaChanged
	if inserted {
		kind = entity.DeltaAdded
	}

	stored := record
	srv.announce(ctx, &entity.ChangeNotification{
		GroupID:        caller.GroupID,
		DataType:       dataType,
		Kind:           kind,
		Record:         &stored,
		RecordID:       record.ID,
		SourceDeviceID: caller.DeviceID,
	})

	return kind, nil
}

// DeleteRecord removes a record, announcing the removal after commit.
func (srv *syncService) DeleteRecord(ctx context.Context, caller usecase.DeviceCaller, dataType entity.DataType, recordID string) error {
	if !dataType.IsValid() {
		return domainerrors.ErrInvalidDataType.WithDetails(string(dataType))
	}
	if recordID == "" {
		return domainerrors.ErrValidationFailed.WithDetails("record id is required")
	}
	if err := requireActiveMember(ctx, srv.groupRepo, caller); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.RecordRepo().Delete(ctx, caller.GroupID, dataType, recordID); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return domainerrors.ErrRecordNotFound
			}

			return errors.Wrap(err, "failed to delete record")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete record")
	}

	srv.announce(ctx, &entity.ChangeNotification{
		GroupID:        caller.GroupID,
		DataType:       dataType,
		Kind:           entity.DeltaRemoved,
		RecordID:       recordID,
		SourceDeviceID: caller.DeviceID,
	})

	return nil
}

// announce publishes a committed change. A failed publish is logged only;
// devices recover the change on their next poll.
func (srv *syncService) announce(ctx context.Context, notification *entity.ChangeNotification) {
	notification.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	notification.CommittedAt = time.Now().UTC()

	if err := srv.feed.Publish(ctx, notification); err != nil {
		srv.log(ctx).Warn("Failed to publish change notification",
			slog.String("channel", notification.Channel().String()),
			slog.String("kind", string(notification.Kind)),
			slog.Any("error", err),
		)
	}
}
