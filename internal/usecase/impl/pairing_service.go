// Package impl contains the implementation of the application's business logic.
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

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// pairingService implements the PairingUsecase interface.
type pairingService struct {
	txManager    repository.TransactionManager
	groupRepo    repository.GroupRepository
	tokenService service.TokenService
	qrService    service.QRCodeService
	feed         service.ChangeFeed
	plans        config.PlansConfig
	logger       *slog.Logger
}

// PairingServiceParams holds dependencies for PairingService, injected by Fx.
type PairingServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	GroupRepo     repository.GroupRepository
	TokenService  service.TokenService
	QRCodeService service.QRCodeService
	ChangeFeed    service.ChangeFeed
	Config        *config.Config
	Logger        *slog.Logger
}

// NewPairingService is the constructor for pairingService.
func NewPairingService(params PairingServiceParams) usecase.PairingUsecase {
	plans := config.PlansConfig{FreeDeviceLimit: 3}
	if params.Config != nil && params.Config.Plans != nil {
		plans = *params.Config.Plans
	}

	return &pairingService{
		txManager:    params.TxManager,
		groupRepo:    params.GroupRepo,
		tokenService: params.TokenService,
		qrService:    params.QRCodeService,
		feed:         params.ChangeFeed,
		plans:        plans,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *pairingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// deviceLimit maps a plan to its device ceiling.
func (srv *pairingService) deviceLimit(plan entity.Plan) int {
	if plan == entity.PlanPaid {
		return srv.plans.PaidDeviceLimit
	}

	return srv.plans.FreeDeviceLimit
}

func validateIdentity(identity entity.DeviceIdentity) error {
	switch {
	case identity.DeviceID == "":
		return domainerrors.ErrValidationFailed.WithDetails("device_id is required")
	case !identity.DeviceType.IsValid():
		return domainerrors.ErrValidationFailed.WithDetails("device_type must be phone, desktop or web")
	case identity.DeviceName == "":
		return domainerrors.ErrValidationFailed.WithDetails("device_name is required")
	}

	return nil
}

// CreateGroup creates a free group with the calling device as master.
func (srv *pairingService) CreateGroup(ctx context.Context, identity entity.DeviceIdentity) (*usecase.PairingOutput, error) {
	if err := validateIdentity(identity); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	group := &entity.SyncGroup{
		ID:             uuid.New().String(),
		Plan:           entity.PlanFree,
		DeviceLimit:    srv.deviceLimit(entity.PlanFree),
		MasterDeviceID: identity.DeviceID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	membership := entity.NewDeviceMembership(group.ID, identity, now)

	srv.log(ctx).Info("Creating sync group",
		slog.String("group_id", group.ID),
		slog.String("device_id", identity.DeviceID),
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		groupRepo := repoFactory.GroupRepo()

		if err := groupRepo.CreateGroup(ctx, group); err != nil {
			return errors.Wrap(err, "failed to create group")
		}
		if err := groupRepo.InsertDevice(ctx, membership); err != nil {
			return errors.Wrap(err, "failed to register master device")
		}
		if err := groupRepo.AppendHistory(ctx, entity.NewHistoryEvent(entity.HistoryActionDeviceJoined, membership, now)); err != nil {
			return errors.Wrap(err, "failed to append history")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create sync group", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create sync group")
	}

	group.Devices = map[string]*entity.DeviceMembership{membership.DeviceID: membership}

	return srv.pairingOutput(group, identity, false)
}

// JoinGroup adds the device to an existing group under the group's row lock.
func (srv *pairingService) JoinGroup(ctx context.Context, groupID string, identity entity.DeviceIdentity) (*usecase.PairingOutput, error) {
	if err := validateIdentity(identity); err != nil {
		return nil, err
	}
	if groupID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("group_id is required")
	}

	var (
		group    *entity.SyncGroup
		rejoined bool
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		groupRepo := repoFactory.GroupRepo()
		now := time.Now().UTC()

		// 1. Load and lock the group
		locked, err := groupRepo.LockGroup(ctx, groupID)
		if err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return domainerrors.ErrGroupNotFound
			}

			return errors.Wrap(err, "failed to lock group")
		}

		// 2. One snapshot serves both the rejoin check and the limit check
		devices, err := groupRepo.ListDevices(ctx, groupID)
		if err != nil {
			return errors.Wrap(err, "failed to list group devices")
		}
		locked.Devices = devices
		group = locked

		if existing, ok := devices[identity.DeviceID]; ok {
			existing.Rejoin(identity, now)
			if err := groupRepo.UpdateDevice(ctx, existing); err != nil {
				return errors.Wrap(err, "failed to rejoin device")
			}
			if err := groupRepo.AppendHistory(ctx, entity.NewHistoryEvent(entity.HistoryActionDeviceRejoined, existing, now)); err != nil {
				return errors.Wrap(err, "failed to append history")
			}
			rejoined = true

			return nil
		}

		// 3. Enforce the plan's device limit
		current := len(devices)
		if !group.HasRoomFor(current) {
			return domainerrors.NewDeviceLimitReachedError(current, group.DeviceLimit)
		}

		// 4. Insert the new membership
		membership := entity.NewDeviceMembership(groupID, identity, now)
		if err := groupRepo.InsertDevice(ctx, membership); err != nil {
			return errors.Wrap(err, "failed to insert device")
		}
		if err := groupRepo.AppendHistory(ctx, entity.NewHistoryEvent(entity.HistoryActionDeviceJoined, membership, now)); err != nil {
			return errors.Wrap(err, "failed to append history")
		}
		group.Devices[membership.DeviceID] = membership

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to join sync group",
			slog.String("group_id", groupID),
			slog.String("device_id", identity.DeviceID),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to join sync group")
	}

	srv.log(ctx).Info("Device joined sync group",
		slog.String("group_id", groupID),
		slog.String("device_id", identity.DeviceID),
		slog.Bool("rejoined", rejoined),
		slog.Int("device_count", group.DeviceCount()),
	)

	return srv.pairingOutput(group, identity, rejoined)
}

// RecoverGroup resolves the device's group through the device index.
func (srv *pairingService) RecoverGroup(ctx context.Context, deviceID string) (*usecase.PairingOutput, error) {
	if deviceID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("device_id is required")
	}

	groupID, err := srv.groupRepo.FindGroupIDByDevice(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, domainerrors.ErrNoGroupFound
		}

		return nil, errors.Wrap(err, "failed to look up device group")
	}

	group, err := srv.groupRepo.FindGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, domainerrors.ErrNoGroupFound
		}

		return nil, errors.Wrap(err, "failed to load recovered group")
	}

	membership, ok := group.Devices[deviceID]
	if !ok {
		// Removed between the index lookup and the group read.
		return nil, domainerrors.ErrNoGroupFound
	}

	srv.log(ctx).Info("Recovered sync group",
		slog.String("group_id", groupID),
		slog.String("device_id", deviceID),
	)

	identity := entity.DeviceIdentity{
		DeviceID:   membership.DeviceID,
		DeviceType: membership.DeviceType,
		DeviceName: membership.DeviceName,
	}

	return srv.pairingOutput(group, identity, true)
}

// LeaveGroup removes a device. A device may remove itself; the master may remove any device.
func (srv *pairingService) LeaveGroup(ctx context.Context, caller usecase.DeviceCaller, deviceID string) error {
	if deviceID == "" {
		deviceID = caller.DeviceID
	}

	removed := false

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		groupRepo := repoFactory.GroupRepo()

		group, err := groupRepo.LockGroup(ctx, caller.GroupID)
		if err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return domainerrors.ErrGroupNotFound
			}

			return errors.Wrap(err, "failed to lock group")
		}

		if deviceID != caller.DeviceID && group.MasterDeviceID != caller.DeviceID {
			return domainerrors.ErrNotMasterDevice
		}

		membership, err := groupRepo.FindDevice(ctx, caller.GroupID, deviceID)
		if err != nil {
			if errors.Is(err, repository.ErrDeviceNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find device")
		}

		if err := groupRepo.DeleteDevice(ctx, caller.GroupID, deviceID); err != nil {
			if errors.Is(err, repository.ErrDeviceNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to delete device")
		}
		if err := groupRepo.AppendHistory(ctx, entity.NewHistoryEvent(entity.HistoryActionDeviceRemoved, membership, time.Now().UTC())); err != nil {
			return errors.Wrap(err, "failed to append history")
		}
		removed = true

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to leave sync group",
			slog.String("group_id", caller.GroupID),
			slog.String("device_id", deviceID),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "failed to leave sync group")
	}

	srv.log(ctx).Info("Device left sync group",
		slog.String("group_id", caller.GroupID),
		slog.String("device_id", deviceID),
		slog.Bool("removed", removed),
	)

	if removed {
		srv.announceRemoval(ctx, caller.GroupID, deviceID)
	}

	return nil
}

// announceRemoval tells every bus node to drop the removed device's connections.
// A failed publish is logged only; the device is refused on its next request anyway.
func (srv *pairingService) announceRemoval(ctx context.Context, groupID, deviceID string) {
	notification := entity.NewDeviceRemovedNotification(groupID, deviceID)
	notification.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	notification.CommittedAt = time.Now().UTC()

	if err := srv.feed.Publish(ctx, notification); err != nil {
		srv.log(ctx).Warn("Failed to publish device removal",
			slog.String("group_id", groupID),
			slog.String("device_id", deviceID),
			slog.Any("error", err),
		)
	}
}

// GetGroupInfo returns the read-only projection of the caller's group.
func (srv *pairingService) GetGroupInfo(ctx context.Context, caller usecase.DeviceCaller) (*entity.GroupInfo, error) {
	if err := requireActiveMember(ctx, srv.groupRepo, caller); err != nil {
		return nil, err
	}

	group, err := srv.groupRepo.FindGroup(ctx, caller.GroupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, domainerrors.ErrGroupNotFound
		}

		return nil, errors.Wrap(err, "failed to find group")
	}

	return group.Info(), nil
}

// UpdatePlan changes the group's plan and recomputes its device limit.
// A downgrade is refused while the group holds more devices than the new limit.
func (srv *pairingService) UpdatePlan(ctx context.Context, caller usecase.DeviceCaller, plan entity.Plan) (*entity.GroupInfo, error) {
	if !plan.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("plan must be free or paid")
	}

	var group *entity.SyncGroup

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		groupRepo := repoFactory.GroupRepo()

		locked, err := groupRepo.LockGroup(ctx, caller.GroupID)
		if err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return domainerrors.ErrGroupNotFound
			}

			return errors.Wrap(err, "failed to lock group")
		}
		if locked.MasterDeviceID != caller.DeviceID {
			return domainerrors.ErrNotMasterDevice
		}

		devices, err := groupRepo.ListDevices(ctx, caller.GroupID)
		if err != nil {
			return errors.Wrap(err, "failed to list group devices")
		}

		limit := srv.deviceLimit(plan)
		if limit != entity.UnlimitedDevices && len(devices) > limit {
			return domainerrors.NewDeviceLimitReachedError(len(devices), limit)
		}

		if err := groupRepo.UpdatePlan(ctx, caller.GroupID, plan, limit); err != nil {
			return errors.Wrap(err, "failed to update plan")
		}

		locked.Plan = plan
		locked.DeviceLimit = limit
		locked.Devices = devices
		group = locked

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update group plan", slog.String("group_id", caller.GroupID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update group plan")
	}

	srv.log(ctx).Info("Group plan updated",
		slog.String("group_id", caller.GroupID),
		slog.String("plan", string(plan)),
		slog.Int("device_limit", group.DeviceLimit),
	)

	return group.Info(), nil
}

// PairingQR renders a QR code for joining the group.
func (srv *pairingService) PairingQR(ctx context.Context, caller usecase.DeviceCaller) ([]byte, error) {
	if err := requireActiveMember(ctx, srv.groupRepo, caller); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GeneratePairingQR(caller.GroupID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate pairing QR", slog.String("group_id", caller.GroupID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate pairing QR code")
	}

	return png, nil
}

// RegisterPushToken stores the caller's wake push token.
func (srv *pairingService) RegisterPushToken(ctx context.Context, caller usecase.DeviceCaller, token string) error {
	if err := srv.groupRepo.SetPushToken(ctx, caller.GroupID, caller.DeviceID, token); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return domainerrors.ErrDeviceNotMember
		}

		return errors.Wrap(err, "failed to register push token")
	}

	srv.log(ctx).Debug("Push token registered", slog.String("device_id", caller.DeviceID))

	return nil
}

// GroupHistory lists the membership history of the caller's group.
func (srv *pairingService) GroupHistory(ctx context.Context, caller usecase.DeviceCaller) ([]*entity.HistoryEvent, error) {
	if err := requireActiveMember(ctx, srv.groupRepo, caller); err != nil {
		return nil, err
	}

	events, err := srv.groupRepo.ListHistory(ctx, caller.GroupID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list group history")
	}

	return events, nil
}

func (srv *pairingService) pairingOutput(group *entity.SyncGroup, identity entity.DeviceIdentity, rejoined bool) (*usecase.PairingOutput, error) {
	token, err := srv.tokenService.IssueDeviceToken(group.ID, identity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue device token")
	}

	return &usecase.PairingOutput{
		GroupID:     group.ID,
		Token:       token,
		DeviceCount: group.DeviceCount(),
		DeviceLimit: group.DeviceLimit,
		Rejoined:    rejoined,
		Info:        group.Info(),
	}, nil
}
