package postgres

import (
	"context"
	"time"

	"mirror/internal/domain/entity"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/domain/repository"
	"mirror/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// groupRepository implements the repository.GroupRepository interface.
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository is the constructor for groupRepository.
func NewGroupRepository(db *gorm.DB) repository.GroupRepository {
	return &groupRepository{
		db: db,
	}
}

// CreateGroup persists a new group without devices.
func (repo *groupRepository) CreateGroup(ctx context.Context, group *entity.SyncGroup) error {
	groupM := fromGroupDomain(group)

	if err := repo.db.WithContext(ctx).Create(groupM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateGroup
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create sync group")
	}

	group.CreatedAt = groupM.CreatedAt
	group.UpdatedAt = groupM.UpdatedAt

	return nil
}

// LockGroup reads the group row with SELECT ... FOR UPDATE on the primary.
func (repo *groupRepository) LockGroup(ctx context.Context, groupID string) (*entity.SyncGroup, error) {
	var groupM model.SyncGroupModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write, clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", groupID).
		First(&groupM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGroupNotFound
		}

		return nil, errors.Wrap(err, "failed to lock sync group")
	}

	return toGroupDomain(&groupM), nil
}

// FindGroup retrieves a group with all of its devices.
func (repo *groupRepository) FindGroup(ctx context.Context, groupID string) (*entity.SyncGroup, error) {
	var groupM model.SyncGroupModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", groupID).
		First(&groupM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGroupNotFound
		}

		return nil, errors.Wrap(err, "failed to find sync group")
	}

	group := toGroupDomain(&groupM)

	devices, err := repo.ListDevices(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Devices = devices

	return group, nil
}

// ListDevices returns the group's devices keyed by device ID.
func (repo *groupRepository) ListDevices(ctx context.Context, groupID string) (map[string]*entity.DeviceMembership, error) {
	var deviceModels []*model.DeviceMembershipModel

	if err := repo.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Find(&deviceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list group devices")
	}

	devices := make(map[string]*entity.DeviceMembership, len(deviceModels))
	for _, deviceM := range deviceModels {
		devices[deviceM.DeviceID] = toMembershipDomain(deviceM)
	}

	return devices, nil
}

// FindDevice retrieves one membership.
func (repo *groupRepository) FindDevice(ctx context.Context, groupID, deviceID string) (*entity.DeviceMembership, error) {
	var deviceM model.DeviceMembershipModel

	if err := repo.db.WithContext(ctx).
		Where("group_id = ? AND device_id = ?", groupID, deviceID).
		First(&deviceM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeviceNotFound
		}

		return nil, errors.Wrap(err, "failed to find group device")
	}

	return toMembershipDomain(&deviceM), nil
}

// InsertDevice adds a new membership.
func (repo *groupRepository) InsertDevice(ctx context.Context, membership *entity.DeviceMembership) error {
	deviceM := fromMembershipDomain(membership)

	if err := repo.db.WithContext(ctx).Create(deviceM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateDevice
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrGroupNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required device information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to insert group device")
	}

	return nil
}

// UpdateDevice updates status, name, type and lastSyncedAt of an existing membership.
func (repo *groupRepository) UpdateDevice(ctx context.Context, membership *entity.DeviceMembership) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeviceMembershipModel{}).
		Where("group_id = ? AND device_id = ?", membership.GroupID, membership.DeviceID).
		Updates(map[string]any{
			"status":         string(membership.Status),
			"device_name":    membership.DeviceName,
			"device_type":    string(membership.DeviceType),
			"last_synced_at": membership.LastSyncedAt,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update group device")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// DeleteDevice removes a membership. History keeps the fact.
func (repo *groupRepository) DeleteDevice(ctx context.Context, groupID, deviceID string) error {
	result := repo.db.WithContext(ctx).
		Where("group_id = ? AND device_id = ?", groupID, deviceID).
		Delete(&model.DeviceMembershipModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete group device")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// AppendHistory appends a membership fact.
func (repo *groupRepository) AppendHistory(ctx context.Context, event *entity.HistoryEvent) error {
	if err := repo.db.WithContext(ctx).Create(fromHistoryDomain(event)).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append group history")
	}

	return nil
}

// ListHistory returns the group's history in timestamp order.
func (repo *groupRepository) ListHistory(ctx context.Context, groupID string) ([]*entity.HistoryEvent, error) {
	var historyModels []*model.GroupHistoryModel

	if err := repo.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&historyModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list group history")
	}

	events := make([]*entity.HistoryEvent, 0, len(historyModels))
	for _, historyM := range historyModels {
		events = append(events, toHistoryDomain(historyM))
	}

	return events, nil
}

// FindGroupIDByDevice resolves a device's group through idx_sync_group_devices_device_id.
// It reads the primary so a device recovering right after joining finds its group.
func (repo *groupRepository) FindGroupIDByDevice(ctx context.Context, deviceID string) (string, error) {
	var deviceM model.DeviceMembershipModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("device_id = ? AND status = ?", deviceID, string(entity.MembershipStatusActive)).
		Order("joined_at DESC").
		Order("updated_at DESC").
		First(&deviceM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrDeviceNotFound
		}

		return "", errors.Wrap(err, "failed to find group by device")
	}

	return deviceM.GroupID, nil
}

// UpdatePlan changes a group's plan and device limit.
func (repo *groupRepository) UpdatePlan(ctx context.Context, groupID string, plan entity.Plan, deviceLimit int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SyncGroupModel{}).
		Where("id = ?", groupID).
		Updates(map[string]any{
			"plan":         string(plan),
			"device_limit": deviceLimit,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update group plan")
	}

	if result.RowsAffected == 0 {
		return repository.ErrGroupNotFound
	}

	return nil
}

// TouchDevice records a successful sync for a device.
func (repo *groupRepository) TouchDevice(ctx context.Context, groupID, deviceID string, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeviceMembershipModel{}).
		Where("group_id = ? AND device_id = ?", groupID, deviceID).
		Update("last_synced_at", at)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to touch group device")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// SetPushToken stores the device's wake push token.
func (repo *groupRepository) SetPushToken(ctx context.Context, groupID, deviceID, token string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeviceMembershipModel{}).
		Where("group_id = ? AND device_id = ?", groupID, deviceID).
		Update("push_token", token)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set push token")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// ClearPushTokens removes the given tokens wherever they are stored.
func (repo *groupRepository) ClearPushTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.DeviceMembershipModel{}).
		Where("push_token IN ?", tokens).
		Update("push_token", "").Error; err != nil {
		return errors.Wrap(err, "failed to clear push tokens")
	}

	return nil
}

// FindPushTargets lists active members with push tokens, excluding one device.
func (repo *groupRepository) FindPushTargets(ctx context.Context, groupID, excludeDeviceID string) ([]repository.PushTarget, error) {
	var deviceModels []*model.DeviceMembershipModel

	if err := repo.db.WithContext(ctx).
		Select("device_id", "push_token").
		Where("group_id = ? AND status = ? AND push_token <> '' AND device_id <> ?",
			groupID, string(entity.MembershipStatusActive), excludeDeviceID).
		Find(&deviceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find push targets")
	}

	targets := make([]repository.PushTarget, 0, len(deviceModels))
	for _, deviceM := range deviceModels {
		targets = append(targets, repository.PushTarget{DeviceID: deviceM.DeviceID, PushToken: deviceM.PushToken})
	}

	return targets, nil
}

// --- Mapper Functions ---

// toGroupDomain converts a GORM SyncGroupModel to a domain SyncGroup entity.
func toGroupDomain(data *model.SyncGroupModel) *entity.SyncGroup {
	if data == nil {
		return nil
	}

	return &entity.SyncGroup{
		ID:             data.ID,
		Plan:           entity.Plan(data.Plan),
		DeviceLimit:    data.DeviceLimit,
		MasterDeviceID: data.MasterDeviceID,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
		Devices:        map[string]*entity.DeviceMembership{},
	}
}

// fromGroupDomain converts a domain SyncGroup entity to a GORM SyncGroupModel.
func fromGroupDomain(data *entity.SyncGroup) *model.SyncGroupModel {
	if data == nil {
		return nil
	}

	return &model.SyncGroupModel{
		ID:             data.ID,
		Plan:           string(data.Plan),
		DeviceLimit:    data.DeviceLimit,
		MasterDeviceID: data.MasterDeviceID,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// toMembershipDomain converts a GORM DeviceMembershipModel to a domain DeviceMembership entity.
func toMembershipDomain(data *model.DeviceMembershipModel) *entity.DeviceMembership {
	if data == nil {
		return nil
	}

	return &entity.DeviceMembership{
		GroupID:      data.GroupID,
		DeviceID:     data.DeviceID,
		DeviceType:   entity.DeviceType(data.DeviceType),
		DeviceName:   data.DeviceName,
		Status:       entity.MembershipStatus(data.Status),
		PushToken:    data.PushToken,
		JoinedAt:     data.JoinedAt,
		LastSyncedAt: data.LastSyncedAt,
	}
}

// fromMembershipDomain converts a domain DeviceMembership entity to a GORM DeviceMembershipModel.
func fromMembershipDomain(data *entity.DeviceMembership) *model.DeviceMembershipModel {
	if data == nil {
		return nil
	}

	return &model.DeviceMembershipModel{
		GroupID:      data.GroupID,
		DeviceID:     data.DeviceID,
		DeviceType:   string(data.DeviceType),
		DeviceName:   data.DeviceName,
		Status:       string(data.Status),
		PushToken:    data.PushToken,
		JoinedAt:     data.JoinedAt,
		LastSyncedAt: data.LastSyncedAt,
	}
}

func toHistoryDomain(data *model.GroupHistoryModel) *entity.HistoryEvent {
	return &entity.HistoryEvent{
		ID:         data.ID,
		GroupID:    data.GroupID,
		Action:     entity.HistoryAction(data.Action),
		DeviceID:   data.DeviceID,
		DeviceType: entity.DeviceType(data.DeviceType),
		DeviceName: data.DeviceName,
		Timestamp:  data.CreatedAt,
	}
}

func fromHistoryDomain(data *entity.HistoryEvent) *model.GroupHistoryModel {
	return &model.GroupHistoryModel{
		ID:         data.ID,
		GroupID:    data.GroupID,
		Action:     string(data.Action),
		DeviceID:   data.DeviceID,
		DeviceType: string(data.DeviceType),
		DeviceName: data.DeviceName,
		CreatedAt:  data.Timestamp,
	}
}
