// Package pairing manages the device's membership in a sync group: its stable
// device id, the group it joined and the token authenticating it.
package pairing

import (
	"context"
	"log/slog"
	"time"

	"mirror/internal/client/store"
	"mirror/internal/delivery/api/dto"
	"mirror/internal/domain/entity"
	"mirror/internal/errors"

	"github.com/google/uuid"
)

// API is the part of the sync API the manager calls.
type API interface {
	SetToken(token string)
	CreateGroup(ctx context.Context, identity entity.DeviceIdentity) (*dto.PairingResponse, error)
	JoinGroup(ctx context.Context, groupID string, identity entity.DeviceIdentity) (*dto.PairingResponse, error)
	RecoverGroup(ctx context.Context, deviceID string) (*dto.PairingResponse, error)
	LeaveGroup(ctx context.Context, deviceID string) error
	GroupInfo(ctx context.Context) (*entity.GroupInfo, error)
}

// Profile is how this device presents itself to the group.
type Profile struct {
	DeviceName string
	DeviceType entity.DeviceType
}

// Manager drives the Unpaired -> Paired -> Unpaired lifecycle of one device.
type Manager struct {
	api    API
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewManager creates a manager persisting into st.
func NewManager(api API, st store.Store, logger *slog.Logger) *Manager {
	return &Manager{
		api:    api,
		store:  st,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// DeviceID returns the persisted device id, generating one on first use.
func (m *Manager) DeviceID(ctx context.Context) (string, error) {
	id, err := m.store.DeviceID(ctx)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	id = m.newID()
	if err := m.store.SaveDeviceID(ctx, id); err != nil {
		return "", err
	}
	m.logger.Info("Generated device id", slog.String("device_id", id))

	return id, nil
}

// Restore loads the saved membership and authenticates the API with its token.
// It returns store.ErrNoMembership when the device is unpaired.
func (m *Manager) Restore(ctx context.Context) (*store.Membership, error) {
	membership, err := m.store.Membership(ctx)
	if err != nil {
		return nil, err
	}
	m.api.SetToken(membership.Token)

	return membership, nil
}

// Paired reports whether a membership is saved locally.
func (m *Manager) Paired(ctx context.Context) (bool, error) {
	_, err := m.store.Membership(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNoMembership):
		return false, nil
	default:
		return false, err
	}
}

func (m *Manager) identity(ctx context.Context, profile Profile) (entity.DeviceIdentity, error) {
	if !profile.DeviceType.IsValid() {
		return entity.DeviceIdentity{}, errors.Errorf("invalid device type %q", profile.DeviceType)
	}
	if profile.DeviceName == "" {
		return entity.DeviceIdentity{}, errors.New("device name is required")
	}

	deviceID, err := m.DeviceID(ctx)
	if err != nil {
		return entity.DeviceIdentity{}, err
	}

	return entity.DeviceIdentity{DeviceID: deviceID, DeviceType: profile.DeviceType, DeviceName: profile.DeviceName}, nil
}

// CreateGroup creates a new group with this device as master.
func (m *Manager) CreateGroup(ctx context.Context, profile Profile) (*dto.PairingResponse, error) {
	identity, err := m.identity(ctx, profile)
	if err != nil {
		return nil, err
	}

	resp, err := m.api.CreateGroup(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := m.remember(ctx, resp, profile); err != nil {
		return nil, err
	}
	m.logger.Info("Created sync group", slog.String("group_id", resp.GroupID))

	return resp, nil
}

// JoinGroup joins groupID. Joining a group this device is already in is a rejoin
// and never hits the device limit.
func (m *Manager) JoinGroup(ctx context.Context, groupID string, profile Profile) (*dto.PairingResponse, error) {
	if groupID == "" {
		return nil, errors.New("group id is required")
	}

	identity, err := m.identity(ctx, profile)
	if err != nil {
		return nil, err
	}

	resp, err := m.api.JoinGroup(ctx, groupID, identity)
	if err != nil {
		return nil, err
	}

	if err := m.remember(ctx, resp, profile); err != nil {
		return nil, err
	}
	m.logger.Info("Joined sync group",
		slog.String("group_id", resp.GroupID),
		slog.Int("device_count", resp.DeviceCount),
		slog.Bool("rejoined", resp.Rejoined),
	)

	return resp, nil
}

// RecoverGroup asks the server for the group holding this device's id, for a
// device whose local membership was lost.
func (m *Manager) RecoverGroup(ctx context.Context, profile Profile) (*dto.PairingResponse, error) {
	deviceID, err := m.DeviceID(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := m.api.RecoverGroup(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	if err := m.remember(ctx, resp, profile); err != nil {
		return nil, err
	}
	m.logger.Info("Recovered sync group", slog.String("group_id", resp.GroupID))

	return resp, nil
}

func (m *Manager) remember(ctx context.Context, resp *dto.PairingResponse, profile Profile) error {
	if resp.GroupID == "" || resp.Token == "" {
		return errors.New("pairing response without group or token")
	}

	membership := store.Membership{
		GroupID:    resp.GroupID,
		Token:      resp.Token,
		DeviceName: profile.DeviceName,
		DeviceType: profile.DeviceType,
		JoinedAt:   m.now(),
	}
	if err := m.store.SaveMembership(ctx, membership); err != nil {
		return err
	}
	m.api.SetToken(resp.Token)

	return nil
}

// LeaveGroup removes this device from its group and forgets every local
// cursor and cache. The device id is kept.
func (m *Manager) LeaveGroup(ctx context.Context) error {
	membership, err := m.Restore(ctx)
	if err != nil {
		return err
	}

	deviceID, err := m.DeviceID(ctx)
	if err != nil {
		return err
	}

	if err := m.api.LeaveGroup(ctx, deviceID); err != nil {
		return err
	}

	if err := m.store.ClearMembership(ctx); err != nil {
		return err
	}
	m.api.SetToken("")
	m.logger.Info("Left sync group", slog.String("group_id", membership.GroupID))

	return nil
}

// RemoveDevice removes another device from this device's group.
func (m *Manager) RemoveDevice(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		return errors.New("device id is required")
	}

	self, err := m.DeviceID(ctx)
	if err != nil {
		return err
	}
	if deviceID == self {
		return m.LeaveGroup(ctx)
	}

	if _, err := m.Restore(ctx); err != nil {
		return err
	}

	return m.api.LeaveGroup(ctx, deviceID)
}

// GroupInfo returns the current state of this device's group.
func (m *Manager) GroupInfo(ctx context.Context) (*entity.GroupInfo, error) {
	if _, err := m.Restore(ctx); err != nil {
		return nil, err
	}

	return m.api.GroupInfo(ctx)
}
