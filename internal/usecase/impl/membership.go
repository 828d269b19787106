package impl

import (
	"context"

	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/domain/repository"
	"mirror/internal/usecase"

	"github.com/pkg/errors"
)

// requireActiveMember rejects callers whose membership was removed after their token was issued.
func requireActiveMember(ctx context.Context, groupRepo repository.GroupRepository, caller usecase.DeviceCaller) error {
	membership, err := groupRepo.FindDevice(ctx, caller.GroupID, caller.DeviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return domainerrors.ErrDeviceNotMember
		}

		return errors.Wrap(err, "failed to check membership")
	}
	if !membership.IsActive() {
		return domainerrors.ErrDeviceNotMember
	}

	return nil
}
