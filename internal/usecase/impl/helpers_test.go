package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"mirror/config"
	"mirror/internal/domain/entity"
	"mirror/internal/domain/repository"
	"mirror/internal/domain/service"
	mockRepo "mirror/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()

	return cfg
}

// passthroughTx wires a mocked TransactionManager so Execute runs fn against factory.
func passthroughTx(txManager *mockRepo.MockTransactionManager, factory repository.RepositoryFactory) {
	txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		}).
		Maybe()
}

type fakeTokenService struct{}

func (fakeTokenService) IssueDeviceToken(groupID string, identity entity.DeviceIdentity) (string, error) {
	return "token-" + groupID + "-" + identity.DeviceID, nil
}

func (fakeTokenService) ValidateToken(string) (*service.DeviceClaims, error) {
	panic("not implemented")
}

func (fakeTokenService) TokenTTL() time.Duration {
	return time.Hour
}

// recordingFeed keeps every published notification in memory.
type recordingFeed struct {
	mu    sync.Mutex
	items []*entity.ChangeNotification
}

func (f *recordingFeed) Publish(_ context.Context, notification *entity.ChangeNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, notification)

	return nil
}

func (f *recordingFeed) Subscribe(context.Context, service.ChangeHandler) error {
	return nil
}

func (f *recordingFeed) Close() error {
	return nil
}

func (f *recordingFeed) published() []*entity.ChangeNotification {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*entity.ChangeNotification(nil), f.items...)
}
