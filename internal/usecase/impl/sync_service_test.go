package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"testing"

	"mirror/internal/domain/entity"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/domain/repository"
	mockRepo "mirror/internal/mocks/repository"
	mockService "mirror/internal/mocks/service"
	"mirror/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryRecordRepo keeps records ordered by (date, id) like the database index.
type memoryRecordRepo struct {
	mu      sync.Mutex
	records map[string]entity.RawRecord
}

func newMemoryRecordRepo(records ...entity.RawRecord) *memoryRecordRepo {
	repo := &memoryRecordRepo{records: make(map[string]entity.RawRecord)}
	for _, r := range records {
		repo.records[r.ID] = r
	}

	return repo
}

func (r *memoryRecordRepo) Upsert(_ context.Context, _ string, _ entity.DataType, record entity.RawRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.records[record.ID]
	r.records[record.ID] = record

	return !existed, nil
}

func (r *memoryRecordRepo) Delete(_ context.Context, _ string, _ entity.DataType, recordID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[recordID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(r.records, recordID)

	return nil
}

func (r *memoryRecordRepo) Pull(_ context.Context, _ string, _ entity.DataType, cursor entity.Cursor, limit int) ([]entity.RawRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.RawRecord
	for _, rec := range r.records {
		pos := entity.Cursor{Timestamp: rec.Date, RecordID: rec.ID}
		if cursor.RecordID == "" {
			if rec.Date <= cursor.Timestamp {
				continue
			}
		} else if pos.Compare(cursor) <= 0 {
			continue
		}
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b entity.RawRecord) int {
		return entity.Cursor{Timestamp: a.Date, RecordID: a.ID}.Compare(entity.Cursor{Timestamp: b.Date, RecordID: b.ID})
	})
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

type syncServiceFixtures struct {
	service    usecase.SyncUsecase
	groupRepo  *mockRepo.MockGroupRepository
	recordRepo *mockRepo.MockRecordRepository
	feed       *mockService.MockChangeFeed
}

var testCaller = usecase.DeviceCaller{GroupID: "group-1", DeviceID: "phone"}

func activeMember() *entity.DeviceMembership {
	return &entity.DeviceMembership{GroupID: testCaller.GroupID, DeviceID: testCaller.DeviceID, Status: entity.MembershipStatusActive}
}

func createTestSyncService(t *testing.T, records repository.RecordRepository) syncServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	groupRepo := mockRepo.NewMockGroupRepository(t)
	recordRepo := mockRepo.NewMockRecordRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	feed := mockService.NewMockChangeFeed(t)

	if records == nil {
		records = recordRepo
	}

	factory.EXPECT().GroupRepo().Return(groupRepo).Maybe()
	factory.EXPECT().RecordRepo().Return(records).Maybe()
	passthroughTx(txManager, factory)

	svc := NewSyncService(SyncServiceParams{
		TxManager:  txManager,
		GroupRepo:  groupRepo,
		RecordRepo: records,
		ChangeFeed: feed,
		Config:     newTestConfig(),
		Logger:     newDiscardLogger(),
	})

	return syncServiceFixtures{service: svc, groupRepo: groupRepo, recordRepo: recordRepo, feed: feed}
}

func messageRecord(id string, date int64) entity.RawRecord {
	payload, _ := json.Marshal(entity.Message{ThreadID: "t1", Address: "+15550100", Body: id, Direction: "inbound"})

	return entity.RawRecord{ID: id, Date: date, Payload: payload}
}

func TestSyncService_PullAfterCursor(t *testing.T) {
	records := newMemoryRecordRepo(messageRecord("m90", 90), messageRecord("m105", 105), messageRecord("m110", 110))
	fx := createTestSyncService(t, records)
	ctx := context.Background()

	fx.groupRepo.EXPECT().FindDevice(ctx, "group-1", "phone").Return(activeMember(), nil)
	fx.groupRepo.EXPECT().TouchDevice(ctx, "group-1", "phone", mock.Anything).Return(nil)

	result, err := fx.service.Pull(ctx, testCaller, usecase.PullInput{
		DataType: entity.DataTypeMessages,
		Cursor:   entity.Cursor{Timestamp: 100},
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(result.Records))
	for _, r := range result.Records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"m105", "m110"}, ids)
	assert.Equal(t, entity.Cursor{Timestamp: 110, RecordID: "m110"}, result.NextCursor)
	assert.False(t, result.HasMore)
}

func TestSyncService_PullPagesThroughEqualTimestamps(t *testing.T) {
	var seed []entity.RawRecord
	for i := range 5 {
		seed = append(seed, messageRecord(fmt.Sprintf("m%d", i), 200))
	}
	fx := createTestSyncService(t, newMemoryRecordRepo(seed...))
	ctx := context.Background()

	fx.groupRepo.EXPECT().FindDevice(ctx, "group-1", "phone").Return(activeMember(), nil)
	fx.groupRepo.EXPECT().TouchDevice(ctx, "group-1", "phone", mock.Anything).Return(nil)

	cursor := entity.Cursor{Timestamp: 100}
	var seen []string
	for {
		page, err := fx.service.Pull(ctx, testCaller, usecase.PullInput{DataType: entity.DataTypeMessages, Cursor: cursor, Limit: 2})
		require.NoError(t, err)
		for _, r := range page.Records {
			seen = append(seen, r.ID)
		}
		cursor = page.NextCursor
		if !page.HasMore {
			break
		}
	}

	assert.Equal(t, []string{"m0", "m1", "m2", "m3", "m4"}, seen)
}

func TestSyncService_PullClampsLimit(t *testing.T) {
	fx := createTestSyncService(t, nil)
	ctx := context.Background()

	fx.groupRepo.EXPECT().FindDevice(ctx, "group-1", "phone").Return(activeMember(), nil)
	fx.groupRepo.EXPECT().TouchDevice(ctx, "group-1", "phone", mock.Anything).Return(nil)
	// Defaults: page size 50, max 1000, plus one look-ahead row.
	fx.recordRepo.EXPECT().Pull(ctx, "group-1", entity.DataTypeCalls, entity.Cursor{}, 51).Return(nil, nil).Once()
	fx.recordRepo.EXPECT().Pull(ctx, "group-1", entity.DataTypeCalls, entity.Cursor{}, 1001).Return(nil, nil).Once()

	page, err := fx.service.Pull(ctx, testCaller, usecase.PullInput{DataType: entity.DataTypeCalls})
	require.NoError(t, err)
	assert.Empty(t, page.Records)
	assert.Equal(t, entity.Cursor{}, page.NextCursor)

	_, err = fx.service.Pull(ctx, testCaller, usecase.PullInput{DataType: entity.DataTypeCalls, Limit: 50_000})
	require.NoError(t, err)
}

func TestSyncService_PullRejects(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown data type", func(t *testing.T) {
		fx := createTestSyncService(t, nil)
		_, err := fx.service.Pull(ctx, testCaller, usecase.PullInput{DataType: "photos"})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidDataType))
	})

	t.Run("negative since", func(t *testing.T) {
		fx := createTestSyncService(t, nil)
		_, err := fx.service.Pull(ctx, testCaller, usecase.PullInput{DataType: entity.DataTypeMessages, Cursor: entity.Cursor{Timestamp: -1}})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("removed device", func(t *testing.T) {
		fx := createTestSyncService(t, nil)
		fx.groupRepo.EXPECT().FindDevice(ctx, "group-1", "phone").Return(nil, repository.ErrDeviceNotFound)

		_, err := fx.service.Pull(ctx, testCaller, usecase.PullInput{DataType: entity.DataTypeMessages})
		assert.True(t, errors.Is(err, domainerrors.ErrDeviceNotMember))
	})
}

func TestSyncService_PutRecordAnnouncesKind(t *testing.T) {
	fx := createTestSyncService(t, newMemoryRecordRepo())
	ctx := context.Background()
	record := messageRecord("m1", 1000)

	fx.groupRepo.EXPECT().FindDevice(ctx, "group-1", "phone").Return(activeMember(), nil)

	var published []*entity.ChangeNotification
	fx.feed.EXPECT().
		Publish(ctx, mock.Anything).
		Run(func(_ context.Context, n *entity.ChangeNotification) {
			published = append(published, n)
		}).
		Return(nil)

	kind, err := fx.service.PutRecord(ctx, testCaller, entity.DataTypeMessages, record)
	require.NoError(t, err)
	assert.Equal(t, entity.DeltaAdded, kind)

	kind, err = fx.service.PutRecord(ctx, testCaller, entity.DataTypeMessages, record)
	require.NoError(t, err)
	assert.Equal(t, entity.DeltaChanged, kind)

	require.Len(t, published, 2)
	assert.Equal(t, entity.DeltaAdded, published[0].Kind)
	assert.Equal(t, entity.DeltaChanged, published[1].Kind)
	assert.Equal(t, "phone", published[0].SourceDeviceID)
	assert.Equal(t, "group-1:messages", published[0].Channel().String())
	assert.False(t, published[0].CommittedAt.IsZero())
	if assert.NotNil(t, published[0].Record) {
		assert.Equal(t, "m1", published[0].Record.ID)
	}
}

func TestSyncService_PutRecordPublishFailureIsNotFatal(t *testing.T) {
	fx := createTestSyncService(t, nil)
	ctx := context.Background()

	fx.groupRepo.EXPECT().FindDevice(ctx, "group-1", "phone").Return(activeMember(), nil)
	fx.recordRepo.EXPECT().Upsert(ctx, "group-1", entity.DataTypeMessages, mock.Anything).Return(true, nil)
	fx.feed.EXPECT().Publish(ctx, mock.Anything).Return(errors.New("broker unavailable"))

	kind, err := fx.service.PutRecord(ctx, testCaller, entity.DataTypeMessages, messageRecord("m1", 1))
	require.NoError(t, err)
	assert.Equal(t, entity.DeltaAdded, kind)
}

func TestSyncService_PutRecordInvalidPayload(t *testing.T) {
	fx := createTestSyncService(t, nil)

	bad := entity.RawRecord{ID: "c1", Date: 5, Payload: json.RawMessage(`{"number":""}`)}

	_, err := fx.service.PutRecord(context.Background(), testCaller, entity.DataTypeCalls, bad)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidPayload))
	fx.recordRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncService_DeleteRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("announces removal", func(t *testing.T) {
		fx := createTestSyncService(t, newMemoryRecordRepo(messageRecord("m1", 1)))
		fx.groupRepo.EXPECT().FindDevice(ctx, "group-1", "phone").Return(activeMember(), nil)
		fx.feed.EXPECT().
			Publish(ctx, mock.MatchedBy(func(n *entity.ChangeNotification) bool {
				return n.Kind == entity.DeltaRemoved && n.RecordID == "m1" && n.Record == nil
			})).
			Return(nil)

		require.NoError(t, fx.service.DeleteRecord(ctx, testCaller, entity.DataTypeMessages, "m1"))
	})

	t.Run("missing record", func(t *testing.T) {
		fx := createTestSyncService(t, newMemoryRecordRepo())
		fx.groupRepo.EXPECT().FindDevice(ctx, "group-1", "phone").Return(activeMember(), nil)

		err := fx.service.DeleteRecord(ctx, testCaller, entity.DataTypeMessages, "missing")
		assert.True(t, errors.Is(err, domainerrors.ErrRecordNotFound))
		fx.feed.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
