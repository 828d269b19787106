package deltasync

import (
	"cmp"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"mirror/config"
	"mirror/internal/client/store"
	"mirror/internal/domain/entity"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer answers pulls from an in-memory record set in (date, id) order.
// collate orders ids within a date the way the database would; nil is byte order.
type fakeServer struct {
	mu       sync.Mutex
	records  []entity.RawRecord
	collate  func(a, b string) int
	failures int // Pulls left to fail before answering.
	pulls    int
}

// caseInsensitive orders like a linguistic collation: case is only a tie-breaker.
func caseInsensitive(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}

	return strings.Compare(a, b)
}

func (s *fakeServer) compareIDs(a, b string) int {
	if s.collate != nil {
		return s.collate(a, b)
	}

	return strings.Compare(a, b)
}

func (s *fakeServer) add(records ...entity.RawRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, records...)
	slices.SortFunc(s.records, func(a, b entity.RawRecord) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}

		return s.compareIDs(a.ID, b.ID)
	})
}

func (s *fakeServer) Pull(_ context.Context, _ entity.DataType, cursor entity.Cursor, limit int) (*entity.PullResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pulls++
	if s.failures > 0 {
		s.failures--

		return nil, &domainerrors.TransportError{Op: "pull", Err: errors.New("connection reset")}
	}

	result := &entity.PullResult{NextCursor: cursor}
	for _, r := range s.records {
		pos := entity.Cursor{Timestamp: r.Date, RecordID: r.ID}
		after := r.Date > cursor.Timestamp || (cursor.RecordID != "" && r.Date == cursor.Timestamp && s.compareIDs(r.ID, cursor.RecordID) > 0)
		if !after {
			continue
		}
		if len(result.Records) == limit {
			result.HasMore = true

			break
		}
		result.Records = append(result.Records, r)
		result.NextCursor = pos
	}

	return result, nil
}

func (s *fakeServer) pullCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pulls
}

// failingStore fails SaveSnapshot while fail is set.
type failingStore struct {
	store.Store
	mu   sync.Mutex
	fail bool
}

func (s *failingStore) SaveSnapshot(ctx context.Context, cursor entity.SyncCursor, records []entity.RawRecord) error {
	s.mu.Lock()
	fail := s.fail
	s.mu.Unlock()
	if fail {
		return domainerrors.NewStorageError("save snapshot", errors.New("disk full"))
	}

	return s.Store.SaveSnapshot(ctx, cursor, records)
}

func message(id string, date int64, body string) entity.RawRecord {
	payload, _ := json.Marshal(entity.Message{ThreadID: "t1", Address: "+100", Body: body, Direction: "inbound"})

	return entity.RawRecord{ID: id, Date: date, Payload: payload}
}

func typedMessage(id string, date int64, body string) entity.Record[entity.Message] {
	return entity.Record[entity.Message]{ID: id, Date: date, Payload: entity.Message{ThreadID: "t1", Address: "+100", Body: body, Direction: "inbound"}}
}

func testSyncConfig() *config.SyncConfig {
	return &config.SyncConfig{
		CatchUpPageSize: 500,
		PollPageSize:    50,
		MaxPageSize:     1000,
		PollInterval:    10 * time.Millisecond,
		CacheLimit:      1000,
	}
}

func newTestEngine(t *testing.T, server *fakeServer, st store.Store, cfg *config.SyncConfig) *Engine[entity.Message] {
	t.Helper()

	if cfg == nil {
		cfg = testSyncConfig()
	}

	return New[entity.Message](server, st, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func cachedIDs(t *testing.T, e *Engine[entity.Message]) []string {
	t.Helper()

	records, err := e.GetCachedRecords(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}

	return ids
}

// collect reads n deltas or fails after a timeout.
func collect(t *testing.T, ch <-chan entity.ChangeDelta[entity.Message], n int) []entity.ChangeDelta[entity.Message] {
	t.Helper()

	got := make([]entity.ChangeDelta[entity.Message], 0, n)
	timeout := time.After(2 * time.Second)
	for len(got) < n {
		select {
		case d, ok := <-ch:
			require.True(t, ok, "stream closed early")
			got = append(got, d)
		case <-timeout:
			require.FailNowf(t, "timed out", "received %d of %d deltas", len(got), n)
		}
	}

	return got
}

func TestEngine_PullsOnlyAfterPersistedCursor(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.SaveSnapshot(ctx, entity.SyncCursor{DataType: entity.DataTypeMessages, LastSyncTimestamp: 100}, nil))

	server := &fakeServer{}
	server.add(message("m90", 90, "old"), message("m105", 105, "a"), message("m110", 110, "b"))

	e := newTestEngine(t, server, st, nil)
	require.NoError(t, e.SyncOnce(ctx, 50))

	assert.Equal(t, []string{"m105", "m110"}, cachedIDs(t, e))

	cursor, err := st.LoadCursor(ctx, entity.DataTypeMessages)
	require.NoError(t, err)
	assert.Equal(t, int64(110), cursor.LastSyncTimestamp)
	assert.Equal(t, "m110", cursor.LastRecordID)
	assert.Equal(t, 2, cursor.CachedCount)
}

func TestEngine_CatchUpDrainsAllPagesAcrossEqualTimestamps(t *testing.T) {
	server := &fakeServer{}
	server.add(
		message("a", 10, ""), message("b", 10, ""), message("c", 10, ""),
		message("d", 10, ""), message("e", 11, ""), message("f", 12, ""), message("g", 12, ""),
	)

	e := newTestEngine(t, server, store.NewMemoryStore(), nil)
	require.NoError(t, e.SyncOnce(context.Background(), 3))

	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, cachedIDs(t, e))
	assert.Equal(t, 3, server.pullCount())
}

func TestEngine_CacheBoundEvictsOldest(t *testing.T) {
	cfg := testSyncConfig()
	cfg.CacheLimit = 5

	server := &fakeServer{}
	for i := range 8 {
		server.add(message(string(rune('a'+i)), int64(100+i), ""))
	}

	e := newTestEngine(t, server, store.NewMemoryStore(), cfg)
	require.NoError(t, e.SyncOnce(context.Background(), 3))

	assert.Equal(t, []string{"d", "e", "f", "g", "h"}, cachedIDs(t, e))

	stats, err := e.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.CachedCount)
	assert.Equal(t, int64(107), stats.LastSyncTimestamp)
}

func TestEngine_FailedPersistKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	st := &failingStore{Store: store.NewMemoryStore(), fail: true}

	server := &fakeServer{}
	server.add(message("m1", 1, ""))

	e := newTestEngine(t, server, st, nil)
	err := e.SyncOnce(ctx, 50)

	_, isStorage := errors.AsType[*domainerrors.StorageError](err)
	assert.True(t, isStorage)
	assert.Empty(t, cachedIDs(t, e))
	stats, err := e.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.LastSyncTimestamp)

	st.mu.Lock()
	st.fail = false
	st.mu.Unlock()

	require.NoError(t, e.SyncOnce(ctx, 50))
	assert.Equal(t, []string{"m1"}, cachedIDs(t, e))
}

func TestEngine_PushThenPollDeliversOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := &fakeServer{}
	e := newTestEngine(t, server, store.NewMemoryStore(), nil)

	stream, err := e.StreamDeltas(ctx)
	require.NoError(t, err)

	// Push arrives first, then the same record shows up on the next poll.
	require.NoError(t, e.Apply(ctx, entity.Added(typedMessage("m200", 200, "hi"))))
	server.add(message("m200", 200, "hi"))

	got := collect(t, stream, 1)
	assert.Equal(t, entity.DeltaAdded, got[0].Kind)
	assert.Equal(t, "m200", got[0].Record.ID)

	require.Eventually(t, func() bool { return server.pullCount() >= 3 }, 2*time.Second, 5*time.Millisecond)

	select {
	case d := <-stream:
		t.Fatalf("unexpected duplicate delta %+v", d)
	case <-time.After(30 * time.Millisecond):
	}

	// The poll still advanced the cursor past the pushed record.
	stats, err := e.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(200), stats.LastSyncTimestamp)
}

func TestEngine_PullFailuresDoNotEndStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := &fakeServer{failures: 3}
	server.add(message("m1", 1, ""))

	e := newTestEngine(t, server, store.NewMemoryStore(), nil)
	stream, err := e.StreamDeltas(ctx)
	require.NoError(t, err)

	got := collect(t, stream, 1)
	assert.Equal(t, "m1", got[0].Record.ID)
	assert.GreaterOrEqual(t, server.pullCount(), 4)
}

func TestEngine_RestartResumesFromPersistedCursor(t *testing.T) {
	st := store.NewMemoryStore()
	server := &fakeServer{}
	server.add(message("m1", 1, ""), message("m2", 2, ""))

	ctx, cancel := context.WithCancel(context.Background())
	first := newTestEngine(t, server, st, nil)
	stream, err := first.StreamDeltas(ctx)
	require.NoError(t, err)
	collect(t, stream, 2)
	cancel()
	for range stream {
	}

	server.add(message("m3", 3, ""))

	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	second := newTestEngine(t, server, st, nil)
	stream2, err := second.StreamDeltas(ctx2)
	require.NoError(t, err)

	got := collect(t, stream2, 1)
	assert.Equal(t, "m3", got[0].Record.ID)
	assert.Equal(t, entity.DeltaAdded, got[0].Kind)
	assert.Equal(t, []string{"m1", "m2", "m3"}, cachedIDs(t, second))
}

func TestEngine_StreamIsExclusive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := newTestEngine(t, &fakeServer{}, store.NewMemoryStore(), nil)
	_, err := e.StreamDeltas(ctx)
	require.NoError(t, err)

	_, err = e.StreamDeltas(ctx)
	assert.ErrorIs(t, err, ErrStreamActive)
}

func TestEngine_ApplyDedup(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, &fakeServer{}, store.NewMemoryStore(), nil)

	require.NoError(t, e.Apply(ctx, entity.Added(typedMessage("m1", 10, "hi"))))

	// Same content again is dropped, new content is a change.
	require.NoError(t, e.Apply(ctx, entity.Changed(typedMessage("m1", 10, "hi"))))
	require.NoError(t, e.Apply(ctx, entity.Changed(typedMessage("m1", 10, "edited"))))

	records, err := e.GetCachedRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "edited", records[0].Payload.Body)

	require.NoError(t, e.Apply(ctx, entity.Removed[entity.Message]("m1")))
	assert.Empty(t, cachedIDs(t, e))

	// Removing an unknown record is a no-op.
	require.NoError(t, e.Apply(ctx, entity.Removed[entity.Message]("nope")))
}

func TestEngine_ApplyEmitsOnActiveStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := newTestEngine(t, &fakeServer{}, store.NewMemoryStore(), nil)
	stream, err := e.StreamDeltas(ctx)
	require.NoError(t, err)

	require.NoError(t, e.Apply(ctx, entity.Added(typedMessage("m1", 10, "hi"))))
	require.NoError(t, e.Apply(ctx, entity.Changed(typedMessage("m1", 10, "hi"))))
	require.NoError(t, e.Apply(ctx, entity.Changed(typedMessage("m1", 11, "later"))))
	require.NoError(t, e.Apply(ctx, entity.Removed[entity.Message]("m1")))

	got := collect(t, stream, 3)
	kinds := []entity.DeltaKind{got[0].Kind, got[1].Kind, got[2].Kind}
	assert.Equal(t, []entity.DeltaKind{entity.DeltaAdded, entity.DeltaChanged, entity.DeltaRemoved}, kinds)
}

func TestEngine_ApplyNeverMovesCursor(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	e := newTestEngine(t, &fakeServer{}, st, nil)

	require.NoError(t, e.Apply(ctx, entity.Added(typedMessage("m500", 500, "push"))))

	cursor, err := st.LoadCursor(ctx, entity.DataTypeMessages)
	require.NoError(t, err)
	assert.Zero(t, cursor.LastSyncTimestamp)
	assert.Equal(t, 1, cursor.CachedCount)
}

func TestEngine_ClearCacheForcesResync(t *testing.T) {
	ctx := context.Background()
	server := &fakeServer{}
	server.add(message("m1", 1, ""), message("m2", 2, ""))

	e := newTestEngine(t, server, store.NewMemoryStore(), nil)
	require.NoError(t, e.SyncOnce(ctx, 50))
	require.NoError(t, e.ClearCache(ctx))

	assert.Empty(t, cachedIDs(t, e))
	stats, err := e.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.LastSyncTimestamp)

	require.NoError(t, e.SyncOnce(ctx, 50))
	assert.Equal(t, []string{"m1", "m2"}, cachedIDs(t, e))
}

func TestEngine_StatsEstimateBandwidth(t *testing.T) {
	ctx := context.Background()
	server := &fakeServer{}
	first, second := message("m1", 1, "x"), message("m2", 2, "yy")
	server.add(first, second)

	e := newTestEngine(t, server, store.NewMemoryStore(), nil)
	require.NoError(t, e.SyncOnce(ctx, 50))

	stats, err := e.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DataTypeMessages, stats.DataType)
	assert.Equal(t, "m2", stats.LastRecordID)
	assert.Equal(t, int64(len(first.Payload)+len(second.Payload)), stats.EstimatedBandwidthSaved)
	assert.NotNil(t, stats.LastSyncedAt)
}

func TestEngine_InvalidRecordSkippedCursorAdvances(t *testing.T) {
	ctx := context.Background()
	server := &fakeServer{}
	server.add(entity.RawRecord{ID: "bad", Date: 5, Payload: json.RawMessage(`{"body":"no thread"}`)}, message("good", 6, ""))

	e := newTestEngine(t, server, store.NewMemoryStore(), nil)
	require.NoError(t, e.SyncOnce(ctx, 50))

	assert.Equal(t, []string{"good"}, cachedIDs(t, e))
	stats, err := e.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.LastSyncTimestamp)
}

func TestEngine_FollowsServerIDOrderWithinTimestamp(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Byte order puts "B" before "a"; the server's collation does not.
	server := &fakeServer{collate: caseInsensitive}
	server.add(message("a", 100, ""), message("B", 100, ""), message("c", 100, ""), message("d", 101, ""))

	st := store.NewMemoryStore()
	e := newTestEngine(t, server, st, nil)
	require.NoError(t, e.SyncOnce(ctx, 1))
	require.NoError(t, ctx.Err())

	assert.ElementsMatch(t, []string{"a", "B", "c", "d"}, cachedIDs(t, e))
	assert.Equal(t, 4, server.pullCount())

	cursor, err := st.LoadCursor(ctx, entity.DataTypeMessages)
	require.NoError(t, err)
	assert.Equal(t, entity.Cursor{Timestamp: 101, RecordID: "d"}, cursor.Position())
}

// stuckServer always answers with the same page and claims there is more.
type stuckServer struct {
	mu    sync.Mutex
	pulls int
}

func (s *stuckServer) Pull(context.Context, entity.DataType, entity.Cursor, int) (*entity.PullResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pulls++

	return &entity.PullResult{
		Records:    []entity.RawRecord{message("a", 100, "")},
		NextCursor: entity.Cursor{Timestamp: 100, RecordID: "a"},
		HasMore:    true,
	}, nil
}

func TestEngine_StopsDrainWhenServerCursorStalls(t *testing.T) {
	server := &stuckServer{}
	e := New[entity.Message](server, store.NewMemoryStore(), testSyncConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, e.SyncOnce(context.Background(), 1))

	assert.Equal(t, 2, server.pulls)
	assert.Equal(t, []string{"a"}, cachedIDs(t, e))
}

func TestEngine_SeenSetStaysBounded(t *testing.T) {
	ctx := context.Background()
	cfg := testSyncConfig()
	cfg.CacheLimit = 2

	server := &fakeServer{}
	for i := range 6 {
		server.add(message(string(rune('a'+i)), int64(1+i), ""))
	}

	e := newTestEngine(t, server, store.NewMemoryStore(), cfg)
	require.NoError(t, e.SyncOnce(ctx, 2))
	assert.Equal(t, []string{"e", "f"}, cachedIDs(t, e))

	// A push ahead of the cursor stays known until a pull passes it.
	require.NoError(t, e.Apply(ctx, entity.Added(typedMessage("z", 50, ""))))

	e.mu.Lock()
	seen := slices.Sorted(maps.Keys(e.state.seen))
	e.mu.Unlock()
	assert.Equal(t, []string{"f", "z"}, seen)

	// Evicted records behind the cursor are not pulled again.
	require.NoError(t, e.SyncOnce(ctx, 2))
	assert.Equal(t, []string{"f", "z"}, cachedIDs(t, e))
}
