// Package deltasync keeps a device's local cache of one data type consistent
// with the server by pulling only records newer than a persisted cursor.
package deltasync

import (
	"bytes"
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"mirror/config"
	"mirror/internal/client/store"
	"mirror/internal/domain/entity"
	"mirror/internal/errors"
)

// ErrStreamActive is returned when StreamDeltas is called while another stream runs.
var ErrStreamActive = errors.New("delta stream already active")

// Puller is the server read used by both catch-up and polling.
type Puller interface {
	Pull(ctx context.Context, dataType entity.DataType, cursor entity.Cursor, limit int) (*entity.PullResult, error)
}

// Stats is a diagnostic snapshot of one data type.
type Stats struct {
	DataType          entity.DataType `json:"data_type"`
	LastSyncTimestamp int64           `json:"last_sync_timestamp"`
	LastRecordID      string          `json:"last_record_id"`
	CachedCount       int             `json:"cached_count"`
	// Bytes of cached payloads that later syncs do not download again.
	EstimatedBandwidthSaved int64      `json:"estimated_bandwidth_saved"`
	LastSyncedAt            *time.Time `json:"last_synced_at"`
}

type cacheEntry[T entity.Payload] struct {
	record entity.Record[T]
	raw    entity.RawRecord // Canonical encoding, used for persistence and payload comparison.
}

// state is the merged view of one data type. It is replaced wholesale on commit.
type state[T entity.Payload] struct {
	cursor entity.SyncCursor
	cache  map[string]cacheEntry[T]
	seen   map[string]int64 // Session dedup set: id to newest date observed. Bounded by forget.
}

func (s *state[T]) clone() *state[T] {
	return &state[T]{
		cursor: s.cursor,
		cache:  maps.Clone(s.cache),
		seen:   maps.Clone(s.seen),
	}
}

func emptyState[T entity.Payload](dataType entity.DataType) *state[T] {
	return &state[T]{
		cursor: entity.SyncCursor{DataType: dataType},
		cache:  make(map[string]cacheEntry[T]),
		seen:   make(map[string]int64),
	}
}

// Engine drives delta sync for data type T.
type Engine[T entity.Payload] struct {
	dataType entity.DataType
	puller   Puller
	store    store.Store
	cfg      config.SyncConfig
	logger   *slog.Logger
	now      func() time.Time

	pullMu     sync.Mutex // Serializes pages so cursors are read and advanced in turn.
	mu         sync.Mutex // Guards state and generation.
	state      *state[T]
	generation int // Bumped by ClearCache so in-flight pages are discarded.

	outbox outbox[T]
}

// New creates an engine for T. State is loaded from st on first use.
func New[T entity.Payload](puller Puller, st store.Store, cfg *config.SyncConfig, logger *slog.Logger) *Engine[T] {
	var zero T

	return &Engine[T]{
		dataType: zero.DataType(),
		puller:   puller,
		store:    st,
		cfg:      *cfg,
		logger:   logger.With(slog.String("data_type", zero.DataType().String())),
		now:      time.Now,
		outbox:   newOutbox[T](),
	}
}

// DataType returns the data type this engine syncs.
func (e *Engine[T]) DataType() entity.DataType {
	return e.dataType
}

// loadLocked reads persisted state once. Undecodable cached rows are dropped.
func (e *Engine[T]) loadLocked(ctx context.Context) error {
	if e.state != nil {
		return nil
	}

	cursor, err := e.store.LoadCursor(ctx, e.dataType)
	if err != nil {
		return err
	}
	rows, err := e.store.LoadCache(ctx, e.dataType)
	if err != nil {
		return err
	}

	st := emptyState[T](e.dataType)
	st.cursor = cursor
	for _, raw := range rows {
		record, err := entity.DecodeRecord[T](raw)
		if err != nil {
			e.logger.Warn("[DeltaSync] Dropping undecodable cached record", slog.String("record_id", raw.ID), slog.Any("error", err))

			continue
		}
		st.cache[record.ID] = cacheEntry[T]{record: record, raw: raw}
		st.seen[record.ID] = record.Date
	}
	e.state = st

	return nil
}

// merge applies one typed delta to st and returns the delta to emit, if any.
func (e *Engine[T]) merge(st *state[T], delta entity.ChangeDelta[T]) (entity.ChangeDelta[T], bool, error) {
	switch delta.Kind {
	case entity.DeltaRemoved:
		_, cached := st.cache[delta.RecordID]
		_, seen := st.seen[delta.RecordID]
		if !cached && !seen {
			return delta, false, nil
		}
		delete(st.cache, delta.RecordID)
		delete(st.seen, delta.RecordID)

		return entity.Removed[T](delta.RecordID), true, nil

	case entity.DeltaAdded, entity.DeltaChanged:
		if delta.Record == nil {
			return delta, false, errors.Wrap(entity.ErrInvalidDelta, "missing record")
		}
		record := *delta.Record
		raw, err := record.Raw()
		if err != nil {
			return delta, false, err
		}

		emitted, ok := classify(st, record, raw)
		if !ok {
			return delta, false, nil
		}
		st.cache[record.ID] = cacheEntry[T]{record: record, raw: raw}
		st.seen[record.ID] = max(st.seen[record.ID], record.Date)

		return emitted, true, nil

	default:
		return delta, false, errors.Wrapf(entity.ErrInvalidDelta, "unknown kind %q", delta.Kind)
	}
}

// classify applies the dedup rule: unseen ids are Added, known ids with a newer
// date or a different payload are Changed, everything else is dropped.
func classify[T entity.Payload](st *state[T], record entity.Record[T], raw entity.RawRecord) (entity.ChangeDelta[T], bool) {
	seenDate, seen := st.seen[record.ID]
	if !seen {
		return entity.Added(record), true
	}

	if entry, cached := st.cache[record.ID]; cached {
		if record.Date > entry.record.Date || !bytes.Equal(raw.Payload, entry.raw.Payload) {
			return entity.Changed(record), true
		}

		return entity.ChangeDelta[T]{}, false
	}

	// Seen earlier in the session but evicted since.
	if record.Date > seenDate {
		return entity.Changed(record), true
	}

	return entity.ChangeDelta[T]{}, false
}

// evict trims the cache to the configured bound, oldest by (date, id) first.
func (e *Engine[T]) evict(st *state[T]) {
	limit := e.cfg.CacheLimit
	if limit <= 0 || len(st.cache) <= limit {
		return
	}

	entries := sortedEntries(st.cache)
	for _, entry := range entries[:len(entries)-limit] {
		delete(st.cache, entry.record.ID)
	}
}

// forget trims the session dedup set to what can still arrive again: cached ids
// and ids dated at or after the cursor. Older evicted ids are behind the cursor
// and no pull returns them.
func forget[T entity.Payload](st *state[T]) {
	watermark := st.cursor.LastSyncTimestamp
	maps.DeleteFunc(st.seen, func(id string, date int64) bool {
		if _, cached := st.cache[id]; cached {
			return false
		}

		return date < watermark
	})
}

func sortedEntries[T entity.Payload](cache map[string]cacheEntry[T]) []cacheEntry[T] {
	entries := make([]cacheEntry[T], 0, len(cache))
	for _, entry := range cache {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b cacheEntry[T]) int {
		return a.record.Cursor().Compare(b.record.Cursor())
	})

	return entries
}

// commitLocked persists staged and then makes it current. On a failed persist the
// stage is discarded and current state is untouched.
func (e *Engine[T]) commitLocked(ctx context.Context, staged *state[T], deltas []entity.ChangeDelta[T]) error {
	entries := sortedEntries(staged.cache)
	rows := make([]entity.RawRecord, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, entry.raw)
	}
	staged.cursor.CachedCount = len(rows)

	if err := e.store.SaveSnapshot(ctx, staged.cursor, rows); err != nil {
		return err
	}

	e.state = staged
	e.outbox.push(deltas)

	return nil
}

// syncPage pulls one page after the current cursor and commits it. It reports
// whether the server has more records.
func (e *Engine[T]) syncPage(ctx context.Context, limit int) (bool, error) {
	e.pullMu.Lock()
	defer e.pullMu.Unlock()

	e.mu.Lock()
	if err := e.loadLocked(ctx); err != nil {
		e.mu.Unlock()

		return false, err
	}
	from := e.state.cursor.Position()
	generation := e.generation
	e.mu.Unlock()

	result, err := e.puller.Pull(ctx, e.dataType, from, limit)
	if err != nil {
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.generation != generation {
		e.logger.Info("[DeltaSync] Cache cleared during pull, discarding page")

		return false, nil
	}

	staged := e.state.clone()
	now := e.now()
	staged.cursor.LastSyncedAt = &now

	deltas := make([]entity.ChangeDelta[T], 0, len(result.Records))
	for _, raw := range result.Records {
		record, err := entity.DecodeRecord[T](raw)
		if err != nil {
			// The cursor still moves past it so a bad row cannot wedge the stream.
			e.logger.Warn("[DeltaSync] Skipping invalid record", slog.String("record_id", raw.ID), slog.Any("error", err))

			continue
		}

		delta, emit, err := e.merge(staged, entity.Added(record))
		if err != nil {
			return false, err
		}
		if emit {
			deltas = append(deltas, delta)
		}
	}

	if len(result.Records) == 0 {
		// Nothing to persist; remember the successful sync time in memory only.
		e.state.cursor.LastSyncedAt = &now

		return false, nil
	}

	moved := staged.cursor.Follow(pageEnd(result))
	e.evict(staged)
	forget(staged)

	if err := e.commitLocked(ctx, staged, deltas); err != nil {
		return false, err
	}

	if !moved && result.HasMore {
		// Asking again would return the same page.
		e.logger.Warn("[DeltaSync] Server cursor did not advance, stopping drain",
			slog.Int64("timestamp", from.Timestamp),
			slog.String("record_id", from.RecordID),
		)

		return false, nil
	}

	return result.HasMore, nil
}

// pageEnd is where the next page starts. The server's cursor wins; the last
// record in page order is the fallback for a response without one.
func pageEnd(result *entity.PullResult) entity.Cursor {
	if !result.NextCursor.IsZero() || len(result.Records) == 0 {
		return result.NextCursor
	}
	last := result.Records[len(result.Records)-1]

	return entity.Cursor{Timestamp: last.Date, RecordID: last.ID}
}

// SyncOnce drains every page after the cursor with the given page size.
// It stops at the first failure, leaving the cursor at the last committed page.
func (e *Engine[T]) SyncOnce(ctx context.Context, pageSize int) error {
	for {
		more, err := e.syncPage(ctx, pageSize)
		if err != nil {
			return err
		}
		if !more || ctx.Err() != nil {
			return nil
		}
	}
}

// Apply merges a delta from the push path. It shares dedup and cache with the
// poll path and never moves the cursor.
func (e *Engine[T]) Apply(ctx context.Context, delta entity.ChangeDelta[T]) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.loadLocked(ctx); err != nil {
		return err
	}

	staged := e.state.clone()
	emitted, ok, err := e.merge(staged, delta)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	e.evict(staged)
	forget(staged)

	return e.commitLocked(ctx, staged, []entity.ChangeDelta[T]{emitted})
}

// StreamDeltas catches up on the backlog and then polls until ctx is cancelled.
// Pull failures are logged and retried on the next tick. The returned channel
// is closed when the stream ends.
func (e *Engine[T]) StreamDeltas(ctx context.Context) (<-chan entity.ChangeDelta[T], error) {
	if !e.outbox.attach() {
		return nil, ErrStreamActive
	}

	out := make(chan entity.ChangeDelta[T])
	go func() {
		defer close(out)
		defer e.outbox.detach()

		e.logger.Info("[DeltaSync] Stream started")
		if err := e.SyncOnce(ctx, e.cfg.CatchUpPageSize); err != nil && ctx.Err() == nil {
			e.logger.Warn("[DeltaSync] Catch-up failed, retrying on next poll", slog.Any("error", err))
		}

		ticker := time.NewTicker(e.cfg.PollInterval)
		defer ticker.Stop()

		for e.outbox.drain(ctx, out) {
			select {
			case <-ctx.Done():
			case <-e.outbox.notify:
			case <-ticker.C:
				if err := e.SyncOnce(ctx, e.cfg.PollPageSize); err != nil && ctx.Err() == nil {
					e.logger.Warn("[DeltaSync] Poll failed", slog.Any("error", err))
				}
			}
		}
		e.logger.Info("[DeltaSync] Stream stopped")
	}()

	return out, nil
}

// GetCachedRecords returns the cache ordered by (date, id).
func (e *Engine[T]) GetCachedRecords(ctx context.Context) ([]entity.Record[T], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.loadLocked(ctx); err != nil {
		return nil, err
	}

	entries := sortedEntries(e.state.cache)
	records := make([]entity.Record[T], 0, len(entries))
	for _, entry := range entries {
		records = append(records, entry.record)
	}

	return records, nil
}

// ClearCache drops the cache and resets the cursor so the next sync starts over.
func (e *Engine[T]) ClearCache(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.ClearDataType(ctx, e.dataType); err != nil {
		return err
	}
	e.state = emptyState[T](e.dataType)
	e.generation++

	return nil
}

// GetStats reports cursor and cache diagnostics.
func (e *Engine[T]) GetStats(ctx context.Context) (Stats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.loadLocked(ctx); err != nil {
		return Stats{}, err
	}

	var saved int64
	for _, entry := range e.state.cache {
		saved += int64(len(entry.raw.Payload))
	}

	return Stats{
		DataType:                e.dataType,
		LastSyncTimestamp:       e.state.cursor.LastSyncTimestamp,
		LastRecordID:            e.state.cursor.LastRecordID,
		CachedCount:             len(e.state.cache),
		EstimatedBandwidthSaved: saved,
		LastSyncedAt:            e.state.cursor.LastSyncedAt,
	}, nil
}
