package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"mirror/internal/domain/entity"
)

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu         sync.RWMutex
	deviceID   string
	membership *Membership
	cursors    map[entity.DataType]entity.SyncCursor
	caches     map[entity.DataType][]entity.RawRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cursors: make(map[entity.DataType]entity.SyncCursor),
		caches:  make(map[entity.DataType][]entity.RawRecord),
	}
}

// DeviceID implements Store.
func (s *MemoryStore) DeviceID(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.deviceID, nil
}

// SaveDeviceID implements Store.
func (s *MemoryStore) SaveDeviceID(_ context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deviceID = deviceID

	return nil
}

// Membership implements Store.
func (s *MemoryStore) Membership(context.Context) (*Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.membership == nil {
		return nil, ErrNoMembership
	}
	m := *s.membership

	return &m, nil
}

// SaveMembership implements Store.
func (s *MemoryStore) SaveMembership(_ context.Context, membership Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.membership = &membership

	return nil
}

// ClearMembership implements Store.
func (s *MemoryStore) ClearMembership(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.membership = nil
	clear(s.cursors)
	clear(s.caches)

	return nil
}

// LoadCursor implements Store.
func (s *MemoryStore) LoadCursor(_ context.Context, dataType entity.DataType) (entity.SyncCursor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cursor, ok := s.cursors[dataType]
	if !ok {
		return entity.SyncCursor{DataType: dataType}, nil
	}

	return cursor, nil
}

// LoadCache implements Store.
func (s *MemoryStore) LoadCache(_ context.Context, dataType entity.DataType) ([]entity.RawRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.caches[dataType]), nil
}

// SaveSnapshot implements Store.
func (s *MemoryStore) SaveSnapshot(_ context.Context, cursor entity.SyncCursor, records []entity.RawRecord) error {
	sorted := slices.Clone(records)
	slices.SortFunc(sorted, func(a, b entity.RawRecord) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})
	cursor.CachedCount = len(sorted)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursors[cursor.DataType] = cursor
	s.caches[cursor.DataType] = sorted

	return nil
}

// ClearDataType implements Store.
func (s *MemoryStore) ClearDataType(_ context.Context, dataType entity.DataType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cursors, dataType)
	delete(s.caches, dataType)

	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
