package push

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"mirror/internal/domain/entity"
	"mirror/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingApplier[T entity.Payload] struct {
	mu     sync.Mutex
	deltas []entity.ChangeDelta[T]
	err    error
}

func (a *recordingApplier[T]) DataType() entity.DataType {
	var zero T

	return zero.DataType()
}

func (a *recordingApplier[T]) Apply(_ context.Context, delta entity.ChangeDelta[T]) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.err != nil {
		return a.err
	}
	a.deltas = append(a.deltas, delta)

	return nil
}

func (a *recordingApplier[T]) applied() []entity.ChangeDelta[T] {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]entity.ChangeDelta[T], len(a.deltas))
	copy(out, a.deltas)

	return out
}

func rawMessage(id string, date int64) *entity.RawRecord {
	payload, _ := json.Marshal(entity.Message{ThreadID: "t1", Address: "+100", Body: "hi", Direction: "inbound"})

	return &entity.RawRecord{ID: id, Date: date, Payload: payload}
}

func TestRouter_DispatchDecodesTypedDelta(t *testing.T) {
	router := NewRouter()
	messages := &recordingApplier[entity.Message]{}
	Register[entity.Message](router, messages)

	err := router.Dispatch(context.Background(), entity.DataTypeMessages, entity.RawDelta{
		Kind:   entity.DeltaAdded,
		Record: rawMessage("m1", 100),
	})
	require.NoError(t, err)

	applied := messages.applied()
	require.Len(t, applied, 1)
	assert.Equal(t, entity.DeltaAdded, applied[0].Kind)
	assert.Equal(t, "m1", applied[0].Record.ID)
	assert.Equal(t, "+100", applied[0].Record.Payload.Address)
}

func TestRouter_DispatchErrors(t *testing.T) {
	router := NewRouter()
	messages := &recordingApplier[entity.Message]{}
	Register[entity.Message](router, messages)

	tests := []struct {
		name     string
		dataType entity.DataType
		delta    entity.RawDelta
		target   error
	}{
		{
			name:     "no route",
			dataType: entity.DataTypeCalls,
			delta:    entity.RawDelta{Kind: entity.DeltaRemoved, RecordID: "c1"},
			target:   entity.ErrUnknownDataType,
		},
		{
			name:     "added without record",
			dataType: entity.DataTypeMessages,
			delta:    entity.RawDelta{Kind: entity.DeltaAdded},
			target:   entity.ErrInvalidDelta,
		},
		{
			name:     "payload of wrong shape",
			dataType: entity.DataTypeMessages,
			delta: entity.RawDelta{Kind: entity.DeltaChanged, Record: &entity.RawRecord{
				ID: "m1", Date: 1, Payload: json.RawMessage(`{"number":"+1"}`),
			}},
			target: entity.ErrInvalidPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := router.Dispatch(context.Background(), tt.dataType, tt.delta)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}

	assert.Empty(t, messages.applied())
}

func TestRouter_DataTypesSorted(t *testing.T) {
	router := NewRouter()
	Register[entity.Message](router, &recordingApplier[entity.Message]{})
	Register[entity.Call](router, &recordingApplier[entity.Call]{})
	Register[entity.Contact](router, &recordingApplier[entity.Contact]{})

	assert.Equal(t, []entity.DataType{entity.DataTypeCalls, entity.DataTypeContacts, entity.DataTypeMessages}, router.DataTypes())
}
