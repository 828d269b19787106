package entity

import (
	"github.com/pkg/errors"
)

// DeltaKind tags the variant carried by a ChangeDelta.
type DeltaKind string

const (
	DeltaAdded   DeltaKind = "added"
	DeltaChanged DeltaKind = "changed"
	DeltaRemoved DeltaKind = "removed"
)

// IsValid checks if the DeltaKind is a valid value.
func (k DeltaKind) IsValid() bool {
	switch k {
	case DeltaAdded, DeltaChanged, DeltaRemoved:
		return true
	default:
		return false
	}
}

// ErrInvalidDelta is returned when a delta's variant does not match its contents.
var ErrInvalidDelta = errors.New("invalid change delta")

// ChangeDelta is the unit moved by both the poll path and the push path.
// Added and Changed carry Record; Removed carries only RecordID.
type ChangeDelta[T Payload] struct {
	Kind     DeltaKind  `json:"kind"`
	Record   *Record[T] `json:"record,omitempty"`
	RecordID string     `json:"record_id,omitempty"`
}

// Added builds an Added delta.
func Added[T Payload](record Record[T]) ChangeDelta[T] {
	return ChangeDelta[T]{Kind: DeltaAdded, Record: &record, RecordID: record.ID}
}

// Changed builds a Changed delta.
func Changed[T Payload](record Record[T]) ChangeDelta[T] {
	return ChangeDelta[T]{Kind: DeltaChanged, Record: &record, RecordID: record.ID}
}

// Removed builds a Removed delta.
func Removed[T Payload](recordID string) ChangeDelta[T] {
	return ChangeDelta[T]{Kind: DeltaRemoved, RecordID: recordID}
}

// RawDelta is the wire form of a ChangeDelta, payload left encoded.
type RawDelta struct {
	Kind     DeltaKind  `json:"kind"`
	Record   *RawRecord `json:"record,omitempty"`
	RecordID string     `json:"record_id,omitempty"`
}

// DecodeDelta validates raw and converts it into a typed delta.
func DecodeDelta[T Payload](raw RawDelta) (ChangeDelta[T], error) {
	switch raw.Kind {
	case DeltaAdded, DeltaChanged:
		if raw.Record == nil {
			return ChangeDelta[T]{}, errors.Wrapf(ErrInvalidDelta, "%s delta without record", raw.Kind)
		}

		record, err := DecodeRecord[T](*raw.Record)
		if err != nil {
			return ChangeDelta[T]{}, err
		}
		if raw.Kind == DeltaAdded {
			return Added(record), nil
		}

		return Changed(record), nil

	case DeltaRemoved:
		if raw.RecordID == "" {
			return ChangeDelta[T]{}, errors.Wrap(ErrInvalidDelta, "removed delta without record id")
		}

		return Removed[T](raw.RecordID), nil

	default:
		return ChangeDelta[T]{}, errors.Wrapf(ErrInvalidDelta, "unknown kind %q", raw.Kind)
	}
}
