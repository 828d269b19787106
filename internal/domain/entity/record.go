package entity

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// DataType names a synchronized collection.
type DataType string

const (
	DataTypeMessages DataType = "messages"
	DataTypeContacts DataType = "contacts"
	DataTypeCalls    DataType = "calls"
)

// DataTypes lists every synchronized collection.
func DataTypes() []DataType {
	return []DataType{DataTypeMessages, DataTypeContacts, DataTypeCalls}
}

// IsValid checks if the DataType is a valid value.
func (d DataType) IsValid() bool {
	switch d {
	case DataTypeMessages, DataTypeContacts, DataTypeCalls:
		return true
	default:
		return false
	}
}

// String returns the string representation of the DataType.
func (d DataType) String() string {
	return string(d)
}

// ErrInvalidPayload is returned when a record payload does not match its data type.
var ErrInvalidPayload = errors.New("invalid record payload")

// ErrUnknownDataType is returned for data types outside DataTypes.
var ErrUnknownDataType = errors.New("unknown data type")

// Payload is the data-type-specific body of a record.
type Payload interface {
	DataType() DataType
}

// Message is an SMS/MMS conversation entry.
type Message struct {
	ThreadID  string `json:"thread_id" validate:"required"`
	Address   string `json:"address" validate:"required"`
	Body      string `json:"body"`
	Direction string `json:"direction" validate:"required,oneof=inbound outbound"`
	Read      bool   `json:"read"`
}

// DataType implements Payload.
func (Message) DataType() DataType { return DataTypeMessages }

// Contact is an address book entry.
type Contact struct {
	DisplayName  string   `json:"display_name" validate:"required"`
	PhoneNumbers []string `json:"phone_numbers" validate:"dive,required"`
	Email        string   `json:"email,omitempty" validate:"omitempty,email"`
	Starred      bool     `json:"starred"`
}

// DataType implements Payload.
func (Contact) DataType() DataType { return DataTypeContacts }

// Call is a call log entry.
type Call struct {
	Number          string `json:"number" validate:"required"`
	Direction       string `json:"direction" validate:"required,oneof=incoming outgoing missed rejected"`
	DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
}

// DataType implements Payload.
func (Call) DataType() DataType { return DataTypeCalls }

// RawRecord is the storage and wire form of a record, payload left encoded.
type RawRecord struct {
	ID      string          `json:"id"`
	Date    int64           `json:"date"` // Epoch milliseconds, drives cursor advancement.
	Payload json.RawMessage `json:"payload"`
}

// Record is a typed record of a single data type.
type Record[T Payload] struct {
	ID      string `json:"id"`
	Date    int64  `json:"date"`
	Payload T      `json:"payload"`
}

// Cursor returns the position of this record in (date, id) order.
func (r Record[T]) Cursor() Cursor {
	return Cursor{Timestamp: r.Date, RecordID: r.ID}
}

// Raw encodes the record for storage or transport.
func (r Record[T]) Raw() (RawRecord, error) {
	payload, err := json.Marshal(r.Payload)
	if err != nil {
		return RawRecord{}, errors.Wrap(err, "failed to encode payload")
	}

	return RawRecord{ID: r.ID, Date: r.Date, Payload: payload}, nil
}

//nolint:gochecknoglobals
var payloadValidator = validator.New(validator.WithRequiredStructEnabled())

// DecodeRecord decodes and validates raw as a record of T.
func DecodeRecord[T Payload](raw RawRecord) (Record[T], error) {
	var record Record[T]

	if raw.ID == "" {
		return record, errors.Wrap(ErrInvalidPayload, "record id is required")
	}
	if raw.Date < 0 {
		return record, errors.Wrap(ErrInvalidPayload, "record date must not be negative")
	}

	var payload T
	if err := json.Unmarshal(raw.Payload, &payload); err != nil {
		return record, errors.Wrapf(ErrInvalidPayload, "decode %s payload: %v", payload.DataType(), err)
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return record, errors.Wrapf(ErrInvalidPayload, "validate %s payload: %v", payload.DataType(), err)
	}

	return Record[T]{ID: raw.ID, Date: raw.Date, Payload: payload}, nil
}

// ValidateRawRecord checks raw against the payload type registered for dataType.
func ValidateRawRecord(dataType DataType, raw RawRecord) error {
	var err error

	switch dataType {
	case DataTypeMessages:
		_, err = DecodeRecord[Message](raw)
	case DataTypeContacts:
		_, err = DecodeRecord[Contact](raw)
	case DataTypeCalls:
		_, err = DecodeRecord[Call](raw)
	default:
		return errors.Wrapf(ErrUnknownDataType, "%q", dataType)
	}

	return err
}
