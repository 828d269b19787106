package errors

import (
	"fmt"
	"net/http"

	"mirror/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// DetailedError is implemented by errors that expose structured details to clients.
type DetailedError interface {
	ErrorDetails() any
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches base errors by error code so WithDetails copies still match their sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
}

// Error codes shared with clients
const (
	CodeGroupNotFound      = "GROUP_NOT_FOUND"
	CodeDeviceLimitReached = "DEVICE_LIMIT_REACHED"
	CodeNoGroupFound       = "NO_GROUP_FOUND"
	CodeDeviceNotMember    = "DEVICE_NOT_MEMBER"
	CodeNotMasterDevice    = "NOT_MASTER_DEVICE"
	CodeInvalidDataType    = "INVALID_DATA_TYPE"
	CodeInvalidPayload     = "INVALID_PAYLOAD"
	CodeRecordNotFound     = "RECORD_NOT_FOUND"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// Predefined error types
var (
	// Membership-related errors
	ErrGroupNotFound = NewBaseError(
		http.StatusNotFound,
		CodeGroupNotFound,
		"sync group not found",
		"",
	)

	ErrNoGroupFound = NewBaseError(
		http.StatusNotFound,
		CodeNoGroupFound,
		"no sync group found for this device",
		"",
	)

	ErrDeviceNotMember = NewBaseError(
		http.StatusForbidden,
		CodeDeviceNotMember,
		"device is not a member of this sync group",
		"",
	)

	ErrNotMasterDevice = NewBaseError(
		http.StatusForbidden,
		CodeNotMasterDevice,
		"only the master device can perform this action",
		"",
	)

	// Sync-related errors
	ErrInvalidDataType = NewBaseError(
		http.StatusBadRequest,
		CodeInvalidDataType,
		"unknown data type",
		"",
	)

	ErrInvalidPayload = NewBaseError(
		http.StatusBadRequest,
		CodeInvalidPayload,
		"record payload does not match its data type",
		"",
	)

	ErrRecordNotFound = NewBaseError(
		http.StatusNotFound,
		CodeRecordNotFound,
		"record not found",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		CodeValidationFailed,
		"input validation failed",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		CodeInvalidToken,
		"invalid or expired device token",
		"",
	)

	ErrRateLimited = NewBaseError(
		http.StatusTooManyRequests,
		CodeRateLimited,
		"too many requests, slow down",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		CodeInternalError,
		"internal error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)
)

// DeviceLimitReachedError is returned when a new device would exceed the group's plan limit.
type DeviceLimitReachedError struct {
	Current int `json:"current"`
	Limit   int `json:"limit"`
}

// NewDeviceLimitReachedError creates a device limit error for the given counts
func NewDeviceLimitReachedError(current, limit int) *DeviceLimitReachedError {
	return &DeviceLimitReachedError{Current: current, Limit: limit}
}

// Error implements the error interface
func (e *DeviceLimitReachedError) Error() string {
	return fmt.Sprintf("device limit reached (%d/%d)", e.Current, e.Limit)
}

// HTTPCode returns the HTTP status code
func (e *DeviceLimitReachedError) HTTPCode() int {
	return http.StatusConflict
}

// ErrorCode returns the business error code
func (e *DeviceLimitReachedError) ErrorCode() string {
	return CodeDeviceLimitReached
}

// Message returns the user-friendly error message
func (e *DeviceLimitReachedError) Message() string {
	return "device limit reached, upgrade for unlimited devices"
}

// Details returns detailed error information
func (e *DeviceLimitReachedError) Details() string {
	return fmt.Sprintf("current=%d limit=%d", e.Current, e.Limit)
}

// ErrorDetails exposes the counts to clients
func (e *DeviceLimitReachedError) ErrorDetails() any {
	return map[string]int{"current": e.Current, "limit": e.Limit}
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap returns the underlying driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// TransportError is a transient failure talking to the sync server.
// Callers retry it under their own policy.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// StorageError is a failure of a device's local store. It is fatal to the current operation.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("local storage %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for op
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}

	return &StorageError{Op: op, Err: err}
}

// FromCode maps an error code received from the server back to a domain error.
// Unknown codes return nil.
func FromCode(code string, details map[string]any) error {
	switch code {
	case CodeGroupNotFound:
		return ErrGroupNotFound
	case CodeNoGroupFound:
		return ErrNoGroupFound
	case CodeDeviceNotMember:
		return ErrDeviceNotMember
	case CodeNotMasterDevice:
		return ErrNotMasterDevice
	case CodeInvalidDataType:
		return ErrInvalidDataType
	case CodeInvalidPayload:
		return ErrInvalidPayload
	case CodeRecordNotFound:
		return ErrRecordNotFound
	case CodeValidationFailed:
		return ErrValidationFailed
	case CodeInvalidToken:
		return ErrInvalidToken
	case CodeRateLimited:
		return ErrRateLimited
	case CodeDeviceLimitReached:
		return NewDeviceLimitReachedError(intDetail(details, "current"), intDetail(details, "limit"))
	default:
		return nil
	}
}

func intDetail(details map[string]any, key string) int {
	switch v := details[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
