package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is()
var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrBadRequest          = errors.New("bad request")
	ErrConflict            = errors.New("version conflict")
	ErrValidation          = errors.New("validation error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidState        = errors.New("invalid stored state")
	ErrExpired             = errors.New("resource expired")
	ErrStorageUnavailable  = errors.New("object store unavailable")
	ErrMetadataUnavailable = errors.New("metadata store unavailable")
	ErrInternalServer      = errors.New("internal server error")
)

// AppError carries a stable code and a human message alongside the
// sentinel it wraps.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructors
func NotFound(msg string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: msg, Err: ErrNotFound}
}

func Unauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Err: ErrUnauthorized}
}

func BadRequest(msg string) *AppError {
	return &AppError{Code: "BAD_REQUEST", Message: msg, Err: ErrBadRequest}
}

func Conflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Err: ErrConflict}
}

func InvalidState(msg string) *AppError {
	return &AppError{Code: "INVALID_STATE", Message: msg, Err: ErrInvalidState}
}

func StorageUnavailable(msg string, err error) *AppError {
	return &AppError{Code: "STORAGE_UNAVAILABLE", Message: msg, Err: join(ErrStorageUnavailable, err)}
}

func MetadataUnavailable(msg string, err error) *AppError {
	return &AppError{Code: "METADATA_UNAVAILABLE", Message: msg, Err: join(ErrMetadataUnavailable, err)}
}

func InternalServer(msg string, err error) *AppError {
	if err == nil {
		err = ErrInternalServer
	}
	return &AppError{Code: "INTERNAL_SERVER_ERROR", Message: msg, Err: err}
}

func join(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return errors.Join(sentinel, cause)
}
