package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound               = errors.New("resource not found")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrStorageUnavailable     = errors.New("storage unavailable")
	ErrOutOfRange             = errors.New("value out of range")
	ErrValidation             = errors.New("validation failed")
	ErrNoRecipient            = errors.New("customer has no email address")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// OutOfRangeError reports a value outside the supported magnitude.
type OutOfRangeError struct {
	Value int64
	Max   int64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("value %d exceeds supported maximum %d", e.Value, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// StorageError wraps a failure to read or write a record collection.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}
