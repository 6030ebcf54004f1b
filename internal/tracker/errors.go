package tracker

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrConflict         = errors.New("conflict")
	ErrTrainingNotFound = errors.New("training not found")
	ErrStore            = errors.New("store error")
)

// ValidationError is returned when a field is out of range or malformed.
// Nothing is written when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConflictError is returned when a training already exists for the given calendar date.
type ConflictError struct {
	Date string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("training already exists for date %s", e.Date)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// StoreError wraps a failure of the underlying persistence engine.
type StoreError struct {
	Op  string
	Err error
}

func newStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %s", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}
