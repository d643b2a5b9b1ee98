// Package fault defines the error taxonomy shared by all orchestrators and
// storage adapters. Every rejected operation returns one of these typed
// errors so callers can distinguish validation problems, missing records,
// business-rule conflicts, and storage failures without parsing messages.
package fault

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced record that does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// ConflictError reports a business-rule conflict: an overlapping
// subscription period, an outstanding unpaid invoice, a duplicate
// code/receipt/username, an open attendance session, and the like.
// ConflictingID identifies the existing row that blocked the operation,
// when known.
type ConflictError struct {
	Reason        string
	ConflictingID string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return e.Reason
}

// StorageError reports a connection or IO failure in the entity store.
// Fatal for the current operation only.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying driver error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Validation builds a ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFound builds a NotFoundError.
func NotFound(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// Conflict builds a ConflictError.
func Conflict(reason, conflictingID string) error {
	return &ConflictError{Reason: reason, ConflictingID: conflictingID}
}

// Storage wraps a driver error with the failing operation name.
func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
