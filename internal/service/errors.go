package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
var (
	// ErrNotOwned indicates a resource is missing or owned by a different user
	// than the one making the request. API layer maps it to 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrNotParticipant indicates the caller neither sent nor received the
	// message. API layer maps it to 403 Forbidden.
	ErrNotParticipant = errors.New("not a participant of this conversation")

	// ErrOwnListing is returned when an owner reviews their own property.
	ErrOwnListing = errors.New("cannot review your own property")

	// ErrStorageDisabled is returned by image operations when no object store
	// is configured.
	ErrStorageDisabled = errors.New("image storage is not configured")
)

// OperationError wraps an unexpected failure with the service and operation
// it happened in.
type OperationError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for OperationError.
func (e *OperationError) Error() string {
	return fmt.Sprintf("%s service %s failed: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *OperationError) Unwrap() error {
	return e.Err
}

func opError(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Service: service, Operation: operation, Err: err}
}
