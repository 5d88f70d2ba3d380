package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint (e.g., a second account with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or a
	// constraint check in the store.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUnavailable is returned when the store could not be reached or the
	// request deadline expired. Callers may retry.
	ErrUnavailable = errors.New("store unavailable")

	// Entity-specific "not found" errors

	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrPropertyNotFound = fmt.Errorf("%w: property", ErrNotFound)
	ErrImageNotFound    = fmt.Errorf("%w: property image", ErrNotFound)
	ErrFavoriteNotFound = fmt.Errorf("%w: favorite", ErrNotFound)
	ErrMessageNotFound  = fmt.Errorf("%w: message", ErrNotFound)
	ErrReviewNotFound   = fmt.Errorf("%w: review", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrFavoriteExists indicates the property is already in the user's favorites.
	ErrFavoriteExists = fmt.Errorf("%w: favorite", ErrDuplicate)

	// ErrReviewExists indicates the user already reviewed the property.
	ErrReviewExists = fmt.Errorf("%w: review", ErrDuplicate)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
