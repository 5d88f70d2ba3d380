package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/casafind/casafind-api/internal/domain"
)

// FavoriteStore defines the interface for favorites persistence.
type FavoriteStore interface {
	// Add saves a favorite. Returns ErrFavoriteExists if the pair is already
	// saved and ErrPropertyNotFound if the listing does not exist.
	Add(ctx context.Context, favorite *domain.Favorite) error

	// AddIfAbsent saves a favorite unless the pair already exists.
	// Returns ErrPropertyNotFound if the listing does not exist.
	AddIfAbsent(ctx context.Context, favorite *domain.Favorite) error

	// Remove deletes the pair and reports whether a row was removed.
	Remove(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)

	// Exists reports whether the pair is saved.
	Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)

	// ListByUser returns the user's favorite listings, most recent first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteProperty, error)

	// WithTx returns a FavoriteStore bound to tx.
	WithTx(tx *sqlx.Tx) FavoriteStore
}
