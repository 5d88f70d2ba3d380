package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/casafind/casafind-api/internal/domain"
)

// ReviewStore defines the interface for review persistence.
type ReviewStore interface {
	// Create saves a review. Returns ErrReviewExists if the reviewer already
	// reviewed the listing and ErrPropertyNotFound if it does not exist.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review.
	// Returns ErrReviewNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)

	// Update replaces rating and comment of a review written by
	// review.ReviewerID. Returns ErrReviewNotFound otherwise.
	Update(ctx context.Context, review *domain.Review) error

	// Delete removes a review written by reviewerID.
	// Returns ErrReviewNotFound otherwise.
	Delete(ctx context.Context, id, reviewerID uuid.UUID) error

	// ListByProperty returns the reviews of a listing, newest first.
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.ReviewView, error)

	// ListByReviewer returns the reviews written by a user, newest first.
	ListByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]domain.ReviewView, error)

	// Summary returns the review count and average rating of a listing.
	Summary(ctx context.Context, propertyID uuid.UUID) (domain.RatingSummary, error)

	// WithTx returns a ReviewStore bound to tx.
	WithTx(tx *sqlx.Tx) ReviewStore
}
