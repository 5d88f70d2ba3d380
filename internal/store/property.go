package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/casafind/casafind-api/internal/domain"
)

// PropertyStore defines the interface for listing persistence.
type PropertyStore interface {
	// Create saves a new listing. Returns ErrUserNotFound if the owner does
	// not exist.
	Create(ctx context.Context, property *domain.Property) error

	// GetByID retrieves the bare listing row.
	// Returns ErrPropertyNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)

	// GetListing retrieves a listing joined with its owner and main image.
	// Returns ErrPropertyNotFound if it does not exist.
	GetListing(ctx context.Context, id uuid.UUID) (*domain.PropertyListing, error)

	// Update replaces the editable fields of a listing owned by
	// property.OwnerID. Returns ErrPropertyNotFound when no listing with that
	// id and owner exists.
	Update(ctx context.Context, property *domain.Property) error

	// Delete removes a listing owned by ownerID together with its images,
	// favorites, messages and reviews. Returns ErrPropertyNotFound when no
	// listing with that id and owner exists.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// Search returns one page of listings matching filter and the total
	// number of matches.
	Search(ctx context.Context, filter domain.PropertyFilter) ([]domain.PropertyListing, int, error)

	// WithTx returns a PropertyStore bound to tx.
	WithTx(tx *sqlx.Tx) PropertyStore
}

// PropertyImageStore defines the interface for listing image persistence.
type PropertyImageStore interface {
	// Create saves image metadata. Returns ErrPropertyNotFound if the
	// listing does not exist.
	Create(ctx context.Context, image *domain.PropertyImage) error

	// ListByProperty returns the images of a listing, main image first.
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.PropertyImage, error)

	// Get retrieves one image of a listing.
	// Returns ErrImageNotFound if it does not exist.
	Get(ctx context.Context, propertyID, imageID uuid.UUID) (*domain.PropertyImage, error)

	// Delete removes one image of a listing.
	// Returns ErrImageNotFound if it does not exist.
	Delete(ctx context.Context, propertyID, imageID uuid.UUID) error

	// PromoteOldest marks the oldest remaining image of a listing as main.
	// It is a no-op when the listing has no images.
	PromoteOldest(ctx context.Context, propertyID uuid.UUID) error

	// NextSortOrder returns the sort position for a new image and whether
	// the listing currently has no images.
	NextSortOrder(ctx context.Context, propertyID uuid.UUID) (int, bool, error)

	// WithTx returns a PropertyImageStore bound to tx.
	WithTx(tx *sqlx.Tx) PropertyImageStore
}
