package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a property as saved by a user. A (user, property) pair is
// unique.
type Favorite struct {
	ID         uuid.UUID `json:"id"          db:"id"`
	UserID     uuid.UUID `json:"user_id"     db:"user_id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// NewFavorite creates a favorite linking userID to propertyID.
func NewFavorite(userID, propertyID uuid.UUID) (*Favorite, error) {
	if userID == uuid.Nil {
		return nil, NewValidationError("user_id", "cannot be empty", ErrInvalidID)
	}
	if propertyID == uuid.Nil {
		return nil, NewValidationError("property_id", "cannot be empty", ErrInvalidID)
	}
	return &Favorite{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// FavoriteProperty is a listing in a user's favorites with the time it was saved.
type FavoriteProperty struct {
	PropertyListing
	FavoritedAt time.Time `json:"favorited_at" db:"favorited_at"`
}
