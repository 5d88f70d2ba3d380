package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Rating bounds.
const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 2000
)

// Review is a rating left by a user on a property. A user reviews a given
// property at most once.
type Review struct {
	ID         uuid.UUID `json:"id"          db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	ReviewerID uuid.UUID `json:"reviewer_id" db:"reviewer_id"`
	Rating     int       `json:"rating"      db:"rating"`
	Comment    string    `json:"comment"     db:"comment"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"  db:"updated_at"`
}

// NewReview creates a validated review.
func NewReview(propertyID, reviewerID uuid.UUID, rating int, comment string) (*Review, error) {
	now := time.Now().UTC()
	r := &Review{
		ID:         uuid.New(),
		PropertyID: propertyID,
		ReviewerID: reviewerID,
		CreatedAt:  now,
	}
	if err := r.Edit(rating, comment); err != nil {
		return nil, err
	}
	r.UpdatedAt = now
	return r, nil
}

// Edit replaces the rating and comment.
func (r *Review) Edit(rating int, comment string) error {
	r.Rating = rating
	r.Comment = strings.TrimSpace(comment)
	r.UpdatedAt = time.Now().UTC()
	return r.Validate()
}

// Validate checks if the Review has valid data.
func (r *Review) Validate() error {
	switch {
	case r.ID == uuid.Nil:
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	case r.PropertyID == uuid.Nil:
		return NewValidationError("property_id", "cannot be empty", ErrInvalidID)
	case r.ReviewerID == uuid.Nil:
		return NewValidationError("reviewer_id", "cannot be empty", ErrInvalidID)
	case r.Rating < MinRating || r.Rating > MaxRating:
		return NewValidationError("rating", "must be between 1 and 5", ErrInvalidRating)
	case utf8.RuneCountInString(r.Comment) > MaxCommentLength:
		return NewValidationError("comment", "must be at most 2000 characters", ErrContentTooLong)
	}
	return nil
}

// ReviewView is a review with the reviewer's display name.
type ReviewView struct {
	Review
	ReviewerName  string `json:"reviewer_name"  db:"reviewer_name"`
	PropertyTitle string `json:"property_title" db:"property_title"`
}

// RatingSummary aggregates the reviews of a property.
type RatingSummary struct {
	Count         int     `json:"count"          db:"count"`
	AverageRating float64 `json:"average_rating" db:"average_rating"`
}
