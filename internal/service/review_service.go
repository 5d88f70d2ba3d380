package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/platform/logger"
	"github.com/casafind/casafind-api/internal/store"
)

// ReviewInput is a rating with an optional comment.
type ReviewInput struct {
	Rating  int
	Comment string
}

// PropertyReviews lists the reviews of a listing with their aggregate.
type PropertyReviews struct {
	Reviews []domain.ReviewView  `json:"reviews"`
	Summary domain.RatingSummary `json:"summary"`
}

// ReviewService provides listing reviews.
type ReviewService interface {
	// ListByProperty returns a listing's reviews, newest first, and their
	// count and average rating.
	ListByProperty(ctx context.Context, propertyID uuid.UUID) (*PropertyReviews, error)

	// ListByUser returns the reviews a user has written.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ReviewView, error)

	// Create reviews a listing. Owners cannot review their own listings and
	// a user reviews each listing once.
	Create(ctx context.Context, reviewerID, propertyID uuid.UUID, in ReviewInput) (*domain.Review, error)

	// Update edits a review written by reviewerID. Returns ErrNotOwned when
	// the review is missing or written by someone else.
	Update(ctx context.Context, reviewerID, id uuid.UUID, in ReviewInput) (*domain.Review, error)

	// Delete removes a review written by reviewerID, with the same
	// ownership rule as Update.
	Delete(ctx context.Context, reviewerID, id uuid.UUID) error
}

type reviewService struct {
	reviews    store.ReviewStore
	properties store.PropertyStore
	logger     *slog.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	reviews store.ReviewStore,
	properties store.PropertyStore,
	logger *slog.Logger,
) (ReviewService, error) {
	if reviews == nil {
		return nil, domain.NewValidationError("reviews", "cannot be nil", domain.ErrValidation)
	}
	if properties == nil {
		return nil, domain.NewValidationError("properties", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewService{
		reviews:    reviews,
		properties: properties,
		logger:     logger.With(slog.String("component", "review_service")),
	}, nil
}

// ListByProperty implements ReviewService.ListByProperty
func (s *reviewService) ListByProperty(ctx context.Context, propertyID uuid.UUID) (*PropertyReviews, error) {
	reviews, err := s.reviews.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, opError("review", "list by property", err)
	}
	summary, err := s.reviews.Summary(ctx, propertyID)
	if err != nil {
		return nil, opError("review", "summary", err)
	}
	if reviews == nil {
		reviews = []domain.ReviewView{}
	}
	return &PropertyReviews{Reviews: reviews, Summary: summary}, nil
}

// ListByUser implements ReviewService.ListByUser
func (s *reviewService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ReviewView, error) {
	reviews, err := s.reviews.ListByReviewer(ctx, userID)
	if err != nil {
		return nil, opError("review", "list by user", err)
	}
	if reviews == nil {
		reviews = []domain.ReviewView{}
	}
	return reviews, nil
}

// Create implements ReviewService.Create
func (s *reviewService) Create(
	ctx context.Context,
	reviewerID, propertyID uuid.UUID,
	in ReviewInput,
) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	review, err := domain.NewReview(propertyID, reviewerID, in.Rating, in.Comment)
	if err != nil {
		return nil, err
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, store.ErrPropertyNotFound) {
			return nil, err
		}
		return nil, opError("review", "create", err)
	}
	if property.OwnerID == reviewerID {
		return nil, ErrOwnListing
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, store.ErrReviewExists) || errors.Is(err, store.ErrPropertyNotFound) {
			return nil, err
		}
		return nil, opError("review", "create", err)
	}

	log.Info("review created",
		slog.String("review_id", review.ID.String()),
		slog.String("property_id", propertyID.String()),
		slog.Int("rating", review.Rating))
	return review, nil
}

// Update implements ReviewService.Update
func (s *reviewService) Update(
	ctx context.Context,
	reviewerID, id uuid.UUID,
	in ReviewInput,
) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return nil, ErrNotOwned
		}
		return nil, opError("review", "update", err)
	}
	if review.ReviewerID != reviewerID {
		return nil, ErrNotOwned
	}

	if err := review.Edit(in.Rating, in.Comment); err != nil {
		return nil, err
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return nil, ErrNotOwned
		}
		return nil, opError("review", "update", err)
	}
	return review, nil
}

// Delete implements ReviewService.Delete
func (s *reviewService) Delete(ctx context.Context, reviewerID, id uuid.UUID) error {
	if err := s.reviews.Delete(ctx, id, reviewerID); err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return ErrNotOwned
		}
		return opError("review", "delete", err)
	}
	return nil
}
