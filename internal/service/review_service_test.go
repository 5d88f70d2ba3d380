package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/mocks"
	"github.com/casafind/casafind-api/internal/service"
	"github.com/casafind/casafind-api/internal/store"
)

func newReviewService(t *testing.T) (service.ReviewService, *mocks.MockReviewStore, *mocks.MockPropertyStore) {
	t.Helper()
	reviews := new(mocks.MockReviewStore)
	properties := new(mocks.MockPropertyStore)
	t.Cleanup(func() {
		reviews.AssertExpectations(t)
		properties.AssertExpectations(t)
	})

	svc, err := service.NewReviewService(reviews, properties, testLogger())
	require.NoError(t, err)
	return svc, reviews, properties
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID, reviewerID, propertyID := uuid.New(), uuid.New(), uuid.New()
	property := &domain.Property{ID: propertyID, OwnerID: ownerID}

	t.Run("success", func(t *testing.T) {
		svc, reviews, properties := newReviewService(t)
		properties.On("GetByID", mock.Anything, propertyID).Return(property, nil)
		reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
			return r.Rating == 4 && r.ReviewerID == reviewerID && r.Comment == "Nice"
		})).Return(nil)

		review, err := svc.Create(ctx, reviewerID, propertyID, service.ReviewInput{Rating: 4, Comment: " Nice "})
		require.NoError(t, err)
		assert.Equal(t, propertyID, review.PropertyID)
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc, _, _ := newReviewService(t)

		_, err := svc.Create(ctx, reviewerID, propertyID, service.ReviewInput{Rating: 6})
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	})

	t.Run("own listing", func(t *testing.T) {
		svc, _, properties := newReviewService(t)
		properties.On("GetByID", mock.Anything, propertyID).Return(property, nil)

		_, err := svc.Create(ctx, ownerID, propertyID, service.ReviewInput{Rating: 5})
		assert.ErrorIs(t, err, service.ErrOwnListing)
	})

	t.Run("missing property", func(t *testing.T) {
		svc, _, properties := newReviewService(t)
		properties.On("GetByID", mock.Anything, propertyID).Return(nil, store.ErrPropertyNotFound)

		_, err := svc.Create(ctx, reviewerID, propertyID, service.ReviewInput{Rating: 5})
		assert.ErrorIs(t, err, store.ErrPropertyNotFound)
	})

	t.Run("second review", func(t *testing.T) {
		svc, reviews, properties := newReviewService(t)
		properties.On("GetByID", mock.Anything, propertyID).Return(property, nil)
		reviews.On("Create", mock.Anything, mock.Anything).Return(store.ErrReviewExists)

		_, err := svc.Create(ctx, reviewerID, propertyID, service.ReviewInput{Rating: 3})
		assert.ErrorIs(t, err, store.ErrReviewExists)
	})
}

func TestReviewService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	reviewerID, reviewID := uuid.New(), uuid.New()
	existing := func() *domain.Review {
		return &domain.Review{
			ID:         reviewID,
			PropertyID: uuid.New(),
			ReviewerID: reviewerID,
			Rating:     2,
		}
	}

	t.Run("update by reviewer", func(t *testing.T) {
		svc, reviews, _ := newReviewService(t)
		reviews.On("GetByID", mock.Anything, reviewID).Return(existing(), nil)
		reviews.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
			return r.Rating == 5 && r.Comment == "Better now"
		})).Return(nil)

		review, err := svc.Update(ctx, reviewerID, reviewID, service.ReviewInput{Rating: 5, Comment: "Better now"})
		require.NoError(t, err)
		assert.Equal(t, 5, review.Rating)
	})

	t.Run("update by someone else", func(t *testing.T) {
		svc, reviews, _ := newReviewService(t)
		reviews.On("GetByID", mock.Anything, reviewID).Return(existing(), nil)

		_, err := svc.Update(ctx, uuid.New(), reviewID, service.ReviewInput{Rating: 5})
		assert.ErrorIs(t, err, service.ErrNotOwned)
	})

	t.Run("update of a missing review", func(t *testing.T) {
		svc, reviews, _ := newReviewService(t)
		reviews.On("GetByID", mock.Anything, reviewID).Return(nil, store.ErrReviewNotFound)

		_, err := svc.Update(ctx, reviewerID, reviewID, service.ReviewInput{Rating: 5})
		assert.ErrorIs(t, err, service.ErrNotOwned)
	})

	t.Run("delete by someone else", func(t *testing.T) {
		svc, reviews, _ := newReviewService(t)
		other := uuid.New()
		reviews.On("Delete", mock.Anything, reviewID, other).Return(store.ErrReviewNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, other, reviewID), service.ErrNotOwned)
	})
}

func TestReviewService_ListByProperty(t *testing.T) {
	svc, reviews, _ := newReviewService(t)
	propertyID := uuid.New()
	reviews.On("ListByProperty", mock.Anything, propertyID).Return(nil, nil)
	reviews.On("Summary", mock.Anything, propertyID).Return(domain.RatingSummary{}, nil)

	got, err := svc.ListByProperty(context.Background(), propertyID)
	require.NoError(t, err)
	assert.NotNil(t, got.Reviews)
	assert.Equal(t, 0, got.Summary.Count)
}
