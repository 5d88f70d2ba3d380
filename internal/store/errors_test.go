package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casafind/casafind-api/internal/store"
)

func TestEntityErrorsWrapCategories(t *testing.T) {
	notFound := []error{
		store.ErrUserNotFound,
		store.ErrPropertyNotFound,
		store.ErrImageNotFound,
		store.ErrFavoriteNotFound,
		store.ErrMessageNotFound,
		store.ErrReviewNotFound,
	}
	for _, err := range notFound {
		assert.True(t, store.IsNotFoundError(err), err.Error())
		assert.False(t, store.IsDuplicateError(err), err.Error())
	}

	duplicates := []error{store.ErrEmailExists, store.ErrFavoriteExists, store.ErrReviewExists}
	for _, err := range duplicates {
		assert.True(t, store.IsDuplicateError(err), err.Error())
		assert.False(t, store.IsNotFoundError(err), err.Error())
	}
}

func TestErrorHelpersSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading listing: %w", store.ErrPropertyNotFound)
	assert.True(t, store.IsNotFoundError(wrapped))
	assert.True(t, errors.Is(wrapped, store.ErrPropertyNotFound))
	assert.False(t, errors.Is(wrapped, store.ErrUserNotFound))
	assert.False(t, store.IsNotFoundError(errors.New("other")))
}
