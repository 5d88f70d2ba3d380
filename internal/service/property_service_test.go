package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/mocks"
	"github.com/casafind/casafind-api/internal/service"
	"github.com/casafind/casafind-api/internal/store"
)

type propertyFixture struct {
	svc        service.PropertyService
	properties *mocks.MockPropertyStore
	images     *mocks.MockPropertyImageStore
	storage    *mocks.MockObjectStorage
	sql        sqlmock.Sqlmock
}

func (f *propertyFixture) expectTx(commit bool) {
	f.sql.ExpectBegin()
	if commit {
		f.sql.ExpectCommit()
	} else {
		f.sql.ExpectRollback()
	}
}

func newPropertyFixture(t *testing.T, withStorage bool) *propertyFixture {
	t.Helper()
	db, sqlMock := newTxDB(t)

	f := &propertyFixture{
		properties: new(mocks.MockPropertyStore),
		images:     new(mocks.MockPropertyImageStore),
	}
	var storage service.ObjectStorage
	if withStorage {
		f.storage = mocks.NewMockObjectStorage()
		storage = f.storage
	}

	svc, err := service.NewPropertyService(db, f.properties, f.images, storage, testLogger())
	require.NoError(t, err)
	f.svc = svc
	f.sql = sqlMock

	t.Cleanup(func() {
		f.properties.AssertExpectations(t)
		f.images.AssertExpectations(t)
	})
	return f
}

func validPropertyInput() domain.PropertyInput {
	return domain.PropertyInput{
		Title:   "Sunny flat",
		Price:   1500,
		Address: "Rua A, 10",
		City:    "Lisboa",
		State:   "LX",
	}
}

func TestPropertyService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("normalises parameters and computes pagination", func(t *testing.T) {
		f := newPropertyFixture(t, false)
		listings := []domain.PropertyListing{{Property: domain.Property{ID: uuid.New()}}}

		f.properties.On("Search", mock.Anything, mock.MatchedBy(func(filter domain.PropertyFilter) bool {
			return *filter.Status == domain.StatusAvailable &&
				filter.SortBy == domain.SortByPrice &&
				filter.SortOrder == domain.SortDesc &&
				filter.Page == domain.Page{Number: 2, Limit: 10} &&
				filter.OwnerID == nil
		})).Return(listings, 25, nil)

		page, err := f.svc.Search(ctx, domain.PropertySearchParams{
			SortBy: "price", SortOrder: "sideways", Page: "2", Limit: "abc",
		})

		require.NoError(t, err)
		assert.Equal(t, listings, page.Properties)
		assert.Equal(t, domain.Pagination{Total: 25, TotalPages: 3, CurrentPage: 2, Limit: 10}, page.Pagination)
	})

	t.Run("invalid price never reaches the store", func(t *testing.T) {
		f := newPropertyFixture(t, false)

		_, err := f.svc.Search(ctx, domain.PropertySearchParams{MinPrice: "cheap"})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = f.svc.Search(ctx, domain.PropertySearchParams{MinPrice: "500", MaxPrice: "100"})
		assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	})
}

func TestPropertyService_ListOwned(t *testing.T) {
	f := newPropertyFixture(t, false)
	ownerID := uuid.New()

	f.properties.On("Search", mock.Anything, mock.MatchedBy(func(filter domain.PropertyFilter) bool {
		return filter.Status == nil && filter.OwnerID != nil && *filter.OwnerID == ownerID
	})).Return([]domain.PropertyListing{}, 0, nil)

	page, err := f.svc.ListOwned(context.Background(), ownerID, "", "")
	require.NoError(t, err)
	assert.Equal(t, 0, page.Pagination.TotalPages)
}

func TestPropertyService_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("includes images", func(t *testing.T) {
		f := newPropertyFixture(t, false)
		listing := &domain.PropertyListing{Property: domain.Property{ID: id, Title: "Loft"}}
		images := []domain.PropertyImage{{ID: uuid.New(), PropertyID: id, IsMain: true}}
		f.properties.On("GetListing", mock.Anything, id).Return(listing, nil)
		f.images.On("ListByProperty", mock.Anything, id).Return(images, nil)

		detail, err := f.svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Loft", detail.Title)
		assert.Equal(t, images, detail.Images)
	})

	t.Run("missing", func(t *testing.T) {
		f := newPropertyFixture(t, false)
		f.properties.On("GetListing", mock.Anything, id).Return(nil, store.ErrPropertyNotFound)

		_, err := f.svc.Get(ctx, id)
		assert.ErrorIs(t, err, store.ErrPropertyNotFound)
	})
}

func TestPropertyService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("owner is the caller", func(t *testing.T) {
		f := newPropertyFixture(t, false)
		f.properties.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Property) bool {
			return p.OwnerID == ownerID && p.Status == domain.StatusAvailable
		})).Return(nil)

		p, err := f.svc.Create(ctx, ownerID, validPropertyInput())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
	})

	t.Run("validation", func(t *testing.T) {
		f := newPropertyFixture(t, false)
		in := validPropertyInput()
		in.Title = ""

		_, err := f.svc.Create(ctx, ownerID, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPropertyService_UpdateDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	ownerID, id := uuid.New(), uuid.New()

	t.Run("update of a foreign listing", func(t *testing.T) {
		f := newPropertyFixture(t, false)
		f.properties.On("Update", mock.Anything, mock.Anything).Return(store.ErrPropertyNotFound)

		err := f.svc.Update(ctx, ownerID, id, validPropertyInput())
		assert.ErrorIs(t, err, service.ErrNotOwned)
	})

	t.Run("update scopes the write to the caller", func(t *testing.T) {
		f := newPropertyFixture(t, false)
		f.properties.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Property) bool {
			return p.ID == id && p.OwnerID == ownerID && p.Title == "Sunny flat"
		})).Return(nil)

		require.NoError(t, f.svc.Update(ctx, ownerID, id, validPropertyInput()))
	})

	t.Run("delete of a foreign listing", func(t *testing.T) {
		f := newPropertyFixture(t, false)
		f.properties.On("Delete", mock.Anything, id, ownerID).Return(store.ErrPropertyNotFound)

		assert.ErrorIs(t, f.svc.Delete(ctx, ownerID, id), service.ErrNotOwned)
	})

	t.Run("delete removes stored images", func(t *testing.T) {
		f := newPropertyFixture(t, true)
		images := []domain.PropertyImage{{ObjectKey: "properties/a.jpg"}, {ObjectKey: "properties/b.jpg"}}
		f.images.On("ListByProperty", mock.Anything, id).Return(images, nil)
		f.properties.On("Delete", mock.Anything, id, ownerID).Return(nil)

		require.NoError(t, f.svc.Delete(ctx, ownerID, id))
		assert.ElementsMatch(t, []string{"properties/a.jpg", "properties/b.jpg"}, f.storage.Removed)
	})
}

func TestPropertyService_AddImage(t *testing.T) {
	ctx := context.Background()
	ownerID, propertyID := uuid.New(), uuid.New()
	owned := &domain.Property{ID: propertyID, OwnerID: ownerID}
	upload := func() service.ImageUpload {
		return service.ImageUpload{
			Filename:    "Front.JPG",
			ContentType: "image/jpeg",
			Size:        4,
			Body:        strings.NewReader("jpeg"),
		}
	}

	t.Run("storage disabled", func(t *testing.T) {
		f := newPropertyFixture(t, false)
		_, err := f.svc.AddImage(ctx, ownerID, propertyID, upload())
		assert.ErrorIs(t, err, service.ErrStorageDisabled)
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		f := newPropertyFixture(t, true)
		up := upload()
		up.ContentType = "application/pdf"

		_, err := f.svc.AddImage(ctx, ownerID, propertyID, up)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, f.storage.Objects)
	})

	t.Run("foreign listing", func(t *testing.T) {
		f := newPropertyFixture(t, true)
		f.properties.On("GetByID", mock.Anything, propertyID).
			Return(&domain.Property{ID: propertyID, OwnerID: uuid.New()}, nil)

		_, err := f.svc.AddImage(ctx, ownerID, propertyID, upload())
		assert.ErrorIs(t, err, service.ErrNotOwned)
	})

	t.Run("first image becomes main", func(t *testing.T) {
		f := newPropertyFixture(t, true)
		f.expectTx(true)
		f.properties.On("GetByID", mock.Anything, propertyID).Return(owned, nil)
		f.images.On("NextSortOrder", mock.Anything, propertyID).Return(0, true, nil)
		f.images.On("Create", mock.Anything, mock.MatchedBy(func(img *domain.PropertyImage) bool {
			return img.IsMain && img.SortOrder == 0
		})).Return(nil)

		img, err := f.svc.AddImage(ctx, ownerID, propertyID, upload())
		require.NoError(t, err)
		assert.True(t, img.IsMain)
		assert.True(t, strings.HasSuffix(img.ObjectKey, ".jpg"))
		assert.Equal(t, "http://objects.test/"+img.ObjectKey, img.URL)
		assert.Equal(t, []byte("jpeg"), f.storage.Objects[img.ObjectKey])
	})

	t.Run("failed insert removes the stored object", func(t *testing.T) {
		f := newPropertyFixture(t, true)
		f.expectTx(false)
		f.properties.On("GetByID", mock.Anything, propertyID).Return(owned, nil)
		f.images.On("NextSortOrder", mock.Anything, propertyID).Return(3, false, nil)
		f.images.On("Create", mock.Anything, mock.Anything).Return(store.ErrUnavailable)

		_, err := f.svc.AddImage(ctx, ownerID, propertyID, upload())
		assert.ErrorIs(t, err, store.ErrUnavailable)
		assert.Empty(t, f.storage.Objects)
		assert.Len(t, f.storage.Removed, 1)
	})
}

func TestPropertyService_RemoveImage(t *testing.T) {
	ctx := context.Background()
	ownerID, propertyID, imageID := uuid.New(), uuid.New(), uuid.New()
	owned := &domain.Property{ID: propertyID, OwnerID: ownerID}

	t.Run("main image promotes the oldest remaining", func(t *testing.T) {
		f := newPropertyFixture(t, true)
		f.expectTx(true)
		f.properties.On("GetByID", mock.Anything, propertyID).Return(owned, nil)
		f.images.On("Get", mock.Anything, propertyID, imageID).
			Return(&domain.PropertyImage{ID: imageID, ObjectKey: "k.jpg", IsMain: true}, nil)
		f.images.On("Delete", mock.Anything, propertyID, imageID).Return(nil)
		f.images.On("PromoteOldest", mock.Anything, propertyID).Return(nil)

		require.NoError(t, f.svc.RemoveImage(ctx, ownerID, propertyID, imageID))
		assert.Equal(t, []string{"k.jpg"}, f.storage.Removed)
	})

	t.Run("missing image", func(t *testing.T) {
		f := newPropertyFixture(t, true)
		f.expectTx(false)
		f.properties.On("GetByID", mock.Anything, propertyID).Return(owned, nil)
		f.images.On("Get", mock.Anything, propertyID, imageID).Return(nil, store.ErrImageNotFound)

		err := f.svc.RemoveImage(ctx, ownerID, propertyID, imageID)
		assert.ErrorIs(t, err, store.ErrImageNotFound)
		assert.Empty(t, f.storage.Removed)
	})
}
