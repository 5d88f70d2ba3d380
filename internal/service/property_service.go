package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/platform/logger"
	"github.com/casafind/casafind-api/internal/store"
)

// ObjectStorage stores listing image files.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

// ImageUpload is an image file received from a client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PropertyPage is one page of listings with its pagination metadata.
type PropertyPage struct {
	Properties []domain.PropertyListing `json:"properties"`
	Pagination domain.Pagination        `json:"pagination"`
}

// PropertyService provides listing operations.
type PropertyService interface {
	// Search returns a page of public listings.
	Search(ctx context.Context, params domain.PropertySearchParams) (*PropertyPage, error)

	// ListOwned returns a page of the owner's listings in any status.
	ListOwned(ctx context.Context, ownerID uuid.UUID, rawPage, rawLimit string) (*PropertyPage, error)

	// Get returns a listing with all of its images.
	Get(ctx context.Context, id uuid.UUID) (*domain.PropertyDetail, error)

	// Create publishes a listing owned by ownerID.
	Create(ctx context.Context, ownerID uuid.UUID, in domain.PropertyInput) (*domain.Property, error)

	// Update replaces a listing's editable fields. Returns ErrNotOwned when
	// the listing is missing or belongs to someone else.
	Update(ctx context.Context, ownerID, id uuid.UUID, in domain.PropertyInput) error

	// Delete removes a listing and its stored images. Returns ErrNotOwned
	// when the listing is missing or belongs to someone else.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// AddImage stores an image for an owned listing. The first image of a
	// listing becomes its main image.
	AddImage(ctx context.Context, ownerID, propertyID uuid.UUID, upload ImageUpload) (*domain.PropertyImage, error)

	// RemoveImage deletes an image of an owned listing, promoting the oldest
	// remaining image when the main image is removed.
	RemoveImage(ctx context.Context, ownerID, propertyID, imageID uuid.UUID) error
}

type propertyService struct {
	db         *sqlx.DB
	properties store.PropertyStore
	images     store.PropertyImageStore
	storage    ObjectStorage
	logger     *slog.Logger
}

// NewPropertyService creates a new PropertyService. storage may be nil, in
// which case image operations return ErrStorageDisabled.
func NewPropertyService(
	db *sqlx.DB,
	properties store.PropertyStore,
	images store.PropertyImageStore,
	storage ObjectStorage,
	logger *slog.Logger,
) (PropertyService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if properties == nil {
		return nil, domain.NewValidationError("properties", "cannot be nil", domain.ErrValidation)
	}
	if images == nil {
		return nil, domain.NewValidationError("images", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &propertyService{
		db:         db,
		properties: properties,
		images:     images,
		storage:    storage,
		logger:     logger.With(slog.String("component", "property_service")),
	}, nil
}

// Search implements PropertyService.Search
func (s *propertyService) Search(ctx context.Context, params domain.PropertySearchParams) (*PropertyPage, error) {
	filter, err := domain.NewPropertyFilter(params)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, filter)
}

// ListOwned implements PropertyService.ListOwned
func (s *propertyService) ListOwned(
	ctx context.Context,
	ownerID uuid.UUID,
	rawPage, rawLimit string,
) (*PropertyPage, error) {
	filter := domain.PropertyFilter{
		OwnerID:   &ownerID,
		SortBy:    domain.SortByCreatedAt,
		SortOrder: domain.SortDesc,
		Page:      domain.NewPage(rawPage, rawLimit),
	}
	return s.page(ctx, filter)
}

func (s *propertyService) page(ctx context.Context, filter domain.PropertyFilter) (*PropertyPage, error) {
	listings, total, err := s.properties.Search(ctx, filter)
	if err != nil {
		return nil, opError("property", "search", err)
	}
	return &PropertyPage{
		Properties: listings,
		Pagination: domain.NewPagination(total, filter.Page),
	}, nil
}

// Get implements PropertyService.Get
func (s *propertyService) Get(ctx context.Context, id uuid.UUID) (*domain.PropertyDetail, error) {
	listing, err := s.properties.GetListing(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrPropertyNotFound) {
			return nil, err
		}
		return nil, opError("property", "get", err)
	}

	images, err := s.images.ListByProperty(ctx, id)
	if err != nil {
		return nil, opError("property", "get", err)
	}

	return &domain.PropertyDetail{PropertyListing: *listing, Images: images}, nil
}

// Create implements PropertyService.Create
func (s *propertyService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	in domain.PropertyInput,
) (*domain.Property, error) {
	property, err := domain.NewProperty(ownerID, in)
	if err != nil {
		return nil, err
	}

	if err := s.properties.Create(ctx, property); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		return nil, opError("property", "create", err)
	}
	return property, nil
}

// Update implements PropertyService.Update
func (s *propertyService) Update(ctx context.Context, ownerID, id uuid.UUID, in domain.PropertyInput) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	property := &domain.Property{ID: id, OwnerID: ownerID}
	if err := property.Apply(in); err != nil {
		return err
	}

	if err := s.properties.Update(ctx, property); err != nil {
		if errors.Is(err, store.ErrPropertyNotFound) {
			log.Debug("update refused: listing missing or not owned",
				slog.String("property_id", id.String()),
				slog.String("user_id", ownerID.String()))
			return ErrNotOwned
		}
		return opError("property", "update", err)
	}
	return nil
}

// Delete implements PropertyService.Delete
func (s *propertyService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var images []domain.PropertyImage
	if s.storage != nil {
		var err error
		if images, err = s.images.ListByProperty(ctx, id); err != nil {
			return opError("property", "delete", err)
		}
	}

	if err := s.properties.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, store.ErrPropertyNotFound) {
			log.Debug("delete refused: listing missing or not owned",
				slog.String("property_id", id.String()),
				slog.String("user_id", ownerID.String()))
			return ErrNotOwned
		}
		return opError("property", "delete", err)
	}

	for _, img := range images {
		s.removeObject(ctx, img.ObjectKey)
	}
	return nil
}

// AddImage implements PropertyService.AddImage
func (s *propertyService) AddImage(
	ctx context.Context,
	ownerID, propertyID uuid.UUID,
	upload ImageUpload,
) (*domain.PropertyImage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	if !strings.HasPrefix(strings.ToLower(upload.ContentType), "image/") {
		return nil, domain.NewValidationError("image", "must be an image file", domain.ErrValidation)
	}
	if err := s.requireOwner(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	img := &domain.PropertyImage{
		ID:         uuid.New(),
		PropertyID: propertyID,
		CreatedAt:  time.Now().UTC(),
	}
	img.ObjectKey = "properties/" + propertyID.String() + "/" + img.ID.String() +
		strings.ToLower(path.Ext(upload.Filename))
	img.URL = s.storage.URL(img.ObjectKey)

	if err := s.storage.Put(ctx, img.ObjectKey, upload.Body, upload.Size, upload.ContentType); err != nil {
		return nil, opError("property", "add image", err)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		images := s.images.WithTx(tx)

		next, empty, err := images.NextSortOrder(ctx, propertyID)
		if err != nil {
			return err
		}
		img.SortOrder = next
		img.IsMain = empty
		return images.Create(ctx, img)
	})
	if err != nil && img.IsMain && errors.Is(err, store.ErrDuplicate) {
		// A concurrent upload claimed the main slot first.
		img.IsMain = false
		err = s.images.Create(ctx, img)
	}
	if err != nil {
		s.removeObject(ctx, img.ObjectKey)
		if errors.Is(err, store.ErrPropertyNotFound) {
			return nil, ErrNotOwned
		}
		return nil, opError("property", "add image", err)
	}

	log.Info("property image added",
		slog.String("property_id", propertyID.String()),
		slog.String("image_id", img.ID.String()),
		slog.Bool("is_main", img.IsMain))
	return img, nil
}

// RemoveImage implements PropertyService.RemoveImage
func (s *propertyService) RemoveImage(ctx context.Context, ownerID, propertyID, imageID uuid.UUID) error {
	if s.storage == nil {
		return ErrStorageDisabled
	}
	if err := s.requireOwner(ctx, ownerID, propertyID); err != nil {
		return err
	}

	var removed *domain.PropertyImage
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		images := s.images.WithTx(tx)

		img, err := images.Get(ctx, propertyID, imageID)
		if err != nil {
			return err
		}
		if err := images.Delete(ctx, propertyID, imageID); err != nil {
			return err
		}
		if img.IsMain {
			if err := images.PromoteOldest(ctx, propertyID); err != nil {
				return err
			}
		}
		removed = img
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrImageNotFound) {
			return err
		}
		return opError("property", "remove image", err)
	}

	s.removeObject(ctx, removed.ObjectKey)
	return nil
}

// requireOwner loads the listing and checks it belongs to ownerID. Missing
// listings and foreign listings both yield ErrNotOwned.
func (s *propertyService) requireOwner(ctx context.Context, ownerID, propertyID uuid.UUID) error {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, store.ErrPropertyNotFound) {
			return ErrNotOwned
		}
		return opError("property", "check owner", err)
	}
	if property.OwnerID != ownerID {
		return ErrNotOwned
	}
	return nil
}

// removeObject deletes a stored file, logging instead of failing.
func (s *propertyService) removeObject(ctx context.Context, key string) {
	if s.storage == nil || key == "" {
		return
	}
	if err := s.storage.Remove(ctx, key); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to remove stored image",
			slog.String("object_key", key),
			slog.String("error", err.Error()))
	}
}
