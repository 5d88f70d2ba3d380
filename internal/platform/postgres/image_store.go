package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/platform/logger"
	"github.com/casafind/casafind-api/internal/store"
)

const imageColumns = `id, property_id, object_key, image_url, is_main, sort_order, created_at`

// PostgresPropertyImageStore implements the store.PropertyImageStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPropertyImageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPropertyImageStore creates a new PostgreSQL implementation of the PropertyImageStore interface.
func NewPostgresPropertyImageStore(db store.DBTX, logger *slog.Logger) *PostgresPropertyImageStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPropertyImageStore{
		db:     db,
		logger: logger.With(slog.String("component", "property_image_store")),
	}
}

var _ store.PropertyImageStore = (*PostgresPropertyImageStore)(nil)

// WithTx implements store.PropertyImageStore.WithTx
func (s *PostgresPropertyImageStore) WithTx(tx *sqlx.Tx) store.PropertyImageStore {
	return &PostgresPropertyImageStore{db: tx, logger: s.logger}
}

// Create implements store.PropertyImageStore.Create
func (s *PostgresPropertyImageStore) Create(ctx context.Context, img *domain.PropertyImage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO property_images (id, property_id, object_key, image_url, is_main, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		img.ID, img.PropertyID, img.ObjectKey, img.URL, img.IsMain, img.SortOrder, img.CreatedAt)
	if err != nil {
		log.Error("failed to create property image",
			slog.String("error", err.Error()),
			slog.String("property_id", img.PropertyID.String()))
		return mapForeignKey(err, map[string]error{
			"property_images_property_id_fkey": store.ErrPropertyNotFound,
		})
	}

	log.Info("property image created",
		slog.String("image_id", img.ID.String()),
		slog.String("property_id", img.PropertyID.String()),
		slog.Bool("is_main", img.IsMain))
	return nil
}

// ListByProperty implements store.PropertyImageStore.ListByProperty
func (s *PostgresPropertyImageStore) ListByProperty(
	ctx context.Context,
	propertyID uuid.UUID,
) ([]domain.PropertyImage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	images := []domain.PropertyImage{}
	err := sqlx.SelectContext(ctx, s.db, &images, `
		SELECT `+imageColumns+`
		FROM property_images
		WHERE property_id = $1
		ORDER BY is_main DESC, sort_order, created_at`, propertyID)
	if err != nil {
		log.Error("failed to list property images",
			slog.String("error", err.Error()),
			slog.String("property_id", propertyID.String()))
		return nil, MapError(err)
	}
	return images, nil
}

// Get implements store.PropertyImageStore.Get
func (s *PostgresPropertyImageStore) Get(
	ctx context.Context,
	propertyID, imageID uuid.UUID,
) (*domain.PropertyImage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var img domain.PropertyImage
	err := sqlx.GetContext(ctx, s.db, &img,
		`SELECT `+imageColumns+` FROM property_images WHERE id = $1 AND property_id = $2`,
		imageID, propertyID)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrImageNotFound
		}
		log.Error("failed to get property image",
			slog.String("error", err.Error()),
			slog.String("image_id", imageID.String()))
		return nil, mapped
	}
	return &img, nil
}

// Delete implements store.PropertyImageStore.Delete
func (s *PostgresPropertyImageStore) Delete(ctx context.Context, propertyID, imageID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM property_images WHERE id = $1 AND property_id = $2`, imageID, propertyID)
	if err != nil {
		log.Error("failed to delete property image",
			slog.String("error", err.Error()),
			slog.String("image_id", imageID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrImageNotFound)
}

// PromoteOldest implements store.PropertyImageStore.PromoteOldest
func (s *PostgresPropertyImageStore) PromoteOldest(ctx context.Context, propertyID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE property_images SET is_main = TRUE
		WHERE id = (
			SELECT id FROM property_images
			WHERE property_id = $1
			ORDER BY created_at, sort_order
			LIMIT 1
		)
		AND NOT EXISTS (
			SELECT 1 FROM property_images WHERE property_id = $1 AND is_main
		)
	`
	if _, err := s.db.ExecContext(ctx, query, propertyID); err != nil {
		log.Error("failed to promote main image",
			slog.String("error", err.Error()),
			slog.String("property_id", propertyID.String()))
		return MapError(err)
	}
	return nil
}

// NextSortOrder implements store.PropertyImageStore.NextSortOrder
func (s *PostgresPropertyImageStore) NextSortOrder(ctx context.Context, propertyID uuid.UUID) (int, bool, error) {
	var row struct {
		Count int `db:"count"`
		Next  int `db:"next"`
	}
	err := sqlx.GetContext(ctx, s.db, &row, `
		SELECT COUNT(*) AS count, COALESCE(MAX(sort_order) + 1, 0) AS next
		FROM property_images
		WHERE property_id = $1`, propertyID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to compute image sort order",
			slog.String("error", err.Error()),
			slog.String("property_id", propertyID.String()))
		return 0, false, MapError(err)
	}
	return row.Next, row.Count == 0, nil
}
