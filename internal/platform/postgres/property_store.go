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

const propertyColumns = `id, owner_id, title, description, price::float8 AS price,
	address, city, state, zip_code, status, created_at, updated_at`

// PostgresPropertyStore implements the store.PropertyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPropertyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPropertyStore creates a new PostgreSQL implementation of the PropertyStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPropertyStore(db store.DBTX, logger *slog.Logger) *PostgresPropertyStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPropertyStore{
		db:     db,
		logger: logger.With(slog.String("component", "property_store")),
	}
}

// Ensure PostgresPropertyStore implements store.PropertyStore interface
var _ store.PropertyStore = (*PostgresPropertyStore)(nil)

// WithTx implements store.PropertyStore.WithTx
func (s *PostgresPropertyStore) WithTx(tx *sqlx.Tx) store.PropertyStore {
	return &PostgresPropertyStore{db: tx, logger: s.logger}
}

// Create implements store.PropertyStore.Create
func (s *PostgresPropertyStore) Create(ctx context.Context, p *domain.Property) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		log.Warn("property validation failed during create",
			slog.String("error", err.Error()),
			slog.String("property_id", p.ID.String()))
		return err
	}

	query := `
		INSERT INTO properties
			(id, owner_id, title, description, price, address, city, state, zip_code, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.OwnerID, p.Title, p.Description, p.Price,
		p.Address, p.City, p.State, p.ZipCode, p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		mapped := mapForeignKey(err, map[string]error{
			"properties_owner_id_fkey": store.ErrUserNotFound,
		})
		log.Error("failed to create property",
			slog.String("error", err.Error()),
			slog.String("property_id", p.ID.String()),
			slog.String("owner_id", p.OwnerID.String()))
		return mapped
	}

	log.Info("property created",
		slog.String("property_id", p.ID.String()),
		slog.String("owner_id", p.OwnerID.String()))
	return nil
}

// GetByID implements store.PropertyStore.GetByID
func (s *PostgresPropertyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var p domain.Property
	err := sqlx.GetContext(ctx, s.db, &p,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)
	if err != nil {
		return nil, s.notFoundOr(log, err, id, "failed to get property by ID")
	}
	return &p, nil
}

// GetListing implements store.PropertyStore.GetListing
func (s *PostgresPropertyStore) GetListing(ctx context.Context, id uuid.UUID) (*domain.PropertyListing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var listing domain.PropertyListing
	err := sqlx.GetContext(ctx, s.db, &listing,
		listingSelect+listingFrom+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, s.notFoundOr(log, err, id, "failed to get property listing")
	}
	return &listing, nil
}

// Update implements store.PropertyStore.Update
func (s *PostgresPropertyStore) Update(ctx context.Context, p *domain.Property) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		log.Warn("property validation failed during update",
			slog.String("error", err.Error()),
			slog.String("property_id", p.ID.String()))
		return err
	}

	query := `
		UPDATE properties
		SET title = $1, description = $2, price = $3, address = $4, city = $5,
		    state = $6, zip_code = $7, status = $8, updated_at = $9
		WHERE id = $10 AND owner_id = $11
	`
	result, err := s.db.ExecContext(ctx, query,
		p.Title, p.Description, p.Price, p.Address, p.City,
		p.State, p.ZipCode, p.Status, p.UpdatedAt,
		p.ID, p.OwnerID,
	)
	if err != nil {
		log.Error("failed to update property",
			slog.String("error", err.Error()),
			slog.String("property_id", p.ID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrPropertyNotFound); err != nil {
		log.Debug("no owned property to update",
			slog.String("property_id", p.ID.String()),
			slog.String("owner_id", p.OwnerID.String()))
		return err
	}

	log.Info("property updated", slog.String("property_id", p.ID.String()))
	return nil
}

// Delete implements store.PropertyStore.Delete
// Images, favorites, messages and reviews go with the row through ON DELETE CASCADE.
func (s *PostgresPropertyStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM properties WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		log.Error("failed to delete property",
			slog.String("error", err.Error()),
			slog.String("property_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrPropertyNotFound); err != nil {
		log.Debug("no owned property to delete",
			slog.String("property_id", id.String()),
			slog.String("owner_id", ownerID.String()))
		return err
	}

	log.Info("property deleted", slog.String("property_id", id.String()))
	return nil
}

// Search implements store.PropertyStore.Search
func (s *PostgresPropertyStore) Search(
	ctx context.Context,
	filter domain.PropertyFilter,
) ([]domain.PropertyListing, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pageQuery, pageArgs, countQuery, countArgs := buildSearchQueries(filter)

	var total int
	if err := sqlx.GetContext(ctx, s.db, &total, countQuery, countArgs...); err != nil {
		log.Error("failed to count properties", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	listings := []domain.PropertyListing{}
	if total > 0 && filter.Page.Offset() < total {
		if err := sqlx.SelectContext(ctx, s.db, &listings, pageQuery, pageArgs...); err != nil {
			log.Error("failed to search properties", slog.String("error", err.Error()))
			return nil, 0, MapError(err)
		}
	}

	log.Debug("property search complete",
		slog.Int("total", total),
		slog.Int("page", filter.Page.Number),
		slog.Int("returned", len(listings)))
	return listings, total, nil
}

func (s *PostgresPropertyStore) notFoundOr(log *slog.Logger, err error, id uuid.UUID, msg string) error {
	mapped := MapError(err)
	if errors.Is(mapped, store.ErrNotFound) {
		log.Debug("property not found", slog.String("property_id", id.String()))
		return store.ErrPropertyNotFound
	}
	log.Error(msg,
		slog.String("error", err.Error()),
		slog.String("property_id", id.String()))
	return mapped
}
