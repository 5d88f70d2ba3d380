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

const reviewViewSelect = `
	SELECT rv.id, rv.property_id, rv.reviewer_id, rv.rating, rv.comment, rv.created_at, rv.updated_at,
	       u.name AS reviewer_name, p.title AS property_title
	FROM reviews rv
	JOIN users u ON u.id = rv.reviewer_id
	JOIN properties p ON p.id = rv.property_id`

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the ReviewStore interface.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// WithTx implements store.ReviewStore.WithTx
func (s *PostgresReviewStore) WithTx(tx *sqlx.Tx) store.ReviewStore {
	return &PostgresReviewStore{db: tx, logger: s.logger}
}

// Create implements store.ReviewStore.Create
func (s *PostgresReviewStore) Create(ctx context.Context, r *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := r.Validate(); err != nil {
		log.Warn("review validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_id", r.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, property_id, reviewer_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.PropertyID, r.ReviewerID, r.Rating, r.Comment, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		switch {
		case IsUniqueViolation(err):
			log.Debug("review already exists",
				slog.String("property_id", r.PropertyID.String()),
				slog.String("reviewer_id", r.ReviewerID.String()))
			return MapUniqueViolation(err, store.ErrReviewExists)
		case IsForeignKeyViolation(err):
			return mapForeignKey(err, map[string]error{
				"reviews_property_id_fkey": store.ErrPropertyNotFound,
				"reviews_reviewer_id_fkey": store.ErrUserNotFound,
			})
		}
		log.Error("failed to create review",
			slog.String("error", err.Error()),
			slog.String("review_id", r.ID.String()))
		return MapError(err)
	}

	log.Info("review created",
		slog.String("review_id", r.ID.String()),
		slog.String("property_id", r.PropertyID.String()),
		slog.Int("rating", r.Rating))
	return nil
}

// GetByID implements store.ReviewStore.GetByID
func (s *PostgresReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var r domain.Review
	err := sqlx.GetContext(ctx, s.db, &r, `
		SELECT id, property_id, reviewer_id, rating, comment, created_at, updated_at
		FROM reviews WHERE id = $1`, id)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			log.Debug("review not found", slog.String("review_id", id.String()))
			return nil, store.ErrReviewNotFound
		}
		log.Error("failed to get review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return nil, mapped
	}
	return &r, nil
}

// Update implements store.ReviewStore.Update
func (s *PostgresReviewStore) Update(ctx context.Context, r *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := r.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE reviews SET rating = $1, comment = $2, updated_at = $3
		WHERE id = $4 AND reviewer_id = $5`,
		r.Rating, r.Comment, r.UpdatedAt, r.ID, r.ReviewerID)
	if err != nil {
		log.Error("failed to update review",
			slog.String("error", err.Error()),
			slog.String("review_id", r.ID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrReviewNotFound); err != nil {
		return err
	}

	log.Info("review updated", slog.String("review_id", r.ID.String()))
	return nil
}

// Delete implements store.ReviewStore.Delete
func (s *PostgresReviewStore) Delete(ctx context.Context, id, reviewerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = $1 AND reviewer_id = $2`, id, reviewerID)
	if err != nil {
		log.Error("failed to delete review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrReviewNotFound)
}

// ListByProperty implements store.ReviewStore.ListByProperty
func (s *PostgresReviewStore) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.ReviewView, error) {
	return s.list(ctx, `rv.property_id = $1`, propertyID)
}

// ListByReviewer implements store.ReviewStore.ListByReviewer
func (s *PostgresReviewStore) ListByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]domain.ReviewView, error) {
	return s.list(ctx, `rv.reviewer_id = $1`, reviewerID)
}

func (s *PostgresReviewStore) list(ctx context.Context, predicate string, id uuid.UUID) ([]domain.ReviewView, error) {
	reviews := []domain.ReviewView{}
	err := sqlx.SelectContext(ctx, s.db, &reviews,
		reviewViewSelect+` WHERE `+predicate+` ORDER BY rv.created_at DESC, rv.id DESC`, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list reviews",
			slog.String("error", err.Error()),
			slog.String("id", id.String()))
		return nil, MapError(err)
	}
	return reviews, nil
}

// Summary implements store.ReviewStore.Summary
func (s *PostgresReviewStore) Summary(ctx context.Context, propertyID uuid.UUID) (domain.RatingSummary, error) {
	var summary domain.RatingSummary
	err := sqlx.GetContext(ctx, s.db, &summary, `
		SELECT COUNT(*) AS count, COALESCE(ROUND(AVG(rating), 1), 0)::float8 AS average_rating
		FROM reviews WHERE property_id = $1`, propertyID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to summarise reviews",
			slog.String("error", err.Error()),
			slog.String("property_id", propertyID.String()))
		return domain.RatingSummary{}, MapError(err)
	}
	return summary, nil
}
