package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/platform/logger"
	"github.com/casafind/casafind-api/internal/store"
)

var favoriteForeignKeys = map[string]error{
	"favorites_property_id_fkey": store.ErrPropertyNotFound,
	"favorites_user_id_fkey":     store.ErrUserNotFound,
}

// PostgresFavoriteStore implements the store.FavoriteStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFavoriteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFavoriteStore creates a new PostgreSQL implementation of the FavoriteStore interface.
func NewPostgresFavoriteStore(db store.DBTX, logger *slog.Logger) *PostgresFavoriteStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFavoriteStore{
		db:     db,
		logger: logger.With(slog.String("component", "favorite_store")),
	}
}

var _ store.FavoriteStore = (*PostgresFavoriteStore)(nil)

// WithTx implements store.FavoriteStore.WithTx
func (s *PostgresFavoriteStore) WithTx(tx *sqlx.Tx) store.FavoriteStore {
	return &PostgresFavoriteStore{db: tx, logger: s.logger}
}

// Add implements store.FavoriteStore.Add
func (s *PostgresFavoriteStore) Add(ctx context.Context, f *domain.Favorite) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (id, user_id, property_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		f.ID, f.UserID, f.PropertyID, f.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("favorite already exists",
				slog.String("user_id", f.UserID.String()),
				slog.String("property_id", f.PropertyID.String()))
			return MapUniqueViolation(err, store.ErrFavoriteExists)
		}
		if IsForeignKeyViolation(err) {
			return mapForeignKey(err, favoriteForeignKeys)
		}
		log.Error("failed to add favorite",
			slog.String("error", err.Error()),
			slog.String("property_id", f.PropertyID.String()))
		return MapError(err)
	}

	log.Info("favorite added",
		slog.String("user_id", f.UserID.String()),
		slog.String("property_id", f.PropertyID.String()))
	return nil
}

// AddIfAbsent implements store.FavoriteStore.AddIfAbsent
func (s *PostgresFavoriteStore) AddIfAbsent(ctx context.Context, f *domain.Favorite) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (id, user_id, property_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, property_id) DO NOTHING`,
		f.ID, f.UserID, f.PropertyID, f.CreatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return mapForeignKey(err, favoriteForeignKeys)
		}
		log.Error("failed to add favorite",
			slog.String("error", err.Error()),
			slog.String("property_id", f.PropertyID.String()))
		return MapError(err)
	}
	return nil
}

// Remove implements store.FavoriteStore.Remove
func (s *PostgresFavoriteStore) Remove(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND property_id = $2`, userID, propertyID)
	if err != nil {
		log.Error("failed to remove favorite",
			slog.String("error", err.Error()),
			slog.String("property_id", propertyID.String()))
		return false, MapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Exists implements store.FavoriteStore.Exists
func (s *PostgresFavoriteStore) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, s.db, &exists,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND property_id = $2)`,
		userID, propertyID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check favorite",
			slog.String("error", err.Error()))
		return false, MapError(err)
	}
	return exists, nil
}

// ListByUser implements store.FavoriteStore.ListByUser
func (s *PostgresFavoriteStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteProperty, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	favorites := []domain.FavoriteProperty{}
	err := sqlx.SelectContext(ctx, s.db, &favorites,
		listingSelect+`, f.created_at AS favorited_at`+listingFrom+`
		JOIN favorites f ON f.property_id = p.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, p.id DESC`, userID)
	if err != nil {
		log.Error("failed to list favorites",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	return favorites, nil
}
