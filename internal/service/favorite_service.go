package service

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

// FavoriteService manages the listings a user has saved.
type FavoriteService interface {
	// List returns the user's favorites, most recently saved first.
	List(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteProperty, error)

	// Add saves a listing. Returns store.ErrFavoriteExists when it is
	// already saved and store.ErrPropertyNotFound when it does not exist.
	Add(ctx context.Context, userID, propertyID uuid.UUID) error

	// Remove unsaves a listing. Removing an absent favorite succeeds.
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error

	// Toggle flips the saved state and returns the new state.
	Toggle(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
}

type favoriteService struct {
	db        *sqlx.DB
	favorites store.FavoriteStore
	logger    *slog.Logger
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(db *sqlx.DB, favorites store.FavoriteStore, logger *slog.Logger) (FavoriteService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if favorites == nil {
		return nil, domain.NewValidationError("favorites", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &favoriteService{
		db:        db,
		favorites: favorites,
		logger:    logger.With(slog.String("component", "favorite_service")),
	}, nil
}

// List implements FavoriteService.List
func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteProperty, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, opError("favorite", "list", err)
	}
	if favorites == nil {
		favorites = []domain.FavoriteProperty{}
	}
	return favorites, nil
}

// Add implements FavoriteService.Add
func (s *favoriteService) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	favorite, err := domain.NewFavorite(userID, propertyID)
	if err != nil {
		return err
	}

	if err := s.favorites.Add(ctx, favorite); err != nil {
		if errors.Is(err, store.ErrFavoriteExists) || errors.Is(err, store.ErrPropertyNotFound) {
			return err
		}
		return opError("favorite", "add", err)
	}
	return nil
}

// Remove implements FavoriteService.Remove
func (s *favoriteService) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	if _, err := s.favorites.Remove(ctx, userID, propertyID); err != nil {
		return opError("favorite", "remove", err)
	}
	return nil
}

// Toggle implements FavoriteService.Toggle. The delete and the conditional
// insert share one transaction; the insert ignores a pair created
// concurrently, so the pair never duplicates. Two concurrent toggles on an
// unsaved listing therefore both report true and leave a single favorite.
func (s *favoriteService) Toggle(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	favorite, err := domain.NewFavorite(userID, propertyID)
	if err != nil {
		return false, err
	}

	var saved bool
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		favorites := s.favorites.WithTx(tx)

		removed, err := favorites.Remove(ctx, userID, propertyID)
		if err != nil {
			return err
		}
		if removed {
			saved = false
			return nil
		}

		saved = true
		return favorites.AddIfAbsent(ctx, favorite)
	})
	if err != nil {
		if errors.Is(err, store.ErrPropertyNotFound) {
			return false, err
		}
		return false, opError("favorite", "toggle", err)
	}

	log.Debug("favorite toggled",
		slog.String("property_id", propertyID.String()),
		slog.Bool("is_favorite", saved))
	return saved, nil
}
