package api

import (
	"log/slog"
	"net/http"

	"github.com/casafind/casafind-api/internal/api/shared"
	"github.com/casafind/casafind-api/internal/platform/logger"
	"github.com/casafind/casafind-api/internal/service"
)

// FavoriteHandler handles the caller's saved listings. Every route requires
// authentication.
type FavoriteHandler struct {
	favorites service.FavoriteService
	logger    *slog.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favorites service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for FavoriteHandler")
	}
	return &FavoriteHandler{
		favorites: favorites,
		logger:    logger.With(slog.String("component", "favorite_handler")),
	}
}

// List handles GET /api/favorites.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	favorites, err := h.favorites.List(r.Context(), id.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch favorites")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, favorites)
}

// Add handles POST /api/favorites/{propertyId}.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "propertyId")
	if !ok {
		return
	}

	if err := h.favorites.Add(r.Context(), id.UserID, ids[0]); err != nil {
		HandleAPIError(w, r, err, "Failed to add favorite")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, MessageResponse{Message: "Property added to favorites"})
}

// Remove handles DELETE /api/favorites/{propertyId}. It succeeds whether or
// not the listing was saved.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "propertyId")
	if !ok {
		return
	}

	if err := h.favorites.Remove(r.Context(), id.UserID, ids[0]); err != nil {
		HandleAPIError(w, r, err, "Failed to remove favorite")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Property removed from favorites"})
}

// Toggle handles POST /api/favorites/toggle/{propertyId}.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "propertyId")
	if !ok {
		return
	}

	saved, err := h.favorites.Toggle(r.Context(), id.UserID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to toggle favorite")
		return
	}

	message := "Property removed from favorites"
	if saved {
		message = "Property added to favorites"
	}
	shared.RespondWithJSON(w, r, http.StatusOK, FavoriteToggleResponse{Message: message, IsFavorite: saved})
}
