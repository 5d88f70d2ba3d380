package api

import (
	"log/slog"
	"net/http"

	"github.com/casafind/casafind-api/internal/api/shared"
	"github.com/casafind/casafind-api/internal/platform/logger"
	"github.com/casafind/casafind-api/internal/service"
)

// ReviewHandler handles listing reviews.
type ReviewHandler struct {
	reviews service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}
	return &ReviewHandler{
		reviews: reviews,
		logger:  logger.With(slog.String("component", "review_handler")),
	}
}

// ListByProperty handles GET /api/reviews/property/{propertyId}.
func (h *ReviewHandler) ListByProperty(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ids, ok := pathUUIDs(w, r, log, "propertyId")
	if !ok {
		return
	}

	reviews, err := h.reviews.ListByProperty(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch reviews")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, reviews)
}

// ListByUser handles GET /api/reviews/user/{userId}.
func (h *ReviewHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ids, ok := pathUUIDs(w, r, log, "userId")
	if !ok {
		return
	}

	reviews, err := h.reviews.ListByUser(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch reviews")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, reviews)
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	propertyID, err := parseUUIDField("property_id", req.PropertyID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	review, err := h.reviews.Create(r.Context(), id.UserID, propertyID, service.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create review")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, ReviewResponse{
		Message: "Review created successfully",
		Review:  review,
	})
}

// Update handles PUT /api/reviews/{id}.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.reviews.Update(r.Context(), id.UserID, ids[0], service.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update review")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ReviewResponse{
		Message: "Review updated successfully",
		Review:  review,
	})
}

// Delete handles DELETE /api/reviews/{id}.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "id")
	if !ok {
		return
	}

	if err := h.reviews.Delete(r.Context(), id.UserID, ids[0]); err != nil {
		HandleAPIError(w, r, err, "Failed to delete review")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Review deleted successfully"})
}
