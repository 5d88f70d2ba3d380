package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/casafind/casafind-api/internal/api/shared"
	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/platform/logger"
	"github.com/casafind/casafind-api/internal/service"
)

// DefaultMaxUploadBytes bounds image uploads when no limit is configured.
const DefaultMaxUploadBytes = 5 << 20

// sniffLen is how much of an upload http.DetectContentType inspects.
const sniffLen = 512

// PropertyHandler handles listing requests.
type PropertyHandler struct {
	properties     service.PropertyService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(
	properties service.PropertyService,
	maxUploadBytes int64,
	logger *slog.Logger,
) *PropertyHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PropertyHandler")
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &PropertyHandler{
		properties:     properties,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "property_handler")),
	}
}

// Search handles GET /api/properties and GET /api/properties/search.
func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.properties.Search(r.Context(), domain.PropertySearchParams{
		Search:    q.Get("search"),
		MinPrice:  q.Get("minPrice"),
		MaxPrice:  q.Get("maxPrice"),
		City:      q.Get("city"),
		State:     q.Get("state"),
		Status:    q.Get("status"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Page:      q.Get("page"),
		Limit:     q.Get("limit"),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch properties")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// ListMine handles GET /api/properties/mine.
func (h *PropertyHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, err := h.properties.ListOwned(r.Context(), id.UserID, q.Get("page"), q.Get("limit"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch properties")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// Get handles GET /api/properties/{id}.
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ids, ok := pathUUIDs(w, r, log, "id")
	if !ok {
		return
	}

	detail, err := h.properties.Get(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch property")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, detail)
}

// Create handles POST /api/properties.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	var req PropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	property, err := h.properties.Create(r.Context(), id.UserID, req.input())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create property")
		return
	}

	log.Info("property created",
		slog.String("property_id", property.ID.String()),
		slog.String("user_id", id.UserID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, PropertyCreatedResponse{
		Message:    "Property created successfully",
		PropertyID: property.ID.String(),
	})
}

// Update handles PUT /api/properties/{id}.
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "id")
	if !ok {
		return
	}

	var req PropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.properties.Update(r.Context(), id.UserID, ids[0], req.input()); err != nil {
		HandleAPIError(w, r, err, "Failed to update property")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Property updated successfully"})
}

// Delete handles DELETE /api/properties/{id}.
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "id")
	if !ok {
		return
	}

	if err := h.properties.Delete(r.Context(), id.UserID, ids[0]); err != nil {
		HandleAPIError(w, r, err, "Failed to delete property")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Property deleted successfully"})
}

// UploadImage handles POST /api/properties/{id}/images. The file is read
// from the multipart field "image"; its type is sniffed from the content.
func (h *PropertyHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+sniffLen*2)
	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, "Image is too large", err)
			return
		}
		HandleAPIError(w, r, domain.NewValidationError("image", "file is required", domain.ErrValidation), "")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxUploadBytes {
		shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Image is too large")
		return
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		HandleAPIError(w, r, err, "Failed to read image")
		return
	}
	head = head[:n]

	img, err := h.properties.AddImage(r.Context(), id.UserID, ids[0], service.ImageUpload{
		Filename:    header.Filename,
		ContentType: http.DetectContentType(head),
		Size:        header.Size,
		Body:        io.MultiReader(bytes.NewReader(head), file),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to upload image")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ImageCreatedResponse{
		Message: "Image uploaded successfully",
		Image:   img,
	})
}

// DeleteImage handles DELETE /api/properties/{id}/images/{imageId}.
func (h *PropertyHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "id", "imageId")
	if !ok {
		return
	}

	if err := h.properties.RemoveImage(r.Context(), id.UserID, ids[0], ids[1]); err != nil {
		HandleAPIError(w, r, err, "Failed to delete image")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Image deleted successfully"})
}
