package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casafind/casafind-api/internal/api"
	"github.com/casafind/casafind-api/internal/api/shared"
	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/service"
	"github.com/casafind/casafind-api/internal/service/auth"
	"github.com/casafind/casafind-api/internal/store"
)

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"role", auth.ErrInsufficientRole, http.StatusForbidden, "Insufficient permissions"},
		{"not owned", service.ErrNotOwned, http.StatusForbidden,
			"You do not have permission to modify this resource"},
		{"not participant", service.ErrNotParticipant, http.StatusForbidden, "You are not part of this conversation"},
		{"own listing", service.ErrOwnListing, http.StatusForbidden, "You cannot review your own property"},
		{"property missing", store.ErrPropertyNotFound, http.StatusNotFound, "Property not found"},
		{"wrapped message missing", fmt.Errorf("lookup: %w", store.ErrMessageNotFound), http.StatusNotFound,
			"Message not found"},
		{"email taken", store.ErrEmailExists, http.StatusBadRequest, "Email already exists"},
		{"favorite taken", store.ErrFavoriteExists, http.StatusBadRequest, "Property already in favorites"},
		{"second review", store.ErrReviewExists, http.StatusBadRequest, "You have already reviewed this property"},
		{"field validation", domain.NewValidationError("price", "must be a non-negative number", domain.ErrInvalidPrice),
			http.StatusBadRequest, "Invalid price: must be a non-negative number"},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest, "Invalid ID"},
		{"unexpected", errors.New("pq: relation does not exist"), http.StatusInternalServerError, "Friendly fallback"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)

			api.HandleAPIError(rr, req, tc.err, "Friendly fallback")

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantMessage, errorMessage(t, rr))
			assert.Empty(t, rr.Header().Get("Retry-After"))
		})
	}
}

func TestHandleAPIError_Unavailable(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	api.HandleAPIError(rr, req, fmt.Errorf("search: %w", store.ErrUnavailable), "")

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, api.RetryAfterSeconds, rr.Header().Get("Retry-After"))
	assert.Equal(t, "Service temporarily unavailable", errorMessage(t, rr))
}

func TestHandleAPIError_DoesNotLeakInternals(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(shared.WithTraceID(req.Context(), "trace-1"))

	api.HandleAPIError(rr, req, errors.New("SELECT * FROM users WHERE password_hash = 'x'"), "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "SELECT")
	assert.Contains(t, rr.Body.String(), "trace-1")
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(api.RegisterRequest{Name: "A", Email: "a@example.com", Password: "short"})

	assert.Equal(t, http.StatusBadRequest, api.MapErrorToStatusCode(err))
	assert.Equal(t, "Invalid password: must be at least 8", api.SanitizeValidationError(err))
	assert.Equal(t, "Validation error", api.SanitizeValidationError(errors.New("other")))
}
