package api

import (
	"net/http"
	"time"

	"github.com/casafind/casafind-api/internal/api/shared"
)

// Health handles GET /health. It reports liveness only and never touches the
// database.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC(),
	})
}
