package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casafind/casafind-api/internal/api/middleware"
	"github.com/casafind/casafind-api/internal/api/shared"
	"github.com/casafind/casafind-api/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seen string
	handler := middleware.TraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.GetTraceID(r.Context())
		assert.NotSame(t, base, logger.FromContext(r.Context()), "request logger carries the trace id")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, seen, 32)
	assert.Equal(t, seen, rr.Header().Get(middleware.TraceHeader))
}
