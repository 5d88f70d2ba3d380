package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/casafind/casafind-api/internal/api"
	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/mocks"
	"github.com/casafind/casafind-api/internal/service"
	"github.com/casafind/casafind-api/internal/service/auth"
	"github.com/casafind/casafind-api/internal/store"
)

func authRouter(users *mocks.MockUserService, jwt *mocks.MockJWTService, id *auth.Identity) http.Handler {
	h := api.NewAuthHandler(users, jwt, testLogger())
	return newRouter(id, func(r chi.Router) {
		r.Post("/api/auth/register", h.Register)
		r.Post("/api/auth/login", h.Login)
		r.Get("/api/auth/verify", h.Verify)
	})
}

func testUser(role domain.Role) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:             uuid.New(),
		Name:           "Ana",
		Email:          "ana@example.com",
		Role:           role,
		HashedPassword: "hash",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		users := new(mocks.MockUserService)
		jwt := &mocks.MockJWTService{Token: "signed", ExpiresAt: time.Now().Add(time.Hour)}
		user := testUser(domain.RoleOwner)

		users.On("Register", mock.Anything, service.RegisterInput{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "password123",
			Role:     "owner",
		}).Return(user, nil)

		rr := doJSON(t, authRouter(users, jwt, nil), http.MethodPost, "/api/auth/register", map[string]string{
			"name":     "Ana",
			"email":    "ana@example.com",
			"password": "password123",
			"role":     "owner",
		})

		require.Equal(t, http.StatusCreated, rr.Code)
		var body api.AuthResponse
		decodeBody(t, rr, &body)
		assert.Equal(t, "User registered successfully", body.Message)
		assert.Equal(t, "signed", body.Token)
		require.NotNil(t, body.User)
		assert.Equal(t, user.ID, body.User.ID)
		assert.NotContains(t, rr.Body.String(), "hash")
		users.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("Register", mock.Anything, mock.Anything).Return(nil, store.ErrEmailExists)

		rr := doJSON(t, authRouter(users, &mocks.MockJWTService{}, nil), http.MethodPost, "/api/auth/register",
			map[string]string{"name": "Ana", "email": "ana@example.com", "password": "password123"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Email already exists", errorMessage(t, rr))
	})

	t.Run("invalid role", func(t *testing.T) {
		users := new(mocks.MockUserService)

		rr := doJSON(t, authRouter(users, &mocks.MockJWTService{}, nil), http.MethodPost, "/api/auth/register",
			map[string]string{"name": "Ana", "email": "ana@example.com", "password": "password123", "role": "admin"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid role: must be one of: owner interested", errorMessage(t, rr))
		users.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("malformed json", func(t *testing.T) {
		rr := doJSON(t, authRouter(new(mocks.MockUserService), &mocks.MockJWTService{}, nil),
			http.MethodPost, "/api/auth/register", "{not json")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid request format", errorMessage(t, rr))
	})

	t.Run("token failure", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("Register", mock.Anything, mock.Anything).Return(testUser(domain.RoleInterested), nil)
		jwt := &mocks.MockJWTService{Err: errors.New("signing failed")}

		rr := doJSON(t, authRouter(users, jwt, nil), http.MethodPost, "/api/auth/register",
			map[string]string{"name": "Ana", "email": "ana@example.com", "password": "password123"})

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Failed to generate authentication token", errorMessage(t, rr))
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		users := new(mocks.MockUserService)
		user := testUser(domain.RoleInterested)
		users.On("Authenticate", mock.Anything, "ana@example.com", "password123").Return(user, nil)

		var issuedFor auth.Identity
		jwt := &mocks.MockJWTService{
			GenerateTokenFn: func(_ context.Context, id auth.Identity) (string, time.Time, error) {
				issuedFor = id
				return "signed", time.Now().Add(time.Hour), nil
			},
		}

		rr := doJSON(t, authRouter(users, jwt, nil), http.MethodPost, "/api/auth/login",
			map[string]string{"email": "ana@example.com", "password": "password123"})

		require.Equal(t, http.StatusOK, rr.Code)
		var body api.AuthResponse
		decodeBody(t, rr, &body)
		assert.Equal(t, "Login successful", body.Message)
		assert.Equal(t, user.ID, issuedFor.UserID)
		assert.Equal(t, domain.RoleInterested, issuedFor.Role)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).Return(nil, auth.ErrInvalidCredentials)

		rr := doJSON(t, authRouter(users, &mocks.MockJWTService{}, nil), http.MethodPost, "/api/auth/login",
			map[string]string{"email": "ana@example.com", "password": "wrong"})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid credentials", errorMessage(t, rr))
	})

	t.Run("missing password", func(t *testing.T) {
		rr := doJSON(t, authRouter(new(mocks.MockUserService), &mocks.MockJWTService{}, nil),
			http.MethodPost, "/api/auth/login", map[string]string{"email": "ana@example.com"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid password: required field", errorMessage(t, rr))
	})

	t.Run("empty body", func(t *testing.T) {
		rr := doJSON(t, authRouter(new(mocks.MockUserService), &mocks.MockJWTService{}, nil),
			http.MethodPost, "/api/auth/login", nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Request body is required", errorMessage(t, rr))
	})
}

func TestAuthHandler_Verify(t *testing.T) {
	user := testUser(domain.RoleOwner)
	id := auth.IdentityOf(user)

	t.Run("returns current user", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("GetUser", mock.Anything, user.ID).Return(user, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		rr := httptest.NewRecorder()
		authRouter(users, &mocks.MockJWTService{}, &id).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var body api.VerifyResponse
		decodeBody(t, rr, &body)
		assert.Equal(t, "abc.def.ghi", body.Token)
		assert.Equal(t, user.Email, body.User.Email)
	})

	t.Run("deleted user", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("GetUser", mock.Anything, user.ID).Return(nil, store.ErrUserNotFound)

		rr := doJSON(t, authRouter(users, &mocks.MockJWTService{}, &id), http.MethodGet, "/api/auth/verify", nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid token", errorMessage(t, rr))
	})

	t.Run("no identity", func(t *testing.T) {
		rr := doJSON(t, authRouter(new(mocks.MockUserService), &mocks.MockJWTService{}, nil),
			http.MethodGet, "/api/auth/verify", nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Authentication required", errorMessage(t, rr))
	})
}

func TestHealth(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/health", api.Health)

	rr := doJSON(t, r, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var body api.HealthResponse
	decodeBody(t, rr, &body)
	assert.Equal(t, "OK", body.Status)
	assert.False(t, body.Timestamp.IsZero())
}
