package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/casafind/casafind-api/internal/api/shared"
	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/platform/logger"
	"github.com/casafind/casafind-api/internal/service"
	"github.com/casafind/casafind-api/internal/service/auth"
	"github.com/casafind/casafind-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	users      service.UserService
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users service.UserService, jwtService auth.JWTService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, "User registered successfully", user)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	h.respondWithToken(w, r, http.StatusOK, "Login successful", user)
}

// Verify handles GET /api/auth/verify. The account is re-read so that a
// deleted user's token stops working and role changes apply at once.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), id.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("token belongs to a deleted user", slog.String("user_id", id.UserID.String()))
			HandleAPIError(w, r, auth.ErrInvalidToken, "")
			return
		}
		HandleAPIError(w, r, err, "Failed to verify token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VerifyResponse{
		User:  user,
		Token: bearerToken(r),
	})
}

func (h *AuthHandler) respondWithToken(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	user *domain.User,
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	token, expiresAt, err := h.jwtService.GenerateToken(r.Context(), auth.IdentityOf(user))
	if err != nil {
		log.Error("failed to generate token",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, status, AuthResponse{
		Message:   message,
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// bearerToken returns the raw token of the Authorization header.
func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
