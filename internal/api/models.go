package api

import (
	"time"

	"github.com/casafind/casafind-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string  `json:"name"     validate:"required,max=100"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Role     string  `json:"role"     validate:"omitempty,oneof=owner interested"`
	Phone    *string `json:"phone"    validate:"omitempty,max=30"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for register and login.
type AuthResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// VerifyResponse echoes the caller's current account and token.
type VerifyResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// PropertyRequest is the full set of editable listing fields.
type PropertyRequest struct {
	Title       string   `json:"title"       validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Address     string   `json:"address"     validate:"required"`
	City        string   `json:"city"        validate:"required"`
	State       string   `json:"state"       validate:"required"`
	ZipCode     string   `json:"zip_code"    validate:"max=20"`
	Status      string   `json:"status"      validate:"omitempty,oneof=available rented sold"`
}

func (p PropertyRequest) input() domain.PropertyInput {
	in := domain.PropertyInput{
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		ZipCode:     p.ZipCode,
		Status:      p.Status,
	}
	if p.Price != nil {
		in.Price = *p.Price
	}
	return in
}

// PropertyCreatedResponse is returned when a listing is published.
type PropertyCreatedResponse struct {
	Message    string `json:"message"`
	PropertyID string `json:"property_id"`
}

// ImageCreatedResponse is returned when an image is uploaded.
type ImageCreatedResponse struct {
	Message string                `json:"message"`
	Image   *domain.PropertyImage `json:"image"`
}

// SendMessageRequest defines the payload for sending a message.
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
	PropertyID string `json:"property_id" validate:"required,uuid"`
	Content    string `json:"content"     validate:"required,max=5000"`
}

// MessageCreatedResponse is returned when a message is sent.
type MessageCreatedResponse struct {
	Message string          `json:"message"`
	Data    *domain.Message `json:"data"`
}

// CreateReviewRequest defines the payload for reviewing a listing.
type CreateReviewRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	Rating     int    `json:"rating"      validate:"required,min=1,max=5"`
	Comment    string `json:"comment"     validate:"max=2000"`
}

// UpdateReviewRequest defines the payload for editing a review.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ReviewResponse wraps a created or updated review.
type ReviewResponse struct {
	Message string         `json:"message"`
	Review  *domain.Review `json:"review"`
}

// FavoriteToggleResponse reports the state after a toggle.
type FavoriteToggleResponse struct {
	Message    string `json:"message"`
	IsFavorite bool   `json:"is_favorite"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
