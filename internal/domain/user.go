package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Password length bounds. 72 bytes is bcrypt's input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
	MaxNameLength     = 100
)

var validate = validator.New()

// Role determines which operations a user may perform.
type Role string

const (
	// RoleOwner can publish and manage property listings.
	RoleOwner Role = "owner"
	// RoleInterested browses, favorites and contacts owners.
	RoleInterested Role = "interested"
)

// ParseRole converts a raw role string. An empty value yields RoleInterested.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RoleInterested:
		return RoleInterested, nil
	case RoleOwner:
		return RoleOwner, nil
	default:
		return "", NewValidationError("role", "must be one of: owner, interested", ErrInvalidRole)
	}
}

// User is a registered account.
type User struct {
	ID             uuid.UUID `json:"id"         db:"id"`
	Name           string    `json:"name"       db:"name"`
	Email          string    `json:"email"      db:"email"`
	Phone          *string   `json:"phone"      db:"phone"`
	Role           Role      `json:"role"       db:"role"`
	Password       string    `json:"-"          db:"-"`
	HashedPassword string    `json:"-"          db:"password_hash"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser creates a validated user with a fresh ID. The email is normalised
// to lower case so the unique index treats addresses case-insensitively.
// The caller must hash Password before the user is stored.
func NewUser(name, email, password string, role Role, phone *string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Phone:     phone,
		Role:      role,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}

	if n := utf8.RuneCountInString(u.Name); n == 0 || n > MaxNameLength {
		return NewValidationError("name", "must be between 1 and 100 characters", ErrValidation)
	}

	if err := validate.Var(u.Email, "required,email"); err != nil {
		return NewValidationError("email", "must be a valid email address", ErrInvalidEmail)
	}

	if u.Role != RoleOwner && u.Role != RoleInterested {
		return NewValidationError("role", "must be one of: owner, interested", ErrInvalidRole)
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength || len(u.Password) > MaxPasswordLength {
			return NewValidationError("password", "must be between 8 and 72 characters", ErrInvalidPassword)
		}
	} else if u.HashedPassword == "" {
		// Stored users carry only the hash.
		return NewValidationError("password", "is required", ErrInvalidPassword)
	}

	return nil
}
