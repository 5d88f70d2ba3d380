package domain

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// PropertyStatus is the availability of a listing.
type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusRented    PropertyStatus = "rented"
	StatusSold      PropertyStatus = "sold"
)

// MaxPrice bounds prices to what NUMERIC(12,2) can hold.
const MaxPrice = 9_999_999_999.99

// ParsePropertyStatus validates a status string. An empty value yields
// StatusAvailable.
func ParsePropertyStatus(raw string) (PropertyStatus, error) {
	switch PropertyStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case "", StatusAvailable:
		return StatusAvailable, nil
	case StatusRented:
		return StatusRented, nil
	case StatusSold:
		return StatusSold, nil
	default:
		return "", NewValidationError("status", "must be one of: available, rented, sold", ErrInvalidStatus)
	}
}

// Property is a listing published by an owner.
type Property struct {
	ID          uuid.UUID      `json:"id"          db:"id"`
	OwnerID     uuid.UUID      `json:"owner_id"    db:"owner_id"`
	Title       string         `json:"title"       db:"title"`
	Description string         `json:"description" db:"description"`
	Price       float64        `json:"price"       db:"price"`
	Address     string         `json:"address"     db:"address"`
	City        string         `json:"city"        db:"city"`
	State       string         `json:"state"       db:"state"`
	ZipCode     string         `json:"zip_code"    db:"zip_code"`
	Status      PropertyStatus `json:"status"      db:"status"`
	CreatedAt   time.Time      `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"  db:"updated_at"`
}

// PropertyInput carries the editable fields of a listing. Updates replace
// every field, so callers send the full set.
type PropertyInput struct {
	Title       string
	Description string
	Price       float64
	Address     string
	City        string
	State       string
	ZipCode     string
	Status      string
}

// NewProperty creates a validated listing owned by ownerID.
func NewProperty(ownerID uuid.UUID, in PropertyInput) (*Property, error) {
	now := time.Now().UTC()
	p := &Property{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Apply(in); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply overwrites the editable fields from in and re-validates.
func (p *Property) Apply(in PropertyInput) error {
	status, err := ParsePropertyStatus(in.Status)
	if err != nil {
		return err
	}

	p.Title = strings.TrimSpace(in.Title)
	p.Description = strings.TrimSpace(in.Description)
	p.Price = math.Round(in.Price*100) / 100
	p.Address = strings.TrimSpace(in.Address)
	p.City = strings.TrimSpace(in.City)
	p.State = strings.TrimSpace(in.State)
	p.ZipCode = strings.TrimSpace(in.ZipCode)
	p.Status = status
	p.UpdatedAt = time.Now().UTC()

	return p.Validate()
}

// Validate checks if the Property has valid data.
func (p *Property) Validate() error {
	if p.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if p.OwnerID == uuid.Nil {
		return NewValidationError("owner_id", "cannot be empty", ErrInvalidID)
	}
	if n := utf8.RuneCountInString(p.Title); n == 0 || n > 200 {
		return NewValidationError("title", "must be between 1 and 200 characters", ErrValidation)
	}
	if utf8.RuneCountInString(p.Description) > 5000 {
		return NewValidationError("description", "must be at most 5000 characters", ErrValidation)
	}
	if math.IsNaN(p.Price) || p.Price < 0 || p.Price > MaxPrice {
		return NewValidationError("price", "must be a non-negative amount", ErrInvalidPrice)
	}
	if p.Address == "" {
		return NewValidationError("address", "is required", ErrValidation)
	}
	if p.City == "" {
		return NewValidationError("city", "is required", ErrValidation)
	}
	if p.State == "" {
		return NewValidationError("state", "is required", ErrValidation)
	}
	if len(p.ZipCode) > 20 {
		return NewValidationError("zip_code", "must be at most 20 characters", ErrValidation)
	}
	if _, err := ParsePropertyStatus(string(p.Status)); err != nil || p.Status == "" {
		return NewValidationError("status", "must be one of: available, rented, sold", ErrInvalidStatus)
	}
	return nil
}

// PropertyImage is a picture attached to a listing. ObjectKey addresses the
// file in object storage and is never exposed.
type PropertyImage struct {
	ID         uuid.UUID `json:"id"          db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	ObjectKey  string    `json:"-"           db:"object_key"`
	URL        string    `json:"image_url"   db:"image_url"`
	IsMain     bool      `json:"is_main"     db:"is_main"`
	SortOrder  int       `json:"sort_order"  db:"sort_order"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// PropertyListing is a property joined with its owner's public contact
// details and main image, as returned by search and detail queries.
type PropertyListing struct {
	Property
	OwnerName  string  `json:"owner_name"  db:"owner_name"`
	OwnerEmail string  `json:"owner_email" db:"owner_email"`
	MainImage  *string `json:"main_image"  db:"main_image"`
}

// PropertyDetail is a listing with every attached image.
type PropertyDetail struct {
	PropertyListing
	Images []PropertyImage `json:"images"`
}
