package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit within int32 so offsets never overflow.
	MaxPage = math.MaxInt32 / MaxLimit
)

// SortField is a column listings may be ordered by.
type SortField string

const (
	SortByPrice     SortField = "price"
	SortByCreatedAt SortField = "created_at"
	SortByTitle     SortField = "title"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// PropertySearchParams is the raw query string of a listing search.
type PropertySearchParams struct {
	Search    string
	MinPrice  string
	MaxPrice  string
	City      string
	State     string
	Status    string
	SortBy    string
	SortOrder string
	Page      string
	Limit     string
}

// PropertyFilter is a normalised, validated search. Stores may only build
// queries from a PropertyFilter, never from raw parameters.
type PropertyFilter struct {
	Search   string
	MinPrice *float64
	MaxPrice *float64
	City     string
	State    string

	// Status nil means any status; searches default to available.
	Status *PropertyStatus

	// OwnerID restricts results to one owner's listings.
	OwnerID *uuid.UUID

	SortBy    SortField
	SortOrder SortOrder
	Page      Page
}

// Page is a validated page request.
type Page struct {
	Number int
	Limit  int
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// NewPage clamps raw page values: non-numeric or < 1 pages become 1, pages
// above MaxPage become MaxPage, limits outside 1..MaxLimit become
// DefaultLimit or MaxLimit.
func NewPage(rawPage, rawLimit string) Page {
	page := DefaultPage
	if n, err := strconv.Atoi(strings.TrimSpace(rawPage)); err == nil && n > 0 {
		page = n
	}
	if page > MaxPage {
		page = MaxPage
	}

	limit := DefaultLimit
	if n, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && n > 0 {
		limit = n
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Page{Number: page, Limit: limit}
}

// Pagination is the metadata returned alongside a page of results.
type Pagination struct {
	Total       int `json:"total"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	Limit       int `json:"limit"`
}

// NewPagination computes page metadata for total matching rows.
func NewPagination(total int, page Page) Pagination {
	totalPages := 0
	if page.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(page.Limit)))
	}
	return Pagination{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page.Number,
		Limit:       page.Limit,
	}
}

// NewPropertyFilter validates and normalises search parameters. Unknown sort
// fields and orders fall back to created_at desc; malformed prices and
// unknown statuses are validation errors.
func NewPropertyFilter(params PropertySearchParams) (PropertyFilter, error) {
	f := PropertyFilter{
		Search:    strings.TrimSpace(params.Search),
		City:      strings.TrimSpace(params.City),
		State:     strings.TrimSpace(params.State),
		SortBy:    SortByCreatedAt,
		SortOrder: SortDesc,
		Page:      NewPage(params.Page, params.Limit),
	}

	var err error
	if f.MinPrice, err = parsePrice("minPrice", params.MinPrice); err != nil {
		return PropertyFilter{}, err
	}
	if f.MaxPrice, err = parsePrice("maxPrice", params.MaxPrice); err != nil {
		return PropertyFilter{}, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return PropertyFilter{}, NewValidationError("minPrice", "must not exceed maxPrice", ErrInvalidPrice)
	}

	status, err := ParsePropertyStatus(params.Status)
	if err != nil {
		return PropertyFilter{}, err
	}
	f.Status = &status

	switch SortField(strings.ToLower(strings.TrimSpace(params.SortBy))) {
	case SortByPrice:
		f.SortBy = SortByPrice
	case SortByTitle:
		f.SortBy = SortByTitle
	}

	if SortOrder(strings.ToLower(strings.TrimSpace(params.SortOrder))) == SortAsc {
		f.SortOrder = SortAsc
	}

	return f, nil
}

func parsePrice(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil, NewValidationError(field, "must be a non-negative number", ErrInvalidPrice)
	}
	return &v, nil
}
