package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casafind/casafind-api/internal/domain"
)

func TestContainsPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%beach%", containsPattern("beach"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\dir%`, containsPattern(`c:\dir`))
}

func TestBuildSearchQueries_SharePredicate(t *testing.T) {
	minPrice, maxPrice := 1000.0, 2500.0
	owner := uuid.New()
	filter, err := domain.NewPropertyFilter(domain.PropertySearchParams{
		Search:   "garden",
		MinPrice: "1000",
		MaxPrice: "2500",
		City:     "Lisbon",
		Page:     "3",
		Limit:    "20",
	})
	require.NoError(t, err)
	filter.OwnerID = &owner

	page, pageArgs, count, countArgs := buildSearchQueries(filter)

	assert.Equal(t, []any{"%garden%", minPrice, maxPrice, "%Lisbon%", "available", owner}, countArgs)
	assert.Equal(t, append(append([]any{}, countArgs...), 20, 40), pageArgs)

	wantWhere := " WHERE (p.title ILIKE $1 OR p.description ILIKE $1 OR p.address ILIKE $1)" +
		" AND p.price >= $2 AND p.price <= $3 AND p.city ILIKE $4 AND p.status = $5 AND p.owner_id = $6"
	assert.Equal(t, "SELECT COUNT(*) FROM properties p"+wantWhere, count)
	assert.Contains(t, page, wantWhere)
	assert.Contains(t, page, " ORDER BY p.created_at DESC, p.id DESC LIMIT $7 OFFSET $8")
}

func TestBuildSearchQueries_NoFilters(t *testing.T) {
	filter := domain.PropertyFilter{
		SortBy:    domain.SortByPrice,
		SortOrder: domain.SortAsc,
		Page:      domain.Page{Number: 1, Limit: 10},
	}

	page, pageArgs, count, countArgs := buildSearchQueries(filter)

	assert.Equal(t, "SELECT COUNT(*) FROM properties p", count)
	assert.Empty(t, countArgs)
	assert.Equal(t, []any{10, 0}, pageArgs)
	assert.Contains(t, page, " ORDER BY p.price ASC, p.id ASC LIMIT $1 OFFSET $2")
	assert.NotContains(t, page, "WHERE")
}

func TestOrderBy_UnknownFieldFallsBack(t *testing.T) {
	got := orderBy(domain.PropertyFilter{SortBy: "owner_id; DROP TABLE users", SortOrder: "sideways"})
	assert.Equal(t, " ORDER BY p.created_at DESC, p.id DESC", got)

	got = orderBy(domain.PropertyFilter{SortBy: domain.SortByTitle, SortOrder: domain.SortAsc})
	assert.Equal(t, " ORDER BY LOWER(p.title) ASC, p.id ASC", got)
}
