package postgres

import (
	"fmt"
	"strings"

	"github.com/casafind/casafind-api/internal/domain"
)

// listingSelect projects a property with its owner's contact details and
// main image. Callers append FROM/WHERE through listingFrom.
const listingSelect = `
	SELECT p.id, p.owner_id, p.title, p.description, p.price::float8 AS price,
	       p.address, p.city, p.state, p.zip_code, p.status, p.created_at, p.updated_at,
	       u.name AS owner_name, u.email AS owner_email,
	       (SELECT pi.image_url FROM property_images pi
	         WHERE pi.property_id = p.id
	         ORDER BY pi.is_main DESC, pi.sort_order, pi.created_at
	         LIMIT 1) AS main_image`

const listingFrom = `
	FROM properties p
	JOIN users u ON u.id = p.owner_id`

// sortColumns maps sort fields to trusted column expressions. Only values
// from this map are ever interpolated into SQL.
var sortColumns = map[domain.SortField]string{
	domain.SortByPrice:     "p.price",
	domain.SortByCreatedAt: "p.created_at",
	domain.SortByTitle:     "LOWER(p.title)",
}

// propertyPredicate is the WHERE clause of a listing search and its
// positional arguments. Page and count queries share one instance so they
// always agree on what matches.
type propertyPredicate struct {
	clauses []string
	args    []any
}

func (p *propertyPredicate) add(format string, value any) {
	p.args = append(p.args, value)
	p.clauses = append(p.clauses, fmt.Sprintf(format, len(p.args)))
}

// where renders the clause, or "" when the filter is unrestricted.
func (p *propertyPredicate) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

// buildPropertyPredicate translates a validated filter into SQL.
func buildPropertyPredicate(f domain.PropertyFilter) *propertyPredicate {
	pred := &propertyPredicate{}

	if f.Search != "" {
		pred.args = append(pred.args, containsPattern(f.Search))
		n := len(pred.args)
		pred.clauses = append(pred.clauses, fmt.Sprintf(
			"(p.title ILIKE $%[1]d OR p.description ILIKE $%[1]d OR p.address ILIKE $%[1]d)", n))
	}
	if f.MinPrice != nil {
		pred.add("p.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		pred.add("p.price <= $%d", *f.MaxPrice)
	}
	if f.City != "" {
		pred.add("p.city ILIKE $%d", containsPattern(f.City))
	}
	if f.State != "" {
		pred.add("p.state ILIKE $%d", containsPattern(f.State))
	}
	if f.Status != nil {
		pred.add("p.status = $%d", string(*f.Status))
	}
	if f.OwnerID != nil {
		pred.add("p.owner_id = $%d", *f.OwnerID)
	}

	return pred
}

// orderBy renders a deterministic ORDER BY. The id tie-breaker keeps pages
// disjoint when sort keys repeat.
func orderBy(f domain.PropertyFilter) string {
	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = sortColumns[domain.SortByCreatedAt]
	}
	direction := "DESC"
	if f.SortOrder == domain.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, p.id %s", column, direction, direction)
}

// buildSearchQueries returns the page query, the count query and the
// arguments of each.
func buildSearchQueries(f domain.PropertyFilter) (page string, pageArgs []any, count string, countArgs []any) {
	pred := buildPropertyPredicate(f)

	count = "SELECT COUNT(*) FROM properties p" + pred.where()
	countArgs = pred.args

	pageArgs = append(append([]any{}, pred.args...), f.Page.Limit, f.Page.Offset())
	page = listingSelect + listingFrom + pred.where() + orderBy(f) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(pageArgs)-1, len(pageArgs))

	return page, pageArgs, count, countArgs
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE substring pattern with the wildcard
// characters of s escaped.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
