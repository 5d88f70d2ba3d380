// Package postgres implements the store interfaces on PostgreSQL through
// sqlx and the pgx stdlib driver. Driver errors are translated into the
// store package's sentinel errors before they leave this package, and every
// search query is assembled from a validated domain filter with positional
// arguments only.
package postgres
