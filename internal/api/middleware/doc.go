// Package middleware holds the HTTP middleware of the API: bearer
// authentication and role checks, per-request trace IDs, request logging and
// rate limiting.
package middleware
