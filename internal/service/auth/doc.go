// Package auth issues and verifies HS256 access tokens and hashes passwords
// with bcrypt. Token failures collapse into ErrInvalidToken or
// ErrExpiredToken so callers can answer 401 without inspecting JWT details.
package auth
