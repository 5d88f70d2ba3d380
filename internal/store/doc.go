// Package store defines the persistence contracts for users, listings,
// images, favorites, messages and reviews, the sentinel errors every
// implementation maps its failures onto, and the transaction helper that
// services use when an operation spans several statements.
package store
