package store

import "github.com/jmoiron/sqlx"

// DBTX abstracts the database access layer. It is implemented by both
// *sqlx.DB and *sqlx.Tx, so stores work with either a pooled connection or a
// transaction.
type DBTX interface {
	sqlx.ExtContext
}
