// Package testdb connects integration tests to a real PostgreSQL database.
//
// Tests call Open, which skips the test unless CASAFIND_TEST_DATABASE_URL is
// set, applies the embedded goose migrations once per process and returns a
// pooled connection. WithTx then runs each test inside a transaction that is
// always rolled back, so tests never see each other's rows.
//
//	func TestSomething(t *testing.T) {
//		db := testdb.Open(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
//			s := postgres.NewPostgresUserStore(tx, nil)
//			...
//		})
//	}
package testdb
