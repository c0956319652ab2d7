//go:build integration

// Package testdb provides utilities for tests that run against a real
// PostgreSQL database.
//
// Tests using it carry the integration build tag and are skipped when no
// database URL is configured:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    // changes are rolled back when fn returns
//	})
//
// Tests that need committed data from several transactions (concurrency
// tests) create their own board and remove it with CleanupBoard.
package testdb
