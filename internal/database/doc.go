// Package database wraps the SurrealDB document store behind a small
// interface so repositories can be exercised against a live instance or
// a fake.
//
// Results come back as one {status, result} map per statement:
//
//	results, err := db.Query(ctx, "SELECT * FROM album ORDER BY date DESC", nil)
//
// Multi-statement writes that must land together go through AtomicBatch,
// which wraps its statements in BEGIN/COMMIT TRANSACTION and namespaces
// variables so two statements can both bind $id.
//
// Use errors.Is() with ErrNotFound, ErrConnection and ErrQuery.
package database
