// Package testdb gives integration tests an isolated SurrealDB namespace
// with the schema from migrations/ applied.
//
//	func TestAlbumRepository(t *testing.T) {
//	    tdb := testdb.New(t) // skips when SurrealDB is not reachable
//	    repo := repository.NewAlbumRepository(tdb.DB)
//	    ...
//	}
//
// Connection settings come from TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER and
// TEST_DB_PASSWORD (defaults localhost:8000 root/root). The namespace is
// removed on cleanup.
package testdb
