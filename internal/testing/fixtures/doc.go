// Package fixtures inserts content documents for integration tests.
//
//	f := fixtures.New(tdb.DB)
//	album := f.CreateAlbum(t, fixtures.WithAlbumDate("2024-06-01"))
//	img := f.CreateGalleryImage(t, time.Now())
//
// Factories write raw SurrealQL so repository tests do not depend on the
// code under test to set up their data.
package fixtures
