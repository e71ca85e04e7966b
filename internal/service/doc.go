// Package service implements the business logic of the fan site API.
//
// Each entity service validates requests, applies defaults and sequences
// blob uploads with document writes:
//
//   - Create uploads the file first, then writes the document. If the write
//     fails the fresh blob is deleted best-effort.
//   - Update writes the document before deleting a replaced blob.
//   - Delete removes the document, then its blobs. Blob failures are
//     logged and never returned.
//
// Services define their own repository interfaces and take a blob.Store,
// so tests substitute hand-written mocks.
//
// # Errors
//
// Sentinel errors live in errors.go. A *ValidationError carries the field
// problems of a rejected request:
//
//	album, err := albums.Create(ctx, req, cover)
//	var verr *service.ValidationError
//	if errors.As(err, &verr) {
//	    // 400 with verr.Fields
//	}
//
// # Schedule
//
// ScheduleService.Calendar merges stored events with the yearly
// occurrences produced by recurrence.Rules. The two lists are concatenated
// and stably sorted by start; same-day entries are all kept.
package service
