// Package handler provides the HTTP handlers of the fan site API.
//
// Each content area has a handler struct built with NewXxxHandler around a
// small service interface declared next to it, so tests substitute mocks
// with Func fields.
//
// # Response Format
//
// Every response body is a model.Envelope:
//
//	{"success": true, "data": ...}
//	{"success": false, "message": "..."}
//
// WriteData, WriteSuccess and WriteError produce these. Service and upload
// errors go through MapServiceError, which decides the status code; 5xx
// failures are logged with the request id and answered with a generic
// message.
//
// # Uploads
//
// Album, gallery, member and settings writes are multipart forms parsed by
// the upload package. The body is bounded with http.MaxBytesReader and the
// form's temp files are released when the handler returns. List-valued text
// fields accept a JSON array or repeated values.
//
// # Routing
//
// NewRouter registers the routes on Go 1.22 method patterns, gates mutating
// routes with middleware.RequireAdmin, serves the admin UI behind
// middleware.AdminPages, and applies the global middleware chain.
package handler
