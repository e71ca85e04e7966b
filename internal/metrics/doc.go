// Package metrics exposes the server's prometheus collectors: request
// counts and latency per route pattern, blob store operations and admin
// login attempts.
package metrics
