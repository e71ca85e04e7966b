package middleware

import (
	"net/http"
	"time"
)

// RequestRecorder receives one observation per served request
type RequestRecorder interface {
	RecordRequest(method, route string, status int, elapsed time.Duration)
}

// Instrument records method, matched route pattern, status and latency.
// Requests that matched no route are labelled "unmatched" to keep label
// cardinality bounded.
func Instrument(rec RequestRecorder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			rec.RecordRequest(r.Method, route, wrapped.statusCode, time.Since(start))
		})
	}
}
