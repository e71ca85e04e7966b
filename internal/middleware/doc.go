// Package middleware provides the HTTP middleware stack for the fan site API.
//
// Everything is expressed as a Middleware (func(http.Handler) http.Handler)
// and composed with Chain:
//
//	handler := middleware.Chain(mux,
//	    middleware.Recovery,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.SecurityHeaders,
//	    middleware.CORS(origins),
//	    middleware.Instrument(collector),
//	)
//
// # Admin access
//
// Mutating API routes are wrapped with RequireAdmin, which answers 401 with a
// failure envelope. The static admin UI under /admin is wrapped with
// AdminPages, which redirects to the login page instead. Both read the
// session token from the cookie first and fall back to a Bearer header.
// The verified identity is available to handlers through GetAdmin.
//
// # Rate limiting
//
// RateLimiter keeps a golang.org/x/time/rate bucket per client IP and is
// applied to the login endpoint. Rejected requests get 429 with Retry-After.
package middleware
