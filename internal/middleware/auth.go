package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/fansite-cms/api/internal/model"
)

// TokenVerifier validates a session token
type TokenVerifier interface {
	Verify(token string) (*model.AdminIdentity, error)
}

// DefaultCookieName is the session cookie set by the login endpoint.
const DefaultCookieName = "token"

// TokenFromRequest returns the session token from the cookie, or from an
// "Authorization: Bearer" header when no cookie is present.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if tokens := requestTokens(r, cookieName); len(tokens) > 0 {
		return tokens[0]
	}
	return ""
}

// requestTokens lists the cookie token then the bearer token, skipping
// empty ones.
func requestTokens(r *http.Request, cookieName string) []string {
	var tokens []string
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		tokens = append(tokens, c.Value)
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if bearer := strings.TrimSpace(parts[1]); bearer != "" {
			tokens = append(tokens, bearer)
		}
	}
	return tokens
}

// authenticate tries every token the request carries, so a stale cookie
// does not shadow a valid bearer token. found reports whether any token
// was present.
func authenticate(r *http.Request, verifier TokenVerifier, cookieName string) (identity *model.AdminIdentity, found bool) {
	for _, token := range requestTokens(r, cookieName) {
		found = true
		if id, err := verifier.Verify(token); err == nil {
			return id, true
		}
	}
	return nil, found
}

// RequireAdmin rejects requests without a valid admin token with a 401
// envelope.
func RequireAdmin(verifier TokenVerifier, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, found := authenticate(r, verifier, cookieName)
			if !found {
				model.NewUnauthorizedError("").WriteJSON(w)
				return
			}
			if identity == nil {
				model.NewUnauthorizedError("invalid or expired token").WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), AdminKey, identity)))
		})
	}
}

// AdminPages redirects browsers without a valid admin token to the login
// page, carrying the requested path in the next parameter.
func AdminPages(verifier TokenVerifier, cookieName, loginPath string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity, _ := authenticate(r, verifier, cookieName); identity != nil {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), AdminKey, identity)))
				return
			}

			target := loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusFound)
		})
	}
}

// GetAdmin extracts the verified admin identity from context
func GetAdmin(ctx context.Context) *model.AdminIdentity {
	if identity, ok := ctx.Value(AdminKey).(*model.AdminIdentity); ok {
		return identity
	}
	return nil
}
