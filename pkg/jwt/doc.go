// Package jwt issues and checks the admin session token.
//
// Tokens are HS256-signed with a single shared secret and carry the admin
// email and role. There is no refresh flow and no revocation list; a token
// is valid until it expires.
//
//	svc, err := jwt.NewService(jwt.Config{
//	    Secret:         os.Getenv("JWT_SECRET"),
//	    Issuer:         "fansite-api",
//	    ExpirationMins: 60 * 24,
//	})
//
//	token, expiresAt, err := svc.Sign("admin", "admin@example.com", jwt.RoleAdmin)
//
//	claims, err := svc.Validate(token)
//	if errors.Is(err, jwt.ErrTokenExpired) {
//	    // ask for a new login
//	}
package jwt
