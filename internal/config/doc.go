// Package config loads the API configuration from environment variables.
//
// Load never fails on a malformed value; it falls back to the default.
// Validate then reports every problem at once through errors.Join:
//
//	cfg, _ := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    // one line per problem
//	}
//
// # Environment Variables
//
//	SERVER_PORT / PORT        HTTP port (default 8080)
//	SERVER_ENV                development | production | test
//	LOG_LEVEL                 debug | info | warn | error
//	CORS_ALLOWED_ORIGINS      comma separated origins
//	PUBLIC_BASE_URL           public API URL; NEXT_PUBLIC_API_URL is the fallback
//	ADMIN_STATIC_DIR          built admin UI served under /admin
//	TRUST_PROXY               take the client IP from X-Forwarded-For
//	DB_HOST, DB_PORT, DB_NAMESPACE, DB_DATABASE, DB_USER, DB_PASSWORD
//	JWT_SECRET                HS256 signing secret
//	JWT_EXPIRATION_MINS       session lifetime (default one day)
//	AUTH_COOKIE_NAME          session cookie (default token)
//	AUTH_COOKIE_SECURE        set Secure on the session cookie
//	ADMIN_EMAIL               admin login
//	ADMIN_PASSWORD_HASH       bcrypt hash; ADMIN_PASSWORD is accepted outside production
//	STORAGE_DRIVER            local | gcs
//	STORAGE_LOCAL_DIR         upload directory for the local driver
//	STORAGE_LOCAL_BASE_URL    public URL of that directory
//	GCS_BUCKET, GCS_CREDENTIALS_FILE, GCS_PUBLIC_URL
//	SITE_FILE                 YAML roster and anniversary file
//	SITE_TIMEZONE             overrides the site file's time zone
//	LOGIN_RATE_PER_MINUTE, LOGIN_RATE_BURST
package config
