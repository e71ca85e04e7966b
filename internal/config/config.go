package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers
const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

// minSecretLength is the shortest JWT_SECRET accepted in production
const minSecretLength = 32

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Storage   StorageConfig
	Site      SiteConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
	PublicBaseURL  string
	AdminStaticDir string
	TrustProxy     bool
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// JWTConfig holds session token settings
type JWTConfig struct {
	Secret         string
	ExpirationMins int
	Issuer         string
	CookieName     string
	CookieSecure   bool
}

// AdminConfig holds the single admin credential. PasswordHash (bcrypt)
// takes precedence over Password.
type AdminConfig struct {
	Email        string
	Password     string
	PasswordHash string
}

// StorageConfig selects and configures the blob store
type StorageConfig struct {
	Driver         string
	LocalDir       string
	LocalBaseURL   string
	GCSBucket      string
	GCSCredentials string
	GCSPublicURL   string
}

// SiteConfig points at the roster and anniversary file
type SiteConfig struct {
	File     string
	Timezone string
}

// RateLimitConfig holds login throttling settings
type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	publicBaseURL := strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", getEnv("NEXT_PUBLIC_API_URL", "http://localhost:8080")), "/")

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", getEnv("PORT", "8080")),
			Env:            getEnv("SERVER_ENV", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 60*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			PublicBaseURL:  publicBaseURL,
			AdminStaticDir: getEnv("ADMIN_STATIC_DIR", ""),
			TrustProxy:     getBoolEnv("TRUST_PROXY", false),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "fansite"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", ""),
			ExpirationMins: getIntEnv("JWT_EXPIRATION_MINS", 24*60),
			Issuer:         getEnv("JWT_ISSUER", "fansite-api"),
			CookieName:     getEnv("AUTH_COOKIE_NAME", "token"),
			CookieSecure:   getBoolEnv("AUTH_COOKIE_SECURE", false),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", ""),
			Password:     getEnv("ADMIN_PASSWORD", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", StorageLocal),
			LocalDir:       getEnv("STORAGE_LOCAL_DIR", "./uploads"),
			LocalBaseURL:   strings.TrimSuffix(getEnv("STORAGE_LOCAL_BASE_URL", publicBaseURL+"/uploads"), "/"),
			GCSBucket:      getEnv("GCS_BUCKET", ""),
			GCSCredentials: getEnv("GCS_CREDENTIALS_FILE", ""),
			GCSPublicURL:   getEnv("GCS_PUBLIC_URL", ""),
		},
		Site: SiteConfig{
			File:     getEnv("SITE_FILE", ""),
			Timezone: getEnv("SITE_TIMEZONE", ""),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getIntEnv("LOGIN_RATE_PER_MINUTE", 10),
			LoginBurst:     getIntEnv("LOGIN_RATE_BURST", 5),
		},
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Server.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Server.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got '%s'", c.Server.LogLevel))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	// JWT validation
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if c.IsProduction() && len(c.JWT.Secret) < minSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters in production", minSecretLength))
	}
	if c.JWT.ExpirationMins <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
	}
	if c.JWT.CookieName == "" {
		errs = append(errs, errors.New("AUTH_COOKIE_NAME is required"))
	}
	if c.IsProduction() && !c.JWT.CookieSecure {
		errs = append(errs, errors.New("AUTH_COOKIE_SECURE must be true in production"))
	}

	// Admin credential
	if c.Admin.Email == "" {
		errs = append(errs, errors.New("ADMIN_EMAIL is required"))
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required"))
	}
	if c.IsProduction() && c.Admin.PasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD_HASH is required in production"))
	}

	// Storage validation
	switch c.Storage.Driver {
	case StorageLocal:
		if c.Storage.LocalDir == "" {
			errs = append(errs, errors.New("STORAGE_LOCAL_DIR is required for the local driver"))
		}
		if c.Storage.LocalBaseURL == "" {
			errs = append(errs, errors.New("STORAGE_LOCAL_BASE_URL is required for the local driver"))
		}
	case StorageGCS:
		if c.Storage.GCSBucket == "" {
			errs = append(errs, errors.New("GCS_BUCKET is required for the gcs driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be '%s' or '%s', got '%s'", StorageLocal, StorageGCS, c.Storage.Driver))
	}

	// Site validation
	if c.Site.Timezone != "" {
		if _, err := time.LoadLocation(c.Site.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("SITE_TIMEZONE is not a known time zone: %w", err))
		}
	}

	// Rate limit validation
	if c.RateLimit.LoginPerMinute <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_PER_MINUTE must be positive"))
	}
	if c.RateLimit.LoginBurst <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_BURST must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
