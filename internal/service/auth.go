package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fansite-cms/api/internal/model"
	"github.com/fansite-cms/api/pkg/jwt"
)

// bcrypt cost factor (10-14 recommended for production)
const bcryptCost = 12

const adminSubject = "admin"

// TokenIssuer signs and checks session tokens
type TokenIssuer interface {
	Sign(subject, email, role string) (string, time.Time, error)
	Validate(token string) (*jwt.Claims, error)
}

// AuthService checks the single admin credential and issues tokens
type AuthService struct {
	email        string
	passwordHash []byte
	tokens       TokenIssuer
}

// AuthServiceConfig holds configuration for the auth service. Either
// PasswordHash (bcrypt) or Password must be set; a plaintext password is
// hashed once at construction.
type AuthServiceConfig struct {
	Email        string
	Password     string
	PasswordHash string
	Tokens       TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) (*AuthService, error) {
	if strings.TrimSpace(cfg.Email) == "" {
		return nil, errors.New("admin email is required")
	}

	hash := []byte(cfg.PasswordHash)
	switch {
	case len(hash) > 0:
		if _, err := bcrypt.Cost(hash); err != nil {
			return nil, errors.New("admin password hash is not a bcrypt hash")
		}
	case cfg.Password != "":
		var err error
		hash, err = HashPassword(cfg.Password)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("admin password or password hash is required")
	}

	return &AuthService{
		email:        normalizeEmail(cfg.Email),
		passwordHash: hash,
		tokens:       cfg.Tokens,
	}, nil
}

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
}

// Login checks the credential pair and returns a signed session token.
// Any mismatch returns ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.Session, error) {
	if len(req.Validate()) > 0 {
		return nil, ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(normalizeEmail(req.Email)), []byte(s.email)) == 1
	// bcrypt runs even when the email does not match.
	passwordOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)) == nil
	if !emailOK || !passwordOK {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Sign(adminSubject, s.email, jwt.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &model.Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Verify returns the admin identity carried by token
func (s *AuthService) Verify(token string) (*model.AdminIdentity, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if !claims.IsAdmin() {
		return nil, ErrUnauthorized
	}

	identity := &model.AdminIdentity{Email: claims.Email, Role: claims.Role}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
