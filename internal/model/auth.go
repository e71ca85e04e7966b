package model

import (
	"strings"
	"time"
)

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login request
func (r *LoginRequest) Validate() []FieldError {
	var errors []FieldError
	if strings.TrimSpace(r.Email) == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	}
	if r.Password == "" {
		errors = append(errors, FieldError{Field: "password", Message: "password is required"})
	}
	return errors
}

// Session is an issued admin token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AdminIdentity is returned by GET /api/auth/me.
type AdminIdentity struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}
