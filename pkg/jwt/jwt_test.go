package jwt

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// ============================================================================
// Test Helpers
// ============================================================================

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewTestService("test-secret", "test-issuer", 15*time.Minute, clockAt(fixedNow))
}

// ============================================================================
// NewService Tests
// ============================================================================

func TestNewService_EmptySecret_ReturnsErrInvalidKey(t *testing.T) {
	t.Parallel()
	_, err := NewService(Config{Issuer: "x", ExpirationMins: 10})
	if err == nil || !strings.Contains(err.Error(), ErrInvalidKey.Error()) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestNewService_NonPositiveExpiration_ReturnsError(t *testing.T) {
	t.Parallel()
	if _, err := NewService(Config{Secret: "s", ExpirationMins: 0}); err == nil {
		t.Error("expected error for zero expiration")
	}
}

func TestNewService_SetsExpiration(t *testing.T) {
	t.Parallel()
	svc, err := NewService(Config{Secret: "s", Issuer: "i", ExpirationMins: 90})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.GetExpiration() != 90*time.Minute {
		t.Errorf("expiration = %v, want 90m", svc.GetExpiration())
	}
}

// ============================================================================
// Sign / Validate Tests
// ============================================================================

func TestSign_RoundTrip(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, expiresAt, err := svc.Sign("admin", "admin@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("token should have three segments: %q", token)
	}
	if !expiresAt.Equal(fixedNow.Add(15 * time.Minute)) {
		t.Errorf("expiresAt = %v", expiresAt)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.Subject != "admin" || claims.Email != "admin@example.com" {
		t.Errorf("claims = %+v", claims)
	}
	if !claims.IsAdmin() {
		t.Error("expected admin role")
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestValidate_Expired_ReturnsErrTokenExpired(t *testing.T) {
	t.Parallel()
	signer := newTestService(t)
	token, _, err := signer.Sign("admin", "a@b.c", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	later := NewTestService("test-secret", "test-issuer", 15*time.Minute, clockAt(fixedNow.Add(time.Hour)))
	if _, err := later.Validate(token); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_WrongSecret_ReturnsErrInvalidSignature(t *testing.T) {
	t.Parallel()
	token, _, err := newTestService(t).Sign("admin", "a@b.c", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	other := NewTestService("other-secret", "test-issuer", 15*time.Minute, clockAt(fixedNow))
	if _, err := other.Validate(token); err != ErrInvalidSignature {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_WrongIssuer_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	token, _, err := newTestService(t).Sign("admin", "a@b.c", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	other := NewTestService("test-secret", "someone-else", 15*time.Minute, clockAt(fixedNow))
	if _, err := other.Validate(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidate_Malformed_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	for _, token := range []string{"", "abc", "a.b", "a.b.c", "not.a.token.at.all"} {
		if _, err := svc.Validate(token); err != ErrInvalidToken {
			t.Errorf("Validate(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "test-issuer",
			ExpiresAt: gojwt.NewNumericDate(fixedNow.Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Validate(token); err == nil {
		t.Error("expected none-signed token to be rejected")
	}
}

func TestValidate_MissingExpiry_Rejected(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	claims := Claims{Role: RoleAdmin, RegisteredClaims: gojwt.RegisteredClaims{Issuer: "test-issuer"}}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Validate(token); err == nil {
		t.Error("expected token without exp to be rejected")
	}
}

func TestClaims_IsAdmin(t *testing.T) {
	t.Parallel()
	tests := []struct {
		role string
		want bool
	}{
		{RoleAdmin, true},
		{"user", false},
		{"", false},
	}
	for _, tt := range tests {
		c := Claims{Role: tt.role}
		if got := c.IsAdmin(); got != tt.want {
			t.Errorf("IsAdmin(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
