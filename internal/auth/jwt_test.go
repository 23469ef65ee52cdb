package auth

import (
	"strings"
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig(t))

	token, err := m.GenerateToken("admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.ID == "" {
		t.Error("token id (jti) should be set")
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	m := NewJWTManager(testConfig(t))

	token, err := m.GenerateToken("admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)

	if _, err := m.ValidateToken(strings.Join(parts, ".")); err == nil {
		t.Error("tampered token validated")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := NewJWTManager(testConfig(t))
	token, err := m.GenerateToken("admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	other := testConfig(t)
	other.JWT.Secret = "different-secret"
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Error("token signed with another secret validated")
	}
}
