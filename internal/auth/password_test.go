package auth

import (
	"errors"
	"testing"
	"time"

	"billing-backend/internal/config"

	"github.com/pquerna/otp/totp"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.AdminEmail = "admin@example.com"
	cfg.Auth.Password = "letmein"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "billing-backend"
	return cfg
}

func TestCheckCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid pair", "admin@example.com", "letmein", nil},
		{"email is case insensitive", "Admin@Example.COM", "letmein", nil},
		{"wrong email", "someone@example.com", "letmein", ErrInvalidCredentials},
		{"wrong password", "admin@example.com", "guess", ErrInvalidCredentials},
		{"empty password", "admin@example.com", "", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCredentials(testConfig(t), tt.email, tt.password, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckCredentials() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckCredentialsBcryptHash(t *testing.T) {
	cfg := testConfig(t)
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	cfg.Auth.Password = ""
	cfg.Auth.PasswordHash = hash

	if err := CheckCredentials(cfg, "admin@example.com", "s3cret", ""); err != nil {
		t.Errorf("valid hashed password rejected: %v", err)
	}
	if err := CheckCredentials(cfg, "admin@example.com", "wrong", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password against hash = %v, want ErrInvalidCredentials", err)
	}
}

func TestCheckCredentialsTOTP(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.TOTPSecret = "JBSWY3DPEHPK3PXP"

	if err := CheckCredentials(cfg, "admin@example.com", "letmein", ""); !errors.Is(err, ErrTOTPRequired) {
		t.Errorf("missing code = %v, want ErrTOTPRequired", err)
	}
	if err := CheckCredentials(cfg, "admin@example.com", "letmein", "000000"); !errors.Is(err, ErrInvalidTOTP) {
		t.Errorf("bogus code = %v, want ErrInvalidTOTP", err)
	}

	code, err := totp.GenerateCode(cfg.Auth.TOTPSecret, time.Now())
	if err != nil {
		t.Fatalf("GenerateCode() error = %v", err)
	}
	if err := CheckCredentials(cfg, "admin@example.com", "letmein", code); err != nil {
		t.Errorf("valid code rejected: %v", err)
	}
}
