package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"billing-backend/internal/config"

	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTOTPRequired       = errors.New("totp code required")
	ErrInvalidTOTP        = errors.New("invalid totp code")
)

// CheckCredentials verifies the fixed admin credential pair. The password
// is compared against the configured bcrypt hash; a plain-text password in
// config is accepted as a dev fallback. When a TOTP secret is configured
// the supplied code must also verify.
func CheckCredentials(cfg *config.Config, email, password, totpCode string) error {
	if !strings.EqualFold(email, cfg.Auth.AdminEmail) {
		return ErrInvalidCredentials
	}

	if cfg.Auth.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(cfg.Auth.PasswordHash), []byte(password)) != nil {
			return ErrInvalidCredentials
		}
	} else if subtle.ConstantTimeCompare([]byte(cfg.Auth.Password), []byte(password)) != 1 {
		return ErrInvalidCredentials
	}

	if cfg.Auth.TOTPSecret != "" {
		if totpCode == "" {
			return ErrTOTPRequired
		}
		if !totp.Validate(totpCode, cfg.Auth.TOTPSecret) {
			return ErrInvalidTOTP
		}
	}

	return nil
}

// HashPassword generates a bcrypt hash for configuring the admin password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}
