package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"billing-backend/internal/auth"
	"billing-backend/internal/config"
)

func newTestMiddleware(t *testing.T) (*AuthMiddleware, *auth.JWTManager) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.AdminEmail = "admin@example.com"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "billing-backend"
	m := auth.NewJWTManager(cfg)
	return NewAuthMiddleware(m), m
}

func TestAuthenticate(t *testing.T) {
	mw, jwtManager := newTestMiddleware(t)
	token, err := jwtManager.GenerateToken("admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	var gotSession *auth.Session
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession, _ = auth.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSession = nil
			req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if gotSession == nil || gotSession.Email != "admin@example.com" {
					t.Errorf("session = %+v, want admin session in context", gotSession)
				}
			}
		})
	}
}

func TestAuthenticateRedirectsHTML(t *testing.T) {
	mw, _ := newTestMiddleware(t)
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}
