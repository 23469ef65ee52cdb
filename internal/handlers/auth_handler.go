package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"billing-backend/internal/auth"
	"billing-backend/internal/config"
	"billing-backend/internal/models"
	"billing-backend/pkg/utils"

	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	cfg        *config.Config
	jwtManager *auth.JWTManager
}

func NewAuthHandler(cfg *config.Config, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{cfg: cfg, jwtManager: jwtManager}
}

// Login checks the fixed admin credential pair and mints a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := auth.CheckCredentials(h.cfg, req.Email, req.Password, req.TOTPCode); err != nil {
		switch {
		case errors.Is(err, auth.ErrTOTPRequired):
			utils.Error(w, http.StatusUnauthorized, "TOTP code required")
		case errors.Is(err, auth.ErrInvalidTOTP):
			utils.Error(w, http.StatusUnauthorized, "Invalid TOTP code")
		default:
			utils.Error(w, http.StatusUnauthorized, "Invalid email or password")
		}
		return
	}

	token, err := h.jwtManager.GenerateToken(h.cfg.Auth.AdminEmail)
	if err != nil {
		log.Error().Err(err).Msg("token generation failed")
		utils.Error(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	log.Info().Str("email", h.cfg.Auth.AdminEmail).Msg("admin logged in")
	utils.JSON(w, http.StatusOK, models.AuthResponse{
		Token:     token,
		ExpiresIn: h.cfg.JWT.ExpirationHours * 3600,
	})
}

// Logout ends the session. Tokens are stateless, so this is the explicit
// state transition the client uses to drop its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session, ok := auth.SessionFromContext(r.Context()); ok {
		log.Info().Str("email", session.Email).Str("token_id", session.TokenID).Msg("admin logged out")
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// ValidateSession lets the frontend check its stored token on page load.
func (h *AuthHandler) ValidateSession(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "No active session")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"valid": true, "email": session.Email})
}
