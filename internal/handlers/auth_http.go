package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"helpdesk/internal/repository"
	"helpdesk/internal/service"
	"helpdesk/internal/utils"
)

type AuthHTTP struct {
	svc    *service.AuthService
	tokens *service.TokenService
	log    zerolog.Logger
}

func NewAuthHTTP(svc *service.AuthService, tokens *service.TokenService, log zerolog.Logger) *AuthHTTP {
	return &AuthHTTP{svc: svc, tokens: tokens, log: log}
}

func (h *AuthHTTP) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			Email     string `json:"email"`
			Password  string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := h.svc.Register(r.Context(), in.FirstName, in.LastName, in.Email, in.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidInput):
				utils.Error(w, http.StatusBadRequest, "all fields are required")
			case errors.Is(err, repository.ErrEmailTaken):
				utils.Error(w, http.StatusConflict, "user already exists")
			default:
				h.log.Error().Err(err).Msg("register failed")
				utils.Error(w, http.StatusInternalServerError, "server error")
			}
			return
		}

		utils.JSON(w, http.StatusCreated, map[string]any{
			"message": "User registered successfully. Please login to continue.",
			"user":    u.Public(),
		})
	}
}

func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if in.Email == "" || in.Password == "" {
			utils.Error(w, http.StatusBadRequest, "email and password are required")
			return
		}

		u, pair, err := h.svc.Login(r.Context(), in.Email, in.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				utils.Error(w, http.StatusUnauthorized, "invalid email or password")
				return
			}
			h.log.Error().Err(err).Msg("login failed")
			utils.Error(w, http.StatusInternalServerError, "server error")
			return
		}

		utils.JSON(w, http.StatusOK, map[string]any{
			"message":      "Login successful",
			"user":         u.Public(),
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		})
	}
}

// Refresh mints a new access token from the refresh token in the body.
// 401 for a missing token, 403 when it is invalid or expired, so the
// client knows re-login is the only way forward.
func (h *AuthHTTP) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.RefreshToken == "" {
			utils.Error(w, http.StatusUnauthorized, "no refresh token provided")
			return
		}

		access, err := h.tokens.Refresh(in.RefreshToken)
		if err != nil {
			h.log.Debug().Err(err).Msg("refresh rejected")
			utils.Error(w, http.StatusForbidden, "invalid or expired refresh token")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"accessToken": access})
	}
}
