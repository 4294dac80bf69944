package service

import (
	"time"

	"helpdesk/internal/config"
	"helpdesk/internal/utils"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService signs and verifies the two token classes. The secrets
// are distinct so either can be rotated independently. Nothing is
// persisted; a refresh token stays valid until it expires.
type TokenService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(cfg config.Config) *TokenService {
	return &TokenService{
		accessSecret:  cfg.AccessSecret,
		refreshSecret: cfg.RefreshSecret,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
}

func (s *TokenService) Issue(userID, role string) (TokenPair, error) {
	access, err := utils.SignJWT(s.accessSecret, userID, role, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := utils.SignJWT(s.refreshSecret, userID, role, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) VerifyAccess(token string) (*utils.Claims, error) {
	return utils.ParseJWT(s.accessSecret, token)
}

func (s *TokenService) VerifyRefresh(token string) (*utils.Claims, error) {
	return utils.ParseJWT(s.refreshSecret, token)
}

// Refresh mints a new access token from a valid refresh token. The
// refresh token itself is not rotated.
func (s *TokenService) Refresh(refreshToken string) (string, error) {
	c, err := s.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	return utils.SignJWT(s.accessSecret, c.UserID, c.Role, s.accessTTL)
}
