package service

import (
	"context"
	"errors"
	"strings"

	"helpdesk/internal/models"
	"helpdesk/internal/repository"
	"helpdesk/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("all fields are required")
)

type AuthService struct {
	users  repository.UserRepository
	tokens *TokenService
}

func NewAuthService(users repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with a bcrypt hash of the raw password. The
// raw password is not retained anywhere past this call.
func (a *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, repository.ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := a.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, TokenPair, error) {
	u, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if u == nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !utils.CheckPassword(u.PasswordHash, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := a.tokens.Issue(u.ID.Hex(), u.Role)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}
