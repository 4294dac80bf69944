package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"helpdesk/internal/models"
	"helpdesk/internal/repository"
)

type memUserRepo struct {
	users []*models.User
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	for _, e := range r.users {
		if e.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.ID = bson.NewObjectID()
	r.users = append(r.users, u)
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, e := range r.users {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	for _, e := range r.users {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func TestRegister(t *testing.T) {
	svc := NewAuthService(&memUserRepo{}, testTokenService())

	u, err := svc.Register(context.Background(), "A", "B", "a@x.com", "pw12345")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID.IsZero() {
		t.Fatal("user not persisted")
	}
	if u.Role != models.RoleUser {
		t.Fatalf("role = %q, want user", u.Role)
	}
	if u.PasswordHash == "pw12345" || u.PasswordHash == "" {
		t.Fatal("raw password stored or hash missing")
	}
}

func TestRegisterMissingField(t *testing.T) {
	svc := NewAuthService(&memUserRepo{}, testTokenService())
	_, err := svc.Register(context.Background(), "A", "", "a@x.com", "pw12345")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(&memUserRepo{}, testTokenService())
	if _, err := svc.Register(context.Background(), "A", "B", "a@x.com", "pw12345"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "C", "D", "a@x.com", "other999")
	if !errors.Is(err, repository.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(&memUserRepo{}, testTokenService())
	reg, _ := svc.Register(context.Background(), "A", "B", "a@x.com", "pw12345")

	u, pair, err := svc.Login(context.Background(), "a@x.com", "pw12345")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.ID != reg.ID {
		t.Fatal("login returned a different user")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	c, err := svc.tokens.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify issued access token: %v", err)
	}
	if c.UserID != reg.ID.Hex() || c.Role != models.RoleUser {
		t.Fatalf("token claims = %q/%q", c.UserID, c.Role)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc := NewAuthService(&memUserRepo{}, testTokenService())
	if _, err := svc.Register(context.Background(), "A", "B", "a@x.com", "pw12345"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "a@x.com", "pw12346"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@x.com", "pw12345"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}
