package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"helpdesk/internal/config"
	"helpdesk/internal/models"
	"helpdesk/internal/repository"
	"helpdesk/internal/service"
)

type fakeUserRepo struct {
	users []*models.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	for _, e := range r.users {
		if e.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.ID = bson.NewObjectID()
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, e := range r.users {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	for _, e := range r.users {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func authHTTP() (*AuthHTTP, *service.TokenService) {
	tokens := service.NewTokenService(config.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    168 * time.Hour,
	})
	svc := service.NewAuthService(&fakeUserRepo{}, tokens)
	return NewAuthHTTP(svc, tokens, zerolog.Nop()), tokens
}

func doJSON(h http.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegisterThenDuplicate(t *testing.T) {
	h, _ := authHTTP()
	reg := h.Register()

	rec := doJSON(reg, http.MethodPost, "/api/auth/register",
		`{"firstName":"A","lastName":"B","email":"a@x.com","password":"pw12345"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var out struct {
		Message string          `json:"message"`
		User    json.RawMessage `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Message == "" || out.User == nil {
		t.Fatal("expected message and user in the body")
	}
	if strings.Contains(string(out.User), "password") {
		t.Fatal("password material leaked in the register response")
	}

	rec = doJSON(reg, http.MethodPost, "/api/auth/register",
		`{"firstName":"C","lastName":"D","email":"a@x.com","password":"other999"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: status = %d, want 409", rec.Code)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	h, _ := authHTTP()
	rec := doJSON(h.Register(), http.MethodPost, "/api/auth/register",
		`{"firstName":"A","email":"a@x.com","password":"pw12345"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	h, tokens := authHTTP()
	doJSON(h.Register(), http.MethodPost, "/api/auth/register",
		`{"firstName":"A","lastName":"B","email":"a@x.com","password":"pw12345"}`)

	rec := doJSON(h.Login(), http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"pw12345"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := tokens.VerifyAccess(out.AccessToken); err != nil {
		t.Fatalf("issued access token does not verify: %v", err)
	}
	if _, err := tokens.VerifyRefresh(out.RefreshToken); err != nil {
		t.Fatalf("issued refresh token does not verify: %v", err)
	}

	rec = doJSON(h.Login(), http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: status = %d, want 401", rec.Code)
	}

	rec = doJSON(h.Login(), http.MethodPost, "/api/auth/login", `{"email":"a@x.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing password: status = %d, want 400", rec.Code)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	h, tokens := authHTTP()
	pair, _ := tokens.Issue(bson.NewObjectID().Hex(), models.RoleUser)

	rec := doJSON(h.Refresh(), http.MethodPost, "/api/auth/refresh",
		`{"refreshToken":"`+pair.RefreshToken+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := tokens.VerifyAccess(out.AccessToken); err != nil {
		t.Fatalf("refreshed access token does not verify: %v", err)
	}

	rec = doJSON(h.Refresh(), http.MethodPost, "/api/auth/refresh", `{}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status = %d, want 401", rec.Code)
	}

	rec = doJSON(h.Refresh(), http.MethodPost, "/api/auth/refresh",
		`{"refreshToken":"tampered"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("bad token: status = %d, want 403", rec.Code)
	}
}
