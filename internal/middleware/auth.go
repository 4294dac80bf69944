package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"helpdesk/internal/models"
	"helpdesk/internal/repository"
	"helpdesk/internal/service"
	"helpdesk/internal/utils"
)

type ctxKey struct{}

var userKey ctxKey

// UserFromContext returns the authenticated user attached by RequireAuth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

// WithUser is exposed for handler tests.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// RequireAuth resolves the caller from a bearer access token and loads
// the full user record into the request context. An expired token and
// a malformed one both yield 401, with distinct messages so a client
// can pick between the refresh flow and a full re-login.
func RequireAuth(log zerolog.Logger, tokens *service.TokenService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				utils.Error(w, http.StatusUnauthorized, "not authorized, no token")
				return
			}
			tok := strings.TrimPrefix(h, "Bearer ")

			claims, err := tokens.VerifyAccess(tok)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					utils.Error(w, http.StatusUnauthorized, "not authorized, token expired")
					return
				}
				log.Debug().Err(err).Msg("access token rejected")
				utils.Error(w, http.StatusUnauthorized, "not authorized, token failed")
				return
			}

			id, err := bson.ObjectIDFromHex(claims.UserID)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "not authorized, token failed")
				return
			}
			u, err := users.GetByID(r.Context(), id)
			if err != nil {
				log.Error().Err(err).Msg("user lookup failed")
				utils.Error(w, http.StatusUnauthorized, "not authorized, token failed")
				return
			}
			if u == nil {
				utils.Error(w, http.StatusUnauthorized, "not authorized, token failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}
