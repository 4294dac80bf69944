package middleware

import (
	"net/http"

	"helpdesk/internal/models"
	"helpdesk/internal/utils"
)

// RequireAdmin blocks non-admin callers. It must be mounted after
// RequireAuth, which resolves the identity it inspects.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if u.Role != models.RoleAdmin {
			utils.Error(w, http.StatusForbidden, "not authorized as an admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}
