package middleware

import (
	"net/http"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/pkg/logger"
)

// UserContext tags the request logger with the caller identity placed by the access guard.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := internal.IdentityFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.With(r.Context(), "userID", identity.UserID, "role", identity.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
