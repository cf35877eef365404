package middleware

import (
	"net/http"
	"strings"

	"github.com/otsbank/bankcore/internal/infrastructure/auth"
)

// OptionalAuth extracts the caller's identity from a Bearer token when one is
// present. Requests without credentials (or with invalid ones) proceed as
// anonymous; audit rows for those requests carry the anonymous user name.
func OptionalAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				claims, err := jwtManager.Verify(parts[1])
				if err == nil {
					ctx := auth.WithUserName(r.Context(), claims.UserName)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			// Invalid auth, but don't fail - just continue without user
			next.ServeHTTP(w, r)
		})
	}
}
