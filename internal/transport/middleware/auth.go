package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
	"github.com/heartmarshall/safetylog-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (domain.OwnerID, error)
}

// Auth resolves the bearer token into the caller identity. Requests without
// a token pass through anonymously and are rejected by the store itself.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			owner, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, domain.KindUnauthenticated.String(), "unauthorized")
				return
			}
			ctx := ctxutil.WithOwnerID(r.Context(), owner.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) < len("Bearer ") || !strings.EqualFold(auth[:len("Bearer ")], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[len("Bearer "):])
}
