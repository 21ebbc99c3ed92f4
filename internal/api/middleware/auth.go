package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
)

type contextKey string

const userContextKey contextKey = "authenticatedUser"

// TokenResolver validates a bearer token and loads the user it names.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*entities.User, error)
}

// UserFrom returns the authenticated user stored by RequireUser.
func UserFrom(ctx context.Context) (*entities.User, bool) {
	user, ok := ctx.Value(userContextKey).(*entities.User)
	return user, ok
}

// WithUser stores a user in the context. Exposed for handler tests.
func WithUser(ctx context.Context, user *entities.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// RequireUser rejects requests without a valid bearer token and puts the
// resolved user in the request context for downstream handlers.
func RequireUser(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				unauthorized(w)
				return
			}

			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"detail": "Not authenticated",
	})
}
