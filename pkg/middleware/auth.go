package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

// Identity is the authenticated caller, injected into the request context by
// the Auth middleware. Handlers read it with IdentityFrom instead of
// re-parsing the Authorization header.
type Identity struct {
	UserID uuid.UUID
}

type identityKey struct{}

// IdentityFrom extracts the authenticated identity from ctx.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity stores an identity in ctx (exported for handler tests).
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// Auth rejects requests without a valid, unexpired access token and injects
// the caller's Identity into the request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ParseAccess(raw)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := WithIdentity(r.Context(), Identity{UserID: claims.Subject()})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
