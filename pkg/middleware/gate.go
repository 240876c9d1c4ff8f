package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

// PurchasePredicate reports whether the user has completed at least one
// checkout. Any purchase qualifies, regardless of product.
type PurchasePredicate func(ctx context.Context, userID uuid.UUID) (bool, error)

// PurchaseGate restricts an endpoint to users who have purchased something.
// It must be mounted after Auth, which supplies the identity. Callers who
// fail the predicate get a 403 regardless of what they were asking for.
func PurchaseGate(hasPurchased PurchasePredicate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFrom(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}

			purchased, err := hasPurchased(r.Context(), ident.UserID)
			if err != nil {
				logger.WithCtx(r.Context()).Error("purchase gate check failed", "error", err)
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			if !purchased {
				response.Error(w, http.StatusForbidden, "You must complete a purchase first")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
