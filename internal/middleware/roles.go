package middleware

import (
	"net/http"

	"github.com/ilkol21/company-crm/internal/authz"
	"github.com/ilkol21/company-crm/internal/domain"
)

// RequireRoles gates a route on the caller's role. The decision is
// delegated to the supplied policy so the HTTP surface and the socket
// surface can apply different rules to the same role set.
func RequireRoles(policy authz.Policy, required ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				WriteError(w, &domain.UnauthorizedError{Message: "authentication required"})
				return
			}
			if !policy.Allows(required, claims.Role) {
				WriteError(w, &domain.ForbiddenError{Message: "insufficient role"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
