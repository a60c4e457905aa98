package middleware

import (
	"net/http"
	"strings"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/token"
)

// Authenticate verifies the access token carried in the Authorization
// header and attaches its claims to the request context.
func Authenticate(issuer *token.Issuer) func(http.Handler) http.Handler {
	return tokenGuard(issuer.VerifyAccess)
}

// AuthenticateRefresh is the guard for the token rotation endpoint. It
// accepts only refresh tokens; access tokens are rejected even though both
// are well formed JWTs.
func AuthenticateRefresh(issuer *token.Issuer) func(http.Handler) http.Handler {
	return tokenGuard(issuer.VerifyRefresh)
}

func tokenGuard(verify func(string) (*token.Claims, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := BearerToken(r)
			if err != nil {
				WriteError(w, err)
				return
			}
			claims, err := verify(raw)
			if err != nil {
				WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// BearerToken extracts the credential from an Authorization header of the
// form "Bearer <token>".
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", &domain.UnauthorizedError{Message: "missing authorization header"}
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", &domain.UnauthorizedError{Message: "malformed authorization header"}
	}
	return parts[1], nil
}
