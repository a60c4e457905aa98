package middleware

import (
	"context"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/token"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// WithClaims attaches a verified claim set to the context.
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the verified claim set attached by a guard, or
// nil when the call was not authenticated.
func ClaimsFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(claimsKey).(*token.Claims)
	return claims
}

// ActorFromContext reconstructs the acting identity from the verified
// claims. It is nil when the call was not authenticated.
func ActorFromContext(ctx context.Context) *domain.User {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return nil
	}
	id, err := claims.UserID()
	if err != nil {
		return nil
	}
	return &domain.User{
		ID:    id,
		Email: claims.Email,
		Role:  claims.Role,
	}
}
