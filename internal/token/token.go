package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ilkol21/company-crm/internal/config"
	"github.com/ilkol21/company-crm/internal/domain"
)

// Claims is the signed claim set carried by both token classes.
type Claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// UserID returns the subject claim parsed as a user id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim %q: %w", c.Subject, err)
	}
	return id, nil
}

// Issuer signs and verifies the two independent token classes. Access and
// refresh tokens use distinct secrets and distinct lifetimes; a token of one
// class never verifies as the other.
type Issuer struct {
	cfg config.TokenConfig
}

// NewIssuer creates a token issuer from the immutable token configuration.
func NewIssuer(cfg config.TokenConfig) *Issuer {
	return &Issuer{cfg: cfg}
}

// SignAccess issues a short-lived access token for the user.
func (i *Issuer) SignAccess(user *domain.User) (string, error) {
	return i.sign(user, i.cfg.AccessSecret, i.cfg.AccessLifetime)
}

// SignRefresh issues a refresh token for the user. The caller is responsible
// for persisting its hash next to the identity.
func (i *Issuer) SignRefresh(user *domain.User) (string, error) {
	return i.sign(user, i.cfg.RefreshSecret, i.cfg.RefreshLifetime)
}

// VerifyAccess validates signature and expiry against the access secret.
func (i *Issuer) VerifyAccess(raw string) (*Claims, error) {
	return i.verify(raw, i.cfg.AccessSecret)
}

// VerifyRefresh validates signature and expiry against the refresh secret.
// Callers must additionally confirm the stored-hash match before trusting a
// refresh token: a rotated-away token is structurally valid but revoked.
func (i *Issuer) VerifyRefresh(raw string) (*Claims, error) {
	return i.verify(raw, i.cfg.RefreshSecret)
}

func (i *Issuer) sign(user *domain.User, secret string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.NewString(),
		},
		Email: user.Email,
		Role:  user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (i *Issuer) verify(raw, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, &domain.UnauthorizedError{Message: "invalid token"}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, &domain.UnauthorizedError{Message: "invalid token"}
	}

	if claims.Subject == "" {
		return nil, &domain.UnauthorizedError{Message: "invalid token: missing subject"}
	}
	if !claims.Role.Valid() {
		return nil, &domain.UnauthorizedError{Message: "invalid token: missing role"}
	}

	return claims, nil
}
