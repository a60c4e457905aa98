package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher handles password and refresh-token hashing operations
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a new password hasher with the given bcrypt cost
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash hashes a secret with a per-hash random salt
func (ph *PasswordHasher) Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), ph.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hash), nil
}

// Verify compares a secret with its hash in constant time
func (ph *PasswordHasher) Verify(hash, secret string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}

// HashToken hashes a token of arbitrary length. Signed tokens run well
// past bcrypt's 72-byte input limit, so the token is reduced to a
// fixed-size digest first; bcrypt still contributes the per-hash salt
// and work factor.
func (ph *PasswordHasher) HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(tokenDigest(token), ph.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hash), nil
}

// VerifyToken compares a token with its hash in constant time.
func (ph *PasswordHasher) VerifyToken(hash, token string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), tokenDigest(token))
	return err == nil
}

func tokenDigest(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum[:])
	return out
}
