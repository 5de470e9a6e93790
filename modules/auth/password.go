package auth

import (
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// defaultBcryptCost balances hashing time against brute-force resistance.
const defaultBcryptCost = 12

// PasswordHasher wraps bcrypt hashing and verification.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher. The cost can be lowered for
// test runs via AUTH_BCRYPT_COST; values outside bcrypt's range fall back to
// the default.
func NewPasswordHasher() *PasswordHasher {
	cost := defaultBcryptCost
	if raw := os.Getenv("AUTH_BCRYPT_COST"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= bcrypt.MinCost && parsed <= bcrypt.MaxCost {
			cost = parsed
		}
	}
	return &PasswordHasher{cost: cost}
}

// Hash generates a salted bcrypt hash of the password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether the password matches the stored hash.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
