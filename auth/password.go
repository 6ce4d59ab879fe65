package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	cost int
}

// NewHasher creates a password hasher. Costs outside bcrypt's range fall
// back to 12.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 12
	}
	return &Hasher{cost: cost}
}

// Hash returns a hashed representation of the password.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) < 8 {
		return "", errors.New("password: minimum length is 8 characters")
	}
	if len(password) > 72 {
		return "", errors.New("password: maximum length is 72 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hash), nil
}

// Verify checks if a password matches the given hash.
func (h *Hasher) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return errors.New("password: invalid password")
	}
	return nil
}
