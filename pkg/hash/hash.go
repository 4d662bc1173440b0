package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher derives one-way password digests and verifies plaintexts against them.
type Hasher interface {
	// Hash returns a salted one-way digest of plain.
	Hash(plain string) (string, error)

	// Verify reports whether plain matches digest.
	Verify(plain, digest string) bool
}

// BcryptHasher implements Hasher using bcrypt with a configurable cost factor.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher. Costs outside the bcrypt range fall
// back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash derives a bcrypt digest from plain.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches the bcrypt digest.
func (h *BcryptHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
