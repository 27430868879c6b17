// Package domain defines the token store records and errors.
package domain

import (
	"time"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
)

// TokenRecord is a stored token. It is created once and never mutated; it is
// removed on expiry, cleanup or erasure.
type TokenRecord struct {
	Token      string
	Category   piiDomain.Category
	Ciphertext []byte
	Nonce      []byte
	ValueHash  string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// IsExpired reports whether the record's lifetime has elapsed at now.
func (r *TokenRecord) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// StoreResult describes the outcome of a store or reuse.
type StoreResult struct {
	Token     string
	Category  piiDomain.Category
	Reused    bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Stats is a point-in-time snapshot of the store.
type Stats struct {
	Active     int
	Expired    int
	Erased     int
	IndexSize  int
	Capacity   int
	ByCategory map[piiDomain.Category]int
}
