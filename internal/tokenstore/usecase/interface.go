// Package usecase implements the secure token store and its background janitor.
package usecase

import (
	"context"
	"time"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	tokenstoreDomain "github.com/allisson/piiguard/internal/tokenstore/domain"
)

// GenerateFunc produces a candidate token string. StoreOrReuse calls it until it
// yields a token that is not already live or erased.
type GenerateFunc func() (string, error)

// TokenStore defines the secure token store operations.
type TokenStore interface {
	// Store encrypts value under an explicit token. A ttl of zero uses the default TTL.
	Store(
		ctx context.Context,
		token string,
		value string,
		category piiDomain.Category,
		ttl time.Duration,
	) (*tokenstoreDomain.StoreResult, error)

	// StoreOrReuse returns the live token already indexed for value or stores value
	// under a freshly generated token. The check and the insert are atomic.
	StoreOrReuse(
		ctx context.Context,
		value string,
		category piiDomain.Category,
		ttl time.Duration,
		generate GenerateFunc,
	) (*tokenstoreDomain.StoreResult, error)

	// Retrieve decrypts the value behind token.
	Retrieve(ctx context.Context, token string) (string, error)

	// FindTokenFor returns the live token indexed for value.
	FindTokenFor(ctx context.Context, value string) (string, error)

	// Erase removes token permanently; the token string can never be reissued.
	Erase(ctx context.Context, token string) error

	// EraseValue erases every token holding value and returns how many were erased.
	EraseValue(ctx context.Context, value string) (int, error)

	// CleanupExpired purges expired records and returns how many were removed.
	CleanupExpired(ctx context.Context) (int, error)

	// Stats returns a snapshot of the store.
	Stats(ctx context.Context) (*tokenstoreDomain.Stats, error)
}
