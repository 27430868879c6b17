package domain

import (
	"github.com/allisson/piiguard/internal/errors"
)

// Token store error definitions.
var (
	// ErrTokenNotFound indicates the token is unknown or was erased.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrTokenExpired indicates the token existed but its TTL elapsed.
	ErrTokenExpired = errors.Wrap(errors.ErrExpired, "token expired")

	// ErrStoreExhausted indicates the store is at capacity after purging expired records.
	ErrStoreExhausted = errors.Wrap(errors.ErrResourceExhausted, "token store exhausted")

	// ErrTokenAlreadyExists indicates a live record already uses the token string.
	ErrTokenAlreadyExists = errors.Wrap(errors.ErrConflict, "token already exists")

	// ErrTokenErased indicates the token string was erased and can never be reissued.
	ErrTokenErased = errors.Wrap(errors.ErrConflict, "token was erased")

	// ErrInvalidToken indicates an empty or malformed token string.
	ErrInvalidToken = errors.Wrap(errors.ErrInvalidInput, "invalid token")

	// ErrTokenGenerationFailed indicates no unique token could be generated.
	ErrTokenGenerationFailed = errors.Wrap(errors.ErrConflict, "failed to generate a unique token")
)
