// Package service provides token generation and value hashing for the token store.
package service

// TokenGenerator defines the interface for random token body generation.
type TokenGenerator interface {
	Generate(length int) (string, error)
	Validate(token string) error
}

// ValueHasher computes the reverse index key for a value.
type ValueHasher interface {
	Hash(value []byte) string
}
