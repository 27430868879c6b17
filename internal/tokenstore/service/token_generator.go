package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// tokenChars is upper-case only so token bodies survive case-insensitive matching unchanged.
const tokenChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MaxTokenLength bounds the body length accepted by Generate.
const MaxTokenLength = 255

type upperAlphanumericGenerator struct{}

// NewUpperAlphanumericGenerator creates a generator of cryptographically secure
// random token bodies over [A-Z0-9].
func NewUpperAlphanumericGenerator() TokenGenerator {
	return &upperAlphanumericGenerator{}
}

// Generate creates a random token body of the given length.
func (g *upperAlphanumericGenerator) Generate(length int) (string, error) {
	if length < 1 {
		return "", errors.New("length must be at least 1")
	}
	if length > MaxTokenLength {
		return "", errors.New("length must not exceed 255")
	}

	token := make([]byte, length)
	charsLen := big.NewInt(int64(len(tokenChars)))

	for i := range token {
		n, err := rand.Int(rand.Reader, charsLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		token[i] = tokenChars[n.Int64()]
	}

	return string(token), nil
}

// Validate checks that the body contains only [A-Z0-9].
func (g *upperAlphanumericGenerator) Validate(token string) error {
	if len(token) == 0 {
		return errors.New("token cannot be empty")
	}
	for _, c := range token {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return errors.New("token must contain only characters [A-Z0-9]")
		}
	}
	return nil
}
