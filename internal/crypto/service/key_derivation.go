package service

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/piiguard/internal/crypto/domain"
)

// HKDF info labels for the keys derived from a store key.
const (
	InfoEncryptionKey = "piiguard/token-store/encryption"
	InfoIndexKey      = "piiguard/token-store/reverse-index"
	InfoHashKey       = "piiguard/masking/hash"
)

// DeriveKey expands secret into a KeySize key bound to info using HKDF-SHA256.
// Distinct info labels give independent keys from the same secret.
func DeriveKey(secret []byte, info string) ([]byte, error) {
	if len(secret) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	key := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}

// GenerateKey returns a new random KeySize key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}
