// Package service provides the cryptographic services behind the token store:
// AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305), HKDF key derivation and KMS
// keepers that wrap the store key at rest.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/piiguard/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KMSService opens KMS keepers and moves store keys in and out of their wrapped form.
type KMSService interface {
	// OpenKeeper opens a keeper for the provider named by keyURI.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)

	// WrapKey encrypts key with the keeper and returns it base64 encoded.
	WrapKey(ctx context.Context, keeper cryptoDomain.KMSKeeper, key []byte) (string, error)

	// UnwrapKey decodes and decrypts a key produced by WrapKey.
	UnwrapKey(ctx context.Context, keeper cryptoDomain.KMSKeeper, wrapped string) ([]byte, error)
}
