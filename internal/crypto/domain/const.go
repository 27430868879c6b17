// Package domain defines the cryptographic primitives shared by the token store:
// cipher algorithms, key sizes, KMS keeper boundary and key hygiene helpers.
package domain

import "strings"

// KeySize is the required length in bytes of every symmetric key.
const KeySize = 32

// Algorithm represents the AEAD algorithm used to encrypt token store values.
//
// Both algorithms provide 256-bit authenticated encryption with a 12-byte nonce
// and a 16-byte tag. AESGCM is preferred on CPUs with AES-NI; ChaCha20 on
// platforms without hardware AES.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// ParseAlgorithm converts a case-insensitive name into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case AESGCM, "aes-256-gcm", "aesgcm":
		return AESGCM, nil
	case ChaCha20, "chacha20":
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
