package domain

import (
	"github.com/allisson/piiguard/internal/errors"
)

// Cryptographic operation error definitions.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// The specific cause (wrong key, tampered ciphertext, mismatched associated data)
	// is not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrKeyUnwrapFailed indicates the KMS keeper could not decrypt a wrapped key.
	ErrKeyUnwrapFailed = errors.Wrap(errors.ErrInvalidInput, "failed to unwrap key")
)
