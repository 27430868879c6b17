package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/piiguard/internal/crypto/domain"
)

// sealer adapts a cipher.AEAD to the AEAD interface. Every Encrypt draws a fresh
// random nonce; the tag is appended to the ciphertext. Safe for concurrent use.
type sealer struct {
	alg  cryptoDomain.Algorithm
	aead cipher.AEAD
}

// Algorithm reports the algorithm the sealer was built for.
func (s *sealer) Algorithm() cryptoDomain.Algorithm {
	return s.alg
}

// Encrypt seals plaintext, binding aad, and returns the ciphertext with its nonce.
func (s *sealer) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return s.aead.Seal(nil, nonce, plaintext, aad), nonce, nil
}

// Decrypt opens ciphertext. The aad must equal the one given to Encrypt; the cause
// of a failure is not disclosed beyond ErrDecryptionFailed.
func (s *sealer) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != s.aead.NonceSize() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

func newChaCha20Poly1305(key []byte) (cipher.AEAD, error) {
	return chacha20poly1305.New(key)
}

// aeadManager builds sealers from a table of constructors keyed by algorithm.
type aeadManager struct {
	constructors map[cryptoDomain.Algorithm]func(key []byte) (cipher.AEAD, error)
}

// NewAEADManager returns an AEADManager supporting AES-256-GCM and ChaCha20-Poly1305.
func NewAEADManager() AEADManager {
	return &aeadManager{
		constructors: map[cryptoDomain.Algorithm]func(key []byte) (cipher.AEAD, error){
			cryptoDomain.AESGCM:   newAESGCM,
			cryptoDomain.ChaCha20: newChaCha20Poly1305,
		},
	}
}

// CreateCipher returns ErrInvalidKeySize unless key is KeySize bytes and
// ErrUnsupportedAlgorithm for unknown algorithms.
func (m *aeadManager) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	construct, ok := m.constructors[alg]
	if !ok {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	aead, err := construct(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s cipher: %w", alg, err)
	}
	return &sealer{alg: alg, aead: aead}, nil
}
