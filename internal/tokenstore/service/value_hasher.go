package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

type hmacValueHasher struct {
	key []byte
}

// NewHMACValueHasher creates a hasher keyed with key. The key is copied so the caller
// may zero its buffer.
func NewHMACValueHasher(key []byte) ValueHasher {
	return &hmacValueHasher{key: append([]byte(nil), key...)}
}

// Hash computes HMAC-SHA256(key, value) as a hex string.
func (h *hmacValueHasher) Hash(value []byte) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write(value)
	return hex.EncodeToString(mac.Sum(nil))
}
