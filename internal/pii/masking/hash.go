package masking

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
)

// digest returns the hex digest of value under alg, truncated to width characters.
func digest(value string, alg piiDomain.HashAlgorithm, width int, key []byte) (string, error) {
	var sum []byte
	switch alg {
	case piiDomain.HashSHA256, "":
		s := sha256.Sum256([]byte(value))
		sum = s[:]
	case piiDomain.HashSHA512:
		s := sha512.Sum512([]byte(value))
		sum = s[:]
	case piiDomain.HashBLAKE2b:
		s := blake2b.Sum256([]byte(value))
		sum = s[:]
	case piiDomain.HashHMACSHA256:
		if len(key) == 0 {
			return "", piiDomain.ErrHashKeyRequired
		}
		mac := hmac.New(sha256.New, key)
		mac.Write([]byte(value))
		sum = mac.Sum(nil)
	default:
		return "", piiDomain.ErrUnsupportedHashAlgorithm
	}

	encoded := hex.EncodeToString(sum)
	if width <= 0 {
		width = piiDomain.DefaultHashWidth
	}
	if width < len(encoded) {
		encoded = encoded[:width]
	}
	return encoded, nil
}

func placeholder(category piiDomain.Category) string {
	return "[" + category.Label() + "]"
}
