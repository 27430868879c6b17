package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/piiguard/internal/crypto/domain"
)

func newKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestAEADManager_CreateCipher(t *testing.T) {
	manager := NewAEADManager()
	key := newKey(t)

	t.Run("Success_AESGCM", func(t *testing.T) {
		cipher, err := manager.CreateCipher(key, cryptoDomain.AESGCM)
		require.NoError(t, err)
		s, ok := cipher.(*sealer)
		require.True(t, ok)
		assert.Equal(t, cryptoDomain.AESGCM, s.Algorithm())
	})

	t.Run("Success_ChaCha20", func(t *testing.T) {
		cipher, err := manager.CreateCipher(key, cryptoDomain.ChaCha20)
		require.NoError(t, err)
		s, ok := cipher.(*sealer)
		require.True(t, ok)
		assert.Equal(t, cryptoDomain.ChaCha20, s.Algorithm())
	})

	t.Run("Error_UnsupportedAlgorithm", func(t *testing.T) {
		_, err := manager.CreateCipher(key, cryptoDomain.Algorithm("xor"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})

	t.Run("Error_KeyTooShort", func(t *testing.T) {
		_, err := manager.CreateCipher(make([]byte, 16), cryptoDomain.AESGCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("Error_KeyTooLong", func(t *testing.T) {
		_, err := manager.CreateCipher(make([]byte, 64), cryptoDomain.ChaCha20)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})
}

func TestAEAD_RoundTrip(t *testing.T) {
	manager := NewAEADManager()

	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			cipher, err := manager.CreateCipher(newKey(t), alg)
			require.NoError(t, err)

			plaintext := []byte("123-45-6789")
			aad := []byte("TKN_SSN_ABCDEFGH12345678")

			t.Run("Success_Decrypt", func(t *testing.T) {
				ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
				require.NoError(t, err)
				assert.Len(t, nonce, 12)
				assert.NotContains(t, string(ciphertext), string(plaintext))

				decrypted, err := cipher.Decrypt(ciphertext, nonce, aad)
				require.NoError(t, err)
				assert.Equal(t, plaintext, decrypted)
			})

			t.Run("Success_UniqueNonces", func(t *testing.T) {
				c1, n1, err := cipher.Encrypt(plaintext, aad)
				require.NoError(t, err)
				c2, n2, err := cipher.Encrypt(plaintext, aad)
				require.NoError(t, err)
				assert.NotEqual(t, n1, n2)
				assert.NotEqual(t, c1, c2)
			})

			t.Run("Error_WrongAAD", func(t *testing.T) {
				ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
				require.NoError(t, err)

				_, err = cipher.Decrypt(ciphertext, nonce, []byte("TKN_SSN_OTHER"))
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("Error_Tampered", func(t *testing.T) {
				ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
				require.NoError(t, err)
				ciphertext[0] ^= 0xff

				_, err = cipher.Decrypt(ciphertext, nonce, aad)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("Error_BadNonce", func(t *testing.T) {
				ciphertext, _, err := cipher.Encrypt(plaintext, aad)
				require.NoError(t, err)

				_, err = cipher.Decrypt(ciphertext, []byte{1, 2, 3}, aad)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("Error_WrongKey", func(t *testing.T) {
				other, err := manager.CreateCipher(newKey(t), alg)
				require.NoError(t, err)
				ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
				require.NoError(t, err)

				_, err = other.Decrypt(ciphertext, nonce, aad)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})
		})
	}
}
