package cryptox

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/dmitrijs2005/pwkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func ciphers() map[string]Cipher {
	return map[string]Cipher{
		CipherAESGCM:            NewAESGCM(),
		CipherXChaCha20Poly1305: NewXChaCha20Poly1305(),
	}
}

type record struct {
	Password  string `json:"password"`
	Timestamp int64  `json:"timestamp"`
}

func TestCipher_RoundTrip(t *testing.T) {
	for name, c := range ciphers() {
		t.Run(name, func(t *testing.T) {
			key := randomKey(t)
			in := []record{{Password: "Ab1!cdEf", Timestamp: 1000}, {Password: "zz", Timestamp: 2}}

			blob, err := EncryptJSON(c, in, key)
			require.NoError(t, err)

			var out []record
			require.NoError(t, DecryptJSON(c, blob, key, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestCipher_NonceSizes(t *testing.T) {
	key := randomKey(t)

	b, err := NewAESGCM().Encrypt([]byte("x"), key)
	require.NoError(t, err)
	assert.Len(t, b.Nonce, 12)

	b, err = NewXChaCha20Poly1305().Encrypt([]byte("x"), key)
	require.NoError(t, err)
	assert.Len(t, b.Nonce, 24)
}

func TestCipher_FreshNonceEveryCall(t *testing.T) {
	for name, c := range ciphers() {
		t.Run(name, func(t *testing.T) {
			key := randomKey(t)
			seen := map[string]struct{}{}
			for i := 0; i < 64; i++ {
				b, err := c.Encrypt([]byte("same plaintext"), key)
				require.NoError(t, err)
				_, dup := seen[string(b.Nonce)]
				require.False(t, dup, "nonce reused")
				seen[string(b.Nonce)] = struct{}{}
			}
		})
	}
}

func TestCipher_TamperDetection(t *testing.T) {
	for name, c := range ciphers() {
		t.Run(name, func(t *testing.T) {
			key := randomKey(t)
			blob, err := c.Encrypt([]byte(`[{"password":"Ab1!cdEf"}]`), key)
			require.NoError(t, err)

			for i := range blob.Ciphertext {
				for bit := 0; bit < 8; bit++ {
					tampered := Blob{Ciphertext: bytes.Clone(blob.Ciphertext), Nonce: blob.Nonce}
					tampered.Ciphertext[i] ^= 1 << bit
					_, err := c.Decrypt(tampered, key)
					require.ErrorIs(t, err, common.ErrAuthenticationFailure, "ciphertext byte %d bit %d", i, bit)
				}
			}
			for i := range blob.Nonce {
				for bit := 0; bit < 8; bit++ {
					tampered := Blob{Ciphertext: blob.Ciphertext, Nonce: bytes.Clone(blob.Nonce)}
					tampered.Nonce[i] ^= 1 << bit
					_, err := c.Decrypt(tampered, key)
					require.ErrorIs(t, err, common.ErrAuthenticationFailure, "nonce byte %d bit %d", i, bit)
				}
			}
		})
	}
}

func TestCipher_WrongKey(t *testing.T) {
	d, err := NewPBKDF2(MinPBKDF2Iterations)
	require.NoError(t, err)
	right := d.DeriveKey([]byte("correcthorse"))
	wrong := d.DeriveKey([]byte("wrongphrase"))

	for name, c := range ciphers() {
		t.Run(name, func(t *testing.T) {
			blob, err := EncryptJSON(c, []record{{Password: "Ab1!cdEf", Timestamp: 1000}}, right)
			require.NoError(t, err)

			var out []record
			err = DecryptJSON(c, blob, wrong, &out)
			require.ErrorIs(t, err, common.ErrAuthenticationFailure)
			assert.Empty(t, out)
		})
	}
}

func TestCipher_BadKeyAndNonceLengths(t *testing.T) {
	c := NewAESGCM()
	key := randomKey(t)

	_, err := c.Encrypt([]byte("x"), key[:16])
	require.Error(t, err)

	blob, err := c.Encrypt([]byte("x"), key)
	require.NoError(t, err)

	_, err = c.Decrypt(blob, key[:16])
	require.ErrorIs(t, err, common.ErrAuthenticationFailure)

	_, err = c.Decrypt(Blob{Ciphertext: blob.Ciphertext, Nonce: blob.Nonce[:8]}, key)
	require.ErrorIs(t, err, common.ErrAuthenticationFailure)

	// A blob sealed by one scheme does not open under the other.
	_, err = NewXChaCha20Poly1305().Decrypt(blob, key)
	require.ErrorIs(t, err, common.ErrAuthenticationFailure)
}

func TestDecryptJSON_UnparsablePlaintext(t *testing.T) {
	c := NewAESGCM()
	key := randomKey(t)

	blob, err := c.Encrypt([]byte("not json"), key)
	require.NoError(t, err)

	var out []record
	require.ErrorIs(t, DecryptJSON(c, blob, key, &out), common.ErrAuthenticationFailure)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestEncrypt_NonceSourceError(t *testing.T) {
	c := NewAESGCM()
	c.rand = failingReader{}

	_, err := c.Encrypt([]byte("x"), randomKey(t))
	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrAuthenticationFailure)
}
