package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrijs2005/pwkeeper/internal/common"
	"golang.org/x/crypto/chacha20poly1305"
)

// Cipher encrypts and authenticates payloads under a KeySize key.
//
// Encrypt draws a fresh random nonce on every call. Decrypt returns
// common.ErrAuthenticationFailure for a wrong key, a tampered ciphertext or
// nonce, or a nonce of the wrong length, and never returns partial plaintext.
type Cipher interface {
	Encrypt(plaintext, key []byte) (Blob, error)
	Decrypt(blob Blob, key []byte) ([]byte, error)
}

// AEADCipher adapts a cipher.AEAD constructor to Cipher.
type AEADCipher struct {
	newAEAD func(key []byte) (cipher.AEAD, error)
	rand    io.Reader
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// NewAESGCM returns AES-256-GCM with a 12-byte nonce.
func NewAESGCM() *AEADCipher {
	return &AEADCipher{newAEAD: newGCM, rand: rand.Reader}
}

// NewXChaCha20Poly1305 returns XChaCha20-Poly1305 with a 24-byte nonce.
func NewXChaCha20Poly1305() *AEADCipher {
	return &AEADCipher{newAEAD: chacha20poly1305.NewX, rand: rand.Reader}
}

func (c *AEADCipher) aead(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))
	}
	return c.newAEAD(key)
}

func (c *AEADCipher) Encrypt(plaintext, key []byte) (Blob, error) {
	aead, err := c.aead(key)
	if err != nil {
		return Blob{}, fmt.Errorf("init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return Blob{}, fmt.Errorf("nonce generation: %w", err)
	}

	return Blob{Ciphertext: aead.Seal(nil, nonce, plaintext, nil), Nonce: nonce}, nil
}

func (c *AEADCipher) Decrypt(blob Blob, key []byte) ([]byte, error) {
	aead, err := c.aead(key)
	if err != nil {
		return nil, common.ErrAuthenticationFailure
	}
	if len(blob.Nonce) != aead.NonceSize() {
		return nil, common.ErrAuthenticationFailure
	}

	plaintext, err := aead.Open(nil, blob.Nonce, blob.Ciphertext, nil)
	if err != nil {
		return nil, common.ErrAuthenticationFailure
	}
	return plaintext, nil
}

// EncryptJSON serializes v to JSON and encrypts it with c.
func EncryptJSON(c Cipher, v any, key []byte) (Blob, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return Blob{}, fmt.Errorf("serialize: %w", err)
	}
	defer common.WipeByteArray(plaintext)

	return c.Encrypt(plaintext, key)
}

// DecryptJSON decrypts blob and unmarshals the plaintext into v. A payload
// that authenticates but does not parse is reported as
// common.ErrAuthenticationFailure as well.
func DecryptJSON(c Cipher, blob Blob, key []byte, v any) error {
	plaintext, err := c.Decrypt(blob, key)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(plaintext)

	if err := json.Unmarshal(plaintext, v); err != nil {
		return common.ErrAuthenticationFailure
	}
	return nil
}
