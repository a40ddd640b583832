package cryptox

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/pwkeeper/internal/common"
)

// KDF and cipher identifiers stored in a Scheme.
const (
	KDFPBKDF2   = "pbkdf2-sha256"
	KDFArgon2id = "argon2id"

	CipherAESGCM            = "aes-256-gcm"
	CipherXChaCha20Poly1305 = "xchacha20-poly1305"
)

// Scheme records how a blob was produced so it can be opened later even if
// the configured defaults change.
type Scheme struct {
	KDF        string `json:"kdf"`
	Iterations int    `json:"iterations,omitempty"`
	Cipher     string `json:"cipher"`
}

// DefaultScheme is PBKDF2-SHA256 with MinPBKDF2Iterations and AES-256-GCM.
func DefaultScheme() Scheme {
	return Scheme{KDF: KDFPBKDF2, Iterations: MinPBKDF2Iterations, Cipher: CipherAESGCM}
}

// NewDeriver builds the KeyDeriver named by s.
func (s Scheme) NewDeriver() (KeyDeriver, error) {
	switch s.KDF {
	case KDFPBKDF2:
		d, err := NewPBKDF2(s.Iterations)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrUnknownScheme, err)
		}
		return d, nil
	case KDFArgon2id:
		return NewArgon2id(), nil
	}
	return nil, fmt.Errorf("%w: kdf %q", common.ErrUnknownScheme, s.KDF)
}

// NewCipher builds the Cipher named by s.
func (s Scheme) NewCipher() (Cipher, error) {
	switch s.Cipher {
	case CipherAESGCM:
		return NewAESGCM(), nil
	case CipherXChaCha20Poly1305:
		return NewXChaCha20Poly1305(), nil
	}
	return nil, fmt.Errorf("%w: cipher %q", common.ErrUnknownScheme, s.Cipher)
}

// Validate checks that both halves of the scheme can be built.
func (s Scheme) Validate() error {
	if _, err := s.NewDeriver(); err != nil {
		return err
	}
	_, err := s.NewCipher()
	return err
}

// DecodeScheme parses a stored scheme; nil or empty data means DefaultScheme.
func DecodeScheme(data []byte) (Scheme, error) {
	if len(data) == 0 {
		return DefaultScheme(), nil
	}
	var s Scheme
	if err := json.Unmarshal(data, &s); err != nil {
		return Scheme{}, fmt.Errorf("%w: %w", common.ErrUnknownScheme, err)
	}
	return s, s.Validate()
}
