// Package cryptox holds the cryptographic building blocks of the history
// vault: passphrase key derivation, AEAD encryption of serialized payloads
// and the JSON wire format of encrypted blobs.
package cryptox

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// DefaultSalt is a fixed, public, application-specific salt. It separates
// this application's keys from other PBKDF2/Argon2 users of the same
// passphrase; it is not a per-installation secret and does not stop
// precomputation against this application as a whole.
const DefaultSalt = "PasswordGeneratorSalt"

// KeySize is the derived key length (AES-256 / XChaCha20).
const KeySize = 32

// MinPBKDF2Iterations is the lowest iteration count NewPBKDF2 accepts.
const MinPBKDF2Iterations = 100000

// Argon2id cost parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// KeyDeriver turns a passphrase into a KeySize symmetric key. It must be
// deterministic for a given configuration.
type KeyDeriver interface {
	DeriveKey(passphrase []byte) []byte
}

// PBKDF2 derives keys with PBKDF2-HMAC-SHA256.
type PBKDF2 struct {
	iterations int
	salt       []byte
}

// NewPBKDF2 returns a PBKDF2 deriver using DefaultSalt.
func NewPBKDF2(iterations int) (*PBKDF2, error) {
	if iterations < MinPBKDF2Iterations {
		return nil, fmt.Errorf("pbkdf2: %d iterations is below the minimum of %d", iterations, MinPBKDF2Iterations)
	}
	return &PBKDF2{iterations: iterations, salt: []byte(DefaultSalt)}, nil
}

func (p *PBKDF2) DeriveKey(passphrase []byte) []byte {
	return pbkdf2.Key(passphrase, p.salt, p.iterations, KeySize, sha256.New)
}

// Argon2id derives keys with argon2.IDKey using DefaultSalt.
type Argon2id struct {
	salt []byte
}

func NewArgon2id() *Argon2id {
	return &Argon2id{salt: []byte(DefaultSalt)}
}

func (a *Argon2id) DeriveKey(passphrase []byte) []byte {
	return DeriveMasterKey(passphrase, a.salt)
}

// DeriveMasterKey runs Argon2id with the package cost parameters.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
}
