// Package common defines shared sentinel errors and small helpers used across
// pwkeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Generation errors.
	ErrInvalidOptions = errors.New("invalid generation options")

	// Passphrase prompt errors.
	ErrPromptCancelled = errors.New("passphrase prompt cancelled")
	ErrWeakPassphrase  = errors.New("master passphrase must be at least 8 characters long")

	// Crypto errors. Wrong passphrase, tampered blob and unparsable plaintext
	// all map to ErrAuthenticationFailure.
	ErrAuthenticationFailure = errors.New("incorrect master password")
	ErrUnknownScheme         = errors.New("unknown encryption scheme")

	// Storage errors.
	ErrPersistence = errors.New("persistence failure")

	// History errors.
	ErrLocked          = errors.New("history is locked")
	ErrIndexOutOfRange = errors.New("history index out of range")
)
