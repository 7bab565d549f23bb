package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when an AES key has the wrong size.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when an AES-GCM nonce has the wrong size.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrSealOpenFailed is returned when opening a sealed keystore fails,
	// typically because the passphrase is wrong or the file was tampered with.
	ErrSealOpenFailed = errors.New("sealed keystore authentication failed")
)
