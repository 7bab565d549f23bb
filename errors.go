package hybridguard

import (
	"errors"
	"fmt"

	"github.com/hybridguard/hybridguard-go/internal/crypto"
	"github.com/hybridguard/hybridguard-go/internal/layers"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrEncryptionFailed is returned when a layer could not produce ciphertext.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed is returned when a layer could not recover plaintext.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidInput is returned for precondition violations: empty payloads,
	// undersized keys, or mismatched lengths in homomorphic operations.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidKeystore is returned when a key file cannot be read or parsed.
	ErrInvalidKeystore = errors.New("invalid keystore")

	// ErrKeystoreSealed is returned when Load encounters a sealed key file;
	// use LoadSealed with the passphrase instead.
	ErrKeystoreSealed = errors.New("keystore is sealed")

	// ErrWrongPassphrase is returned when a sealed keystore cannot be opened,
	// typically because the passphrase is wrong or the file was tampered with.
	ErrWrongPassphrase = errors.New("wrong keystore passphrase")
)

// HybridGuardError is implemented by all package errors.
type HybridGuardError interface {
	error
	HybridGuardError() // marker method
}

// LayerError reports a failure in one pipeline layer. The orchestrator wraps
// every layer failure in a LayerError so callers can see which layer failed
// and during which operation.
type LayerError struct {
	Layer string // layer name as reported by Layer.Name
	Op    string // "encrypt" or "decrypt"
	Err   error
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("layer %q: %s failed: %v", e.Layer, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *LayerError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *LayerError) Is(target error) bool {
	if target == ErrInvalidInput {
		return errors.Is(e.Err, layers.ErrInvalidInput)
	}
	switch e.Op {
	case "encrypt":
		return target == ErrEncryptionFailed
	case "decrypt":
		return target == ErrDecryptionFailed
	}
	return false
}

// HybridGuardError implements the HybridGuardError interface.
func (e *LayerError) HybridGuardError() {}

// InputError reports a precondition violation outside the layer chain.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *InputError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// HybridGuardError implements the HybridGuardError interface.
func (e *InputError) HybridGuardError() {}

// KeystoreError reports a failure loading or saving a key file.
type KeystoreError struct {
	Path string
	Err  error
}

func (e *KeystoreError) Error() string {
	return fmt.Sprintf("keystore %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeystoreError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *KeystoreError) Is(target error) bool {
	switch target {
	case ErrInvalidKeystore:
		return !errors.Is(e.Err, ErrKeystoreSealed) && !errors.Is(e.Err, ErrWrongPassphrase)
	case ErrKeystoreSealed, ErrWrongPassphrase:
		return errors.Is(e.Err, target)
	}
	return false
}

// HybridGuardError implements the HybridGuardError interface.
func (e *KeystoreError) HybridGuardError() {}

// wrapInputError converts internal precondition errors to public errors so
// that errors.Is() checks work with public sentinels.
func wrapInputError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, layers.ErrInvalidInput) || errors.Is(err, crypto.ErrZeroLengthKey) {
		return &InputError{Err: err}
	}
	return err
}
