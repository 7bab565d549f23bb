package layers

import "errors"

var (
	// ErrInvalidInput is returned for precondition violations: empty
	// payloads, undersized keys, or mismatched lengths in the auxiliary
	// homomorphic operations.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTruncatedCiphertext is returned when a KEM layer's input is
	// shorter than the fixed-length encapsulation prefix.
	ErrTruncatedCiphertext = errors.New("ciphertext shorter than encapsulation prefix")

	// ErrInvalidPadding is returned when unpadding cannot locate the
	// padding marker byte.
	ErrInvalidPadding = errors.New("padding marker not found")
)
