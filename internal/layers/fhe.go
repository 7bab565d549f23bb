package layers

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

const (
	// fheBlockSize is the padding block size in bytes.
	fheBlockSize = 32

	// fheKeyPrefix domain-separates the FHE sub-key from the raw layer key.
	fheKeyPrefix = "FHE-LAYER-KEY-"

	// padMarker starts the padding: one marker byte, then zeros.
	padMarker = 0x80

	// fheMinKeySize is the minimum accepted layer key length.
	fheMinKeySize = 32
)

// FHELayer is a padded-block keystream cipher with auxiliary byte-wise
// homomorphic operations.
//
// This is a toy homomorphic construction, not real FHE: production systems
// wanting computation on ciphertexts should use a lattice FHE library. Within
// the pipeline it behaves as an ordinary reversible transform.
//
// Padding discipline: the marker byte is ALWAYS appended, followed by zeros
// up to a block boundary, with a full padding block when the input is already
// aligned. Because the marker comes after the last data byte, the last 0x80
// in the unpadded buffer is always the marker, even when the plaintext
// itself ends in 0x80.
type FHELayer struct{}

// NewFHE returns the padded-block keystream layer.
func NewFHE() *FHELayer {
	return &FHELayer{}
}

func (l *FHELayer) Encrypt(data, key []byte) ([]byte, error) {
	if err := validateFHEInput(data, key); err != nil {
		return nil, err
	}

	padded := pad(data)
	stream := fheKeystream(deriveFHEKey(key), len(padded))
	out := make([]byte, len(padded))
	for i, b := range padded {
		out[i] = b ^ stream[i]
	}
	return out, nil
}

func (l *FHELayer) Decrypt(data, key []byte) ([]byte, error) {
	if err := validateFHEInput(data, key); err != nil {
		return nil, err
	}

	stream := fheKeystream(deriveFHEKey(key), len(data))
	padded := make([]byte, len(data))
	for i, b := range data {
		padded[i] = b ^ stream[i]
	}
	return unpad(padded)
}

func (l *FHELayer) Name() string { return "FHE (Homomorphic)" }

func (l *FHELayer) SecurityLevel() int { return 256 }

// HomomorphicAdd XORs two equal-length ciphertexts byte-wise. Auxiliary
// primitive; not part of the pipeline contract.
func (l *FHELayer) HomomorphicAdd(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: ciphertext lengths differ (%d vs %d)", ErrInvalidInput, len(a), len(b))
	}

	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// HomomorphicMultiply multiplies each ciphertext byte by scalar modulo 256.
// Auxiliary primitive; not part of the pipeline contract.
func (l *FHELayer) HomomorphicMultiply(ct []byte, scalar byte) ([]byte, error) {
	out := make([]byte, len(ct))
	for i, b := range ct {
		out[i] = b * scalar
	}
	return out, nil
}

func validateFHEInput(data, key []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: data must not be empty", ErrInvalidInput)
	}
	if len(key) < fheMinKeySize {
		return fmt.Errorf("%w: key must be at least %d bytes, got %d", ErrInvalidInput, fheMinKeySize, len(key))
	}
	return nil
}

// deriveFHEKey computes the sub-key SHA-256(prefix ‖ key).
func deriveFHEKey(key []byte) []byte {
	h := sha256.New()
	h.Write([]byte(fheKeyPrefix))
	h.Write(key)
	return h.Sum(nil)
}

// pad appends the marker byte and zeros up to the next block boundary.
// Output length is always a positive multiple of fheBlockSize.
func pad(data []byte) []byte {
	padLen := fheBlockSize - len(data)%fheBlockSize

	out := make([]byte, len(data), len(data)+padLen)
	copy(out, data)
	out = append(out, padMarker)
	for i := 1; i < padLen; i++ {
		out = append(out, 0x00)
	}
	return out
}

// unpad truncates before the last marker byte.
func unpad(data []byte) ([]byte, error) {
	for i := len(data) - 1; i >= 0; i-- {
		if data[i] == padMarker {
			return data[:i], nil
		}
	}
	return nil, ErrInvalidPadding
}

// fheKeystream concatenates SHA-256(subKey ‖ blockIndex) digests until length
// bytes are available, with a little-endian uint64 block index.
func fheKeystream(subKey []byte, length int) []byte {
	out := make([]byte, 0, length+sha256.Size)
	var idx [8]byte
	for block := uint64(0); len(out) < length; block++ {
		binary.LittleEndian.PutUint64(idx[:], block)
		h := sha256.New()
		h.Write(subKey)
		h.Write(idx[:])
		out = h.Sum(out)
	}
	return out[:length]
}
