package hybridguard

import (
	"github.com/hybridguard/hybridguard-go/internal/layers"
)

// HomomorphicAdd XORs two equal-length ciphertexts byte-wise. It is an
// illustrative primitive of the FHE layer, not a load-bearing pipeline
// operation. Mismatched lengths fail with ErrInvalidInput.
func HomomorphicAdd(a, b []byte) ([]byte, error) {
	out, err := layers.NewFHE().HomomorphicAdd(a, b)
	if err != nil {
		return nil, wrapInputError(err)
	}
	return out, nil
}

// HomomorphicMultiply multiplies each ciphertext byte by scalar modulo 256.
// Like HomomorphicAdd, illustrative only.
func HomomorphicMultiply(ct []byte, scalar byte) ([]byte, error) {
	out, err := layers.NewFHE().HomomorphicMultiply(ct, scalar)
	if err != nil {
		return nil, wrapInputError(err)
	}
	return out, nil
}
