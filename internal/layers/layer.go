// Package layers implements the four transform stages of the HybridGuard
// pipeline. The set of layers is closed and known at design time; every
// layer satisfies the [Layer] contract and is stateless with respect to
// data. Keys are passed in per call and no cross-call counters exist, so a
// single layer instance is safe to use from concurrent pipeline runs.
package layers

// Layer is the contract shared by all four transform stages.
//
// Encrypt must be the two-sided inverse of Decrypt under the same key:
// Decrypt(Encrypt(d, k), k) == d for all non-degenerate d.
type Layer interface {
	// Encrypt transforms data under key.
	Encrypt(data, key []byte) ([]byte, error)

	// Decrypt reverses Encrypt under the same key.
	Decrypt(data, key []byte) ([]byte, error)

	// Name identifies the layer in envelope metadata and diagnostics.
	Name() string

	// SecurityLevel is the layer's declared security level in bits.
	SecurityLevel() int
}
