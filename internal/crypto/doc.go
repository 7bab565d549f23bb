// Package crypto provides the key-derivation and keystream primitives for
// the HybridGuard pipeline, plus the sealing helpers for passphrase-protected
// keystores.
//
// # Key Derivation
//
// One master secret is expanded into four independent 32-byte layer keys via
// SHA3-256 with per-layer domain separation (see [KeyDerivation]). The
// oversized-key path uses a simple counter-mode expansion of the first
// digest rather than HKDF-Expand; this is a compatibility requirement of the
// HybridGuard format, not an oversight, and must not be "improved" in place.
//
// # Keystream Expansion
//
// [Keystream] expands any secret (a layer key, a KEM shared secret) into an
// arbitrary-length XOR mask by hashing secret ‖ counter. All four layers build
// on it directly or indirectly.
//
// # Sealed Keystores
//
// [DeriveSealKey], [SealAESGCM], and [OpenAESGCM] implement the optional
// passphrase protection for on-disk key files: HKDF-SHA-512 for the key,
// AES-256-GCM for confidentiality and integrity. HKDF provides no work
// factor, so the seal is only as strong as the passphrase.
package crypto
