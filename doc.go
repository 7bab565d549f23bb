// Package hybridguard implements a layered encryption pipeline: four
// independent transforms applied in sequence to a byte payload and reversed
// in the opposite order to recover the original bytes.
//
// The four layers, in encryption order:
//
//   - ML-KEM-768 key encapsulation with a keystream derived from the shared
//     secret (lattice-based).
//
//   - FrodoKEM-640-SHAKE encapsulation with the same keystream construction
//     (unstructured lattice, an independent mechanism family).
//
//   - A deterministic noise mask: XOR with a keystream derived solely from
//     the layer key.
//
//   - A padded-block keystream cipher with auxiliary byte-wise homomorphic
//     operations.
//
// One master secret, supplied directly or derived from a password and salt,
// is expanded into four independent layer keys with domain separation, so no
// layer ever sees another layer's key material.
//
// Basic usage:
//
//	guard, err := hybridguard.New("correct horse battery staple")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	envelope, err := guard.Encrypt([]byte("Hello, HybridGuard!"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plaintext, err := guard.Decrypt(envelope)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For callers that manage their own key material, [DeriveKeySet] plus
// [NewPipeline] give the same functionality without the keystore:
//
//	keys, _ := hybridguard.DeriveKeySet(masterSecret)
//	pipeline := hybridguard.NewPipeline()
//	envelope, err := pipeline.Encrypt(plaintext, keys)
//
// This package specifies a mechanism (layer composition, key scheduling,
// byte-for-byte reversibility) and does not claim genuine post-quantum
// security for the composed result.
package hybridguard
