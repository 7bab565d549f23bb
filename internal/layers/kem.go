package layers

import (
	"fmt"
	"io"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/frodo/frodo640shake"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"

	"github.com/hybridguard/hybridguard-go/internal/crypto"
)

// kemLayer is the shared core of the two encapsulation layers.
//
// Encrypt derives a keypair deterministically from the layer key, runs the
// KEM's encapsulation against the public half, expands the shared secret
// into a keystream of the data's length, XORs, and prepends the fixed-length
// encapsulation blob. Decrypt re-derives the same keypair, decapsulates the
// prefix, and reverses the XOR.
//
// The keypair MUST be a pure function of the layer key: encrypt and decrypt
// never see each other's state, so a fresh random keypair on either side
// would make decryption silently produce garbage. Only the encapsulation
// seed is random, and it travels inside the ciphertext.
type kemLayer struct {
	scheme  kem.Scheme
	name    string
	bits    int
	seedTag string
	rand    io.Reader
}

// NewMLKEM returns the lattice-based ML-KEM-768 encapsulation layer.
// rng supplies encapsulation seeds; pass crypto/rand.Reader outside tests.
func NewMLKEM(rng io.Reader) Layer {
	return &kemLayer{
		scheme:  mlkem768.Scheme(),
		name:    "ML-KEM-768 (Lattice-based)",
		bits:    192,
		seedTag: "mlkem-keypair-seed",
		rand:    rng,
	}
}

// NewFrodo returns the FrodoKEM-640-SHAKE encapsulation layer. FrodoKEM's
// unstructured lattices make it an independent mechanism family from ML-KEM,
// so a break of one does not imply a break of the other.
func NewFrodo(rng io.Reader) Layer {
	return &kemLayer{
		scheme:  frodo640shake.Scheme(),
		name:    "FrodoKEM-640-SHAKE (Unstructured lattice)",
		bits:    128,
		seedTag: "frodo-keypair-seed",
		rand:    rng,
	}
}

// deriveKeyPair expands the layer key into the scheme's keypair seed and
// derives the keypair from it. Deterministic: same key, same keypair.
func (l *kemLayer) deriveKeyPair(key []byte) (kem.PublicKey, kem.PrivateKey) {
	secret := make([]byte, 0, len(key)+len(l.seedTag))
	secret = append(secret, key...)
	secret = append(secret, l.seedTag...)
	seed := crypto.Keystream(secret, l.scheme.SeedSize())
	return l.scheme.DeriveKeyPair(seed)
}

func (l *kemLayer) Encrypt(data, key []byte) ([]byte, error) {
	pub, _ := l.deriveKeyPair(key)

	seed := make([]byte, l.scheme.EncapsulationSeedSize())
	if _, err := io.ReadFull(l.rand, seed); err != nil {
		return nil, fmt.Errorf("read encapsulation seed: %w", err)
	}

	encap, shared, err := l.scheme.EncapsulateDeterministically(pub, seed)
	if err != nil {
		return nil, fmt.Errorf("encapsulate: %w", err)
	}

	stream := crypto.Keystream(shared, len(data))
	out := make([]byte, len(encap)+len(data))
	copy(out, encap)
	for i, b := range data {
		out[len(encap)+i] = b ^ stream[i]
	}
	return out, nil
}

func (l *kemLayer) Decrypt(data, key []byte) ([]byte, error) {
	ctSize := l.scheme.CiphertextSize()
	if len(data) < ctSize {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedCiphertext, ctSize, len(data))
	}

	_, priv := l.deriveKeyPair(key)
	shared, err := l.scheme.Decapsulate(priv, data[:ctSize])
	if err != nil {
		return nil, fmt.Errorf("decapsulate: %w", err)
	}

	body := data[ctSize:]
	stream := crypto.Keystream(shared, len(body))
	out := make([]byte, len(body))
	for i, b := range body {
		out[i] = b ^ stream[i]
	}
	return out, nil
}

func (l *kemLayer) Name() string { return l.name }

func (l *kemLayer) SecurityLevel() int { return l.bits }
