package crypto

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// ErrZeroLengthKey is returned when a derived key of length zero is requested.
// A zero-length key has undefined downstream behavior, so it is rejected
// rather than propagated.
var ErrZeroLengthKey = errors.New("derived key length must be positive")

// KeyDerivation expands one master secret into independent per-layer keys.
//
// Each layer key is SHA3-256 over the master secret, a layer-specific info
// string, and the layer id byte. Outputs longer than one digest are produced
// by counter-mode expansion of the first digest. This scheme is intentionally
// simpler than HKDF-Expand and must stay byte-compatible across
// implementations.
type KeyDerivation struct {
	master []byte
}

// NewKeyDerivation creates a derivation instance over a master secret.
// The secret is used as-is; it is never persisted by this package.
func NewKeyDerivation(master []byte) *KeyDerivation {
	return &KeyDerivation{master: master}
}

// KeyDerivationFromPassword derives a master secret as SHA3-256(password ‖ salt)
// and returns a derivation instance over it.
//
// Security: this is a single hash with no work factor. It offers no
// resistance to offline brute force and must not be treated as a hardened
// password KDF.
func KeyDerivationFromPassword(password string, salt []byte) *KeyDerivation {
	return &KeyDerivation{master: MasterSecretFromPassword(password, salt)}
}

// MasterSecretFromPassword computes SHA3-256(password ‖ salt).
func MasterSecretFromPassword(password string, salt []byte) []byte {
	h := sha3.New256()
	h.Write([]byte(password))
	h.Write(salt)
	return h.Sum(nil)
}

// DeriveLayerKey derives the key for one layer.
//
// The digest input is master ‖ "HybridGuard-Layer-<id>" ‖ [id], giving each
// layer an input-distinguishable domain so keys for distinct layers cannot
// collide trivially.
func (kd *KeyDerivation) DeriveLayerKey(layerID uint8, size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrZeroLengthKey
	}

	info := fmt.Sprintf("HybridGuard-Layer-%d", layerID)

	h := sha3.New256()
	h.Write(kd.master)
	h.Write([]byte(info))
	h.Write([]byte{layerID})
	digest := h.Sum(nil)

	if size <= len(digest) {
		return digest[:size:size], nil
	}

	// Counter-mode expansion of the first digest for oversized keys.
	out := make([]byte, 0, size+len(digest))
	for counter := uint8(0); len(out) < size; counter++ {
		h := sha3.New256()
		h.Write(digest)
		h.Write([]byte{counter})
		out = h.Sum(out)
	}
	return out[:size:size], nil
}

// DeriveAllKeys derives the full four-layer key set with fixed 32-byte keys.
// For a fixed master secret the result is bit-for-bit deterministic.
func (kd *KeyDerivation) DeriveAllKeys() (*LayerKeys, error) {
	keys := &LayerKeys{}
	for id := uint8(1); id <= NumLayers; id++ {
		key, err := kd.DeriveLayerKey(id, LayerKeySize)
		if err != nil {
			return nil, err
		}
		keys.set(id, key)
	}
	return keys, nil
}

// LayerKeys holds the four independently derived layer keys.
type LayerKeys struct {
	Layer1Key []byte
	Layer2Key []byte
	Layer3Key []byte
	Layer4Key []byte
}

// Key returns the key for the given layer id (1..4), or nil for any other id.
func (k *LayerKeys) Key(layerID uint8) []byte {
	switch layerID {
	case 1:
		return k.Layer1Key
	case 2:
		return k.Layer2Key
	case 3:
		return k.Layer3Key
	case 4:
		return k.Layer4Key
	}
	return nil
}

func (k *LayerKeys) set(layerID uint8, key []byte) {
	switch layerID {
	case 1:
		k.Layer1Key = key
	case 2:
		k.Layer2Key = key
	case 3:
		k.Layer3Key = key
	case 4:
		k.Layer4Key = key
	}
}

// Keystream expands a secret into length pseudorandom bytes by concatenating
// SHA3-256(secret ‖ counter) digests, with a little-endian uint64 counter.
// The expansion is deterministic and prefix-stable: a longer request begins
// with the bytes of a shorter one.
func Keystream(secret []byte, length int) []byte {
	out := make([]byte, 0, length+sha3DigestSize)
	var ctr [8]byte
	for counter := uint64(0); len(out) < length; counter++ {
		binary.LittleEndian.PutUint64(ctr[:], counter)
		h := sha3.New256()
		h.Write(secret)
		h.Write(ctr[:])
		out = h.Sum(out)
	}
	return out[:length]
}

const sha3DigestSize = 32
