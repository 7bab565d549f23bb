package hybridguard

import (
	"github.com/hybridguard/hybridguard-go/internal/crypto"
)

// DeriveKeySet expands a master secret into the four 32-byte layer keys.
// The expansion is deterministic: the same secret always yields the same
// key set, and distinct layers are derived with distinct domain-separation
// inputs so their keys never collide in practice.
func DeriveKeySet(masterSecret []byte) (*KeySet, error) {
	keys, err := crypto.NewKeyDerivation(masterSecret).DeriveAllKeys()
	if err != nil {
		return nil, wrapInputError(err)
	}
	return keys, nil
}

// DeriveKeySetFromPassword derives a master secret from password and salt,
// then expands it into the four layer keys.
//
// Security: the password-to-secret step is a single SHA3-256 hash with no
// work factor. It is a non-hardened default, not a defense against offline
// brute force. Callers needing that should supply externally stretched key
// material to [DeriveKeySet] instead.
func DeriveKeySetFromPassword(password string, salt []byte) (*KeySet, error) {
	keys, err := crypto.KeyDerivationFromPassword(password, salt).DeriveAllKeys()
	if err != nil {
		return nil, wrapInputError(err)
	}
	return keys, nil
}

// DeriveLayerKey derives the key for a single layer at an arbitrary length.
// Lengths beyond one digest are produced by the format's counter-mode
// expansion. A zero length is rejected with ErrInvalidInput.
func DeriveLayerKey(masterSecret []byte, layerID uint8, size int) ([]byte, error) {
	key, err := crypto.NewKeyDerivation(masterSecret).DeriveLayerKey(layerID, size)
	if err != nil {
		return nil, wrapInputError(err)
	}
	return key, nil
}

// MasterSecretFromPassword computes the master secret SHA3-256(password ‖ salt).
// See the stretching caveat on [DeriveKeySetFromPassword].
func MasterSecretFromPassword(password string, salt []byte) []byte {
	return crypto.MasterSecretFromPassword(password, salt)
}
