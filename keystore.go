package hybridguard

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hybridguard/hybridguard-go/internal/crypto"
)

// SealedKeystoreVersion is the sealed key-file format version.
const SealedKeystoreVersion = 1

// storedKeys is the on-disk key file schema. Key material is base64url.
// WARNING: the plain (unsealed) form contains raw key material; handle the
// file accordingly or use the sealed form.
type storedKeys struct {
	KeyID     string    `json:"key_id"`
	Layer1Key string    `json:"layer1_key"`
	Layer2Key string    `json:"layer2_key"`
	Layer3Key string    `json:"layer3_key"`
	Layer4Key string    `json:"layer4_key"`
	CreatedAt time.Time `json:"created_at"`
}

// sealedKeystore wraps a storedKeys document encrypted with AES-256-GCM
// under an HKDF-SHA-512 key derived from a passphrase.
type sealedKeystore struct {
	Version int    `json:"version"`
	Salt    string `json:"salt"`
	Nonce   string `json:"nonce"`
	Data    string `json:"data"`
}

func (s *storedKeys) fromKeySet(keyID string, keys *KeySet, now time.Time) {
	s.KeyID = keyID
	s.Layer1Key = crypto.ToBase64URL(keys.Layer1Key)
	s.Layer2Key = crypto.ToBase64URL(keys.Layer2Key)
	s.Layer3Key = crypto.ToBase64URL(keys.Layer3Key)
	s.Layer4Key = crypto.ToBase64URL(keys.Layer4Key)
	s.CreatedAt = now
}

func (s *storedKeys) toKeySet() (*KeySet, error) {
	if s.KeyID == "" {
		return nil, fmt.Errorf("key_id is required")
	}

	keys := &KeySet{}
	for id, encoded := range map[uint8]string{
		1: s.Layer1Key,
		2: s.Layer2Key,
		3: s.Layer3Key,
		4: s.Layer4Key,
	} {
		if encoded == "" {
			return nil, fmt.Errorf("layer%d_key is required", id)
		}
		key, err := crypto.FromBase64URL(encoded)
		if err != nil {
			return nil, fmt.Errorf("layer%d_key: invalid encoding", id)
		}
		if len(key) < LayerKeySize {
			return nil, fmt.Errorf("layer%d_key: %d bytes, expected at least %d", id, len(key), LayerKeySize)
		}
		switch id {
		case 1:
			keys.Layer1Key = key
		case 2:
			keys.Layer2Key = key
		case 3:
			keys.Layer3Key = key
		case 4:
			keys.Layer4Key = key
		}
	}
	return keys, nil
}

// saveKeystore writes the plain JSON key file.
func saveKeystore(path, keyID string, keys *KeySet, now time.Time) error {
	var stored storedKeys
	stored.fromKeySet(keyID, keys, now)

	data, err := json.MarshalIndent(&stored, "", "  ")
	if err != nil {
		return &KeystoreError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &KeystoreError{Path: path, Err: err}
	}
	return nil
}

// loadKeystore reads a plain JSON key file. A sealed file is reported as
// ErrKeystoreSealed so the caller can retry with a passphrase.
func loadKeystore(path string) (string, *KeySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &KeystoreError{Path: path, Err: err}
	}

	var stored storedKeys
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", nil, &KeystoreError{Path: path, Err: fmt.Errorf("parse: %w", err)}
	}

	keys, convErr := stored.toKeySet()
	if convErr != nil {
		var sealed sealedKeystore
		if err := json.Unmarshal(data, &sealed); err == nil && sealed.Data != "" {
			return "", nil, &KeystoreError{Path: path, Err: ErrKeystoreSealed}
		}
		return "", nil, &KeystoreError{Path: path, Err: convErr}
	}
	return stored.KeyID, keys, nil
}

// saveSealedKeystore writes the passphrase-protected key file.
func saveSealedKeystore(path, keyID string, keys *KeySet, passphrase string, rng io.Reader, now time.Time) error {
	var stored storedKeys
	stored.fromKeySet(keyID, keys, now)

	plaintext, err := json.Marshal(&stored)
	if err != nil {
		return &KeystoreError{Path: path, Err: err}
	}

	salt := make([]byte, crypto.SaltSize)
	if _, err := io.ReadFull(rng, salt); err != nil {
		return &KeystoreError{Path: path, Err: fmt.Errorf("read salt: %w", err)}
	}
	nonce := make([]byte, crypto.AESNonceSize)
	if _, err := io.ReadFull(rng, nonce); err != nil {
		return &KeystoreError{Path: path, Err: fmt.Errorf("read nonce: %w", err)}
	}

	sealKey, err := crypto.DeriveSealKey(passphrase, salt)
	if err != nil {
		return &KeystoreError{Path: path, Err: err}
	}
	ciphertext, err := crypto.SealAESGCM(sealKey, nonce, plaintext)
	if err != nil {
		return &KeystoreError{Path: path, Err: err}
	}

	sealed := sealedKeystore{
		Version: SealedKeystoreVersion,
		Salt:    crypto.ToBase64URL(salt),
		Nonce:   crypto.ToBase64URL(nonce),
		Data:    crypto.ToBase64URL(ciphertext),
	}
	data, err := json.MarshalIndent(&sealed, "", "  ")
	if err != nil {
		return &KeystoreError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &KeystoreError{Path: path, Err: err}
	}
	return nil
}

// loadSealedKeystore reads and opens a passphrase-protected key file.
func loadSealedKeystore(path, passphrase string) (string, *KeySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &KeystoreError{Path: path, Err: err}
	}

	var sealed sealedKeystore
	if err := json.Unmarshal(data, &sealed); err != nil {
		return "", nil, &KeystoreError{Path: path, Err: fmt.Errorf("parse: %w", err)}
	}
	if sealed.Version != SealedKeystoreVersion {
		return "", nil, &KeystoreError{Path: path, Err: fmt.Errorf("unsupported sealed version %d", sealed.Version)}
	}

	salt, err := crypto.FromBase64URL(sealed.Salt)
	if err != nil {
		return "", nil, &KeystoreError{Path: path, Err: fmt.Errorf("salt: invalid encoding")}
	}
	nonce, err := crypto.FromBase64URL(sealed.Nonce)
	if err != nil {
		return "", nil, &KeystoreError{Path: path, Err: fmt.Errorf("nonce: invalid encoding")}
	}
	ciphertext, err := crypto.FromBase64URL(sealed.Data)
	if err != nil {
		return "", nil, &KeystoreError{Path: path, Err: fmt.Errorf("data: invalid encoding")}
	}

	sealKey, err := crypto.DeriveSealKey(passphrase, salt)
	if err != nil {
		return "", nil, &KeystoreError{Path: path, Err: err}
	}
	plaintext, err := crypto.OpenAESGCM(sealKey, nonce, ciphertext)
	if err != nil {
		return "", nil, &KeystoreError{Path: path, Err: fmt.Errorf("%w: %v", ErrWrongPassphrase, err)}
	}

	var stored storedKeys
	if err := json.Unmarshal(plaintext, &stored); err != nil {
		return "", nil, &KeystoreError{Path: path, Err: fmt.Errorf("parse sealed payload: %w", err)}
	}
	keys, err := stored.toKeySet()
	if err != nil {
		return "", nil, &KeystoreError{Path: path, Err: err}
	}
	return stored.KeyID, keys, nil
}
