package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveSealKey derives the AES-256 key protecting a sealed keystore.
//
// HKDF-SHA-512 with the passphrase as input key material, a per-file random
// salt, and [KeystoreHKDFContext] as info. Note that HKDF adds domain
// separation but no work factor; a sealed keystore is only as strong as its
// passphrase.
func DeriveSealKey(passphrase string, salt []byte) ([]byte, error) {
	if len(salt) == 0 {
		salt = make([]byte, sha512.Size)
	}

	reader := hkdf.New(sha512.New, []byte(passphrase), salt, []byte(KeystoreHKDFContext))
	key := make([]byte, AESKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive seal key: %w", err)
	}

	return key, nil
}

// SealAESGCM encrypts plaintext with AES-256-GCM under the given key and nonce.
func SealAESGCM(key, nonce, plaintext []byte) ([]byte, error) {
	aesGCM, err := newGCM(key, nonce)
	if err != nil {
		return nil, err
	}
	return aesGCM.Seal(nil, nonce, plaintext, nil), nil
}

// OpenAESGCM decrypts an AES-256-GCM ciphertext. Authentication failure is
// reported as [ErrSealOpenFailed] without detail, so callers cannot
// distinguish a wrong passphrase from a corrupted file.
func OpenAESGCM(key, nonce, ciphertext []byte) ([]byte, error) {
	aesGCM, err := newGCM(key, nonce)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrSealOpenFailed
	}
	return plaintext, nil
}

func newGCM(key, nonce []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}
	if len(nonce) != AESNonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), AESNonceSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
