package crypto

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	t.Parallel()
	salt := make([]byte, SaltSize)
	nonce := make([]byte, AESNonceSize)
	if _, err := rand.Read(salt); err != nil {
		t.Fatal(err)
	}
	if _, err := rand.Read(nonce); err != nil {
		t.Fatal(err)
	}

	key, err := DeriveSealKey("passphrase", salt)
	if err != nil {
		t.Fatal(err)
	}

	plaintext := []byte(`{"key_id":"hg-test"}`)
	ciphertext, err := SealAESGCM(key, nonce, plaintext)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(ciphertext, plaintext) {
		t.Fatal("ciphertext equals plaintext")
	}

	opened, err := OpenAESGCM(key, nonce, ciphertext)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("opened = %q, want %q", opened, plaintext)
	}
}

func TestOpenAESGCM_WrongKey(t *testing.T) {
	t.Parallel()
	salt := make([]byte, SaltSize)
	nonce := make([]byte, AESNonceSize)

	key, err := DeriveSealKey("passphrase", salt)
	if err != nil {
		t.Fatal(err)
	}
	wrongKey, err := DeriveSealKey("not the passphrase", salt)
	if err != nil {
		t.Fatal(err)
	}

	ciphertext, err := SealAESGCM(key, nonce, []byte("payload"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := OpenAESGCM(wrongKey, nonce, ciphertext); !errors.Is(err, ErrSealOpenFailed) {
		t.Errorf("error = %v, want ErrSealOpenFailed", err)
	}
}

func TestDeriveSealKey_SaltSensitive(t *testing.T) {
	t.Parallel()
	saltA := bytes.Repeat([]byte{1}, SaltSize)
	saltB := bytes.Repeat([]byte{2}, SaltSize)

	keyA, err := DeriveSealKey("passphrase", saltA)
	if err != nil {
		t.Fatal(err)
	}
	keyB, err := DeriveSealKey("passphrase", saltB)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(keyA, keyB) {
		t.Error("different salts derived the same seal key")
	}
}

func TestSealAESGCM_BadSizes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		key   []byte
		nonce []byte
		want  error
	}{
		{"short key", make([]byte, 16), make([]byte, AESNonceSize), ErrInvalidKeySize},
		{"short nonce", make([]byte, AESKeySize), make([]byte, 8), ErrInvalidNonceSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SealAESGCM(tt.key, tt.nonce, []byte("x")); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
