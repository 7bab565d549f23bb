package layers

import (
	"bytes"
	"testing"
)

func TestNoiseLayerSelfInverse(t *testing.T) {
	t.Parallel()
	layer := NewNoise()
	key := bytes.Repeat([]byte{9}, 32)
	data := []byte("self-inverse payload")

	encrypted, err := layer.Encrypt(data, key)
	if err != nil {
		t.Fatal(err)
	}
	decrypted, err := layer.Decrypt(data, key)
	if err != nil {
		t.Fatal(err)
	}

	// Encrypt and Decrypt are literally the same function.
	if !bytes.Equal(encrypted, decrypted) {
		t.Error("Encrypt and Decrypt disagree on identical input")
	}

	roundTrip, err := layer.Decrypt(encrypted, key)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(roundTrip, data) {
		t.Error("applying the mask twice did not restore the input")
	}
}

func TestNoiseLayerDeterministic(t *testing.T) {
	t.Parallel()
	layer := NewNoise()
	key := bytes.Repeat([]byte{42}, 32)
	data := []byte("Deterministic test")

	first, err := layer.Encrypt(data, key)
	if err != nil {
		t.Fatal(err)
	}
	second, err := layer.Encrypt(data, key)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("same (data, key) gave different ciphertexts")
	}
}

func TestNoiseLayerLengthPreserved(t *testing.T) {
	t.Parallel()
	layer := NewNoise()
	key := bytes.Repeat([]byte{3}, 32)

	for _, size := range []int{0, 1, 31, 32, 33, 1000} {
		data := bytes.Repeat([]byte{0xAB}, size)
		out, err := layer.Encrypt(data, key)
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != size {
			t.Errorf("size %d: output length = %d", size, len(out))
		}
	}
}

func TestNoiseLayerKeySensitive(t *testing.T) {
	t.Parallel()
	layer := NewNoise()
	data := []byte("key sensitivity check")

	a, err := layer.Encrypt(data, bytes.Repeat([]byte{1}, 32))
	if err != nil {
		t.Fatal(err)
	}
	b, err := layer.Encrypt(data, bytes.Repeat([]byte{2}, 32))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Error("different keys produced identical masks")
	}
}

func TestNoiseLayerMetadata(t *testing.T) {
	t.Parallel()
	layer := NewNoise()
	if layer.Name() != "Quantum Noise Injection" {
		t.Errorf("Name() = %q", layer.Name())
	}
	if layer.SecurityLevel() != 128 {
		t.Errorf("SecurityLevel() = %d, want 128", layer.SecurityLevel())
	}
}
