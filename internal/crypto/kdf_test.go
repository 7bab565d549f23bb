package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestDeriveLayerKey_Deterministic(t *testing.T) {
	t.Parallel()
	kd := NewKeyDerivation(make([]byte, 32))

	key1, err := kd.DeriveLayerKey(1, 32)
	if err != nil {
		t.Fatal(err)
	}
	key2, err := kd.DeriveLayerKey(1, 32)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(key1, key2) {
		t.Error("re-deriving the same layer key gave different bytes")
	}
}

func TestDeriveLayerKey_DistinctLayers(t *testing.T) {
	t.Parallel()
	kd := NewKeyDerivation(make([]byte, 32))

	keys := make([][]byte, 0, NumLayers)
	for id := uint8(1); id <= NumLayers; id++ {
		key, err := kd.DeriveLayerKey(id, LayerKeySize)
		if err != nil {
			t.Fatal(err)
		}
		keys = append(keys, key)
	}

	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if bytes.Equal(keys[i], keys[j]) {
				t.Errorf("layer %d and layer %d keys collide", i+1, j+1)
			}
		}
	}
}

func TestDeriveLayerKey_Lengths(t *testing.T) {
	t.Parallel()
	kd := NewKeyDerivation([]byte("master secret"))

	tests := []struct {
		name string
		size int
	}{
		{"truncated", 16},
		{"full digest", 32},
		{"one past digest", 33},
		{"two digests", 64},
		{"odd expansion", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := kd.DeriveLayerKey(1, tt.size)
			if err != nil {
				t.Fatalf("DeriveLayerKey() error = %v", err)
			}
			if len(key) != tt.size {
				t.Errorf("key length = %d, want %d", len(key), tt.size)
			}
		})
	}
}

func TestDeriveLayerKey_ExpansionPrefix(t *testing.T) {
	t.Parallel()
	kd := NewKeyDerivation([]byte("master secret"))

	short, err := kd.DeriveLayerKey(2, 32)
	if err != nil {
		t.Fatal(err)
	}
	long, err := kd.DeriveLayerKey(2, 96)
	if err != nil {
		t.Fatal(err)
	}

	// Oversized keys re-hash the digest with a counter instead of extending
	// it, so the expanded key does not begin with the 32-byte key. This is a
	// format compatibility property, not an accident.
	if bytes.Equal(long[:32], short) {
		t.Error("expanded key unexpectedly begins with the digest-sized key")
	}
	if len(long) != 96 {
		t.Fatalf("expanded key length = %d, want 96", len(long))
	}
}

func TestDeriveLayerKey_ZeroLength(t *testing.T) {
	t.Parallel()
	kd := NewKeyDerivation([]byte("master secret"))

	if _, err := kd.DeriveLayerKey(1, 0); !errors.Is(err, ErrZeroLengthKey) {
		t.Errorf("DeriveLayerKey(1, 0) error = %v, want ErrZeroLengthKey", err)
	}
	if _, err := kd.DeriveLayerKey(1, -1); !errors.Is(err, ErrZeroLengthKey) {
		t.Errorf("DeriveLayerKey(1, -1) error = %v, want ErrZeroLengthKey", err)
	}
}

func TestDeriveAllKeys(t *testing.T) {
	t.Parallel()
	kd := NewKeyDerivation(make([]byte, 32))

	keys, err := kd.DeriveAllKeys()
	if err != nil {
		t.Fatal(err)
	}

	for id := uint8(1); id <= NumLayers; id++ {
		if len(keys.Key(id)) != LayerKeySize {
			t.Errorf("layer %d key length = %d, want %d", id, len(keys.Key(id)), LayerKeySize)
		}
	}

	again, err := kd.DeriveAllKeys()
	if err != nil {
		t.Fatal(err)
	}
	for id := uint8(1); id <= NumLayers; id++ {
		if !bytes.Equal(keys.Key(id), again.Key(id)) {
			t.Errorf("layer %d key not deterministic", id)
		}
	}
}

func TestLayerKeys_UnknownID(t *testing.T) {
	t.Parallel()
	keys := &LayerKeys{Layer1Key: []byte{1}}

	if keys.Key(0) != nil {
		t.Error("Key(0) should be nil")
	}
	if keys.Key(5) != nil {
		t.Error("Key(5) should be nil")
	}
}

func TestKeyDerivationFromPassword(t *testing.T) {
	t.Parallel()
	salt := []byte("0123456789abcdef0123456789abcdef")

	keys1, err := KeyDerivationFromPassword("password", salt).DeriveAllKeys()
	if err != nil {
		t.Fatal(err)
	}
	keys2, err := KeyDerivationFromPassword("password", salt).DeriveAllKeys()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(keys1.Layer1Key, keys2.Layer1Key) {
		t.Error("same password and salt gave different keys")
	}

	otherSalt, err := KeyDerivationFromPassword("password", []byte("different salt value, same length")).DeriveAllKeys()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(keys1.Layer1Key, otherSalt.Layer1Key) {
		t.Error("different salt gave the same keys")
	}

	otherPassword, err := KeyDerivationFromPassword("Password", salt).DeriveAllKeys()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(keys1.Layer1Key, otherPassword.Layer1Key) {
		t.Error("different password gave the same keys")
	}
}

func TestKeystream(t *testing.T) {
	t.Parallel()
	secret := []byte("keystream secret")

	tests := []struct {
		name   string
		length int
	}{
		{"empty", 0},
		{"sub-digest", 7},
		{"one digest", 32},
		{"unaligned", 57},
		{"large", 4096},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := Keystream(secret, tt.length)
			if len(stream) != tt.length {
				t.Errorf("length = %d, want %d", len(stream), tt.length)
			}
		})
	}
}

func TestKeystream_Deterministic(t *testing.T) {
	t.Parallel()
	secret := []byte("keystream secret")

	a := Keystream(secret, 128)
	b := Keystream(secret, 128)
	if !bytes.Equal(a, b) {
		t.Error("same secret gave different keystreams")
	}
}

func TestKeystream_PrefixStable(t *testing.T) {
	t.Parallel()
	secret := []byte("keystream secret")

	short := Keystream(secret, 40)
	long := Keystream(secret, 200)
	if !bytes.Equal(long[:40], short) {
		t.Error("longer keystream does not begin with shorter keystream")
	}
}

func TestKeystream_SecretSensitive(t *testing.T) {
	t.Parallel()
	a := Keystream([]byte("secret a"), 64)
	b := Keystream([]byte("secret b"), 64)
	if bytes.Equal(a, b) {
		t.Error("different secrets gave the same keystream")
	}
}
