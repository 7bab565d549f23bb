package layers

import "github.com/hybridguard/hybridguard-go/internal/crypto"

// noiseDomainTag separates the noise mask from every other keystream use of
// the same layer key.
const noiseDomainTag = "quantum-noise-mask"

// NoiseLayer XORs data with a keystream derived solely from the layer key.
//
// The mask is a deterministic function of (key, length), so applying it
// twice restores the input: Encrypt and Decrypt are the same involution and
// the output length always equals the input length.
type NoiseLayer struct{}

// NewNoise returns the deterministic noise-mask layer.
func NewNoise() Layer {
	return NoiseLayer{}
}

func (NoiseLayer) Encrypt(data, key []byte) ([]byte, error) {
	return maskNoise(data, key), nil
}

func (NoiseLayer) Decrypt(data, key []byte) ([]byte, error) {
	return maskNoise(data, key), nil
}

func (NoiseLayer) Name() string { return "Quantum Noise Injection" }

func (NoiseLayer) SecurityLevel() int { return 128 }

func maskNoise(data, key []byte) []byte {
	secret := make([]byte, 0, len(key)+len(noiseDomainTag))
	secret = append(secret, key...)
	secret = append(secret, noiseDomainTag...)

	stream := crypto.Keystream(secret, len(data))
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ stream[i]
	}
	return out
}
