package hybridguard

import (
	"fmt"
	"time"

	"github.com/hybridguard/hybridguard-go/internal/crypto"
	"github.com/hybridguard/hybridguard-go/internal/layers"
)

// NumLayers is the number of transform layers in the pipeline.
const NumLayers = crypto.NumLayers

// LayerKeySize is the derived key size for each layer in bytes, and the
// minimum key length the pipeline accepts.
const LayerKeySize = crypto.LayerKeySize

// KeySet holds the four independently derived layer keys.
type KeySet = crypto.LayerKeys

// Pipeline runs a payload through the four transform layers in a fixed
// order for encryption and the exact reverse order for decryption.
//
// A Pipeline holds no key material and no cross-call state; a single
// instance may be shared across concurrent payload runs.
type Pipeline struct {
	layers [NumLayers]layers.Layer
	clock  func() time.Time
}

// NewPipeline creates a pipeline with the fixed four-layer chain.
func NewPipeline(opts ...Option) *Pipeline {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Pipeline{
		layers: [NumLayers]layers.Layer{
			layers.NewMLKEM(cfg.rand),
			layers.NewFrodo(cfg.rand),
			layers.NewNoise(),
			layers.NewFHE(),
		},
		clock: cfg.clock,
	}
}

// Encrypt runs data through all four layers in order, threading each layer's
// output into the next, and wraps the result in an Envelope. Any layer
// failure aborts the chain; no partial output is ever returned.
func (p *Pipeline) Encrypt(data []byte, keys *KeySet) (*Envelope, error) {
	if len(data) == 0 {
		return nil, &InputError{Err: fmt.Errorf("plaintext must not be empty")}
	}
	if err := validateKeySet(keys); err != nil {
		return nil, err
	}

	buf := data
	for i, layer := range p.layers {
		out, err := layer.Encrypt(buf, keys.Key(uint8(i+1)))
		if err != nil {
			return nil, &LayerError{Layer: layer.Name(), Op: "encrypt", Err: err}
		}
		buf = out
	}

	return newEnvelope(buf, p.LayerNames(), p.clock()), nil
}

// Decrypt reverses Encrypt: layers run in reverse order, each applying its
// inverse transform. The key set must be the one used at encryption time.
// The envelope's layer metadata is not consulted.
func (p *Pipeline) Decrypt(env *Envelope, keys *KeySet) ([]byte, error) {
	if env == nil {
		return nil, &InputError{Err: fmt.Errorf("envelope is nil")}
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	if err := validateKeySet(keys); err != nil {
		return nil, err
	}

	buf := env.Ciphertext
	for i := NumLayers - 1; i >= 0; i-- {
		out, err := p.layers[i].Decrypt(buf, keys.Key(uint8(i+1)))
		if err != nil {
			return nil, &LayerError{Layer: p.layers[i].Name(), Op: "decrypt", Err: err}
		}
		buf = out
	}
	return buf, nil
}

// LayerNames returns the layer names in encryption order.
func (p *Pipeline) LayerNames() []string {
	names := make([]string, NumLayers)
	for i, layer := range p.layers {
		names[i] = layer.Name()
	}
	return names
}

// LayerInfo describes one pipeline layer.
type LayerInfo struct {
	Name         string
	SecurityBits int
	Status       string
}

// LayerInfo returns a description of each layer in encryption order.
func (p *Pipeline) LayerInfo() []LayerInfo {
	info := make([]LayerInfo, NumLayers)
	for i, layer := range p.layers {
		info[i] = LayerInfo{
			Name:         layer.Name(),
			SecurityBits: layer.SecurityLevel(),
			Status:       "Active",
		}
	}
	return info
}

func validateKeySet(keys *KeySet) error {
	if keys == nil {
		return &InputError{Err: fmt.Errorf("key set is nil")}
	}
	for id := uint8(1); id <= NumLayers; id++ {
		if len(keys.Key(id)) < LayerKeySize {
			return &InputError{Err: fmt.Errorf("layer %d key must be at least %d bytes, got %d", id, LayerKeySize, len(keys.Key(id)))}
		}
	}
	return nil
}
