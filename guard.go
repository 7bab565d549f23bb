package hybridguard

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/hybridguard/hybridguard-go/internal/crypto"
)

// Guard binds a derived key set to a pipeline: the convenience surface for
// callers that want password-based keys and key-file persistence rather
// than managing a KeySet themselves.
type Guard struct {
	pipeline *Pipeline
	keys     *KeySet
	keyID    string
	cfg      config
}

// New creates a Guard with keys derived from password and a fresh random
// salt. The salt is folded into the master secret and not retained, so the
// key set must be persisted with SaveKeys to decrypt in a later session.
func New(password string, opts ...Option) (*Guard, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	salt := make([]byte, crypto.SaltSize)
	if _, err := io.ReadFull(cfg.rand, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	keys, err := DeriveKeySetFromPassword(password, salt)
	if err != nil {
		return nil, err
	}

	return &Guard{
		pipeline: NewPipeline(opts...),
		keys:     keys,
		keyID:    "hg-" + uuid.NewString(),
		cfg:      cfg,
	}, nil
}

// NewFromMasterSecret creates a Guard from externally supplied key material,
// bypassing password derivation.
func NewFromMasterSecret(masterSecret []byte, opts ...Option) (*Guard, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	keys, err := DeriveKeySet(masterSecret)
	if err != nil {
		return nil, err
	}

	return &Guard{
		pipeline: NewPipeline(opts...),
		keys:     keys,
		keyID:    "hg-" + uuid.NewString(),
		cfg:      cfg,
	}, nil
}

// Load creates a Guard from a plain key file written by SaveKeys.
// A sealed file fails with ErrKeystoreSealed; use LoadSealed.
func Load(path string, opts ...Option) (*Guard, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	keyID, keys, err := loadKeystore(path)
	if err != nil {
		return nil, err
	}

	return &Guard{
		pipeline: NewPipeline(opts...),
		keys:     keys,
		keyID:    keyID,
		cfg:      cfg,
	}, nil
}

// LoadSealed creates a Guard from a passphrase-protected key file written by
// SaveKeysSealed. A wrong passphrase fails with ErrWrongPassphrase.
func LoadSealed(path, passphrase string, opts ...Option) (*Guard, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	keyID, keys, err := loadSealedKeystore(path, passphrase)
	if err != nil {
		return nil, err
	}

	return &Guard{
		pipeline: NewPipeline(opts...),
		keys:     keys,
		keyID:    keyID,
		cfg:      cfg,
	}, nil
}

// Encrypt runs data through the full four-layer pipeline.
func (g *Guard) Encrypt(data []byte) (*Envelope, error) {
	return g.pipeline.Encrypt(data, g.keys)
}

// Decrypt reverses Encrypt using this Guard's key set.
func (g *Guard) Decrypt(env *Envelope) ([]byte, error) {
	return g.pipeline.Decrypt(env, g.keys)
}

// SaveKeys writes the key set to path as plain JSON. The file contains raw
// key material; prefer SaveKeysSealed when the path is not already access
// controlled.
func (g *Guard) SaveKeys(path string) error {
	return saveKeystore(path, g.keyID, g.keys, g.cfg.clock())
}

// SaveKeysSealed writes the key set to path encrypted under passphrase.
func (g *Guard) SaveKeysSealed(path, passphrase string) error {
	return saveSealedKeystore(path, g.keyID, g.keys, passphrase, g.cfg.rand, g.cfg.clock())
}

// KeyID returns the identifier of this Guard's key set.
func (g *Guard) KeyID() string {
	return g.keyID
}

// KeySet returns the Guard's derived key set.
func (g *Guard) KeySet() *KeySet {
	return g.keys
}

// Stats describes the Guard's layer chain and key set.
type Stats struct {
	Layers []LayerInfo
	KeyID  string
}

// Stats returns per-layer information plus the key set identifier.
func (g *Guard) Stats() Stats {
	return Stats{
		Layers: g.pipeline.LayerInfo(),
		KeyID:  g.keyID,
	}
}
