package hybridguard

import (
	"fmt"
	"time"
)

// FormatVersion is the envelope format version emitted by this package.
const FormatVersion = "0.1.0"

// Envelope pairs ciphertext with metadata about how it was produced.
//
// Layers records the transform chain that produced Ciphertext, in encryption
// order, for diagnostic and compatibility display only. Decryption always
// assumes the fixed pipeline order and never consults Layers: an envelope
// carrying mismatched layer metadata will still "decrypt" with the
// hard-coded chain, silently yielding garbage if the true chain differed.
type Envelope struct {
	// Ciphertext is the fully transformed payload.
	Ciphertext []byte `json:"ciphertext"`
	// Layers names the transforms that produced Ciphertext, in order.
	Layers []string `json:"layers"`
	// Version is the envelope format version.
	Version string `json:"version"`
	// Timestamp is the Unix time of encryption, in seconds.
	Timestamp int64 `json:"timestamp"`
}

func newEnvelope(ciphertext []byte, layerNames []string, now time.Time) *Envelope {
	return &Envelope{
		Ciphertext: ciphertext,
		Layers:     layerNames,
		Version:    FormatVersion,
		Timestamp:  now.Unix(),
	}
}

// Validate checks the envelope fields that decryption depends on.
// Layers is intentionally not validated: it is display metadata.
func (e *Envelope) Validate() error {
	if e.Version != FormatVersion {
		return &InputError{Err: fmt.Errorf("unsupported envelope version %q, expected %q", e.Version, FormatVersion)}
	}
	if len(e.Ciphertext) == 0 {
		return &InputError{Err: fmt.Errorf("envelope ciphertext is empty")}
	}
	return nil
}
