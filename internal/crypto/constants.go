package crypto

const (
	// NumLayers is the number of transform layers in the pipeline.
	NumLayers = 4

	// LayerKeySize is the derived key size for each pipeline layer in bytes.
	LayerKeySize = 32

	// SaltSize is the size of the random salt used when deriving a master
	// secret from a password.
	SaltSize = 32

	// KeystoreHKDFContext is the context string used in HKDF key derivation
	// for the sealed keystore, for domain separation.
	KeystoreHKDFContext = "hybridguard:keystore:v1"

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16
)
