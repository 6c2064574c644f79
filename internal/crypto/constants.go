package crypto

const (
	// KeySize is the size of an AES-256 or ChaCha20-Poly1305 key in bytes.
	KeySize = 32
	// NonceSize is the AEAD nonce size in bytes for both supported suites.
	NonceSize = 12
	// TagSize is the AEAD authentication tag size in bytes.
	TagSize = 16

	// SigningPublicKeySize is the size of an Ed25519 public key in bytes.
	SigningPublicKeySize = 32
	// SigningPrivateKeySize is the size of an Ed25519 private key in bytes.
	SigningPrivateKeySize = 64
	// SigningSeedSize is the size of an Ed25519 private key seed in bytes.
	SigningSeedSize = 32
	// SignatureSize is the size of an Ed25519 signature in bytes.
	SignatureSize = 64

	// HashSize is the size of a SHA-256 digest in bytes.
	HashSize = 32
)

// Algorithm names an AEAD cipher as it appears on the wire.
type Algorithm string

const (
	// AlgorithmAESGCM selects AES-256-GCM.
	AlgorithmAESGCM Algorithm = "AES-GCM"
	// AlgorithmChaCha20Poly1305 selects ChaCha20-Poly1305.
	AlgorithmChaCha20Poly1305 Algorithm = "ChaCha20-Poly1305"
)
