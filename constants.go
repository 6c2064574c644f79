package teos

import "github.com/torlnapp/teos-go/internal/crypto"

const (
	// Type is the discriminant carried by every TEOS object.
	Type = "torln.teos.v1"
	// DTOType is the discriminant of the index/storage projection.
	DTOType = "torln.teos.dto.v1"
	// Version is the semantic version of the base schema.
	Version = "1.0.0"

	// NonceSize is the length of Base.Nonce for every supported suite.
	NonceSize = crypto.NonceSize
	// TagSize is the length of Base.Tag for every supported suite.
	TagSize = crypto.TagSize
	// KeySize is the length of PSKs and MLS-exported AEAD keys.
	KeySize = crypto.KeySize
	// SignatureSize is the length of an Ed25519 envelope signature.
	SignatureSize = crypto.SignatureSize
	// HashSize is the length of the base hash that gets signed.
	HashSize = crypto.HashSize

	// DefaultPSKGeneration is the generation stamped on PSK envelopes unless
	// WithPSKGeneration says otherwise.
	DefaultPSKGeneration uint32 = 1
)

// Algorithm names recorded in Base.Algorithm.
const (
	AlgorithmAESGCM           = string(crypto.AlgorithmAESGCM)
	AlgorithmChaCha20Poly1305 = string(crypto.AlgorithmChaCha20Poly1305)
)

// Ciphersuite labels recorded in the envelope metadata.
const (
	SuitePSK = "PSK+AES-256-GCM"
	SuiteMLS = "MLS_128_DHKEMX25519_CHACHA20POLY1305_SHA256_Ed25519"
)

// pskInfoPrefix namespaces the HKDF info string of PSK message keys.
const pskInfoPrefix = "torln-teos-v1:key"
