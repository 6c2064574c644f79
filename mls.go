package teos

import (
	"crypto/ed25519"
	"strings"
)

// CreateMLS wraps a payload already sealed by the MLS layer into an MLS-mode
// envelope. sealed is the ChaCha20-Poly1305 output (ciphertext || tag)
// produced with nonce under a key derived from the group's exporter secret;
// that key never reaches this function.
func CreateMLS(identifier string, aad AADPayload, signer ed25519.PrivateKey, sealed, nonce []byte, opts ...Option) (*Envelope, error) {
	cfg := newConfig(opts)

	if err := validateAAD(aad); err != nil {
		return nil, err
	}
	if strings.TrimSpace(identifier) == "" {
		return nil, &ValidationError{Errors: []string{"identifier is required"}}
	}

	base, err := newMLSBase(newAAD(identifier, cfg.now(), aad), sealed, nonce)
	if err != nil {
		return nil, err
	}

	sig, err := signBase(base, signer)
	if err != nil {
		return nil, err
	}

	env := &Envelope{
		Base: *base,
		Metadata: &MLSMetadata{
			Suite: SuiteMLS,
			Auth:  Auth{Signature: sig},
		},
	}

	cfg.created(env)
	return env, nil
}

// Open verifies env against signerPublicKey and decrypts it with key used
// directly as the AEAD key. This is the MLS path; it also opens a PSK
// envelope when given that envelope's derived message key.
//
// MLS envelopes are opened with the stamped ChaCha20-Poly1305 unless
// [WithMLSAEAD] names the cipher the MLS layer actually sealed with.
func Open(env *Envelope, key []byte, signerPublicKey ed25519.PublicKey, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)

	if err := cfg.authenticate(env, signerPublicKey); err != nil {
		return nil, err
	}

	return cfg.decrypt(env, key)
}

// Extract opens env with key and decodes the plaintext into T.
func Extract[T any](env *Envelope, key []byte, signerPublicKey ed25519.PublicKey, opts ...Option) (T, error) {
	var out T

	plaintext, err := Open(env, key, signerPublicKey, opts...)
	if err != nil {
		return out, err
	}

	if err := DecodePayload(plaintext, &out); err != nil {
		return out, err
	}
	return out, nil
}

// ExtractSerialized deserializes data and extracts it like [Extract].
func ExtractSerialized[T any](data, key []byte, signerPublicKey ed25519.PublicKey, opts ...Option) (T, error) {
	env, err := Deserialize(data, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return Extract[T](env, key, signerPublicKey, opts...)
}
