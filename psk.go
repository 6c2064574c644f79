package teos

import (
	"crypto/ed25519"
	"fmt"

	"github.com/google/uuid"
)

// CreatePSK encrypts plaintext into a PSK-mode envelope.
//
// A fresh identifier is generated and, together with the AAD and the PSK
// generation, drives derivation of a message key from psk (see
// [DerivePSKKey]). The plaintext is sealed with AES-256-GCM under that key and
// the base fields are signed with signer.
//
// plaintext is typically the output of [EncodePayload].
func CreatePSK(aad AADPayload, psk []byte, signer ed25519.PrivateKey, plaintext []byte, opts ...Option) (*Envelope, error) {
	cfg := newConfig(opts)

	if err := validateAAD(aad); err != nil {
		return nil, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, providerErr("random", err)
	}

	now := cfg.now()
	full := newAAD(id.String(), now, aad)

	key, err := DerivePSKKey(psk, pskParams(full, cfg.pskGeneration))
	if err != nil {
		return nil, err
	}

	base, err := newPSKBase(full, key, plaintext)
	if err != nil {
		return nil, err
	}

	sig, err := signBase(base, signer)
	if err != nil {
		return nil, err
	}

	env := &Envelope{
		Base: *base,
		Metadata: &PSKMetadata{
			Suite:         SuitePSK,
			Auth:          Auth{Signature: sig},
			PSKGeneration: cfg.pskGeneration,
			ExpiresAt:     cfg.expiry(now),
		},
	}

	cfg.created(env)
	return env, nil
}

// OpenPSK verifies env against signerPublicKey and, only if the signature is
// valid, rebuilds the message key from psk and decrypts the ciphertext.
func OpenPSK(env *Envelope, psk []byte, signerPublicKey ed25519.PublicKey, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)

	if err := cfg.authenticate(env, signerPublicKey); err != nil {
		return nil, err
	}

	meta, ok := env.Metadata.(*PSKMetadata)
	if !ok {
		err := &FormatError{Field: "mode", Message: fmt.Sprintf("got %q, want %q", env.Mode(), ModePSK), Err: ErrModeMismatch}
		cfg.metrics.observeOpen(env.Mode(), err)
		return nil, err
	}

	key, err := DerivePSKKey(psk, pskParams(env.AAD, meta.PSKGeneration))
	if err != nil {
		cfg.metrics.observeOpen(ModePSK, err)
		return nil, err
	}

	return cfg.decrypt(env, key)
}

// ExtractPSK opens a PSK-mode envelope and decodes the plaintext into T.
func ExtractPSK[T any](env *Envelope, psk []byte, signerPublicKey ed25519.PublicKey, opts ...Option) (T, error) {
	var out T

	plaintext, err := OpenPSK(env, psk, signerPublicKey, opts...)
	if err != nil {
		return out, err
	}

	if err := DecodePayload(plaintext, &out); err != nil {
		return out, err
	}
	return out, nil
}

// ExtractPSKSerialized deserializes data and extracts it like [ExtractPSK].
func ExtractPSKSerialized[T any](data, psk []byte, signerPublicKey ed25519.PublicKey, opts ...Option) (T, error) {
	env, err := Deserialize(data, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return ExtractPSK[T](env, psk, signerPublicKey, opts...)
}
