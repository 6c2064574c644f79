package teos

import (
	"crypto/ed25519"

	"github.com/torlnapp/teos-go/internal/crypto"
)

// GenerateSigningKey creates a new Ed25519 keypair for signing envelopes.
func GenerateSigningKey() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := crypto.GenerateSigningKey()
	if err != nil {
		return nil, nil, providerErr("random", err)
	}
	return pub, priv, nil
}

// SigningKeyFromSeed expands a 32-byte seed into an Ed25519 keypair.
func SigningKeyFromSeed(seed []byte) (ed25519.PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := crypto.SigningKeyFromSeed(seed)
	if err != nil {
		return nil, nil, providerErr("sign", err)
	}
	return pub, priv, nil
}

// GeneratePSK returns 32 random bytes suitable as a pre-shared key.
func GeneratePSK() ([]byte, error) {
	psk, err := crypto.GenerateKey()
	if err != nil {
		return nil, providerErr("random", err)
	}
	return psk, nil
}
