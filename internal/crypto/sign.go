package crypto

import (
	"fmt"

	"github.com/cloudflare/circl/sign/ed25519"
)

// GenerateSigningKey creates a new Ed25519 keypair.
func GenerateSigningKey() (publicKey, privateKey []byte, err error) {
	pub, priv, err := ed25519.GenerateKey(reader())
	if err != nil {
		return nil, nil, fmt.Errorf("generate signing key: %w", err)
	}
	return pub, priv, nil
}

// SigningKeyFromSeed expands a 32-byte seed into an Ed25519 keypair.
func SigningKeyFromSeed(seed []byte) (publicKey, privateKey []byte, err error) {
	if len(seed) != SigningSeedSize {
		return nil, nil, fmt.Errorf("%w: seed is %d bytes, want %d", ErrInvalidSigningKeySize, len(seed), SigningSeedSize)
	}

	priv := ed25519.NewKeyFromSeed(seed)
	pub := make([]byte, SigningPublicKeySize)
	copy(pub, priv[SigningSeedSize:])

	return pub, priv, nil
}

// Sign produces an Ed25519 signature over message.
func Sign(privateKey, message []byte) ([]byte, error) {
	if len(privateKey) != SigningPrivateKeySize {
		return nil, fmt.Errorf("%w: private key is %d bytes, want %d", ErrInvalidSigningKeySize, len(privateKey), SigningPrivateKeySize)
	}

	return ed25519.Sign(ed25519.PrivateKey(privateKey), message), nil
}

// Verify verifies an Ed25519 signature (low-level function).
func Verify(publicKey, message, signature []byte) error {
	if len(publicKey) != SigningPublicKeySize {
		return fmt.Errorf("%w: public key is %d bytes, want %d", ErrInvalidSigningKeySize, len(publicKey), SigningPublicKeySize)
	}

	if len(signature) != SignatureSize || !ed25519.Verify(ed25519.PublicKey(publicKey), message, signature) {
		return ErrSignatureVerificationFailed
	}

	return nil
}
