package teos

import (
	"crypto/ed25519"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/torlnapp/teos-go/internal/crypto"
)

// VerifySignature verifies the Ed25519 signature of env against publicKey.
// CRITICAL: This MUST be called BEFORE any decryption attempt. The extract
// and open functions in this package already do so.
func VerifySignature(env *Envelope, publicKey ed25519.PublicKey) error {
	if err := checkShape(env); err != nil {
		return err
	}

	hash, err := env.Hash()
	if err != nil {
		return err
	}

	if err := crypto.Verify(publicKey, hash[:], env.Signature()); err != nil {
		if errors.Is(err, crypto.ErrInvalidSigningKeySize) {
			return providerErr("verify", err)
		}
		return &AuthenticationError{
			Identifier: env.AAD.Identifier,
			Message:    "signature does not match envelope contents",
		}
	}

	return nil
}

// Verify reports whether env carries a valid signature by publicKey.
func Verify(env *Envelope, publicKey ed25519.PublicKey) bool {
	return VerifySignature(env, publicKey) == nil
}

// authenticate verifies env and records the outcome on failure.
func (c *config) authenticate(env *Envelope, publicKey ed25519.PublicKey) error {
	err := VerifySignature(env, publicKey)
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrSignatureInvalid) {
		c.logger.WithFields(logrus.Fields{
			"id":   env.AAD.Identifier,
			"mode": env.Mode(),
		}).Warn("rejected envelope with invalid signature")
	}
	c.metrics.observeOpen(env.Mode(), err)
	return err
}

// decrypt opens the verified env with key using the AEAD named by
// env.Algorithm, or by WithMLSAEAD for MLS envelopes.
func (c *config) decrypt(env *Envelope, key []byte) ([]byte, error) {
	alg := c.openAlgorithm(env)
	if alg != crypto.AlgorithmAESGCM && alg != crypto.AlgorithmChaCha20Poly1305 {
		err := &FormatError{Field: "algorithm", Err: crypto.ErrInvalidAlgorithm}
		c.metrics.observeOpen(env.Mode(), err)
		return nil, err
	}

	plaintext, err := crypto.Open(alg, key, env.Nonce, crypto.JoinSealed(env.Ciphertext, env.Tag))
	if err != nil {
		err = providerErr("open", err)
		c.metrics.observeOpen(env.Mode(), err)
		return nil, err
	}

	c.metrics.observeOpen(env.Mode(), nil)
	return plaintext, nil
}

// openAlgorithm returns the AEAD to open env with.
func (c *config) openAlgorithm(env *Envelope) crypto.Algorithm {
	if c.mlsAEAD != "" && env.Mode() == ModeMLS {
		return crypto.Algorithm(c.mlsAEAD)
	}
	return crypto.Algorithm(env.Algorithm)
}

func (c *config) created(env *Envelope) {
	c.logger.WithFields(logrus.Fields{
		"id":    env.AAD.Identifier,
		"mode":  env.Mode(),
		"suite": env.Metadata.Ciphersuite(),
	}).Debug("created envelope")
	c.metrics.observeCreate(env.Mode())
}
