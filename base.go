package teos

import (
	"bytes"
	"crypto/ed25519"
	"strconv"
	"strings"

	"github.com/torlnapp/teos-go/internal/crypto"
)

func validateAAD(p AADPayload) error {
	var problems []string
	if strings.TrimSpace(p.ContextID) == "" {
		problems = append(problems, "contextId is required")
	}
	if strings.TrimSpace(p.SenderClientID) == "" {
		problems = append(problems, "senderClientId is required")
	}
	if len(problems) > 0 {
		return &ValidationError{Errors: problems}
	}
	return nil
}

// newPSKBase seals plaintext under key with a fresh nonce.
func newPSKBase(aad AAD, key, plaintext []byte) (*Base, error) {
	nonce, err := crypto.GenerateNonce()
	if err != nil {
		return nil, providerErr("random", err)
	}

	sealed, err := crypto.Seal(crypto.AlgorithmAESGCM, key, nonce, plaintext)
	if err != nil {
		return nil, providerErr("seal", err)
	}

	ciphertext, tag, err := crypto.SplitSealed(sealed)
	if err != nil {
		return nil, providerErr("seal", err)
	}

	return &Base{
		Type:       Type,
		Version:    Version,
		Algorithm:  AlgorithmAESGCM,
		AAD:        aad,
		Nonce:      nonce,
		Tag:        tag,
		Ciphertext: ciphertext,
	}, nil
}

// newMLSBase wraps a buffer sealed by the MLS layer. sealed is
// ciphertext || tag exactly as the AEAD returned it.
func newMLSBase(aad AAD, sealed, nonce []byte) (*Base, error) {
	if len(nonce) != NonceSize {
		return nil, &FormatError{Field: "nonce", Err: crypto.ErrInvalidNonceSize}
	}

	ciphertext, tag, err := crypto.SplitSealed(sealed)
	if err != nil {
		return nil, &FormatError{Field: "ciphertext", Err: err}
	}

	return &Base{
		Type:       Type,
		Version:    Version,
		Algorithm:  AlgorithmChaCha20Poly1305,
		AAD:        aad,
		Nonce:      bytes.Clone(nonce),
		Tag:        tag,
		Ciphertext: ciphertext,
	}, nil
}

func signBase(b *Base, signer ed25519.PrivateKey) ([]byte, error) {
	hash, err := b.Hash()
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(signer, hash[:])
	if err != nil {
		return nil, providerErr("sign", err)
	}
	return sig, nil
}

// checkShape validates field lengths and the discriminant of env.
func checkShape(env *Envelope) error {
	switch {
	case env == nil:
		return formatErr("envelope", "nil envelope")
	case env.Type != Type:
		return formatErr("type", "unexpected discriminant "+strconv.Quote(env.Type))
	case env.Metadata == nil:
		return formatErr("envelope", "missing metadata")
	case len(env.Nonce) != NonceSize:
		return &FormatError{Field: "nonce", Err: crypto.ErrInvalidNonceSize}
	case len(env.Tag) != TagSize:
		return &FormatError{Field: "tag", Err: crypto.ErrInvalidSize}
	case len(env.Signature()) != SignatureSize:
		return &FormatError{Field: "envelope.auth.signature", Err: crypto.ErrInvalidSize}
	}
	return nil
}
