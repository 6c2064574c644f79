package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// newAEAD returns the cipher for alg keyed with key.
func newAEAD(alg Algorithm, key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}

	switch alg {
	case AlgorithmAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create cipher: %w", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCM: %w", err)
		}
		return gcm, nil
	case AlgorithmChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create ChaCha20-Poly1305: %w", err)
		}
		return aead, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, alg)
	}
}

// Seal encrypts plaintext with alg and returns ciphertext || tag.
// No associated data is used; envelope context is bound by the signature.
func Seal(alg Algorithm, key, nonce, plaintext []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}

	aead, err := newAEAD(alg, key)
	if err != nil {
		return nil, err
	}

	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open decrypts a ciphertext || tag buffer produced by [Seal].
func Open(alg Algorithm, key, nonce, sealed []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}

	aead, err := newAEAD(alg, key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// SplitSealed separates an AEAD output into ciphertext and the trailing tag.
// The returned slices are copies.
func SplitSealed(sealed []byte) (ciphertext, tag []byte, err error) {
	if len(sealed) < TagSize {
		return nil, nil, fmt.Errorf("%w: sealed buffer is %d bytes, want at least %d", ErrInvalidSize, len(sealed), TagSize)
	}

	cut := len(sealed) - TagSize
	ciphertext = make([]byte, cut)
	copy(ciphertext, sealed[:cut])
	tag = make([]byte, TagSize)
	copy(tag, sealed[cut:])

	return ciphertext, tag, nil
}

// JoinSealed rebuilds ciphertext || tag without aliasing either input.
func JoinSealed(ciphertext, tag []byte) []byte {
	sealed := make([]byte, len(ciphertext)+len(tag))
	copy(sealed, ciphertext)
	copy(sealed[len(ciphertext):], tag)
	return sealed
}
