package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when an AEAD key has the wrong length.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidSigningKeySize is returned when an Ed25519 key has the wrong length.
	ErrInvalidSigningKeySize = errors.New("invalid signing key size")

	// ErrSignatureVerificationFailed is returned when signature verification fails.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")

	// ErrDecryptionFailed is returned when the AEAD refuses to open a sealed
	// buffer. It does not say why: wrong key, wrong nonce, and tampering all
	// look the same.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidAlgorithm is returned when an unrecognized or unsupported
	// AEAD algorithm is requested.
	ErrInvalidAlgorithm = errors.New("invalid algorithm")

	// ErrInvalidSize is returned when a sealed buffer is shorter than a tag.
	ErrInvalidSize = errors.New("invalid size")
)
