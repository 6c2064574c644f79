package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the random source used for nonces and key generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func reader() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// RandomBytes returns n bytes from the package random source.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(reader(), b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}

// GenerateNonce returns a fresh random AEAD nonce.
func GenerateNonce() ([]byte, error) {
	return RandomBytes(NonceSize)
}

// GenerateKey returns a fresh random 32-byte symmetric key.
func GenerateKey() ([]byte, error) {
	return RandomBytes(KeySize)
}
