package crypto

import (
	"bytes"
	"errors"
	"testing"
)

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerateNonce(t *testing.T) {
	n1, err := GenerateNonce()
	if err != nil {
		t.Fatalf("GenerateNonce() error = %v", err)
	}
	n2, err := GenerateNonce()
	if err != nil {
		t.Fatal(err)
	}

	if len(n1) != NonceSize {
		t.Errorf("nonce length = %d, want %d", len(n1), NonceSize)
	}
	if bytes.Equal(n1, n2) {
		t.Error("two nonces are identical")
	}
}

func TestSetRandReaderForTesting(t *testing.T) {
	restore := SetRandReaderForTesting(bytes.NewReader(bytes.Repeat([]byte{0x07}, 64)))

	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	if !bytes.Equal(key, bytes.Repeat([]byte{0x07}, KeySize)) {
		t.Errorf("key = %x, want deterministic bytes", key)
	}

	restore()

	restore = SetRandReaderForTesting(errReader{})
	defer restore()

	if _, err := RandomBytes(8); err == nil {
		t.Error("expected error from failing reader")
	}
}
