package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"
)

func TestDeriveKey(t *testing.T) {
	t.Parallel()
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		salt   []byte
		info   []byte
		length int
	}{
		{"basic 32 bytes", make([]byte, 32), []byte("info"), 32},
		{"empty salt", nil, []byte("info"), 32},
		{"empty info", make([]byte, 32), nil, 32},
		{"16 byte key", make([]byte, 32), []byte("info"), 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DeriveKey(secret, tt.salt, tt.info, tt.length)
			if err != nil {
				t.Fatalf("DeriveKey() error = %v", err)
			}

			if len(key) != tt.length {
				t.Errorf("key length = %d, want %d", len(key), tt.length)
			}
		})
	}
}

// RFC 5869 Appendix A.1 (SHA-256 basic test case).
func TestDeriveKey_RFC5869(t *testing.T) {
	t.Parallel()
	ikm, _ := hex.DecodeString("0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	salt, _ := hex.DecodeString("000102030405060708090a0b0c")
	info, _ := hex.DecodeString("f0f1f2f3f4f5f6f7f8f9")
	want, _ := hex.DecodeString("3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5bf34007208d5b887185865")

	okm, err := DeriveKey(ikm, salt, info, len(want))
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}

	if !bytes.Equal(okm, want) {
		t.Errorf("okm = %x, want %x", okm, want)
	}
}

func TestDeriveKey_DomainSeparation(t *testing.T) {
	t.Parallel()
	secret := []byte("test secret key for derivation")
	salt := []byte("salt")

	k1, err := DeriveKey(secret, salt, []byte("info-1"), KeySize)
	if err != nil {
		t.Fatal(err)
	}
	k2, err := DeriveKey(secret, salt, []byte("info-2"), KeySize)
	if err != nil {
		t.Fatal(err)
	}
	k1again, err := DeriveKey(secret, salt, []byte("info-1"), KeySize)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(k1, k2) {
		t.Error("different info produced identical keys")
	}
	if !bytes.Equal(k1, k1again) {
		t.Error("same inputs produced different keys")
	}
}

func TestHash(t *testing.T) {
	// SHA-256("abc")
	want, _ := hex.DecodeString("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	got := Hash([]byte("abc"))
	if !bytes.Equal(got[:], want) {
		t.Errorf("Hash() = %x, want %x", got, want)
	}
}
